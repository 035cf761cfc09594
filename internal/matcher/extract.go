package matcher

import "regexp"

// songIDPattern picks the trailing digit run of a ".../music/<slug>-<digits>" URL.
var songIDPattern = regexp.MustCompile(`music/[^/]+-(\d+)`)

// ExtractID returns the numeric song identifier embedded in a music URL.
func ExtractID(rawURL string) (string, bool) {
	m := songIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}
