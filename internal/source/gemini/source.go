package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"ugc_tracker/internal/domain"
	"ugc_tracker/internal/source"
)

const (
	Name         = "gemini"
	DefaultModel = "gemini-2.5-flash"
)

// Config holds Gemini oracle configuration.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	// DemoMarker, when set, tells the model that videos containing it are the
	// viral demo hit so the simulated metrics line up with the demo scenario.
	DemoMarker string
}

// Source asks a Gemini model to simulate content ingestion for a video URL.
type Source struct {
	apiKey     string
	model      string
	baseURL    string
	demoMarker string
	httpClient *http.Client
	logger     *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Source {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Source{
		apiKey:     cfg.APIKey,
		model:      model,
		baseURL:    cfg.BaseURL,
		demoMarker: cfg.DemoMarker,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("oracle", Name),
	}
}

func (s *Source) Name() string {
	return Name
}

// Analyze runs one generation request. The credential is checked here rather
// than at construction so a missing key only fails the call that needs it.
func (s *Source) Analyze(ctx context.Context, videoURL string) (*domain.AnalysisResult, error) {
	if s.apiKey == "" {
		return nil, domain.ErrMissingCredential
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      s.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  s.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: s.baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, s.model, genai.Text(s.prompt(videoURL)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	s.logger.Debug("analysis generated", "video_url", videoURL, "model", s.model)

	return source.Decode(resp.Text())
}

func (s *Source) prompt(videoURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the following TikTok video URL: %s\n\n", videoURL)
	b.WriteString("Simulate a content ingestion worker extracting metadata for a UGC rights management system.\n\n")
	b.WriteString("Tasks:\n")
	b.WriteString("1. Extract Author and Description.\n")
	b.WriteString("2. Detect the audio/music used and return its TikTok music URL.\n")
	b.WriteString("3. Estimate typical engagement metrics for this content.\n")
	b.WriteString("4. Provide a match confidence score (0.0 - 1.0) that this audio matches a known copyright database.\n\n")
	if s.demoMarker != "" {
		fmt.Fprintf(&b, "If the URL contains %q, it is a viral hit using the user's song: high views (1.2M+), high confidence (0.99).\n", s.demoMarker)
	}
	b.WriteString("Otherwise generate realistic mock data.\n\nReturn JSON.")
	return b.String()
}

var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"metrics": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"views":    {Type: genai.TypeInteger},
				"likes":    {Type: genai.TypeInteger},
				"comments": {Type: genai.TypeInteger},
				"shares":   {Type: genai.TypeInteger},
			},
		},
		"author":          {Type: genai.TypeString},
		"description":     {Type: genai.TypeString},
		"detectedSongUrl": {Type: genai.TypeString},
		"matchConfidence": {Type: genai.TypeNumber, Description: "Float between 0 and 1"},
	},
	Required: []string{"metrics", "author", "detectedSongUrl"},
}
