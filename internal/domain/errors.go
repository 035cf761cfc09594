package domain

import "errors"

var (
	ErrSongExists        = errors.New("song already registered")
	ErrInvalidSong       = errors.New("song url and title are required")
	ErrInvalidVideo      = errors.New("video url is required")
	ErrInvalidRate       = errors.New("revenue rate must be non-negative")
	ErrInvalidDecision   = errors.New("review decision must be approved or rejected")
	ErrMissingCredential = errors.New("analysis api key is missing")
	ErrEmptyResponse     = errors.New("empty response from analysis oracle")
)
