package app

import "time"

// Config holds runtime configuration for the application.
type Config struct {
	InputPath  string
	OutputPath string

	// URLColumn names the input column holding website URLs. Empty means
	// auto-detect: the first header containing "url", else the first column.
	URLColumn string

	// Fetch
	UserAgent    string
	FetchTimeout time.Duration

	// Behavior
	Verbose bool
}
