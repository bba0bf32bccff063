package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application-level configuration.
type Config struct {
	BaseURL   string // Board origin, e.g. "https://board.example.com"
	StatePath string // Path to the persisted view-state JSON file
}

// Load reads configuration from a .env file (if present) and the environment.
//
//	THREADLINE_BASE_URL — board origin (required)
//	THREADLINE_STATE    — view-state file (default: ~/.config/threadline/state.json)
func Load() (Config, error) {
	_ = godotenv.Load()

	base := strings.TrimSpace(os.Getenv("THREADLINE_BASE_URL"))
	if base == "" {
		return Config{}, fmt.Errorf("THREADLINE_BASE_URL is required")
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Config{}, fmt.Errorf("invalid THREADLINE_BASE_URL: must be an absolute URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Config{}, fmt.Errorf("invalid THREADLINE_BASE_URL: scheme must be http or https")
	}
	base = strings.TrimRight(parsed.String(), "/")

	statePath := os.Getenv("THREADLINE_STATE")
	if statePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		statePath = filepath.Join(home, ".config", "threadline", "state.json")
	}

	return Config{
		BaseURL:   base,
		StatePath: statePath,
	}, nil
}

// ViewState is the slice of UI state that survives restarts.
type ViewState struct {
	// Sort is the last-chosen sort preference as a single token,
	// e.g. "updated_at_desc". Empty means no preference saved yet.
	Sort string `json:"sort,omitempty"`
}

// LoadViewState reads persisted view state. A missing file is not an error
// and yields the zero state.
func LoadViewState(path string) (ViewState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ViewState{}, nil
		}
		return ViewState{}, fmt.Errorf("reading view state: %w", err)
	}
	var st ViewState
	if err := json.Unmarshal(data, &st); err != nil {
		return ViewState{}, fmt.Errorf("parsing view state: %w", err)
	}
	return st, nil
}

// SaveViewState writes view state, creating parent directories as needed.
func SaveViewState(path string, st ViewState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding view state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing view state: %w", err)
	}
	return nil
}
