package toml

import (
	"fmt"
	"time"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version      int              `toml:"version"`
	APIKeyRef    string           `toml:"api_key_ref,omitempty"`
	Stagger      string           `toml:"stagger,omitempty"`
	CrashCeiling int              `toml:"crash_ceiling,omitempty"`
	Identities   []identitySchema `toml:"identities"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported settings schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type identitySchema struct {
	ID            string   `toml:"id"`
	DisplayName   string   `toml:"display_name,omitempty"`
	SteamID       string   `toml:"steam_id"`
	Handler       string   `toml:"handler,omitempty"`
	Admins        []string `toml:"admins"`
	EventsPath    string   `toml:"events_path"`
	ResponsesPath string   `toml:"responses_path,omitempty"`
	PollInterval  string   `toml:"poll_interval,omitempty"`
	MaxIdle       string   `toml:"max_idle,omitempty"`
}

func parseDuration(field, raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", field, err)
	}
	return d, nil
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	return d.String()
}
