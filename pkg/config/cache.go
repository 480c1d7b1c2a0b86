package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// cacheEnvelope is the on-disk last-known-good format
type cacheEnvelope struct {
	Scoring *ScoringConfig `msgpack:"scoring"`
	SavedAt time.Time      `msgpack:"saved_at"`
	Source  string         `msgpack:"source"`
}

// SaveCache writes a last-known-good copy of the scoring config. The write
// goes through a temp file and rename so a crash mid-write never leaves a
// truncated cache.
func SaveCache(path string, cfg *ScoringConfig, source string) error {
	raw, err := msgpack.Marshal(&cacheEnvelope{
		Scoring: cfg,
		SavedAt: time.Now().UTC(),
		Source:  source,
	})
	if err != nil {
		return fmt.Errorf("failed to encode config cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write config cache: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace config cache: %w", err)
	}

	return nil
}

// LoadCache reads the last-known-good scoring config. The cached document
// is re-validated so an incompatible leftover from an older build is
// rejected rather than scored against.
func LoadCache(path string) (*ScoringConfig, time.Time, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to read config cache: %w", err)
	}

	var env cacheEnvelope
	if err := msgpack.Unmarshal(raw, &env); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to decode config cache: %w", err)
	}
	if env.Scoring == nil {
		return nil, time.Time{}, fmt.Errorf("config cache holds no scoring config")
	}

	env.Scoring.fillTables()
	if err := env.Scoring.Validate(); err != nil {
		return nil, time.Time{}, fmt.Errorf("cached scoring config is invalid: %w", err)
	}

	return env.Scoring, env.SavedAt, nil
}
