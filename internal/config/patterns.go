package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Dee-Wang-92/Physician-MB/internal/marker"
)

// LoadPatterns reads a pattern catalogue from path, layered over the
// built-in defaults so a partial file only overrides the fields it
// names. A missing, unreadable, or malformed file falls back to the
// defaults; the returned error says why, and the returned catalogue is
// always usable. An empty path means the defaults, with no error.
func LoadPatterns(path string) (marker.Patterns, error) {
	defaults := marker.DefaultPatterns()
	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return defaults, fmt.Errorf("read patterns file: %w", err)
	}

	p := defaults
	if err := json.Unmarshal(data, &p); err != nil {
		// Unmarshal may have written partial fields; hand back clean defaults.
		return marker.DefaultPatterns(), fmt.Errorf("parse patterns file %s: %w", path, err)
	}
	return p, nil
}

// SavePatterns writes a catalogue as indented JSON. Pairs with the init
// command so users can dump the defaults, tune them, and feed the file
// back through --config.
func SavePatterns(path string, p marker.Patterns) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode patterns: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write patterns file: %w", err)
	}
	return nil
}
