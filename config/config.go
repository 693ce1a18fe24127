package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Tone backends.
const (
	OutputSpeaker = "speaker"
	OutputMIDI    = "midi"
)

// Config is the main configuration structure
type Config struct {
	Output     string `json:"output,omitempty"`     // speaker or midi
	MIDIPort   string `json:"midiPort,omitempty"`   // substring match, midi backend only
	Octave     int    `json:"octave,omitempty"`     // starting octave, 1-8
	ToneMillis int    `json:"toneMillis,omitempty"` // fixed note length
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Output:     OutputSpeaker,
		Octave:     4,
		ToneMillis: 200,
	}
}

// ToneDuration returns the configured note length, falling back to the
// default when unset.
func (c *Config) ToneDuration() time.Duration {
	if c.ToneMillis <= 0 {
		return 200 * time.Millisecond
	}
	return time.Duration(c.ToneMillis) * time.Millisecond
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-piano"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
