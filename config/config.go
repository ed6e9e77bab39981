package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration structure.
type Config struct {
	Match   MatchConfig   `json:"match"`
	Display DisplayConfig `json:"display"`
	Filters FilterConfig  `json:"filters"`
}

// MatchConfig holds the similarity heuristic parameters.
type MatchConfig struct {
	// MinPrefixLength is the minimum shared-prefix ratio, in (0, 1],
	// required to call two lines a match.
	MinPrefixLength float64 `json:"minPrefixLength"`
}

// DisplayConfig holds rendering options.
type DisplayConfig struct {
	// ContextLines is the clip distance around highlighted lines.
	ContextLines int `json:"contextLines"`
}

// FilterConfig restricts which files candidates are drawn from.
type FilterConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Match: MatchConfig{
			MinPrefixLength: 0.8,
		},
		Display: DisplayConfig{
			ContextLines: 10,
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
	}
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if c.Match.MinPrefixLength <= 0 || c.Match.MinPrefixLength > 1 {
		return fmt.Errorf("match.minPrefixLength must be in (0, 1], got %v", c.Match.MinPrefixLength)
	}
	if c.Display.ContextLines < 1 {
		return fmt.Errorf("display.contextLines must be positive, got %d", c.Display.ContextLines)
	}
	return nil
}

// LoadConfig loads configuration from a file, merging with defaults. An
// empty path tries .linetrace.json in the current directory, then in the
// home directory; a missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		candidates := []string{".linetrace.json"}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, ".linetrace.json"))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
