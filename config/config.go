package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/creasty/defaults"
	"github.com/mitchellh/go-homedir"
)

// Config represents the application configuration
type Config struct {
	OutputDir        string `json:"output_dir"`
	APIBaseURL       string `json:"api_base_url" default:"https://api.github.com"`
	UserAgent        string `json:"user_agent" default:"folder-pack"`
	ShowProgress     bool   `json:"show_progress" default:"true"`
	ProgressBarStyle string `json:"progress_bar_style" default:"█"`
	UseCache         bool   `json:"use_cache"`
	CacheDir         string `json:"cache_dir"`
	MaxDepth         int    `json:"max_depth" default:"64"`
	Summary          bool   `json:"summary" default:"true"`
	Color            bool   `json:"color" default:"true"`
	Debug            bool   `json:"debug"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	var config Config
	if err := defaults.Set(&config); err != nil {
		panic(fmt.Sprintf("invalid config defaults: %v", err))
	}
	return config
}

// LoadConfig loads the configuration from the user's config file, creating
// it with default values on first use.
func LoadConfig() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom loads the configuration at configPath. Keys missing from the file
// keep their default values.
func LoadFrom(configPath string) (Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("error reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("error parsing config file %s: %w", configPath, err)
	}

	if err := config.expandPaths(); err != nil {
		return DefaultConfig(), err
	}

	return config, nil
}

// SaveTo saves the configuration to configPath
func SaveTo(configPath string, config Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Path returns the path to the config file
func Path() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "folder-pack", "config.json")
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.OutputDir, &c.CacheDir} {
		if *p == "" {
			continue
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("error expanding %s: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// createDefaultConfig creates a new config file with default values
func createDefaultConfig(configPath string) (Config, error) {
	config := DefaultConfig()
	if err := SaveTo(configPath, config); err != nil {
		return config, fmt.Errorf("error creating default config: %w", err)
	}
	return config, nil
}
