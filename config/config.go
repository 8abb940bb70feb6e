package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/dotan-asm/mipsasm/parser"
)

// Config represents the assembler's user-configurable settings. Only a
// handful of knobs are exposed: the source-size limits §9 names as build
// constants are still overridable for experimentation, and the diagnostics
// printer's presentation can be tuned per terminal.
type Config struct {
	// Limits mirrors the size constants of parser/constants.go. Values of
	// zero or below fall back to the built-in defaults at load time.
	Limits struct {
		MaxProgLines int `toml:"max_prog_lines"`
		MaxLabelLen  int `toml:"max_label_len"`
		MaxLineLen   int `toml:"max_line_len"`
		InitialIC    int `toml:"initial_ic"`
	} `toml:"limits"`

	// Diagnostics controls the diag package's rendering.
	Diagnostics struct {
		ColorOutput    bool `toml:"color_output"`
		ShowSourceLine bool `toml:"show_source_line"`
		WarningsAsErr  bool `toml:"warnings_as_errors"`
	} `toml:"diagnostics"`
}

// DefaultConfig returns a configuration matching parser/constants.go and a
// plain, color-enabled diagnostics printer.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Limits.MaxProgLines = parser.MaxProgLines
	cfg.Limits.MaxLabelLen = parser.MaxLabelLen
	cfg.Limits.MaxLineLen = parser.MaxLineLen
	cfg.Limits.InitialIC = parser.InitialIC

	cfg.Diagnostics.ColorOutput = true
	cfg.Diagnostics.ShowSourceLine = true
	cfg.Diagnostics.WarningsAsErr = false

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "mipsasm")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "mipsasm")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file, falling back to
// defaults for any limit left at zero.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Limits.MaxProgLines <= 0 {
		cfg.Limits.MaxProgLines = parser.MaxProgLines
	}
	if cfg.Limits.MaxLabelLen <= 0 {
		cfg.Limits.MaxLabelLen = parser.MaxLabelLen
	}
	if cfg.Limits.MaxLineLen <= 0 {
		cfg.Limits.MaxLineLen = parser.MaxLineLen
	}
	if cfg.Limits.InitialIC <= 0 {
		cfg.Limits.InitialIC = parser.InitialIC
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
