package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonkit/internal/errors"
	"github.com/mcncl/jsonkit/internal/transform"
)

// Output modes
const (
	ModeWrite  = "write"
	ModeTokens = "tokens"
	ModeTree   = "tree"
	ModeStats  = "stats"
	ModeCheck  = "check"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Modes lists the accepted output modes.
var Modes = []string{ModeWrite, ModeTokens, ModeTree, ModeStats, ModeCheck}

// ColorModes lists the accepted color modes.
var ColorModes = []string{ColorAuto, ColorAlways, ColorNever}

// Config represents the complete configuration for jsonkit
type Config struct {
	Parser ParserConfig `yaml:"parser"`
	Output OutputConfig `yaml:"output"`
	Keys   KeysConfig   `yaml:"keys"`
	Dev    DevConfig    `yaml:"dev"`
}

// ParserConfig controls how documents are read
type ParserConfig struct {
	// Strict requires commas between items and forbids trailing commas.
	Strict bool `yaml:"strict"`
	// MaxDepth bounds object and array nesting. Zero keeps the parser default.
	MaxDepth int `yaml:"max_depth"`
}

// OutputConfig controls what is printed and how
type OutputConfig struct {
	Mode  string `yaml:"mode"`
	Color string `yaml:"color"`
}

// KeysConfig controls object key rewriting
type KeysConfig struct {
	Style string `yaml:"style"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			Strict: false,
		},
		Output: OutputConfig{
			Mode:  ModeWrite,
			Color: ColorAuto,
		},
		Keys: KeysConfig{
			Style: string(transform.KeyStyleNone),
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file. A leading ~ in path is
// expanded to the user's home directory.
func LoadConfig(path string) (*Config, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigNames are the file names FindConfigFile looks for, in order.
var ConfigNames = []string{".jsonkit.yml", ".jsonkit.yaml", "jsonkit.yml", "jsonkit.yaml"}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return FindConfigFileFrom(currentDir)
}

// FindConfigFileFrom searches dir and its parents for a config file
func FindConfigFileFrom(dir string) string {
	currentDir := dir
	for {
		for _, name := range ConfigNames {
			configPath := filepath.Join(currentDir, name)
			if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
				return configPath
			}
		}

		// Move up one directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks that enumerated settings hold known values
func (c *Config) Validate() error {
	if !contains(Modes, c.Output.Mode) {
		return errors.NewConfigError(fmt.Sprintf("unknown output mode '%s'", c.Output.Mode), errors.ErrInvalidMode)
	}
	if !contains(ColorModes, c.Output.Color) {
		return errors.NewConfigError(fmt.Sprintf("unknown color mode '%s'", c.Output.Color), errors.ErrInvalidColorMode)
	}
	for _, style := range transform.KeyStyles {
		if string(style) == c.Keys.Style {
			return nil
		}
	}
	return errors.NewConfigError(fmt.Sprintf("unknown key style '%s'", c.Keys.Style), errors.ErrInvalidKeyStyle)
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

// Overrides holds settings given on the command line. Empty strings, zero and false
// mean "not set".
type Overrides struct {
	Mode     string
	Color    string
	KeyStyle string
	Strict   bool
	Debug    bool
	MaxDepth int
}

// MergeConfigs applies overrides on top of a copy of base
func MergeConfigs(base *Config, override Overrides) *Config {
	merged := *base

	if override.Mode != "" {
		merged.Output.Mode = override.Mode
	}
	if override.Color != "" {
		merged.Output.Color = override.Color
	}
	if override.KeyStyle != "" {
		merged.Keys.Style = override.KeyStyle
	}
	if override.MaxDepth > 0 {
		merged.Parser.MaxDepth = override.MaxDepth
	}
	// Flags can only switch these on
	if override.Strict {
		merged.Parser.Strict = true
	}
	if override.Debug {
		merged.Dev.Debug = true
	}

	return &merged
}

// LoadConfigWithCLI loads config with CLI argument precedence: CLI, then the
// config file, then defaults. An empty configPath skips the file.
func LoadConfigWithCLI(configPath string, override Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	cfg = MergeConfigs(cfg, override)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
