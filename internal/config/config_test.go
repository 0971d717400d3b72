package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mcncl/jsonkit/internal/errors"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "config_test_*.yml")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Remove(tmpFile.Name()) })

	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	_ = tmpFile.Close()
	return tmpFile.Name()
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	assert.False(t, cfg.Parser.Strict)
	assert.Zero(t, cfg.Parser.MaxDepth)
	assert.Equal(t, ModeWrite, cfg.Output.Mode)
	assert.Equal(t, ColorAuto, cfg.Output.Color)
	assert.Equal(t, "none", cfg.Keys.Style)
	assert.False(t, cfg.Dev.Debug)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromYAML(t *testing.T) {
	path := writeConfig(t, `
parser:
  strict: true
  max_depth: 64
output:
  mode: tree
  color: never
keys:
  style: snake
dev:
  debug: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Parser.Strict)
	assert.Equal(t, 64, cfg.Parser.MaxDepth)
	assert.Equal(t, ModeTree, cfg.Output.Mode)
	assert.Equal(t, ColorNever, cfg.Output.Color)
	assert.Equal(t, "snake", cfg.Keys.Style)
	assert.True(t, cfg.Dev.Debug)
}

func TestConfig_LoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "parser:\n  strict: true\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Parser.Strict)
	assert.Equal(t, ModeWrite, cfg.Output.Mode)
	assert.Equal(t, ColorAuto, cfg.Output.Color)
}

func TestConfig_LoadNonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/config.yml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_LoadExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	defer func() { homedir.DisableCache = false }()

	require.NoError(t, os.WriteFile(filepath.Join(home, ".jsonkit.yml"), []byte("output:\n  mode: tree\n"), 0644))

	cfg, err := LoadConfig("~/.jsonkit.yml")
	require.NoError(t, err)
	assert.Equal(t, ModeTree, cfg.Output.Mode)
}

func TestConfig_LoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, `
output:
  mode: [unclosed array
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad mode", mutate: func(c *Config) { c.Output.Mode = "pretty" }, wantErr: errors.ErrInvalidMode},
		{name: "bad color", mutate: func(c *Config) { c.Output.Color = "sometimes" }, wantErr: errors.ErrInvalidColorMode},
		{name: "bad key style", mutate: func(c *Config) { c.Keys.Style = "SCREAMING" }, wantErr: errors.ErrInvalidKeyStyle},
		{name: "check mode", mutate: func(c *Config) { c.Output.Mode = ModeCheck }},
		{name: "kebab keys", mutate: func(c *Config) { c.Keys.Style = "kebab" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, &errors.AppError{Type: errors.ErrorTypeConfig})
		})
	}
}

func TestConfig_LoadRejectsUnknownValues(t *testing.T) {
	path := writeConfig(t, "output:\n  color: rainbow\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidColorMode)
}

func TestConfig_FindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	nestedDir := filepath.Join(tmpDir, "project", "subdir")
	require.NoError(t, os.MkdirAll(nestedDir, 0o755))

	configPath := filepath.Join(tmpDir, "project", ".jsonkit.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("output:\n  mode: stats\n"), 0o644))

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()
	require.NoError(t, os.Chdir(nestedDir))

	// Should find it in the parent directory
	foundPath := FindConfigFile()
	require.NotEmpty(t, foundPath, "Should find config file")

	foundContent, err := os.ReadFile(foundPath)
	require.NoError(t, err)
	assert.Contains(t, string(foundContent), "mode: stats")
}

func TestConfig_FindConfigFileFrom(t *testing.T) {
	tmpDir := t.TempDir()
	nestedDir := filepath.Join(tmpDir, "a", "b")
	require.NoError(t, os.MkdirAll(nestedDir, 0o755))

	// A directory with a config name is not a config file.
	require.NoError(t, os.MkdirAll(filepath.Join(nestedDir, ".jsonkit.yml"), 0o755))
	configPath := filepath.Join(tmpDir, "a", "jsonkit.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("dev:\n  debug: true\n"), 0o644))

	assert.Equal(t, configPath, FindConfigFileFrom(nestedDir))
}

func TestConfig_FindConfigFileNotFound(t *testing.T) {
	tmpDir := t.TempDir()

	// Should not find config file
	assert.Empty(t, FindConfigFileFrom(tmpDir))
}

func TestConfig_MergeConfigs(t *testing.T) {
	base := NewConfig()
	base.Output.Mode = ModeTree
	base.Keys.Style = "snake"
	base.Parser.MaxDepth = 10

	merged := MergeConfigs(base, Overrides{
		Color:  ColorAlways,
		Strict: true,
	})

	assert.Equal(t, ModeTree, merged.Output.Mode)     // Kept from base
	assert.Equal(t, ColorAlways, merged.Output.Color) // Overridden
	assert.Equal(t, "snake", merged.Keys.Style)       // Kept from base
	assert.True(t, merged.Parser.Strict)              // Overridden
	assert.Equal(t, 10, merged.Parser.MaxDepth)       // Kept from base
	assert.False(t, merged.Dev.Debug)

	merged = MergeConfigs(base, Overrides{MaxDepth: 3})
	assert.Equal(t, 3, merged.Parser.MaxDepth)

	// Base is not modified
	assert.Equal(t, ColorAuto, base.Output.Color)
	assert.False(t, base.Parser.Strict)
}

func TestLoadConfigWithCLI(t *testing.T) {
	path := writeConfig(t, `
output:
  mode: tree
  color: never
keys:
  style: camel
`)

	cfg, err := LoadConfigWithCLI(path, Overrides{Mode: ModeStats, Debug: true})
	require.NoError(t, err)

	// Verify precedence: CLI > config file > defaults
	assert.Equal(t, ModeStats, cfg.Output.Mode)   // From CLI
	assert.Equal(t, ColorNever, cfg.Output.Color) // From config file
	assert.Equal(t, "camel", cfg.Keys.Style)      // From config file
	assert.True(t, cfg.Dev.Debug)                 // From CLI
	assert.False(t, cfg.Parser.Strict)            // Default
}

func TestLoadConfigWithCLI_NoFile(t *testing.T) {
	cfg, err := LoadConfigWithCLI("", Overrides{})
	require.NoError(t, err)
	assert.Equal(t, NewConfig(), cfg)
}

func TestLoadConfigWithCLI_InvalidOverride(t *testing.T) {
	_, err := LoadConfigWithCLI("", Overrides{Mode: "pretty"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidMode)
}
