package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "vitest", cfg.Generate.TestFramework)
	assert.Equal(t, 500, cfg.Analyze.MaxLinesOfCode)
	assert.Equal(t, 20, cfg.Analyze.MaxComplexity)
	assert.Equal(t, "'", cfg.QuoteChar())
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.File)
	want := DefaultConfig()
	assert.Equal(t, want.Generate, cfg.Generate)
	assert.Equal(t, want.Log, cfg.Log)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
project:
  name: storefront
generate:
  component_dir: app/ui
  test_framework: jest
  quote: double
  post_hooks:
    - npx prettier --write {files}
format:
  license: "Copyright Acme"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "storefront", cfg.Project.Name)
	assert.Equal(t, "src", cfg.Project.SrcDir, "keys the file omits keep their defaults")
	assert.Equal(t, "app/ui", cfg.Generate.ComponentDir)
	assert.Equal(t, "src/routes", cfg.Generate.RouteDir)
	assert.Equal(t, "jest", cfg.Generate.TestFramework)
	assert.Equal(t, `"`, cfg.QuoteChar())
	assert.Equal(t, []string{"npx prettier --write {files}"}, cfg.Generate.PostHooks)
	assert.Equal(t, "Copyright Acme", cfg.Format.License)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "log:\n  level: info\n")
	t.Setenv("CODEGEN_LOG_LEVEL", "debug")
	t.Setenv("CODEGEN_PROJECT_SRC_DIR", "lib")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "lib", cfg.Project.SrcDir)
}

func TestLoad_DotEnv(t *testing.T) {
	path := writeConfig(t, "project:\n  name: from-file\n")
	envFile := filepath.Join(filepath.Dir(path), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("CODEGEN_PROJECT_NAME=from-dotenv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("CODEGEN_PROJECT_NAME") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Project.Name)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		errContains string
	}{
		{"malformed yaml", "generate: [unclosed", "parsing config file"},
		{"unknown test framework", "generate:\n  test_framework: mocha\n", "test_framework"},
		{"unknown quote", "generate:\n  quote: backtick\n", "generate.quote"},
		{"unknown log level", "log:\n  level: loud\n", "log.level"},
		{"zero threshold", "analyze:\n  max_complexity: 0\n", "thresholds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := DefaultConfig()
	cfg.Project.Name = "saved"
	cfg.Generate.PostHooks = []string{"npx eslint --fix {files}"}

	require.NoError(t, SaveConfig(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: saved")
	assert.NotContains(t, string(data), "file:", "File is not persisted")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Project, loaded.Project)
	assert.Equal(t, cfg.Generate, loaded.Generate)
}
