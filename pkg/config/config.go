// Package config loads codegen.yaml.
//
// Values come from three layers, later ones winning: DefaultConfig, the
// YAML file, and CODEGEN_* environment variables (CODEGEN_LOG_LEVEL sets
// log.level). A .env file next to the config file is loaded into the
// environment first.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/analyzer"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/logger"
)

// FileName is the config file looked up in the working directory.
const FileName = "codegen.yaml"

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "CODEGEN"

// ErrConfigNotFound is returned when an explicitly named config file does
// not exist.
var ErrConfigNotFound = errors.New("config file not found")

// Config represents codegen.yaml.
type Config struct {
	Project  ProjectConfig  `yaml:"project" mapstructure:"project"`
	Generate GenerateConfig `yaml:"generate" mapstructure:"generate"`
	Analyze  AnalyzeConfig  `yaml:"analyze" mapstructure:"analyze"`
	Format   FormatConfig   `yaml:"format" mapstructure:"format"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`

	// File is the config file that was read, empty when defaults were used.
	File string `yaml:"-" mapstructure:"-"`
}

// ProjectConfig holds project layout.
type ProjectConfig struct {
	Name    string `yaml:"name" mapstructure:"name"`
	SrcDir  string `yaml:"src_dir" mapstructure:"src_dir"`
	TestDir string `yaml:"test_dir" mapstructure:"test_dir"`
}

// GenerateConfig controls scaffolding.
type GenerateConfig struct {
	ComponentDir  string `yaml:"component_dir" mapstructure:"component_dir"`
	RouteDir      string `yaml:"route_dir" mapstructure:"route_dir"`
	ModelDir      string `yaml:"model_dir" mapstructure:"model_dir"`
	TestFramework string `yaml:"test_framework" mapstructure:"test_framework"`
	// Quote is the string delimiter in generated code: "single" or "double".
	Quote string `yaml:"quote" mapstructure:"quote"`
	// TemplateDir holds user templates that replace the built-in ones.
	TemplateDir string   `yaml:"template_dir" mapstructure:"template_dir"`
	PostHooks   []string `yaml:"post_hooks" mapstructure:"post_hooks"`
}

// AnalyzeConfig holds analysis settings. The thresholds are reported in
// output; the analyzer's own limits are fixed.
type AnalyzeConfig struct {
	MaxLinesOfCode int      `yaml:"max_lines_of_code" mapstructure:"max_lines_of_code"`
	MaxComplexity  int      `yaml:"max_complexity" mapstructure:"max_complexity"`
	Exclude        []string `yaml:"exclude" mapstructure:"exclude"`
}

// FormatConfig holds formatting settings.
type FormatConfig struct {
	License string `yaml:"license" mapstructure:"license"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Project: ProjectConfig{
			SrcDir:  "src",
			TestDir: "tests",
		},
		Generate: GenerateConfig{
			ComponentDir:  "src/components",
			RouteDir:      "src/routes",
			ModelDir:      "src/models",
			TestFramework: "vitest",
			Quote:         "single",
			PostHooks:     []string{},
		},
		Analyze: AnalyzeConfig{
			MaxLinesOfCode: analyzer.MaxLinesOfCode,
			MaxComplexity:  analyzer.MaxComplexity,
			Exclude:        []string{},
		},
		Log: LogConfig{Level: "warn"},
	}
}

// Load reads the config at path, or codegen.yaml in the working directory
// when path is empty. A missing default file yields DefaultConfig; a
// missing explicit file is ErrConfigNotFound.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = FileName
	}
	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}

	defaults, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("marshaling defaults: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Reading the defaults first registers every key, so environment
	// overrides apply even to keys the file leaves out.
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, fmt.Errorf("reading defaults: %w", err)
	}

	found := true
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && explicit:
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	case errors.Is(err, fs.ErrNotExist):
		found = false
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if found {
		if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if found {
		cfg.File = path
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", path, err)
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	switch c.Generate.TestFramework {
	case "vitest", "jest":
	default:
		return fmt.Errorf("generate.test_framework must be vitest or jest, got %q", c.Generate.TestFramework)
	}
	switch c.Generate.Quote {
	case "single", "double":
	default:
		return fmt.Errorf("generate.quote must be single or double, got %q", c.Generate.Quote)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Analyze.MaxLinesOfCode <= 0 || c.Analyze.MaxComplexity <= 0 {
		return fmt.Errorf("analyze thresholds must be positive")
	}
	return nil
}

// QuoteChar returns the configured string delimiter.
func (c *Config) QuoteChar() string {
	if c.Generate.Quote == "double" {
		return `"`
	}
	return "'"
}

// SaveConfig writes cfg as YAML.
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
