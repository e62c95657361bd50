// Package config loads the blocksaver YAML configuration.
package config

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/ib-77/blocksaver/internal/version"
	"github.com/ib-77/blocksaver/pkg/tools"
)

// Config is the file layout of blocksaver.yaml.
type Config struct {
	// Version is embedded in produced documents; defaults to the build version.
	Version    string         `yaml:"version"`
	StubTool   string         `yaml:"stub_tool"`
	MaxWorkers int            `yaml:"max_workers"`
	Tools      []ToolConfig   `yaml:"tools"`
	Sanitize   SanitizeConfig `yaml:"sanitize"`
	Log        LogConfig      `yaml:"log"`
}

// ToolConfig registers a tool and the data fields it requires.
type ToolConfig struct {
	Name     string   `yaml:"name"`
	Required []string `yaml:"required,omitempty"`
}

type SanitizeConfig struct {
	TrimSpace bool `yaml:"trim_space"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Version:  version.Version,
		StubTool: tools.DefaultStubTool,
		Tools: []ToolConfig{
			{Name: "paragraph", Required: []string{"text"}},
			{Name: "header", Required: []string{"text"}},
			{Name: "list", Required: []string{"items"}},
			{Name: "quote", Required: []string{"text"}},
			{Name: "delimiter"},
		},
		Log: LogConfig{Level: "info", Format: "console"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read config file %s", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, eris.Wrapf(err, "failed to parse config file %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, eris.Wrap(err, "invalid config")
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.StubTool) == "" {
		return eris.New("stub_tool must not be empty")
	}
	if c.MaxWorkers < 0 {
		return eris.Errorf("max_workers must be >= 0, got %d", c.MaxWorkers)
	}

	seen := map[string]bool{}
	for i, t := range c.Tools {
		if strings.TrimSpace(t.Name) == "" {
			return eris.Errorf("tools[%d]: name is required", i)
		}
		if t.Name == c.StubTool {
			return eris.Errorf("tools[%d]: %q is the stub tool", i, t.Name)
		}
		if seen[t.Name] {
			return eris.Errorf("tools[%d]: duplicate tool %q", i, t.Name)
		}
		seen[t.Name] = true
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return eris.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return eris.Errorf("log.format %q is not one of console, json", c.Log.Format)
	}
	return nil
}

// Registry builds the tool registry described by the config.
func (c *Config) Registry() (*tools.Registry, error) {
	r := tools.NewRegistry(c.StubTool)
	for _, t := range c.Tools {
		var v tools.Validator
		if len(t.Required) > 0 {
			v = tools.RequireFields(t.Required...)
		}
		if err := r.Register(t.Name, v); err != nil {
			return nil, eris.Wrapf(err, "register tool %s", t.Name)
		}
	}
	return r, nil
}
