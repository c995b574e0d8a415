package server

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config drives the browser host.
type Config struct {
	Addr            string         `yaml:"addr"`
	BasePath        string         `yaml:"base_path"`
	Title           string         `yaml:"title"`
	ReadBufferSize  int            `yaml:"read_buffer_size"`
	WriteBufferSize int            `yaml:"write_buffer_size"`
	MaxMessageSize  int64          `yaml:"max_message_size"`
	AllowedOrigins  []string       `yaml:"allowed_origins"`
	ShutdownTimeout time.Duration  `yaml:"shutdown_timeout"`
	Manifest        string         `yaml:"manifest"`
	TemplateDir     string         `yaml:"template_dir"`
	Parameters      map[string]any `yaml:"parameters"`
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		MaxMessageSize:  4096,
		ShutdownTimeout: 5 * time.Second,
	}
}

// LoadConfig reads a YAML file over DefaultConfig. An empty path returns the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("server: read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("server: parse config %q: %w", path, err)
	}
	return cfg.normalize(), nil
}

func (c Config) normalize() Config {
	defaults := DefaultConfig()
	if strings.TrimSpace(c.Addr) == "" {
		c.Addr = defaults.Addr
	}
	if c.ReadBufferSize <= 0 {
		c.ReadBufferSize = defaults.ReadBufferSize
	}
	if c.WriteBufferSize <= 0 {
		c.WriteBufferSize = defaults.WriteBufferSize
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = defaults.MaxMessageSize
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = defaults.ShutdownTimeout
	}
	c.TemplateDir = strings.TrimSpace(c.TemplateDir)
	c.BasePath = strings.TrimRight(strings.TrimSpace(c.BasePath), "/")
	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		c.BasePath = "/" + c.BasePath
	}
	return c
}

// mountPath joins the base path and a route path.
func (c Config) mountPath(route string) string {
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return c.BasePath + route
}
