package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultContainer is the element id the web client mounts the backdrop in.
const DefaultContainer = "canvas-container"

// Config holds all graphlearn configuration.
type Config struct {
	// Core settings
	Name string `yaml:"name"`

	// Window and scene
	Window WindowConfig `yaml:"window"`
	Render RenderConfig `yaml:"render"`

	// Headless runner
	Headless HeadlessConfig `yaml:"headless"`

	// API stub
	Server ServerConfig `yaml:"server"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig configures the desktop window.
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Container string `yaml:"container"`
}

// RenderConfig configures the backdrop renderer.
type RenderConfig struct {
	Seed          uint64  `yaml:"seed"` // 0 picks a random layout
	IntroFade     float64 `yaml:"intro_fade"`
	ShowFPS       bool    `yaml:"show_fps"`
	Debug         bool    `yaml:"debug"`
	ScreenshotDir string  `yaml:"screenshot_dir"`
	Script        string  `yaml:"script"` // optional path to a YAML step script
}

// HeadlessConfig configures the no-window runner.
type HeadlessConfig struct {
	Hz     int    `yaml:"hz"`
	Ticks  uint64 `yaml:"ticks"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// ServerConfig configures the HTTP API stub.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeout     string `yaml:"read_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name: "graphlearn",

		Window: WindowConfig{
			Title:     "GraphLearn",
			Width:     1280,
			Height:    720,
			Container: DefaultContainer,
		},

		Render: RenderConfig{
			IntroFade:     1.5,
			ScreenshotDir: "screenshots",
		},

		Headless: HeadlessConfig{
			Hz:     60,
			Width:  1280,
			Height: 720,
		},

		Server: ServerConfig{
			Addr:            ":3000",
			ReadTimeout:     "10s",
			ShutdownTimeout: "5s",
		},

		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	if addr := os.Getenv("GRAPHLEARN_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if lvl := os.Getenv("GRAPHLEARN_LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
}

// ValidLogLevels lists the accepted logging.level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration for values the commands cannot run with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.Container == "" {
		return fmt.Errorf("window.container must not be empty")
	}
	if c.Render.IntroFade < 0 {
		return fmt.Errorf("render.intro_fade must not be negative: %v", c.Render.IntroFade)
	}
	if c.Headless.Hz <= 0 {
		return fmt.Errorf("headless.hz must be positive: %d", c.Headless.Hz)
	}
	if c.Headless.Width <= 0 || c.Headless.Height <= 0 {
		return fmt.Errorf("invalid headless size %dx%d", c.Headless.Width, c.Headless.Height)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if _, err := c.GetReadTimeout(); err != nil {
		return err
	}
	if _, err := c.GetShutdownTimeout(); err != nil {
		return err
	}

	validLevel := false
	for _, l := range ValidLogLevels {
		if c.Logging.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	return nil
}

// GetReadTimeout returns the server read timeout as a duration.
func (c *Config) GetReadTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Server.ReadTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid server.read_timeout %q: %w", c.Server.ReadTimeout, err)
	}
	return d, nil
}

// GetShutdownTimeout returns the graceful shutdown budget as a duration.
func (c *Config) GetShutdownTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid server.shutdown_timeout %q: %w", c.Server.ShutdownTimeout, err)
	}
	return d, nil
}
