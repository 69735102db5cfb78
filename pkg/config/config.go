package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Host            string        `yaml:"host"`
		Port            int           `yaml:"port"`
		DisableCORS     bool          `yaml:"disable_cors"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Entrada struct {
		Path string `yaml:"path"`
	} `yaml:"entrada"`
	SaidaManual struct {
		Path string `yaml:"path"`
	} `yaml:"saida_manual"`
	Feed struct {
		URL      string        `yaml:"url"`
		Interval time.Duration `yaml:"interval"`
	} `yaml:"feed"`
	State struct {
		Backend string `yaml:"backend"` // file or redis
		Dir     string `yaml:"dir"`
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"state"`
	Static struct {
		Dir string `yaml:"dir"`
	} `yaml:"static"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// PORT and ENTRADA_JSON_PATH are the variables the worker deployment already
// exports, so they keep their historical names.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("ENTRADA_JSON_PATH"); v != "" {
		c.Entrada.Path = v
	}
	if v := os.Getenv("SAIDA_MANUAL_PATH"); v != "" {
		c.SaidaManual.Path = v
	}
	if v := os.Getenv("FEED_URL"); v != "" {
		c.Feed.URL = v
	}
	if v := os.Getenv("STATE_DIR"); v != "" {
		c.State.Dir = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.State.Backend = "redis"
		c.State.Redis.Addr = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Feed.Interval == 0 {
		c.Feed.Interval = time.Minute
	}
	if c.State.Backend == "" {
		c.State.Backend = "file"
	}
	if c.State.Dir == "" {
		c.State.Dir = "data/state"
	}
	if c.State.Redis.Prefix == "" {
		c.State.Redis.Prefix = "autotrader"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Entrada.Path == "" {
		return fmt.Errorf("entrada.path is required")
	}
	if c.State.Backend != "file" && c.State.Backend != "redis" {
		return fmt.Errorf("state.backend must be 'file' or 'redis', got '%s'", c.State.Backend)
	}
	if c.State.Backend == "redis" && c.State.Redis.Addr == "" {
		return fmt.Errorf("state.redis.addr is required for redis backend")
	}
	if c.Feed.Interval < time.Second {
		return fmt.Errorf("feed.interval must be at least 1s")
	}
	return nil
}
