package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port        int `yaml:"port"`
		MetricsPort int `yaml:"metrics_port"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`
	Provider struct {
		BaseURL     string  `yaml:"base_url"`
		APIKey      string  `yaml:"api_key"`
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float64 `yaml:"temperature"`
	} `yaml:"provider"`
	Redis struct {
		Addr string `yaml:"addr"`
	} `yaml:"redis"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	LogLevel string `yaml:"log_level"`
}

// Load reads the configuration file at path. A missing file is not an error;
// defaults and environment variables are applied either way.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.MetricsPort == 0 {
		c.Server.MetricsPort = 9090
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite3"
	}
	if c.Database.DSN == "" {
		c.Database.DSN = "pantrybot.db"
	}
	if c.Provider.BaseURL == "" {
		c.Provider.BaseURL = "https://api.together.xyz/v1"
	}
	if c.Provider.APIKey == "" {
		c.Provider.APIKey = os.Getenv("TOGETHER_API_KEY")
	}
	if c.Provider.Model == "" {
		c.Provider.Model = "meta-llama/Meta-Llama-3.1-405B-Instruct-Turbo"
	}
	if c.Provider.MaxTokens == 0 {
		c.Provider.MaxTokens = 512
	}
	if c.Provider.Temperature == 0 {
		c.Provider.Temperature = 0.7
	}
	if c.Auth.JWTSecret == "" {
		c.Auth.JWTSecret = os.Getenv("PANTRYBOT_JWT_SECRET")
	}
}
