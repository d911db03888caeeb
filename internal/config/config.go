package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config contains runtime settings for the CLI and the MCP server
type Config struct {
	LogLevel string `yaml:"log_level"`
	Host     string `yaml:"host"` // default 0.0.0.0
	Port     string `yaml:"port"` // default PORT env or 8080
	Storage  struct {
		DataDir  string `yaml:"data_dir"`
		FileName string `yaml:"file_name"`
	} `yaml:"storage"`
	HH struct {
		BaseURL   string        `yaml:"base_url"`
		UserAgent string        `yaml:"user_agent"`
		PerPage   int           `yaml:"per_page"`
		MaxPages  int           `yaml:"max_pages"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"hh"` // hh.ru API client settings
}

// Default returns the built-in settings
func Default() Config {
	cfg := Config{
		LogLevel: "info",
		Host:     "0.0.0.0",
		Port:     "8080",
	}
	cfg.Storage.DataDir = "data"
	cfg.Storage.FileName = "vacancies.json"
	cfg.HH.BaseURL = "https://api.hh.ru/vacancies"
	cfg.HH.UserAgent = "HH-User-Agent"
	cfg.HH.PerPage = 100
	cfg.HH.MaxPages = 20
	cfg.HH.Timeout = 30 * time.Second
	return cfg
}

// Load starts from defaults, applies the YAML file at path when it exists
// and then environment variables
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Validate reports settings the client and store cannot work with
func (c Config) Validate() error {
	var problems []string

	if c.HH.PerPage < 1 || c.HH.PerPage > 100 {
		problems = append(problems, fmt.Sprintf("hh.per_page must be within 1..100, got %d", c.HH.PerPage))
	}
	if c.HH.MaxPages < 1 {
		problems = append(problems, fmt.Sprintf("hh.max_pages must be positive, got %d", c.HH.MaxPages))
	}
	if c.Storage.DataDir == "" {
		problems = append(problems, "storage.data_dir is required")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv("MCP_HOST"); v != "" {
		cfg.Host = v
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	if v := os.Getenv("VACANCIES_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}

	if v := os.Getenv("VACANCIES_FILE"); v != "" {
		cfg.Storage.FileName = v
	}

	if v := os.Getenv("HH_BASE_URL"); v != "" {
		cfg.HH.BaseURL = v
	}

	if v := os.Getenv("HH_USER_AGENT"); v != "" {
		cfg.HH.UserAgent = v
	}

	if v := os.Getenv("HH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse HH_TIMEOUT: %w", err)
		}
		cfg.HH.Timeout = d
	}

	return nil
}
