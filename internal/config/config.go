package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Chinh13571113/careermate-web-sub001/pkg/domain"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config is the application configuration for the serve and run commands.
type Config struct {
	Listen        string       `yaml:"listen"`
	MetricsListen string       `yaml:"metrics_listen"`
	QuestionCap   int          `yaml:"question_cap"`
	Store         StoreConfig  `yaml:"store"`
	OpenAI        OpenAIConfig `yaml:"openai"`
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	Backend string      `yaml:"backend"`
	Path    string      `yaml:"path"` // file backend
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig configures the redis store and locker.
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// OpenAIConfig configures the interviewer/reporter client.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Listen:        ":8080",
		MetricsListen: ":2112",
		QuestionCap:   domain.DefaultQuestionCap,
		Store: StoreConfig{
			Backend: BackendMemory,
			Redis: RedisConfig{
				Address: "localhost:6379",
			},
		},
	}
}

// Load reads the YAML configuration file, applies environment overrides
// and validates the result. An empty filename yields the defaults (with
// env overrides still applied).
func Load(filename string) (*Config, error) {
	cfg := Default()

	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyEnv lets secrets and addresses come from the environment, so a
// config file never has to contain an API key.
func applyEnv(cfg *Config) {
	if v := os.Getenv("CAREERMATE_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("CAREERMATE_METRICS_LISTEN"); v != "" {
		cfg.MetricsListen = v
	}
	if v := os.Getenv("CAREERMATE_STORE_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("CAREERMATE_REDIS_ADDRESS"); v != "" {
		cfg.Store.Redis.Address = v
	}
	if v := os.Getenv("CAREERMATE_REDIS_PASSWORD"); v != "" {
		cfg.Store.Redis.Password = v
	}
	if v := os.Getenv("CAREERMATE_OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := os.Getenv("CAREERMATE_OPENAI_BASE_URL"); v != "" {
		cfg.OpenAI.BaseURL = v
	}
	if v := os.Getenv("CAREERMATE_OPENAI_MODEL"); v != "" {
		cfg.OpenAI.Model = v
	}
}

func validate(cfg *Config) error {
	switch cfg.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	if cfg.QuestionCap <= 0 {
		return fmt.Errorf("question_cap must be greater than 0")
	}
	if cfg.Store.Backend == BackendRedis && cfg.Store.Redis.Address == "" {
		return fmt.Errorf("redis backend requires an address")
	}
	return nil
}
