// Package config loads service configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config is the full service configuration. Environment overrides follow
// envconfig's nesting scheme: TANDOOR_<SECTION>_<FIELD>, for example
// TANDOOR_SERVER_PORT or TANDOOR_KITCHEN_DEBIT_STOCK_ON_CREATE.
type Config struct {
	LogLevel string `yaml:"log_level" split_words:"true"`

	Server struct {
		Port        int `yaml:"port"`
		MetricsPort int `yaml:"metrics_port" split_words:"true"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Kitchen struct {
		PrepTime  time.Duration `yaml:"prep_time" split_words:"true"`
		CookTime  time.Duration `yaml:"cook_time" split_words:"true"`
		PlateTime time.Duration `yaml:"plate_time" split_words:"true"`
		// InstantPhases skips the phase waits; useful for demos
		InstantPhases bool `yaml:"instant_phases" split_words:"true"`
		// DebitStockOnCreate turns on atomic check-and-decrement of the
		// ledger at order creation
		DebitStockOnCreate bool `yaml:"debit_stock_on_create" split_words:"true"`
	} `yaml:"kitchen"`

	LLM struct {
		// Enabled switches the reply renderer from templates to the model
		Enabled bool `yaml:"enabled"`
		// The explicit tag makes the bare OPENAI_API_KEY variable work as
		// an alias alongside TANDOOR_LLM_OPENAI_API_KEY
		OpenAIKey string `yaml:"openai_key" envconfig:"OPENAI_API_KEY"`
		Model     string `yaml:"model"`
	} `yaml:"llm"`
}

// Default returns the baseline configuration before file or environment
// values are applied.
func Default() *Config {
	var cfg Config
	cfg.LogLevel = "info"
	cfg.Server.Port = 8080
	cfg.Server.MetricsPort = 9090
	cfg.Database.Path = "tandoor.db"
	cfg.Kitchen.PrepTime = 3 * time.Minute
	cfg.Kitchen.CookTime = 8 * time.Minute
	cfg.Kitchen.PlateTime = 2 * time.Minute
	cfg.LLM.Model = "gpt-4o-mini"
	return &cfg
}

// Load starts from defaults, merges the YAML file at path (if it exists),
// then applies TANDOOR_<SECTION>_<FIELD> environment overrides on top.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Missing config file is fine, env and defaults cover it
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := envconfig.Process("tandoor", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	return cfg, nil
}
