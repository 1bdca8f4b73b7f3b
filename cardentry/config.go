package cardentry

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is a configuration for the card entry application
type Config struct {
	Env      string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPAddr string `yaml:"http_addr" env:"HTTP_ADDR" env-default:"localhost:3000"`
	// CurrencySymbol is printed in front of every monetary value.
	CurrencySymbol string           `yaml:"currency_symbol" env:"CURRENCY_SYMBOL" env-default:"£"`
	Backend        BackendConfig    `yaml:"backend"`
	DevBackend     DevBackendConfig `yaml:"dev_backend"`
}

// BackendConfig points at the remote card collection.
type BackendConfig struct {
	URL string `yaml:"url" env:"BACKEND_URL" env-default:"http://localhost:8080/api/cards"`
	// Timeout of 0 leaves requests uncapped.
	Timeout time.Duration `yaml:"timeout" env:"BACKEND_TIMEOUT" env-default:"0s"`
}

// DevBackendConfig runs an in-memory card collection next to the UI.
type DevBackendConfig struct {
	Enabled bool   `yaml:"enabled" env:"DEV_BACKEND" env-default:"false"`
	Addr    string `yaml:"addr" env:"DEV_BACKEND_ADDR" env-default:"localhost:8080"`
}

func DefaultConfig() *Config {
	return &Config{
		Env:            "local",
		HTTPAddr:       "localhost:3000",
		CurrencySymbol: DefaultCurrencySymbol,
		Backend: BackendConfig{
			URL: "http://localhost:8080/api/cards",
		},
		DevBackend: DevBackendConfig{
			Addr: "localhost:8080",
		},
	}
}

// LoadConfig reads the YAML file at path, when given, and then the environment.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading env: %w", err)
	}
	return &cfg, nil
}
