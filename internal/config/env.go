package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Env carries runtime overrides that shouldn't require editing the yaml
// (deployment paths, mostly).
type Env struct {
	DataDir    string `env:"PMSCOUT_DATA_DIR"`
	ConfigPath string `env:"PMSCOUT_CONFIG"`
	UserAgent  string `env:"PMSCOUT_USER_AGENT"`
}

func LoadEnv() (Env, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}

// Overlay applies non-empty env values on top of the loaded config.
func (e Env) Overlay(cfg *Config) {
	if e.DataDir != "" {
		cfg.App.DataDir = e.DataDir
	}
	if e.UserAgent != "" {
		cfg.App.UserAgent = e.UserAgent
	}
}
