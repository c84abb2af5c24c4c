package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"pmscout-engine/internal/classify"
	"pmscout-engine/internal/domain"
)

type Target struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type Config struct {
	App struct {
		DataDir   string `yaml:"data_dir"`
		UserAgent string `yaml:"user_agent"`
	} `yaml:"app"`

	Pacing struct {
		// Unconditional delay between consecutive company fetches.
		FetchDelaySeconds int `yaml:"fetch_delay_seconds"`
		// Timeout for one company's fetch; expiry skips that company only.
		FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`
		MaxElementsPerPage  int `yaml:"max_elements_per_page"`
	} `yaml:"pacing"`

	Targets []Target `yaml:"targets"`

	Classifier classify.Rules `yaml:"classifier"`

	Selectors struct {
		// Board is the greenhouse-family ladder; Generic the broad fallback.
		Board         []string `yaml:"board"`
		Generic       []string `yaml:"generic"`
		FallbackWords []string `yaml:"fallback_words"`
	} `yaml:"selectors"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.DataDir == "" {
		c.App.DataDir = "data"
	}
	if c.App.UserAgent == "" {
		c.App.UserAgent = "PMScout/1.0 (+local)"
	}
	if c.Pacing.FetchDelaySeconds <= 0 {
		c.Pacing.FetchDelaySeconds = 3
	}
	if c.Pacing.FetchTimeoutSeconds <= 0 {
		c.Pacing.FetchTimeoutSeconds = 30
	}
	if c.Pacing.MaxElementsPerPage <= 0 {
		c.Pacing.MaxElementsPerPage = 50
	}
}

func (c Config) FetchDelay() time.Duration {
	return time.Duration(c.Pacing.FetchDelaySeconds) * time.Second
}

func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Pacing.FetchTimeoutSeconds) * time.Second
}

// CompanyTargets converts the configured targets into the domain type, in
// configured order.
func (c Config) CompanyTargets() []domain.CompanyTarget {
	out := make([]domain.CompanyTarget, 0, len(c.Targets))
	for _, t := range c.Targets {
		out = append(out, domain.CompanyTarget{Name: t.Name, URL: t.URL})
	}
	return out
}
