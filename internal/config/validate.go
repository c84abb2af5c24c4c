package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.Pacing.FetchDelaySeconds < 0 {
		errs = append(errs, "pacing.fetch_delay_seconds must be >= 0")
	}
	if cfg.Pacing.FetchTimeoutSeconds <= 0 {
		errs = append(errs, "pacing.fetch_timeout_seconds must be > 0")
	}

	if len(cfg.Targets) == 0 {
		errs = append(errs, "targets must list at least one company")
	}
	for i, t := range cfg.Targets {
		if strings.TrimSpace(t.Name) == "" {
			errs = append(errs, fmt.Sprintf("targets[%d].name is required", i))
		}
		if strings.TrimSpace(t.URL) == "" {
			errs = append(errs, fmt.Sprintf("targets[%d].url is required", i))
			continue
		}
		u, err := url.Parse(t.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Sprintf("targets[%d].url %q is not an absolute URL", i, t.URL))
		}
	}

	if len(cfg.Classifier.TitleAny) == 0 && len(cfg.Classifier.TitleAbbrev) == 0 {
		errs = append(errs, "classifier needs title_any or title_abbrev patterns")
	}
	for i, a := range cfg.Classifier.TitleAbbrev {
		if len(strings.TrimSpace(a)) > 4 {
			errs = append(errs, fmt.Sprintf("classifier.title_abbrev[%d] %q is too long for an abbreviation", i, a))
		}
	}

	if len(cfg.Selectors.Generic) == 0 {
		errs = append(errs, "selectors.generic must not be empty")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}
