package board

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"pmscout-engine/internal/classify"
	"pmscout-engine/internal/domain"
)

// Extractor pulls postings out of fetched markup using a selector ladder.
// The greenhouse-family and generic-fallback variants differ only in their
// selector tables; both share this implementation.
type Extractor struct {
	cfg Config
	cls *classify.Classifier
	hc  *http.Client
	log zerolog.Logger
}

type Config struct {
	Name string
	// Selectors are tried in descending specificity; the first one that
	// yields any matches wins.
	Selectors []string
	// FallbackWords drive the last-resort anchor scan when no selector hits.
	FallbackWords []string
	UserAgent     string
	Timeout       time.Duration
	// MaxElements bounds work on pathological pages.
	MaxElements int
}

func New(cfg Config, cls *classify.Classifier, log zerolog.Logger) *Extractor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxElements <= 0 {
		cfg.MaxElements = 50
	}
	return &Extractor{
		cfg: cfg,
		cls: cls,
		hc:  &http.Client{Timeout: cfg.Timeout},
		log: log.With().Str("source", cfg.Name).Logger(),
	}
}

func (e *Extractor) Name() string { return e.cfg.Name }

func (e *Extractor) Extract(ctx context.Context, company, pageURL string) ([]domain.Posting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", e.cfg.Name, err)
	}
	req.Header.Set("User-Agent", e.cfg.UserAgent)

	res, err := e.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: get board: %w", e.cfg.Name, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("%s: board status %d", e.cfg.Name, res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: parse board html: %w", e.cfg.Name, err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("%s: bad page url: %w", e.cfg.Name, err)
	}

	elements := e.candidates(doc)

	today := time.Now().Format("2006-01-02")
	seen := map[string]bool{}
	var out []domain.Posting

	for i, sel := range elements {
		if i >= e.cfg.MaxElements {
			break
		}
		cand, ok := parseElement(sel, base)
		if !ok {
			// degenerate element; siblings keep going
			continue
		}
		if !e.cls.Match(cand.title, cand.url, cand.desc) {
			continue
		}

		fp := domain.Fingerprint(company, cand.title, cand.location)
		if seen[fp] {
			continue
		}
		seen[fp] = true

		out = append(out, domain.Posting{
			Company:     company,
			Title:       cand.title,
			Location:    cand.location,
			URL:         cand.url,
			DatePosted:  cand.posted,
			DateFound:   today,
			Status:      domain.StatusActive,
			Fingerprint: fp,
		})
		e.log.Info().Str("title", cand.title).Str("location", cand.location).Msg("posting matched")
	}

	e.log.Info().Str("company", company).
		Int("elements", len(elements)).
		Int("matched", len(out)).
		Msg("board fetched")
	return out, nil
}

// candidates walks the selector ladder, then falls back to scanning every
// anchor whose visible text contains a role-indicative word.
func (e *Extractor) candidates(doc *goquery.Document) []*goquery.Selection {
	for _, sel := range e.cfg.Selectors {
		found := doc.Find(sel)
		if found.Length() == 0 {
			continue
		}
		e.log.Debug().Str("selector", sel).Int("count", found.Length()).Msg("selector hit")
		return collect(found)
	}

	links := doc.Find("a").FilterFunction(func(_ int, a *goquery.Selection) bool {
		text := strings.ToLower(a.Text())
		for _, w := range e.cfg.FallbackWords {
			if w != "" && strings.Contains(text, strings.ToLower(w)) {
				return true
			}
		}
		return false
	})
	return collect(links)
}

func collect(s *goquery.Selection) []*goquery.Selection {
	out := make([]*goquery.Selection, 0, s.Length())
	s.Each(func(_ int, el *goquery.Selection) {
		out = append(out, el)
	})
	return out
}
