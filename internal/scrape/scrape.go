package scrape

import (
	"context"

	"pmscout-engine/internal/domain"
)

// Extractor turns a company's listing-page URL into postings. Recoverable
// fetch/parse trouble comes back as an error for the caller to log; an
// extractor never aborts the surrounding run.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, company, url string) ([]domain.Posting, error)
}

// Route pairs a URL predicate with the extractor that claims it.
type Route struct {
	Match     func(url string) bool
	Extractor Extractor
}

// Dispatcher selects an extractor by first-match linear scan over an ordered
// route table, most specific first.
type Dispatcher struct {
	routes []Route
}

func NewDispatcher(routes ...Route) *Dispatcher {
	return &Dispatcher{routes: routes}
}

// Select returns the first extractor whose predicate claims the URL. The
// last registered route is treated as the catch-all, so the result is never
// nil for a non-empty table.
func (d *Dispatcher) Select(url string) Extractor {
	for _, r := range d.routes {
		if r.Match != nil && r.Match(url) {
			return r.Extractor
		}
	}
	if len(d.routes) > 0 {
		return d.routes[len(d.routes)-1].Extractor
	}
	return nil
}
