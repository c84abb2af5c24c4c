package run

import (
	"context"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"pmscout-engine/internal/domain"
	"pmscout-engine/internal/reconcile"
	"pmscout-engine/internal/report"
	"pmscout-engine/internal/scrape"
	"pmscout-engine/internal/store"
)

// Runner drives one full pipeline execution: dispatch, extract, reconcile,
// persist, export. Companies are processed strictly one at a time with an
// unconditional delay between fetch starts.
type Runner struct {
	Dispatcher   *scrape.Dispatcher
	DB           *store.DB
	ExportDir    string
	FetchTimeout time.Duration
	Log          zerolog.Logger

	pace *rate.Limiter
}

type Summary struct {
	New       int
	Total     int
	Companies int
}

func New(d *scrape.Dispatcher, db *store.DB, exportDir string, fetchDelay, fetchTimeout time.Duration, log zerolog.Logger) *Runner {
	if fetchTimeout <= 0 {
		fetchTimeout = 30 * time.Second
	}
	limit := rate.Inf
	if fetchDelay > 0 {
		limit = rate.Every(fetchDelay)
	}
	return &Runner{
		Dispatcher:   d,
		DB:           db,
		ExportDir:    exportDir,
		FetchTimeout: fetchTimeout,
		Log:          log,
		pace:         rate.NewLimiter(limit, 1),
	}
}

// Run executes the pipeline over the configured targets. Per-company
// failures are logged and skipped; the loop always completes. Persistence
// failures are logged too; the computed counts still come back.
func (r *Runner) Run(ctx context.Context, targets []domain.CompanyTarget) (Summary, error) {
	existing, err := r.DB.LoadPostings(ctx)
	if err != nil {
		r.Log.Error().Err(err).Msg("store unreadable; assuming empty")
		existing = nil
	}
	stats, err := r.DB.LoadStats(ctx)
	if err != nil {
		r.Log.Error().Err(err).Msg("stats unreadable; starting fresh")
		stats = domain.RunStats{}
	}

	var fresh []domain.Posting
	for _, t := range targets {
		if err := r.pace.Wait(ctx); err != nil {
			return Summary{}, err
		}

		ext := r.Dispatcher.Select(t.URL)
		r.Log.Info().Str("company", t.Name).Str("extractor", ext.Name()).Msg("scraping")

		fctx, cancel := context.WithTimeout(ctx, r.FetchTimeout)
		postings, err := ext.Extract(fctx, t.Name, t.URL)
		cancel()
		if err != nil {
			r.Log.Error().Err(err).Str("company", t.Name).Msg("company skipped")
			continue
		}

		r.Log.Info().Str("company", t.Name).Int("found", len(postings)).Msg("company done")
		fresh = append(fresh, postings...)
	}

	newCount, merged := reconcile.Merge(existing, fresh)
	stats = reconcile.NextStats(stats, targets, newCount, len(merged), time.Now())

	if err := r.DB.SavePostings(ctx, merged); err != nil {
		r.Log.Error().Err(err).Msg("store write failed; results not durable")
	}
	if err := r.DB.SaveStats(ctx, stats); err != nil {
		r.Log.Error().Err(err).Msg("stats write failed")
	}
	if err := store.ExportAll(ctx, r.ExportDir, merged, stats); err != nil {
		r.Log.Error().Err(err).Msg("export failed")
	}
	if err := report.Render(filepath.Join(r.ExportDir, "report.html"), merged, stats, time.Now()); err != nil {
		r.Log.Error().Err(err).Msg("report failed")
	}

	r.Log.Info().Int("new", newCount).Int("total", len(merged)).Msg("run complete")
	return Summary{New: newCount, Total: len(merged), Companies: len(targets)}, nil
}
