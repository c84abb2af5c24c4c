package store

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"pmscout-engine/internal/domain"
)

// ExportAll rewrites the three inspection artifacts wholesale: the complete
// JSON record, the flattened CSV projection, and the stats snapshot. The
// writes are independent, so they run concurrently.
func ExportAll(ctx context.Context, dir string, postings []domain.Posting, stats domain.RunStats) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { return writeJSON(filepath.Join(dir, "postings.json"), postings) })
	g.Go(func() error { return writeCSV(filepath.Join(dir, "postings.csv"), postings) })
	g.Go(func() error { return writeJSON(filepath.Join(dir, "stats.json"), stats) })
	return g.Wait()
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("export %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("export %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeCSV(path string, postings []domain.Posting) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export postings.csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"company", "title", "location", "url",
		"date_posted", "date_found", "status", "fingerprint",
	}); err != nil {
		return fmt.Errorf("export postings.csv: %w", err)
	}
	for _, p := range postings {
		if err := w.Write([]string{
			p.Company, p.Title, p.Location, p.URL,
			p.DatePosted, p.DateFound, string(p.Status), p.Fingerprint,
		}); err != nil {
			return fmt.Errorf("export postings.csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("export postings.csv: %w", err)
	}
	return nil
}
