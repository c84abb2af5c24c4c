package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"pmscout-engine/internal/domain"
)

// LoadPostings returns all known postings in display order.
func (d *DB) LoadPostings(ctx context.Context) ([]domain.Posting, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT fingerprint, company, title, location, url, date_posted, date_found, status
FROM postings
ORDER BY position;`)
	if err != nil {
		return nil, fmt.Errorf("load postings: %w", err)
	}
	defer rows.Close()

	var out []domain.Posting
	for rows.Next() {
		var p domain.Posting
		var status string
		if err := rows.Scan(&p.Fingerprint, &p.Company, &p.Title, &p.Location,
			&p.URL, &p.DatePosted, &p.DateFound, &status); err != nil {
			return nil, fmt.Errorf("scan posting: %w", err)
		}
		p.Status = domain.Status(status)
		out = append(out, p)
	}
	return out, rows.Err()
}

// SavePostings rewrites the complete record in one transaction. The
// position column records display order; merge semantics are resolved
// upstream.
func (d *DB) SavePostings(ctx context.Context, postings []domain.Posting) error {
	tx, err := d.Pool.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save postings: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM postings;`); err != nil {
		return fmt.Errorf("save postings: clear: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO postings(fingerprint, company, title, location, url, date_posted, date_found, status, position)
VALUES(?,?,?,?,?,?,?,?,?);`)
	if err != nil {
		return fmt.Errorf("save postings: prepare: %w", err)
	}
	defer stmt.Close()

	for i, p := range postings {
		if _, err := stmt.ExecContext(ctx, p.Fingerprint, p.Company, p.Title,
			p.Location, p.URL, p.DatePosted, p.DateFound, string(p.Status), i); err != nil {
			return fmt.Errorf("save postings: insert %q: %w", p.Fingerprint, err)
		}
	}
	return tx.Commit()
}

// LoadStats returns the persisted run statistics, or zero stats when none
// have been written yet.
func (d *DB) LoadStats(ctx context.Context) (domain.RunStats, error) {
	var payload string
	err := d.Pool.QueryRowContext(ctx, `SELECT payload FROM run_stats WHERE id = 1;`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RunStats{}, nil
	}
	if err != nil {
		return domain.RunStats{}, fmt.Errorf("load stats: %w", err)
	}

	var stats domain.RunStats
	if err := json.Unmarshal([]byte(payload), &stats); err != nil {
		return domain.RunStats{}, fmt.Errorf("load stats: decode: %w", err)
	}
	return stats, nil
}

func (d *DB) SaveStats(ctx context.Context, stats domain.RunStats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("save stats: encode: %w", err)
	}
	_, err = d.Pool.ExecContext(ctx, `
INSERT INTO run_stats(id, payload) VALUES(1, ?)
ON CONFLICT(id) DO UPDATE SET payload = excluded.payload;`, string(payload))
	if err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}
