package reconcile

import (
	"sort"
	"time"

	"pmscout-engine/internal/domain"
)

// maxHistory bounds the run-history ring; oldest entries are evicted first.
const maxHistory = 30

// Merge reconciles freshly extracted postings against the persisted set.
// A posting is new iff its fingerprint is unseen; fresh data always
// overwrites the stored entry at the same key. The merged slice comes back
// ordered by date_found descending, stable for ties.
func Merge(existing, fresh []domain.Posting) (newCount int, merged []domain.Posting) {
	merged = make([]domain.Posting, len(existing))
	copy(merged, existing)

	idx := make(map[string]int, len(merged))
	for i, p := range merged {
		idx[p.Fingerprint] = i
	}

	for _, p := range fresh {
		if p.Fingerprint == "" {
			p.Fingerprint = domain.Fingerprint(p.Company, p.Title, p.Location)
		}
		if i, ok := idx[p.Fingerprint]; ok {
			merged[i] = p
			continue
		}
		idx[p.Fingerprint] = len(merged)
		merged = append(merged, p)
		newCount++
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].DateFound > merged[j].DateFound
	})
	return newCount, merged
}

// NextStats rolls the run statistics forward: totals, timestamp, the
// per-company URL snapshot, and one appended history record with the ring
// truncated to the most recent maxHistory entries.
func NextStats(prev domain.RunStats, targets []domain.CompanyTarget, newCount, total int, at time.Time) domain.RunStats {
	companies := make(map[string]string, len(targets))
	for _, t := range targets {
		companies[t.Name] = t.URL
	}

	ts := at.UTC().Format(time.RFC3339)
	history := append(append([]domain.RunRecord(nil), prev.History...), domain.RunRecord{
		At:    ts,
		New:   newCount,
		Total: total,
	})
	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}

	return domain.RunStats{
		TotalPostings: total,
		NewLastRun:    newCount,
		LastRunAt:     ts,
		Companies:     companies,
		History:       history,
	}
}
