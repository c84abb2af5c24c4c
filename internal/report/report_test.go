package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pmscout-engine/internal/domain"
)

func TestFreshnessBuckets(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		date string
		want string
	}{
		{"2026-08-31", "fresh"},
		{"2026-08-28", "fresh"},
		{"2026-08-20", "recent"},
		{"2026-08-17", "recent"},
		{"2026-08-01", "old"},
		{domain.DateUnknown, "unknown"},
		{"", "unknown"},
		{"not a date", "unknown"},
	}
	for _, tc := range cases {
		if got := freshness(tc.date, now); got != tc.want {
			t.Errorf("freshness(%q) = %q, want %q", tc.date, got, tc.want)
		}
	}
}

func TestRenderWritesDashboard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	postings := []domain.Posting{
		{
			Company: "Acme", Title: "Senior Product Manager, Payments",
			Location: "San Francisco, CA", URL: "https://jobs.acme.example/jobs/1",
			DatePosted: "2026-08-30", DateFound: "2026-08-31",
			Status: domain.StatusActive, Fingerprint: "abc",
		},
		{
			Company: "Beta", Title: "Product Lead", Location: "Remote",
			URL: "https://jobs.beta.example/jobs/2", DatePosted: domain.DateUnknown,
			DateFound: "2026-08-29", Status: domain.StatusActive, Fingerprint: "def",
		},
	}
	stats := domain.RunStats{TotalPostings: 2, NewLastRun: 1}

	require.NoError(t, Render(path, postings, stats, time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(b)

	require.True(t, strings.Contains(html, "Senior Product Manager, Payments"))
	require.True(t, strings.Contains(html, `<option value="Acme">`))
	require.True(t, strings.Contains(html, `<option value="Beta">`))
	require.True(t, strings.Contains(html, "fresh"))
	require.True(t, strings.Contains(html, "unknown"))
	require.True(t, strings.Contains(html, "2 tracked, 1 new last run"))
}
