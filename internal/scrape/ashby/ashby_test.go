package ashby

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"pmscout-engine/internal/classify"
	"pmscout-engine/internal/logger"
)

func testClassifier(t *testing.T) *classify.Classifier {
	t.Helper()
	c, err := classify.New(classify.Rules{
		TitleAny:     []string{"product manager", "product lead"},
		TitleAbbrev:  []string{"pm"},
		TeamAny:      []string{"product management"},
		URLRequire:   []string{"ashbyhq.com"},
		ExcludeRoles: []string{"engineer"},
	})
	require.NoError(t, err)
	return c
}

func boardServer(t *testing.T, board map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var req gqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "ApiJobBoardWithTeams", req.OperationName)
		require.Equal(t, "acme", req.Variables["organizationHostedJobsPageName"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"jobBoard": board},
		})
	}))
}

func TestExtractBuildsPostings(t *testing.T) {
	board := map[string]any{
		"teams": []map[string]any{
			{"id": "t1", "name": "Product Management"},
			{"id": "t2", "name": "Engineering"},
		},
		"jobPostings": []map[string]any{
			{
				"id": "j1", "title": "Senior Product Manager, Payments",
				"teamId": "t2", "locationName": "Remote",
				"workplaceType": "Hybrid",
				"secondaryLocations": []map[string]any{
					{"locationName": "New York, NY"},
					{"locationName": "London, UK"},
				},
			},
			// rejected by title, admitted by team
			{
				"id": "j2", "title": "Platform Strategist",
				"teamId": "t1", "locationName": "San Francisco, CA",
			},
			// rejected both ways
			{
				"id": "j3", "title": "Software Engineer",
				"teamId": "t2", "locationName": "Remote",
				"workplaceType": "null",
			},
		},
	}
	srv := boardServer(t, board)
	defer srv.Close()

	e := New(Config{APIURL: srv.URL, UserAgent: "test"}, testClassifier(t), logger.Nop())
	postings, err := e.Extract(context.Background(), "Acme", "https://jobs.ashbyhq.com/acme/?departmentId=x")
	require.NoError(t, err)
	require.Len(t, postings, 2)

	pm := postings[0]
	require.Equal(t, "Acme", pm.Company)
	require.Equal(t, "Senior Product Manager, Payments", pm.Title)
	require.Equal(t, "Remote (+ New York, NY, London, UK) - Hybrid", pm.Location)
	require.Equal(t, "https://jobs.ashbyhq.com/acme/j1", pm.URL)
	require.Equal(t, "Unknown", pm.DatePosted)
	require.NotEmpty(t, pm.DateFound)
	require.NotEmpty(t, pm.Fingerprint)

	require.Equal(t, "Platform Strategist", postings[1].Title)
}

func TestExtractMissingJobBoardIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	e := New(Config{APIURL: srv.URL}, testClassifier(t), logger.Nop())
	_, err := e.Extract(context.Background(), "Acme", "https://jobs.ashbyhq.com/acme")
	require.ErrorIs(t, err, errNoJobBoard)
}

func TestExtractRejectsNonAshbyURL(t *testing.T) {
	e := New(Config{}, testClassifier(t), logger.Nop())
	_, err := e.Extract(context.Background(), "Acme", "https://example.com/careers")
	require.Error(t, err)
}
