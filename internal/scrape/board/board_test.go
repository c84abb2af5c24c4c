package board

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
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
		URLRequire:   []string{"/jobs/", "/careers/"},
		URLExclude:   []string{"/blog/"},
		Boilerplate:  []string{"read more"},
		ExcludeRoles: []string{"engineer", "designer"},
	})
	require.NoError(t, err)
	return c
}

func htmlServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
}

func newTestExtractor(t *testing.T, selectors []string) *Extractor {
	t.Helper()
	return New(Config{
		Name:          "board",
		Selectors:     selectors,
		FallbackWords: []string{"product", "manager"},
		UserAgent:     "test",
	}, testClassifier(t), logger.Nop())
}

func TestExtractFiltersAndResolves(t *testing.T) {
	page := `<html><body>
		<div class="opening">
			<h3>Senior Product Manager, Payments</h3>
			<span class="location">San Francisco, CA</span>
			<a href="/jobs/1">Apply</a>
			<p>Own payments end to end. Posted 3 days ago.</p>
		</div>
		<div class="opening">
			<h3>Software Engineer</h3>
			<span class="location">Remote</span>
			<a href="/jobs/2">Apply</a>
		</div>
	</body></html>`
	srv := htmlServer(t, page)
	defer srv.Close()

	e := newTestExtractor(t, []string{".opening", ".job-post"})
	postings, err := e.Extract(context.Background(), "Acme", srv.URL+"/board")
	require.NoError(t, err)
	require.Len(t, postings, 1)

	p := postings[0]
	require.Equal(t, "Senior Product Manager, Payments", p.Title)
	require.Equal(t, "San Francisco, CA", p.Location)
	require.Equal(t, srv.URL+"/jobs/1", p.URL)
	require.NotEqual(t, "Unknown", p.DatePosted)
	require.Equal(t, "Acme", p.Company)
}

func TestSelectorLadderFirstHitWins(t *testing.T) {
	page := `<html><body>
		<div class="job-post"><h3>Product Lead, Growth</h3><a href="/careers/9">Go</a></div>
		<div class="career-listing"><h3>Product Manager</h3><a href="/careers/10">Go</a></div>
	</body></html>`
	srv := htmlServer(t, page)
	defer srv.Close()

	// ".opening" yields nothing; ".job-post" wins and ".career-listing" is
	// never consulted
	e := newTestExtractor(t, []string{".opening", ".job-post", ".career-listing"})
	postings, err := e.Extract(context.Background(), "Acme", srv.URL+"/board")
	require.NoError(t, err)
	require.Len(t, postings, 1)
	require.Equal(t, "Product Lead, Growth", postings[0].Title)
}

func TestAnchorFallbackScan(t *testing.T) {
	page := `<html><body>
		<nav><a href="/blog/why-product">Why Product</a></nav>
		<a href="/jobs/12">Group Product Manager</a>
		<a href="/about">About us</a>
	</body></html>`
	srv := htmlServer(t, page)
	defer srv.Close()

	e := newTestExtractor(t, []string{".opening"})
	postings, err := e.Extract(context.Background(), "Acme", srv.URL+"/board")
	require.NoError(t, err)
	require.Len(t, postings, 1)
	require.Equal(t, "Group Product Manager", postings[0].Title)
	require.Equal(t, srv.URL+"/jobs/12", postings[0].URL)
}

func TestElementCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 80; i++ {
		fmt.Fprintf(&b, `<div class="opening"><h3>Product Manager %02d</h3><a href="/jobs/%d">Apply</a></div>`, i, i)
	}
	b.WriteString("</body></html>")
	srv := htmlServer(t, b.String())
	defer srv.Close()

	e := newTestExtractor(t, []string{".opening"})
	postings, err := e.Extract(context.Background(), "Acme", srv.URL+"/board")
	require.NoError(t, err)
	require.Len(t, postings, 50)
}

func TestDegenerateTitlesSkipped(t *testing.T) {
	long := strings.Repeat("x", 201)
	page := `<html><body>
		<div class="opening"><h3>Apply</h3><a href="/jobs/1">Apply</a></div>
		<div class="opening"><h3>PM</h3><a href="/jobs/2">Apply</a></div>
		<div class="opening"><h3>` + long + `</h3><a href="/jobs/3">Apply</a></div>
		<div class="opening"><h3>Staff PM, Platform</h3><a href="/jobs/4">Apply</a></div>
	</body></html>`
	srv := htmlServer(t, page)
	defer srv.Close()

	e := newTestExtractor(t, []string{".opening"})
	postings, err := e.Extract(context.Background(), "Acme", srv.URL+"/board")
	require.NoError(t, err)
	require.Len(t, postings, 1)
	require.Equal(t, "Staff PM, Platform", postings[0].Title)
}

func TestFetchFailureIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	e := newTestExtractor(t, []string{".opening"})
	_, err := e.Extract(context.Background(), "Acme", srv.URL+"/board")
	require.Error(t, err)
}
