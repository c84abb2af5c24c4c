package report

import (
	"fmt"
	"html/template"
	"os"
	"time"

	"pmscout-engine/internal/domain"
)

// Freshness buckets by days since the posting date. Unknown dates get their
// own bucket rather than pretending to be old or new.
const (
	freshDays  = 3
	recentDays = 14
)

type row struct {
	domain.Posting
	Freshness string
}

type page struct {
	GeneratedAt string
	Stats       domain.RunStats
	Companies   []string
	Rows        []row
}

// Render regenerates the static dashboard wholesale from the merged store.
func Render(path string, postings []domain.Posting, stats domain.RunStats, now time.Time) error {
	p := page{
		GeneratedAt: now.Format("2006-01-02 15:04 MST"),
		Stats:       stats,
	}

	seen := map[string]bool{}
	for _, posting := range postings {
		if !seen[posting.Company] {
			seen[posting.Company] = true
			p.Companies = append(p.Companies, posting.Company)
		}
		p.Rows = append(p.Rows, row{
			Posting:   posting,
			Freshness: freshness(posting.DatePosted, now),
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	defer f.Close()

	if err := pageTmpl.Execute(f, p); err != nil {
		return fmt.Errorf("report: render: %w", err)
	}
	return nil
}

func freshness(datePosted string, now time.Time) string {
	if datePosted == "" || datePosted == domain.DateUnknown {
		return "unknown"
	}
	posted, err := time.Parse("2006-01-02", datePosted)
	if err != nil {
		return "unknown"
	}
	days := int(now.Sub(posted).Hours() / 24)
	switch {
	case days <= freshDays:
		return "fresh"
	case days <= recentDays:
		return "recent"
	default:
		return "old"
	}
}

var pageTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>PM Postings</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem; color: #222; }
  table { border-collapse: collapse; width: 100%; }
  th, td { text-align: left; padding: 0.4rem 0.8rem; border-bottom: 1px solid #ddd; }
  .badge { padding: 0.1rem 0.5rem; border-radius: 0.6rem; font-size: 0.8rem; }
  .fresh { background: #d4f7d4; }
  .recent { background: #fdf3c9; }
  .old, .unknown { background: #eee; color: #666; }
</style>
</head>
<body>
<h1>Product Management Postings</h1>
<p>
  Generated {{.GeneratedAt}}.
  {{.Stats.TotalPostings}} tracked, {{.Stats.NewLastRun}} new last run.
</p>
<label>Company:
  <select id="company" onchange="filterRows()">
    <option value="">All</option>
    {{range .Companies}}<option value="{{.}}">{{.}}</option>
    {{end}}
  </select>
</label>
<table>
  <thead>
    <tr><th>Company</th><th>Title</th><th>Location</th><th>Posted</th><th>Found</th><th></th></tr>
  </thead>
  <tbody>
    {{range .Rows}}
    <tr data-company="{{.Company}}">
      <td>{{.Company}}</td>
      <td><a href="{{.URL}}">{{.Title}}</a></td>
      <td>{{.Location}}</td>
      <td>{{.DatePosted}}</td>
      <td>{{.DateFound}}</td>
      <td><span class="badge {{.Freshness}}">{{.Freshness}}</span></td>
    </tr>
    {{end}}
  </tbody>
</table>
<script>
function filterRows() {
  var want = document.getElementById("company").value;
  document.querySelectorAll("tbody tr").forEach(function (tr) {
    tr.style.display = (!want || tr.dataset.company === want) ? "" : "none";
  });
}
</script>
</body>
</html>
`))
