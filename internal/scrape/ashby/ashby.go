package ashby

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pmscout-engine/internal/classify"
	"pmscout-engine/internal/domain"
)

const defaultAPI = "https://jobs.ashbyhq.com/api/non-user-graphql?op=ApiJobBoardWithTeams"

// One query per board: postings plus team groupings, so the department
// signal is available without extra round trips.
const boardQuery = `
query ApiJobBoardWithTeams($organizationHostedJobsPageName: String!) {
  jobBoard: jobBoardWithTeams(
    organizationHostedJobsPageName: $organizationHostedJobsPageName
  ) {
    teams {
      id
      name
      parentTeamId
    }
    jobPostings {
      id
      title
      teamId
      locationId
      locationName
      workplaceType
      employmentType
      secondaryLocations {
        locationId
        locationName
      }
      compensationTierSummary
    }
  }
}`

var orgRe = regexp.MustCompile(`ashbyhq\.com/([^/?#]+)`)

var errNoJobBoard = errors.New("ashby: job board missing from response")

type Config struct {
	APIURL    string // defaults to the public board endpoint
	UserAgent string
	Timeout   time.Duration
}

type Extractor struct {
	cfg Config
	cls *classify.Classifier
	hc  *http.Client
	log zerolog.Logger
}

func New(cfg Config, cls *classify.Classifier, log zerolog.Logger) *Extractor {
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPI
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Extractor{
		cfg: cfg,
		cls: cls,
		hc:  &http.Client{Timeout: cfg.Timeout},
		log: log.With().Str("source", "ashby").Logger(),
	}
}

func (e *Extractor) Name() string { return "ashby" }

type gqlRequest struct {
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
	Query         string         `json:"query"`
}

type gqlResponse struct {
	Data struct {
		JobBoard *jobBoard `json:"jobBoard"`
	} `json:"data"`
}

type jobBoard struct {
	Teams       []team    `json:"teams"`
	JobPostings []posting `json:"jobPostings"`
}

type team struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ParentTeamID string `json:"parentTeamId"`
}

type posting struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	TeamID             string `json:"teamId"`
	LocationID         string `json:"locationId"`
	LocationName       string `json:"locationName"`
	WorkplaceType      string `json:"workplaceType"`
	EmploymentType     string `json:"employmentType"`
	SecondaryLocations []struct {
		LocationID   string `json:"locationId"`
		LocationName string `json:"locationName"`
	} `json:"secondaryLocations"`
	CompensationTierSummary string `json:"compensationTierSummary"`
}

func (e *Extractor) Extract(ctx context.Context, company, pageURL string) ([]domain.Posting, error) {
	m := orgRe.FindStringSubmatch(pageURL)
	if m == nil {
		return nil, fmt.Errorf("ashby: no organization in url %q", pageURL)
	}
	org := m[1]

	body, _ := json.Marshal(gqlRequest{
		OperationName: "ApiJobBoardWithTeams",
		Variables:     map[string]any{"organizationHostedJobsPageName": org},
		Query:         boardQuery,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ashby: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", e.cfg.UserAgent)
	req.Header.Set("apollographql-client-name", "frontend_non_user")
	req.Header.Set("apollographql-client-version", "0.1.0")

	res, err := e.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ashby: post board query: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("ashby: board query status %d", res.StatusCode)
	}

	var gr gqlResponse
	if err := json.NewDecoder(res.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("ashby: decode: %w", err)
	}
	if gr.Data.JobBoard == nil {
		return nil, errNoJobBoard
	}

	teamName := make(map[string]string, len(gr.Data.JobBoard.Teams))
	for _, t := range gr.Data.JobBoard.Teams {
		teamName[t.ID] = t.Name
	}

	today := time.Now().Format("2006-01-02")
	var out []domain.Posting
	for _, p := range gr.Data.JobBoard.JobPostings {
		title := strings.TrimSpace(p.Title)
		if title == "" {
			continue
		}
		// Department signal overrides a title-only rejection.
		if !e.cls.Match(title, "", "") && !e.cls.MatchTeam(teamName[p.TeamID]) {
			continue
		}

		loc := assembleLocation(p)
		jobURL := fmt.Sprintf("https://jobs.ashbyhq.com/%s/%s", org, p.ID)

		out = append(out, domain.Posting{
			Company:     company,
			Title:       title,
			Location:    loc,
			URL:         jobURL,
			DatePosted:  domain.DateUnknown, // Ashby does not expose posting dates
			DateFound:   today,
			Status:      domain.StatusActive,
			Fingerprint: domain.Fingerprint(company, title, loc),
		})
		e.log.Info().Str("title", title).Str("team", teamName[p.TeamID]).Msg("posting matched")
	}

	e.log.Info().Str("company", company).
		Int("total", len(gr.Data.JobBoard.JobPostings)).
		Int("matched", len(out)).
		Msg("board fetched")
	return out, nil
}

// assembleLocation renders "Primary (+ Sec1, Sec2) - WorkplaceType",
// skipping pieces the source left empty or null.
func assembleLocation(p posting) string {
	loc := strings.TrimSpace(p.LocationName)
	if loc == "" {
		loc = "Unknown"
	}

	var secs []string
	for _, s := range p.SecondaryLocations {
		if name := strings.TrimSpace(s.LocationName); name != "" {
			secs = append(secs, name)
		}
	}
	if len(secs) > 0 {
		loc += " (+ " + strings.Join(secs, ", ") + ")"
	}

	if wt := strings.TrimSpace(p.WorkplaceType); wt != "" && !strings.EqualFold(wt, "null") {
		loc += " - " + wt
	}
	return loc
}
