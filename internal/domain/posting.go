package domain

import (
	"crypto/md5"
	"encoding/hex"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusClosed  Status = "closed"
	StatusApplied Status = "applied"
)

// DateUnknown marks a posting date the source platform does not expose.
const DateUnknown = "Unknown"

// Posting is one job listing as tracked by the pipeline. Identity for
// deduplication is Fingerprint, not the URL.
type Posting struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	URL         string `json:"url"`
	DatePosted  string `json:"date_posted"` // YYYY-MM-DD or DateUnknown
	DateFound   string `json:"date_found"`  // YYYY-MM-DD, set on the run that saw it
	Status      Status `json:"status"`
	Fingerprint string `json:"fingerprint"`
}

// CompanyTarget pairs a display name with the listing page to scrape.
type CompanyTarget struct {
	Name string
	URL  string
}

// Fingerprint derives the dedupe key for a posting. It must stay stable
// across runs: same (company, title, location) always hashes the same.
func Fingerprint(company, title, location string) string {
	sum := md5.Sum([]byte(company + title + location))
	return hex.EncodeToString(sum[:])[:12]
}
