package domain

type RunRecord struct {
	At    string `json:"at"`
	New   int    `json:"new"`
	Total int    `json:"total"`
}

// RunStats aggregates one execution plus a bounded history of prior runs.
type RunStats struct {
	TotalPostings int               `json:"total_postings"`
	NewLastRun    int               `json:"new_last_run"`
	LastRunAt     string            `json:"last_run_at"`
	Companies     map[string]string `json:"companies"`
	History       []RunRecord       `json:"history"`
}
