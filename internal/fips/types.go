package fips

import (
	"errors"
	"time"
)

// ErrParse marks proposal data that was retrieved but cannot be understood:
// a README without the proposal table, or a table row missing required
// columns.
var ErrParse = errors.New("malformed proposal data")

// ProposalRecord is one row of the FIPs index table. Immutable after parse.
type ProposalRecord struct {
	Number  string // zero-padded to four digits, "0001"
	Title   string
	Type    string
	Authors string
	Status  string // normalized, see NormalizeStatus
}

// PullRequestRef is an open pull request against the FIPs repository,
// annotated with the proposal numbers it mentions.
type PullRequestRef struct {
	Number     int
	Title      string
	Body       string // truncated excerpt
	URL        string
	Author     string
	Branch     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	FIPNumbers []string // sorted, deduplicated; empty when no proposal matched
	Categories []string
}
