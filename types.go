package cloudglue

import (
	"net/url"
	"strconv"
)

// Status is the processing status of a remote file, collection video, or job.
type Status string

// Status values reported by the API. Pending and processing are
// non-terminal; the rest are terminal and never transition again.
const (
	StatusPending       Status = "pending"
	StatusProcessing    Status = "processing"
	StatusReady         Status = "ready"
	StatusCompleted     Status = "completed"
	StatusFailed        Status = "failed"
	StatusNotApplicable Status = "not_applicable"
)

// resourceTerminalStatuses are terminal for files and collection videos.
var resourceTerminalStatuses = []Status{
	StatusReady, StatusCompleted, StatusFailed, StatusNotApplicable,
}

// jobTerminalStatuses are terminal for transcribe, describe, and extract jobs.
var jobTerminalStatuses = []Status{StatusCompleted, StatusFailed}

// Metadata is arbitrary user-supplied metadata attached to a file or video.
type Metadata map[string]any

// DeleteResponse confirms a deletion.
type DeleteResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// ListParams are the pagination and ordering options shared by list
// endpoints.
type ListParams struct {
	// Limit caps the number of items returned (max 100).
	Limit int

	// Offset skips the given number of items.
	Offset int

	// Order is the field to sort by (e.g., "created_at").
	Order string

	// Sort is the direction, "asc" or "desc".
	Sort string
}

// values renders the pagination options as query parameters. A nil receiver
// yields an empty set.
func (p *ListParams) values() url.Values {
	q := url.Values{}
	if p == nil {
		return q
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.Order != "" {
		q.Set("order", p.Order)
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	return q
}

// Bool returns a pointer to v. Useful for optional request fields.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v. Useful for optional request fields.
func Int(v int) *int { return &v }

// Float returns a pointer to v. Useful for optional request fields.
func Float(v float64) *float64 { return &v }

// String returns a pointer to v. Useful for optional request fields.
func String(v string) *string { return &v }
