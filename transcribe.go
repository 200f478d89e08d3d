package cloudglue

import (
	"context"
	"net/http"
	"net/url"
)

// TranscribeService manages transcription jobs.
type TranscribeService struct {
	client *Client
}

// TranscribeJob is a transcription job and, once completed, its transcript.
type TranscribeJob struct {
	JobID     string          `json:"job_id"`
	Status    Status          `json:"status"`
	URL       string          `json:"url"`
	CreatedAt string          `json:"created_at"`
	Data      *TranscribeData `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// TranscribeData is the transcript produced by a completed job.
type TranscribeData struct {
	Transcript string              `json:"transcript"`
	Summary    string              `json:"summary,omitempty"`
	Segments   []TranscribeSegment `json:"segments,omitempty"`
}

// TranscribeSegment is one time-aligned span of speech.
type TranscribeSegment struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Speaker   string  `json:"speaker,omitempty"`
	Text      string  `json:"text"`
}

// TranscribeParams configures a transcription job.
type TranscribeParams struct {
	// EnableSummary also generates a summary of the transcript.
	// Defaults to false.
	EnableSummary bool
}

// JobListParams filters and paginates job listings.
type JobListParams struct {
	ListParams

	// Status filters by job status.
	Status Status
}

// TranscribeJobList is a page of transcription jobs.
type TranscribeJobList struct {
	Object string          `json:"object"`
	Data   []TranscribeJob `json:"data"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type newTranscribeRequest struct {
	URL           string `json:"url"`
	EnableSummary bool   `json:"enable_summary,omitempty"`
}

// Create starts a transcription job for the video at url. The url may be a
// YouTube URL or the URI of an uploaded file.
func (s *TranscribeService) Create(ctx context.Context, videoURL string, params *TranscribeParams) (*TranscribeJob, error) {
	if videoURL == "" {
		return nil, newValidationError("url must be provided")
	}

	req := newTranscribeRequest{URL: videoURL}
	if params != nil {
		req.EnableSummary = params.EnableSummary
	}

	var job TranscribeJob
	if err := s.client.doJSON(ctx, http.MethodPost, "/transcribe", nil, req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// Get retrieves the current state of a transcription job.
func (s *TranscribeService) Get(ctx context.Context, jobID string) (*TranscribeJob, error) {
	var job TranscribeJob
	if err := s.client.doJSON(ctx, http.MethodGet, "/transcribe/"+jobID, nil, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// Run creates a transcription job and polls until it completes or fails.
func (s *TranscribeService) Run(ctx context.Context, videoURL string, params *TranscribeParams, wait *WaitOptions) (*TranscribeJob, error) {
	job, err := s.Create(ctx, videoURL, params)
	if err != nil {
		return nil, err
	}

	final := job
	_, err = pollStatus(ctx, "transcription job", jobTerminalStatuses, wait,
		func(ctx context.Context) (Status, error) {
			got, err := s.Get(ctx, job.JobID)
			if err != nil {
				return "", err
			}
			final = got
			return got.Status, nil
		})
	if err != nil {
		return nil, err
	}
	return final, nil
}

// List returns transcription jobs.
func (s *TranscribeService) List(ctx context.Context, params *JobListParams) (*TranscribeJobList, error) {
	var q url.Values
	if params != nil {
		q = params.ListParams.values()
		if params.Status != "" {
			q.Set("status", string(params.Status))
		}
	}

	var list TranscribeJobList
	if err := s.client.doJSON(ctx, http.MethodGet, "/transcribe", q, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}
