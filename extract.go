package cloudglue

import (
	"context"
	"encoding/json"
	"net/http"
)

// ExtractService manages structured extraction jobs.
type ExtractService struct {
	client *Client
}

// ExtractJob is an extraction job and, once completed, its extracted data.
type ExtractJob struct {
	JobID     string          `json:"job_id"`
	Status    Status          `json:"status"`
	URL       string          `json:"url"`
	CreatedAt string          `json:"created_at"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// ExtractParams configures an extraction job. Either Prompt or Schema must
// be provided.
type ExtractParams struct {
	// Prompt is a natural-language description of what to extract.
	Prompt string

	// Schema is a JSON schema defining the structure of the extracted data.
	Schema map[string]any
}

type newExtractRequest struct {
	URL    string         `json:"url"`
	Prompt string         `json:"prompt,omitempty"`
	Schema map[string]any `json:"schema,omitempty"`
}

// Create starts an extraction job for the video at url. The url may be a
// YouTube URL or the URI of an uploaded file. Validation happens before any
// network call.
func (s *ExtractService) Create(ctx context.Context, videoURL string, params *ExtractParams) (*ExtractJob, error) {
	if videoURL == "" {
		return nil, newValidationError("url must be provided")
	}
	if params == nil || (params.Prompt == "" && len(params.Schema) == 0) {
		return nil, newValidationError("either prompt or schema must be provided")
	}

	req := newExtractRequest{
		URL:    videoURL,
		Prompt: params.Prompt,
		Schema: params.Schema,
	}

	var job ExtractJob
	if err := s.client.doJSON(ctx, http.MethodPost, "/extract", nil, req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// Get retrieves the current state of an extraction job.
func (s *ExtractService) Get(ctx context.Context, jobID string) (*ExtractJob, error) {
	var job ExtractJob
	if err := s.client.doJSON(ctx, http.MethodGet, "/extract/"+jobID, nil, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// Run creates an extraction job and polls until it completes or fails.
func (s *ExtractService) Run(ctx context.Context, videoURL string, params *ExtractParams, wait *WaitOptions) (*ExtractJob, error) {
	job, err := s.Create(ctx, videoURL, params)
	if err != nil {
		return nil, err
	}

	final := job
	_, err = pollStatus(ctx, "extraction job", jobTerminalStatuses, wait,
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
