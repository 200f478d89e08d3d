package cloudglue

import (
	"context"
	"net/http"
)

// DescribeService manages rich description jobs. A describe job produces a
// multimodal account of a video: speech transcript, on-screen text, and
// visual scene descriptions, segment by segment.
type DescribeService struct {
	client *Client
}

// DescribeJob is a describe job and, once completed, its description data.
type DescribeJob struct {
	JobID     string        `json:"job_id"`
	Status    Status        `json:"status"`
	URL       string        `json:"url"`
	CreatedAt string        `json:"created_at"`
	Data      *DescribeData `json:"data,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// DescribeData is the comprehensive description of a video.
type DescribeData struct {
	URL         string       `json:"url,omitempty"`
	Title       string       `json:"title,omitempty"`
	Summary     string       `json:"summary,omitempty"`
	SegmentDocs []SegmentDoc `json:"segment_docs,omitempty"`
}

// SegmentDoc is the description of one video segment.
type SegmentDoc struct {
	StartTime              float64 `json:"start_time"`
	EndTime                float64 `json:"end_time"`
	Speech                 string  `json:"speech,omitempty"`
	SceneText              string  `json:"scene_text,omitempty"`
	VisualSceneDescription string  `json:"visual_scene_description,omitempty"`
}

// DescribeParams configures a describe job. All modalities default to
// enabled; use the pointer helpers (cloudglue.Bool) to switch one off.
type DescribeParams struct {
	EnableSpeech                 *bool
	EnableSceneText              *bool
	EnableVisualSceneDescription *bool
}

type newDescribeRequest struct {
	URL                          string `json:"url"`
	EnableSpeech                 bool   `json:"enable_speech"`
	EnableSceneText              bool   `json:"enable_scene_text"`
	EnableVisualSceneDescription bool   `json:"enable_visual_scene_description"`
}

func orDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// Create starts a describe job for the video at url. The url may be a
// YouTube URL or the URI of an uploaded file.
func (s *DescribeService) Create(ctx context.Context, videoURL string, params *DescribeParams) (*DescribeJob, error) {
	if videoURL == "" {
		return nil, newValidationError("url must be provided")
	}
	if params == nil {
		params = &DescribeParams{}
	}

	req := newDescribeRequest{
		URL:                          videoURL,
		EnableSpeech:                 orDefault(params.EnableSpeech, true),
		EnableSceneText:              orDefault(params.EnableSceneText, true),
		EnableVisualSceneDescription: orDefault(params.EnableVisualSceneDescription, true),
	}

	var job DescribeJob
	if err := s.client.doJSON(ctx, http.MethodPost, "/describe", nil, req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// Get retrieves the current state of a describe job.
func (s *DescribeService) Get(ctx context.Context, jobID string) (*DescribeJob, error) {
	var job DescribeJob
	if err := s.client.doJSON(ctx, http.MethodGet, "/describe/"+jobID, nil, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// Run creates a describe job and polls until it completes or fails.
func (s *DescribeService) Run(ctx context.Context, videoURL string, params *DescribeParams, wait *WaitOptions) (*DescribeJob, error) {
	job, err := s.Create(ctx, videoURL, params)
	if err != nil {
		return nil, err
	}

	final := job
	_, err = pollStatus(ctx, "describe job", jobTerminalStatuses, wait,
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
