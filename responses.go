package cloudglue

import (
	"context"
	"net/http"
	"net/url"
)

// ResponsesService generates responses over entity-backed knowledge, with
// optional server-sent-event streaming and background execution.
type ResponsesService struct {
	client *Client
}

// KnowledgeBase selects a collection (optionally filtered) for a response to
// search. The configuration is opaque to the client beyond shape validation.
type KnowledgeBase struct {
	CollectionID string  `json:"collection_id"`
	Filter       *Filter `json:"filter,omitempty"`
}

// Response is a generated response.
type Response struct {
	ID         string           `json:"id"`
	Status     Status           `json:"status"`
	Model      string           `json:"model"`
	OutputText string           `json:"output_text,omitempty"`
	CreatedAt  string           `json:"created_at"`
	Usage      *CompletionUsage `json:"usage,omitempty"`
	Error      string           `json:"error,omitempty"`
}

// ResponseList is a page of responses.
type ResponseList struct {
	Object string     `json:"object"`
	Data   []Response `json:"data"`
	Total  int        `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

// ResponseParams configures response generation.
type ResponseParams struct {
	// Input is the conversation input (required).
	Input []Message

	// Model defaults to DefaultModel.
	Model string

	// KnowledgeBases lists the knowledge configurations to search.
	KnowledgeBases []KnowledgeBase

	// Background runs the response asynchronously; poll Get or call Cancel.
	// Nil uses the API default.
	Background *bool
}

// ResponseListParams filters and paginates List.
type ResponseListParams struct {
	ListParams

	// Status filters by response status.
	Status Status

	// CreatedBefore and CreatedAfter filter by creation date
	// (YYYY-MM-DD, UTC).
	CreatedBefore string
	CreatedAfter  string
}

type createResponseRequest struct {
	Input          []Message       `json:"input"`
	Model          string          `json:"model"`
	KnowledgeBases []KnowledgeBase `json:"knowledge_bases,omitempty"`
	Background     *bool           `json:"background,omitempty"`
	Stream         bool            `json:"stream,omitempty"`
}

func (s *ResponsesService) buildRequest(params *ResponseParams, stream bool) (*createResponseRequest, error) {
	if params == nil || len(params.Input) == 0 {
		return nil, newValidationError("at least one input message must be provided")
	}
	for _, kb := range params.KnowledgeBases {
		if kb.CollectionID == "" {
			return nil, newValidationError("knowledge base collection_id must be provided")
		}
		if err := kb.Filter.validate(); err != nil {
			return nil, err
		}
	}

	model := params.Model
	if model == "" {
		model = DefaultModel
	}

	return &createResponseRequest{
		Input:          params.Input,
		Model:          model,
		KnowledgeBases: params.KnowledgeBases,
		Background:     params.Background,
		Stream:         stream,
	}, nil
}

// Create generates a response and returns it once complete (or, in
// background mode, returns the pending response immediately).
func (s *ResponsesService) Create(ctx context.Context, params *ResponseParams) (*Response, error) {
	req, err := s.buildRequest(params, false)
	if err != nil {
		return nil, err
	}

	var response Response
	if err := s.client.doJSON(ctx, http.MethodPost, "/responses", nil, req, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// CreateStream generates a response and streams it as server-sent events.
// The caller must Close the stream. The stream supports a single consumer.
func (s *ResponsesService) CreateStream(ctx context.Context, params *ResponseParams) (*ResponseStream, error) {
	req, err := s.buildRequest(params, true)
	if err != nil {
		return nil, err
	}
	return s.client.doStream(ctx, "/responses", req)
}

// Get retrieves a response by ID.
func (s *ResponsesService) Get(ctx context.Context, responseID string) (*Response, error) {
	var response Response
	if err := s.client.doJSON(ctx, http.MethodGet, "/responses/"+responseID, nil, nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// List returns responses.
func (s *ResponsesService) List(ctx context.Context, params *ResponseListParams) (*ResponseList, error) {
	var q url.Values
	if params != nil {
		q = params.ListParams.values()
		if params.Status != "" {
			q.Set("status", string(params.Status))
		}
		if params.CreatedBefore != "" {
			q.Set("created_before", params.CreatedBefore)
		}
		if params.CreatedAfter != "" {
			q.Set("created_after", params.CreatedAfter)
		}
	}

	var list ResponseList
	if err := s.client.doJSON(ctx, http.MethodGet, "/responses", q, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Delete removes a response.
func (s *ResponsesService) Delete(ctx context.Context, responseID string) (*DeleteResponse, error) {
	var out DeleteResponse
	if err := s.client.doJSON(ctx, http.MethodDelete, "/responses/"+responseID, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancel stops an in-progress background response. The returned response may
// already be completed or failed.
func (s *ResponsesService) Cancel(ctx context.Context, responseID string) (*Response, error) {
	var response Response
	if err := s.client.doJSON(ctx, http.MethodPost, "/responses/"+responseID+"/cancel", nil, nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}
