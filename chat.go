package cloudglue

import (
	"context"
	"net/http"
)

// DefaultModel is the model used when none is specified.
const DefaultModel = "nimbus-001"

// ChatService groups the chat namespaces.
type ChatService struct {
	client *Client

	// Completions creates retrieval-grounded chat completions.
	Completions *CompletionsService
}

// CompletionsService creates chat completions over collections.
type CompletionsService struct {
	client *Client
}

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletion is the generated completion.
type ChatCompletion struct {
	ID        string             `json:"id"`
	Model     string             `json:"model"`
	Choices   []CompletionChoice `json:"choices"`
	Usage     *CompletionUsage   `json:"usage,omitempty"`
	Citations []Citation         `json:"citations,omitempty"`
}

// CompletionChoice is one generated answer.
type CompletionChoice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// CompletionUsage is token accounting for a completion.
type CompletionUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Citation grounds a completion in a span of a collection video.
type Citation struct {
	CollectionID string  `json:"collection_id"`
	FileID       string  `json:"file_id"`
	StartTime    float64 `json:"start_time"`
	EndTime      float64 `json:"end_time"`
	Text         string  `json:"text"`
}

// CompletionParams configures a chat completion. Every recognized option is
// an explicit field.
type CompletionParams struct {
	// Messages is the conversation so far (required).
	Messages []Message

	// Model defaults to DefaultModel.
	Model string

	// Collections lists collection IDs to search.
	Collections []string

	// Filter constrains which videos are searched.
	Filter *Filter

	// ForceSearch forces retrieval even when the model would answer
	// directly. Nil uses the API default.
	ForceSearch *bool

	// IncludeCitations includes grounding citations in the response. Nil
	// uses the API default.
	IncludeCitations *bool

	// MaxTokens caps generation length. Nil uses the API default.
	MaxTokens *int

	// Temperature is the sampling temperature. Nil uses the API default.
	Temperature *float64

	// TopP is the nucleus sampling parameter. Nil uses the API default.
	TopP *float64
}

type completionRequest struct {
	Model            string    `json:"model"`
	Messages         []Message `json:"messages"`
	Collections      []string  `json:"collections"`
	Filter           *Filter   `json:"filter,omitempty"`
	ForceSearch      *bool     `json:"force_search,omitempty"`
	IncludeCitations *bool     `json:"include_citations,omitempty"`
	MaxTokens        *int      `json:"max_tokens,omitempty"`
	Temperature      *float64  `json:"temperature,omitempty"`
	TopP             *float64  `json:"top_p,omitempty"`
}

// Create generates a chat completion.
func (s *CompletionsService) Create(ctx context.Context, params *CompletionParams) (*ChatCompletion, error) {
	if params == nil || len(params.Messages) == 0 {
		return nil, newValidationError("at least one message must be provided")
	}
	if err := params.Filter.validate(); err != nil {
		return nil, err
	}

	model := params.Model
	if model == "" {
		model = DefaultModel
	}
	collections := params.Collections
	if collections == nil {
		collections = []string{}
	}

	req := completionRequest{
		Model:            model,
		Messages:         params.Messages,
		Collections:      collections,
		Filter:           params.Filter,
		ForceSearch:      params.ForceSearch,
		IncludeCitations: params.IncludeCitations,
		MaxTokens:        params.MaxTokens,
		Temperature:      params.Temperature,
		TopP:             params.TopP,
	}

	var completion ChatCompletion
	if err := s.client.doJSON(ctx, http.MethodPost, "/chat/completions", nil, req, &completion); err != nil {
		return nil, err
	}
	return &completion, nil
}
