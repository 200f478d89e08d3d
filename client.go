package cloudglue

import (
	"net/http"
	"os"

	"golang.org/x/time/rate"
)

// Version is the SDK version reported in the default User-Agent.
const Version = "0.1.0"

// Client is the entry point for the Cloudglue API. It holds no state beyond
// configuration; every call is an independent round trip and the client is
// safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter

	// Files manages uploaded video files.
	Files *FilesService

	// Transcribe manages transcription jobs.
	Transcribe *TranscribeService

	// Describe manages rich description jobs.
	Describe *DescribeService

	// Extract manages structured extraction jobs.
	Extract *ExtractService

	// Collections manages collections and their videos.
	Collections *CollectionsService

	// Chat provides chat completions over collections.
	Chat *ChatService

	// Responses generates (optionally streaming) responses over
	// entity-backed knowledge.
	Responses *ResponsesService

	// Share manages publicly shareable assets.
	Share *ShareService
}

// New creates a client. The API key comes from WithAPIKey or, failing that,
// the CLOUDGLUE_API_KEY environment variable.
func New(opts ...Option) (*Client, error) {
	cfg := Config{
		BaseURL:    DefaultBaseURL,
		HTTPClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.APIKey.IsEmpty() {
		cfg.APIKey = NewSecret(os.Getenv(APIKeyEnvVar))
	}
	if cfg.APIKey.IsEmpty() {
		return nil, ErrAPIKeyNotFound
	}

	httpClient := cfg.HTTPClient
	if cfg.Timeout > 0 {
		// Copy so the timeout does not leak into a shared client.
		clone := *httpClient
		clone.Timeout = cfg.Timeout
		httpClient = &clone
	}

	c := &Client{
		cfg:        cfg,
		httpClient: httpClient,
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(cfg.RateLimit, burst)
	}

	c.Files = &FilesService{client: c}
	c.Transcribe = &TranscribeService{client: c}
	c.Describe = &DescribeService{client: c}
	c.Extract = &ExtractService{client: c}
	c.Collections = &CollectionsService{client: c}
	c.Chat = &ChatService{client: c, Completions: &CompletionsService{client: c}}
	c.Responses = &ResponsesService{client: c}
	c.Share = &ShareService{client: c}

	return c, nil
}

// Close releases the underlying connection pool. The client must not be used
// after Close; calling Close more than once is safe.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
