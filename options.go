package cloudglue

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the default Cloudglue API base URL.
const DefaultBaseURL = "https://api.cloudglue.dev/v1"

// APIKeyEnvVar is the environment variable consulted when no explicit API
// key is configured.
const APIKeyEnvVar = "CLOUDGLUE_API_KEY"

// Config holds client configuration. Every recognized option is an explicit
// field; there is no untyped passthrough.
type Config struct {
	// APIKey authenticates requests (required).
	APIKey Secret

	// BaseURL is the API base URL. Defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient is the HTTP client to use. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Headers contains optional extra headers to include in every request.
	Headers http.Header

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Timeout is the optional per-request timeout.
	Timeout time.Duration

	// RateLimit caps outgoing requests per second. Zero means unlimited.
	RateLimit rate.Limit

	// RateBurst is the burst size used with RateLimit. Defaults to 1 when a
	// rate limit is set.
	RateBurst int
}

// Option configures the client.
type Option func(*Config)

// WithAPIKey sets the API key explicitly instead of reading it from the
// environment.
func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.APIKey = NewSecret(key)
	}
}

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithHeader adds an extra header to include in every request.
func WithHeader(key, value string) Option {
	return func(c *Config) {
		if c.Headers == nil {
			c.Headers = make(http.Header)
		}
		c.Headers.Set(key, value)
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Config) {
		c.UserAgent = ua
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithRateLimit enables client-side rate limiting of outgoing requests.
// Requests block until the limiter admits them or the context is canceled.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(c *Config) {
		c.RateLimit = rate.Limit(requestsPerSecond)
		c.RateBurst = burst
	}
}
