package cloudglue

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// newRequest builds an authenticated request for the given API path. Each
// request carries a freshly generated request ID for correlation.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Request, string, error) {
	u := c.cfg.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, "", err
	}

	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey.Expose())
	req.Header.Set(requestIDHeader, requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	ua := c.cfg.UserAgent
	if ua == "" {
		ua = "cloudglue-go/" + Version
	}
	req.Header.Set("User-Agent", ua)
	for key, values := range c.cfg.Headers {
		for _, v := range values {
			req.Header.Set(key, v)
		}
	}

	return req, requestID, nil
}

// send executes a request, enforcing the optional client-side rate limit,
// and normalizes every failure into *Error. On success it returns the read
// response body.
func (c *Client) send(req *http.Request, requestID string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, newNetworkError(err, requestID)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newNetworkError(err, requestID)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError(err, requestID)
	}

	if resp.StatusCode >= 400 {
		return nil, normalizeError(resp, body, requestID)
	}

	return body, nil
}

// doJSON performs a round trip with a JSON request body (when in is non-nil)
// and decodes the JSON response into out (when out is non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return newDecodeError(err, "")
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	req, requestID, err := c.newRequest(ctx, method, path, query, body, contentType)
	if err != nil {
		return newNetworkError(err, "")
	}

	respBody, sendErr := c.send(req, requestID)
	if sendErr != nil {
		return sendErr
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return newDecodeError(err, requestID)
		}
	}
	return nil
}

// doMultipart performs a POST with a multipart/form-data body assembled by
// build, decoding the JSON response into out.
func (c *Client) doMultipart(ctx context.Context, path string, build func(*multipart.Writer) error, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := build(w); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return newNetworkError(err, "")
	}

	req, requestID, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf, w.FormDataContentType())
	if err != nil {
		return newNetworkError(err, "")
	}

	respBody, sendErr := c.send(req, requestID)
	if sendErr != nil {
		return sendErr
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return newDecodeError(err, requestID)
		}
	}
	return nil
}

// doStream performs a POST with a JSON body and hands the open response body
// to a ResponseStream. The caller owns the stream and must Close it.
func (c *Client) doStream(ctx context.Context, path string, in any) (*ResponseStream, error) {
	encoded, err := json.Marshal(in)
	if err != nil {
		return nil, newDecodeError(err, "")
	}

	req, requestID, err := c.newRequest(ctx, http.MethodPost, path, nil, bytes.NewReader(encoded), "application/json")
	if err != nil {
		return nil, newNetworkError(err, "")
	}
	req.Header.Set("Accept", "text/event-stream")

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, newNetworkError(err, requestID)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newNetworkError(err, requestID)
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return nil, normalizeError(resp, body, requestID)
	}

	return newResponseStream(resp.Body), nil
}
