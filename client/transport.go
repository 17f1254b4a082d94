package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// Transport posts run requests to an agent endpoint.
// Stream returns the raw response body for incremental consumption;
// Do reads the whole body before returning.
type Transport interface {
	Stream(ctx context.Context, url string, payload []byte) (io.ReadCloser, error)
	Do(ctx context.Context, url string, payload []byte) ([]byte, error)
}

// HTTPError is returned when the agent endpoint responds with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("client: agent returned %s", e.Status)
}

// HTTPTransport posts JSON payloads over HTTP and expects an event stream back.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport creates a transport backed by the given HTTP client.
// A nil client falls back to http.DefaultClient.
func NewHTTPTransport(c *http.Client) *HTTPTransport {
	if c == nil {
		c = http.DefaultClient
	}
	return &HTTPTransport{client: c}
}

func (t *HTTPTransport) post(ctx context.Context, url string, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("client: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: post run: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}
	return resp, nil
}

// Stream posts the payload and hands back the response body unread.
// The caller owns closing the body.
func (t *HTTPTransport) Stream(ctx context.Context, url string, payload []byte) (io.ReadCloser, error) {
	resp, err := t.post(ctx, url, payload)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Do posts the payload and returns the full response body.
func (t *HTTPTransport) Do(ctx context.Context, url string, payload []byte) ([]byte, error) {
	resp, err := t.post(ctx, url, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("client: read response: %w", err)
	}
	return body, nil
}
