// Package publish pushes transformed books to a downstream build endpoint.
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dgallion1/numthm/internal/book"
)

// Client communicates with the result endpoint over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Enabled reports whether a result endpoint is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// ResultRequest is the body for POST /books/{id}.
type ResultRequest struct {
	Book     *book.Book     `json:"book"`
	Warnings []book.Warning `json:"warnings"`
}

// RetryableError marks transient failures (network errors, 5xx responses)
// that the pipeline may retry with backoff.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// PublishResult posts the transformed book and its warnings under bookID.
func (c *Client) PublishResult(ctx context.Context, bookID string, b *book.Book, warnings []book.Warning) error {
	body, err := json.Marshal(ResultRequest{Book: b, Warnings: warnings})
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/books/"+bookID, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &RetryableError{Err: fmt.Errorf("publish result: %w", err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusAccepted {
		return nil
	}
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	errResp := fmt.Errorf("publish result %s: status %d: %s", bookID, resp.StatusCode, string(respBody))
	if resp.StatusCode >= 500 {
		return &RetryableError{Err: errResp}
	}
	return errResp
}

// Close releases any resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
