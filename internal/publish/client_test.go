package publish

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dgallion1/numthm/internal/book"
)

func testBook() *book.Book {
	return &book.Book{Chapters: []*book.Chapter{{Name: "Ch", Path: "ch.md", Content: "**Theorem 1.**"}}}
}

func TestEnabled(t *testing.T) {
	if NewClient("", "").Enabled() {
		t.Error("expected disabled without base URL")
	}
	if !NewClient("http://localhost:9999", "key").Enabled() {
		t.Error("expected enabled with base URL")
	}
	var nilClient *Client
	if nilClient.Enabled() {
		t.Error("expected nil client disabled")
	}
}

func TestPublishResult_Success(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq ResultRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	warns := []book.Warning{{Severity: book.SeverityWarning, Message: "dup", Path: "ch.md"}}
	if err := c.PublishResult(context.Background(), "bk1", testBook(), warns); err != nil {
		t.Fatalf("PublishResult: %v", err)
	}
	if gotPath != "/books/bk1" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("unexpected auth %q", gotAuth)
	}
	if gotReq.Book == nil || len(gotReq.Warnings) != 1 {
		t.Errorf("unexpected body %+v", gotReq)
	}
}

func TestPublishResult_ServerErrorRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "k").PublishResult(context.Background(), "bk", testBook(), nil)
	var retryable *RetryableError
	if !errors.As(err, &retryable) {
		t.Fatalf("expected RetryableError for 5xx, got %v", err)
	}
}

func TestPublishResult_ClientErrorNotRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad book", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "k").PublishResult(context.Background(), "bk", testBook(), nil)
	if err == nil {
		t.Fatal("expected error for 4xx")
	}
	var retryable *RetryableError
	if errors.As(err, &retryable) {
		t.Errorf("4xx must not be retryable, got %v", err)
	}
}

func TestPublishResult_NetworkErrorRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	err := NewClient(srv.URL, "k").PublishResult(context.Background(), "bk", testBook(), nil)
	var retryable *RetryableError
	if !errors.As(err, &retryable) {
		t.Fatalf("expected RetryableError for network failure, got %v", err)
	}
}
