package pipeline

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dgallion1/numthm/internal/publish"
)

func TestIsRetryable(t *testing.T) {
	retryable := &publish.RetryableError{Err: errors.New("connection refused")}
	if !IsRetryable(retryable) {
		t.Error("expected RetryableError to be retryable")
	}
	if !IsRetryable(fmt.Errorf("publish book: %w", retryable)) {
		t.Error("expected wrapped RetryableError to be retryable")
	}
	if IsRetryable(errors.New("bad request")) {
		t.Error("expected plain error to be non-retryable")
	}
	if IsRetryable(nil) {
		t.Error("expected nil to be non-retryable")
	}
}

func TestBackoff(t *testing.T) {
	for attempt := 0; attempt < 10; attempt++ {
		base := time.Duration(1<<uint(attempt)) * time.Second
		if base > 30*time.Second {
			base = 30 * time.Second
		}
		d := Backoff(attempt)
		if d < base || d > base+base/2 {
			t.Errorf("attempt %d: backoff %v outside [%v, %v]", attempt, d, base, base+base/2)
		}
	}
}
