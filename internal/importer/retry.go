package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"
)

// Retry configuration
const (
	maxRetries       = 3
	initialBackoff   = 500 * time.Millisecond
	maxBackoff       = 5 * time.Second
	operationTimeout = 30 * time.Second
)

// retryWithBackoff executes an operation with exponential backoff retry.
// Returns the last error if all retries fail.
func retryWithBackoff(ctx context.Context, operation string, fn func() error) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%s: cancelled after %d attempts: %w", operation, attempt, lastErr)
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, maxBackoff)
		}

		done := make(chan error, 1)
		go func() {
			done <- fn()
		}()

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: cancelled: %w", operation, ctx.Err())
		case err := <-done:
			if err == nil {
				return nil
			}
			lastErr = err
			if !isRetryableError(err) {
				return fmt.Errorf("%s: %w", operation, err)
			}
		case <-time.After(operationTimeout):
			lastErr = fmt.Errorf("timeout after %v", operationTimeout)
		}
	}

	return fmt.Errorf("%s: failed after %d attempts: %w", operation, maxRetries+1, lastErr)
}

// retryableErrnos are transient conditions on network mounts and busy files.
var retryableErrnos = []syscall.Errno{
	syscall.EAGAIN,
	syscall.EBUSY,
	syscall.EINTR,
	syscall.ETXTBSY,
	syscall.EACCES,
}

// isRetryableError checks if an error is likely temporary and worth retrying.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	for _, errno := range retryableErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	// Tag libraries often flatten OS errors into strings.
	errStr := strings.ToLower(err.Error())
	for _, hint := range []string{
		"locked", "in use", "busy", "permission denied", "access denied",
		"timeout", "connection", "network", "i/o", "temporary",
	} {
		if strings.Contains(errStr, hint) {
			return true
		}
	}

	return false
}
