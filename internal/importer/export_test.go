package importer

import "github.com/llehouerou/cheetah/internal/tags"

// RetryWithBackoff exposes retryWithBackoff for testing.
var RetryWithBackoff = retryWithBackoff

// IsRetryableError exposes isRetryableError for testing.
var IsRetryableError = isRetryableError

// Test constants exposed for verification.
const (
	TestMaxRetries       = maxRetries
	TestInitialBackoff   = initialBackoff
	TestOperationTimeout = operationTimeout
)

// SetTagIO replaces the tag reader and writer of imp.
func SetTagIO(imp *Importer, read func(string) (map[string][]string, error), write func(string, *tags.Tag) error) {
	imp.readTags = read
	imp.writeTags = write
}
