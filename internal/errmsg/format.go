// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Setup
	OpConfigLoad    Op = "load configuration"
	OpEncoderLookup Op = "find encoder"
	OpHistoryOpen   Op = "open conversion history"

	// Source operations
	OpSourceScan Op = "scan source folder"
	OpOutputDir  Op = "create output folder"

	// Track operations
	OpTrackTags   Op = "read file tags"
	OpTrackEncode Op = "encode track"
	OpTrackWrite  Op = "write track tags"

	// Cover operations
	OpCoverCopy Op = "copy cover art"
	OpCoverRead Op = "read cover art"

	// History
	OpHistoryRecord Op = "record conversion"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Error is an error annotated with the operation that failed. Its message
// is the Format rendering, and errors.Is/As see through to Err.
type Error struct {
	Op  Op
	Err error
}

func (e *Error) Error() string { return Format(e.Op, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Wrap returns err annotated with op, or nil when err is nil.
func Wrap(op Op, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
