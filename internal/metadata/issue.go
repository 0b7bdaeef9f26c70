package metadata

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by Issue.Err.
var (
	ErrMalformedNumber = errors.New("neither an integer nor N/M")
	ErrNoYear          = errors.New("no four-digit year")
	ErrNoArtist        = errors.New("no artist after reconciliation")
)

// IssueKind classifies a recovered problem.
type IssueKind int

const (
	// NormalizationFailure: a field normalizer rejected its value; the
	// field was reset to empty.
	NormalizationFailure IssueKind = iota + 1
	// MalformedNumericField: a number field was not N or N/M; it was
	// reset to zero.
	MalformedNumericField
	// TotalsMismatch: the tagged track total disagrees with the file
	// count. The tag is kept.
	TotalsMismatch
	// TotalsOverridden: the track total was missing and was set from the
	// file count.
	TotalsOverridden
	// UnresolvableArtist: no artist name survived reconciliation.
	UnresolvableArtist
)

func (k IssueKind) String() string {
	switch k {
	case NormalizationFailure:
		return "normalization failure"
	case MalformedNumericField:
		return "malformed numeric field"
	case TotalsMismatch:
		return "totals mismatch"
	case TotalsOverridden:
		return "totals overridden"
	case UnresolvableArtist:
		return "unresolvable artist"
	default:
		return "unknown issue"
	}
}

// Warning reports whether the issue deserves the user's attention.
// TotalsOverridden is informational.
func (k IssueKind) Warning() bool {
	return k != TotalsOverridden
}

// Issue is a problem found and recovered while resolving one field.
type Issue struct {
	Kind       IssueKind
	Field      Field
	Key        string // raw key the value came from, if any
	Value      string // offending value
	Normalizer string // normalizer name for NormalizationFailure
	Err        error
}

func (i Issue) Error() string {
	msg := fmt.Sprintf("%s: %s", i.Field, i.Kind)
	if i.Normalizer != "" {
		msg += " (" + i.Normalizer + ")"
	}
	if i.Value != "" {
		msg += fmt.Sprintf(" %q", i.Value)
	}
	if i.Err != nil {
		msg += ": " + i.Err.Error()
	}
	return msg
}

func (i Issue) Unwrap() error {
	return i.Err
}
