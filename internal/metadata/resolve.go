package metadata

import (
	"fmt"
	"strings"
)

// Resolution is the outcome of resolving one field.
type Resolution struct {
	Field Field
	Value string
	Key   string // raw key consumed, "" when no candidate was present
	// Issue is set when the normalizer failed; Value is then "".
	Issue *Issue
}

// Found reports whether any candidate key was present.
func (r Resolution) Found() bool {
	return r.Key != ""
}

// Resolve looks up a field in raw tags. The first candidate key present
// wins. Multiple values are joined with ", ". The field normalizer, if
// any, runs on non-empty values only; a failing or panicking normalizer
// resets the value to "" and sets Issue.
func Resolve(raw RawTags, f Field, opts Options) Resolution {
	res := Resolution{Field: f}
	spec := fieldSpecs[f]

	for _, key := range spec.keys {
		values, ok := raw[key]
		if !ok {
			continue
		}
		res.Key = key
		res.Value = joinValues(values)
		break
	}
	if !res.Found() || res.Value == "" || spec.normalizer == nil {
		return res
	}

	n := spec.normalizer(opts)
	if n == nil {
		return res
	}
	normalized, err := applyNormalizer(n, res.Value)
	if err != nil {
		res.Issue = &Issue{
			Kind:       NormalizationFailure,
			Field:      f,
			Key:        res.Key,
			Value:      res.Value,
			Normalizer: n.Name,
			Err:        err,
		}
		res.Value = ""
		return res
	}
	res.Value = normalized
	return res
}

func joinValues(values []string) string {
	if len(values) == 1 {
		return values[0]
	}
	return strings.Join(values, ", ")
}

func applyNormalizer(n *Normalizer, value string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return n.Fn(value)
}
