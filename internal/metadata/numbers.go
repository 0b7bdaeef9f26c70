package metadata

import (
	"strconv"
	"strings"
)

// SplitNumber parses a track or disc number written as "N" or "N/M".
//
// A plain integer leaves knownTotal unchanged. For "N/M", M becomes the
// total only when knownTotal is zero: a total already read from its own
// field is authoritative. Anything else returns ErrMalformedNumber with
// num zero and knownTotal unchanged.
func SplitNumber(raw string, knownTotal int) (num, total int, err error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return n, knownTotal, nil
	}

	left, right, ok := strings.Cut(raw, "/")
	if !ok {
		return 0, knownTotal, ErrMalformedNumber
	}
	n, errN := strconv.Atoi(strings.TrimSpace(left))
	m, errM := strconv.Atoi(strings.TrimSpace(right))
	if errN != nil || errM != nil {
		return 0, knownTotal, ErrMalformedNumber
	}

	if knownTotal == 0 {
		return n, m, nil
	}
	return n, knownTotal, nil
}
