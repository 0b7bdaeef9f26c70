package metadata

import (
	"regexp"
	"strings"
)

var (
	rePathArtistAlbum = regexp.MustCompile(`(^.+?) - (.+) \(`)
	rePathYear        = regexp.MustCompile(`.*([12]\d{3}).*`)
)

// PathMetadata is album information read from a folder named like
// "Artist - Album (Year) [FLAC]".
type PathMetadata struct {
	Artist string
	Album  string
	Year   string
}

// IsZero reports whether no folder matched.
func (p PathMetadata) IsZero() bool {
	return p == PathMetadata{}
}

// ParsePath matches the path's folder names against the
// "Artist - Album (Year)" convention, deepest first, and returns the
// first match. Both / and \ separate folders.
func ParsePath(dir string) PathMetadata {
	segments := strings.FieldsFunc(dir, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	for i := len(segments) - 1; i >= 0; i-- {
		m := rePathArtistAlbum.FindStringSubmatch(segments[i])
		if m == nil {
			continue
		}
		p := PathMetadata{Artist: m[1], Album: m[2]}
		if y := rePathYear.FindStringSubmatch(segments[i]); y != nil {
			p.Year = y[1]
		}
		return p
	}
	return PathMetadata{}
}
