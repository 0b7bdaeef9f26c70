// Package tags reads raw tags from source files and writes canonical
// tags to transcoded files. It covers MP3, FLAC, Opus/Ogg and M4A.
package tags

import (
	"path/filepath"
	"slices"
	"strings"
)

// File extensions supported by the tags package.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtOPUS = ".opus"
	ExtOGG  = ".ogg"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
)

// id3Magic is the magic bytes for ID3v2 header detection.
const id3Magic = "ID3"

var writableExts = []string{ExtMP3, ExtFLAC, ExtOPUS, ExtOGG, ExtM4A, ExtMP4}

// Tag is the tag set written to an output file. Zero numbers are not
// written.
type Tag struct {
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Genre       string

	// Date is the full release date; Year is written when Date is empty.
	Date string
	Year string

	TrackNumber int
	TotalTracks int
	DiscNumber  int
	TotalDiscs  int

	// Artwork (JPEG or PNG), optional.
	CoverArt []byte
}

// date returns the date to write: the full date when known, else the year.
func (t *Tag) date() string {
	if t.Date != "" {
		return t.Date
	}
	return t.Year
}

// IsMusicFile returns true if the path has an extension the package can
// write tags to.
func IsMusicFile(path string) bool {
	return slices.Contains(writableExts, ext(path))
}

// HasExt reports whether path ends in one of exts, case-insensitively.
// exts are given with their leading dot.
func HasExt(path string, exts []string) bool {
	e := ext(path)
	for _, x := range exts {
		if strings.EqualFold(e, x) {
			return true
		}
	}
	return false
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
