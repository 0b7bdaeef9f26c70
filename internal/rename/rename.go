// Package rename builds output file and folder names for a transcoded album.
package rename

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// sourceFormat is the token in a source folder name that is replaced by
// the output label, as in "Artist - Album (2019) [FLAC]".
const sourceFormat = "FLAC"

var (
	// reIllegalFileChars matches characters not allowed in filenames
	// on at least one common filesystem: / \ : * ? " < > |
	reIllegalFileChars = regexp.MustCompile(`[/\\:*?"<>|]`)
)

// replaceIllegalFileChars replaces each illegal filename character with "-".
func replaceIllegalFileChars(s string) string {
	return reIllegalFileChars.ReplaceAllString(s, "-")
}

// TrackFilename builds "NN Title.ext" for a track. The track number is
// zero-padded to two digits and illegal characters become "-". ext may
// be given with or without its leading dot.
//
//	TrackFilename(1, "A/B: Song?", "mp3") == "01 A-B- Song-.mp3"
func TrackFilename(track int, title, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	return replaceIllegalFileChars(fmt.Sprintf("%02d %s.%s", track, title, ext))
}

// TrimSource strips trailing / and \ from a source path, which shells
// and file managers like to leave behind.
func TrimSource(source string) string {
	return strings.TrimRight(source, `/\`)
}

// FolderTitle returns the output folder name for a source folder: its
// base name with "FLAC" replaced by label.
func FolderTitle(source, label string) string {
	base := filepath.Base(TrimSource(source))
	return strings.ReplaceAll(base, sourceFormat, label)
}

// Paths selects where an album is written.
type Paths struct {
	Output   string // full output folder, used as is
	Relocate string // parent folder for the renamed album
	Cwd      string // parent folder when neither is set
}

// OutputDir returns the output folder for source. An explicit output
// path wins, then the relocation folder, then the working directory;
// the last two receive FolderTitle(source, label).
func OutputDir(source, label string, p Paths) string {
	if p.Output != "" {
		return p.Output
	}
	parent := p.Cwd
	if p.Relocate != "" {
		parent = TrimSource(p.Relocate)
	}
	return filepath.Join(parent, FolderTitle(source, label))
}
