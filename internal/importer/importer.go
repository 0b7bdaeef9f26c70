// Package importer converts a lossless album folder into a renamed,
// retagged and re-encoded copy.
//
// An import runs in two phases. Plan discovers the source files, builds
// the canonical metadata record of every track and computes output paths;
// nothing is written. Run then encodes the planned tracks in parallel and
// writes their tags and cover art.
package importer

import (
	"log/slog"
	"strings"

	"github.com/llehouerou/cheetah/internal/history"
	"github.com/llehouerou/cheetah/internal/metadata"
	"github.com/llehouerou/cheetah/internal/rename"
	"github.com/llehouerou/cheetah/internal/tags"
	"github.com/llehouerou/cheetah/internal/transcode"
)

// Options configures an Importer.
type Options struct {
	Format  transcode.Format
	Quality transcode.Quality
	Bitrate string // label substituted for "FLAC" in the folder name
	Paths   rename.Paths

	SourceExtensions []string
	Metadata         metadata.Options

	Jobs       int
	EmbedCover bool
	// CoverMaxSize bounds the embedded cover's sides in pixels; 0 keeps it.
	CoverMaxSize uint

	// Overwrite allows writing into an existing output folder.
	Overwrite bool
	// Force re-encodes tracks the history marks as done.
	Force  bool
	DryRun bool
}

type Importer struct {
	opts    Options
	enc     transcode.Encoder
	history *history.Store
	log     *slog.Logger

	readTags  func(path string) (map[string][]string, error) // nil means tags.ReadRaw
	writeTags func(path string, t *tags.Tag) error          // nil means tags.Write
}

// New returns an Importer. hist may be nil to disable history.
func New(enc transcode.Encoder, hist *history.Store, log *slog.Logger, opts Options) *Importer {
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &Importer{opts: opts, enc: enc, history: hist, log: log}
}

// folderLabel is what replaces "FLAC" in the output folder name.
func (imp *Importer) folderLabel() string {
	if imp.opts.Format.Lossless() {
		return strings.ToUpper(string(imp.opts.Format))
	}
	return imp.opts.Bitrate
}

// AllowOverwrite lets Run write into an existing output folder.
func (imp *Importer) AllowOverwrite() {
	imp.opts.Overwrite = true
}
