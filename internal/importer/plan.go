package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/llehouerou/cheetah/internal/errmsg"
	"github.com/llehouerou/cheetah/internal/metadata"
	"github.com/llehouerou/cheetah/internal/rename"
	"github.com/llehouerou/cheetah/internal/tags"
)

var (
	ErrOutputIsSource = errors.New("output folder is the source folder")
	ErrDuplicateTrack = errors.New("two tracks map to the same output file")
)

// Track is one planned conversion.
type Track struct {
	Source  string
	Output  string
	ModTime time.Time
	Size    int64
	Result  metadata.Result
}

// Plan is everything Run needs, computed without touching the output.
type Plan struct {
	Album     *Album
	OutputDir string
	Cover     string // chosen folder image, empty when none
	Tracks    []Track
}

// OutputExists reports whether the output folder is already present.
func (p *Plan) OutputExists() bool {
	_, err := os.Stat(p.OutputDir)
	return err == nil
}

// Issues counts the warnings raised while building records.
func (p *Plan) Issues() int {
	n := 0
	for _, t := range p.Tracks {
		for _, issue := range t.Result.Issues {
			if issue.Kind.Warning() {
				n++
			}
		}
	}
	return n
}

// Plan discovers source and resolves the metadata and output path of every
// track. Metadata issues are logged, not returned.
func (imp *Importer) Plan(ctx context.Context, source string) (*Plan, error) {
	source = rename.TrimSource(source)

	album, err := Discover(source, imp.opts.SourceExtensions)
	if err != nil {
		return nil, err
	}
	if len(album.Songs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoTracks, source)
	}

	for _, path := range album.Ignored {
		imp.log.Info("ignoring audio file with a non-source extension", "file", path)
	}
	if metadata.ParsePath(source).IsZero() {
		imp.log.Debug("source folder name gives no artist, album or year fallback", "source", source)
	}

	outputDir := rename.OutputDir(source, imp.folderLabel(), imp.opts.Paths)
	if sameDir(outputDir, source) {
		return nil, fmt.Errorf("%w: %s", ErrOutputIsSource, outputDir)
	}

	plan := &Plan{
		Album:     album,
		OutputDir: outputDir,
		Cover:     ChooseCover(source, album.Covers),
		Tracks:    make([]Track, 0, len(album.Songs)),
	}

	seen := make(map[string]string, len(album.Songs))
	for _, song := range album.Songs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		track, err := imp.planTrack(album, outputDir, song)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[track.Output]; ok {
			return nil, fmt.Errorf("%w: %s and %s -> %s", ErrDuplicateTrack, prev, song, track.Output)
		}
		seen[track.Output] = song

		imp.logResult(song, track.Result)
		plan.Tracks = append(plan.Tracks, track)
	}

	return plan, nil
}

func (imp *Importer) planTrack(album *Album, outputDir, song string) (Track, error) {
	info, err := os.Stat(song)
	if err != nil {
		return Track{}, err
	}

	raw, err := imp.tagReader()(song)
	if err != nil {
		return Track{}, fmt.Errorf("%s %s: %w", errmsg.OpTrackTags, song, err)
	}

	dir := filepath.Dir(song)
	result := metadata.Build(raw, metadata.ParsePath(dir), album.Context(), imp.opts.Metadata)

	rel, err := filepath.Rel(album.Source, dir)
	if err != nil {
		return Track{}, err
	}
	rec := result.Record
	name := rename.TrackFilename(rec.TrackNumber, rec.Title, imp.opts.Format.Ext())

	return Track{
		Source:  song,
		Output:  filepath.Join(outputDir, rel, name),
		ModTime: info.ModTime(),
		Size:    info.Size(),
		Result:  result,
	}, nil
}

// logResult reports every issue of one track, warnings at warn level and
// informational ones at info. Unused raw keys go to debug.
func (imp *Importer) logResult(song string, r metadata.Result) {
	for _, issue := range r.Issues {
		level := slog.LevelWarn
		if !issue.Kind.Warning() {
			level = slog.LevelInfo
		}
		attrs := []any{
			"file", filepath.Base(song),
			"kind", issue.Kind.String(),
			"field", issue.Field.String(),
		}
		if issue.Key != "" {
			attrs = append(attrs, "key", issue.Key)
		}
		if issue.Value != "" {
			attrs = append(attrs, "value", issue.Value)
		}
		if issue.Normalizer != "" {
			attrs = append(attrs, "normalizer", issue.Normalizer)
		}
		if issue.Err != nil {
			attrs = append(attrs, "error", issue.Err)
		}
		imp.log.Log(context.Background(), level, "metadata issue", attrs...)
	}
	if len(r.Unused) > 0 {
		imp.log.Debug("unused tags", "file", filepath.Base(song), "keys", r.Unused)
	}
}

func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

func (imp *Importer) tagReader() func(string) (map[string][]string, error) {
	if imp.readTags != nil {
		return imp.readTags
	}
	return tags.ReadRaw
}
