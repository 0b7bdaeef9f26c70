package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/cheetah/internal/errmsg"
	"github.com/llehouerou/cheetah/internal/history"
	"github.com/llehouerou/cheetah/internal/metadata"
	"github.com/llehouerou/cheetah/internal/tags"
	"github.com/llehouerou/cheetah/internal/transcode"
)

// ErrOutputExists is returned by Run when the output folder exists and
// overwriting was not allowed.
var ErrOutputExists = errors.New("output folder already exists")

// Run encodes every planned track, writes its tags and copies the cover.
// Tracks the history marks as unchanged are skipped unless Force is set.
// On failure the returned Summary covers the tracks finished so far.
func (imp *Importer) Run(ctx context.Context, plan *Plan) (*Summary, error) {
	sum := newSummary(plan, imp.opts.DryRun)

	if plan.OutputExists() && !imp.opts.Overwrite {
		return sum, fmt.Errorf("%w: %s", ErrOutputExists, plan.OutputDir)
	}

	if imp.opts.DryRun {
		for _, t := range plan.Tracks {
			imp.log.Info("would convert", "source", t.Source, "output", t.Output)
		}
		return sum, nil
	}

	imp.log.Info("converting album",
		"tracks", len(plan.Tracks),
		"output", plan.OutputDir,
		"format", string(imp.opts.Format),
		"quality", imp.opts.Quality.String(),
		"jobs", imp.opts.Jobs,
	)

	if err := os.MkdirAll(plan.OutputDir, 0o755); err != nil {
		return sum, fmt.Errorf("%s: %w", errmsg.OpOutputDir, err)
	}
	cover := imp.prepareCover(ctx, plan)

	var (
		mu   sync.Mutex
		done []history.Entry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(imp.opts.Jobs)

	for _, t := range plan.Tracks {
		g.Go(func() error {
			entry := imp.historyEntry(t)

			skip := imp.unchanged(gctx, entry)
			if !skip {
				if err := imp.convert(gctx, t, cover); err != nil {
					return fmt.Errorf("%s: %w", filepath.Base(t.Source), err)
				}
				imp.log.Info("converted", "track", filepath.Base(t.Output))
			} else {
				imp.log.Info("unchanged, skipping", "track", filepath.Base(t.Output))
			}

			var size int64
			if info, err := os.Stat(t.Output); err == nil {
				size = info.Size()
			}

			mu.Lock()
			defer mu.Unlock()
			sum.OutputBytes += size
			if skip {
				sum.Skipped++
				return nil
			}
			sum.Encoded++
			done = append(done, entry)
			return nil
		})
	}

	err := g.Wait()

	if imp.history != nil && len(done) > 0 {
		if herr := imp.history.Record(ctx, done...); herr != nil {
			imp.log.Warn(errmsg.Format(errmsg.OpHistoryRecord, herr))
		}
	}

	return sum, err
}

// convert encodes one track and writes its canonical tags.
func (imp *Importer) convert(ctx context.Context, t Track, cover *Cover) error {
	if err := os.MkdirAll(filepath.Dir(t.Output), 0o755); err != nil {
		return err
	}

	job := transcode.Job{
		Source:  t.Source,
		Output:  t.Output,
		Format:  imp.opts.Format,
		Quality: imp.opts.Quality,
	}
	if err := imp.enc.Encode(ctx, job); err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpTrackEncode, err)
	}

	tag := tagFor(t.Result.Record, cover)
	err := retryWithBackoff(ctx, string(errmsg.OpTrackWrite), func() error {
		return imp.tagWriter()(t.Output, tag)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpTrackWrite, err)
	}
	return nil
}

// prepareCover writes cover.<ext> into the output folder and returns the
// art to embed, or nil when embedding is off. Cover problems are logged
// and never fail the import.
func (imp *Importer) prepareCover(ctx context.Context, plan *Plan) *Cover {
	cover, err := LoadCover(plan.Cover, plan.Tracks[0].Source)
	if err != nil {
		imp.log.Warn(errmsg.FormatWith(errmsg.OpCoverRead, plan.Cover, err))
		return nil
	}
	if cover == nil {
		imp.log.Info("no cover art found")
		return nil
	}

	err = retryWithBackoff(ctx, string(errmsg.OpCoverCopy), func() error {
		_, err := WriteCover(cover, plan.OutputDir)
		return err
	})
	if err != nil {
		imp.log.Warn(errmsg.Format(errmsg.OpCoverCopy, err))
	}

	if !imp.opts.EmbedCover {
		return nil
	}
	small, err := ShrinkCover(cover, imp.opts.CoverMaxSize)
	if err != nil {
		imp.log.Warn("cover not resized, embedding as is", "error", err)
		return cover
	}
	return small
}

func (imp *Importer) historyEntry(t Track) history.Entry {
	return history.Entry{
		Source:        t.Source,
		Output:        t.Output,
		Format:        string(imp.opts.Format),
		Bitrate:       imp.opts.Quality.String(),
		SourceModTime: t.ModTime,
	}
}

func (imp *Importer) unchanged(ctx context.Context, e history.Entry) bool {
	if imp.history == nil || imp.opts.Force {
		return false
	}
	ok, err := imp.history.Unchanged(ctx, e)
	if err != nil {
		imp.log.Warn("history lookup failed", "source", e.Source, "error", err)
		return false
	}
	return ok
}

func (imp *Importer) tagWriter() func(string, *tags.Tag) error {
	if imp.writeTags != nil {
		return imp.writeTags
	}
	return tags.Write
}

// tagFor maps a canonical record onto the tag writer's fields.
func tagFor(rec metadata.Record, cover *Cover) *tags.Tag {
	t := &tags.Tag{
		Title:       rec.Title,
		Artist:      rec.Artist,
		AlbumArtist: rec.AlbumArtist,
		Album:       rec.Album,
		Genre:       rec.Genre,
		Date:        rec.Date,
		Year:        rec.Year,
		TrackNumber: rec.TrackNumber,
		TotalTracks: rec.TotalTracks,
	}
	if rec.HasDisc {
		t.DiscNumber = rec.DiscNumber
		t.TotalDiscs = rec.TotalDiscs
	}
	if cover != nil {
		t.CoverArt = cover.Data
	}
	return t
}
