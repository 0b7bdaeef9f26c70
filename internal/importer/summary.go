package importer

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/cheetah/internal/tags"
)

// Summary describes a finished (or dry) run.
type Summary struct {
	OutputDir   string
	Tracks      int
	Encoded     int
	Skipped     int
	Issues      int
	Duration    time.Duration // total source audio length
	InputBytes  int64
	OutputBytes int64
	DryRun      bool
}

func newSummary(plan *Plan, dryRun bool) *Summary {
	sum := &Summary{
		OutputDir: plan.OutputDir,
		Tracks:    len(plan.Tracks),
		Issues:    plan.Issues(),
		DryRun:    dryRun,
	}
	for _, t := range plan.Tracks {
		sum.InputBytes += t.Size
		sum.Duration += sourceDuration(t.Source)
	}
	return sum
}

// sourceDuration returns the length of a FLAC source, 0 for other formats
// or unreadable files.
func sourceDuration(path string) time.Duration {
	info, err := tags.ReadAudioInfo(path)
	if err != nil {
		return 0
	}
	return info.Duration
}

func (s *Summary) String() string {
	if s.DryRun {
		return fmt.Sprintf("dry run: %d tracks, %s of audio, %s -> %s (%d metadata warnings)",
			s.Tracks, s.Duration.Round(time.Second), humanize.Bytes(uint64(s.InputBytes)), s.OutputDir, s.Issues)
	}
	return fmt.Sprintf("%d/%d tracks converted, %d unchanged, %s of audio, %s -> %s in %s (%d metadata warnings)",
		s.Encoded, s.Tracks, s.Skipped, s.Duration.Round(time.Second),
		humanize.Bytes(uint64(s.InputBytes)), humanize.Bytes(uint64(s.OutputBytes)),
		s.OutputDir, s.Issues)
}
