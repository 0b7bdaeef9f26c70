package transcode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ErrEncoderMissing is returned when the ffmpeg binary cannot be found.
var ErrEncoderMissing = errors.New("encoder not found on PATH")

// Job describes one source file to encode.
type Job struct {
	Source  string
	Output  string
	Format  Format
	Quality Quality
}

// Encoder turns a Job's source into its output file.
// Tags are written separately, so encoders drop source metadata.
type Encoder interface {
	Encode(ctx context.Context, job Job) error
}

// EncodeError carries the tail of ffmpeg's stderr for a failed job.
type EncodeError struct {
	Source string
	Stderr string
	Err    error
}

func (e *EncodeError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("encode %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("encode %s: %v: %s", e.Source, e.Err, e.Stderr)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// FFmpeg encodes with an ffmpeg binary.
type FFmpeg struct {
	Binary string
	// Stderr, when set, receives ffmpeg's stderr as it runs.
	Stderr io.Writer
}

// NewFFmpeg resolves binary on PATH ("ffmpeg" when empty).
func NewFFmpeg(binary string) (*FFmpeg, error) {
	if binary == "" {
		binary = "ffmpeg"
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEncoderMissing, binary)
	}
	return &FFmpeg{Binary: path}, nil
}

// Encode runs ffmpeg for job. A partial output file is removed on failure.
func (e *FFmpeg) Encode(ctx context.Context, job Job) error {
	cmd := exec.CommandContext(ctx, e.Binary, Args(job)...)

	var stderr bytes.Buffer
	if e.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, e.Stderr)
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		_ = os.Remove(job.Output)
		return &EncodeError{
			Source: job.Source,
			Stderr: lastLine(stderr.String()),
			Err:    err,
		}
	}
	return nil
}

// Args builds the ffmpeg argument list for job, without the binary name.
func Args(job Job) []string {
	args := make([]string, 0, 24)
	args = append(args, "-hide_banner", "-nostdin", "-y", "-loglevel", "error")
	args = append(args, "-i", job.Source)

	// Audio only; cover art and tags are written after encoding.
	args = append(args, "-map", "0:a:0", "-map_metadata", "-1", "-vn")
	args = append(args, codecArgs(job.Format, job.Quality)...)

	return append(args, job.Output)
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
