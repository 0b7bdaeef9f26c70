// Package transcode converts lossless source files into the configured
// output format by running ffmpeg.
package transcode

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Format is an output container and codec pair.
type Format string

const (
	FormatMP3  Format = "mp3"
	FormatOpus Format = "opus"
	FormatM4A  Format = "m4a"
	FormatFLAC Format = "flac"
)

var (
	ErrUnknownFormat  = errors.New("unknown output format")
	ErrInvalidBitrate = errors.New("invalid bitrate")
)

type formatSpec struct {
	ext      string
	codec    string
	vbr      bool // accepts LAME style V0-V9 presets
	lossless bool // bitrate is ignored
}

var formats = map[Format]formatSpec{
	FormatMP3:  {ext: ".mp3", codec: "libmp3lame", vbr: true},
	FormatOpus: {ext: ".opus", codec: "libopus"},
	FormatM4A:  {ext: ".m4a", codec: "aac"},
	FormatFLAC: {ext: ".flac", codec: "flac", lossless: true},
}

var (
	reVBR  = regexp.MustCompile(`^[Vv]([0-9])$`)
	reKbps = regexp.MustCompile(`^([0-9]{1,3})[kK]?$`)
)

const (
	minKbps = 8
	maxKbps = 512
)

// ParseFormat returns the Format named by s, ignoring case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := formats[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
	return f, nil
}

// Ext returns the file extension for f, including the leading dot.
func (f Format) Ext() string {
	return formats[f].ext
}

// Lossless reports whether f ignores the bitrate setting.
func (f Format) Lossless() bool {
	return formats[f].lossless
}

// Quality is a parsed bitrate setting.
// VBR is the LAME preset (0 best, 9 worst) or -1 for a constant bitrate.
type Quality struct {
	VBR  int
	Kbps int
}

func (q Quality) String() string {
	switch {
	case q.VBR >= 0:
		return "V" + strconv.Itoa(q.VBR)
	case q.Kbps > 0:
		return strconv.Itoa(q.Kbps) + "k"
	default:
		return "lossless"
	}
}

// ParseBitrate parses s as either a VBR preset ("V0".."V9") or a bitrate in
// kbit/s ("320", "192k") and checks that f accepts it.
func ParseBitrate(f Format, s string) (Quality, error) {
	spec, ok := formats[f]
	if !ok {
		return Quality{}, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
	if spec.lossless {
		return Quality{VBR: -1}, nil
	}

	s = strings.TrimSpace(s)
	if m := reVBR.FindStringSubmatch(s); m != nil {
		if !spec.vbr {
			return Quality{}, fmt.Errorf("%w: %s does not support VBR preset %q", ErrInvalidBitrate, f, s)
		}
		n, _ := strconv.Atoi(m[1])
		return Quality{VBR: n}, nil
	}
	if m := reKbps.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n >= minKbps && n <= maxKbps {
			return Quality{VBR: -1, Kbps: n}, nil
		}
	}
	return Quality{}, fmt.Errorf("%w: %q", ErrInvalidBitrate, s)
}

// codecArgs returns the encoder section of the ffmpeg command line.
func codecArgs(f Format, q Quality) []string {
	args := []string{"-c:a", formats[f].codec}
	switch {
	case formats[f].lossless:
		return args
	case q.VBR >= 0:
		return append(args, "-q:a", strconv.Itoa(q.VBR))
	default:
		return append(args, "-b:a", strconv.Itoa(q.Kbps)+"k")
	}
}
