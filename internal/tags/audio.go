package tags

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	goflac "github.com/go-flac/go-flac"
	"github.com/gopxl/beep/v2/flac"
)

// AudioInfo contains audio stream properties of a source file.
type AudioInfo struct {
	Duration   time.Duration
	SampleRate int
	BitDepth   int
	Channels   int
}

// ErrNotFLAC is returned by ReadAudioInfo for non-FLAC sources.
var ErrNotFLAC = errors.New("not a FLAC file")

// ReadAudioInfo reads the stream properties of a FLAC file from its
// STREAMINFO block, decoding the stream header only when the block is
// unreadable.
func ReadAudioInfo(path string) (*AudioInfo, error) {
	if ext(path) != ExtFLAC {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFLAC)
	}

	f, err := goflac.ParseFile(path)
	if err != nil {
		// go-flac chokes on prepended ID3 tags
		return readFLACWithBeep(path)
	}

	for _, meta := range f.Meta {
		if meta.Type != goflac.StreamInfo || len(meta.Data) < 18 {
			continue
		}
		return parseStreamInfo(meta.Data), nil
	}

	return readFLACWithBeep(path)
}

// parseStreamInfo decodes a STREAMINFO block body (at least 18 bytes).
func parseStreamInfo(data []byte) *AudioInfo {
	// Bytes 10-13: sample rate (20 bits), channels-1 (3 bits),
	// bits per sample-1 (5 bits), then 36 bits of total samples.
	sampleRate := int(data[10])<<12 | int(data[11])<<4 | int(data[12])>>4
	channels := int(data[12]>>1)&0x07 + 1
	bitsPerSample := (int(data[12])&0x01)<<4 | int(data[13])>>4 + 1
	totalSamples := int64(data[13]&0x0F)<<32 | int64(data[14])<<24 | int64(data[15])<<16 | int64(data[16])<<8 | int64(data[17])

	var duration time.Duration
	if sampleRate > 0 {
		duration = time.Duration(float64(totalSamples) / float64(sampleRate) * float64(time.Second))
	}

	return &AudioInfo{
		Duration:   duration,
		SampleRate: sampleRate,
		BitDepth:   bitsPerSample,
		Channels:   channels,
	}
}

// readFLACWithBeep uses beep's FLAC decoder as fallback.
func readFLACWithBeep(path string) (*AudioInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := skipID3v2(f); err != nil {
		return nil, err
	}

	streamer, format, err := flac.Decode(f)
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	return &AudioInfo{
		Duration:   format.SampleRate.D(streamer.Len()),
		SampleRate: int(format.SampleRate),
		BitDepth:   format.Precision * 8,
		Channels:   format.NumChannels,
	}, nil
}

// skipID3v2 skips an ID3v2 tag if present at the beginning of the file.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return err
	}
	if n < 10 || string(header[0:3]) != id3Magic {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// ID3v2 size is stored as a syncsafe integer in bytes 6-9
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
