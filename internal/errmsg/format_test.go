//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpTrackEncode,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpTrackEncode,
			err:      errors.New("exit status 1"),
			expected: "Failed to encode track: exit status 1",
		},
		{
			name:     "source scan operation",
			op:       OpSourceScan,
			err:      errors.New("permission denied"),
			expected: "Failed to scan source folder: permission denied",
		},
		{
			name:     "config operation",
			op:       OpConfigLoad,
			err:      errors.New("invalid toml"),
			expected: "Failed to load configuration: invalid toml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpTrackWrite,
			context:  "01 Song.mp3",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpTrackWrite,
			context:  "01 Song.mp3",
			err:      errors.New("permission denied"),
			expected: "Failed to write track tags '01 Song.mp3': permission denied",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpTrackWrite,
			context:  "",
			err:      errors.New("permission denied"),
			expected: "Failed to write track tags: permission denied",
		},
		{
			name:     "tags with filename context",
			op:       OpTrackTags,
			context:  "album.flac",
			err:      errors.New("unsupported format"),
			expected: "Failed to read file tags 'album.flac': unsupported format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpConfigLoad, OpEncoderLookup, OpHistoryOpen,
		OpSourceScan, OpOutputDir,
		OpTrackTags, OpTrackEncode, OpTrackWrite,
		OpCoverCopy, OpCoverRead,
		OpHistoryRecord,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if Wrap(OpTrackEncode, nil) != nil {
		t.Error("Wrap(nil) should be nil")
	}

	base := errors.New("exit status 1")
	err := Wrap(OpTrackEncode, base)

	if err.Error() != "Failed to encode track: exit status 1" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("wrapped error should match the cause")
	}

	var opErr *Error
	if !errors.As(err, &opErr) || opErr.Op != OpTrackEncode {
		t.Errorf("errors.As = %v, want Op %q", opErr, OpTrackEncode)
	}
}
