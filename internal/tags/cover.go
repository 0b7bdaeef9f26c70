package tags

import (
	"net/http"
	"os"

	"github.com/dhowden/tag"
)

const (
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
)

// ExtractEmbeddedArt reads the embedded cover art of an audio file.
// It returns nil data when the file carries no picture.
func ExtractEmbeddedArt(path string) (data []byte, mimeType string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, "", err
	}

	pic := m.Picture()
	if pic == nil {
		return nil, "", nil
	}

	mimeType = pic.MIMEType
	if mimeType == "" {
		mimeType = detectMimeType(pic.Data)
	}
	return pic.Data, mimeType, nil
}

// detectMimeType detects the MIME type of image data.
func detectMimeType(data []byte) string {
	if len(data) == 0 {
		return MimeJPEG
	}
	// http.DetectContentType may return more specific types, normalize to common ones
	switch http.DetectContentType(data) {
	case MimePNG:
		return MimePNG
	default:
		return MimeJPEG
	}
}
