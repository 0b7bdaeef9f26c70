package importer

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nfnt/resize"

	"github.com/llehouerou/cheetah/internal/tags"
)

const coverJPEGQuality = 90

// Common cover art filenames (case-insensitive)
var coverArtNames = []string{
	"cover",
	"folder",
	"front",
	"album",
	"albumart",
	"artwork",
}

// Supported image extensions
var imageExtensions = []string{".jpg", ".jpeg", ".png"}

// ChooseCover picks the album cover among candidate images. A well-known
// name wins over depth, and a shallower file wins over a deeper one.
// Returns empty string if there are no candidates.
func ChooseCover(source string, covers []string) string {
	best := ""
	bestRank := 0
	for _, c := range covers {
		rank := coverRank(source, c)
		if best == "" || rank < bestRank {
			best, bestRank = c, rank
		}
	}
	return best
}

func coverRank(source, path string) int {
	rank := 0
	if rel, err := filepath.Rel(source, path); err == nil {
		rank = strings.Count(rel, string(filepath.Separator))
	}

	ext := filepath.Ext(path)
	baseName := strings.ToLower(strings.TrimSuffix(filepath.Base(path), ext))
	if !slices.Contains(coverArtNames, baseName) {
		rank += 100
	}
	return rank
}

// Cover is cover art ready to copy and embed.
type Cover struct {
	Data []byte
	Ext  string // ".jpg" or ".png"
}

// LoadCover reads the folder image at path, or the art embedded in song when
// path is empty. Returns nil without error when neither has art.
func LoadCover(path, song string) (*Cover, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".jpeg" {
			ext = ".jpg"
		}
		return &Cover{Data: data, Ext: ext}, nil
	}

	data, mime, err := tags.ExtractEmbeddedArt(song)
	if err != nil || len(data) == 0 {
		return nil, nil //nolint:nilerr // a song without art is not an error
	}
	ext := ".jpg"
	if mime == tags.MimePNG {
		ext = ".png"
	}
	return &Cover{Data: data, Ext: ext}, nil
}

// WriteCover stores c as "cover.<ext>" in destDir.
// An existing cover is left untouched.
func WriteCover(c *Cover, destDir string) (string, error) {
	destPath := filepath.Join(destDir, "cover"+c.Ext)

	if _, err := os.Stat(destPath); err == nil {
		return destPath, nil
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(destPath, c.Data, 0o644); err != nil {
		return "", err
	}
	return destPath, nil
}

// ShrinkCover scales c down so that neither side exceeds maxSide pixels,
// keeping its aspect ratio and format. Covers already small enough, and a
// zero maxSide, return c unchanged.
func ShrinkCover(c *Cover, maxSide uint) (*Cover, error) {
	if c == nil || maxSide == 0 {
		return c, nil
	}
	img, _, err := image.Decode(bytes.NewReader(c.Data))
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	if b.Dx() <= int(maxSide) && b.Dy() <= int(maxSide) { //nolint:gosec // cover sizes are small
		return c, nil
	}

	resized := resize.Thumbnail(maxSide, maxSide, img, resize.Lanczos3)

	var buf bytes.Buffer
	if c.Ext == ".png" {
		err = png.Encode(&buf, resized)
	} else {
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: coverJPEGQuality})
	}
	if err != nil {
		return nil, err
	}
	return &Cover{Data: buf.Bytes(), Ext: c.Ext}, nil
}
