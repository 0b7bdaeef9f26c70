package importer

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// touch creates path and its parents with the given content.
func touch(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestDiscover_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := Discover(missing, []string{".flac"})

	require.ErrorIs(t, err, ErrSourceMissing)
	assert.Contains(t, err.Error(), missing)
}

func TestDiscover_NotDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "track.flac")
	touch(t, file, "x")

	_, err := Discover(file, []string{".flac"})

	assert.True(t, errors.Is(err, ErrNotDirectory))
}

func TestDiscover_CollectsRecursively(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "CD2", "01 b.flac"), "")
	touch(t, filepath.Join(dir, "CD1", "02 a.FLAC"), "")
	touch(t, filepath.Join(dir, "CD1", "01 a.flac"), "")
	touch(t, filepath.Join(dir, "cover.jpg"), "")
	touch(t, filepath.Join(dir, "scans", "back.PNG"), "")
	touch(t, filepath.Join(dir, "notes.txt"), "")
	touch(t, filepath.Join(dir, "rip.log"), "")

	album, err := Discover(dir, []string{".flac"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "CD1", "01 a.flac"),
		filepath.Join(dir, "CD1", "02 a.FLAC"),
		filepath.Join(dir, "CD2", "01 b.flac"),
	}, album.Songs)
	assert.Equal(t, []string{
		filepath.Join(dir, "cover.jpg"),
		filepath.Join(dir, "scans", "back.PNG"),
	}, album.Covers)
	assert.Equal(t, 3, album.Context().FileCount)
	assert.Empty(t, album.Ignored)
}

func TestDiscover_ReportsIgnoredAudio(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "01.flac"), "")
	touch(t, filepath.Join(dir, "bonus", "02.mp3"), "")
	touch(t, filepath.Join(dir, "01.M4A"), "")
	touch(t, filepath.Join(dir, "notes.txt"), "")

	album, err := Discover(dir, []string{".flac"})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "01.flac")}, album.Songs)
	assert.Equal(t, []string{
		filepath.Join(dir, "01.M4A"),
		filepath.Join(dir, "bonus", "02.mp3"),
	}, album.Ignored)
}

func TestDiscover_CustomExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "01.flac"), "")
	touch(t, filepath.Join(dir, "02.wav"), "")

	album, err := Discover(dir, []string{".wav"})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "02.wav")}, album.Songs)
}

func TestChooseCover(t *testing.T) {
	src := "/music/album"

	tests := []struct {
		name   string
		covers []string
		want   string
	}{
		{
			name:   "no candidates",
			covers: nil,
			want:   "",
		},
		{
			name:   "single unnamed image",
			covers: []string{"/music/album/scan01.jpg"},
			want:   "/music/album/scan01.jpg",
		},
		{
			name:   "known name beats shallower unnamed image",
			covers: []string{"/music/album/back.jpg", "/music/album/scans/front.jpg"},
			want:   "/music/album/scans/front.jpg",
		},
		{
			name:   "shallower known name wins",
			covers: []string{"/music/album/CD1/cover.jpg", "/music/album/Folder.png"},
			want:   "/music/album/Folder.png",
		},
		{
			name:   "first wins on tie",
			covers: []string{"/music/album/a.jpg", "/music/album/b.jpg"},
			want:   "/music/album/a.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChooseCover(src, tt.covers))
		})
	}
}

func TestLoadCover_FolderImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "front.jpeg")
	touch(t, path, "jpegdata")

	cover, err := LoadCover(path, "")
	require.NoError(t, err)
	require.NotNil(t, cover)
	assert.Equal(t, ".jpg", cover.Ext)
	assert.Equal(t, []byte("jpegdata"), cover.Data)
}

func TestLoadCover_NoArt(t *testing.T) {
	song := filepath.Join(t.TempDir(), "01.flac")
	touch(t, song, "not really flac")

	cover, err := LoadCover("", song)
	require.NoError(t, err)
	assert.Nil(t, cover)
}

func TestWriteCover(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out")

	path, err := WriteCover(&Cover{Data: []byte("png"), Ext: ".png"}, dest)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "cover.png"), path)

	// existing cover is kept
	_, err = WriteCover(&Cover{Data: []byte("other"), Ext: ".png"}, dest)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
}

func encodedImage(t *testing.T, w, h int, ext string) *Cover {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255}) //nolint:gosec // test pattern
		}
	}
	var buf bytes.Buffer
	if ext == ".png" {
		require.NoError(t, png.Encode(&buf, img))
	} else {
		require.NoError(t, jpeg.Encode(&buf, img, nil))
	}
	return &Cover{Data: buf.Bytes(), Ext: ext}
}

func TestShrinkCover(t *testing.T) {
	tests := []struct {
		name          string
		w, h          int
		ext           string
		maxSide       uint
		wantW, wantH  int
		wantUnchanged bool
	}{
		{name: "disabled", w: 200, h: 100, ext: ".jpg", maxSide: 0, wantUnchanged: true},
		{name: "already small", w: 40, h: 30, ext: ".jpg", maxSide: 50, wantUnchanged: true},
		{name: "landscape jpeg", w: 200, h: 100, ext: ".jpg", maxSide: 50, wantW: 50, wantH: 25},
		{name: "portrait png", w: 100, h: 200, ext: ".png", maxSide: 100, wantW: 50, wantH: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := encodedImage(t, tt.w, tt.h, tt.ext)
			out, err := ShrinkCover(in, tt.maxSide)
			require.NoError(t, err)

			if tt.wantUnchanged {
				assert.Same(t, in, out)
				return
			}
			assert.Equal(t, tt.ext, out.Ext)
			img, _, err := image.Decode(bytes.NewReader(out.Data))
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, img.Bounds().Dx())
			assert.Equal(t, tt.wantH, img.Bounds().Dy())
		})
	}
}

func TestShrinkCover_InvalidImage(t *testing.T) {
	_, err := ShrinkCover(&Cover{Data: []byte("nope"), Ext: ".jpg"}, 100)
	require.Error(t, err)
}
