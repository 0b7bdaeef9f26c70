package importer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/llehouerou/cheetah/internal/metadata"
	"github.com/llehouerou/cheetah/internal/tags"
)

var (
	ErrSourceMissing = errors.New("path does not exist")
	ErrNotDirectory  = errors.New("not a directory")
	ErrNoTracks      = errors.New("no source tracks found")
)

// Album is a source folder and the files found under it.
type Album struct {
	Source string
	Songs  []string // sorted
	Covers []string // sorted
	// Ignored lists audio files left out because their extension is not a
	// source extension, sorted.
	Ignored []string
}

// Context returns the album facts the metadata builder needs.
func (a *Album) Context() metadata.AlbumContext {
	return metadata.AlbumContext{FileCount: len(a.Songs)}
}

// Discover walks source recursively and collects songs whose extension is
// in exts, cover images, and other audio files it will not convert.
func Discover(source string, exts []string) (*Album, error) {
	info, err := os.Stat(source)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSourceMissing, source)
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, source)
	}

	album := &Album{Source: source}
	err = filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch {
		case tags.HasExt(path, exts):
			album.Songs = append(album.Songs, path)
		case isImage(path):
			album.Covers = append(album.Covers, path)
		case tags.IsMusicFile(path):
			album.Ignored = append(album.Ignored, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(album.Songs)
	slices.Sort(album.Covers)
	slices.Sort(album.Ignored)
	return album, nil
}

func isImage(path string) bool {
	return slices.Contains(imageExtensions, strings.ToLower(filepath.Ext(path)))
}
