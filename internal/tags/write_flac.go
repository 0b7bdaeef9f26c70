package tags

import (
	"fmt"
	"strconv"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

// writeFLACTags replaces the Vorbis comments of a FLAC file and, when
// cover art is given, its pictures.
func writeFLACTags(path string, t *Tag) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse file: %w", err)
	}

	cmts := flacvorbis.New()
	for _, c := range vorbisComments(t) {
		if err := cmts.Add(c[0], c[1]); err != nil {
			return fmt.Errorf("add %s: %w", c[0], err)
		}
	}
	cmtBlock := cmts.Marshal()

	// Drop every existing comment block (and pictures, when replacing
	// art) so no duplicate tags survive.
	replaceArt := len(t.CoverArt) > 0
	meta := make([]*flac.MetaDataBlock, 0, len(f.Meta)+2)
	for _, m := range f.Meta {
		if m.Type == flac.VorbisComment || (replaceArt && m.Type == flac.Picture) {
			continue
		}
		meta = append(meta, m)
	}
	meta = append(meta, &cmtBlock)

	if replaceArt {
		pic, err := flacpicture.NewFromImageData(
			flacpicture.PictureTypeFrontCover,
			"Front Cover",
			t.CoverArt,
			detectMimeType(t.CoverArt),
		)
		if err != nil {
			return fmt.Errorf("create picture: %w", err)
		}
		picBlock := pic.Marshal()
		meta = append(meta, &picBlock)
	}
	f.Meta = meta

	if err := f.Save(path); err != nil {
		return fmt.Errorf("save file: %w", err)
	}
	return nil
}

// vorbisComments lists the non-empty Vorbis comments for t, in writing
// order. Shared by the FLAC and Ogg writers.
func vorbisComments(t *Tag) [][2]string {
	var out [][2]string
	add := func(key, value string) {
		if value != "" {
			out = append(out, [2]string{key, value})
		}
	}
	addInt := func(key string, value int) {
		if value > 0 {
			out = append(out, [2]string{key, strconv.Itoa(value)})
		}
	}

	add("ARTIST", t.Artist)
	add("ALBUMARTIST", t.AlbumArtist)
	add("ALBUM", t.Album)
	add("TITLE", t.Title)
	add("GENRE", t.Genre)
	add("DATE", t.date())

	addInt("TRACKNUMBER", t.TrackNumber)
	addInt("TOTALTRACKS", t.TotalTracks)
	addInt("DISCNUMBER", t.DiscNumber)
	addInt("TOTALDISCS", t.TotalDiscs)
	return out
}
