// Package metadata turns the raw, inconsistent tags of a lossless album
// into one canonical tag record per track.
//
// The package is pure: it reads in-memory tag maps and path strings and
// never touches the filesystem. Every recoverable problem is reported as
// an Issue alongside the result instead of aborting the track.
package metadata

// RawTags maps a tag key, as emitted by the file format, to its values.
type RawTags map[string][]string

// Field is a canonical tag field.
type Field int

// Canonical fields, in resolution order.
const (
	FieldAlbum Field = iota
	FieldArtist
	FieldAlbumArtist
	FieldTitle
	FieldGenre
	FieldYear
	FieldDate
	FieldTotalDiscs
	FieldTotalTracks
	FieldDiscNumber
	FieldTrackNumber
)

var fieldNames = [...]string{
	FieldAlbum:       "album",
	FieldArtist:      "artist",
	FieldAlbumArtist: "album_artist",
	FieldTitle:       "title",
	FieldGenre:       "genre",
	FieldYear:        "year",
	FieldDate:        "date",
	FieldTotalDiscs:  "totaldiscs",
	FieldTotalTracks: "totaltracks",
	FieldDiscNumber:  "discnumber",
	FieldTrackNumber: "tracknumber",
}

// String returns the canonical record key of the field.
func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

// Normalizer rewrites a resolved value. Name identifies it in issues.
type Normalizer struct {
	Name string
	Fn   func(string) (string, error)
}

// fieldSpec lists the raw keys tried for a field, most specific first.
type fieldSpec struct {
	keys []string
	// normalizer returns the normalizer for the given options, or nil.
	normalizer func(Options) *Normalizer
}

// Vorbis comments come out of taglib upper-cased; lower-case variants
// cover readers that keep the on-disk spelling.
var fieldSpecs = map[Field]fieldSpec{
	FieldAlbum:  {keys: []string{"ALBUM", "album"}},
	FieldArtist: {keys: []string{"ARTIST", "artist"}},
	// album artist falls back to the track artist
	FieldAlbumArtist: {keys: []string{
		"ALBUMARTIST", "ALBUM ARTIST", "ALBUM_ARTIST",
		"albumartist", "album artist", "album_artist",
		"ARTIST", "artist",
	}},
	FieldTitle: {keys: []string{"TITLE", "title"}},
	FieldGenre: {
		keys:       []string{"GENRE", "genre"},
		normalizer: func(o Options) *Normalizer { return genreNormalizer(o.GenreAliases) },
	},
	FieldYear: {
		keys:       []string{"DATE", "YEAR", "ORIGINALDATE", "date", "year"},
		normalizer: func(Options) *Normalizer { return &yearNormalizer },
	},
	FieldDate:        {keys: []string{"DATE", "date"}},
	FieldTotalDiscs:  {keys: []string{"TOTALDISCS", "DISCTOTAL", "totaldiscs", "disctotal"}},
	FieldTotalTracks: {keys: []string{"TOTALTRACKS", "TRACKTOTAL", "totaltracks", "tracktotal"}},
	FieldDiscNumber:  {keys: []string{"DISCNUMBER", "discnumber"}},
	FieldTrackNumber: {keys: []string{"TRACKNUMBER", "tracknumber"}},
}

// Keys returns the candidate raw keys of a field in lookup order.
func (f Field) Keys() []string {
	return append([]string(nil), fieldSpecs[f].keys...)
}
