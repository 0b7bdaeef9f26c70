package metadata

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// AlbumContext holds the album-level facts shared by every track.
type AlbumContext struct {
	FileCount int // audio files found in the album
}

// Record is the canonical tag record of one track. Zero numbers mean
// absent. Disc fields are only meaningful when HasDisc is set.
type Record struct {
	Album       string
	Artist      string
	AlbumArtist string
	Title       string
	Genre       string
	Year        string
	Date        string
	Track       string // TrackNumber zero-padded to two digits
	TrackNumber int
	TotalTracks int
	DiscNumber  int
	TotalDiscs  int
	HasDisc     bool

	Features []string
}

// Fields returns the record as canonical key/value pairs. discnumber and
// totaldiscs are only present for multi-disc albums.
func (r Record) Fields() map[string]string {
	f := map[string]string{
		"album":        r.Album,
		"artist":       r.Artist,
		"album_artist": r.AlbumArtist,
		"title":        r.Title,
		"genre":        r.Genre,
		"year":         r.Year,
		"date":         r.Date,
		"track":        r.Track,
		"tracknumber":  itoa(r.TrackNumber),
		"totaltracks":  itoa(r.TotalTracks),
	}
	if r.HasDisc {
		f["discnumber"] = itoa(r.DiscNumber)
		f["totaldiscs"] = itoa(r.TotalDiscs)
	}
	return f
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// Result is a built record with everything noticed along the way.
type Result struct {
	Record Record
	Issues []Issue
	// Unused lists raw keys no field consumed, sorted.
	Unused []string
}

// Build resolves one track. See Builder.
func Build(raw RawTags, path PathMetadata, album AlbumContext, opts Options) Result {
	return NewBuilder(raw, path, album, opts).Build()
}

// Builder fills a Record in a fixed order. Each step documents the
// fields it needs from earlier steps. A Builder is single use and not
// safe for concurrent use; build tracks in parallel with one Builder
// each.
type Builder struct {
	raw   RawTags
	path  PathMetadata
	album AlbumContext
	opts  Options

	rec      Record
	issues   []Issue
	consumed map[string]bool
}

// NewBuilder returns a Builder for one track.
func NewBuilder(raw RawTags, path PathMetadata, album AlbumContext, opts Options) *Builder {
	return &Builder{
		raw:      raw,
		path:     path,
		album:    album,
		opts:     opts,
		consumed: make(map[string]bool),
	}
}

// Build runs every step and returns the frozen record.
func (b *Builder) Build() Result {
	b.resolveText()
	b.resolveArtists()
	b.resolveNumbers()
	b.reconcileTotals()

	var unused []string
	for _, key := range slices.Sorted(maps.Keys(b.raw)) {
		if !b.consumed[key] {
			unused = append(unused, key)
		}
	}
	return Result{Record: b.rec, Issues: b.issues, Unused: unused}
}

func (b *Builder) resolve(f Field) string {
	r := Resolve(b.raw, f, b.opts)
	if r.Found() {
		b.consumed[r.Key] = true
	}
	if r.Issue != nil {
		b.issues = append(b.issues, *r.Issue)
	}
	return r.Value
}

func (b *Builder) report(kind IssueKind, f Field, value string, err error) {
	b.issues = append(b.issues, Issue{Kind: kind, Field: f, Value: value, Err: err})
}

// resolveText fills the text fields. Empty artist, album and year fall
// back to the folder name.
func (b *Builder) resolveText() {
	b.rec.Album = orDefault(b.resolve(FieldAlbum), b.path.Album)
	b.rec.Artist = orDefault(b.resolve(FieldArtist), b.path.Artist)
	b.rec.AlbumArtist = orDefault(b.resolve(FieldAlbumArtist), b.path.Artist)
	b.rec.Title = b.resolve(FieldTitle)
	b.rec.Genre = b.resolve(FieldGenre)
	b.rec.Year = orDefault(b.resolve(FieldYear), b.path.Year)
	b.rec.Date = b.resolve(FieldDate)
}

// resolveArtists needs Artist and Title. It rewrites Artist, Title and
// AlbumArtist; featured artists never reach the album artist.
func (b *Builder) resolveArtists() {
	credit, err := ReconcileArtists(b.rec.Artist, b.rec.Title)
	if err != nil {
		b.report(UnresolvableArtist, FieldArtist, b.rec.Artist, err)
	}
	b.rec.Artist = credit.Artist
	b.rec.AlbumArtist = credit.Artist
	b.rec.Title = credit.Title
	b.rec.Features = credit.Features
}

// resolveNumbers reads the total fields before the number fields so a
// total embedded as "N/M" never overrides its own tag.
func (b *Builder) resolveNumbers() {
	b.rec.TotalDiscs = b.splitField(FieldTotalDiscs, 0, nil)
	b.rec.TotalTracks = b.splitField(FieldTotalTracks, 0, nil)
	b.rec.DiscNumber = b.splitField(FieldDiscNumber, b.rec.TotalDiscs, &b.rec.TotalDiscs)
	b.rec.TrackNumber = b.splitField(FieldTrackNumber, b.rec.TotalTracks, &b.rec.TotalTracks)
	b.rec.Track = fmt.Sprintf("%02d", b.rec.TrackNumber)
}

// splitField resolves a numeric field. When total is non-nil it receives
// the total embedded in an "N/M" value.
func (b *Builder) splitField(f Field, known int, total *int) int {
	raw := b.resolve(f)
	if raw == "" {
		return 0
	}
	n, t, err := SplitNumber(raw, known)
	if err != nil {
		b.report(MalformedNumericField, f, raw, err)
		return 0
	}
	if total != nil {
		*total = t
	}
	return n
}

// reconcileTotals needs every numeric field.
func (b *Builder) reconcileTotals() {
	d := ReconcileTotals(b.rec.TotalDiscs, b.rec.TotalTracks, b.album.FileCount)
	if !d.SingleDisc {
		b.rec.HasDisc = true
		return
	}

	b.rec.DiscNumber = 0
	b.rec.TotalDiscs = 0
	switch {
	case d.Overridden:
		b.report(TotalsOverridden, FieldTotalTracks, strconv.Itoa(d.TotalTracks), nil)
	case d.Mismatch:
		b.report(TotalsMismatch, FieldTotalTracks, strconv.Itoa(b.rec.TotalTracks),
			fmt.Errorf("tagged %d tracks, found %d files", b.rec.TotalTracks, b.album.FileCount))
	}
	b.rec.TotalTracks = d.TotalTracks
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
