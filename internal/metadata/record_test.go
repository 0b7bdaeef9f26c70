package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueKinds(issues []Issue) []IssueKind {
	var kinds []IssueKind
	for _, i := range issues {
		kinds = append(kinds, i.Kind)
	}
	return kinds
}

func TestBuild_SingleDisc(t *testing.T) {
	raw := RawTags{
		"ARTIST":      {"Artist A"},
		"TITLE":       {"Track (feat. Artist B)"},
		"ALBUM":       {"Album"},
		"DATE":        {"2020-01-02"},
		"GENRE":       {"hip hop"},
		"TRACKNUMBER": {"3/12"},
		"DISCNUMBER":  {"1/1"},
		"COMMENT":     {"ripped"},
	}

	res := Build(raw, PathMetadata{}, AlbumContext{FileCount: 12}, Options{})

	assert.Empty(t, res.Issues)
	assert.Equal(t, []string{"COMMENT"}, res.Unused)
	assert.Equal(t, Record{
		Album:       "Album",
		Artist:      "Artist A",
		AlbumArtist: "Artist A",
		Title:       "Track (feat. Artist B)",
		Genre:       "Hip-Hop",
		Year:        "2020",
		Date:        "2020-01-02",
		Track:       "03",
		TrackNumber: 3,
		TotalTracks: 12,
		Features:    []string{"Artist B"},
	}, res.Record)
}

func TestBuild_MultiDisc(t *testing.T) {
	raw := RawTags{
		"ARTIST":      {"A"},
		"TITLE":       {"Song"},
		"DISCNUMBER":  {"2/2"},
		"TRACKNUMBER": {"5"},
		"TOTALTRACKS": {"9"},
	}

	res := Build(raw, PathMetadata{}, AlbumContext{FileCount: 20}, Options{})

	assert.Empty(t, res.Issues)
	rec := res.Record
	assert.True(t, rec.HasDisc)
	assert.Equal(t, 2, rec.DiscNumber)
	assert.Equal(t, 2, rec.TotalDiscs)
	assert.Equal(t, 9, rec.TotalTracks)

	fields := rec.Fields()
	assert.Equal(t, "2", fields["discnumber"])
	assert.Equal(t, "2", fields["totaldiscs"])
}

func TestBuild_TotalFieldWinsOverEmbeddedTotal(t *testing.T) {
	raw := RawTags{
		"ARTIST":      {"A"},
		"TOTALTRACKS": {"10"},
		"TRACKNUMBER": {"3/12"},
	}

	res := Build(raw, PathMetadata{}, AlbumContext{FileCount: 10}, Options{})

	assert.Empty(t, res.Issues)
	assert.Equal(t, 3, res.Record.TrackNumber)
	assert.Equal(t, 10, res.Record.TotalTracks)
}

func TestBuild_TotalsFromFileCount(t *testing.T) {
	raw := RawTags{"ARTIST": {"A"}, "TRACKNUMBER": {"4"}}

	res := Build(raw, PathMetadata{}, AlbumContext{FileCount: 11}, Options{})

	assert.Equal(t, 11, res.Record.TotalTracks)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, TotalsOverridden, res.Issues[0].Kind)
	assert.False(t, res.Issues[0].Kind.Warning())
}

func TestBuild_TotalsMismatchKeepsTag(t *testing.T) {
	raw := RawTags{"ARTIST": {"A"}, "TRACKNUMBER": {"4"}, "TOTALTRACKS": {"12"}}

	res := Build(raw, PathMetadata{}, AlbumContext{FileCount: 10}, Options{})

	assert.Equal(t, 12, res.Record.TotalTracks)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, TotalsMismatch, res.Issues[0].Kind)
	assert.Contains(t, res.Issues[0].Error(), "tagged 12 tracks, found 10 files")
}

func TestBuild_DiscFieldsDroppedForSingleDisc(t *testing.T) {
	raw := RawTags{"ARTIST": {"A"}, "DISCNUMBER": {"1"}, "TRACKNUMBER": {"1/3"}}

	res := Build(raw, PathMetadata{}, AlbumContext{FileCount: 3}, Options{})

	rec := res.Record
	assert.False(t, rec.HasDisc)
	assert.Zero(t, rec.DiscNumber)
	assert.Zero(t, rec.TotalDiscs)
	assert.NotContains(t, rec.Fields(), "discnumber")
	assert.NotContains(t, rec.Fields(), "totaldiscs")
}

func TestBuild_MalformedNumber(t *testing.T) {
	raw := RawTags{"ARTIST": {"A"}, "TRACKNUMBER": {"A1"}, "TOTALTRACKS": {"2"}}

	res := Build(raw, PathMetadata{}, AlbumContext{FileCount: 2}, Options{})

	assert.Zero(t, res.Record.TrackNumber)
	assert.Equal(t, "00", res.Record.Track)
	assert.Equal(t, []IssueKind{MalformedNumericField}, issueKinds(res.Issues))
	assert.Equal(t, FieldTrackNumber, res.Issues[0].Field)
	assert.Equal(t, "A1", res.Issues[0].Value)
}

func TestBuild_PathFallback(t *testing.T) {
	raw := RawTags{"TITLE": {"Song"}}
	path := PathMetadata{Artist: "P", Album: "Q", Year: "1999"}

	res := Build(raw, path, AlbumContext{}, Options{})

	rec := res.Record
	assert.Equal(t, "P", rec.Artist)
	assert.Equal(t, "P", rec.AlbumArtist)
	assert.Equal(t, "Q", rec.Album)
	assert.Equal(t, "1999", rec.Year)
}

func TestBuild_FeaturesNeverReachAlbumArtist(t *testing.T) {
	raw := RawTags{
		"ARTIST":      {"A feat. B"},
		"ALBUMARTIST": {"A feat. B"},
		"TITLE":       {"Song"},
	}

	res := Build(raw, PathMetadata{}, AlbumContext{}, Options{})

	assert.Equal(t, "A", res.Record.AlbumArtist)
	assert.Equal(t, "Song (feat. B)", res.Record.Title)
}

func TestBuild_UnresolvableArtist(t *testing.T) {
	res := Build(RawTags{}, PathMetadata{}, AlbumContext{}, Options{})

	assert.Equal(t, []IssueKind{UnresolvableArtist}, issueKinds(res.Issues))
	assert.ErrorIs(t, res.Issues[0], ErrNoArtist)
	assert.Empty(t, res.Record.Artist)
}

func TestBuild_YearNormalizationFailure(t *testing.T) {
	raw := RawTags{"ARTIST": {"A"}, "DATE": {"n/a"}}

	res := Build(raw, PathMetadata{Year: "2005"}, AlbumContext{}, Options{})

	assert.Equal(t, []IssueKind{NormalizationFailure}, issueKinds(res.Issues))
	assert.Equal(t, "2005", res.Record.Year)
	assert.Equal(t, "n/a", res.Record.Date)
}

func TestRecordFields_RequiredKeys(t *testing.T) {
	fields := Record{}.Fields()
	for _, key := range []string{
		"album", "artist", "album_artist", "title", "genre", "year",
		"date", "track", "tracknumber", "totaltracks",
	} {
		assert.Contains(t, fields, key)
	}
	assert.Len(t, fields, 10)
}
