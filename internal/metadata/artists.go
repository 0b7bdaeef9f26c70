package metadata

import "strings"

// ArtistCredit is the reconciled artist attribution of a track.
type ArtistCredit struct {
	Artist   string   // main artist, also used as album artist
	Title    string   // title with a rebuilt "(feat. ...)" clause
	Features []string // featured artists, first-seen order
}

// ReconcileArtists merges the artists named in the artist and title
// fields. Artist-side names come first; duplicates are dropped
// case-insensitively, keeping the first spelling. The first name is the
// main artist and the rest are featured in the title.
//
// When no name survives, the credit carries the bare title and
// ErrNoArtist is returned.
func ReconcileArtists(artist, title string) (ArtistCredit, error) {
	titleSplit := ExtractFeatures(title)
	artistSplit := ExtractFeatures(artist)

	// artist tags may list several artists without any feat. notation
	names := splitNames(artistSplit.Primary)
	for _, f := range artistSplit.Features {
		names = append(names, splitNames(f)...)
	}
	all := dedupeFold(append(names, titleSplit.Features...))

	if len(all) == 0 {
		return ArtistCredit{Title: titleSplit.Primary}, ErrNoArtist
	}

	credit := ArtistCredit{
		Artist: all[0],
		Title:  titleSplit.Primary,
	}
	if len(all) > 1 {
		credit.Features = all[1:]
		credit.Title = titleSplit.Primary + " (feat. " + SmartJoin(credit.Features) + ")"
	}
	return credit, nil
}

// SmartJoin joins items with ", " except the last pair, which is joined
// with " & ".
//
//	["A"]           -> "A"
//	["A", "B"]      -> "A & B"
//	["A", "B", "C"] -> "A, B & C"
func SmartJoin(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	last := len(items) - 1
	return strings.Join(items[:last], ", ") + " & " + items[last]
}

func dedupeFold(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		key := foldKey(n)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}
