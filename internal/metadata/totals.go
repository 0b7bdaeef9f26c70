package metadata

// TotalsDecision is the outcome of checking disc and track totals
// against the album's file count.
type TotalsDecision struct {
	// SingleDisc drops disc number and total from the record.
	SingleDisc  bool
	TotalTracks int
	// Overridden is set when TotalTracks was filled from the file count.
	Overridden bool
	// Mismatch is set when a tagged TotalTracks disagrees with the file
	// count. The tagged value is kept.
	Mismatch bool
}

// ReconcileTotals decides what happens to disc and track totals. Zero
// means absent.
//
// An album with no disc total, or a total of 1, is single-disc: its
// track total is compared with fileCount. Multi-disc albums are left as
// tagged since fileCount spans every disc.
func ReconcileTotals(totalDiscs, totalTracks, fileCount int) TotalsDecision {
	d := TotalsDecision{TotalTracks: totalTracks}
	if totalDiscs > 1 {
		return d
	}

	d.SingleDisc = true
	switch {
	case totalTracks == fileCount:
	case totalTracks == 0:
		d.TotalTracks = fileCount
		d.Overridden = true
	default:
		d.Mismatch = true
	}
	return d
}
