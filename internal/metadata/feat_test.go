package metadata

import (
	"slices"
	"testing"
)

func TestExtractFeatures(t *testing.T) {
	tests := []struct {
		input    string
		primary  string
		features []string
	}{
		{"Song (feat. A & B)", "Song", []string{"A", "B"}},
		{"Song", "Song", nil},
		{"Song ft. A", "Song", []string{"A"}},
		{"Song ft A", "Song", []string{"A"}},
		{"Song FEAT. A", "Song", []string{"A"}},
		{"Song Featuring A and B", "Song", []string{"A", "B"}},
		{"Song [ft A, B & C]", "Song", []string{"A", "B", "C"}},
		{"Song feat. A/B", "Song", []string{"A", "B"}},
		{"Song feat. A; B", "Song", []string{"A", "B"}},
		{"Song (feat. A) [Live]", "Song [Live]", []string{"A"}},
		{"Song (feat. A, )", "Song", []string{"A"}},
		{"Song (Feat A", "Song", []string{"A"}},
		{"Song feat.. A", "Song", []string{"A"}},
		{"Left Behind", "Left Behind", nil},
		{"Daft Punk", "Daft Punk", nil},
		{"Defeated", "Defeated", nil},
		{"Featured", "Featured", nil},
		{"Little Feat", "Little Feat", nil},
		{"Defeat the Feat", "Defeat the Feat", nil},
		{"Six Feet Under ft", "Six Feet Under ft", nil},
		{"Little Feat.", "Little Feat.", nil},
		{"Song (feat. )", "Song (feat. )", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ExtractFeatures(tt.input)
			if got.Primary != tt.primary {
				t.Errorf("ExtractFeatures(%q).Primary = %q, want %q", tt.input, got.Primary, tt.primary)
			}
			if !slices.Equal(got.Features, tt.features) {
				t.Errorf("ExtractFeatures(%q).Features = %q, want %q", tt.input, got.Features, tt.features)
			}
		})
	}
}

func TestSplitNames(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"A", []string{"A"}},
		{"A & B", []string{"A", "B"}},
		{"A, B & C", []string{"A", "B", "C"}},
		{"A and B", []string{"A", "B"}},
		{"AC/DC", []string{"AC", "DC"}},
		{"Band&Friends", []string{"Band&Friends"}},
		{"Andy", []string{"Andy"}},
		{"", nil},
		{" ; ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := splitNames(tt.input)
			if !slices.Equal(got, tt.expected) {
				t.Errorf("splitNames(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
