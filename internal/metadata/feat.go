package metadata

import (
	"regexp"
	"strings"
)

// featToken is the canonical featuring marker every spelling is rewritten to.
const featToken = " feat. "

var (
	// reFeatSpelling matches ft/feat/featuring with optional periods,
	// optionally opened by a bracket, and followed by a period or
	// whitespace. The bracket is kept in group 1. A bare spelling ending the
	// string is part of a name ("Little Feat"), not a clause.
	reFeatSpelling = regexp.MustCompile(`(?i)\s*([(\[]?)\s*\b(?:featuring|feat|ft)\b(?:\.+\s*|\s+)`)
	// reWrappedFeat matches a bracket pair wrapping the canonical token
	// and its payload.
	reWrappedFeat = regexp.MustCompile(`[(\[](` + regexp.QuoteMeta(featToken) + `[^)\]]*)[)\]]`)

	nameSeparators = strings.NewReplacer(
		featToken, ";",
		" & ", ";",
		"/", ";",
		",", ";",
		" and ", ";",
	)
)

// FeatureSplit is a title or artist string with its featuring clause
// split off.
type FeatureSplit struct {
	Primary  string
	Features []string
}

// ExtractFeatures splits "featuring" notation out of text.
//
//	"Song (feat. A & B)" -> {"Song", ["A", "B"]}
//	"Song"               -> {"Song", []}
//
// A bracketed clause followed by more text, as in "Song (feat. A) [Live]",
// keeps the trailing text in Primary: {"Song [Live]", ["A"]}.
func ExtractFeatures(text string) FeatureSplit {
	s := reFeatSpelling.ReplaceAllString(text, "${1}"+featToken)

	if loc := reWrappedFeat.FindStringSubmatchIndex(s); loc != nil {
		clause := s[loc[2]:loc[3]]
		s = s[:loc[0]] + s[loc[1]:] + clause
	}

	primary, payload, found := strings.Cut(s, featToken)
	if !found {
		return FeatureSplit{Primary: text}
	}
	features := splitNames(payload)
	if len(features) == 0 {
		return FeatureSplit{Primary: text}
	}
	// an unclosed bracket leaves its opener behind
	primary = strings.TrimSpace(strings.TrimRight(primary, "(["))

	return FeatureSplit{
		Primary:  primary,
		Features: features,
	}
}

// splitNames splits a list of artist names on the supported separators.
// Names are trimmed and empty segments dropped.
func splitNames(s string) []string {
	var names []string
	for _, name := range strings.Split(nameSeparators.Replace(s), ";") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}
