package metadata

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Options tunes field normalization.
type Options struct {
	// GenreAliases maps a raw genre (matched case-insensitively) to its
	// canonical spelling. Merged over DefaultGenreAliases.
	GenreAliases map[string]string
}

// DefaultGenreAliases covers the spellings seen most often in the wild.
var DefaultGenreAliases = map[string]string{
	"hip hop":          "Hip-Hop",
	"hiphop":           "Hip-Hop",
	"hip-hop":          "Hip-Hop",
	"rap":              "Hip-Hop",
	"rnb":              "R&B",
	"r&b":              "R&B",
	"r & b":            "R&B",
	"rhythm and blues": "R&B",
	"electronica":      "Electronic",
	"electro":          "Electronic",
	"edm":              "Electronic",
	"drum & bass":      "Drum and Bass",
	"drum n bass":      "Drum and Bass",
	"dnb":              "Drum and Bass",
	"lofi":             "Lo-Fi",
	"lo fi":            "Lo-Fi",
	"alt rock":         "Alternative Rock",
	"alternative":      "Alternative Rock",
	"soundtrack":       "Soundtrack",
	"ost":              "Soundtrack",
}

var reYear = regexp.MustCompile(`[12]\d{3}`)

var yearNormalizer = Normalizer{
	Name: "year",
	Fn: func(s string) (string, error) {
		y := reYear.FindString(s)
		if y == "" {
			return "", ErrNoYear
		}
		return y, nil
	},
}

// genreNormalizer maps every comma-separated genre through the alias
// table and title-cases the ones without an alias.
func genreNormalizer(aliases map[string]string) *Normalizer {
	table := make(map[string]string, len(DefaultGenreAliases)+len(aliases))
	for k, v := range DefaultGenreAliases {
		table[foldKey(k)] = v
	}
	for k, v := range aliases {
		table[foldKey(k)] = v
	}

	return &Normalizer{
		Name: "genre",
		Fn: func(s string) (string, error) {
			parts := strings.Split(s, ",")
			out := parts[:0]
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p == "" {
					continue
				}
				if alias, ok := table[foldKey(p)]; ok {
					out = append(out, alias)
					continue
				}
				out = append(out, cases.Title(language.English).String(p))
			}
			return strings.Join(out, ", "), nil
		},
	}
}

// foldKey is the case-insensitive comparison key used for dedup and
// alias lookup. Casers are stateful, so one is built per call.
func foldKey(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
