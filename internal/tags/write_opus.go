package tags

import (
	"fmt"

	"go.senan.xyz/taglib"
)

// writeOggTags writes Vorbis comments to an Opus or Ogg Vorbis file using
// TagLib.
func writeOggTags(path string, t *Tag) error {
	tags := make(map[string][]string)
	for _, c := range vorbisComments(t) {
		tags[c[0]] = []string{c[1]}
	}

	// Clear removes any existing tags not in our map
	if err := taglib.WriteTags(path, tags, taglib.Clear); err != nil {
		return fmt.Errorf("write tags: %w", err)
	}

	if len(t.CoverArt) > 0 {
		if err := taglib.WriteImage(path, t.CoverArt); err != nil {
			return fmt.Errorf("write cover art: %w", err)
		}
	}
	return nil
}
