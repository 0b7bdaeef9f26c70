package tags

import (
	"fmt"
	"os"
)

// Write replaces the tags of a music file with t.
// The file must already exist. This operation modifies the file in place.
func Write(path string, t *Tag) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not found: %w", err)
	}

	switch e := ext(path); e {
	case ExtMP3:
		return writeMP3Tags(path, t)
	case ExtFLAC:
		return writeFLACTags(path, t)
	case ExtOPUS, ExtOGG:
		return writeOggTags(path, t)
	case ExtM4A, ExtMP4:
		return writeM4ATags(path, t)
	default:
		return fmt.Errorf("unsupported file format: %s", e)
	}
}
