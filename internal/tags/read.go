package tags

import (
	"fmt"
	"os"

	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"
)

// ReadRaw returns every tag of a file as key -> values, keys as the
// reader emits them. TagLib is tried first and upper-cases Vorbis keys;
// when it fails, dhowden/tag is used and keys keep their on-disk case.
func ReadRaw(path string) (map[string][]string, error) {
	raw, err := taglib.ReadTags(path)
	if err == nil {
		return raw, nil
	}

	fallback, fbErr := readRawWithTag(path)
	if fbErr != nil {
		return nil, fmt.Errorf("read tags: %w", err)
	}
	return fallback, nil
}

// readRawWithTag reads text tags with dhowden/tag. Binary frames such as
// pictures are skipped.
func readRawWithTag(path string) (map[string][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}

	raw := make(map[string][]string)
	for key, value := range m.Raw() {
		switch v := value.(type) {
		case string:
			raw[key] = append(raw[key], v)
		case []string:
			raw[key] = append(raw[key], v...)
		case *tag.Comm:
			raw[key] = append(raw[key], v.Text)
		case int:
			raw[key] = append(raw[key], fmt.Sprint(v))
		}
	}
	return raw, nil
}
