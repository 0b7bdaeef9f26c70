// Command dumptags prints the raw tags of audio files next to the record the
// converter would build from them.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/cheetah/internal/metadata"
	"github.com/llehouerou/cheetah/internal/tags"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: dumptags <file>...")
		os.Exit(2)
	}

	failed := false
	for _, path := range os.Args[1:] {
		if err := dump(path); err != nil {
			log.Printf("%s: %v", path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func dump(path string) error {
	raw, err := tags.ReadRaw(path)
	if err != nil {
		return err
	}

	fmt.Printf("== %s\n", path)
	if info, err := tags.ReadAudioInfo(path); err == nil {
		st, _ := os.Stat(path)
		size := ""
		if st != nil {
			size = ", " + humanize.Bytes(uint64(st.Size()))
		}
		fmt.Printf("   %s, %d Hz, %d bit, %d ch%s\n",
			info.Duration.Round(time.Millisecond), info.SampleRate, info.BitDepth, info.Channels, size)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Println("-- raw")
	for _, k := range keys {
		fmt.Printf("   %-20s %s\n", k, strings.Join(raw[k], " | "))
	}

	fmt.Println("-- sources")
	for _, line := range fieldSources(raw) {
		fmt.Println("   " + line)
	}

	res := metadata.Build(raw, metadata.ParsePath(filepath.Dir(path)), metadata.AlbumContext{}, metadata.Options{})
	fields := res.Record.Fields()
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)

	fmt.Println("-- normalized")
	for _, k := range names {
		fmt.Printf("   %-20s %s\n", k, fields[k])
	}
	for _, issue := range res.Issues {
		fmt.Printf("   ! %v\n", issue)
	}
	if len(res.Unused) > 0 {
		fmt.Printf("   unused: %s\n", strings.Join(res.Unused, ", "))
	}
	return nil
}

// fieldSources reports, for every canonical field, the raw key it is read
// from or the keys that were tried.
func fieldSources(raw metadata.RawTags) []string {
	var lines []string
	for f := metadata.FieldAlbum; f <= metadata.FieldTrackNumber; f++ {
		keys := f.Keys()
		from := ""
		for _, k := range keys {
			if _, ok := raw[k]; ok {
				from = k
				break
			}
		}
		if from == "" {
			lines = append(lines, fmt.Sprintf("%-12s <- none of %s", f, strings.Join(keys, ", ")))
			continue
		}
		lines = append(lines, fmt.Sprintf("%-12s <- %s", f, from))
	}
	return lines
}
