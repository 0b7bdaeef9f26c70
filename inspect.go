package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llehouerou/cheetah/internal/errmsg"
	"github.com/llehouerou/cheetah/internal/importer"
	"github.com/llehouerou/cheetah/internal/metadata"
)

type inspectTrack struct {
	Source string            `json:"source"`
	Output string            `json:"output"`
	Tags   map[string]string `json:"tags"`
	Issues []string          `json:"issues,omitempty"`
	Unused []string          `json:"unused,omitempty"`
}

type inspectResult struct {
	Source    string         `json:"source"`
	OutputDir string         `json:"output_dir"`
	Exists    bool           `json:"output_exists"`
	Cover     string         `json:"cover,omitempty"`
	Tracks    []inspectTrack `json:"tracks"`
}

func newInspectCommand(flags *cliFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <source>",
		Short: "Show the normalized tags and output paths without converting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			log, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}
			opts, err := importerOptions(cfg, flags)
			if err != nil {
				return err
			}

			plan, err := importer.New(nil, nil, log, opts).Plan(cmd.Context(), args[0])
			if err != nil {
				return errmsg.Wrap(errmsg.OpSourceScan, err)
			}

			res := newInspectResult(plan)
			if asJSON {
				return writeJSON(cmd, res)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatInspect(res))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

func newInspectResult(plan *importer.Plan) inspectResult {
	res := inspectResult{
		Source:    plan.Album.Source,
		OutputDir: plan.OutputDir,
		Exists:    plan.OutputExists(),
		Cover:     plan.Cover,
		Tracks:    make([]inspectTrack, 0, len(plan.Tracks)),
	}
	for _, t := range plan.Tracks {
		res.Tracks = append(res.Tracks, inspectTrack{
			Source: t.Source,
			Output: t.Output,
			Tags:   t.Result.Record.Fields(),
			Issues: issueStrings(t.Result.Issues),
			Unused: t.Result.Unused,
		})
	}
	return res
}

func issueStrings(issues []metadata.Issue) []string {
	if len(issues) == 0 {
		return nil
	}
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.Error()
	}
	return out
}

func formatInspect(res inspectResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Source: %s\n", res.Source)
	fmt.Fprintf(&b, "Output: %s", res.OutputDir)
	if res.Exists {
		b.WriteString(" (exists)")
	}
	b.WriteByte('\n')
	if res.Cover != "" {
		fmt.Fprintf(&b, "Cover:  %s\n", res.Cover)
	}

	headers := []string{"#", "Disc", "Artist", "Title", "Year", "Genre", "File", "Issues"}
	aligns := []columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignRight}
	rows := make([][]string, 0, len(res.Tracks))
	for _, t := range res.Tracks {
		disc := ""
		if t.Tags["discnumber"] != "" {
			disc = t.Tags["discnumber"] + "/" + t.Tags["totaldiscs"]
		}
		rows = append(rows, []string{
			t.Tags["track"] + "/" + t.Tags["totaltracks"],
			disc,
			t.Tags["artist"],
			t.Tags["title"],
			t.Tags["year"],
			t.Tags["genre"],
			filepath.Base(t.Output),
			strconv.Itoa(len(t.Issues)),
		})
	}
	b.WriteString(renderTable(headers, rows, aligns))
	b.WriteByte('\n')

	for _, t := range res.Tracks {
		for _, issue := range t.Issues {
			fmt.Fprintf(&b, "%s: %s\n", filepath.Base(t.Source), issue)
		}
	}
	return b.String()
}
