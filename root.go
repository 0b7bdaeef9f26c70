package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/llehouerou/cheetah/internal/config"
	"github.com/llehouerou/cheetah/internal/errmsg"
	"github.com/llehouerou/cheetah/internal/importer"
	"github.com/llehouerou/cheetah/internal/logging"
	"github.com/llehouerou/cheetah/internal/metadata"
	"github.com/llehouerou/cheetah/internal/rename"
	"github.com/llehouerou/cheetah/internal/transcode"
)

// cliFlags holds every flag; zero values mean "use the config file".
type cliFlags struct {
	configPath string
	logLevel   string
	logFormat  string

	bitrate  string
	format   string
	output   string
	relocate string

	jobs      int
	force     bool
	dryRun    bool
	noHistory bool
	notify    bool
}

func newRootCommand() *cobra.Command {
	var flags cliFlags

	rootCmd := &cobra.Command{
		Use:   "cheetah <source>",
		Short: "Convert a lossless album folder into a renamed, retagged, re-encoded copy",
		Long: `cheetah reads every lossless file of an album folder, normalizes its tags
(artists, featured artists, track and disc numbers, totals, year, genre),
encodes it with ffmpeg and writes the result as "NN Title.ext" into a new
folder named after the source with "FLAC" replaced by the bitrate.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, &flags, args[0])
		},
	}

	bindFlags(rootCmd, &flags)

	rootCmd.AddCommand(newInspectCommand(&flags))

	return rootCmd
}

func bindFlags(cmd *cobra.Command, flags *cliFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: auto, console, json")
	pf.StringVarP(&flags.bitrate, "bitrate", "b", "", "VBR preset (V0-V9) or bitrate in kbit/s (default V0)")
	pf.StringVarP(&flags.format, "format", "f", "", "Output format: mp3, opus, m4a, flac (default mp3)")
	pf.StringVarP(&flags.output, "output_path", "o", "", "Full output folder path")
	pf.StringVarP(&flags.relocate, "relocate_path", "O", "", "Parent folder for the renamed output folder")

	f := cmd.Flags()
	f.IntVarP(&flags.jobs, "jobs", "j", 0, "Concurrent encodes (default: number of CPUs)")
	f.BoolVar(&flags.force, "force", false, "Overwrite an existing output folder and ignore history")
	f.BoolVar(&flags.dryRun, "dry-run", false, "Plan the conversion without writing anything")
	f.BoolVar(&flags.noHistory, "no-history", false, "Neither read nor record conversion history")
	f.BoolVar(&flags.notify, "notify", false, "Send a desktop notification when done")
}

// loadConfig reads the config file and applies flags the user set.
func loadConfig(cmd *cobra.Command, flags *cliFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpConfigLoad, err)
	}

	changed := cmd.Flags().Changed
	if changed("bitrate") {
		cfg.Bitrate = flags.bitrate
	}
	if changed("format") {
		cfg.Format = flags.format
	}
	if changed("output_path") {
		cfg.OutputPath = flags.output
	}
	if changed("relocate_path") {
		cfg.RelocatePath = flags.relocate
	}
	if changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if changed("log-format") {
		cfg.Log.Format = flags.logFormat
	}
	if changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if changed("notify") {
		cfg.Notify = flags.notify
	}

	if err := cfg.Validate(); err != nil {
		return nil, errmsg.Wrap(errmsg.OpConfigLoad, err)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	return logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: cmd.ErrOrStderr(),
	})
}

// importerOptions maps a validated config onto importer options.
func importerOptions(cfg *config.Config, flags *cliFlags) (importer.Options, error) {
	format, err := transcode.ParseFormat(cfg.Format)
	if err != nil {
		return importer.Options{}, err
	}
	quality, err := transcode.ParseBitrate(format, cfg.Bitrate)
	if err != nil {
		return importer.Options{}, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return importer.Options{}, fmt.Errorf("working directory: %w", err)
	}

	return importer.Options{
		Format:  format,
		Quality: quality,
		Bitrate: cfg.Bitrate,
		Paths: rename.Paths{
			Output:   cfg.OutputPath,
			Relocate: cfg.RelocatePath,
			Cwd:      cwd,
		},
		SourceExtensions: cfg.SourceExtensions,
		Metadata:         metadata.Options{GenreAliases: cfg.GenreAliases},
		Jobs:             cfg.Jobs,
		EmbedCover:       cfg.EmbedCoverEnabled(),
		CoverMaxSize:     uint(cfg.CoverMaxSize), //nolint:gosec // validated non-negative
		Overwrite:        flags.force,
		Force:            flags.force,
		DryRun:           flags.dryRun,
	}, nil
}
