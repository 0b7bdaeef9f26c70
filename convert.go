package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/llehouerou/cheetah/internal/config"
	"github.com/llehouerou/cheetah/internal/errmsg"
	"github.com/llehouerou/cheetah/internal/history"
	"github.com/llehouerou/cheetah/internal/importer"
	"github.com/llehouerou/cheetah/internal/logging"
	"github.com/llehouerou/cheetah/internal/notify"
	"github.com/llehouerou/cheetah/internal/transcode"
	"github.com/llehouerou/cheetah/internal/ui/confirm"
)

func runConvert(cmd *cobra.Command, flags *cliFlags, source string) error {
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

	var enc transcode.Encoder
	if !flags.dryRun {
		ffmpeg, err := transcode.NewFFmpeg(cfg.FFmpeg)
		if err != nil {
			return errmsg.Wrap(errmsg.OpEncoderLookup, err)
		}
		enc = ffmpeg
	}

	hist := openHistory(cfg, flags, log)
	if hist != nil {
		defer hist.Close()
	}

	imp := importer.New(enc, hist, log, opts)

	ctx := cmd.Context()
	plan, err := imp.Plan(ctx, source)
	if err != nil {
		return errmsg.Wrap(errmsg.OpSourceScan, err)
	}

	if plan.OutputExists() && !opts.Overwrite && !opts.DryRun {
		ok, err := confirmOverwrite(cmd, plan.OutputDir)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s (use --force to convert into it)", importer.ErrOutputExists, plan.OutputDir)
		}
		imp.AllowOverwrite()
	}

	sum, err := imp.Run(ctx, plan)
	var line string
	if sum != nil {
		line = sum.String()
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	if cfg.Notify && !opts.DryRun {
		n := notify.Finished(plan.Album.Source, plan.OutputDir, line, plan.Cover, err)
		if nerr := notify.New().Notify(n); nerr != nil {
			log.Debug("desktop notification failed", "error", nerr)
		}
	}
	return err
}

// openHistory opens the history store unless disabled. Failures are
// logged and conversion proceeds without history.
func openHistory(cfg *config.Config, flags *cliFlags, log *slog.Logger) *history.Store {
	if flags.noHistory || flags.dryRun || !cfg.HistoryEnabled() {
		return nil
	}
	path, err := cfg.HistoryFile()
	if err == nil {
		var store *history.Store
		store, err = history.Open(path)
		if err == nil {
			return store
		}
	}
	log.Warn(errmsg.Format(errmsg.OpHistoryOpen, err))
	return nil
}

// confirmOverwrite asks on the terminal whether to convert into an existing
// folder. Without a terminal the answer is no.
func confirmOverwrite(cmd *cobra.Command, dir string) (bool, error) {
	in, out := cmd.InOrStdin(), cmd.OutOrStdout()
	if !logging.IsTerminal(in) || !logging.IsTerminal(out) {
		return false, nil
	}
	return askOverwrite(dir, in, out)
}

var askOverwrite = func(dir string, in io.Reader, out io.Writer) (bool, error) {
	return confirm.Ask("Output folder already exists", dir+"\nConvert into it anyway?", in, out)
}
