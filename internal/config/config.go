package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/cheetah/internal/transcode"
)

const (
	appName        = "cheetah"
	configFileName = "config.toml"
	historyDBName  = "history.db"

	// MaxJobs caps concurrent encodes.
	MaxJobs = 32
)

type Config struct {
	Bitrate      string `koanf:"bitrate"`       // "V0".."V9" or kbit/s (default: "V0")
	Format       string `koanf:"format"`        // "mp3", "opus", "m4a", "flac" (default: "mp3")
	OutputPath   string `koanf:"output_path"`   // full output folder, overrides relocate_path
	RelocatePath string `koanf:"relocate_path"` // parent of the renamed output folder
	FFmpeg       string `koanf:"ffmpeg"`        // encoder binary (default: "ffmpeg")
	Jobs         int    `koanf:"jobs"`          // concurrent encodes (default: number of CPUs)

	EmbedCover   *bool  `koanf:"embed_cover"`    // embed folder cover into tags (default: true)
	CoverMaxSize int    `koanf:"cover_max_size"` // longest side of the embedded cover in pixels, 0 keeps it
	History      *bool  `koanf:"history"`        // skip already converted tracks (default: true)
	HistoryPath  string `koanf:"history_path"`   // sqlite file (default: $XDG_DATA_HOME/cheetah/history.db)

	Notify bool `koanf:"notify"` // desktop notification when a conversion finishes

	SourceExtensions []string          `koanf:"source_extensions"` // default: [".flac"]
	GenreAliases     map[string]string `koanf:"genre_aliases"`     // merged over built-in aliases

	Log LogConfig `koanf:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`  // "debug", "info", "warn", "error" (default: "info")
	Format string `koanf:"format"` // "auto", "console", "json" (default: "auto")
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		Bitrate:          "V0",
		Format:           string(transcode.FormatMP3),
		FFmpeg:           "ffmpeg",
		Jobs:             defaultJobs(),
		SourceExtensions: []string{".flac"},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load reads the configuration. With an explicit path only that file is
// read and it must exist; otherwise the user and working directory files are
// read in order when present, later files overriding earlier ones.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	var configPaths []string
	if explicit != "" {
		explicit = expandPath(explicit)
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		configPaths = []string{explicit}
	} else {
		configPaths = getConfigPaths()
	}

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.OutputPath = expandPath(cfg.OutputPath)
	cfg.RelocatePath = expandPath(cfg.RelocatePath)
	cfg.HistoryPath = expandPath(cfg.HistoryPath)
	cfg.SourceExtensions = normalizeExtensions(cfg.SourceExtensions)

	if cfg.Jobs <= 0 {
		cfg.Jobs = defaultJobs()
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/cheetah/config.toml
		filepath.Join(xdg.ConfigHome, appName, configFileName),
		// 2. ./config.toml (pwd, highest priority)
		configFileName,
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func defaultJobs() int {
	return min(runtime.NumCPU(), MaxJobs)
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

// Validate checks values that Load cannot default away.
func (c *Config) Validate() error {
	f, err := transcode.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	if _, err := transcode.ParseBitrate(f, c.Bitrate); err != nil {
		return err
	}
	if c.Jobs < 1 || c.Jobs > MaxJobs {
		return fmt.Errorf("jobs must be between 1 and %d, got %d", MaxJobs, c.Jobs)
	}
	if c.CoverMaxSize < 0 {
		return fmt.Errorf("cover_max_size must not be negative, got %d", c.CoverMaxSize)
	}
	if len(c.SourceExtensions) == 0 {
		return errors.New("source_extensions must not be empty")
	}
	switch c.Log.Format {
	case "", "auto", "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// EmbedCoverEnabled returns whether the folder cover is embedded in tags.
func (c *Config) EmbedCoverEnabled() bool {
	return c.EmbedCover == nil || *c.EmbedCover
}

// HistoryEnabled returns whether converted tracks are recorded and skipped.
func (c *Config) HistoryEnabled() bool {
	return c.History == nil || *c.History
}

// HistoryFile returns the history database path, creating its parent
// directory under the XDG data home when no path is configured.
func (c *Config) HistoryFile() (string, error) {
	if c.HistoryPath != "" {
		return c.HistoryPath, nil
	}
	return xdg.DataFile(filepath.Join(appName, historyDBName))
}
