package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/picket-studio/picket/pkg/errors"
)

// configFileName is the project-level config file looked up in the
// working directory.
const configFileName = "picket.toml"

// Config holds file-based defaults for the build and preview commands.
// Flags given on the command line take precedence over config values.
type Config struct {
	Count    int     `toml:"count"`
	Colors   int     `toml:"colors"`
	Family   string  `toml:"family"`
	Width    float64 `toml:"width"`
	Height   float64 `toml:"height"`
	Title    string  `toml:"title"`
	Grid     bool    `toml:"grid"`
	Guide    bool    `toml:"guide"`
	Paper    string  `toml:"paper"`
	Format   string  `toml:"format"`
	Gradient bool    `toml:"gradient"`
}

// loadConfig reads the first config file found, checking the working
// directory first and the user config directory second. A missing file is
// not an error; a malformed one is.
func loadConfig() (*Config, error) {
	paths := []string{configFileName}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, appName, "config.toml"))
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		var cfg Config
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to parse %s", path)
		}
		return &cfg, nil
	}
	return nil, nil
}

// applyConfig fills build options from the config file for every flag the
// user did not set explicitly.
func applyConfig(cmd *cobra.Command, opts *buildOpts) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg == nil {
		return nil
	}

	flags := cmd.Flags()
	if cfg.Count > 0 && !flags.Changed("count") {
		opts.count = cfg.Count
	}
	if cfg.Colors > 0 && !flags.Changed("colors") {
		opts.colors = cfg.Colors
	}
	if cfg.Family != "" && !flags.Changed("family") {
		opts.family = cfg.Family
	}
	if cfg.Width > 0 && !flags.Changed("width") {
		opts.width = cfg.Width
	}
	if cfg.Height > 0 && !flags.Changed("height") {
		opts.height = cfg.Height
	}
	if cfg.Title != "" && !flags.Changed("title") {
		opts.title = cfg.Title
	}
	if cfg.Grid && !flags.Changed("grid") {
		opts.grid = true
	}
	if cfg.Guide && !flags.Changed("guide") {
		opts.guide = true
	}
	if cfg.Paper != "" && !flags.Changed("paper") {
		opts.paper = cfg.Paper
	}
	if cfg.Format != "" && !flags.Changed("format") {
		opts.formats = cfg.Format
	}
	if cfg.Gradient && !flags.Changed("gradient") {
		opts.gradient = true
	}
	return nil
}
