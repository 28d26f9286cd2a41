package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/imgdata/internal/imaging"
	"github.com/ironsheep/imgdata/internal/lookup"
	"github.com/ironsheep/imgdata/internal/manager"
	"github.com/ironsheep/imgdata/internal/registry"
)

// Environment variables that supply flag defaults.
const (
	envImage    = "IMGDATA_IMAGE"
	envColors   = "IMGDATA_COLORS"
	envLogLevel = "IMGDATA_LOG_LEVEL"
)

var errNoImage = errors.New("no image given: use --image or " + envImage)

// app holds the global flags shared by every subcommand.
type app struct {
	stdout io.Writer
	stderr io.Writer

	imagePath  string
	colorsPath string
	lenient    bool
	jsonOut    bool

	verbose bool
	debug   bool
	quiet   bool

	logger *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "imgdata",
		Short: "Resolve image pixels to named colors",
		Long: `imgdata reads a raster image and a color definition file and reports,
for any pixel, its RGBA value and the name the definition file assigns to it.
Colors without a definition are reported as UNKNOWN.

Color definition files may be JSON, TOML or YAML, optionally zstd-compressed
(.zst). Without --colors the built-in CSS color names are used.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setupLogging()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate(versionText() + "\n")

	f := root.PersistentFlags()
	f.StringVar(&a.imagePath, "image", os.Getenv(envImage), "image file to read (env "+envImage+")")
	f.StringVar(&a.colorsPath, "colors", os.Getenv(envColors), "color definition file (env "+envColors+"; default built-in CSS names)")
	f.BoolVar(&a.lenient, "lenient", false, "skip color definitions that fail to decode instead of failing")
	f.BoolVar(&a.jsonOut, "json", false, "print results as JSON")
	f.BoolVarP(&a.verbose, "verbose", "v", false, "log informational messages")
	f.BoolVar(&a.debug, "debug", false, "log debug messages")
	f.BoolVarP(&a.quiet, "quiet", "q", false, "only log errors")

	root.AddCommand(
		a.getCmd(),
		a.hashCmd(),
		a.colorsCmd(),
		a.namesCmd(),
		a.uniqueCmd(),
		a.coverageCmd(),
		a.showCmd(),
		a.swatchCmd(),
		a.serveCmd(),
		a.versionCmd(),
	)
	return root
}

// logLevel picks the level from flags, falling back to the environment and
// then to warn.
func (a *app) logLevel() (slog.Level, error) {
	if !a.debug && !a.verbose && !a.quiet {
		if env := os.Getenv(envLogLevel); env != "" {
			var level slog.Level
			if err := level.UnmarshalText([]byte(strings.TrimSpace(env))); err != nil {
				return slog.LevelWarn, fmt.Errorf("invalid %s: %w", envLogLevel, err)
			}
			return level, nil
		}
	}
	return levelFromFlags(a.debug, a.verbose, a.quiet), nil
}

// levelFromFlags maps the verbosity flags to a level. They are evaluated in
// order, so debug wins over verbose and verbose over quiet.
func levelFromFlags(debug, verbose, quiet bool) slog.Level {
	switch {
	case debug:
		return slog.LevelDebug
	case verbose:
		return slog.LevelInfo
	case quiet:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// setupLogging installs a text logger on stderr. Stdout carries command
// output and, for serve, the MCP stream.
func (a *app) setupLogging() error {
	level, err := a.logLevel()
	if err != nil {
		return err
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

// openManager loads the configured image and registry.
func (a *app) openManager() (*manager.Manager, error) {
	if a.imagePath == "" {
		return nil, errNoImage
	}
	if a.colorsPath != "" {
		return manager.New(manager.Options{
			ImagePath:    a.imagePath,
			RegistryPath: a.colorsPath,
			Lenient:      a.lenient,
			Logger:       a.logger,
		})
	}

	src, err := imaging.Load(a.imagePath)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("using built-in color names", "image", a.imagePath)
	return manager.NewFromSources(src, registry.Builtin(), lookup.Options{Lenient: a.lenient, Logger: a.logger})
}

// openTable builds the lookup table of the configured registry without
// touching the image.
func (a *app) openTable() (*registry.Registry, *lookup.Table, error) {
	reg := registry.Builtin()
	if a.colorsPath != "" {
		var err error
		if reg, err = registry.Load(a.colorsPath); err != nil {
			return nil, nil, err
		}
	}
	t, err := lookup.Build(reg, lookup.Options{Lenient: a.lenient, Logger: a.logger})
	if err != nil {
		return nil, nil, err
	}
	return reg, t, nil
}

func versionText() string {
	return fmt.Sprintf("imgdata %s\n  Build time: %s\n  Git commit: %s", Version, BuildTime, GitCommit)
}
