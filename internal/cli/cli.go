package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"

	"github.com/autobrr/go-mpi/internal/config"
	"github.com/autobrr/go-mpi/internal/logging"
	"github.com/autobrr/go-mpi/internal/mediainfo"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// Options are the command line overrides. Empty fields keep the value from
// the config file.
type Options struct {
	ConfigPath string
	Output     string
	LogLevel   string
	LogFormat  string
	Color      string
}

// Run inspects path and writes the report to stdout. Diagnostics and logs go
// to stderr. The return value is the process exit code.
func Run(path string, opts Options, stdout, stderr io.Writer) int {
	cfg, cfgPath, cfgFound, err := config.Load(opts.ConfigPath)
	if err != nil {
		reportError(stderr, err)
		return exitError
	}
	if err := cfg.Override(config.Config{
		Output:    opts.Output,
		LogLevel:  opts.LogLevel,
		LogFormat: opts.LogFormat,
		Color:     opts.Color,
	}); err != nil {
		reportError(stderr, err)
		return exitUsage
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Writer: stderr})
	if err != nil {
		reportError(stderr, err)
		return exitError
	}
	if cfgFound {
		logger.Debug("config loaded", "config", cfgPath)
	} else {
		logger.Debug("config not found, using defaults", "config", cfgPath)
	}

	out := newSectionWriter(cfg, stdout)
	inspectErr := mediainfo.NewInspector(logger).Inspect(path, out)
	closeErr := out.Close()

	if err := errors.Join(inspectErr, closeErr); err != nil {
		var ie *mediainfo.InspectError
		if errors.As(err, &ie) {
			logger.Debug("inspection failed", "state", ie.State.String())
		}
		reportError(stderr, err)
		return exitError
	}
	return exitOK
}

func newSectionWriter(cfg *config.Config, stdout io.Writer) mediainfo.SectionWriter {
	switch cfg.Output {
	case config.OutputJSON:
		return mediainfo.NewJSONWriter(stdout)
	case config.OutputTable:
		return mediainfo.NewTableWriter(stdout, colorize(cfg.Color, stdout))
	default:
		return mediainfo.NewTextWriter(stdout)
	}
}

func colorize(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func reportError(stderr io.Writer, err error) {
	fmt.Fprintf(stderr, "error = %s\n", strconv.Quote(err.Error()))
}
