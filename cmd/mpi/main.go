package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/autobrr/go-mpi/internal/cli"
	"github.com/autobrr/go-mpi/internal/mediainfo"
)

var version = "dev"

const repoSlug = "autobrr/go-mpi"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// usageError marks a flag parsing failure.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

func newRootCmd(code *int) *cobra.Command {
	var opts cli.Options

	rootCmd := &cobra.Command{
		Use:   "mpi [flags] <file>",
		Short: "Inspect the tracks and codecs of an MP4 file.",
		Long: "mpi reads an MP4 file and prints a TOML-like report of its file metadata\n" +
			"and of every track: timing, track header, sample entry and codec fields.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			program := cmd.Root().Name()
			switch len(args) {
			case 0:
				*code = cli.Usage(program, cmd.ErrOrStderr(), "missing file argument")
				return
			case 1:
			default:
				*code = cli.Usage(program, cmd.ErrOrStderr(), "expected exactly one file argument")
				return
			}
			*code = cli.Run(args[0], opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.Output, "output", "o", "", "report format: toml, json or table")
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/mpi/config.toml)")
	flags.StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&opts.LogFormat, "log-format", "", "log format: console or json")
	flags.StringVar(&opts.Color, "color", "", "table colours: auto, always or never")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "update",
		Short: "Update mpi",
		Long:  "Update mpi to latest version (release builds only).",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSelfUpdate(cmd.Context(), cmd.OutOrStdout())
		},
		DisableFlagsInUseLine: true,
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print mpi version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cli.Version(cmd.OutOrStdout())
			return nil
		},
		DisableFlagsInUseLine: true,
	})
	return rootCmd
}

// run executes the command line in args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	code := exitOK
	rootCmd := newRootCmd(&code)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "error = %q\n", err.Error())
		if errors.As(err, new(usageError)) {
			return exitUsage
		}
		return exitError
	}
	return code
}

func init() {
	mediainfo.SetAppVersion(resolveVersion())
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func runSelfUpdate(ctx context.Context, stdout io.Writer) error {
	current := mediainfo.AppVersion
	if current == "" || current == "dev" {
		return errors.New("self-update is only available in release builds")
	}

	if _, err := semver.ParseTolerant(current); err != nil {
		return fmt.Errorf("could not parse version: %w", err)
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repoSlug))
	if err != nil {
		return fmt.Errorf("error occurred while detecting version: %w", err)
	}
	if !found {
		return fmt.Errorf("latest version for %s/%s could not be found from github repository", repoSlug, current)
	}

	if latest.LessOrEqual(current) {
		fmt.Fprintf(stdout, "Current binary is the latest version: %s\n", mediainfo.FormatVersion(current))
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("error occurred while updating binary: %w", err)
	}

	fmt.Fprintf(stdout, "Successfully updated to version: %s\n", mediainfo.FormatVersion(latest.Version()))
	return nil
}

func resolveVersion() string {
	if version != "" && version != "dev" {
		return normalizeVersion(version)
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return normalizeVersion(info.Main.Version)
		}
	}
	return "dev"
}

func normalizeVersion(value string) string {
	return strings.TrimPrefix(value, "v")
}
