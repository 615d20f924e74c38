package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/autobrr/go-mpi/internal/bmff/bmfftest"
)

func writeSample(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	buf := bmfftest.File(bmfftest.Trak(
		bmfftest.Tkhd(1, 1000, 640, 360, true),
		bmfftest.Mdia("vide", 15360, 15360, bmfftest.VisualEntry("avc1", 640, 360, bmfftest.AvcC())),
	))
	path := filepath.Join(t.TempDir(), "sample.mp4")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestRunInspectsFile(t *testing.T) {
	path := writeSample(t)

	var stdout, stderr bytes.Buffer
	if code := run([]string{path}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit=%d stderr=%s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "[media.track.video]\n") {
		t.Fatalf("missing video section:\n%s", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Fatalf("unexpected stderr: %s", stderr.String())
	}
}

func TestRunFlagsBeforeFile(t *testing.T) {
	path := writeSample(t)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-o", "json", path}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit=%d stderr=%s", code, stderr.String())
	}
	if !strings.HasPrefix(stdout.String(), "{") {
		t.Fatalf("expected json output, got:\n%s", stdout.String())
	}
}

func TestRunMissingArgument(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	if code := run([]string{}, &stdout, &stderr); code != exitUsage {
		t.Fatalf("exit=%d, want %d", code, exitUsage)
	}
	if !strings.Contains(stderr.String(), "Usage:") {
		t.Fatalf("missing usage text: %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Fatalf("unexpected stdout: %s", stdout.String())
	}
}

func TestRunTooManyArguments(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	if code := run([]string{"a.mp4", "b.mp4"}, &stdout, &stderr); code != exitUsage {
		t.Fatalf("exit=%d, want %d", code, exitUsage)
	}
}

func TestRunNonexistentPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "missing.mp4")

	var stdout, stderr bytes.Buffer
	if code := run([]string{path}, &stdout, &stderr); code != exitError {
		t.Fatalf("exit=%d, want %d stderr=%s", code, exitError, stderr.String())
	}
	if !strings.HasPrefix(stderr.String(), `error = "`) {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Fatalf("unexpected stdout: %s", stdout.String())
	}
}

func TestRunUnknownFlag(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	if code := run([]string{"--bogus", "a.mp4"}, &stdout, &stderr); code != exitUsage {
		t.Fatalf("exit=%d, want %d", code, exitUsage)
	}
	if !strings.HasPrefix(stderr.String(), `error = "unknown flag`) {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}

func TestRunVersionCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"version"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit=%d stderr=%s", code, stderr.String())
	}
	if !strings.HasPrefix(stdout.String(), "mpi, ") {
		t.Fatalf("unexpected version output: %q", stdout.String())
	}
}
