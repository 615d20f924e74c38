package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/autobrr/go-mpi/internal/bmff/bmfftest"
)

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func writeSample(t *testing.T) string {
	t.Helper()
	buf := bmfftest.File(bmfftest.Trak(
		bmfftest.Tkhd(1, 1000, 854, 480, true),
		bmfftest.Mdia("vide", 15360, 15360, bmfftest.VisualEntry("avc1", 854, 480, bmfftest.AvcC())),
	))
	path := filepath.Join(t.TempDir(), "sample.mp4")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestRunText(t *testing.T) {
	isolateConfig(t)
	path := writeSample(t)

	var stdout, stderr bytes.Buffer
	if code := Run(path, Options{}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit=%d stderr=%s", code, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{
		"[media]\nuri = \"" + path + "\"\n",
		"width = 854\nheight = 480\n",
		"codec_name = \"AVC\"\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "\n\n") {
		t.Fatalf("report not terminated by a blank line: %q", out)
	}
	if stderr.Len() != 0 {
		t.Fatalf("unexpected stderr: %s", stderr.String())
	}
}

func TestRunJSON(t *testing.T) {
	isolateConfig(t)
	path := writeSample(t)

	var stdout, stderr bytes.Buffer
	if code := Run(path, Options{Output: "json"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit=%d stderr=%s", code, stderr.String())
	}
	if !json.Valid(stdout.Bytes()) {
		t.Fatalf("invalid json:\n%s", stdout.String())
	}
}

func TestRunTableFromConfig(t *testing.T) {
	isolateConfig(t)
	path := writeSample(t)
	cfgPath := filepath.Join(t.TempDir(), "mpi.toml")
	if err := os.WriteFile(cfgPath, []byte("output = \"table\"\ncolor = \"never\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := Run(path, Options{ConfigPath: cfgPath}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit=%d stderr=%s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "codec_name") || strings.Contains(stdout.String(), "[media]") {
		t.Fatalf("expected table output:\n%s", stdout.String())
	}
}

func TestRunMissingFile(t *testing.T) {
	isolateConfig(t)

	var stdout, stderr bytes.Buffer
	code := Run(filepath.Join(t.TempDir(), "missing.mp4"), Options{}, &stdout, &stderr)
	if code != exitError {
		t.Fatalf("exit=%d", code)
	}
	if stdout.Len() != 0 {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
	if !strings.HasPrefix(stderr.String(), "error = \"") {
		t.Fatalf("stderr=%q", stderr.String())
	}
}

func TestRunNonMP4(t *testing.T) {
	isolateConfig(t)
	path := filepath.Join(t.TempDir(), "main.go")
	if err := os.WriteFile(path, []byte("package main\n\nfunc main() {}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := Run(path, Options{}, &stdout, &stderr); code != exitError {
		t.Fatalf("exit=%d", code)
	}
	if !strings.Contains(stdout.String(), "[media]") {
		t.Fatalf("expected media section before the failure:\n%s", stdout.String())
	}
	if strings.Contains(stdout.String(), "[media.track.") {
		t.Fatalf("unexpected track section:\n%s", stdout.String())
	}
	if !strings.Contains(stderr.String(), "error = ") {
		t.Fatalf("stderr=%q", stderr.String())
	}
}

func TestRunInvalidOverride(t *testing.T) {
	isolateConfig(t)

	var stdout, stderr bytes.Buffer
	if code := Run("unused.mp4", Options{Output: "xml"}, &stdout, &stderr); code != exitUsage {
		t.Fatalf("exit=%d", code)
	}
	if !strings.Contains(stderr.String(), "output") {
		t.Fatalf("stderr=%q", stderr.String())
	}
}

func TestRunDebugLogsToStderr(t *testing.T) {
	isolateConfig(t)
	path := writeSample(t)

	var stdout, stderr bytes.Buffer
	if code := Run(path, Options{LogLevel: "debug"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit=%d", code)
	}
	if !strings.Contains(stderr.String(), "state=done") {
		t.Fatalf("missing state log:\n%s", stderr.String())
	}
	if strings.Contains(stdout.String(), "state=") {
		t.Fatalf("log leaked into report:\n%s", stdout.String())
	}
}

func TestRunDebugLogsConfigSource(t *testing.T) {
	isolateConfig(t)
	path := writeSample(t)

	var stderr bytes.Buffer
	if code := Run(path, Options{LogLevel: "debug"}, io.Discard, &stderr); code != exitOK {
		t.Fatalf("exit=%d stderr=%s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "config not found, using defaults") {
		t.Fatalf("missing default config log:\n%s", stderr.String())
	}

	cfgPath := filepath.Join(t.TempDir(), "mpi.toml")
	if err := os.WriteFile(cfgPath, []byte("log_level = \"debug\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	stderr.Reset()
	if code := Run(path, Options{ConfigPath: cfgPath}, io.Discard, &stderr); code != exitOK {
		t.Fatalf("exit=%d stderr=%s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "config loaded") || !strings.Contains(stderr.String(), cfgPath) {
		t.Fatalf("missing config log:\n%s", stderr.String())
	}
}

func TestUsage(t *testing.T) {
	var stderr bytes.Buffer
	if code := Usage("mpi", &stderr, "missing file argument"); code != exitUsage {
		t.Fatalf("exit=%d", code)
	}
	if !strings.Contains(stderr.String(), "missing file argument") || !strings.Contains(stderr.String(), "Usage:") {
		t.Fatalf("stderr=%q", stderr.String())
	}
}

func TestVersion(t *testing.T) {
	var stdout bytes.Buffer
	Version(&stdout)
	if !strings.HasPrefix(stdout.String(), "mpi, ") {
		t.Fatalf("version=%q", stdout.String())
	}
}

func TestColorize(t *testing.T) {
	var buf bytes.Buffer
	if !colorize("always", &buf) || colorize("never", &buf) || colorize("auto", &buf) {
		t.Fatal("unexpected colour decision for a non-terminal writer")
	}
}
