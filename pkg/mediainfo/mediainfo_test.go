package mediainfo_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/autobrr/go-mpi/internal/bmff/bmfftest"
	"github.com/autobrr/go-mpi/pkg/mediainfo"
)

func TestInspectFile(t *testing.T) {
	buf := bmfftest.File(bmfftest.Trak(
		bmfftest.Tkhd(1, 1000, 0, 0, true),
		bmfftest.Mdia("soun", 48000, 48000, bmfftest.AudioEntry("Opus", 2, 16, 48000, bmfftest.DOps(0, 2))),
	))
	path := filepath.Join(t.TempDir(), "opus.mp4")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	sections, err := mediainfo.InspectFile(path)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	text := mediainfo.RenderText(sections)
	if !strings.Contains(text, "[media.track.audio.codec]\ncodec_name = \"Opus\"\nopus.version = 0\n") {
		t.Fatalf("unexpected report:\n%s", text)
	}
	if _, err := mediainfo.RenderTable(sections); err != nil {
		t.Fatalf("table: %v", err)
	}
}

func TestInspectFileMissing(t *testing.T) {
	sections, err := mediainfo.InspectFile(filepath.Join(t.TempDir(), "missing.mp4"))
	var ie *mediainfo.InspectError
	if !errors.As(err, &ie) {
		t.Fatalf("err=%v", err)
	}
	if len(sections) != 0 {
		t.Fatalf("sections=%v", sections)
	}
}
