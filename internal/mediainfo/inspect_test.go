package mediainfo

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/autobrr/go-mpi/internal/bmff"
	"github.com/autobrr/go-mpi/internal/bmff/bmfftest"
)

type recordingWriter struct {
	sections []ReportSection
}

func (r *recordingWriter) WriteSection(section ReportSection) error {
	r.sections = append(r.sections, section)
	return nil
}

func (r *recordingWriter) Close() error { return nil }

func (r *recordingWriter) titles() []string {
	titles := make([]string, 0, len(r.sections))
	for _, s := range r.sections {
		titles = append(titles, s.Title)
	}
	return titles
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func fixedStat(path string) (FileStat, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileStat{}, err
	}
	mod := int64(1520958049)
	return FileStat{Size: info.Size(), Modified: &mod, Accessed: &mod}, nil
}

func TestInspectVideoAndAudio(t *testing.T) {
	buf := bmfftest.File(
		bmfftest.Trak(
			bmfftest.Tkhd(1, 1000, 854, 480, true),
			bmfftest.Mdia("vide", 15360, 15360, bmfftest.VisualEntry("avc1", 854, 480, bmfftest.AvcC())),
		),
		bmfftest.Trak(
			bmfftest.Tkhd(2, 1000, 0, 0, true),
			bmfftest.Mdia("soun", 44100, 44100, bmfftest.AudioEntry("mp4a", 2, 16, 44100,
				bmfftest.Esds(0x40, bmfftest.AudioSpecificConfig(2, 4, 2)))),
		),
	)
	path := writeTemp(t, "av.mp4", buf)

	in := &Inspector{Parse: bmff.Parse, Stat: fixedStat}
	var out recordingWriter
	if err := in.Inspect(path, &out); err != nil {
		t.Fatalf("inspect: %v", err)
	}

	want := []string{
		"media",
		"media.track.video", "media.track.video.header", "media.track.video.sample.entry", "media.track.video.codec",
		"media.track.audio", "media.track.audio.header", "media.track.audio.sample.entry", "media.track.audio.codec",
	}
	if got := out.titles(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("titles=%v", got)
	}
	if v, _ := findField(out.sections[0].Fields, "bytes"); v != int64(len(buf)) {
		t.Fatalf("bytes=%v want %d", v, len(buf))
	}
	if v, _ := findField(out.sections[0].Fields, "created"); !strings.HasPrefix(v.(string), "error: ") {
		t.Fatalf("created=%v", v)
	}
	if v, _ := findField(out.sections[4].Fields, "codec_name"); v != "AVC" {
		t.Fatalf("video codec=%v", v)
	}
	if v, _ := findField(out.sections[8].Fields, "esds.audio_sample_rate"); v != uint64(44100) {
		t.Fatalf("audio rate=%v", v)
	}
}

func TestInspectContainsTrackErrors(t *testing.T) {
	buf := bmfftest.File(
		bmfftest.Trak(bmfftest.Tkhd(1, 1000, 640, 360, true), bmfftest.Mdia("vide", 1000, 1000)),
		bmfftest.Trak(bmfftest.Mdia("meta", 1000, 1000)),
	)
	path := writeTemp(t, "broken.mp4", buf)

	var out recordingWriter
	if err := (&Inspector{Parse: bmff.Parse, Stat: fixedStat}).Inspect(path, &out); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if got := strings.Join(out.titles(), ","); got != "media,media.track.video,media.track.metadata" {
		t.Fatalf("titles=%s", got)
	}
	v, _ := findField(out.sections[1].Fields, "error")
	if s, ok := v.(string); !ok || !strings.Contains(s, ErrMissingSampleEntry.Error()) {
		t.Fatalf("error=%v", v)
	}
}

// eventLog interleaves log records and written sections in call order.
type eventLog struct {
	events []string
}

func (e *eventLog) Write(p []byte) (int, error) {
	e.events = append(e.events, "log "+strings.TrimSpace(string(p)))
	return len(p), nil
}

func (e *eventLog) WriteSection(section ReportSection) error {
	e.events = append(e.events, "section "+section.Title)
	return nil
}

func (e *eventLog) Close() error { return nil }

func (e *eventLog) index(t *testing.T, substr string) int {
	t.Helper()
	for i, ev := range e.events {
		if strings.Contains(ev, substr) {
			return i
		}
	}
	t.Fatalf("no event containing %q in %v", substr, e.events)
	return -1
}

func TestInspectWritesEachTrackWhenClassified(t *testing.T) {
	buf := bmfftest.File(
		bmfftest.Trak(
			bmfftest.Tkhd(1, 1000, 640, 360, true),
			bmfftest.Mdia("vide", 1000, 1000, bmfftest.VisualEntry("avc1", 640, 360, bmfftest.AvcC())),
		),
		bmfftest.Trak(bmfftest.Tkhd(2, 1000, 0, 0, true), bmfftest.Mdia("soun", 1000, 1000)),
	)
	path := writeTemp(t, "order.mp4", buf)

	log := &eventLog{}
	logger := slog.New(slog.NewTextHandler(log, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if err := NewInspector(logger).Inspect(path, log); err != nil {
		t.Fatalf("inspect: %v", err)
	}

	videoDone := log.index(t, "section media.track.video.codec")
	warned := log.index(t, "track not inspected")
	audio := log.index(t, "section media.track.audio")
	if !(videoDone < warned && warned < audio) {
		t.Fatalf("events out of order: %v", log.events)
	}
}

type failingWriter struct {
	failOn  string
	written []string
}

func (f *failingWriter) WriteSection(section ReportSection) error {
	if section.Title == f.failOn {
		return errors.New("disk full")
	}
	f.written = append(f.written, section.Title)
	return nil
}

func (f *failingWriter) Close() error { return nil }

func TestInspectTrackWriteFailure(t *testing.T) {
	buf := bmfftest.File(
		bmfftest.Trak(
			bmfftest.Tkhd(1, 1000, 640, 360, true),
			bmfftest.Mdia("vide", 1000, 1000, bmfftest.VisualEntry("avc1", 640, 360, bmfftest.AvcC())),
		),
		bmfftest.Trak(
			bmfftest.Tkhd(2, 1000, 0, 0, true),
			bmfftest.Mdia("soun", 48000, 48000, bmfftest.AudioEntry("Opus", 2, 16, 48000, bmfftest.DOps(0, 2))),
		),
	)
	path := writeTemp(t, "fail.mp4", buf)

	out := &failingWriter{failOn: "media.track.audio"}
	err := (&Inspector{Parse: bmff.Parse, Stat: fixedStat}).Inspect(path, out)
	var inspectErr *InspectError
	if !errors.As(err, &inspectErr) || inspectErr.State != StateParsed {
		t.Fatalf("err=%v", err)
	}
	if got := strings.Join(out.written, ","); !strings.HasSuffix(got, "media.track.video.codec") {
		t.Fatalf("written=%s", got)
	}
}

func TestInspectNonMP4(t *testing.T) {
	path := writeTemp(t, "main.go", []byte("package main\n\nfunc main() {}\n"))

	var out recordingWriter
	err := NewInspector(nil).Inspect(path, &out)
	var parseErr *bmff.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("err=%v", err)
	}
	var inspectErr *InspectError
	if !errors.As(err, &inspectErr) || inspectErr.State != StateTimestampsResolved {
		t.Fatalf("inspect err=%#v", err)
	}
	for _, title := range out.titles() {
		if strings.HasPrefix(title, "media.track.") {
			t.Fatalf("unexpected track section %s", title)
		}
	}
}

func TestInspectMissingFile(t *testing.T) {
	var out recordingWriter
	parsed := false
	in := &Inspector{
		Parse: func(b []byte) (bmff.Container, error) {
			parsed = true
			return bmff.Parse(b)
		},
		Stat: StatFile,
	}
	err := in.Inspect(filepath.Join(t.TempDir(), "missing.mp4"), &out)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err=%v", err)
	}
	var inspectErr *InspectError
	if !errors.As(err, &inspectErr) || inspectErr.State != StateStart {
		t.Fatalf("state=%v", err)
	}
	if parsed || len(out.sections) != 0 {
		t.Fatalf("parsed=%v sections=%d", parsed, len(out.sections))
	}
}

func TestStatFile(t *testing.T) {
	path := writeTemp(t, "stat.bin", []byte("0123456789"))
	st, err := StatFile(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Size != 10 || st.Modified == nil {
		t.Fatalf("stat=%+v", st)
	}
}

func TestStateString(t *testing.T) {
	if StateTracksClassified.String() != "tracks_classified" {
		t.Fatalf("got %q", StateTracksClassified.String())
	}
	if State(42).String() != "state(42)" {
		t.Fatalf("got %q", State(42).String())
	}
}
