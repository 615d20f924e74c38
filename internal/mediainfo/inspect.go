package mediainfo

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/autobrr/go-mpi/internal/bmff"
	"github.com/autobrr/go-mpi/internal/logging"
)

// State is a step of an inspection run.
type State int

const (
	StateStart State = iota
	StateFileOpened
	StateBufferRead
	StateTimestampsResolved
	StateParsed
	StateTracksClassified
	StateRendered
	StateDone
	StateError
)

var stateNames = [...]string{
	StateStart:              "start",
	StateFileOpened:         "file_opened",
	StateBufferRead:         "buffer_read",
	StateTimestampsResolved: "timestamps_resolved",
	StateParsed:             "parsed",
	StateTracksClassified:   "tracks_classified",
	StateRendered:           "rendered",
	StateDone:               "done",
	StateError:              "error",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// InspectError is a fatal inspection failure. State is the last state reached
// before the failure.
type InspectError struct {
	State State
	Err   error
}

func (e *InspectError) Error() string {
	return e.Err.Error()
}

func (e *InspectError) Unwrap() error {
	return e.Err
}

// SectionWriter receives report sections in order as they are produced.
type SectionWriter interface {
	WriteSection(ReportSection) error
	Close() error
}

// Inspector runs one file through open, read, stat, parse, classify and
// render. Parse and Stat are the box parser and filesystem collaborators.
type Inspector struct {
	Parse  func([]byte) (bmff.Container, error)
	Stat   func(string) (FileStat, error)
	Logger *slog.Logger
}

// NewInspector returns an Inspector wired to the bmff parser and StatFile.
func NewInspector(logger *slog.Logger) *Inspector {
	return &Inspector{Parse: bmff.Parse, Stat: StatFile, Logger: logger}
}

type run struct {
	logger *slog.Logger
	state  State
}

func (r *run) enter(state State) {
	r.state = state
	r.logger.Debug("inspection state", "state", state.String())
}

func (r *run) fail(err error) error {
	failed := r.state
	r.enter(StateError)
	return &InspectError{State: failed, Err: err}
}

// Inspect writes the report for path to out. Sections are handed to out as
// soon as they are built, so a failure leaves the earlier ones written. Out
// is not closed.
func (in *Inspector) Inspect(path string, out SectionWriter) error {
	logger := in.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With("path", path)
	r := &run{logger: logger, state: StateStart}
	r.logger.Debug("inspection state", "state", StateStart.String())

	f, err := os.Open(path)
	if err != nil {
		return r.fail(err)
	}
	defer f.Close()
	r.enter(StateFileOpened)

	buf, err := io.ReadAll(f)
	if err != nil {
		return r.fail(err)
	}
	r.enter(StateBufferRead)

	stat, err := in.Stat(path)
	if err != nil {
		return r.fail(err)
	}
	media := MediaFile{
		URI:      path,
		Bytes:    int64(len(buf)),
		Modified: NormalizeTimestamp("modified", stat.Modified),
		Created:  NormalizeTimestamp("created", stat.Created),
		Accessed: NormalizeTimestamp("accessed", stat.Accessed),
	}
	for _, ts := range []Timestamp{media.Modified, media.Created, media.Accessed} {
		if ts.Err != nil {
			logger.Info("timestamp unavailable", "error", ts.Err)
		}
	}
	r.enter(StateTimestampsResolved)

	if err := out.WriteSection(RenderMedia(media)); err != nil {
		return r.fail(err)
	}

	container, err := in.Parse(buf)
	if err != nil {
		return r.fail(err)
	}
	r.enter(StateParsed)
	logger.Debug("container parsed", "tracks", len(container.Tracks))

	// Each track is written as soon as it is classified; the classified and
	// rendered states are entered once every track has been handled.
	for i, rec := range container.Tracks {
		kind := KindOf(rec.Type)
		var group []ReportSection
		track, err := ClassifyTrack(rec)
		if err != nil {
			logger.Warn("track not inspected", "index", i, "kind", string(kind), "error", err)
			group = RenderTrackError(kind, err)
		} else {
			group = RenderTrack(track)
		}
		for _, section := range group {
			if err := out.WriteSection(section); err != nil {
				return r.fail(err)
			}
		}
	}
	r.enter(StateTracksClassified)
	r.enter(StateRendered)
	r.enter(StateDone)
	return nil
}
