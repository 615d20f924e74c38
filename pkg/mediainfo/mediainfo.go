// Package mediainfo is the public API of mpi: inspect an MP4 file and render
// its report.
package mediainfo

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/autobrr/go-mpi/internal/mediainfo"
)

// Types
type (
	TrackKind     = mediainfo.TrackKind
	MediaFile     = mediainfo.MediaFile
	Track         = mediainfo.Track
	TrackHeader   = mediainfo.TrackHeader
	Category      = mediainfo.Category
	Field         = mediainfo.Field
	ReportSection = mediainfo.ReportSection
	SectionWriter = mediainfo.SectionWriter
	InspectError  = mediainfo.InspectError
	State         = mediainfo.State
)

// Constants
const (
	KindVideo          = mediainfo.KindVideo
	KindAudio          = mediainfo.KindAudio
	KindPicture        = mediainfo.KindPicture
	KindAuxiliaryVideo = mediainfo.KindAuxiliaryVideo
	KindMetadata       = mediainfo.KindMetadata
	KindUnknown        = mediainfo.KindUnknown
)

// Errors
var (
	ErrMissingSampleEntry = mediainfo.ErrMissingSampleEntry
	ErrMissingTrackHeader = mediainfo.ErrMissingTrackHeader
	ErrInvalidTimestamp   = mediainfo.ErrInvalidTimestamp
)

// collector keeps every section in memory.
type collector struct {
	sections []ReportSection
}

func (c *collector) WriteSection(s ReportSection) error {
	c.sections = append(c.sections, s)
	return nil
}

func (c *collector) Close() error { return nil }

// InspectFile returns the report sections for path. On error the sections
// produced before the failure are returned alongside it.
func InspectFile(path string) ([]ReportSection, error) {
	var c collector
	err := mediainfo.NewInspector(nil).Inspect(path, &c)
	return c.sections, err
}

// Inspect streams the report for path to out, logging through logger when it
// is not nil.
func Inspect(path string, out SectionWriter, logger *slog.Logger) error {
	return mediainfo.NewInspector(logger).Inspect(path, out)
}

// Writers
func NewTextWriter(w io.Writer) SectionWriter { return mediainfo.NewTextWriter(w) }

func NewJSONWriter(w io.Writer) SectionWriter { return mediainfo.NewJSONWriter(w) }

func NewTableWriter(w io.Writer, colorize bool) SectionWriter {
	return mediainfo.NewTableWriter(w, colorize)
}

// Rendering
func RenderText(sections []ReportSection) string {
	return mediainfo.RenderText(sections)
}

func RenderJSON(sections []ReportSection) (string, error) {
	return mediainfo.RenderJSON(sections)
}

// RenderTable renders sections as go-pretty tables without colour.
func RenderTable(sections []ReportSection) (string, error) {
	var buf bytes.Buffer
	w := mediainfo.NewTableWriter(&buf, false)
	for _, s := range sections {
		if err := w.WriteSection(s); err != nil {
			return "", err
		}
	}
	return buf.String(), w.Close()
}
