package mediainfo

import (
	"bytes"
	"io"
	"strconv"
	"strings"
)

// NotPresent is rendered for optional values the container did not carry.
const NotPresent = "not present"

// TextWriter streams sections in the TOML-like report format. Each section is
// written as soon as it is received; Close terminates the report with a
// blank line.
type TextWriter struct {
	w     io.Writer
	wrote bool
}

func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

func (t *TextWriter) WriteSection(section ReportSection) error {
	var buf bytes.Buffer
	writeTextSection(&buf, section)
	if _, err := t.w.Write(buf.Bytes()); err != nil {
		return err
	}
	t.wrote = true
	return nil
}

// Close writes the terminating blank line if anything was written.
func (t *TextWriter) Close() error {
	if !t.wrote {
		return nil
	}
	_, err := io.WriteString(t.w, "\n")
	return err
}

// RenderText formats a complete report.
func RenderText(sections []ReportSection) string {
	var buf bytes.Buffer
	for _, section := range sections {
		writeTextSection(&buf, section)
	}
	if len(sections) > 0 {
		buf.WriteString("\n")
	}
	return buf.String()
}

func writeTextSection(buf *bytes.Buffer, section ReportSection) {
	if opensTrackGroup(section.Title) {
		buf.WriteString("\n")
	}
	buf.WriteString("[")
	buf.WriteString(section.Title)
	buf.WriteString("]\n")
	for _, field := range section.Fields {
		buf.WriteString(field.Name)
		buf.WriteString(" = ")
		buf.WriteString(formatTextValue(field.Value))
		buf.WriteString("\n")
	}
}

// opensTrackGroup reports whether title is a track category header such as
// media.track.video, which starts a new group of sections.
func opensTrackGroup(title string) bool {
	rest, ok := strings.CutPrefix(title, sectionTracks)
	return ok && !strings.Contains(rest, ".")
}

func formatTextValue(value any) string {
	switch v := value.(type) {
	case nil:
		return strconv.Quote(NotPresent)
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	default:
		return strconv.Quote(formatPlainValue(v))
	}
}
