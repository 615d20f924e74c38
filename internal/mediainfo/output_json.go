package mediainfo

import (
	"bytes"
	"encoding/json"
	"io"
)

// JSONWriter collects sections and writes them as one JSON document on
// Close, keeping section and field order.
type JSONWriter struct {
	w        io.Writer
	sections []ReportSection
}

func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

func (j *JSONWriter) WriteSection(section ReportSection) error {
	j.sections = append(j.sections, section)
	return nil
}

// Close writes the document. Nothing is written when no section was received.
func (j *JSONWriter) Close() error {
	if len(j.sections) == 0 {
		return nil
	}
	out, err := RenderJSON(j.sections)
	if err != nil {
		return err
	}
	_, err = io.WriteString(j.w, out)
	return err
}

// RenderJSON formats sections as {"sections":[{"title":..,"fields":{..}}]}.
func RenderJSON(sections []ReportSection) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n  \"sections\": [")
	for i, section := range sections {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n    {\n      \"title\": ")
		if err := writeJSONValue(&buf, section.Title); err != nil {
			return "", err
		}
		buf.WriteString(",\n      \"fields\": {")
		for k, field := range section.Fields {
			if k > 0 {
				buf.WriteString(",")
			}
			buf.WriteString("\n        ")
			if err := writeJSONValue(&buf, field.Name); err != nil {
				return "", err
			}
			buf.WriteString(": ")
			if err := writeJSONValue(&buf, field.Value); err != nil {
				return "", err
			}
		}
		if len(section.Fields) > 0 {
			buf.WriteString("\n      ")
		}
		buf.WriteString("}\n    }")
	}
	if len(sections) > 0 {
		buf.WriteString("\n  ")
	}
	buf.WriteString("]\n}\n")
	return buf.String(), nil
}

func writeJSONValue(buf *bytes.Buffer, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(encoded)
	return nil
}
