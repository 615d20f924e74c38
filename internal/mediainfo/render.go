package mediainfo

import (
	"errors"
	"fmt"
)

const (
	sectionMedia  = "media"
	sectionTracks = "media.track."
)

// Render builds every section of a report: the file section followed by the
// sections of each track in container order.
func Render(media MediaFile, tracks []Track) []ReportSection {
	sections := []ReportSection{RenderMedia(media)}
	for _, track := range tracks {
		sections = append(sections, RenderTrack(track)...)
	}
	return sections
}

// RenderMedia builds the [media] section.
func RenderMedia(media MediaFile) ReportSection {
	fields := make([]Field, 0, 5)
	fields = appendField(fields, "uri", media.URI)
	fields = appendField(fields, "bytes", media.Bytes)
	fields = appendField(fields, "modified", media.Modified.String())
	fields = appendField(fields, "created", media.Created.String())
	fields = appendField(fields, "accessed", media.Accessed.String())
	return ReportSection{Title: sectionMedia, Fields: fields}
}

// RenderTrack builds the sections of one classified track.
func RenderTrack(track Track) []ReportSection {
	if track.Category == nil {
		return RenderTrackError(KindUnknown, errors.New("track was not classified"))
	}
	kind := track.Category.Kind()
	title := trackTitle(kind)

	switch c := track.Category.(type) {
	case Video:
		entry := ReportSection{Title: title + ".sample.entry"}
		entry.Fields = appendField(entry.Fields, "width", uint64(c.Width))
		entry.Fields = appendField(entry.Fields, "height", uint64(c.Height))
		return trackSections(track, title, entry, DescribeVideoCodec(c.Codec))
	case Audio:
		entry := ReportSection{Title: title + ".sample.entry"}
		entry.Fields = appendField(entry.Fields, "channel_count", uint64(c.ChannelCount))
		entry.Fields = appendField(entry.Fields, "sample_size", uint64(c.SampleSize))
		entry.Fields = appendField(entry.Fields, "sample_rate", uint64(c.SampleRate))
		return trackSections(track, title, entry, DescribeAudioCodec(c.Codec))
	default:
		return []ReportSection{{
			Title:  title,
			Fields: []Field{{Name: "error", Value: unsupportedNotice(kind)}},
		}}
	}
}

// RenderTrackError builds the section reported in place of a track that
// could not be classified.
func RenderTrackError(kind TrackKind, err error) []ReportSection {
	return []ReportSection{{
		Title:  trackTitle(kind),
		Fields: []Field{{Name: "error", Value: err.Error()}},
	}}
}

func trackSections(track Track, title string, entry ReportSection, codec CodecDescription) []ReportSection {
	sections := make([]ReportSection, 0, 4)

	timing := ReportSection{Title: title}
	timing.Fields = appendField(timing.Fields, "track_id", optionalUint32(track.ID))
	timing.Fields = appendField(timing.Fields, "duration", optionalUint64(track.Duration))
	timing.Fields = appendField(timing.Fields, "empty_duration", optionalUint64(track.EmptyDuration))
	timing.Fields = appendField(timing.Fields, "media_time", optionalInt64(track.MediaTime))
	timing.Fields = appendField(timing.Fields, "timescale", optionalUint32(track.Timescale))
	sections = append(sections, timing)

	if h := track.Header; h != nil {
		header := ReportSection{Title: title + ".header"}
		header.Fields = appendField(header.Fields, "disabled", h.Disabled)
		header.Fields = appendField(header.Fields, "duration", h.Duration)
		header.Fields = appendField(header.Fields, "width", uint64(h.Width))
		header.Fields = appendField(header.Fields, "height", uint64(h.Height))
		sections = append(sections, header)
	}

	sections = append(sections, entry)

	codecSection := ReportSection{Title: title + ".codec"}
	codecSection.Fields = appendField(codecSection.Fields, "codec_name", codec.Name)
	for _, f := range codec.Fields {
		var value any
		if f.Present {
			value = f.Value
		}
		codecSection.Fields = appendField(codecSection.Fields, f.Name, value)
	}
	return append(sections, codecSection)
}

func trackTitle(kind TrackKind) string {
	return sectionTracks + string(kind)
}

func unsupportedNotice(kind TrackKind) string {
	return fmt.Sprintf("%s tracks are not supported for inspection", kind)
}
