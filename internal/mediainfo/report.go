package mediainfo

// TrackKind names a track category as it appears in section titles.
type TrackKind string

const (
	KindVideo          TrackKind = "video"
	KindAudio          TrackKind = "audio"
	KindPicture        TrackKind = "picture"
	KindAuxiliaryVideo TrackKind = "auxiliaryvideo"
	KindMetadata       TrackKind = "metadata"
	KindUnknown        TrackKind = "unknown"
)

// MediaFile is the file-level part of a report.
type MediaFile struct {
	URI      string
	Bytes    int64
	Modified Timestamp
	Created  Timestamp
	Accessed Timestamp
}

// TrackHeader holds the tkhd values. Width and Height are whole pixels.
type TrackHeader struct {
	Disabled bool
	Duration uint64
	Width    uint32
	Height   uint32
}

// Track is one classified track. Nil pointers mark values the container did
// not carry.
type Track struct {
	ID            *uint32
	Duration      *uint64
	EmptyDuration *uint64
	MediaTime     *int64
	Timescale     *uint32
	Header        *TrackHeader
	Category      Category
}

// Category is the closed set of track categories: Video, Audio, Picture,
// AuxiliaryVideo, Metadata and Unknown.
type Category interface {
	Kind() TrackKind
}

// Video carries the sample entry dimensions and codec of a video track.
type Video struct {
	Width  uint16
	Height uint16
	Codec  VideoCodec
}

// Audio carries the sample entry attributes and codec of an audio track.
type Audio struct {
	ChannelCount uint16
	SampleSize   uint16
	SampleRate   uint32
	Codec        AudioCodec
}

// Picture, AuxiliaryVideo, Metadata and Unknown tracks are reported without
// attributes.
type (
	Picture        struct{}
	AuxiliaryVideo struct{}
	Metadata       struct{}
	Unknown        struct{}
)

func (Video) Kind() TrackKind          { return KindVideo }
func (Audio) Kind() TrackKind          { return KindAudio }
func (Picture) Kind() TrackKind        { return KindPicture }
func (AuxiliaryVideo) Kind() TrackKind { return KindAuxiliaryVideo }
func (Metadata) Kind() TrackKind       { return KindMetadata }
func (Unknown) Kind() TrackKind        { return KindUnknown }

// Field is one key/value line of a report section. Value is nil for an
// absent optional value, otherwise a string, bool, int64 or uint64.
type Field struct {
	Name  string
	Value any
}

// ReportSection is a titled, ordered list of fields.
type ReportSection struct {
	Title  string
	Fields []Field
}
