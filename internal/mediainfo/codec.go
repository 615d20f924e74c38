package mediainfo

// VideoCodec is the closed set of video codec families: AVC, AV1, H263, MP4V
// and VPx.
type VideoCodec interface {
	videoCodec()
}

// AudioCodec is the closed set of audio codec families: ES, FLAC, Opus,
// ALAC, MP3 and LPCM.
type AudioCodec interface {
	audioCodec()
}

type (
	AVC  struct{}
	AV1  struct{}
	H263 struct{}
	// MP4V is MPEG-4 Visual configured through an ES descriptor.
	MP4V struct{}
)

// VPx is VP8/VP9. LegacyColorSpace is set for version 0 vpcC boxes, where
// ColourPrimaries holds the old colour space value instead.
type VPx struct {
	BitDepth          uint8
	ColourPrimaries   uint8
	ChromaSubsampling uint8
	LegacyColorSpace  bool
}

// ES is MPEG-4 audio. Both fields are nil when the descriptor carries no
// AudioSpecificConfig.
type ES struct {
	AudioSampleRate *uint32
	AudioObjectType *uint16
}

// FLAC describes the first metadata block of the dfLa box.
type FLAC struct {
	BlockType       uint8
	BlockDataLength int
}

type Opus struct {
	Version uint8
}

type ALAC struct {
	DataLength int
}

type (
	MP3  struct{}
	LPCM struct{}
)

func (AVC) videoCodec()  {}
func (AV1) videoCodec()  {}
func (H263) videoCodec() {}
func (MP4V) videoCodec() {}
func (VPx) videoCodec()  {}

func (ES) audioCodec()   {}
func (FLAC) audioCodec() {}
func (Opus) audioCodec() {}
func (ALAC) audioCodec() {}
func (MP3) audioCodec()  {}
func (LPCM) audioCodec() {}

// CodecField is one codec extension field. Present is false when the
// container did not carry the value.
type CodecField struct {
	Name    string
	Value   uint64
	Present bool
}

// CodecDescription is the canonical codec name plus its extension fields in
// a fixed order.
type CodecDescription struct {
	Name   string
	Fields []CodecField
}

const unknownCodecName = "unknown"

// DescribeVideoCodec returns the name and extension fields of a video codec.
func DescribeVideoCodec(codec VideoCodec) CodecDescription {
	switch c := codec.(type) {
	case AVC:
		return CodecDescription{Name: "AVC"}
	case AV1:
		return CodecDescription{Name: "AV1"}
	case H263:
		return CodecDescription{Name: "H263"}
	case MP4V:
		return CodecDescription{Name: "MP4V"}
	case VPx:
		colour := "vpx.colour_primaries"
		if c.LegacyColorSpace {
			colour = "vpx.color_space"
		}
		return CodecDescription{Name: "VPx", Fields: []CodecField{
			codecField("vpx.bit_depth", uint64(c.BitDepth)),
			codecField(colour, uint64(c.ColourPrimaries)),
			codecField("vpx.chroma_subsampling", uint64(c.ChromaSubsampling)),
		}}
	default:
		return CodecDescription{Name: unknownCodecName}
	}
}

// DescribeAudioCodec returns the name and extension fields of an audio codec.
func DescribeAudioCodec(codec AudioCodec) CodecDescription {
	switch c := codec.(type) {
	case ES:
		rate := CodecField{Name: "esds.audio_sample_rate"}
		if c.AudioSampleRate != nil {
			rate = codecField(rate.Name, uint64(*c.AudioSampleRate))
		}
		objectType := CodecField{Name: "esds.audio_object_type"}
		if c.AudioObjectType != nil {
			objectType = codecField(objectType.Name, uint64(*c.AudioObjectType))
		}
		return CodecDescription{Name: "ES", Fields: []CodecField{rate, objectType}}
	case FLAC:
		return CodecDescription{Name: "FLAC", Fields: []CodecField{
			codecField("flac.blocks[0].block_type", uint64(c.BlockType)),
			codecField("flac.blocks[0].data_length", uint64(c.BlockDataLength)),
		}}
	case Opus:
		return CodecDescription{Name: "Opus", Fields: []CodecField{
			codecField("opus.version", uint64(c.Version)),
		}}
	case ALAC:
		return CodecDescription{Name: "ALAC", Fields: []CodecField{
			codecField("alac.data_length", uint64(c.DataLength)),
		}}
	case MP3:
		return CodecDescription{Name: "MP3"}
	case LPCM:
		return CodecDescription{Name: "LPCM"}
	default:
		return CodecDescription{Name: unknownCodecName}
	}
}

func codecField(name string, value uint64) CodecField {
	return CodecField{Name: name, Value: value, Present: true}
}
