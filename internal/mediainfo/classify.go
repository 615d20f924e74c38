package mediainfo

import (
	"errors"
	"fmt"

	"github.com/autobrr/go-mpi/internal/bmff"
)

var (
	// ErrMissingSampleEntry means a video or audio track has no usable sample
	// description for its declared type.
	ErrMissingSampleEntry = errors.New("missing sample entry")
	// ErrMissingTrackHeader means a video or audio track has no tkhd box.
	ErrMissingTrackHeader = errors.New("missing track header")
)

// KindOf maps a declared track type onto its report category.
func KindOf(t bmff.TrackType) TrackKind {
	switch t {
	case bmff.TrackVideo:
		return KindVideo
	case bmff.TrackAudio:
		return KindAudio
	case bmff.TrackPicture:
		return KindPicture
	case bmff.TrackAuxiliaryVideo:
		return KindAuxiliaryVideo
	case bmff.TrackMetadata:
		return KindMetadata
	default:
		return KindUnknown
	}
}

// ClassifyTrack determines the category of a decoded track and extracts the
// attributes that category reports.
func ClassifyTrack(rec bmff.TrackRecord) (Track, error) {
	track := Track{
		ID:            rec.ID,
		Duration:      rec.Duration,
		EmptyDuration: rec.EmptyDuration,
		MediaTime:     rec.MediaTime,
		Timescale:     rec.Timescale,
	}
	if rec.Header != nil {
		track.Header = &TrackHeader{
			Disabled: rec.Header.Disabled,
			Duration: rec.Header.Duration,
			Width:    rec.Header.Width >> 16,
			Height:   rec.Header.Height >> 16,
		}
	}

	switch kind := KindOf(rec.Type); kind {
	case KindVideo:
		video, err := classifyVideo(rec.SampleEntries)
		if err != nil {
			return Track{}, err
		}
		if track.Header == nil {
			return Track{}, fmt.Errorf("%w: video track has no tkhd", ErrMissingTrackHeader)
		}
		track.Category = video
	case KindAudio:
		audio, err := classifyAudio(rec.SampleEntries)
		if err != nil {
			return Track{}, err
		}
		if track.Header == nil {
			return Track{}, fmt.Errorf("%w: audio track has no tkhd", ErrMissingTrackHeader)
		}
		track.Category = audio
	case KindPicture:
		track.Category = Picture{}
	case KindAuxiliaryVideo:
		track.Category = AuxiliaryVideo{}
	case KindMetadata:
		track.Category = Metadata{}
	default:
		track.Category = Unknown{}
	}
	return track, nil
}

func classifyVideo(entries []bmff.SampleEntry) (Video, error) {
	var entry *bmff.VideoSampleEntry
	for _, e := range entries {
		if v, ok := e.(*bmff.VideoSampleEntry); ok {
			entry = v
			break
		}
	}
	if entry == nil {
		return Video{}, fmt.Errorf("%w: no visual sample entry", ErrMissingSampleEntry)
	}

	codec, err := videoCodec(entry)
	if err != nil {
		return Video{}, err
	}
	return Video{Width: entry.Width, Height: entry.Height, Codec: codec}, nil
}

func videoCodec(entry *bmff.VideoSampleEntry) (VideoCodec, error) {
	format := entry.Format
	if format == bmff.FormatEncv && !entry.OriginalFormat.IsZero() {
		format = entry.OriginalFormat
	}
	switch format {
	case bmff.FormatAvc1, bmff.FormatAvc3:
		return AVC{}, nil
	case bmff.FormatAv01:
		return AV1{}, nil
	case bmff.FormatS263, bmff.FormatH263:
		return H263{}, nil
	case bmff.FormatMp4v:
		return MP4V{}, nil
	case bmff.FormatVp08, bmff.FormatVp09:
		cfg := entry.VPxConfig
		if cfg == nil {
			return nil, fmt.Errorf("%w: %s entry has no vpcC", ErrMissingSampleEntry, format)
		}
		vpx := VPx{
			BitDepth:          cfg.BitDepth,
			ColourPrimaries:   cfg.ColourPrimaries,
			ChromaSubsampling: cfg.ChromaSubsampling,
		}
		if cfg.Legacy() {
			vpx.ColourPrimaries = cfg.ColorSpace
			vpx.LegacyColorSpace = true
		}
		return vpx, nil
	default:
		return nil, fmt.Errorf("%w: unsupported visual sample entry %q", ErrMissingSampleEntry, format.String())
	}
}

func classifyAudio(entries []bmff.SampleEntry) (Audio, error) {
	var entry *bmff.AudioSampleEntry
	for _, e := range entries {
		if a, ok := e.(*bmff.AudioSampleEntry); ok {
			entry = a
			break
		}
	}
	if entry == nil {
		return Audio{}, fmt.Errorf("%w: no audio sample entry", ErrMissingSampleEntry)
	}

	codec, err := audioCodec(entry)
	if err != nil {
		return Audio{}, err
	}
	return Audio{
		ChannelCount: entry.ChannelCount,
		SampleSize:   entry.SampleSize,
		SampleRate:   entry.SampleRate,
		Codec:        codec,
	}, nil
}

func audioCodec(entry *bmff.AudioSampleEntry) (AudioCodec, error) {
	format := entry.Format
	if format == bmff.FormatEnca && !entry.OriginalFormat.IsZero() {
		format = entry.OriginalFormat
	}
	missing := func(box string) error {
		return fmt.Errorf("%w: %s entry has no %s", ErrMissingSampleEntry, format, box)
	}

	switch format {
	case bmff.FormatMp4a:
		if entry.ES == nil {
			return nil, missing("esds")
		}
		var es ES
		if entry.ES.HasAudioConfig {
			rate := entry.ES.AudioSampleRate
			objectType := entry.ES.AudioObjectType
			es.AudioSampleRate = &rate
			es.AudioObjectType = &objectType
		}
		return es, nil
	case bmff.FormatFlac:
		if entry.FLACConfig == nil || len(entry.FLACConfig.Blocks) == 0 {
			return nil, missing("dfLa")
		}
		first := entry.FLACConfig.Blocks[0]
		return FLAC{BlockType: first.BlockType, BlockDataLength: len(first.Data)}, nil
	case bmff.FormatOpus:
		if entry.OpusConfig == nil {
			return nil, missing("dOps")
		}
		return Opus{Version: entry.OpusConfig.Version}, nil
	case bmff.FormatAlac:
		if entry.ALACConfig == nil {
			return nil, missing("alac")
		}
		return ALAC{DataLength: len(entry.ALACConfig)}, nil
	case bmff.FormatMp3:
		return MP3{}, nil
	case bmff.FormatLpcm, bmff.FormatIpcm, bmff.FormatTwos, bmff.FormatSowt:
		return LPCM{}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported audio sample entry %q", ErrMissingSampleEntry, format.String())
	}
}
