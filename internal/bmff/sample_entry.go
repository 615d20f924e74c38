package bmff

import (
	"math"

	"github.com/abema/go-mp4"
)

// SampleEntry is one entry of a track's sample description (stsd) box.
type SampleEntry interface {
	SampleFormat() BoxType
}

// VideoSampleEntry is a VisualSampleEntry with its codec configuration boxes.
// Configuration fields are nil when the corresponding box is absent.
type VideoSampleEntry struct {
	Format BoxType
	// OriginalFormat is taken from sinf/frma for protected (encv) entries.
	OriginalFormat BoxType
	Width          uint16
	Height         uint16

	AVCConfig  []byte
	AV1Config  []byte
	H263Config []byte
	VPxConfig  *VPxConfig
	ES         *ESDescriptor
}

func (e *VideoSampleEntry) SampleFormat() BoxType { return e.Format }

// AudioSampleEntry is an AudioSampleEntry (or QuickTime sound description)
// with its codec configuration boxes.
type AudioSampleEntry struct {
	Format         BoxType
	OriginalFormat BoxType
	ChannelCount   uint16
	SampleSize     uint16
	// SampleRate is the integer part of the 16.16 rate, or the float rate of
	// a version 2 sound description.
	SampleRate uint32

	ES         *ESDescriptor
	FLACConfig *FLACConfig
	OpusConfig *OpusConfig
	ALACConfig []byte
}

func (e *AudioSampleEntry) SampleFormat() BoxType { return e.Format }

// UnknownSampleEntry is an entry of a track whose handler is neither video
// nor audio.
type UnknownSampleEntry struct {
	Format BoxType
}

func (e *UnknownSampleEntry) SampleFormat() BoxType { return e.Format }

// visualSampleEntrySize is the fixed part of a VisualSampleEntry after the
// box header.
const visualSampleEntrySize = 78

// audioSampleEntrySize is the fixed part of a version 0 AudioSampleEntry.
const audioSampleEntrySize = 28

func parseStbl(r *Reader, trackType TrackType) ([]SampleEntry, error) {
	var entries []SampleEntry
	for r.Next() {
		if r.Type() != TypeStsd {
			continue
		}
		if len(r.Data()) < 8 {
			return nil, r.wrap(ErrUnexpectedEOF)
		}
		count := be.Uint32(r.Data()[4:8])
		er := r.Children(8)
		for i := uint32(0); i < count && er.Next(); i++ {
			entry, err := parseSampleEntry(er, trackType)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
		if err := er.Err(); err != nil {
			return nil, err
		}
	}
	return entries, r.Err()
}

func parseSampleEntry(r *Reader, trackType TrackType) (SampleEntry, error) {
	switch trackType {
	case TrackVideo:
		return parseVideoSampleEntry(r)
	case TrackAudio:
		return parseAudioSampleEntry(r)
	default:
		return &UnknownSampleEntry{Format: r.Type()}, nil
	}
}

func parseVideoSampleEntry(r *Reader) (*VideoSampleEntry, error) {
	entry := &VideoSampleEntry{Format: r.Type()}
	cur := cursor{buf: r.Data()}
	cur.skip(24) // reserved, data_reference_index, pre_defined
	entry.Width = cur.u16()
	entry.Height = cur.u16()
	cur.skip(50)
	if cur.err != nil {
		return nil, r.wrap(cur.err)
	}

	children := r.Children(visualSampleEntrySize)
	for children.Next() {
		data := children.Data()
		switch children.Type() {
		case TypeAvcC:
			entry.AVCConfig = data
		case TypeAv1C:
			entry.AV1Config = data
		case TypeD263:
			entry.H263Config = data
		case TypeVpcC:
			cfg, err := parseVpcC(data)
			if err != nil {
				return nil, children.wrap(err)
			}
			entry.VPxConfig = &cfg
		case TypeEsds:
			es, err := parseEsds(data)
			if err != nil {
				return nil, children.wrap(err)
			}
			entry.ES = &es
		case TypeSinf:
			format, err := parseSinf(children)
			if err != nil {
				return nil, err
			}
			entry.OriginalFormat = format
		}
	}
	if err := children.Err(); err != nil {
		return nil, err
	}
	return entry, nil
}

func parseAudioSampleEntry(r *Reader) (*AudioSampleEntry, error) {
	entry := &AudioSampleEntry{Format: r.Type()}
	cur := cursor{buf: r.Data()}
	cur.skip(8) // reserved, data_reference_index
	version := cur.u16()
	cur.skip(6) // revision, vendor
	entry.ChannelCount = cur.u16()
	entry.SampleSize = cur.u16()
	cur.skip(4) // compression_id, packet_size
	entry.SampleRate = cur.u32() >> 16
	if cur.err != nil {
		return nil, r.wrap(cur.err)
	}

	fixed := audioSampleEntrySize
	switch version {
	case 1:
		// samples_per_packet, bytes_per_packet, bytes_per_frame, bytes_per_sample
		cur.skip(16)
		fixed += 16
	case 2:
		cur.skip(4) // sizeOfStructOnly
		entry.SampleRate = uint32(math.Float64frombits(cur.u64()))
		entry.ChannelCount = uint16(cur.u32())
		cur.skip(4) // always 0x7F000000
		entry.SampleSize = uint16(cur.u32())
		cur.skip(12) // format flags, bytes per packet, frames per packet
		fixed += 36
	}
	if cur.err != nil {
		return nil, r.wrap(cur.err)
	}

	if err := parseAudioConfigBoxes(r.Children(fixed), entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func parseAudioConfigBoxes(children *Reader, entry *AudioSampleEntry) error {
	for children.Next() {
		data := children.Data()
		switch children.Type() {
		case TypeEsds:
			es, err := parseEsds(data)
			if err != nil {
				return children.wrap(err)
			}
			entry.ES = &es
		case TypeDfLa:
			cfg, err := parseDfLa(data)
			if err != nil {
				return children.wrap(err)
			}
			entry.FLACConfig = &cfg
		case TypeDOps:
			cfg, err := parseDOps(data)
			if err != nil {
				return children.wrap(err)
			}
			entry.OpusConfig = &cfg
		case TypeAlac:
			_, _, cookie, err := fullBox(data)
			if err != nil {
				return children.wrap(err)
			}
			entry.ALACConfig = cookie
		case TypeWave:
			if err := parseAudioConfigBoxes(children.Children(0), entry); err != nil {
				return err
			}
		case TypeSinf:
			format, err := parseSinf(children)
			if err != nil {
				return err
			}
			entry.OriginalFormat = format
		}
	}
	return children.Err()
}

// parseSinf returns the original sample entry format of a protected entry.
func parseSinf(parent *Reader) (BoxType, error) {
	var format BoxType
	r := parent.Children(0)
	for r.Next() {
		if r.Type() != TypeFrma {
			continue
		}
		var frma mp4.Frma
		if err := unmarshal(r.Data(), &frma); err != nil {
			return BoxType{}, r.wrap(err)
		}
		format = BoxType(frma.DataFormat)
	}
	return format, r.Err()
}
