package bmff

import "github.com/abema/go-mp4"

// ESDescriptor is the decoded MPEG-4 elementary stream descriptor of an esds
// box. The audio fields are only set when HasAudioConfig is true.
type ESDescriptor struct {
	ObjectTypeIndication uint8
	StreamType           uint8
	DecoderSpecificInfo  []byte

	HasAudioConfig       bool
	AudioObjectType      uint16
	AudioSampleRate      uint32
	ChannelConfiguration uint8
}

var aacSampleRates = [...]uint32{
	96000, 88200, 64000, 48000, 44100, 32000,
	24000, 22050, 16000, 12000, 11025, 8000, 7350,
}

const streamTypeAudio = 0x05

func parseEsds(data []byte) (ESDescriptor, error) {
	var box mp4.Esds
	if err := unmarshal(data, &box); err != nil {
		return ESDescriptor{}, err
	}
	if len(box.Descriptors) == 0 || box.Descriptors[0].Tag != mp4.ESDescrTag {
		return ESDescriptor{}, ErrInvalidData
	}

	var es ESDescriptor
	sawConfig := false
	for _, d := range box.Descriptors[1:] {
		switch d.Tag {
		case mp4.DecoderConfigDescrTag:
			if d.DecoderConfigDescriptor == nil {
				return ESDescriptor{}, ErrInvalidData
			}
			es.ObjectTypeIndication = d.DecoderConfigDescriptor.ObjectTypeIndication
			es.StreamType = uint8(d.DecoderConfigDescriptor.StreamType)
			sawConfig = true
		case mp4.DecSpecificInfoTag:
			// DecoderSpecificInfo only counts inside a DecoderConfigDescriptor.
			if !sawConfig || es.DecoderSpecificInfo != nil {
				continue
			}
			es.DecoderSpecificInfo = d.Data
			if es.StreamType == streamTypeAudio && len(d.Data) > 0 {
				if err := parseAudioSpecificConfig(d.Data, &es); err != nil {
					return ESDescriptor{}, err
				}
			}
		}
	}
	return es, nil
}

// parseAudioSpecificConfig reads the leading fields of an MPEG-4
// AudioSpecificConfig (ISO/IEC 14496-3 1.6.2.1).
func parseAudioSpecificConfig(data []byte, es *ESDescriptor) error {
	br := newBitReader(data)
	aot, ok := br.read(5)
	if ok && aot == 31 {
		var ext uint32
		ext, ok = br.read(6)
		aot = 32 + ext
	}
	index, ok2 := br.read(4)
	if !ok || !ok2 {
		return ErrUnexpectedEOF
	}
	var rate uint32
	switch {
	case index == 0x0f:
		rate, ok = br.read(24)
		if !ok {
			return ErrUnexpectedEOF
		}
	case int(index) < len(aacSampleRates):
		rate = aacSampleRates[index]
	default:
		return ErrInvalidData
	}
	channels, ok := br.read(4)
	if !ok {
		return ErrUnexpectedEOF
	}
	es.HasAudioConfig = true
	es.AudioObjectType = uint16(aot)
	es.AudioSampleRate = rate
	es.ChannelConfiguration = uint8(channels)
	return nil
}

type bitReader struct {
	data []byte
	pos  int
	bit  uint8
}

func newBitReader(data []byte) *bitReader {
	return &bitReader{data: data}
}

func (br *bitReader) read(n uint8) (uint32, bool) {
	var value uint32
	for i := uint8(0); i < n; i++ {
		if br.pos >= len(br.data) {
			return 0, false
		}
		bit := (br.data[br.pos] >> (7 - br.bit)) & 1
		value = value<<1 | uint32(bit)
		br.bit++
		if br.bit == 8 {
			br.bit = 0
			br.pos++
		}
	}
	return value, true
}
