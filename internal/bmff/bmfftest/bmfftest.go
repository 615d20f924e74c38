// Package bmfftest builds small MP4 box trees for tests.
package bmfftest

import (
	"encoding/binary"
	"math"
)

// Box encodes a box with a 32-bit size header.
func Box(typ string, payload ...[]byte) []byte {
	body := Join(payload...)
	out := make([]byte, 8, 8+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(8+len(body)))
	copy(out[4:8], typ)
	return append(out, body...)
}

// FullBox encodes a box whose payload starts with version and flags.
func FullBox(typ string, version uint8, flags uint32, payload ...[]byte) []byte {
	vf := U32(uint32(version)<<24 | flags&0x00ffffff)
	return Box(typ, append([][]byte{vf}, payload...)...)
}

// Join concatenates byte slices.
func Join(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func U16(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func U32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func U64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// Zero returns n zero bytes.
func Zero(n int) []byte {
	return make([]byte, n)
}

// Ftyp encodes an isom ftyp box.
func Ftyp() []byte {
	return Box("ftyp", []byte("isom"), U32(512), []byte("isom"), []byte("avc1"), []byte("mp41"))
}

// Mvhd encodes a version 0 movie header.
func Mvhd(timescale, duration uint32) []byte {
	return FullBox("mvhd", 0, 0,
		Zero(8), U32(timescale), U32(duration),
		U32(0x00010000), U16(0x0100), Zero(10), Zero(36), Zero(24), U32(2),
	)
}

// Tkhd encodes a version 0 track header. Width and height are in pixels.
func Tkhd(id, duration uint32, width, height uint16, enabled bool) []byte {
	var flags uint32 = 0x2
	if enabled {
		flags |= 0x1
	}
	return FullBox("tkhd", 0, flags,
		Zero(8), U32(id), Zero(4), U32(duration),
		Zero(8), Zero(8), Zero(36),
		U32(uint32(width)<<16), U32(uint32(height)<<16),
	)
}

// TkhdV1 encodes a version 1 track header.
func TkhdV1(id uint32, duration uint64, width, height uint16) []byte {
	return FullBox("tkhd", 1, 0x3,
		Zero(16), U32(id), Zero(4), U64(duration),
		Zero(8), Zero(8), Zero(36),
		U32(uint32(width)<<16), U32(uint32(height)<<16),
	)
}

// Edit is one edit list entry.
type Edit struct {
	SegmentDuration uint32
	MediaTime       int32
}

// Edts encodes an edts box holding a version 0 elst.
func Edts(edits ...Edit) []byte {
	body := [][]byte{U32(uint32(len(edits)))}
	for _, e := range edits {
		body = append(body, U32(e.SegmentDuration), U32(uint32(e.MediaTime)), U32(0x00010000))
	}
	return Box("edts", FullBox("elst", 0, 0, body...))
}

// Mdhd encodes a version 0 media header.
func Mdhd(timescale, duration uint32) []byte {
	return FullBox("mdhd", 0, 0, Zero(8), U32(timescale), U32(duration), U16(0x55c4), Zero(2))
}

// Hdlr encodes a handler box.
func Hdlr(handler string) []byte {
	return FullBox("hdlr", 0, 0, Zero(4), []byte(handler), Zero(12), []byte{0})
}

// Stsd encodes a sample description box.
func Stsd(entries ...[]byte) []byte {
	return FullBox("stsd", 0, 0, U32(uint32(len(entries))), Join(entries...))
}

// Mdia encodes mdia/{mdhd,hdlr,minf/stbl/stsd}.
func Mdia(handler string, timescale, duration uint32, entries ...[]byte) []byte {
	return Box("mdia",
		Mdhd(timescale, duration),
		Hdlr(handler),
		Box("minf", Box("stbl", Stsd(entries...))),
	)
}

// Trak encodes a trak box from its children.
func Trak(children ...[]byte) []byte {
	return Box("trak", children...)
}

// Moov encodes a moov box with a movie header and the given tracks.
func Moov(tracks ...[]byte) []byte {
	return Box("moov", append([][]byte{Mvhd(1000, 1000)}, tracks...)...)
}

// File encodes ftyp followed by moov with the given tracks.
func File(tracks ...[]byte) []byte {
	return Join(Ftyp(), Moov(tracks...))
}

// VisualEntry encodes a VisualSampleEntry.
func VisualEntry(format string, width, height uint16, children ...[]byte) []byte {
	return Box(format, append([][]byte{
		Zero(6), U16(1),
		Zero(16), U16(width), U16(height),
		U32(0x00480000), U32(0x00480000), Zero(4), U16(1),
		Zero(32), U16(0x0018), U16(0xffff),
	}, children...)...)
}

// AudioEntry encodes a version 0 AudioSampleEntry.
func AudioEntry(format string, channels, sampleSize uint16, rate uint32, children ...[]byte) []byte {
	return Box(format, append([][]byte{
		Zero(6), U16(1),
		U16(0), Zero(6),
		U16(channels), U16(sampleSize), Zero(4), U32(rate << 16),
	}, children...)...)
}

// AudioEntryV2 encodes a QuickTime version 2 sound description.
func AudioEntryV2(format string, channels, bitsPerChannel uint32, rate float64, children ...[]byte) []byte {
	return Box(format, append([][]byte{
		Zero(6), U16(1),
		U16(2), Zero(6),
		U16(3), U16(16), U16(0xfffe), U16(0), U32(0x00010000),
		U32(72), U64(math.Float64bits(rate)), U32(channels), U32(0x7f000000),
		U32(bitsPerChannel), Zero(12),
	}, children...)...)
}

// AvcC encodes a minimal avcC box.
func AvcC() []byte {
	return Box("avcC", []byte{1, 0x64, 0, 0x1f, 0xff, 0xe0, 0x00})
}

// VpcC encodes a version 1 vpcC box.
func VpcC(bitDepth, colourPrimaries, chroma uint8) []byte {
	return FullBox("vpcC", 1, 0,
		[]byte{0, 10, bitDepth<<4 | chroma<<1, colourPrimaries, 1, 1}, U16(0))
}

// VpcCLegacy encodes a version 0 vpcC box.
func VpcCLegacy(bitDepth, colorSpace, chroma uint8) []byte {
	return FullBox("vpcC", 0, 0,
		[]byte{0, 10, bitDepth<<4 | colorSpace&0x0f, chroma << 4}, U16(0))
}

// AudioSpecificConfig packs object type, frequency index and channel
// configuration into two bytes.
func AudioSpecificConfig(objectType, frequencyIndex, channels uint8) []byte {
	return []byte{
		objectType<<3 | frequencyIndex>>1,
		(frequencyIndex&1)<<7 | channels<<3,
	}
}

// Esds encodes an esds box for an audio stream with the given decoder
// specific info.
func Esds(objectTypeIndication uint8, decoderSpecific []byte) []byte {
	dsi := descriptor(0x05, decoderSpecific)
	dcd := descriptor(0x04, Join([]byte{objectTypeIndication, 0x15}, Zero(3), U32(128000), U32(128000), dsi))
	es := descriptor(0x03, Join(U16(1), []byte{0}, dcd, descriptor(0x06, []byte{0x02})))
	return FullBox("esds", 0, 0, es)
}

func descriptor(tag uint8, body []byte) []byte {
	return Join([]byte{tag, 0x80, 0x80, 0x80, byte(len(body))}, body)
}

// FLACBlock is one metadata block for DfLa.
type FLACBlock struct {
	Type uint8
	Data []byte
}

// DfLa encodes a dfLa box; the last block gets the last-metadata flag.
func DfLa(blocks ...FLACBlock) []byte {
	var body []byte
	for i, b := range blocks {
		header := b.Type & 0x7f
		if i == len(blocks)-1 {
			header |= 0x80
		}
		n := len(b.Data)
		body = append(body, header, byte(n>>16), byte(n>>8), byte(n))
		body = append(body, b.Data...)
	}
	return FullBox("dfLa", 0, 0, body)
}

// DOps encodes a dOps box with channel mapping family 0.
func DOps(version, channels uint8) []byte {
	return Box("dOps", []byte{version, channels}, U16(312), U32(48000), U16(0), []byte{0})
}

// Alac encodes an alac configuration box holding cookie.
func Alac(cookie []byte) []byte {
	return FullBox("alac", 0, 0, cookie)
}

// Sinf encodes a protection scheme box naming the original format.
func Sinf(originalFormat string) []byte {
	return Box("sinf", Box("frma", []byte(originalFormat)))
}
