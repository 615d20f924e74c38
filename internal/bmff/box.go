// Package bmff decodes the parts of an ISO Base Media File Format (MP4)
// container needed to describe its tracks: movie and track headers, edit
// lists, handlers and sample descriptions with their codec configuration.
package bmff

import "encoding/binary"

var be = binary.BigEndian

// BoxType is a 4-byte box type identifier.
type BoxType [4]byte

func (t BoxType) String() string {
	return string(t[:])
}

// IsZero reports whether the type was never set.
func (t BoxType) IsZero() bool {
	return t == BoxType{}
}

// Known box types.
var (
	TypeFtyp = BoxType{'f', 't', 'y', 'p'}
	TypeMoov = BoxType{'m', 'o', 'o', 'v'}
	TypeMvhd = BoxType{'m', 'v', 'h', 'd'}
	TypeTrak = BoxType{'t', 'r', 'a', 'k'}
	TypeTkhd = BoxType{'t', 'k', 'h', 'd'}
	TypeEdts = BoxType{'e', 'd', 't', 's'}
	TypeElst = BoxType{'e', 'l', 's', 't'}
	TypeMdia = BoxType{'m', 'd', 'i', 'a'}
	TypeMdhd = BoxType{'m', 'd', 'h', 'd'}
	TypeHdlr = BoxType{'h', 'd', 'l', 'r'}
	TypeMinf = BoxType{'m', 'i', 'n', 'f'}
	TypeStbl = BoxType{'s', 't', 'b', 'l'}
	TypeStsd = BoxType{'s', 't', 's', 'd'}
	// Codec configuration boxes
	TypeAvcC = BoxType{'a', 'v', 'c', 'C'}
	TypeAv1C = BoxType{'a', 'v', '1', 'C'}
	TypeVpcC = BoxType{'v', 'p', 'c', 'C'}
	TypeD263 = BoxType{'d', '2', '6', '3'}
	TypeEsds = BoxType{'e', 's', 'd', 's'}
	TypeDfLa = BoxType{'d', 'f', 'L', 'a'}
	TypeDOps = BoxType{'d', 'O', 'p', 's'}
	TypeAlac = BoxType{'a', 'l', 'a', 'c'}
	TypeWave = BoxType{'w', 'a', 'v', 'e'} // QuickTime sound extension
	TypeSinf = BoxType{'s', 'i', 'n', 'f'}
	TypeFrma = BoxType{'f', 'r', 'm', 'a'}
)

// Sample entry formats.
var (
	FormatAvc1 = BoxType{'a', 'v', 'c', '1'}
	FormatAvc3 = BoxType{'a', 'v', 'c', '3'}
	FormatAv01 = BoxType{'a', 'v', '0', '1'}
	FormatVp08 = BoxType{'v', 'p', '0', '8'}
	FormatVp09 = BoxType{'v', 'p', '0', '9'}
	FormatS263 = BoxType{'s', '2', '6', '3'}
	FormatH263 = BoxType{'h', '2', '6', '3'}
	FormatMp4v = BoxType{'m', 'p', '4', 'v'}
	FormatEncv = BoxType{'e', 'n', 'c', 'v'}
	FormatMp4a = BoxType{'m', 'p', '4', 'a'}
	FormatFlac = BoxType{'f', 'L', 'a', 'C'}
	FormatOpus = BoxType{'O', 'p', 'u', 's'}
	FormatAlac = BoxType{'a', 'l', 'a', 'c'}
	FormatMp3  = BoxType{'.', 'm', 'p', '3'}
	FormatLpcm = BoxType{'l', 'p', 'c', 'm'}
	FormatIpcm = BoxType{'i', 'p', 'c', 'm'}
	FormatTwos = BoxType{'t', 'w', 'o', 's'}
	FormatSowt = BoxType{'s', 'o', 'w', 't'}
	FormatEnca = BoxType{'e', 'n', 'c', 'a'}
)

// Handler types as found in hdlr.
var (
	HandlerVideo    = BoxType{'v', 'i', 'd', 'e'}
	HandlerAudio    = BoxType{'s', 'o', 'u', 'n'}
	HandlerPicture  = BoxType{'p', 'i', 'c', 't'}
	HandlerAuxVideo = BoxType{'a', 'u', 'x', 'v'}
	HandlerMetadata = BoxType{'m', 'e', 't', 'a'}
)

// fullBox splits the version/flags prefix off a full box payload.
func fullBox(data []byte) (version uint8, flags uint32, payload []byte, err error) {
	if len(data) < 4 {
		return 0, 0, nil, ErrUnexpectedEOF
	}
	vf := be.Uint32(data)
	return uint8(vf >> 24), vf & 0x00ffffff, data[4:], nil
}
