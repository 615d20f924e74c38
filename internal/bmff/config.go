package bmff

import "github.com/abema/go-mp4"

// VPxConfig is the decoded vpcC box. Version 0 boxes carry a legacy colour
// space in place of the colour primaries.
type VPxConfig struct {
	Version                 uint8
	Profile                 uint8
	Level                   uint8
	BitDepth                uint8
	ColourPrimaries         uint8
	ColorSpace              uint8
	ChromaSubsampling       uint8
	TransferCharacteristics uint8
	MatrixCoefficients      uint8
	VideoFullRange          bool
}

// Legacy reports whether the box uses the version 0 layout.
func (c VPxConfig) Legacy() bool {
	return c.Version == 0
}

func parseVpcC(data []byte) (VPxConfig, error) {
	version, _, payload, err := fullBox(data)
	if err != nil {
		return VPxConfig{}, err
	}
	if version != 0 {
		var box mp4.VpcC
		if err := unmarshal(data, &box); err != nil {
			return VPxConfig{}, err
		}
		return VPxConfig{
			Version:                 version,
			Profile:                 box.Profile,
			Level:                   box.Level,
			BitDepth:                box.BitDepth,
			ChromaSubsampling:       box.ChromaSubsampling,
			VideoFullRange:          box.VideoFullRangeFlag == 1,
			ColourPrimaries:         box.ColourPrimaries,
			TransferCharacteristics: box.TransferCharacteristics,
			MatrixCoefficients:      box.MatrixCoefficients,
		}, nil
	}

	// Version 0 predates the published layout and is read by hand.
	cur := cursor{buf: payload}
	cfg := VPxConfig{Version: version}
	cfg.Profile = cur.u8()
	cfg.Level = cur.u8()
	b := cur.u8()
	cfg.BitDepth = b >> 4
	cfg.ColorSpace = b & 0x0f
	b = cur.u8()
	cfg.ChromaSubsampling = b >> 4
	cfg.TransferCharacteristics = (b >> 1) & 0x07
	cfg.VideoFullRange = b&0x01 == 1
	cur.skip(2) // codecIntializationDataSize
	if cur.err != nil {
		return VPxConfig{}, cur.err
	}
	return cfg, nil
}

// FLACMetadataBlock is one FLAC metadata block carried in dfLa.
type FLACMetadataBlock struct {
	BlockType uint8
	Data      []byte
}

// FLACConfig is the decoded dfLa box.
type FLACConfig struct {
	Blocks []FLACMetadataBlock
}

const flacStreamInfo = 0

func parseDfLa(data []byte) (FLACConfig, error) {
	_, _, payload, err := fullBox(data)
	if err != nil {
		return FLACConfig{}, err
	}
	var cfg FLACConfig
	cur := cursor{buf: payload}
	for cur.err == nil && cur.pos < len(payload) {
		header := cur.u8()
		length := cur.u24()
		block := cur.take(int(length))
		if cur.err != nil {
			break
		}
		cfg.Blocks = append(cfg.Blocks, FLACMetadataBlock{BlockType: header & 0x7f, Data: block})
		if header&0x80 != 0 {
			break
		}
	}
	if cur.err != nil {
		return FLACConfig{}, cur.err
	}
	// STREAMINFO is mandatory and must come first.
	if len(cfg.Blocks) == 0 || cfg.Blocks[0].BlockType != flacStreamInfo {
		return FLACConfig{}, ErrInvalidData
	}
	return cfg, nil
}

// OpusConfig is the decoded dOps box.
type OpusConfig struct {
	Version              uint8
	OutputChannelCount   uint8
	PreSkip              uint16
	InputSampleRate      uint32
	OutputGain           int16
	ChannelMappingFamily uint8
	StreamCount          uint8
	CoupledCount         uint8
	ChannelMapping       []byte
}

func parseDOps(data []byte) (OpusConfig, error) {
	var box mp4.DOps
	if err := unmarshal(data, &box); err != nil {
		return OpusConfig{}, err
	}
	return OpusConfig{
		Version:              box.Version,
		OutputChannelCount:   box.OutputChannelCount,
		PreSkip:              box.PreSkip,
		InputSampleRate:      box.InputSampleRate,
		OutputGain:           box.OutputGain,
		ChannelMappingFamily: box.ChannelMappingFamily,
		StreamCount:          box.StreamCount,
		CoupledCount:         box.CoupledCount,
		ChannelMapping:       box.ChannelMapping,
	}, nil
}
