package bmff

import "github.com/abema/go-mp4"

// TrackType is the media category declared by a track's handler.
type TrackType int

const (
	TrackUnknown TrackType = iota
	TrackVideo
	TrackAudio
	TrackPicture
	TrackAuxiliaryVideo
	TrackMetadata
)

func (t TrackType) String() string {
	switch t {
	case TrackVideo:
		return "video"
	case TrackAudio:
		return "audio"
	case TrackPicture:
		return "picture"
	case TrackAuxiliaryVideo:
		return "auxiliaryvideo"
	case TrackMetadata:
		return "metadata"
	default:
		return "unknown"
	}
}

// FileType is the decoded ftyp box.
type FileType struct {
	MajorBrand       BoxType
	MinorVersion     uint32
	CompatibleBrands []BoxType
}

// Container is the decoded structure of an MP4 file.
type Container struct {
	FileType  *FileType
	Timescale uint32 // movie timescale from mvhd
	Tracks    []TrackRecord
}

// TrackHeader is the decoded tkhd box. Width and Height are 16.16 fixed point.
type TrackHeader struct {
	Disabled bool
	Duration uint64
	Width    uint32
	Height   uint32
}

// TrackRecord is one trak box. Pointer fields are nil when the box that
// carries them is absent.
type TrackRecord struct {
	Type    TrackType
	Handler BoxType
	ID      *uint32
	// Duration and Timescale come from mdhd, in track units.
	Duration  *uint64
	Timescale *uint32
	// EmptyDuration is in movie timescale units, MediaTime in track units.
	EmptyDuration *uint64
	MediaTime     *int64
	Header        *TrackHeader
	SampleEntries []SampleEntry
}

// Parse decodes the boxes of a fully buffered MP4 file.
func Parse(buf []byte) (Container, error) {
	var c Container
	foundMoov := false

	r := NewReader(buf, 0)
	for r.Next() {
		switch r.Type() {
		case TypeFtyp:
			ft, err := parseFtyp(r.Data())
			if err != nil {
				return Container{}, r.wrap(err)
			}
			c.FileType = &ft
		case TypeMoov:
			if err := parseMoov(r, &c); err != nil {
				return Container{}, err
			}
			foundMoov = true
		}
	}
	if err := r.Err(); err != nil {
		return Container{}, err
	}
	if !foundMoov {
		return Container{}, &ParseError{Offset: -1, Box: TypeMoov, Err: ErrMissingData}
	}
	return c, nil
}

func parseFtyp(data []byte) (FileType, error) {
	var box mp4.Ftyp
	if err := unmarshal(data, &box); err != nil {
		return FileType{}, err
	}
	ft := FileType{
		MajorBrand:   BoxType(box.MajorBrand),
		MinorVersion: box.MinorVersion,
	}
	for _, brand := range box.CompatibleBrands {
		ft.CompatibleBrands = append(ft.CompatibleBrands, BoxType(brand.CompatibleBrand))
	}
	return ft, nil
}

func parseMoov(parent *Reader, c *Container) error {
	r := parent.Children(0)
	for r.Next() {
		switch r.Type() {
		case TypeMvhd:
			timescale, err := parseMvhd(r.Data())
			if err != nil {
				return r.wrap(err)
			}
			c.Timescale = timescale
		case TypeTrak:
			track, err := parseTrak(r)
			if err != nil {
				return err
			}
			c.Tracks = append(c.Tracks, track)
		}
	}
	return r.Err()
}

func parseMvhd(data []byte) (uint32, error) {
	var box mp4.Mvhd
	if err := unmarshal(data, &box); err != nil {
		return 0, err
	}
	return box.Timescale, nil
}

func parseTrak(parent *Reader) (TrackRecord, error) {
	var track TrackRecord
	r := parent.Children(0)
	for r.Next() {
		switch r.Type() {
		case TypeTkhd:
			id, header, err := parseTkhd(r.Data())
			if err != nil {
				return TrackRecord{}, r.wrap(err)
			}
			track.ID = &id
			track.Header = &header
		case TypeEdts:
			if err := parseEdts(r, &track); err != nil {
				return TrackRecord{}, err
			}
		case TypeMdia:
			if err := parseMdia(r, &track); err != nil {
				return TrackRecord{}, err
			}
		}
	}
	return track, r.Err()
}

func parseTkhd(data []byte) (uint32, TrackHeader, error) {
	var box mp4.Tkhd
	if err := unmarshal(data, &box); err != nil {
		return 0, TrackHeader{}, err
	}
	duration := uint64(box.DurationV0)
	if box.GetVersion() == 1 {
		duration = box.DurationV1
	}
	header := TrackHeader{
		Disabled: box.GetFlags()&0x1 == 0,
		Duration: duration,
		Width:    box.Width,
		Height:   box.Height,
	}
	return box.TrackID, header, nil
}

type editEntry struct {
	segmentDuration uint64
	mediaTime       int64
}

func parseEdts(parent *Reader, track *TrackRecord) error {
	r := parent.Children(0)
	for r.Next() {
		if r.Type() != TypeElst {
			continue
		}
		edits, err := parseElst(r.Data())
		if err != nil {
			return r.wrap(err)
		}
		applyEdits(track, edits)
	}
	return r.Err()
}

func parseElst(data []byte) ([]editEntry, error) {
	version, _, payload, err := fullBox(data)
	if err != nil {
		return nil, err
	}
	if len(payload) < 4 {
		return nil, ErrUnexpectedEOF
	}
	entrySize := uint64(12)
	if version == 1 {
		entrySize = 20
	}
	// The count is checked against the payload before anything is allocated.
	count := uint64(be.Uint32(payload))
	if count > uint64(len(payload)-4)/entrySize {
		return nil, ErrUnexpectedEOF
	}

	var box mp4.Elst
	if err := unmarshal(data, &box); err != nil {
		return nil, err
	}
	edits := make([]editEntry, 0, len(box.Entries))
	for i := range box.Entries {
		edits = append(edits, editEntry{
			segmentDuration: box.GetSegmentDuration(i),
			mediaTime:       box.GetMediaTime(i),
		})
	}
	return edits, nil
}

// applyEdits derives the leading empty edit and the media start time. An
// initial edit with media_time -1 is an empty edit; the next entry names where
// presentation starts in the media.
func applyEdits(track *TrackRecord, edits []editEntry) {
	if len(edits) == 0 {
		return
	}
	var empty uint64
	idx := 0
	if edits[0].mediaTime == -1 {
		empty = edits[0].segmentDuration
		idx++
	}
	track.EmptyDuration = &empty
	if idx < len(edits) {
		mediaTime := edits[idx].mediaTime
		track.MediaTime = &mediaTime
	}
}

func parseMdia(parent *Reader, track *TrackRecord) error {
	var stbl []byte
	var stblBase int
	r := parent.Children(0)
	for r.Next() {
		switch r.Type() {
		case TypeMdhd:
			timescale, duration, err := parseMdhd(r.Data())
			if err != nil {
				return r.wrap(err)
			}
			track.Timescale = &timescale
			track.Duration = &duration
		case TypeHdlr:
			handler, err := parseHdlr(r.Data())
			if err != nil {
				return r.wrap(err)
			}
			track.Handler = handler
			track.Type = trackTypeFromHandler(handler)
		case TypeMinf:
			minf := r.Children(0)
			for minf.Next() {
				if minf.Type() == TypeStbl {
					stbl = minf.Data()
					stblBase = minf.DataOffset()
				}
			}
			if err := minf.Err(); err != nil {
				return err
			}
		}
	}
	if err := r.Err(); err != nil {
		return err
	}
	// hdlr may follow minf, so sample descriptions are decoded last.
	if stbl != nil {
		entries, err := parseStbl(NewReader(stbl, stblBase), track.Type)
		if err != nil {
			return err
		}
		track.SampleEntries = entries
	}
	return nil
}

func parseMdhd(data []byte) (uint32, uint64, error) {
	var box mp4.Mdhd
	if err := unmarshal(data, &box); err != nil {
		return 0, 0, err
	}
	duration := uint64(box.DurationV0)
	if box.GetVersion() == 1 {
		duration = box.DurationV1
	}
	return box.Timescale, duration, nil
}

func parseHdlr(data []byte) (BoxType, error) {
	var box mp4.Hdlr
	if err := unmarshal(data, &box); err != nil {
		return BoxType{}, err
	}
	return BoxType(box.HandlerType), nil
}

func trackTypeFromHandler(handler BoxType) TrackType {
	switch handler {
	case HandlerVideo:
		return TrackVideo
	case HandlerAudio:
		return TrackAudio
	case HandlerPicture:
		return TrackPicture
	case HandlerAuxVideo:
		return TrackAuxiliaryVideo
	case HandlerMetadata:
		return TrackMetadata
	default:
		return TrackUnknown
	}
}
