package bmff

import "errors"

// Reader iterates sibling boxes inside a byte slice. Data returned by the
// Reader points into the original buffer.
type Reader struct {
	buf  []byte
	base int // absolute offset of buf[0] in the file

	typ       BoxType
	start     int
	dataStart int
	end       int

	err error
}

// NewReader creates a Reader over buf. base is the absolute file offset of
// buf[0] and is only used for error reporting.
func NewReader(buf []byte, base int) *Reader {
	return &Reader{buf: buf, base: base}
}

// Next advances to the next sibling box. It returns false at the end of the
// buffer or on error; check Err afterwards.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}
	pos := r.end
	remaining := len(r.buf) - pos
	if remaining == 0 {
		return false
	}
	if remaining < 8 {
		// QuickTime terminates some atom lists with four zero bytes.
		if allZero(r.buf[pos:]) {
			return false
		}
		r.start = pos
		r.typ = BoxType{}
		r.err = r.wrap(ErrUnexpectedEOF)
		return false
	}

	size := uint64(be.Uint32(r.buf[pos:]))
	copy(r.typ[:], r.buf[pos+4:pos+8])
	r.start = pos
	header := 8
	switch size {
	case 1:
		if remaining < 16 {
			r.err = r.wrap(ErrUnexpectedEOF)
			return false
		}
		size = be.Uint64(r.buf[pos+8:])
		header = 16
	case 0:
		size = uint64(remaining)
	}

	if size < uint64(header) {
		r.err = r.wrap(ErrInvalidData)
		return false
	}
	if size > uint64(remaining) {
		r.err = r.wrap(ErrUnexpectedEOF)
		return false
	}

	r.dataStart = pos + header
	r.end = pos + int(size)
	return true
}

// Type returns the current box's type.
func (r *Reader) Type() BoxType { return r.typ }

// Offset returns the absolute offset of the current box.
func (r *Reader) Offset() int { return r.base + r.start }

// DataOffset returns the absolute offset of the current box's payload.
func (r *Reader) DataOffset() int { return r.base + r.dataStart }

// Data returns the current box's payload (after the size/type header).
func (r *Reader) Data() []byte { return r.buf[r.dataStart:r.end] }

// Children returns a Reader over the current box's payload starting skip
// bytes into it.
func (r *Reader) Children(skip int) *Reader {
	data := r.Data()
	if skip > len(data) {
		skip = len(data)
	}
	return NewReader(data[skip:], r.base+r.dataStart+skip)
}

// Err returns the first error encountered while iterating.
func (r *Reader) Err() error { return r.err }

// wrap attaches the current box position to err unless it already carries one.
func (r *Reader) wrap(err error) error {
	if err == nil {
		return nil
	}
	var perr *ParseError
	if errors.As(err, &perr) {
		return err
	}
	return &ParseError{Offset: r.base + r.start, Box: r.typ, Err: err}
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// cursor reads fixed-layout fields; the first short read sticks as
// ErrUnexpectedEOF and later reads return zero values.
type cursor struct {
	buf []byte
	pos int
	err error
}

func (c *cursor) take(n int) []byte {
	if c.err != nil {
		return nil
	}
	if n < 0 || len(c.buf)-c.pos < n {
		c.err = ErrUnexpectedEOF
		return nil
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b
}

func (c *cursor) skip(n int) { c.take(n) }

func (c *cursor) u8() uint8 {
	if b := c.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (c *cursor) u16() uint16 {
	if b := c.take(2); b != nil {
		return be.Uint16(b)
	}
	return 0
}

func (c *cursor) u24() uint32 {
	if b := c.take(3); b != nil {
		return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
	}
	return 0
}

func (c *cursor) u32() uint32 {
	if b := c.take(4); b != nil {
		return be.Uint32(b)
	}
	return 0
}

func (c *cursor) u64() uint64 {
	if b := c.take(8); b != nil {
		return be.Uint64(b)
	}
	return 0
}
