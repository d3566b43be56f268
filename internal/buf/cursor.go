package buf

import (
	"encoding/binary"

	"github.com/joshuapare/x3fkit/pkg/types"
)

// Cursor is a bounds-checked read position over a borrowed byte slice. Every
// read validates position+size against the buffer before touching memory and
// reports a *types.TruncatedError instead of panicking. Reads that return
// bytes hand back sub-slices of the underlying buffer, never copies.
//
// The zero Cursor over a nil slice is valid and reports truncation for any
// read.
type Cursor struct {
	b   []byte
	pos int
}

// NewCursor returns a cursor positioned at the start of b.
func NewCursor(b []byte) Cursor {
	return Cursor{b: b}
}

// Position returns the current read offset from the start of the buffer.
func (c *Cursor) Position() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.b) - c.pos }

func (c *Cursor) need(n int) error {
	end, ok := AddOverflowSafe(c.pos, n)
	if !ok || end > len(c.b) {
		return &types.TruncatedError{Needed: c.pos + n, Available: len(c.b)}
	}
	return nil
}

// U8 reads one byte.
func (c *Cursor) U8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.b[c.pos]
	c.pos++
	return v, nil
}

// U16 reads a little-endian uint16.
func (c *Cursor) U16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(c.b[c.pos:])
	c.pos += 2
	return v, nil
}

// U32 reads a little-endian uint32.
func (c *Cursor) U32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.b[c.pos:])
	c.pos += 4
	return v, nil
}

// U64 reads a little-endian uint64.
func (c *Cursor) U64() (uint64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(c.b[c.pos:])
	c.pos += 8
	return v, nil
}

// Bytes returns the next n bytes as a sub-slice of the underlying buffer.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, &types.BoundsError{Offset: uint64(c.pos), Limit: uint64(len(c.b))}
	}
	if err := c.need(n); err != nil {
		return nil, err
	}
	v := c.b[c.pos : c.pos+n]
	c.pos += n
	return v, nil
}

// Skip advances the cursor by n bytes without reading them.
func (c *Cursor) Skip(n int) error {
	if n < 0 {
		return &types.BoundsError{Offset: uint64(c.pos), Limit: uint64(len(c.b))}
	}
	if err := c.need(n); err != nil {
		return err
	}
	c.pos += n
	return nil
}
