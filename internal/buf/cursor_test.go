package buf

import (
	"errors"
	"testing"

	"github.com/joshuapare/x3fkit/pkg/types"
)

func TestCursorReads(t *testing.T) {
	data := []byte{
		0x01,
		0x02, 0x03,
		0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
		0xaa, 0xbb,
	}
	c := NewCursor(data)

	if v, err := c.U8(); err != nil || v != 0x01 {
		t.Fatalf("U8 = 0x%x, %v", v, err)
	}
	if v, err := c.U16(); err != nil || v != 0x0302 {
		t.Fatalf("U16 = 0x%x, %v", v, err)
	}
	if v, err := c.U32(); err != nil || v != 0x07060504 {
		t.Fatalf("U32 = 0x%x, %v", v, err)
	}
	if v, err := c.U64(); err != nil || v != 0x0f0e0d0c0b0a0908 {
		t.Fatalf("U64 = 0x%x, %v", v, err)
	}
	if c.Position() != 15 || c.Remaining() != 2 {
		t.Fatalf("position=%d remaining=%d, want 15 and 2", c.Position(), c.Remaining())
	}

	b, err := c.Bytes(2)
	if err != nil || b[0] != 0xaa || b[1] != 0xbb {
		t.Fatalf("Bytes(2) = %x, %v", b, err)
	}
	// Zero-copy: the returned slice aliases the input.
	if &b[0] != &data[15] {
		t.Fatalf("Bytes should borrow from the input buffer, not copy")
	}
}

func TestCursorTruncation(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02})

	if _, err := c.U32(); !errors.Is(err, types.ErrTruncated) {
		t.Fatalf("U32 past end: got %v, want ErrTruncated", err)
	}
	var te *types.TruncatedError
	_, err := c.U32()
	if !errors.As(err, &te) || te.Needed != 4 || te.Available != 2 {
		t.Fatalf("truncation detail = %+v", te)
	}

	// A failed read must not advance the cursor.
	if c.Position() != 0 {
		t.Fatalf("failed read moved the cursor to %d", c.Position())
	}
	if v, err := c.U16(); err != nil || v != 0x0201 {
		t.Fatalf("U16 after failed U32 = 0x%x, %v", v, err)
	}
}

func TestCursorSkip(t *testing.T) {
	c := NewCursor(make([]byte, 8))
	if err := c.Skip(6); err != nil || c.Position() != 6 {
		t.Fatalf("Skip(6): pos=%d err=%v", c.Position(), err)
	}
	if err := c.Skip(4); !errors.Is(err, types.ErrTruncated) {
		t.Fatalf("Skip past end: got %v, want ErrTruncated", err)
	}
	if err := c.Skip(-1); !errors.Is(err, types.ErrOutOfBounds) {
		t.Fatalf("Skip(-1): got %v, want ErrOutOfBounds", err)
	}
	if _, err := c.Bytes(-1); !errors.Is(err, types.ErrOutOfBounds) {
		t.Fatalf("Bytes(-1): got %v, want ErrOutOfBounds", err)
	}
}

func TestZeroCursor(t *testing.T) {
	var c Cursor
	if c.Remaining() != 0 {
		t.Fatalf("zero cursor remaining = %d", c.Remaining())
	}
	if _, err := c.U8(); !errors.Is(err, types.ErrTruncated) {
		t.Fatalf("zero cursor U8: got %v, want ErrTruncated", err)
	}
}
