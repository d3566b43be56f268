package format

import (
	"fmt"

	"github.com/joshuapare/x3fkit/internal/buf"
	"github.com/joshuapare/x3fkit/pkg/types"
)

// Header captures the identification fields at the front of an X3F file.
// Fixed-size fields are decoded by value; the variable-size extended data
// area stays a borrow of the input buffer.
type Header struct {
	Version  uint32
	UniqueID [UniqueIDSize]byte
	MarkBits uint32
	Columns  uint32
	Rows     uint32
	Rotation uint32

	// WhiteBalance is the ASCIIZ white balance label (version 2.1+).
	WhiteBalance [LabelSize]byte

	// ColorMode is the ASCIIZ color mode label (version 2.3+).
	ColorMode [LabelSize]byte

	// ExtTypes and ExtData borrow the extended data area: one type tag byte
	// per slot in ExtTypes, one little-endian uint32 per slot in ExtData.
	// Both are nil on 2.0 headers.
	ExtTypes []byte
	ExtData  []byte
}

// Major returns the major format version.
func (h Header) Major() uint32 { return h.Version >> 16 }

// Minor returns the minor format version.
func (h Header) Minor() uint32 { return h.Version & 0xFFFF }

// HasExtended reports whether the header carries the extended fields.
func (h Header) HasExtended() bool { return h.Version >= Version21 }

// ExtSlots returns the number of extended data slots.
func (h Header) ExtSlots() int { return len(h.ExtTypes) }

// ExtValue returns the type tag and raw value of extended slot i.
func (h Header) ExtValue(i int) (uint8, uint32, error) {
	if i < 0 || i >= len(h.ExtTypes) {
		return 0, 0, &types.BoundsError{
			Offset: uint64(i),
			Length: 1,
			Limit:  uint64(len(h.ExtTypes)),
		}
	}
	return h.ExtTypes[i], buf.U32LE(h.ExtData[i*4:]), nil
}

// HeaderLen returns the total header length for a format version. The
// incremental driver uses this to size its first read once the version field
// is visible.
func HeaderLen(version uint32) int {
	n := HdrFixedSize
	if version < Version21 {
		return n
	}
	n += LabelSize
	if version >= Version23 {
		n += LabelSize
	}
	slots := ExtSlots2x
	if version >= Version30 {
		slots = ExtSlots3x
	}
	return n + slots + 4*slots
}

// ParseHeader validates and extracts the X3F file header from the start of
// b. It gates all subsequent parsing: signature first, then the version
// range, then the identification fields. Pure function over its input.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HdrFixedSize {
		return Header{}, &types.TruncatedError{Needed: HdrFixedSize, Available: len(b)}
	}
	if buf.U32LE(b[HdrSignatureOffset:]) != FOVbSignature {
		return Header{}, fmt.Errorf("x3f header: %w", types.ErrBadMagic)
	}
	version := buf.U32LE(b[HdrVersionOffset:])
	if major := version >> 16; major < 2 || major > 3 {
		return Header{}, &types.VersionError{Found: version}
	}
	total := HeaderLen(version)
	if len(b) < total {
		return Header{}, &types.TruncatedError{Needed: total, Available: len(b)}
	}

	h := Header{
		Version:  version,
		MarkBits: buf.U32LE(b[HdrMarkBitsOffset:]),
		Columns:  buf.U32LE(b[HdrColumnsOffset:]),
		Rows:     buf.U32LE(b[HdrRowsOffset:]),
		Rotation: buf.U32LE(b[HdrRotationOffset:]),
	}
	copy(h.UniqueID[:], b[HdrUniqueIDOffset:])

	if version >= Version21 {
		pos := HdrExtendedOffset
		copy(h.WhiteBalance[:], b[pos:pos+LabelSize])
		pos += LabelSize
		if version >= Version23 {
			copy(h.ColorMode[:], b[pos:pos+LabelSize])
			pos += LabelSize
		}
		slots := ExtSlots2x
		if version >= Version30 {
			slots = ExtSlots3x
		}
		h.ExtTypes = b[pos : pos+slots]
		h.ExtData = b[pos+slots : pos+slots+4*slots]
	}
	return h, nil
}
