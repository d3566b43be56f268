package format

import (
	"fmt"

	"github.com/joshuapare/x3fkit/internal/buf"
	"github.com/joshuapare/x3fkit/pkg/types"
)

// PropertyList is a view over a SECp section: a pair table of character
// offsets followed by the UTF-16LE string data both sides point into.
// Nothing is decoded up front; pairs are resolved on demand and returned as
// borrows of the section payload.
//
// Duplicate names are not merged. Camera tools display properties in file
// order, so every pair is surfaced as written; a convenience lookup that
// wants one value takes the first match.
type PropertyList struct {
	Version    uint32
	Count      uint32
	CharFormat uint32
	DataLen    uint32 // declared string data length, in characters

	table []byte // Count x {name offset, value offset}
	data  []byte // string area the offsets index into
}

// Property is one name/value pair. Both sides are UTF-16LE without the NUL
// terminator, borrowed from the section payload.
type Property struct {
	NameRaw  []byte
	ValueRaw []byte
}

// ParsePropertyList validates the SECp header and pair table of a property
// section payload. Strings are left in place; see Pair and Pairs.
func ParsePropertyList(data []byte) (PropertyList, error) {
	if len(data) < PropHeaderSize {
		return PropertyList{}, &types.TruncatedError{Needed: PropHeaderSize, Available: len(data)}
	}
	if buf.U32LE(data[PropSignatureOffset:]) != SECpSignature {
		return PropertyList{}, fmt.Errorf("property list: %w", types.ErrBadMagic)
	}
	pl := PropertyList{
		Version:    buf.U32LE(data[PropVersionOffset:]),
		Count:      buf.U32LE(data[PropCountOffset:]),
		CharFormat: buf.U32LE(data[PropCharFormatOffset:]),
		DataLen:    buf.U32LE(data[PropDataLenOffset:]),
	}
	end, err := buf.CheckListBounds(len(data), PropHeaderSize, int(pl.Count), PropPairSize)
	if err != nil {
		return PropertyList{}, &types.BoundsError{
			Offset: PropHeaderSize,
			Length: uint64(pl.Count) * PropPairSize,
			Limit:  uint64(len(data)),
		}
	}
	pl.table = data[PropHeaderSize:end]
	pl.data = data[end:]
	return pl, nil
}

// Len returns the declared pair count.
func (pl PropertyList) Len() int { return int(pl.Count) }

// Pair resolves pair i against the string area. Offsets in the table are
// character offsets (two bytes per character); each side is independently
// bounds-checked. An unterminated final string runs to the end of the
// section, matching what cameras actually write.
func (pl PropertyList) Pair(i int) (Property, error) {
	if i < 0 || i >= int(pl.Count) {
		return Property{}, &types.BoundsError{
			Offset: uint64(i),
			Length: 1,
			Limit:  uint64(pl.Count),
		}
	}
	rec := pl.table[i*PropPairSize:]
	name, err := pl.str(buf.U32LE(rec))
	if err != nil {
		return Property{}, err
	}
	value, err := pl.str(buf.U32LE(rec[4:]))
	if err != nil {
		return Property{}, err
	}
	return Property{NameRaw: name, ValueRaw: value}, nil
}

// str resolves a character offset to the UTF-16LE bytes up to (excluding)
// the NUL terminator.
func (pl PropertyList) str(charOff uint32) ([]byte, error) {
	off := uint64(charOff) * 2
	if off > uint64(len(pl.data)) {
		return nil, &types.BoundsError{
			Offset: off,
			Length: 2,
			Limit:  uint64(len(pl.data)),
		}
	}
	s := pl.data[off:]
	for i := 0; i+1 < len(s); i += 2 {
		if s[i] == 0 && s[i+1] == 0 {
			return s[:i], nil
		}
	}
	return s, nil
}

// Pairs returns a lazy iterator over the pairs in file order.
func (pl PropertyList) Pairs() PropIter {
	return PropIter{pl: pl}
}

// PropIter walks the pair table one entry at a time. A pair whose offsets
// escape the string area stops iteration with the recorded error; pairs
// already yielded remain valid.
type PropIter struct {
	pl  PropertyList
	i   int
	err error
}

// Next returns the next name/value pair in file order.
func (it *PropIter) Next() (Property, bool) {
	if it.err != nil || it.i >= int(it.pl.Count) {
		return Property{}, false
	}
	p, err := it.pl.Pair(it.i)
	if err != nil {
		it.err = err
		return Property{}, false
	}
	it.i++
	return p, true
}

// Err returns the error that stopped iteration, if any.
func (it *PropIter) Err() error { return it.err }
