package format

import (
	"fmt"

	"github.com/joshuapare/x3fkit/internal/buf"
	"github.com/joshuapare/x3fkit/pkg/types"
)

// MetadataBlock is a view over a SECc (CAMF) section: the camera calibration
// metadata Sigma never documented publicly. Type 2 blocks carry a plain
// record table; types 4 and 5 carry an entropy-coded stream. Decompression
// is out of scope here: for compressed blocks the view exposes the coded
// bytes and the declared decoded size, and an external codec takes it from
// there.
type MetadataBlock struct {
	Version uint32
	Type    uint32

	params [4]uint32
	body   []byte
}

// ParseMetadataBlock validates the SECc header of a CAMF section payload.
// Unknown CAMF types are not an error; their body is exposed raw.
func ParseMetadataBlock(data []byte) (MetadataBlock, error) {
	if len(data) < CamfHeaderSize {
		return MetadataBlock{}, &types.TruncatedError{Needed: CamfHeaderSize, Available: len(data)}
	}
	if buf.U32LE(data[CamfSignatureOffset:]) != SECcSignature {
		return MetadataBlock{}, fmt.Errorf("camf block: %w", types.ErrBadMagic)
	}
	m := MetadataBlock{
		Version: buf.U32LE(data[CamfVersionOffset:]),
		Type:    buf.U32LE(data[CamfTypeOffset:]),
		body:    data[CamfBodyOffset:],
	}
	m.params[0] = buf.U32LE(data[CamfParam0Offset:])
	m.params[1] = buf.U32LE(data[CamfParam1Offset:])
	m.params[2] = buf.U32LE(data[CamfParam2Offset:])
	m.params[3] = buf.U32LE(data[CamfParam3Offset:])
	return m, nil
}

// Compressed reports whether the body is an entropy-coded stream (CAMF
// types 4 and 5) rather than a plain record table.
func (m MetadataBlock) Compressed() bool {
	return m.Type == CamfType4 || m.Type == CamfType5
}

// Body returns the block payload after the 28-byte section head: the record
// table for type 2, the coded stream for types 4/5, raw bytes otherwise.
func (m MetadataBlock) Body() []byte { return m.body }

// Type 2 parameters.

// InfoType returns the info type field of a type 2 block.
func (m MetadataBlock) InfoType() uint32 { return m.params[1] }

// InfoTypeVersion returns the info type version field of a type 2 block.
func (m MetadataBlock) InfoTypeVersion() uint32 { return m.params[2] }

// CryptKey returns the crypt key seed of a type 2 block.
func (m MetadataBlock) CryptKey() uint32 { return m.params[3] }

// Type 4/5 parameters.

// DecodedSize returns the declared size of the body after decompression.
func (m MetadataBlock) DecodedSize() uint32 { return m.params[0] }

// DecodeBias returns the predictor bias for the decoder.
func (m MetadataBlock) DecodeBias() uint32 { return m.params[1] }

// BlockSize returns the coded block size.
func (m MetadataBlock) BlockSize() uint32 { return m.params[2] }

// BlockCount returns the coded block count.
func (m MetadataBlock) BlockCount() uint32 { return m.params[3] }

// Records returns a lazy iterator over the record table of a type 2 block.
// On compressed or unknown-type blocks the iterator yields nothing; callers
// branch on Compressed first.
func (m MetadataBlock) Records() RecordIter {
	return m.RecordsCapped(0)
}

// RecordsCapped is Records with a record count limit; iteration stops with an
// error once max records have been yielded. 0 means no limit.
func (m MetadataBlock) RecordsCapped(max int) RecordIter {
	if m.Type != CamfType2 {
		return RecordIter{}
	}
	return RecordIter{body: m.body, max: max}
}

// MetaRecord is one CMb record of a type 2 block. The record's internal
// offsets are relative to the record start and were bounds-checked against
// the record size during iteration.
type MetaRecord struct {
	Tag     uint32
	Version uint32

	raw      []byte // the full record, header included
	nameOff  uint32
	valueOff uint32
}

// Size returns the record size in bytes, header included.
func (r MetaRecord) Size() int { return len(r.raw) }

// Name returns the record's ASCIIZ name without the terminator.
func (r MetaRecord) Name() []byte {
	s := r.raw[r.nameOff:]
	for i := range s {
		if s[i] == 0 {
			return s[:i]
		}
	}
	return s
}

// Value returns the record's value bytes: everything from the value offset
// to the end of the record. Interpretation depends on the record tag (CMbP
// property table, CMbT text, CMbM matrix) and stays with the caller.
func (r MetaRecord) Value() []byte {
	return r.raw[r.valueOff:]
}

// RecordIter walks the packed records of a type 2 CAMF body. Offsets inside
// the table are relative to the block body and are validated against it,
// independently of the outer entry bounds.
type RecordIter struct {
	body []byte
	pos  int
	n    int
	max  int
	err  error
}

// Next returns the next record. Iteration ends at the end of the body, or
// stops early with a recorded error on a corrupt record header.
func (it *RecordIter) Next() (MetaRecord, bool) {
	if it.err != nil || it.pos >= len(it.body) {
		return MetaRecord{}, false
	}
	if it.max > 0 && it.n >= it.max {
		it.err = fmt.Errorf("camf block: record count exceeds limit %d", it.max)
		return MetaRecord{}, false
	}
	if it.pos+CamfRecHeaderSize > len(it.body) {
		it.err = &types.BoundsError{
			Offset: uint64(it.pos),
			Length: CamfRecHeaderSize,
			Limit:  uint64(len(it.body)),
		}
		return MetaRecord{}, false
	}
	rec := it.body[it.pos:]
	tag := buf.U32LE(rec[CamfRecTagOffset:])
	if tag&CamfRecPrefixMask != CamfRecPrefix {
		it.err = fmt.Errorf("camf record at offset %d: %w", it.pos, types.ErrBadMagic)
		return MetaRecord{}, false
	}
	size := buf.U32LE(rec[CamfRecSizeOffset:])
	if size < CamfRecHeaderSize || size%4 != 0 {
		it.err = fmt.Errorf("camf record at offset %d: invalid size %d: %w",
			it.pos, size, types.ErrOutOfBounds)
		return MetaRecord{}, false
	}
	end := uint64(it.pos) + uint64(size)
	if end > uint64(len(it.body)) {
		it.err = &types.BoundsError{
			Offset: uint64(it.pos),
			Length: uint64(size),
			Limit:  uint64(len(it.body)),
		}
		return MetaRecord{}, false
	}
	nameOff := buf.U32LE(rec[CamfRecNameOffset:])
	valueOff := buf.U32LE(rec[CamfRecValueOffset:])
	if nameOff < CamfRecHeaderSize || nameOff > size || valueOff < CamfRecHeaderSize || valueOff > size {
		it.err = fmt.Errorf("camf record at offset %d: offsets escape record: %w",
			it.pos, types.ErrOutOfBounds)
		return MetaRecord{}, false
	}
	r := MetaRecord{
		Tag:      tag,
		Version:  buf.U32LE(rec[CamfRecVersionOffset:]),
		raw:      it.body[it.pos:end],
		nameOff:  nameOff,
		valueOff: valueOff,
	}
	it.pos = int(end)
	it.n++
	return r, true
}

// Err returns the error that stopped iteration, if any.
func (it *RecordIter) Err() error { return it.err }
