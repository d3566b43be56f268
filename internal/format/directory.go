package format

import (
	"fmt"

	"github.com/joshuapare/x3fkit/internal/buf"
	"github.com/joshuapare/x3fkit/pkg/types"
)

// ParseDirectoryPointer reads the directory pointer stored in the final four
// bytes of the file: the offset of the directory section from the start of
// the file. The caller passes the complete buffer (or at least its tail).
func ParseDirectoryPointer(b []byte) (uint32, error) {
	if len(b) < DirPointerSize {
		return 0, &types.TruncatedError{Needed: DirPointerSize, Available: len(b)}
	}
	return buf.U32LE(b[len(b)-DirPointerSize:]), nil
}

// Directory is a view over the directory section: its own header plus the
// packed entry table. The table is not materialized; Entries returns a lazy,
// restartable iterator over it.
type Directory struct {
	Version uint32
	Count   uint32

	raw       []byte // entry table region, possibly shorter than Count records
	truncated bool
}

// ParseDirectory validates the directory header at off within b and returns
// the directory view. A table that overruns the buffer is not an immediate
// error: the iterator yields every complete entry and then reports
// *types.DirectoryTruncatedError.
func ParseDirectory(b []byte, off int) (Directory, error) {
	if off < 0 || off > len(b) {
		return Directory{}, &types.BoundsError{
			Offset: uint64(off),
			Length: DirHeaderSize,
			Limit:  uint64(len(b)),
		}
	}
	if off+DirHeaderSize > len(b) {
		return Directory{}, &types.TruncatedError{Needed: off + DirHeaderSize, Available: len(b)}
	}
	head := b[off:]
	if buf.U32LE(head[DirSignatureOffset:]) != SECdSignature {
		return Directory{}, fmt.Errorf("x3f directory: %w", types.ErrBadMagic)
	}
	d := Directory{
		Version: buf.U32LE(head[DirVersionOffset:]),
		Count:   buf.U32LE(head[DirCountOffset:]),
	}

	start := off + DirHeaderSize
	if end, err := buf.CheckListBounds(len(b), start, int(d.Count), DirEntrySize); err == nil {
		d.raw = b[start:end]
	} else {
		// Keep whatever fits; the iterator surfaces the truncation after
		// yielding the complete entries.
		d.raw = b[start:]
		d.truncated = true
	}
	return d, nil
}

// Complete reports whether the declared entry count fits inside the buffer.
func (d Directory) Complete() bool { return !d.truncated }

// Entries returns an iterator positioned at the first entry. Iteration is
// restartable: each call returns a fresh iterator over the same table.
func (d Directory) Entries() EntryIter {
	return EntryIter{dir: d}
}

// EntryIter walks the directory entry table one record at a time without
// materializing a slice of entries. After Next returns false, Err reports
// whether iteration stopped at the declared count or at a truncation.
type EntryIter struct {
	dir Directory
	pos int
	n   uint32
	err error
}

// Next returns the next directory entry. It yields at most Count entries,
// and stops early with a recorded error when the table runs out of complete
// 12-byte records.
func (it *EntryIter) Next() (DirectoryEntry, bool) {
	if it.err != nil || it.n >= it.dir.Count {
		return DirectoryEntry{}, false
	}
	if it.pos+DirEntrySize > len(it.dir.raw) {
		it.err = &types.DirectoryTruncatedError{Declared: it.dir.Count, Parsed: it.n}
		return DirectoryEntry{}, false
	}
	rec := it.dir.raw[it.pos:]
	e := DirectoryEntry{
		Offset: buf.U32LE(rec[DirEntryOffsetOffset:]),
		Length: buf.U32LE(rec[DirEntryLengthOffset:]),
		Type:   buf.U32LE(rec[DirEntryTypeOffset:]),
	}
	it.pos += DirEntrySize
	it.n++
	return e, true
}

// Err returns the truncation error recorded during iteration, if any.
func (it *EntryIter) Err() error { return it.err }
