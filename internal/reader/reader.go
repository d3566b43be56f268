// Package reader provides the concrete X3F reader implementations: a
// full-buffer reader over a memory-mapped (or caller-supplied) file, and an
// incremental sans-I/O driver for callers that feed bytes in chunks. The
// exported entry points are wrapped by the public x3f package.
package reader

import (
	"errors"
	"fmt"

	"github.com/joshuapare/x3fkit/internal/format"
	"github.com/joshuapare/x3fkit/internal/mmfile"
	"github.com/joshuapare/x3fkit/pkg/types"
)

// ErrClosed is returned by operations on a closed Reader.
var ErrClosed = errors.New("x3f: reader is closed")

// Reader parses a complete X3F buffer eagerly enough to gate access (header
// and directory are validated at open), then serves entry payloads as
// zero-copy views on demand. Views borrow from the backing buffer and are
// invalid after Close.
type Reader struct {
	buf    []byte
	unmap  func() error
	opts   types.ParseOptions
	head   format.Header
	dir    format.Directory
	closed bool
}

// Open maps the X3F file at path and validates its structure.
func Open(path string, opts types.ParseOptions) (*Reader, error) {
	data, unmap, err := mmfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("open x3f: %w", err)
	}
	r, err := newReader(data, unmap, opts)
	if err != nil {
		if unmap != nil {
			_ = unmap()
		}
		return nil, err
	}
	return r, nil
}

// OpenBytes creates a reader backed by the provided buffer. The buffer must
// stay immutable while the reader or any view derived from it is live.
func OpenBytes(buf []byte, opts types.ParseOptions) (*Reader, error) {
	return newReader(buf, nil, opts)
}

func newReader(b []byte, unmap func() error, opts types.ParseOptions) (*Reader, error) {
	opts = opts.Normalized()
	head, err := format.ParseHeader(b)
	if err != nil {
		return nil, err
	}
	ptr, err := format.ParseDirectoryPointer(b)
	if err != nil {
		return nil, err
	}
	dir, err := format.ParseDirectory(b, int(ptr))
	if err != nil {
		return nil, err
	}
	if dir.Count > uint32(opts.MaxEntries) {
		return nil, fmt.Errorf("x3f directory: entry count %d exceeds limit %d",
			dir.Count, opts.MaxEntries)
	}
	return &Reader{
		buf:   b,
		unmap: unmap,
		opts:  opts,
		head:  head,
		dir:   dir,
	}, nil
}

// Header returns the parsed file header.
func (r *Reader) Header() format.Header { return r.head }

// Directory returns the parsed directory view.
func (r *Reader) Directory() format.Directory { return r.dir }

// Entries returns a fresh iterator over the directory entries.
func (r *Reader) Entries() format.EntryIter { return r.dir.Entries() }

// Size returns the backing buffer length.
func (r *Reader) Size() int64 { return int64(len(r.buf)) }

// Classify dispatches one directory entry into its typed payload view. A
// failure here is scoped to the entry: the caller can keep iterating and
// classify siblings.
func (r *Reader) Classify(e format.DirectoryEntry) (format.EntryView, error) {
	if r.closed {
		return format.EntryView{}, ErrClosed
	}
	v, err := format.Classify(e, r.buf)
	if err != nil {
		return format.EntryView{}, err
	}
	if v.Kind == types.KindPropertyList && v.Prop.Count > uint32(r.opts.MaxProperties) {
		return format.EntryView{}, fmt.Errorf("property list: pair count %d exceeds limit %d",
			v.Prop.Count, r.opts.MaxProperties)
	}
	return v, nil
}

// PropertyLists classifies every PROP entry in directory order. On a corrupt
// entry the lists collected so far are returned alongside the error, so the
// caller can decide whether partial metadata is good enough.
func (r *Reader) PropertyLists() ([]*format.PropertyList, error) {
	var out []*format.PropertyList
	err := r.collect(types.KindPropertyList, func(v format.EntryView) {
		out = append(out, v.Prop)
	})
	return out, err
}

// MetaRecords returns the block's record iterator with the reader's record
// limit applied.
func (r *Reader) MetaRecords(m *format.MetadataBlock) format.RecordIter {
	return m.RecordsCapped(r.opts.MaxMetaRecords)
}

// MetadataBlocks classifies every CAMF entry in directory order.
func (r *Reader) MetadataBlocks() ([]*format.MetadataBlock, error) {
	var out []*format.MetadataBlock
	err := r.collect(types.KindMetadata, func(v format.EntryView) {
		out = append(out, v.Meta)
	})
	return out, err
}

// ImagePlanes classifies every IMAG/IMA2 entry in directory order.
func (r *Reader) ImagePlanes() ([]*format.ImagePlane, error) {
	var out []*format.ImagePlane
	err := r.collect(types.KindImage, func(v format.EntryView) {
		out = append(out, v.Image)
	})
	return out, err
}

func (r *Reader) collect(kind types.EntryKind, keep func(format.EntryView)) error {
	if r.closed {
		return ErrClosed
	}
	it := r.dir.Entries()
	for {
		e, ok := it.Next()
		if !ok {
			return it.Err()
		}
		v, err := r.Classify(e)
		if err != nil {
			return err
		}
		if v.Kind == kind {
			keep(v)
		}
	}
}

// Close releases the mapping. Every view handed out before Close borrows
// from it and must not be used afterwards.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.buf = nil
	if r.unmap != nil {
		return r.unmap()
	}
	return nil
}
