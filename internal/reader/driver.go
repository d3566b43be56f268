package reader

import (
	"errors"
	"fmt"

	xbuf "github.com/joshuapare/x3fkit/internal/buf"
	"github.com/joshuapare/x3fkit/internal/format"
	"github.com/joshuapare/x3fkit/pkg/types"
)

// driverState tracks which structural unit the driver expects next.
type driverState int

const (
	stateHeader driverState = iota
	stateDirectoryPointer
	stateDirectory
	stateEntries
	stateDone
)

// Progress is the outcome of one Feed call. Exactly one of the two fields is
// meaningful: Need asks for that many additional bytes beyond what was
// presented; Done marks the terminal state.
type Progress struct {
	Need int
	Done bool
}

// Driver is the incremental, sans-I/O X3F structure parser. It performs no
// I/O and owns no payload memory: the caller accumulates the file into a
// single buffer (in file order, chunk sizes arbitrary) and presents that
// buffer from logical offset zero on every Feed call. The driver keeps only
// positions and counters, so feeding a longer prefix resumes exactly where
// the previous call stopped.
//
// The directory pointer lives in the final four bytes of the file, so the
// driver necessarily asks for the full declared length before it can locate
// the directory; header validation happens as soon as the first bytes are
// in.
type Driver struct {
	total int64
	opts  types.ParseOptions

	state     driverState
	dirOff    int
	count     uint32
	remaining uint32
	entryPos  int
	invalid   int

	dirErr error // directory truncation, reported at Done
	failed error // fatal structural error; sticky
}

// NewDriver prepares a driver for a file of the declared total size. The
// size must be known up front so end-of-file structures can be located and
// entry bounds can be pre-checked before all bytes have arrived.
func NewDriver(total int64, opts types.ParseOptions) (*Driver, error) {
	const minFile = format.HdrFixedSize + format.DirHeaderSize + format.DirPointerSize
	if total < minFile {
		return nil, &types.TruncatedError{Needed: minFile, Available: int(total)}
	}
	return &Driver{total: total, opts: opts.Normalized()}, nil
}

// Feed advances the state machine as far as the presented bytes allow. buf
// must always start at file offset zero and only ever grow between calls.
// A Progress with Need > 0 means the caller should append at least that many
// bytes and call again. Done with a nil error is a fully parsed structure;
// Done with a DirectoryTruncatedError means the directory declared more
// entries than the file holds (the complete ones are still iterable).
func (d *Driver) Feed(buf []byte) (Progress, error) {
	if d.failed != nil {
		return Progress{}, d.failed
	}
	if int64(len(buf)) > d.total {
		return Progress{}, fmt.Errorf("x3f driver: %d bytes presented, %d declared", len(buf), d.total)
	}

	for {
		switch d.state {
		case stateHeader:
			if _, err := format.ParseHeader(buf); err != nil {
				var te *types.TruncatedError
				if errors.As(err, &te) {
					// A header needing more bytes than the file declares can
					// never complete; asking for them would loop forever.
					if int64(te.Needed) > d.total {
						return Progress{}, d.fail(err)
					}
					return Progress{Need: te.Needed - len(buf)}, nil
				}
				return Progress{}, d.fail(err)
			}
			d.state = stateDirectoryPointer

		case stateDirectoryPointer:
			// The pointer is the last structural unit on disk; with bytes
			// arriving in file order everything else is present once it is.
			if int64(len(buf)) < d.total {
				return Progress{Need: int(d.total - int64(len(buf)))}, nil
			}
			ptr, err := format.ParseDirectoryPointer(buf)
			if err != nil {
				return Progress{}, d.fail(err)
			}
			if int64(ptr)+format.DirHeaderSize > d.total {
				return Progress{}, d.fail(&types.BoundsError{
					Offset: uint64(ptr),
					Length: format.DirHeaderSize,
					Limit:  uint64(d.total),
				})
			}
			d.dirOff = int(ptr)
			d.state = stateDirectory

		case stateDirectory:
			dir, err := format.ParseDirectory(buf, d.dirOff)
			if err != nil {
				var te *types.TruncatedError
				if errors.As(err, &te) {
					return Progress{Need: te.Needed - len(buf)}, nil
				}
				return Progress{}, d.fail(err)
			}
			if dir.Count > uint32(d.opts.MaxEntries) {
				return Progress{}, d.fail(fmt.Errorf(
					"x3f directory: entry count %d exceeds limit %d", dir.Count, d.opts.MaxEntries))
			}
			d.count = dir.Count
			d.remaining = dir.Count
			d.entryPos = d.dirOff + format.DirHeaderSize
			d.state = stateEntries

		case stateEntries:
			for d.remaining > 0 {
				if d.entryPos+format.DirEntrySize > len(buf) {
					if int64(len(buf)) < d.total {
						return Progress{Need: d.entryPos + format.DirEntrySize - len(buf)}, nil
					}
					// Whole file present: the count overruns it.
					d.dirErr = &types.DirectoryTruncatedError{
						Declared: d.count,
						Parsed:   d.count - d.remaining,
					}
					break
				}
				rec := buf[d.entryPos:]
				e := format.DirectoryEntry{
					Offset: xbuf.U32LE(rec[format.DirEntryOffsetOffset:]),
					Length: xbuf.U32LE(rec[format.DirEntryLengthOffset:]),
					Type:   xbuf.U32LE(rec[format.DirEntryTypeOffset:]),
				}
				// Pre-check payload bounds against the declared size. A bad
				// entry is counted, not fatal: siblings stay parseable and
				// classification reports the precise error later.
				if e.Bounds(d.total) != nil {
					d.invalid++
				}
				d.entryPos += format.DirEntrySize
				d.remaining--
			}
			d.state = stateDone

		case stateDone:
			return Progress{Done: true}, d.dirErr
		}
	}
}

func (d *Driver) fail(err error) error {
	d.failed = err
	return err
}

// Header re-parses the header from the caller's buffer. Valid once Feed has
// moved past the header state; the driver itself never retains view memory.
func (d *Driver) Header(buf []byte) (format.Header, error) {
	if d.state == stateHeader {
		return format.Header{}, errors.New("x3f driver: header not parsed yet")
	}
	return format.ParseHeader(buf)
}

// Directory re-parses the directory from the caller's buffer. Valid once
// Feed has located it.
func (d *Driver) Directory(buf []byte) (format.Directory, error) {
	if d.state < stateDirectory {
		return format.Directory{}, errors.New("x3f driver: directory not located yet")
	}
	return format.ParseDirectory(buf, d.dirOff)
}

// Entries returns a lazy iterator over the directory entries. Valid in the
// Done state.
func (d *Driver) Entries(buf []byte) (format.EntryIter, error) {
	dir, err := d.Directory(buf)
	if err != nil {
		return format.EntryIter{}, err
	}
	return dir.Entries(), nil
}

// Invalid reports how many directory entries failed the payload bounds
// pre-check during the walk.
func (d *Driver) Invalid() int { return d.invalid }

// Done reports whether the driver reached the terminal state.
func (d *Driver) Done() bool { return d.state == stateDone }
