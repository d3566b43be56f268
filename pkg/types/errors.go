package types

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// Sentinels for errors.Is matching. The field-carrying error types below
// report these from their Is methods, so callers can branch on category
// without giving up the detail fields (reachable via errors.As).
var (
	// ErrBadMagic indicates a header or section signature mismatch. Fatal to
	// the parse (or to the one section, when raised by a sub-parser).
	ErrBadMagic = errors.New("x3f: signature mismatch")

	// ErrUnsupportedVersion indicates a recognized container with a format
	// version outside the supported range. Fatal for structural parsing.
	ErrUnsupportedVersion = errors.New("x3f: unsupported format version")

	// ErrTruncated indicates the input ended before a structural unit was
	// complete. Recoverable: supply more bytes and retry.
	ErrTruncated = errors.New("x3f: truncated input")

	// ErrOutOfBounds indicates a computed range exceeded the buffer or
	// overflowed. Fatal for the affected entry; sibling entries remain
	// independently parseable.
	ErrOutOfBounds = errors.New("x3f: range out of bounds")

	// ErrDirectoryTruncated indicates the directory declared more entries
	// than the file holds. The complete entries are still returned.
	ErrDirectoryTruncated = errors.New("x3f: directory truncated")
)

// TruncatedError reports that a structural unit needs more bytes than were
// available. Needed is the total byte count the unit requires measured from
// the start of its buffer, Available how many were present.
type TruncatedError struct {
	Needed    int
	Available int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("truncated: need %d bytes, have %d", e.Needed, e.Available)
}

// Is reports ErrTruncated so errors.Is can match the category.
func (e *TruncatedError) Is(target error) bool { return target == ErrTruncated }

// VersionError carries the raw version field of a container whose format
// version is not supported. The high 16 bits are the major version, the low
// 16 bits the minor.
type VersionError struct {
	Found uint32
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("unsupported format version %d.%d", e.Found>>16, e.Found&0xFFFF)
}

func (e *VersionError) Is(target error) bool { return target == ErrUnsupportedVersion }

// BoundsError reports an offset/length pair that escapes the limit it was
// validated against (usually the buffer length or the declared file size).
type BoundsError struct {
	Offset uint64
	Length uint64
	Limit  uint64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("range [%d, %d+%d) exceeds limit %d", e.Offset, e.Offset, e.Length, e.Limit)
}

func (e *BoundsError) Is(target error) bool { return target == ErrOutOfBounds }

// DirectoryTruncatedError reports a directory whose declared entry count
// overruns the file. Parsed entries (the complete ones) were still yielded
// before this error surfaced.
type DirectoryTruncatedError struct {
	Declared uint32
	Parsed   uint32
}

func (e *DirectoryTruncatedError) Error() string {
	return fmt.Sprintf("directory declares %d entries, only %d complete", e.Declared, e.Parsed)
}

func (e *DirectoryTruncatedError) Is(target error) bool { return target == ErrDirectoryTruncated }
