package x3f

import (
	"github.com/joshuapare/x3fkit/internal/format"
	"github.com/joshuapare/x3fkit/internal/reader"
	"github.com/joshuapare/x3fkit/pkg/types"
)

// Structural views (re-exported for convenience).
type (
	Header         = format.Header
	Directory      = format.Directory
	DirectoryEntry = format.DirectoryEntry
	EntryIter      = format.EntryIter
	EntryView      = format.EntryView
	PropertyList   = format.PropertyList
	Property       = format.Property
	PropIter       = format.PropIter
	MetadataBlock  = format.MetadataBlock
	MetaRecord     = format.MetaRecord
	RecordIter     = format.RecordIter
	ImagePlane     = format.ImagePlane
)

// Reader and driver (re-exported for convenience).
type (
	Reader   = reader.Reader
	Driver   = reader.Driver
	Progress = reader.Progress
)

// Options and classification kinds.
type (
	ParseOptions = types.ParseOptions
	EntryKind    = types.EntryKind
)

const (
	KindUnknown      = types.KindUnknown
	KindPropertyList = types.KindPropertyList
	KindMetadata     = types.KindMetadata
	KindImage        = types.KindImage
)

// Error categories. Detail fields travel on the concrete error types in
// pkg/types and are reachable through errors.As.
var (
	ErrBadMagic           = types.ErrBadMagic
	ErrUnsupportedVersion = types.ErrUnsupportedVersion
	ErrTruncated          = types.ErrTruncated
	ErrOutOfBounds        = types.ErrOutOfBounds
	ErrDirectoryTruncated = types.ErrDirectoryTruncated
	ErrClosed             = reader.ErrClosed
)

// Open memory-maps the X3F file at path and validates its header and
// directory. The zero ParseOptions value selects the default limits.
func Open(path string, opts ParseOptions) (*Reader, error) {
	return reader.Open(path, opts)
}

// OpenBytes parses an X3F file already resident in buf. The buffer must stay
// immutable while the reader or any view derived from it is live.
func OpenBytes(buf []byte, opts ParseOptions) (*Reader, error) {
	return reader.OpenBytes(buf, opts)
}

// NewDriver prepares an incremental sans-I/O parser for a file of the
// declared total size.
func NewDriver(total int64, opts ParseOptions) (*Driver, error) {
	return reader.NewDriver(total, opts)
}

// DecodeUTF16 converts UTF-16LE property bytes into UTF-8.
func DecodeUTF16(data []byte) (string, error) {
	return reader.DecodeUTF16(data)
}

// DecodeProperty decodes both sides of a property pair.
func DecodeProperty(p Property) (name, value string, err error) {
	return reader.DecodeProperty(p)
}

// LookupProperty returns the decoded value of the first pair named name.
func LookupProperty(pl PropertyList, name string) (string, bool, error) {
	return reader.LookupProperty(pl, name)
}

// Label converts a fixed-size ASCIIZ header label (white balance, color
// mode) into a string.
func Label(b []byte) string {
	return reader.Label(b)
}

// TagString renders a little-endian four-byte section tag for display.
func TagString(tag uint32) string {
	return format.TagString(tag)
}

// DefaultParseOptions returns the standard resource limits.
func DefaultParseOptions() ParseOptions {
	return types.DefaultParseOptions()
}
