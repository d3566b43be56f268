package types

// EntryKind classifies a directory entry after dispatch. Unknown tags are a
// valid kind, not an error: camera firmware revisions add entry types, and
// forward compatibility requires passing them through as opaque views.
type EntryKind int

const (
	// KindUnknown marks an entry whose type tag has no dedicated sub-parser.
	// The raw payload slice is still exposed.
	KindUnknown EntryKind = iota
	// KindPropertyList marks a PROP entry (name/value string pairs).
	KindPropertyList
	// KindMetadata marks a CAMF entry (camera calibration metadata block).
	KindMetadata
	// KindImage marks an IMAG/IMA2 entry (image plane, RAW or preview).
	KindImage
)

// String implements the Stringer interface for EntryKind.
func (k EntryKind) String() string {
	switch k {
	case KindPropertyList:
		return "property-list"
	case KindMetadata:
		return "metadata"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// ParseOptions bounds resource usage when parsing untrusted files. Counts
// declared inside the file are capped before any proportional work happens,
// so a hostile header cannot drive large loops.
type ParseOptions struct {
	// MaxEntries caps the directory entry count. 0 means DefaultMaxEntries.
	MaxEntries int

	// MaxProperties caps the pair count of a single property list.
	// 0 means DefaultMaxProperties.
	MaxProperties int

	// MaxMetaRecords caps the record count walked inside a single metadata
	// block. 0 means DefaultMaxMetaRecords.
	MaxMetaRecords int
}

// Defaults are generous: real cameras write a handful of directory entries
// and a few hundred properties.
const (
	DefaultMaxEntries     = 1024
	DefaultMaxProperties  = 1 << 16
	DefaultMaxMetaRecords = 1 << 16
)

// Normalized returns a copy with zero fields replaced by defaults.
func (o ParseOptions) Normalized() ParseOptions {
	if o.MaxEntries <= 0 {
		o.MaxEntries = DefaultMaxEntries
	}
	if o.MaxProperties <= 0 {
		o.MaxProperties = DefaultMaxProperties
	}
	if o.MaxMetaRecords <= 0 {
		o.MaxMetaRecords = DefaultMaxMetaRecords
	}
	return o
}

// DefaultParseOptions returns the standard limits.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{}.Normalized()
}
