package format

import (
	"github.com/joshuapare/x3fkit/pkg/types"
)

// DirectoryEntry describes one region of the file: a 4-byte type tag plus
// the payload's absolute offset and length. Entries are opaque until
// dispatched through Classify.
type DirectoryEntry struct {
	Offset uint32
	Length uint32
	Type   uint32
}

// Bounds validates offset+length against limit (the buffer length or the
// declared file size). The sum is computed in uint64 so two uint32 fields
// can never overflow the check itself. This runs exactly once per entry,
// before dispatch; sub-parsers trust the outer bound and only validate their
// internal structure.
func (e DirectoryEntry) Bounds(limit int64) error {
	if limit < 0 {
		limit = 0
	}
	end := uint64(e.Offset) + uint64(e.Length)
	if end > uint64(limit) {
		return &types.BoundsError{
			Offset: uint64(e.Offset),
			Length: uint64(e.Length),
			Limit:  uint64(limit),
		}
	}
	return nil
}

// Data returns the entry's payload as a borrow of b after the single outer
// bounds check.
func (e DirectoryEntry) Data(b []byte) ([]byte, error) {
	if err := e.Bounds(int64(len(b))); err != nil {
		return nil, err
	}
	return b[e.Offset : uint64(e.Offset)+uint64(e.Length)], nil
}

// Tag renders the entry's type tag as the four ASCII bytes it was read from,
// with non-printable bytes escaped. Display only.
func (e DirectoryEntry) Tag() string {
	return TagString(e.Type)
}

// TagString renders a little-endian four-byte tag for display.
func TagString(tag uint32) string {
	var out []byte
	for i := 0; i < 4; i++ {
		c := byte(tag >> (8 * i))
		if c >= 0x20 && c < 0x7F {
			out = append(out, c)
		} else {
			out = append(out, '.')
		}
	}
	return string(out)
}

// EntryView is the dispatch result for one directory entry: exactly one of
// the typed payload views is populated according to Kind. Unknown tags carry
// the raw payload slice so callers can still inspect or persist them.
type EntryView struct {
	Kind  types.EntryKind
	Entry DirectoryEntry

	Prop  *PropertyList
	Meta  *MetadataBlock
	Image *ImagePlane

	// Raw is the borrowed payload of a KindUnknown entry.
	Raw []byte
}

// Classify dispatches a directory entry into its typed payload view. The
// outer bounds check happens here, once; a failure is scoped to this entry
// and leaves sibling entries parseable. Tags without a sub-parser yield a
// KindUnknown view, never an error.
func Classify(e DirectoryEntry, b []byte) (EntryView, error) {
	data, err := e.Data(b)
	if err != nil {
		return EntryView{}, err
	}
	view := EntryView{Kind: types.KindUnknown, Entry: e}

	switch e.Type {
	case EntryPROP, SECpSignature:
		pl, err := ParsePropertyList(data)
		if err != nil {
			return EntryView{}, err
		}
		view.Kind = types.KindPropertyList
		view.Prop = &pl
	case EntryCAMF, SECcSignature:
		mb, err := ParseMetadataBlock(data)
		if err != nil {
			return EntryView{}, err
		}
		view.Kind = types.KindMetadata
		view.Meta = &mb
	case EntryIMAG, EntryIMA2, SECiSignature:
		ip, err := ParseImagePlane(data)
		if err != nil {
			return EntryView{}, err
		}
		view.Kind = types.KindImage
		view.Image = &ip
	default:
		view.Raw = data
	}
	return view, nil
}
