// Package format houses the low-level decoders for the SIGMA X3F RAW
// container format. The goal is to keep the parsing focused, zero-copy, and
// independent from the public API so higher-level packages can orchestrate
// the data in a more ergonomic form.
//
// All structural fields are little-endian. Four-byte tags are handled as the
// uint32 produced by reading their ASCII bytes little-endian, so "FOVb"
// becomes 0x62564F46.
package format

// File and section signatures.
const (
	// FOVbSignature is the four-byte signature at the start of every X3F file.
	FOVbSignature uint32 = 0x62564F46 // "FOVb"

	// SECdSignature identifies the directory section.
	SECdSignature uint32 = 0x64434553 // "SECd"

	// SECpSignature identifies a property list section payload.
	SECpSignature uint32 = 0x70434553 // "SECp"

	// SECiSignature identifies an image section payload.
	SECiSignature uint32 = 0x69434553 // "SECi"

	// SECcSignature identifies a CAMF (camera metadata) section payload.
	SECcSignature uint32 = 0x63434553 // "SECc"
)

// Directory entry type tags. Older Merrill-era files tag entries with the
// payload signatures (SECp/SECi/SECc) directly, so the dispatcher accepts
// both spellings.
const (
	// EntryPROP tags a property list entry.
	EntryPROP uint32 = 0x504F5250 // "PROP"

	// EntryIMAG tags an image entry (RAW or thumbnail).
	EntryIMAG uint32 = 0x47414D49 // "IMAG"

	// EntryIMA2 tags a processed-for-preview image entry. Readers treat it
	// exactly like IMAG.
	EntryIMA2 uint32 = 0x32414D49 // "IMA2"

	// EntryCAMF tags a camera metadata entry.
	EntryCAMF uint32 = 0x464D4143 // "CAMF"
)

// Format versions, encoded as major<<16 | minor.
const (
	Version20 uint32 = 2<<16 | 0
	Version21 uint32 = 2<<16 | 1
	Version22 uint32 = 2<<16 | 2
	Version23 uint32 = 2<<16 | 3
	Version30 uint32 = 3<<16 | 0
)

// File header layout. The fixed part is common to every supported version;
// versions 2.1+ append the extended identification fields.
//
//	Offset  Size  Field
//	0x00    4     'F' 'O' 'V' 'b'
//	0x04    4     Format version (minor | major<<16)
//	0x08    16    Unique image identifier (not UUID compatible)
//	0x18    4     Mark bits
//	0x1C    4     Image columns (unrotated)
//	0x20    4     Image rows (unrotated)
//	0x24    4     Clockwise rotation: 0, 90, 180, 270
//	--- version >= 2.1 ---
//	0x28    32    White balance label (ASCIIZ)
//	--- version >= 2.3 ---
//	0x48    32    Color mode label (ASCIIZ)
//	--- then ---
//	        k     Extended data type tags, one byte per slot
//	        4*k   Extended data values, one uint32 per slot
const (
	HdrSignatureOffset = 0x00
	HdrVersionOffset   = 0x04
	HdrUniqueIDOffset  = 0x08
	HdrMarkBitsOffset  = 0x18
	HdrColumnsOffset   = 0x1C
	HdrRowsOffset      = 0x20
	HdrRotationOffset  = 0x24
	HdrExtendedOffset  = 0x28

	// HdrFixedSize is the size of the version-independent header part.
	HdrFixedSize = HdrExtendedOffset // 0x28 (40 bytes)

	// UniqueIDSize is the size of the unique image identifier.
	UniqueIDSize = 16

	// LabelSize is the size of the ASCIIZ white balance and color mode labels.
	LabelSize = 32

	// ExtSlots2x and ExtSlots3x are the extended data slot counts for 2.x
	// and 3.x headers.
	ExtSlots2x = 32
	ExtSlots3x = 64
)

// Directory layout. The directory lives near the end of the file and is
// located through a pointer stored in the final four bytes.
//
//	Offset  Size  Field
//	0x00    4     'S' 'E' 'C' 'd'
//	0x04    4     Directory format version
//	0x08    4     Entry count
//	0x0C    ...   Entries, 12 bytes each: offset, length, type tag
const (
	DirPointerSize = 4

	DirSignatureOffset = 0x00
	DirVersionOffset   = 0x04
	DirCountOffset     = 0x08
	DirEntriesOffset   = 0x0C

	DirHeaderSize = DirEntriesOffset // 0x0C (12 bytes)

	DirEntryOffsetOffset = 0x00
	DirEntryLengthOffset = 0x04
	DirEntryTypeOffset   = 0x08
	DirEntrySize         = 12
)

// Property list section layout (SECp).
//
//	Offset  Size  Field
//	0x00    4     'S' 'E' 'C' 'p'
//	0x04    4     Property list format version
//	0x08    4     Entry count
//	0x0C    4     Character format (0 = CHAR16 Unicode)
//	0x10    4     Reserved
//	0x14    4     Total name/value data length, in characters
//	0x18    ...   Pair table: count x {name offset, value offset}, offsets
//	              in characters into the string data that follows the table
const (
	PropSignatureOffset  = 0x00
	PropVersionOffset    = 0x04
	PropCountOffset      = 0x08
	PropCharFormatOffset = 0x0C
	PropReservedOffset   = 0x10
	PropDataLenOffset    = 0x14
	PropTableOffset      = 0x18

	PropHeaderSize = PropTableOffset // 0x18 (24 bytes)
	PropPairSize   = 8

	// PropCharFormatUnicode is the only documented character format: CHAR16
	// (UTF-16LE) with NUL terminators.
	PropCharFormatUnicode = 0
)

// CAMF section layout (SECc). The 16 parameter bytes at 0x0C are interpreted
// per CAMF type; the body structure is undocumented by Sigma and was
// reverse-engineered from camera output.
//
//	Offset  Size  Field
//	0x00    4     'S' 'E' 'C' 'c'
//	0x04    4     CAMF format version
//	0x08    4     CAMF type (2 plain, 4 and 5 compressed)
//	0x0C    16    Type parameters:
//	              type 2:    reserved, info type, info type version, crypt key
//	              type 4/5:  decoded size, decode bias, block size, block count
//	0x1C    ...   Body (record table for type 2, compressed stream otherwise)
const (
	CamfSignatureOffset = 0x00
	CamfVersionOffset   = 0x04
	CamfTypeOffset      = 0x08
	CamfParam0Offset    = 0x0C
	CamfParam1Offset    = 0x10
	CamfParam2Offset    = 0x14
	CamfParam3Offset    = 0x18
	CamfBodyOffset      = 0x1C

	CamfHeaderSize = CamfBodyOffset // 0x1C (28 bytes)

	CamfType2 uint32 = 2
	CamfType4 uint32 = 4
	CamfType5 uint32 = 5
)

// CAMF record layout (type 2 body). Records are packed back to back; every
// offset inside a record is relative to the record start.
//
//	Offset  Size  Field
//	0x00    4     Record tag: 'C' 'M' 'b' + kind byte
//	0x04    4     Record format version
//	0x08    4     Record size in bytes, including this header, 4-aligned
//	0x0C    4     Name offset (ASCIIZ)
//	0x10    4     Value offset
const (
	CamfRecTagOffset     = 0x00
	CamfRecVersionOffset = 0x04
	CamfRecSizeOffset    = 0x08
	CamfRecNameOffset    = 0x0C
	CamfRecValueOffset   = 0x10

	CamfRecHeaderSize = 0x14 // 20 bytes

	// CamfRecPrefix matches the low three bytes of every record tag ("CMb").
	CamfRecPrefix     uint32 = 0x00624D43
	CamfRecPrefixMask uint32 = 0x00FFFFFF

	// Record tags observed in camera output.
	CMbP uint32 = 0x50624D43 // "CMbP" property list
	CMbT uint32 = 0x54624D43 // "CMbT" text
	CMbM uint32 = 0x4D624D43 // "CMbM" matrix
)

// Image section layout (SECi).
//
//	Offset  Size  Field
//	0x00    4     'S' 'E' 'C' 'i'
//	0x04    4     Image format version
//	0x08    4     Kind of image data (2 = processed for preview)
//	0x0C    4     Data format tag
//	0x10    4     Image columns
//	0x14    4     Image rows
//	0x18    4     Row stride in bytes, 32-bit aligned; 0 = variable-length
//	              rows (Huffman and similar entropy-coded formats)
//	0x1C    ...   Pixel data
const (
	ImgSignatureOffset = 0x00
	ImgVersionOffset   = 0x04
	ImgKindOffset      = 0x08
	ImgFormatOffset    = 0x0C
	ImgColumnsOffset   = 0x10
	ImgRowsOffset      = 0x14
	ImgStrideOffset    = 0x18
	ImgDataOffset      = 0x1C

	ImgHeaderSize = ImgDataOffset // 0x1C (28 bytes)

	// ImgKindPreview marks processed-for-preview data (thumbnails and
	// embedded JPEGs). Other kind values are RAW sensor planes.
	ImgKindPreview uint32 = 2

	// Data format tags. Decoding any of these is outside this module; the
	// tags only label the borrowed data slice for downstream codecs.
	ImgFormatRGB24   uint32 = 3  // uncompressed 8/8/8 RGB rows
	ImgFormatHuffman uint32 = 11 // Huffman-encoded DPCM 8/8/8 RGB
	ImgFormatJPEG    uint32 = 18 // JPEG-compressed 8/8/8 RGB
	ImgFormatTRUE    uint32 = 30 // TRUE engine compressed RAW
	ImgFormatQuattro uint32 = 35 // Quattro compressed RAW
)
