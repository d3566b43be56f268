package reader

import (
	"encoding/binary"

	"github.com/joshuapare/x3fkit/internal/format"
)

// fileBuilder assembles a synthetic X3F file: header, section payloads, then
// the directory and its pointer at the tail.
type fileBuilder struct {
	buf     []byte
	entries []format.DirectoryEntry
}

func newFileBuilder(version uint32) *fileBuilder {
	b := make([]byte, format.HeaderLen(version))
	binary.LittleEndian.PutUint32(b[format.HdrSignatureOffset:], format.FOVbSignature)
	binary.LittleEndian.PutUint32(b[format.HdrVersionOffset:], version)
	copy(b[format.HdrUniqueIDOffset:], "0123456789abcdef")
	binary.LittleEndian.PutUint32(b[format.HdrColumnsOffset:], 4704)
	binary.LittleEndian.PutUint32(b[format.HdrRowsOffset:], 3136)
	binary.LittleEndian.PutUint32(b[format.HdrRotationOffset:], 0)
	if version >= format.Version21 {
		copy(b[format.HdrExtendedOffset:], "Auto\x00")
	}
	if version >= format.Version23 {
		copy(b[format.HdrExtendedOffset+format.LabelSize:], "Standard\x00")
	}
	return &fileBuilder{buf: b}
}

// addSection appends a payload and records its directory entry.
func (fb *fileBuilder) addSection(tag uint32, payload []byte) {
	fb.entries = append(fb.entries, format.DirectoryEntry{
		Offset: uint32(len(fb.buf)),
		Length: uint32(len(payload)),
		Type:   tag,
	})
	fb.buf = append(fb.buf, payload...)
}

// build appends the directory (declaring count entries, defaulting to the
// recorded ones) and the trailing pointer, and returns the complete file.
func (fb *fileBuilder) build() []byte {
	return fb.buildDeclaring(uint32(len(fb.entries)))
}

func (fb *fileBuilder) buildDeclaring(count uint32) []byte {
	b := fb.buf
	dirOff := uint32(len(b))
	head := make([]byte, format.DirHeaderSize)
	binary.LittleEndian.PutUint32(head[format.DirSignatureOffset:], format.SECdSignature)
	binary.LittleEndian.PutUint32(head[format.DirVersionOffset:], format.Version20)
	binary.LittleEndian.PutUint32(head[format.DirCountOffset:], count)
	b = append(b, head...)
	for _, e := range fb.entries {
		rec := make([]byte, format.DirEntrySize)
		binary.LittleEndian.PutUint32(rec[format.DirEntryOffsetOffset:], e.Offset)
		binary.LittleEndian.PutUint32(rec[format.DirEntryLengthOffset:], e.Length)
		binary.LittleEndian.PutUint32(rec[format.DirEntryTypeOffset:], e.Type)
		b = append(b, rec...)
	}
	var ptr [format.DirPointerSize]byte
	binary.LittleEndian.PutUint32(ptr[:], dirOff)
	return append(b, ptr[:]...)
}

// utf16le encodes an ASCII string as UTF-16LE without a terminator.
func utf16le(s string) []byte {
	out := make([]byte, len(s)*2)
	for i := 0; i < len(s); i++ {
		out[i*2] = s[i]
	}
	return out
}

// propPayload builds a SECp section payload from name/value pairs.
func propPayload(pairs [][2]string) []byte {
	var data []byte
	var offsets []uint32
	for _, p := range pairs {
		for _, s := range p {
			offsets = append(offsets, uint32(len(data)/2))
			data = append(data, utf16le(s)...)
			data = append(data, 0, 0)
		}
	}
	b := make([]byte, format.PropHeaderSize)
	binary.LittleEndian.PutUint32(b[format.PropSignatureOffset:], format.SECpSignature)
	binary.LittleEndian.PutUint32(b[format.PropVersionOffset:], format.Version20)
	binary.LittleEndian.PutUint32(b[format.PropCountOffset:], uint32(len(pairs)))
	binary.LittleEndian.PutUint32(b[format.PropCharFormatOffset:], format.PropCharFormatUnicode)
	binary.LittleEndian.PutUint32(b[format.PropDataLenOffset:], uint32(len(data)/2))
	for _, off := range offsets {
		var rec [4]byte
		binary.LittleEndian.PutUint32(rec[:], off)
		b = append(b, rec[:]...)
	}
	return append(b, data...)
}

// camfPayload builds a SECc type 2 payload holding one CMbT record.
func camfPayload(name string, value []byte) []byte {
	b := make([]byte, format.CamfHeaderSize)
	binary.LittleEndian.PutUint32(b[format.CamfSignatureOffset:], format.SECcSignature)
	binary.LittleEndian.PutUint32(b[format.CamfVersionOffset:], format.Version20)
	binary.LittleEndian.PutUint32(b[format.CamfTypeOffset:], format.CamfType2)

	nameOff := uint32(format.CamfRecHeaderSize)
	valueOff := nameOff + uint32(len(name)) + 1
	size := valueOff + uint32(len(value))
	for size%4 != 0 {
		size++
	}
	rec := make([]byte, size)
	binary.LittleEndian.PutUint32(rec[format.CamfRecTagOffset:], format.CMbT)
	binary.LittleEndian.PutUint32(rec[format.CamfRecVersionOffset:], format.Version20)
	binary.LittleEndian.PutUint32(rec[format.CamfRecSizeOffset:], size)
	binary.LittleEndian.PutUint32(rec[format.CamfRecNameOffset:], nameOff)
	binary.LittleEndian.PutUint32(rec[format.CamfRecValueOffset:], valueOff)
	copy(rec[nameOff:], name)
	copy(rec[valueOff:], value)
	return append(b, rec...)
}

// imagePayload builds a SECi payload with a fixed-stride pixel area.
func imagePayload(cols, rows, stride uint32) []byte {
	b := make([]byte, format.ImgHeaderSize)
	binary.LittleEndian.PutUint32(b[format.ImgSignatureOffset:], format.SECiSignature)
	binary.LittleEndian.PutUint32(b[format.ImgVersionOffset:], format.Version20)
	binary.LittleEndian.PutUint32(b[format.ImgKindOffset:], format.ImgKindPreview)
	binary.LittleEndian.PutUint32(b[format.ImgFormatOffset:], format.ImgFormatRGB24)
	binary.LittleEndian.PutUint32(b[format.ImgColumnsOffset:], cols)
	binary.LittleEndian.PutUint32(b[format.ImgRowsOffset:], rows)
	binary.LittleEndian.PutUint32(b[format.ImgStrideOffset:], stride)
	return append(b, make([]byte, stride*rows)...)
}

// sampleFile builds a representative file: one property list, one CAMF block,
// one image plane, one unknown section.
func sampleFile() []byte {
	fb := newFileBuilder(format.Version23)
	fb.addSection(format.EntryPROP, propPayload([][2]string{
		{"CAMMODEL", "SIGMA SD1"},
		{"SHUTTER", "1/250"},
	}))
	fb.addSection(format.EntryCAMF, camfPayload("SensorID", []byte{0x01, 0x02, 0x03, 0x04}))
	fb.addSection(format.EntryIMAG, imagePayload(4, 2, 12))
	fb.addSection(0x58585858, []byte{0xAA, 0xBB})
	return fb.build()
}
