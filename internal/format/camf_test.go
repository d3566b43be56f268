package format

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/joshuapare/x3fkit/pkg/types"
)

// buildCamfHeader builds a SECc section head with the given type and params.
func buildCamfHeader(camfType uint32, params [4]uint32) []byte {
	b := make([]byte, CamfHeaderSize)
	binary.LittleEndian.PutUint32(b[CamfSignatureOffset:], SECcSignature)
	binary.LittleEndian.PutUint32(b[CamfVersionOffset:], Version20)
	binary.LittleEndian.PutUint32(b[CamfTypeOffset:], camfType)
	binary.LittleEndian.PutUint32(b[CamfParam0Offset:], params[0])
	binary.LittleEndian.PutUint32(b[CamfParam1Offset:], params[1])
	binary.LittleEndian.PutUint32(b[CamfParam2Offset:], params[2])
	binary.LittleEndian.PutUint32(b[CamfParam3Offset:], params[3])
	return b
}

// buildCamfRecord packs one CMb record with the name at the standard position
// and the value filling the rest, padded to 4 bytes.
func buildCamfRecord(tag uint32, name string, value []byte) []byte {
	nameOff := uint32(CamfRecHeaderSize)
	valueOff := nameOff + uint32(len(name)) + 1
	size := valueOff + uint32(len(value))
	for size%4 != 0 {
		size++
	}
	rec := make([]byte, size)
	binary.LittleEndian.PutUint32(rec[CamfRecTagOffset:], tag)
	binary.LittleEndian.PutUint32(rec[CamfRecVersionOffset:], Version20)
	binary.LittleEndian.PutUint32(rec[CamfRecSizeOffset:], size)
	binary.LittleEndian.PutUint32(rec[CamfRecNameOffset:], nameOff)
	binary.LittleEndian.PutUint32(rec[CamfRecValueOffset:], valueOff)
	copy(rec[nameOff:], name)
	copy(rec[valueOff:], value)
	return rec
}

func TestParseMetadataBlockType2(t *testing.T) {
	body := buildCamfRecord(CMbT, "SensorTemp", []byte("23C\x00"))
	body = append(body, buildCamfRecord(CMbM, "WhiteBalanceGains", make([]byte, 36))...)
	data := append(buildCamfHeader(CamfType2, [4]uint32{0, 7, 1, 0xDEADBEEF}), body...)

	m, err := ParseMetadataBlock(data)
	if err != nil {
		t.Fatalf("ParseMetadataBlock: %v", err)
	}
	if m.Type != CamfType2 || m.Compressed() {
		t.Fatalf("type=%d compressed=%v", m.Type, m.Compressed())
	}
	if m.InfoType() != 7 || m.InfoTypeVersion() != 1 || m.CryptKey() != 0xDEADBEEF {
		t.Fatalf("params = %d %d 0x%x", m.InfoType(), m.InfoTypeVersion(), m.CryptKey())
	}

	it := m.Records()
	r, ok := it.Next()
	if !ok {
		t.Fatalf("first record missing: %v", it.Err())
	}
	if r.Tag != CMbT || string(r.Name()) != "SensorTemp" {
		t.Fatalf("record 0 = tag 0x%x name %q", r.Tag, r.Name())
	}
	if !bytes.HasPrefix(r.Value(), []byte("23C")) {
		t.Fatalf("record 0 value = %x", r.Value())
	}

	r, ok = it.Next()
	if !ok || r.Tag != CMbM || string(r.Name()) != "WhiteBalanceGains" {
		t.Fatalf("record 1 = %+v ok=%v", r, ok)
	}
	if _, ok := it.Next(); ok || it.Err() != nil {
		t.Fatalf("iteration should end cleanly, err=%v", it.Err())
	}
}

func TestParseMetadataBlockCompressed(t *testing.T) {
	coded := []byte{0x10, 0x20, 0x30, 0x40, 0x50}
	data := append(buildCamfHeader(CamfType4, [4]uint32{8192, 511, 32, 16}), coded...)

	m, err := ParseMetadataBlock(data)
	if err != nil {
		t.Fatalf("ParseMetadataBlock: %v", err)
	}
	if !m.Compressed() {
		t.Fatalf("type 4 should report compressed")
	}
	if m.DecodedSize() != 8192 || m.DecodeBias() != 511 || m.BlockSize() != 32 || m.BlockCount() != 16 {
		t.Fatalf("params = %d %d %d %d",
			m.DecodedSize(), m.DecodeBias(), m.BlockSize(), m.BlockCount())
	}
	// Coded bytes pass through untouched; no decode attempt.
	if !bytes.Equal(m.Body(), coded) {
		t.Fatalf("body = %x", m.Body())
	}
	rit := m.Records()
	if _, ok := rit.Next(); ok {
		t.Fatalf("compressed block must not yield records")
	}
}

func TestCamfRecordsCapped(t *testing.T) {
	body := buildCamfRecord(CMbT, "A", nil)
	body = append(body, buildCamfRecord(CMbT, "B", nil)...)
	body = append(body, buildCamfRecord(CMbT, "C", nil)...)
	data := append(buildCamfHeader(CamfType2, [4]uint32{}), body...)
	m, err := ParseMetadataBlock(data)
	if err != nil {
		t.Fatalf("ParseMetadataBlock: %v", err)
	}

	it := m.RecordsCapped(2)
	var got int
	for {
		if _, ok := it.Next(); !ok {
			break
		}
		got++
	}
	if got != 2 || it.Err() == nil {
		t.Fatalf("capped iterator yielded %d records, err=%v", got, it.Err())
	}
}

func TestParseMetadataBlockBadMagic(t *testing.T) {
	data := buildCamfHeader(CamfType2, [4]uint32{})
	data[0] = 'X'
	if _, err := ParseMetadataBlock(data); !errors.Is(err, types.ErrBadMagic) {
		t.Fatalf("got %v, want ErrBadMagic", err)
	}
}

func TestCamfRecordBadPrefix(t *testing.T) {
	rec := buildCamfRecord(CMbT, "X", nil)
	rec[0] = 'Z'
	data := append(buildCamfHeader(CamfType2, [4]uint32{}), rec...)
	m, err := ParseMetadataBlock(data)
	if err != nil {
		t.Fatalf("ParseMetadataBlock: %v", err)
	}
	it := m.Records()
	if _, ok := it.Next(); ok {
		t.Fatalf("corrupt record should stop iteration")
	}
	if !errors.Is(it.Err(), types.ErrBadMagic) {
		t.Fatalf("iterator error = %v", it.Err())
	}
}

func TestCamfRecordBadSize(t *testing.T) {
	cases := []struct {
		name string
		size uint32
	}{
		{"below header", 8},
		{"unaligned", 21},
	}
	for _, c := range cases {
		rec := buildCamfRecord(CMbT, "X", nil)
		binary.LittleEndian.PutUint32(rec[CamfRecSizeOffset:], c.size)
		data := append(buildCamfHeader(CamfType2, [4]uint32{}), rec...)
		m, _ := ParseMetadataBlock(data)
		it := m.Records()
		if _, ok := it.Next(); ok {
			t.Fatalf("%s: corrupt size should stop iteration", c.name)
		}
		if !errors.Is(it.Err(), types.ErrOutOfBounds) {
			t.Fatalf("%s: iterator error = %v", c.name, it.Err())
		}
	}
}

func TestCamfRecordOverrunsBody(t *testing.T) {
	rec := buildCamfRecord(CMbT, "X", nil)
	binary.LittleEndian.PutUint32(rec[CamfRecSizeOffset:], uint32(len(rec))+40)
	data := append(buildCamfHeader(CamfType2, [4]uint32{}), rec...)
	m, _ := ParseMetadataBlock(data)
	it := m.Records()
	if _, ok := it.Next(); ok {
		t.Fatalf("overrunning record should stop iteration")
	}
	var be *types.BoundsError
	if !errors.As(it.Err(), &be) {
		t.Fatalf("iterator error = %v", it.Err())
	}
}

func TestCamfRecordOffsetsEscape(t *testing.T) {
	rec := buildCamfRecord(CMbT, "X", nil)
	binary.LittleEndian.PutUint32(rec[CamfRecNameOffset:], uint32(len(rec))+4)
	data := append(buildCamfHeader(CamfType2, [4]uint32{}), rec...)
	m, _ := ParseMetadataBlock(data)
	it := m.Records()
	if _, ok := it.Next(); ok {
		t.Fatalf("escaping offsets should stop iteration")
	}
	if !errors.Is(it.Err(), types.ErrOutOfBounds) {
		t.Fatalf("iterator error = %v", it.Err())
	}
}
