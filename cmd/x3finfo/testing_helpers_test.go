package main

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// writeSampleX3F writes a small synthetic X3F file and returns its path. The
// file is a 2.0 container with one property list, one CAMF block, and one
// RGB24 preview plane.
func writeSampleX3F(t *testing.T) string {
	t.Helper()

	u32 := func(b []byte, off int, v uint32) {
		binary.LittleEndian.PutUint32(b[off:], v)
	}
	utf16 := func(s string) []byte {
		out := make([]byte, 0, len(s)*2+2)
		for i := 0; i < len(s); i++ {
			out = append(out, s[i], 0)
		}
		return append(out, 0, 0)
	}

	head := make([]byte, 40)
	u32(head, 0, 0x62564F46) // "FOVb"
	u32(head, 4, 2<<16)      // version 2.0
	u32(head, 28, 64)        // columns
	u32(head, 32, 48)        // rows

	strings := append(utf16("CAMMODEL"), utf16("SIGMA DP2")...)
	prop := make([]byte, 24+8)
	u32(prop, 0, 0x70434553) // "SECp"
	u32(prop, 8, 1)          // one pair
	u32(prop, 20, uint32(len(strings)/2))
	u32(prop, 28, 9) // value at char offset 9, name at 0
	prop = append(prop, strings...)

	rec := make([]byte, 24)
	u32(rec, 0, 0x54624D43) // "CMbT"
	u32(rec, 8, 24)         // record size
	u32(rec, 12, 20)        // name offset
	u32(rec, 16, 23)        // value offset
	copy(rec[20:], "ID\x00")
	camf := make([]byte, 28)
	u32(camf, 0, 0x63434553) // "SECc"
	u32(camf, 8, 2)          // type 2
	camf = append(camf, rec...)

	img := make([]byte, 28)
	u32(img, 0, 0x69434553) // "SECi"
	u32(img, 8, 2)          // preview kind
	u32(img, 12, 3)         // RGB24
	u32(img, 16, 2)
	u32(img, 20, 2)
	u32(img, 24, 6)
	img = append(img, make([]byte, 12)...)

	file := head
	type section struct {
		tag     uint32
		payload []byte
	}
	sections := []section{
		{0x504F5250, prop}, // "PROP"
		{0x464D4143, camf}, // "CAMF"
		{0x47414D49, img},  // "IMAG"
	}
	var entries [][3]uint32
	for _, s := range sections {
		entries = append(entries, [3]uint32{uint32(len(file)), uint32(len(s.payload)), s.tag})
		file = append(file, s.payload...)
	}

	dirOff := uint32(len(file))
	dir := make([]byte, 12+12*len(entries))
	u32(dir, 0, 0x64434553) // "SECd"
	u32(dir, 8, uint32(len(entries)))
	for i, e := range entries {
		u32(dir, 12+12*i, e[0])
		u32(dir, 12+12*i+4, e[1])
		u32(dir, 12+12*i+8, e[2])
	}
	file = append(file, dir...)

	var ptr [4]byte
	binary.LittleEndian.PutUint32(ptr[:], dirOff)
	file = append(file, ptr[:]...)

	path := filepath.Join(t.TempDir(), "sample.x3f")
	if err := os.WriteFile(path, file, 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	runErr := fn()

	w.Close()
	os.Stdout = origStdout
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read captured output: %v", err)
	}
	return string(out), runErr
}
