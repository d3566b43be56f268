package reader

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding/unicode"

	"github.com/joshuapare/x3fkit/internal/format"
)

// DecodeUTF16 converts UTF-16LE bytes (without terminator) into UTF-8.
// Property names and values use CHAR16 Unicode per the property list header.
func DecodeUTF16(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	if len(data)%2 != 0 {
		return "", errors.New("utf16 string has odd length")
	}
	// Fast path: pure-ASCII UTF-16 is just every other byte.
	if isASCII16(data) {
		out := make([]byte, len(data)/2)
		for i := range out {
			out[i] = data[i*2]
		}
		return string(out), nil
	}
	dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode UTF-16 string: %w", err)
	}
	return string(out), nil
}

// isASCII16 reports whether every code unit is below 0x80.
func isASCII16(data []byte) bool {
	for i := 0; i+1 < len(data); i += 2 {
		if data[i] >= 0x80 || data[i+1] != 0 {
			return false
		}
	}
	return true
}

// DecodeProperty decodes both sides of a property pair.
func DecodeProperty(p format.Property) (name, value string, err error) {
	if name, err = DecodeUTF16(p.NameRaw); err != nil {
		return "", "", fmt.Errorf("property name: %w", err)
	}
	if value, err = DecodeUTF16(p.ValueRaw); err != nil {
		return "", "", fmt.Errorf("property value: %w", err)
	}
	return name, value, nil
}

// LookupProperty returns the decoded value of the first pair named name.
// Duplicate names exist in camera output; callers that want every occurrence
// iterate the pairs themselves.
func LookupProperty(pl format.PropertyList, name string) (string, bool, error) {
	it := pl.Pairs()
	for {
		p, ok := it.Next()
		if !ok {
			return "", false, it.Err()
		}
		n, err := DecodeUTF16(p.NameRaw)
		if err != nil {
			return "", false, fmt.Errorf("property name: %w", err)
		}
		if n != name {
			continue
		}
		v, err := DecodeUTF16(p.ValueRaw)
		if err != nil {
			return "", false, fmt.Errorf("property value: %w", err)
		}
		return v, true, nil
	}
}

// Label converts a fixed-size ASCIIZ label field (white balance, color mode)
// into a string, trimming at the first NUL.
func Label(b []byte) string {
	for i := range b {
		if b[i] == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
