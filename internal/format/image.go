package format

import (
	"fmt"

	"github.com/joshuapare/x3fkit/internal/buf"
	"github.com/joshuapare/x3fkit/pkg/types"
)

// ImagePlane is a view over a SECi section: plane geometry plus the borrowed
// pixel payload. No pixel transformation happens here; the format tag tells
// a downstream codec what the bytes are.
type ImagePlane struct {
	Version   uint32
	Kind      uint32 // ImgKindPreview or a RAW kind
	Format    uint32 // ImgFormat* tag
	Columns   uint32
	Rows      uint32
	RowStride uint32 // bytes per row; 0 = variable-length rows

	// Data is the pixel payload, borrowed from the entry.
	Data []byte
}

// ParseImagePlane validates the SECi header of an image section payload and
// checks the declared geometry against the payload size.
func ParseImagePlane(data []byte) (ImagePlane, error) {
	if len(data) < ImgHeaderSize {
		return ImagePlane{}, &types.TruncatedError{Needed: ImgHeaderSize, Available: len(data)}
	}
	if buf.U32LE(data[ImgSignatureOffset:]) != SECiSignature {
		return ImagePlane{}, fmt.Errorf("image plane: %w", types.ErrBadMagic)
	}
	p := ImagePlane{
		Version:   buf.U32LE(data[ImgVersionOffset:]),
		Kind:      buf.U32LE(data[ImgKindOffset:]),
		Format:    buf.U32LE(data[ImgFormatOffset:]),
		Columns:   buf.U32LE(data[ImgColumnsOffset:]),
		Rows:      buf.U32LE(data[ImgRowsOffset:]),
		RowStride: buf.U32LE(data[ImgStrideOffset:]),
		Data:      data[ImgDataOffset:],
	}
	if p.RowStride != 0 {
		// stride * rows must fit the payload. Entropy-coded planes declare
		// stride 0 and are exempt; their length is only known after decode.
		total, ok := buf.MulOverflowSafe(int(p.RowStride), int(p.Rows))
		if !ok || total > len(p.Data) {
			return ImagePlane{}, &types.BoundsError{
				Offset: 0,
				Length: uint64(p.RowStride) * uint64(p.Rows),
				Limit:  uint64(len(p.Data)),
			}
		}
	}
	return p, nil
}

// Row returns row i of a fixed-stride plane as a borrow of Data.
func (p ImagePlane) Row(i int) ([]byte, error) {
	if p.RowStride == 0 || i < 0 || uint32(i) >= p.Rows {
		return nil, &types.BoundsError{
			Offset: uint64(i),
			Length: 1,
			Limit:  uint64(p.Rows),
		}
	}
	off := i * int(p.RowStride)
	return p.Data[off : off+int(p.RowStride)], nil
}
