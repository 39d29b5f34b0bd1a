// Package decode splits 32-bit byte addresses into the tag, index and offset
// fields of a cache geometry.
package decode

import (
	"github.com/sarchlab/cacheaddr/cache/geometry"
)

// Decoded is one address split into its cache fields.
type Decoded struct {
	Address uint32
	Tag     uint32
	Index   uint32
	Offset  uint32
}

// Decode extracts the tag, index and offset of addr under g.
func Decode(g geometry.Geometry, addr uint32) Decoded {
	offsetBits := g.OffsetBits()
	tagBoundary := g.TagBoundaryBits()

	return Decoded{
		Address: addr,
		Offset:  addr & mask(offsetBits),
		Index:   shr(addr, offsetBits) & mask(tagBoundary-offsetBits),
		Tag:     shr(addr, tagBoundary) & mask(geometry.AddressBits-tagBoundary),
	}
}

// Reconstruct reassembles the address from its fields.
func Reconstruct(g geometry.Geometry, d Decoded) uint32 {
	return shl(d.Tag, g.TagBoundaryBits()) |
		shl(d.Index, g.OffsetBits()) |
		d.Offset
}

// Field returns the value of a single field.
func (d Decoded) Field(f geometry.Field) uint32 {
	switch f {
	case geometry.FieldOffset:
		return d.Offset
	case geometry.FieldIndex:
		return d.Index
	case geometry.FieldTag:
		return d.Tag
	}
	return 0
}

// BlockAddress is the address with the offset bits cleared.
func (d Decoded) BlockAddress() uint32 {
	return d.Address - d.Offset
}

// mask returns width low bits set. Widths of 32 and above give all ones.
func mask(width uint) uint32 {
	if width >= geometry.AddressBits {
		return ^uint32(0)
	}
	return uint32(1)<<width - 1
}

// shr shifts right, yielding zero for shifts of 32 or more.
func shr(v uint32, n uint) uint32 {
	if n >= geometry.AddressBits {
		return 0
	}
	return v >> n
}

// shl shifts left, yielding zero for shifts of 32 or more.
func shl(v uint32, n uint) uint32 {
	if n >= geometry.AddressBits {
		return 0
	}
	return v << n
}
