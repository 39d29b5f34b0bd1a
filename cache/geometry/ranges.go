package geometry

import "fmt"

// Field identifies one of the three address fields.
type Field int

const (
	FieldOffset Field = iota
	FieldIndex
	FieldTag
)

// Fields lists the address fields from the least significant one up.
var Fields = []Field{FieldOffset, FieldIndex, FieldTag}

// ShortName is the three-letter label used in reports.
func (f Field) ShortName() string {
	switch f {
	case FieldOffset:
		return "ofs"
	case FieldIndex:
		return "idx"
	case FieldTag:
		return "tag"
	}
	return "???"
}

func (f Field) String() string {
	switch f {
	case FieldOffset:
		return "offset"
	case FieldIndex:
		return "index"
	case FieldTag:
		return "tag"
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// Range is the run of address bits a field occupies.
type Range struct {
	Field Field
	Low   uint
	Width uint
}

// Empty reports whether the field has no bits at all.
func (r Range) Empty() bool { return r.Width == 0 }

// High returns the most significant bit of the range. It is only meaningful
// when the range is not empty.
func (r Range) High() uint { return r.Low + r.Width - 1 }

func (r Range) String() string {
	if r.Empty() {
		return "none"
	}
	return fmt.Sprintf("[%d:%d]", r.High(), r.Low)
}

// Range returns the bit range of a single field.
func (g Geometry) Range(f Field) Range {
	switch f {
	case FieldOffset:
		return Range{Field: f, Low: 0, Width: g.offsetBits}
	case FieldIndex:
		return Range{Field: f, Low: g.offsetBits, Width: g.IndexBits()}
	case FieldTag:
		return Range{Field: f, Low: g.tagBoundaryBits, Width: g.TagBits()}
	}
	panic(fmt.Sprintf("unknown field %d", int(f)))
}

// Ranges returns the offset, index and tag ranges in that order.
func (g Geometry) Ranges() []Range {
	ranges := make([]Range, 0, len(Fields))
	for _, f := range Fields {
		ranges = append(ranges, g.Range(f))
	}
	return ranges
}
