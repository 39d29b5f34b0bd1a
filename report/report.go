// Package report renders decoded cache addresses as text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/sarchlab/cacheaddr/cache/decode"
	"github.com/sarchlab/cacheaddr/cache/geometry"
)

const nibbles = geometry.AddressBits / 4

// Binary renders v as eight 4-bit groups, most significant first.
func Binary(v uint32) string {
	var sb strings.Builder
	sb.Grow(nibbles*5 - 1)

	for i := nibbles - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%04b", (v>>(uint(i)*4))&0xf)
		if i > 0 {
			sb.WriteByte(' ')
		}
	}

	return sb.String()
}

// Hex renders v as eight zero-padded lowercase hex digits.
func Hex(v uint32) string {
	return fmt.Sprintf("%08x", v)
}

// Reporter writes per-address reports for one geometry to a sink.
type Reporter struct {
	w        io.Writer
	geometry geometry.Geometry
}

// NewReporter creates a Reporter writing to w.
func NewReporter(w io.Writer, g geometry.Geometry) *Reporter {
	return &Reporter{w: w, geometry: g}
}

// WriteHeader prints the cache parameters and the bit range of each field.
func (r *Reporter) WriteHeader() error {
	g := r.geometry

	_, err := fmt.Fprintf(r.w, "%s: %d, %s: %d, %s: %d\n",
		geometry.ParamCacheSize, g.TotalSize(),
		geometry.ParamBlockSize, g.BlockSize(),
		geometry.ParamWayNum, g.WayCount())
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(r.w, "CACHE_TAG: %s, CACHE_IDX: %s, CACHE_OFS: %s\n\n",
		g.Range(geometry.FieldTag),
		g.Range(geometry.FieldIndex),
		g.Range(geometry.FieldOffset))

	return err
}

// Write prints the report block of one decoded address. Every field is
// rendered over the full 32 bits so it lines up under the address.
func (r *Reporter) Write(d decode.Decoded) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "addr: 0x%s %s\n", Hex(d.Address), Binary(d.Address))
	fmt.Fprintf(&sb, "tag: 0x%s, idx: 0x%s, ofs: 0x%s\n",
		Hex(d.Tag), Hex(d.Index), Hex(d.Offset))

	for _, f := range []geometry.Field{
		geometry.FieldTag, geometry.FieldIndex, geometry.FieldOffset,
	} {
		v := d.Field(f)
		fmt.Fprintf(&sb, "%s: %s %s\n", f.ShortName(), Hex(v), Binary(v))
	}
	sb.WriteByte('\n')

	_, err := io.WriteString(r.w, sb.String())
	return err
}

// WriteAll decodes and writes each address in order, stopping at the first
// write error.
func (r *Reporter) WriteAll(addrs []uint32) error {
	for _, addr := range addrs {
		if err := r.Write(decode.Decode(r.geometry, addr)); err != nil {
			return err
		}
	}
	return nil
}
