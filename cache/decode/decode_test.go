package decode_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cacheaddr/cache/decode"
	"github.com/sarchlab/cacheaddr/cache/geometry"
)

func mustResolve(total, block, ways uint64) geometry.Geometry {
	g, err := geometry.Resolve(total, block, ways)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return g
}

// allGeometries yields one geometry per (offset bits, tag boundary) pair,
// with the way count varied along the way.
func allGeometries() []geometry.Geometry {
	var gs []geometry.Geometry
	for blockBits := uint(0); blockBits <= 32; blockBits++ {
		for boundary := blockBits; boundary <= 32; boundary++ {
			wayBits := (blockBits + boundary) % 4
			g, err := geometry.Resolve(
				uint64(1)<<(boundary+wayBits),
				uint64(1)<<blockBits,
				uint64(1)<<wayBits,
			)
			Expect(err).NotTo(HaveOccurred())
			gs = append(gs, g)
		}
	}
	return gs
}

var edgeAddresses = []uint32{
	0x00000000, 0xFFFFFFFF, 0x80000000, 0x00000001,
	0x7FFFFFFF, 0xAAAAAAAA, 0x55555555, 0x0000277C, 0x00F44F74,
}

var _ = Describe("Decode", func() {
	var g geometry.Geometry

	BeforeEach(func() {
		g = mustResolve(4096, 32, 2)
	})

	It("should decode 0x0000277C", func() {
		d := decode.Decode(g, 0x0000277C)
		Expect(d.Address).To(Equal(uint32(0x277C)))
		Expect(d.Offset).To(Equal(uint32(0x277C & 0x1F)))
		Expect(d.Index).To(Equal(uint32((0x277C >> 5) & 0x3F)))
		Expect(d.Tag).To(Equal(uint32(0x277C >> 11)))

		Expect(d.Offset).To(Equal(uint32(0x1C)))
		Expect(d.Index).To(Equal(uint32(0x3B)))
		Expect(d.Tag).To(Equal(uint32(0x4)))
	})

	It("should decode 0x00F44F74", func() {
		d := decode.Decode(g, 0x00F44F74)
		Expect(d.Offset).To(Equal(uint32(0x14)))
		Expect(d.Index).To(Equal(uint32(0x3B)))
		Expect(d.Tag).To(Equal(uint32(0x1E89)))
	})

	It("should decode the all-ones address to full-width fields", func() {
		d := decode.Decode(g, 0xFFFFFFFF)
		Expect(d.Offset).To(Equal(uint32(0x1F)))
		Expect(d.Index).To(Equal(uint32(0x3F)))
		Expect(d.Tag).To(Equal(uint32(0x1FFFFF)))
	})

	It("should expose fields by name", func() {
		d := decode.Decode(g, 0x0000277C)
		Expect(d.Field(geometry.FieldOffset)).To(Equal(d.Offset))
		Expect(d.Field(geometry.FieldIndex)).To(Equal(d.Index))
		Expect(d.Field(geometry.FieldTag)).To(Equal(d.Tag))
	})

	It("should clear the offset in the block address", func() {
		d := decode.Decode(g, 0x0000277C)
		Expect(d.BlockAddress()).To(Equal(uint32(0x2760)))
	})

	Describe("Degenerate geometries", func() {
		It("should always give a zero tag when the tag boundary is bit 32", func() {
			g := mustResolve(1<<33, 64, 2)
			Expect(g.TagBoundaryBits()).To(Equal(uint(32)))

			for _, addr := range edgeAddresses {
				d := decode.Decode(g, addr)
				Expect(d.Tag).To(BeZero())
				Expect(d.Index).To(Equal(addr >> 6))
			}
		})

		It("should give a zero offset for single-byte blocks", func() {
			g := mustResolve(1024, 1, 1)
			for _, addr := range edgeAddresses {
				d := decode.Decode(g, addr)
				Expect(d.Offset).To(BeZero())
				Expect(d.Index).To(Equal(addr & 0x3FF))
				Expect(d.Tag).To(Equal(addr >> 10))
			}
		})

		It("should put every bit in the offset for 4GB blocks", func() {
			g := mustResolve(1<<32, 1<<32, 1)
			for _, addr := range edgeAddresses {
				d := decode.Decode(g, addr)
				Expect(d.Offset).To(Equal(addr))
				Expect(d.Index).To(BeZero())
				Expect(d.Tag).To(BeZero())
			}
		})
	})

	Describe("Properties", func() {
		var rng *rand.Rand

		BeforeEach(func() {
			rng = rand.New(rand.NewSource(42))
		})

		It("should reconstruct every address", func() {
			for _, g := range allGeometries() {
				addrs := append([]uint32{}, edgeAddresses...)
				for i := 0; i < 64; i++ {
					addrs = append(addrs, rng.Uint32())
				}

				for _, addr := range addrs {
					d := decode.Decode(g, addr)
					Expect(decode.Reconstruct(g, d)).To(Equal(addr),
						"geometry %s address 0x%08x", g, addr)
				}
			}
		})

		It("should keep every field within its width", func() {
			for _, g := range allGeometries() {
				for i := 0; i < 64; i++ {
					d := decode.Decode(g, rng.Uint32())
					for _, r := range g.Ranges() {
						Expect(uint64(d.Field(r.Field))).To(
							BeNumerically("<", uint64(1)<<r.Width),
							"geometry %s field %s", g, r.Field)
					}
				}
			}
		})
	})
})
