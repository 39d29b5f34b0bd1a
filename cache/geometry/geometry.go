// Package geometry derives the tag/index/offset bit boundaries of a
// set-associative cache from its size, block size and way count.
package geometry

import (
	"fmt"
	"math/bits"
)

// AddressBits is the width of the addresses a Geometry partitions.
const AddressBits = 32

// ConfigurationError reports a cache configuration that cannot be turned
// into a valid bit partition of a 32-bit address.
type ConfigurationError struct {
	// Param is the configuration key that is at fault.
	Param string
	// Value is the offending value.
	Value uint64
	// Raw is the unparsed text, set when Value could not be read at all.
	Raw string
	// Reason describes what is wrong with it.
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Raw != "" {
		return fmt.Sprintf("invalid cache configuration: %s=%q: %s",
			e.Param, e.Raw, e.Reason)
	}
	return fmt.Sprintf("invalid cache configuration: %s=%d: %s",
		e.Param, e.Value, e.Reason)
}

// Geometry is a resolved cache geometry. It is immutable once built by
// Resolve.
type Geometry struct {
	totalSize uint64
	blockSize uint64
	wayCount  uint64

	offsetBits      uint
	tagBoundaryBits uint
}

// Resolve validates the configuration and computes the bit boundaries.
// All three parameters must be positive powers of two, the per-way capacity
// must hold at least one block, and the tag boundary must not exceed bit 32.
func Resolve(totalSize, blockSize, wayCount uint64) (Geometry, error) {
	if err := checkPowerOfTwo(ParamCacheSize, totalSize); err != nil {
		return Geometry{}, err
	}
	if err := checkPowerOfTwo(ParamBlockSize, blockSize); err != nil {
		return Geometry{}, err
	}
	if err := checkPowerOfTwo(ParamWayNum, wayCount); err != nil {
		return Geometry{}, err
	}

	if wayCount > totalSize {
		return Geometry{}, &ConfigurationError{
			Param:  ParamWayNum,
			Value:  wayCount,
			Reason: fmt.Sprintf("exceeds cache size %d", totalSize),
		}
	}

	offsetBits := log2(blockSize)
	tagBoundaryBits := log2(totalSize / wayCount)

	if tagBoundaryBits < offsetBits {
		return Geometry{}, &ConfigurationError{
			Param: ParamBlockSize,
			Value: blockSize,
			Reason: fmt.Sprintf("larger than per-way capacity %d",
				totalSize/wayCount),
		}
	}

	if tagBoundaryBits > AddressBits {
		return Geometry{}, &ConfigurationError{
			Param: ParamCacheSize,
			Value: totalSize,
			Reason: fmt.Sprintf("per-way capacity needs %d index bits, "+
				"more than a %d-bit address", tagBoundaryBits, AddressBits),
		}
	}

	return Geometry{
		totalSize:       totalSize,
		blockSize:       blockSize,
		wayCount:        wayCount,
		offsetBits:      offsetBits,
		tagBoundaryBits: tagBoundaryBits,
	}, nil
}

func checkPowerOfTwo(param string, v uint64) error {
	if v == 0 {
		return &ConfigurationError{Param: param, Value: v, Reason: "must be positive"}
	}
	if v&(v-1) != 0 {
		return &ConfigurationError{Param: param, Value: v, Reason: "not a power of two"}
	}
	return nil
}

// log2 of a power of two, exact.
func log2(v uint64) uint {
	return uint(bits.TrailingZeros64(v))
}

// TotalSize returns the cache capacity in bytes.
func (g Geometry) TotalSize() uint64 { return g.totalSize }

// BlockSize returns the cache line size in bytes.
func (g Geometry) BlockSize() uint64 { return g.blockSize }

// WayCount returns the associativity.
func (g Geometry) WayCount() uint64 { return g.wayCount }

// OffsetBits is the number of low address bits that select a byte within a
// block. The index starts at this bit.
func (g Geometry) OffsetBits() uint { return g.offsetBits }

// TagBoundaryBits is the bit position at which the tag starts.
func (g Geometry) TagBoundaryBits() uint { return g.tagBoundaryBits }

// IndexBits is the width of the set index.
func (g Geometry) IndexBits() uint { return g.tagBoundaryBits - g.offsetBits }

// TagBits is the width of the tag.
func (g Geometry) TagBits() uint { return AddressBits - g.tagBoundaryBits }

// NumSets returns the number of sets, 2^IndexBits.
func (g Geometry) NumSets() uint64 { return 1 << g.IndexBits() }

func (g Geometry) String() string {
	return fmt.Sprintf("%dB/%dB/%d-way (tag [31:%d], index %d bits, offset %d bits)",
		g.totalSize, g.blockSize, g.wayCount,
		g.tagBoundaryBits, g.IndexBits(), g.offsetBits)
}
