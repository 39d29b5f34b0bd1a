package decode

import (
	"fmt"

	akitacache "github.com/sarchlab/akita/v4/mem/cache"

	"github.com/sarchlab/cacheaddr/cache/geometry"
)

// PlacementChecker cross-checks decoded indices against the set an Akita
// cache directory of the same geometry would place the block in.
type PlacementChecker struct {
	geometry  geometry.Geometry
	directory *akitacache.DirectoryImpl
}

// NewPlacementChecker builds the directory for g.
func NewPlacementChecker(g geometry.Geometry) (*PlacementChecker, error) {
	dir, err := g.NewDirectory()
	if err != nil {
		return nil, fmt.Errorf("cannot build placement directory: %w", err)
	}

	return &PlacementChecker{geometry: g, directory: dir}, nil
}

// SetOf returns the set the directory maps addr's block to.
func (c *PlacementChecker) SetOf(addr uint32) (int, error) {
	blockAddr := (uint64(addr) / c.geometry.BlockSize()) * c.geometry.BlockSize()

	block := c.directory.FindVictim(blockAddr)
	if block == nil {
		return 0, fmt.Errorf("directory has no candidate block for 0x%08x", addr)
	}

	return block.SetID, nil
}

// Check returns an error when the directory disagrees with d.Index.
func (c *PlacementChecker) Check(d Decoded) error {
	setID, err := c.SetOf(d.Address)
	if err != nil {
		return err
	}

	if uint64(setID) != uint64(d.Index) {
		return fmt.Errorf("address 0x%08x: decoded index 0x%x, directory set 0x%x",
			d.Address, d.Index, setID)
	}

	return nil
}
