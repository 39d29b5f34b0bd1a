package geometry

import (
	"fmt"

	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// MaxDirectoryBlocks caps the number of blocks NewDirectory will allocate.
const MaxDirectoryBlocks = 1 << 16

// NewDirectory builds an Akita cache directory with the same set, way and
// block layout as the geometry.
func (g Geometry) NewDirectory() (*akitacache.DirectoryImpl, error) {
	numBlocks := g.totalSize / g.blockSize
	if numBlocks > MaxDirectoryBlocks {
		return nil, fmt.Errorf("geometry %s has %d blocks, directory limit is %d",
			g, numBlocks, MaxDirectoryBlocks)
	}

	return akitacache.NewDirectory(
		int(g.NumSets()),
		int(g.wayCount),
		int(g.blockSize),
		akitacache.NewLRUVictimFinder(),
	), nil
}
