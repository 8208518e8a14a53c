package world

import (
	"sdfdig/internal/sdf"

	"github.com/go-gl/mathgl/mgl32"
)

// TerrainGenerator fills a freshly created chunk with its base primitives.
type TerrainGenerator interface {
	PopulateChunk(c *Chunk)
}

// FlatGenerator produces flat ground: one slab per chunk whose top face sits
// at y=0. Neighbouring slabs share faces, so the ground tiles seamlessly.
type FlatGenerator struct {
	chunkSize   float32
	groundDepth float32
}

// NewFlatGenerator creates a generator for chunks of the given edge length.
// Each slab is centred groundDepth below zero with half-height groundDepth.
func NewFlatGenerator(chunkSize, groundDepth float32) *FlatGenerator {
	return &FlatGenerator{chunkSize: chunkSize, groundDepth: groundDepth}
}

// PopulateChunk adds the ground slab.
func (g *FlatGenerator) PopulateChunk(c *Chunk) {
	c.Boxes = append(c.Boxes, sdf.Box{
		Center: mgl32.Vec3{
			float32(c.Coord.X) * g.chunkSize,
			-g.groundDepth,
			float32(c.Coord.Z) * g.chunkSize,
		},
		HalfExtents: mgl32.Vec3{g.chunkSize / 2, g.groundDepth, g.chunkSize / 2},
	})
}
