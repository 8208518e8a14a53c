package world

import (
	"fmt"
	"math"

	"sdfdig/internal/sdf"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkCoord identifies a square column of terrain on the XZ plane.
type ChunkCoord struct {
	X, Z int
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Z)
}

// Adjacent reports whether c and o differ by at most one in each axis.
func (c ChunkCoord) Adjacent(o ChunkCoord) bool {
	dx, dz := c.X-o.X, c.Z-o.Z
	return dx >= -1 && dx <= 1 && dz >= -1 && dz <= 1
}

// CoordFromPosition returns the chunk owning a world position. Chunks are
// centred on multiples of chunkSize, so the coordinate is the nearest
// integer (ties away from zero), not the floor.
func CoordFromPosition(p mgl32.Vec3, chunkSize float32) ChunkCoord {
	return ChunkCoord{
		X: int(math.Round(float64(p.X() / chunkSize))),
		Z: int(math.Round(float64(p.Z() / chunkSize))),
	}
}

// Chunk holds the primitives making up one square of terrain.
// Boxes are populated once by the generator; Spheres only grow through edits.
type Chunk struct {
	Coord   ChunkCoord
	Boxes   []sdf.Box
	Spheres []sdf.Sphere
}

// NewChunk creates an empty chunk at the specified coordinate.
func NewChunk(coord ChunkCoord) *Chunk {
	return &Chunk{Coord: coord}
}

// AddSphere appends an edit primitive.
func (c *Chunk) AddSphere(s sdf.Sphere) {
	c.Spheres = append(c.Spheres, s)
}
