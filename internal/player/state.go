package player

import (
	"sdfdig/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Viewpoint is the camera state fed in by the input layer each frame.
type Viewpoint struct {
	Position mgl32.Vec3
	Forward  mgl32.Vec3 // unit length
}

// Chunk returns the chunk the viewpoint stands in.
func (v Viewpoint) Chunk(chunkSize float32) world.ChunkCoord {
	return world.CoordFromPosition(v.Position, chunkSize)
}
