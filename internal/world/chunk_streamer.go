package world

import (
	"sdfdig/internal/profiling"
	"sdfdig/internal/sdf"

	"github.com/go-gl/mathgl/mgl32"
)

// Snapshot is the flattened primitive set handed to the renderer. It replaces
// the renderer's previous buffer contents wholesale.
type Snapshot struct {
	Center  ChunkCoord
	Boxes   []sdf.Box
	Spheres []sdf.Sphere
}

// ChunkStreamer keeps a square window of chunks resident around the viewpoint
// and flattens it for the renderer.
type ChunkStreamer struct {
	store     *ChunkStore
	chunkSize float32
	radius    int

	center  ChunkCoord
	started bool
}

// NewChunkStreamer creates a streamer over store. radius is the Chebyshev
// half-width of the window in chunks.
func NewChunkStreamer(store *ChunkStore, chunkSize float32, radius int) *ChunkStreamer {
	return &ChunkStreamer{
		store:     store,
		chunkSize: chunkSize,
		radius:    radius,
	}
}

// Start performs the initial flatten around the origin chunk.
func (cs *ChunkStreamer) Start() Snapshot {
	return cs.flattenAround(ChunkCoord{})
}

// Update flattens the window again if position lies in a different chunk than
// the last flatten. The second result reports whether a flatten happened.
func (cs *ChunkStreamer) Update(position mgl32.Vec3) (Snapshot, bool) {
	coord := CoordFromPosition(position, cs.chunkSize)
	if cs.started && coord == cs.center {
		return Snapshot{}, false
	}
	return cs.flattenAround(coord), true
}

// Refresh re-flattens around the current centre, e.g. after an edit.
func (cs *ChunkStreamer) Refresh() Snapshot {
	return cs.flattenAround(cs.center)
}

// Center returns the chunk the last flatten was centred on.
func (cs *ChunkStreamer) Center() ChunkCoord {
	return cs.center
}

// Radius returns the window half-width in chunks.
func (cs *ChunkStreamer) Radius() int {
	return cs.radius
}

func (cs *ChunkStreamer) flattenAround(center ChunkCoord) Snapshot {
	cs.center = center
	cs.started = true
	return cs.ResidentWindow(center)
}

// ResidentWindow makes sure every chunk within the window around center
// exists and returns their primitives in scan order (X outer, Z inner).
func (cs *ChunkStreamer) ResidentWindow(center ChunkCoord) Snapshot {
	defer profiling.Track("world.ResidentWindow")()
	side := 2*cs.radius + 1
	snap := Snapshot{
		Center: center,
		Boxes:  make([]sdf.Box, 0, side*side),
	}
	for dx := -cs.radius; dx <= cs.radius; dx++ {
		for dz := -cs.radius; dz <= cs.radius; dz++ {
			chunk, _ := cs.store.GetOrCreate(ChunkCoord{X: center.X + dx, Z: center.Z + dz})
			snap.Boxes = append(snap.Boxes, chunk.Boxes...)
			snap.Spheres = append(snap.Spheres, chunk.Spheres...)
		}
	}
	profiling.Count("world.Flattens")
	return snap
}
