package player

import (
	"fmt"

	"sdfdig/internal/config"
	"sdfdig/internal/physics"
	"sdfdig/internal/profiling"
	"sdfdig/internal/sdf"
	"sdfdig/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// DigResult describes the outcome of one carve attempt. A miss is not an
// error: Hit is false and no edit was made.
type DigResult struct {
	Hit      bool
	Position mgl32.Vec3       // surface point that was carved
	Chunk    world.ChunkCoord // chunk that received the edit
	Distance float32
	Steps    int

	// Snapshot is the refreshed window around the viewpoint, set on a hit.
	Snapshot world.Snapshot
}

// Pickaxe carves spheres out of the terrain along a view ray.
type Pickaxe struct {
	store    *world.ChunkStore
	streamer *world.ChunkStreamer

	chunkSize float32
	maxDist   float32
	radius    float32
	epsilon   float32
}

// NewPickaxe creates a pickaxe editing store and refreshing through streamer.
func NewPickaxe(store *world.ChunkStore, streamer *world.ChunkStreamer, s config.Settings) *Pickaxe {
	return &Pickaxe{
		store:     store,
		streamer:  streamer,
		chunkSize: float32(s.World.ChunkSize),
		maxDist:   float32(s.Pickaxe.MaxDistance),
		radius:    float32(s.Pickaxe.IntersectRadius),
		epsilon:   float32(s.Pickaxe.CollisionEpsilon),
	}
}

// Dig marches from origin along direction and, on reaching a surface, removes
// a sphere of material there. The chunk under origin must be resident; the
// neighbouring chunk the ray heads into is consulted only if it already exists.
func (p *Pickaxe) Dig(origin, direction mgl32.Vec3) (DigResult, error) {
	defer profiling.Track("player.Dig")()

	current := world.CoordFromPosition(origin, p.chunkSize)
	currentChunk, ok := p.store.Get(current)
	if !ok {
		return DigResult{}, fmt.Errorf("dig from %v: %w", current, world.ErrMissingChunk)
	}
	overflowChunk, ok := p.store.Get(physics.NextChunk(current, direction))
	if !ok {
		overflowChunk = currentChunk
	}

	march, err := physics.March(origin, direction, p.maxDist, p.epsilon, func(pos mgl32.Vec3) (float32, error) {
		return world.EvaluatePair(pos, currentChunk, overflowChunk)
	})
	if err != nil {
		return DigResult{}, fmt.Errorf("dig from %v: %w", current, err)
	}
	result := DigResult{
		Position: march.Position,
		Distance: march.Distance,
		Steps:    march.Steps,
	}
	if !march.Hit {
		profiling.Count("player.DigMisses")
		return result, nil
	}

	// The ray may have crossed into the neighbour before hitting.
	target := world.CoordFromPosition(march.Position, p.chunkSize)
	edit := sdf.Sphere{Center: march.Position, Radius: p.radius, Polarity: sdf.Subtractive}
	if err := p.store.ApplyEdit(target, edit); err != nil {
		return DigResult{}, err
	}
	profiling.Count("player.DigHits")

	result.Hit = true
	result.Chunk = target
	result.Snapshot = p.streamer.ResidentWindow(current)
	return result, nil
}
