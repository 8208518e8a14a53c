package player_test

import (
	"errors"
	"math"
	"testing"

	"sdfdig/internal/config"
	"sdfdig/internal/player"
	"sdfdig/internal/sdf"
	"sdfdig/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

type rig struct {
	store    *world.ChunkStore
	streamer *world.ChunkStreamer
	pickaxe  *player.Pickaxe
}

func newRig(t *testing.T, stream bool) rig {
	t.Helper()
	s := config.Default()
	store := world.NewChunkStore(world.NewFlatGenerator(float32(s.World.ChunkSize), float32(s.World.GroundDepth)))
	streamer := world.NewChunkStreamer(store, float32(s.World.ChunkSize), s.World.LoadSquareRadius)
	if stream {
		streamer.Start()
	}
	return rig{store: store, streamer: streamer, pickaxe: player.NewPickaxe(store, streamer, s)}
}

func TestDigStraightDown(t *testing.T) {
	r := newRig(t, true)
	origin := mgl32.Vec3{0, 3, 0}
	down := mgl32.Vec3{0, -1, 0}

	res, err := r.pickaxe.Dig(origin, down)
	if err != nil {
		t.Fatalf("Dig: %v", err)
	}
	if !res.Hit {
		t.Fatalf("expected a hit")
	}
	if math.Abs(float64(res.Position.Y())) > 0.001 {
		t.Errorf("hit at %v, want y=0", res.Position)
	}
	if res.Chunk != (world.ChunkCoord{}) {
		t.Errorf("edit landed in %v, want (0,0)", res.Chunk)
	}

	chunk, _ := r.store.Get(world.ChunkCoord{})
	if len(chunk.Spheres) != 1 {
		t.Fatalf("expected one carve, got %d", len(chunk.Spheres))
	}
	if chunk.Spheres[0].Polarity != sdf.Subtractive || chunk.Spheres[0].Radius != 0.5 {
		t.Errorf("carve = %+v", chunk.Spheres[0])
	}
	d, err := world.EvaluateSingle(res.Position, chunk)
	if err != nil {
		t.Fatal(err)
	}
	if d < 0 {
		t.Errorf("carved point still solid: %f", d)
	}
	if len(res.Snapshot.Spheres) != 1 || len(res.Snapshot.Boxes) != 49 {
		t.Errorf("refreshed snapshot has %d boxes, %d spheres", len(res.Snapshot.Boxes), len(res.Snapshot.Spheres))
	}

	// A second dig along the same ray reaches the bottom of the first hole.
	res, err = r.pickaxe.Dig(origin, down)
	if err != nil {
		t.Fatalf("second Dig: %v", err)
	}
	if !res.Hit {
		t.Fatalf("expected a second hit")
	}
	if math.Abs(float64(res.Position.Y()+0.5)) > 0.001 {
		t.Errorf("second hit at %v, want y=-0.5", res.Position)
	}
}

func TestDigMissLeavesTerrainAlone(t *testing.T) {
	r := newRig(t, true)
	before := r.store.GetModCount()

	res, err := r.pickaxe.Dig(mgl32.Vec3{0, 10, 0}, mgl32.Vec3{0, -1, 0})
	if err != nil {
		t.Fatalf("a miss must not be an error: %v", err)
	}
	if res.Hit {
		t.Fatalf("ground is out of reach, got hit at %v", res.Position)
	}
	if r.store.GetModCount() != before {
		t.Errorf("a miss changed the store")
	}
	if len(res.Snapshot.Boxes) != 0 {
		t.Errorf("a miss must not refresh the buffer")
	}
}

func TestDigCrossesIntoNeighbour(t *testing.T) {
	r := newRig(t, true)
	origin := mgl32.Vec3{30.5, 1, 0}
	dir := mgl32.Vec3{1, -0.5, 0}.Normalize()

	res, err := r.pickaxe.Dig(origin, dir)
	if err != nil {
		t.Fatalf("Dig: %v", err)
	}
	if !res.Hit {
		t.Fatalf("expected a hit")
	}
	if res.Chunk != (world.ChunkCoord{X: 1}) {
		t.Fatalf("edit landed in %v, want (1,0)", res.Chunk)
	}
	origChunk, _ := r.store.Get(world.ChunkCoord{})
	hitChunk, _ := r.store.Get(world.ChunkCoord{X: 1})
	if len(origChunk.Spheres) != 0 || len(hitChunk.Spheres) != 1 {
		t.Errorf("spheres: origin chunk %d, hit chunk %d", len(origChunk.Spheres), len(hitChunk.Spheres))
	}
	if res.Snapshot.Center != (world.ChunkCoord{}) {
		t.Errorf("refresh centred on %v, want the viewpoint chunk", res.Snapshot.Center)
	}
}

func TestDigWithoutNeighbourFallsBack(t *testing.T) {
	r := newRig(t, false)
	r.store.GetOrCreate(world.ChunkCoord{})

	res, err := r.pickaxe.Dig(mgl32.Vec3{0, 2, 0}, mgl32.Vec3{0.2, -1, 0}.Normalize())
	if err != nil {
		t.Fatalf("Dig: %v", err)
	}
	if !res.Hit {
		t.Fatalf("expected a hit")
	}
	if r.store.Len() != 1 {
		t.Errorf("probing must not create chunks, store has %d", r.store.Len())
	}
}

func TestDigFromMissingChunk(t *testing.T) {
	r := newRig(t, false)
	_, err := r.pickaxe.Dig(mgl32.Vec3{500, 2, 0}, mgl32.Vec3{0, -1, 0})
	if !errors.Is(err, world.ErrMissingChunk) {
		t.Fatalf("expected ErrMissingChunk, got %v", err)
	}
	if r.store.Len() != 0 {
		t.Errorf("failed dig created %d chunks", r.store.Len())
	}
}
