package world

import (
	"fmt"

	"sdfdig/internal/profiling"
	"sdfdig/internal/sdf"
)

// ChunkStore owns every chunk of the session, indexed by coordinate.
// Chunks are created once on first access and never removed.
//
// The store is not safe for concurrent use; streaming and carving run one
// after another on the update goroutine.
type ChunkStore struct {
	chunks   map[ChunkCoord]*Chunk
	gen      TerrainGenerator
	modCount uint64 // Increases on any chunk add or edit
}

// NewChunkStore creates an empty store that populates new chunks with gen.
func NewChunkStore(gen TerrainGenerator) *ChunkStore {
	return &ChunkStore{
		chunks: make(map[ChunkCoord]*Chunk),
		gen:    gen,
	}
}

// Get returns the chunk at coord without creating it.
func (cs *ChunkStore) Get(coord ChunkCoord) (*Chunk, bool) {
	chunk, ok := cs.chunks[coord]
	return chunk, ok
}

// GetOrCreate returns the chunk at coord, generating it if missing.
// created reports whether this call generated the chunk.
func (cs *ChunkStore) GetOrCreate(coord ChunkCoord) (chunk *Chunk, created bool) {
	if chunk, ok := cs.chunks[coord]; ok {
		return chunk, false
	}

	chunk = NewChunk(coord)
	cs.gen.PopulateChunk(chunk)
	if len(chunk.Boxes) == 0 {
		panic(fmt.Sprintf("world: generator produced chunk %v without a box primitive", coord))
	}
	if len(chunk.Spheres) != 0 {
		panic(fmt.Sprintf("world: generator produced chunk %v with edits", coord))
	}

	cs.chunks[coord] = chunk
	cs.modCount++
	profiling.Count("world.ChunksCreated")
	return chunk, true
}

// ApplyEdit appends a sphere primitive to the chunk at coord.
func (cs *ChunkStore) ApplyEdit(coord ChunkCoord, s sdf.Sphere) error {
	chunk, ok := cs.chunks[coord]
	if !ok {
		return fmt.Errorf("apply edit at %v: %w", coord, ErrMissingChunk)
	}
	chunk.AddSphere(s)
	cs.modCount++
	profiling.Count("world.EditsApplied")
	return nil
}

// Len returns the number of resident chunks.
func (cs *ChunkStore) Len() int {
	return len(cs.chunks)
}

// GetModCount returns the number of creations and edits applied so far.
func (cs *ChunkStore) GetModCount() uint64 {
	return cs.modCount
}
