package world

import "errors"

var (
	// ErrMissingChunk is returned when an operation targets a chunk that was
	// never created. Callers must resolve the chunk through GetOrCreate first.
	ErrMissingChunk = errors.New("world: chunk not resident")

	// ErrInvariantViolation is returned when a chunk without any box is
	// evaluated. It indicates a construction bug.
	ErrInvariantViolation = errors.New("world: chunk has no box primitive")
)
