package config

import "fmt"

// WorldSettings describes chunk geometry and the streaming window.
type WorldSettings struct {
	// Edge length of a chunk in world units.
	ChunkSize float64 `yaml:"chunk_size" toml:"chunk_size"`
	// Half-width of the resident window, in chunks.
	LoadSquareRadius int `yaml:"load_square_radius" toml:"load_square_radius"`
	// Half-thickness of the ground slab; its top face sits at y=0.
	GroundDepth float64 `yaml:"ground_depth" toml:"ground_depth"`
}

// DefaultWorld returns the stock world settings.
func DefaultWorld() WorldSettings {
	return WorldSettings{
		ChunkSize:        64,
		LoadSquareRadius: 3,
		GroundDepth:      20,
	}
}

// Chunks returns how many chunks the resident window spans.
func (w WorldSettings) Chunks() int {
	side := 2*w.LoadSquareRadius + 1
	return side * side
}

func (w WorldSettings) validate() error {
	if w.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk_size must be positive, got %v", ErrInvalid, w.ChunkSize)
	}
	if w.LoadSquareRadius < 0 {
		return fmt.Errorf("%w: load_square_radius must not be negative, got %d", ErrInvalid, w.LoadSquareRadius)
	}
	if w.GroundDepth <= 0 {
		return fmt.Errorf("%w: ground_depth must be positive, got %v", ErrInvalid, w.GroundDepth)
	}
	return nil
}

func (w *WorldSettings) fillDefaults(d WorldSettings, radiusSet bool) {
	if w.ChunkSize == 0 {
		w.ChunkSize = d.ChunkSize
	}
	if !radiusSet {
		w.LoadSquareRadius = d.LoadSquareRadius
	}
	if w.GroundDepth == 0 {
		w.GroundDepth = d.GroundDepth
	}
}
