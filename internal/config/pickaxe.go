package config

import "fmt"

// PickaxeSettings controls the carve search and the size of each carve.
type PickaxeSettings struct {
	// How far a carve ray searches for a surface.
	MaxDistance float64 `yaml:"max_distance" toml:"max_distance"`
	// Radius of the sphere removed on a hit.
	IntersectRadius float64 `yaml:"intersect_radius" toml:"intersect_radius"`
	// March termination tolerance.
	CollisionEpsilon float64 `yaml:"collision_epsilon" toml:"collision_epsilon"`
}

// DefaultPickaxe returns the stock pickaxe settings.
func DefaultPickaxe() PickaxeSettings {
	return PickaxeSettings{
		MaxDistance:      5,
		IntersectRadius:  0.5,
		CollisionEpsilon: 0.001,
	}
}

// The march only ever merges one neighbouring chunk, so both the reach and
// the carve must stay below a chunk's edge length.
func (p PickaxeSettings) validate(chunkSize float64) error {
	if p.MaxDistance <= 0 || p.MaxDistance >= chunkSize {
		return fmt.Errorf("%w: max_distance must be in (0, %v), got %v", ErrInvalid, chunkSize, p.MaxDistance)
	}
	if p.IntersectRadius <= 0 || p.IntersectRadius >= chunkSize {
		return fmt.Errorf("%w: intersect_radius must be in (0, %v), got %v", ErrInvalid, chunkSize, p.IntersectRadius)
	}
	if p.CollisionEpsilon <= 0 {
		return fmt.Errorf("%w: collision_epsilon must be positive, got %v", ErrInvalid, p.CollisionEpsilon)
	}
	return nil
}

func (p *PickaxeSettings) fillDefaults(d PickaxeSettings) {
	if p.MaxDistance == 0 {
		p.MaxDistance = d.MaxDistance
	}
	if p.IntersectRadius == 0 {
		p.IntersectRadius = d.IntersectRadius
	}
	if p.CollisionEpsilon == 0 {
		p.CollisionEpsilon = d.CollisionEpsilon
	}
}
