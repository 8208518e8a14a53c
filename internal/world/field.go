package world

import (
	"fmt"

	"sdfdig/internal/sdf"

	"github.com/go-gl/mathgl/mgl32"
)

// EvaluateSingle returns the signed distance from p to the terrain described
// by one chunk. Boxes and additive spheres are unioned first; subtractive
// spheres are carved out of the result afterwards.
func EvaluateSingle(p mgl32.Vec3, c *Chunk) (float32, error) {
	if err := checkBoxes(c); err != nil {
		return 0, err
	}
	d := additive(p, c, c.Boxes[0].Distance(p))
	return subtractive(p, c, d), nil
}

// EvaluatePair treats two chunks as one merged field. It is used while a ray
// may be about to cross from a into its neighbour b. Passing the same chunk
// twice is equivalent to EvaluateSingle.
func EvaluatePair(p mgl32.Vec3, a, b *Chunk) (float32, error) {
	if err := checkBoxes(a); err != nil {
		return 0, err
	}
	if err := checkBoxes(b); err != nil {
		return 0, err
	}
	d := additive(p, a, a.Boxes[0].Distance(p))
	if b != a {
		d = additive(p, b, d)
	}
	d = subtractive(p, a, d)
	if b != a {
		d = subtractive(p, b, d)
	}
	return d, nil
}

func checkBoxes(c *Chunk) error {
	if len(c.Boxes) == 0 {
		return fmt.Errorf("evaluate chunk %v: %w", c.Coord, ErrInvariantViolation)
	}
	return nil
}

// additive folds every box and additive sphere of c into d.
func additive(p mgl32.Vec3, c *Chunk, d float32) float32 {
	for i := range c.Boxes {
		d = sdf.Union(d, c.Boxes[i].Distance(p))
	}
	for i := range c.Spheres {
		if c.Spheres[i].Polarity == sdf.Additive {
			d = sdf.Union(d, c.Spheres[i].Distance(p))
		}
	}
	return d
}

func subtractive(p mgl32.Vec3, c *Chunk, d float32) float32 {
	for i := range c.Spheres {
		if c.Spheres[i].Polarity == sdf.Subtractive {
			d = sdf.Subtract(d, c.Spheres[i].Distance(p))
		}
	}
	return d
}
