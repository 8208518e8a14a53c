package sdf

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Polarity tags a sphere as adding material or carving it away.
type Polarity int32

const (
	Additive    Polarity = 0
	Subtractive Polarity = 1
)

func (p Polarity) String() string {
	if p == Subtractive {
		return "subtractive"
	}
	return "additive"
}

// Box is an axis-aligned solid. It is always unioned into the field.
type Box struct {
	Center      mgl32.Vec3
	HalfExtents mgl32.Vec3
}

// Sphere is either unioned in or carved out depending on its polarity.
type Sphere struct {
	Center   mgl32.Vec3
	Radius   float32
	Polarity Polarity
}

// Distance returns the signed distance from p to the box surface.
func (b Box) Distance(p mgl32.Vec3) float32 {
	return DistanceToBox(p, b.Center, b.HalfExtents)
}

// Distance returns the signed distance from p to the sphere surface,
// ignoring polarity.
func (s Sphere) Distance(p mgl32.Vec3) float32 {
	return DistanceToSphere(p, s.Center, s.Radius)
}

// DistanceToBox is the exact Euclidean distance to an axis-aligned box,
// negative inside.
func DistanceToBox(p, center, halfExtents mgl32.Vec3) float32 {
	d := p.Sub(center)
	q := mgl32.Vec3{
		abs32(d.X()) - halfExtents.X(),
		abs32(d.Y()) - halfExtents.Y(),
		abs32(d.Z()) - halfExtents.Z(),
	}
	outside := mgl32.Vec3{max(q.X(), 0), max(q.Y(), 0), max(q.Z(), 0)}
	inside := min(max(q.X(), q.Y(), q.Z()), 0)
	return outside.Len() + inside
}

// DistanceToSphere returns |p-center| - radius.
func DistanceToSphere(p, center mgl32.Vec3, radius float32) float32 {
	return p.Sub(center).Len() - radius
}

// Union combines two additive distances.
func Union(a, b float32) float32 {
	return min(a, b)
}

// Subtract carves the solid at distance d out of the field value a.
func Subtract(a, d float32) float32 {
	return max(a, -d)
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
