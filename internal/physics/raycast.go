package physics

import (
	"math"

	"sdfdig/internal/profiling"
	"sdfdig/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// axisTolerance decides when two horizontal direction components count as
// equal, or when one counts as zero.
const axisTolerance = 1e-6

// DistanceField evaluates the signed distance at a point.
type DistanceField func(p mgl32.Vec3) (float32, error)

// MarchResult stores the result of a sphere-traced march.
type MarchResult struct {
	Position mgl32.Vec3
	Distance float32 // distance travelled from the origin
	Steps    int
	Hit      bool
}

// March sphere-traces a ray from origin along direction. It reports a hit as
// soon as the field is below epsilon and a miss once maxDist has been
// travelled. Every step advances by at least epsilon, so the march ends after
// at most maxDist/epsilon evaluations. A zero direction never hits.
func March(origin, direction mgl32.Vec3, maxDist, epsilon float32, field DistanceField) (MarchResult, error) {
	defer profiling.Track("physics.March")()

	result := MarchResult{Position: origin}
	if direction.LenSqr() < axisTolerance*axisTolerance {
		return result, nil
	}
	dir := direction.Normalize()

	var travelled float32
	for travelled < maxDist {
		pos := origin.Add(dir.Mul(travelled))
		step, err := field(pos)
		if err != nil {
			return MarchResult{}, err
		}
		result.Steps++
		if step < epsilon {
			result.Position = pos
			result.Distance = travelled
			result.Hit = true
			return result, nil
		}
		travelled += step
	}

	result.Position = origin.Add(dir.Mul(travelled))
	result.Distance = travelled
	return result, nil
}

// NextChunk returns the neighbouring chunk a ray leaving current along
// direction is heading for. Without a horizontal component the ray stays in
// current. Otherwise it steps along the dominant horizontal axis, or along
// both when they are equally strong.
func NextChunk(current world.ChunkCoord, direction mgl32.Vec3) world.ChunkCoord {
	ax := math.Abs(float64(direction.X()))
	az := math.Abs(float64(direction.Z()))
	stepX, stepZ := sign(direction.X()), sign(direction.Z())

	switch {
	case stepX == 0 && stepZ == 0:
		return current
	case math.Abs(ax-az) < axisTolerance:
		return world.ChunkCoord{X: current.X + stepX, Z: current.Z + stepZ}
	case ax > az:
		return world.ChunkCoord{X: current.X + stepX, Z: current.Z}
	default:
		return world.ChunkCoord{X: current.X, Z: current.Z + stepZ}
	}
}

func sign(v float32) int {
	switch {
	case v > axisTolerance:
		return 1
	case v < -axisTolerance:
		return -1
	}
	return 0
}
