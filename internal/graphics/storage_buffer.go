package graphics

import (
	"encoding/binary"
	"math"

	"sdfdig/internal/profiling"
	"sdfdig/internal/sdf"
	"sdfdig/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Byte sizes of one packed primitive.
const (
	BoxStride    = 6 * 4 // center.xyz, half_extents.xyz
	SphereStride = 5 * 4 // center.xyz, radius, polarity (int32)
)

// StorageBuffer holds the packed primitive arrays a shader reads. SetData
// replaces both arrays wholesale; there is no incremental update.
type StorageBuffer struct {
	boxes   []byte
	spheres []byte
	center  world.ChunkCoord
	version uint64
}

// NewStorageBuffer creates an empty buffer.
func NewStorageBuffer() *StorageBuffer {
	return &StorageBuffer{}
}

// SetData packs snap into the buffer.
func (b *StorageBuffer) SetData(snap world.Snapshot) {
	defer profiling.Track("graphics.SetData")()
	b.boxes = PackBoxes(b.boxes[:0], snap.Boxes)
	b.spheres = PackSpheres(b.spheres[:0], snap.Spheres)
	b.center = snap.Center
	b.version++
}

// Boxes returns the packed box array.
func (b *StorageBuffer) Boxes() []byte { return b.boxes }

// Spheres returns the packed sphere array.
func (b *StorageBuffer) Spheres() []byte { return b.spheres }

// BoxCount returns the number of boxes in the buffer.
func (b *StorageBuffer) BoxCount() int { return len(b.boxes) / BoxStride }

// SphereCount returns the number of spheres in the buffer.
func (b *StorageBuffer) SphereCount() int { return len(b.spheres) / SphereStride }

// Center returns the chunk the current contents were streamed around.
func (b *StorageBuffer) Center() world.ChunkCoord { return b.center }

// Version increases with every SetData call.
func (b *StorageBuffer) Version() uint64 { return b.version }

// PackBoxes appends the little-endian layout of boxes to dst.
func PackBoxes(dst []byte, boxes []sdf.Box) []byte {
	for _, bx := range boxes {
		for _, f := range [6]float32{
			bx.Center.X(), bx.Center.Y(), bx.Center.Z(),
			bx.HalfExtents.X(), bx.HalfExtents.Y(), bx.HalfExtents.Z(),
		} {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
		}
	}
	return dst
}

// PackSpheres appends the little-endian layout of spheres to dst.
func PackSpheres(dst []byte, spheres []sdf.Sphere) []byte {
	for _, s := range spheres {
		for _, f := range [4]float32{s.Center.X(), s.Center.Y(), s.Center.Z(), s.Radius} {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
		}
		dst = binary.LittleEndian.AppendUint32(dst, uint32(s.Polarity))
	}
	return dst
}

// UnpackBoxes decodes a packed box array.
func UnpackBoxes(src []byte) []sdf.Box {
	out := make([]sdf.Box, 0, len(src)/BoxStride)
	for len(src) >= BoxStride {
		var f [6]float32
		for i := range f {
			f[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[i*4:]))
		}
		out = append(out, sdf.Box{
			Center:      mgl32.Vec3{f[0], f[1], f[2]},
			HalfExtents: mgl32.Vec3{f[3], f[4], f[5]},
		})
		src = src[BoxStride:]
	}
	return out
}

// UnpackSpheres decodes a packed sphere array.
func UnpackSpheres(src []byte) []sdf.Sphere {
	out := make([]sdf.Sphere, 0, len(src)/SphereStride)
	for len(src) >= SphereStride {
		var f [4]float32
		for i := range f {
			f[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[i*4:]))
		}
		out = append(out, sdf.Sphere{
			Center:   mgl32.Vec3{f[0], f[1], f[2]},
			Radius:   f[3],
			Polarity: sdf.Polarity(int32(binary.LittleEndian.Uint32(src[16:]))),
		})
		src = src[SphereStride:]
	}
	return out
}
