package graphics

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"sdfdig/internal/sdf"
	"sdfdig/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/klauspost/compress/zstd"
)

func testSnapshot() world.Snapshot {
	return world.Snapshot{
		Center: world.ChunkCoord{X: 2, Z: -1},
		Boxes: []sdf.Box{
			{Center: mgl32.Vec3{0, -20, 0}, HalfExtents: mgl32.Vec3{32, 20, 32}},
			{Center: mgl32.Vec3{64, -20, 0}, HalfExtents: mgl32.Vec3{32, 20, 32}},
		},
		Spheres: []sdf.Sphere{
			{Center: mgl32.Vec3{1.5, 0, -3}, Radius: 0.5, Polarity: sdf.Subtractive},
		},
	}
}

func TestSetDataLayout(t *testing.T) {
	b := NewStorageBuffer()
	b.SetData(testSnapshot())

	if b.BoxCount() != 2 || b.SphereCount() != 1 {
		t.Fatalf("counts = %d boxes, %d spheres", b.BoxCount(), b.SphereCount())
	}
	if len(b.Boxes()) != 2*BoxStride || len(b.Spheres()) != SphereStride {
		t.Fatalf("byte lengths = %d, %d", len(b.Boxes()), len(b.Spheres()))
	}

	// Second box, center.x
	if got := math.Float32frombits(binary.LittleEndian.Uint32(b.Boxes()[BoxStride:])); got != 64 {
		t.Errorf("second box centre.x = %f, want 64", got)
	}
	// Sphere radius then polarity flag.
	if got := math.Float32frombits(binary.LittleEndian.Uint32(b.Spheres()[12:])); got != 0.5 {
		t.Errorf("sphere radius = %f, want 0.5", got)
	}
	if got := binary.LittleEndian.Uint32(b.Spheres()[16:]); got != 1 {
		t.Errorf("sphere polarity = %d, want 1", got)
	}
}

func TestSetDataReplaces(t *testing.T) {
	b := NewStorageBuffer()
	b.SetData(testSnapshot())
	b.SetData(world.Snapshot{Boxes: testSnapshot().Boxes[:1]})

	if b.BoxCount() != 1 || b.SphereCount() != 0 {
		t.Errorf("contents not replaced: %d boxes, %d spheres", b.BoxCount(), b.SphereCount())
	}
	if b.Version() != 2 {
		t.Errorf("version = %d, want 2", b.Version())
	}
}

func TestCaptureRoundTrip(t *testing.T) {
	b := NewStorageBuffer()
	want := testSnapshot()
	b.SetData(want)

	var buf bytes.Buffer
	if err := WriteCapture(&buf, b); err != nil {
		t.Fatalf("WriteCapture: %v", err)
	}
	got, err := ReadCapture(&buf)
	if err != nil {
		t.Fatalf("ReadCapture: %v", err)
	}
	if got.Center != want.Center || len(got.Boxes) != 2 || len(got.Spheres) != 1 {
		t.Fatalf("capture = %+v", got)
	}
	if got.Boxes[1] != want.Boxes[1] || got.Spheres[0] != want.Spheres[0] {
		t.Errorf("primitives differ: %+v vs %+v", got, want)
	}
}

func compressed(t *testing.T, payload []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := enc.Write(payload); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestReadCaptureRejectsGarbage(t *testing.T) {
	if _, err := ReadCapture(bytes.NewReader([]byte("not a capture"))); err == nil {
		t.Errorf("expected an error for garbage input")
	}

	bad := compressed(t, []byte("XXXX0000000000000000"))
	if _, err := ReadCapture(bytes.NewReader(bad)); !errors.Is(err, ErrBadCapture) {
		t.Errorf("expected ErrBadCapture for bad magic, got %v", err)
	}

	short := compressed(t, append([]byte("SDF1"), make([]byte, 8)...))
	if _, err := ReadCapture(bytes.NewReader(short)); !errors.Is(err, ErrBadCapture) {
		t.Errorf("expected ErrBadCapture for a truncated header, got %v", err)
	}

	// A header claiming far more boxes than the stream carries.
	var hdr bytes.Buffer
	binary.Write(&hdr, binary.LittleEndian, captureHeader{Magic: captureMagic, BoxCount: 0xFFFFFFFF})
	huge := compressed(t, hdr.Bytes())
	if _, err := ReadCapture(bytes.NewReader(huge)); !errors.Is(err, ErrBadCapture) {
		t.Errorf("expected ErrBadCapture for an oversized box count, got %v", err)
	}

	hdr.Reset()
	binary.Write(&hdr, binary.LittleEndian, captureHeader{Magic: captureMagic, SphereCount: 0xFFFFFFFF})
	huge = compressed(t, hdr.Bytes())
	if _, err := ReadCapture(bytes.NewReader(huge)); !errors.Is(err, ErrBadCapture) {
		t.Errorf("expected ErrBadCapture for an oversized sphere count, got %v", err)
	}
}

func TestEmptyCapture(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCapture(&buf, NewStorageBuffer()); err != nil {
		t.Fatal(err)
	}
	snap, err := ReadCapture(&buf)
	if err != nil {
		t.Fatalf("ReadCapture: %v", err)
	}
	if len(snap.Boxes) != 0 || len(snap.Spheres) != 0 {
		t.Errorf("empty capture decoded to %+v", snap)
	}
}
