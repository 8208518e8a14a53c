package graphics

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"sdfdig/internal/world"

	"github.com/klauspost/compress/zstd"
)

// captureMagic opens every capture stream.
var captureMagic = [4]byte{'S', 'D', 'F', '1'}

// maxCaptureMemory bounds the decoded size of a capture stream.
const maxCaptureMemory = 256 << 20

// ErrBadCapture is returned when a capture stream is malformed.
var ErrBadCapture = errors.New("graphics: malformed capture")

// captureHeader precedes the packed arrays.
type captureHeader struct {
	Magic       [4]byte
	CenterX     int32
	CenterZ     int32
	BoxCount    uint32
	SphereCount uint32
}

// WriteCapture writes the buffer's current contents to w as a zstd stream.
func WriteCapture(w io.Writer, b *StorageBuffer) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	hdr := captureHeader{
		Magic:       captureMagic,
		CenterX:     int32(b.center.X),
		CenterZ:     int32(b.center.Z),
		BoxCount:    uint32(b.BoxCount()),
		SphereCount: uint32(b.SphereCount()),
	}
	if err := binary.Write(enc, binary.LittleEndian, hdr); err != nil {
		enc.Close()
		return err
	}
	if _, err := enc.Write(b.boxes); err != nil {
		enc.Close()
		return err
	}
	if _, err := enc.Write(b.spheres); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// ReadCapture decodes a stream written by WriteCapture.
func ReadCapture(r io.Reader) (world.Snapshot, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderMaxMemory(maxCaptureMemory))
	if err != nil {
		return world.Snapshot{}, err
	}
	defer dec.Close()

	var hdr captureHeader
	if err := binary.Read(dec, binary.LittleEndian, &hdr); err != nil {
		return world.Snapshot{}, fmt.Errorf("%w: header: %v", ErrBadCapture, err)
	}
	if hdr.Magic != captureMagic {
		return world.Snapshot{}, fmt.Errorf("%w: magic %q", ErrBadCapture, hdr.Magic[:])
	}
	// Counts come from the stream, so buffers grow only as data arrives.
	var boxes, spheres bytes.Buffer
	if _, err := io.CopyN(&boxes, dec, int64(hdr.BoxCount)*BoxStride); err != nil {
		return world.Snapshot{}, fmt.Errorf("%w: boxes: %v", ErrBadCapture, err)
	}
	if _, err := io.CopyN(&spheres, dec, int64(hdr.SphereCount)*SphereStride); err != nil {
		return world.Snapshot{}, fmt.Errorf("%w: spheres: %v", ErrBadCapture, err)
	}
	return world.Snapshot{
		Center:  world.ChunkCoord{X: int(hdr.CenterX), Z: int(hdr.CenterZ)},
		Boxes:   UnpackBoxes(boxes.Bytes()),
		Spheres: UnpackSpheres(spheres.Bytes()),
	}, nil
}
