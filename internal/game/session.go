package game

import (
	"fmt"
	"time"

	"sdfdig/internal/config"
	"sdfdig/internal/graphics"
	"sdfdig/internal/player"
	"sdfdig/internal/profiling"
	"sdfdig/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// FrameInput is what the camera and input layer hand over once per frame.
type FrameInput struct {
	Position mgl32.Vec3
	Forward  mgl32.Vec3
	// Carve is true on the frame the dig button went down.
	Carve bool
}

// FrameReport summarises what a frame changed.
type FrameReport struct {
	Streamed bool
	Dig      *player.DigResult
}

// UploadFunc receives the storage buffer after every upload.
type UploadFunc func(buf *graphics.StorageBuffer) error

// Session owns one digging world and drives it frame by frame.
type Session struct {
	ID       uuid.UUID
	Settings config.Settings

	Store     *world.ChunkStore
	Streamer  *world.ChunkStreamer
	Pickaxe   *player.Pickaxe
	Buffer    *graphics.StorageBuffer
	Viewpoint player.Viewpoint

	Frames  int
	started bool

	onUpload []UploadFunc
	log      *logrus.Entry
}

// NewSession wires a fresh world for the given settings. Nothing is streamed
// until Start or the first Frame.
func NewSession(s config.Settings, logger *logrus.Logger) (*Session, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	id := uuid.New()
	chunkSize := float32(s.World.ChunkSize)
	store := world.NewChunkStore(world.NewFlatGenerator(chunkSize, float32(s.World.GroundDepth)))
	streamer := world.NewChunkStreamer(store, chunkSize, s.World.LoadSquareRadius)

	return &Session{
		ID:        id,
		Settings:  s,
		Store:     store,
		Streamer:  streamer,
		Pickaxe:   player.NewPickaxe(store, streamer, s),
		Buffer:    graphics.NewStorageBuffer(),
		Viewpoint: player.Viewpoint{Forward: mgl32.Vec3{0, 0, -1}},
		log:       logger.WithField("session", id.String()),
	}, nil
}

// OnUpload registers fn to run after each buffer upload.
func (s *Session) OnUpload(fn UploadFunc) {
	s.onUpload = append(s.onUpload, fn)
}

// Start streams the window around the origin chunk and uploads it.
func (s *Session) Start() error {
	if s.started {
		return nil
	}
	s.started = true
	snap := s.Streamer.Start()
	s.log.WithFields(logrus.Fields{
		"chunks": s.Store.Len(),
		"radius": s.Streamer.Radius(),
		"boxes":  len(snap.Boxes),
	}).Info("world streamed around origin")
	return s.upload(snap)
}

// Frame applies one frame of input: it re-streams when the viewpoint enters
// another chunk and digs when a carve was requested. A failed dig abandons
// the carve for this frame and is returned to the caller.
func (s *Session) Frame(in FrameInput) (FrameReport, error) {
	profiling.ResetFrame()
	start := time.Now()
	defer func() {
		if d := time.Since(start); s.Settings.SlowFrameMs > 0 && d > s.Settings.SlowFrame() {
			s.log.Warnf("Slow frame: %v. Top tasks: %s", d, profiling.TopN(5))
		}
	}()

	if err := s.Start(); err != nil {
		return FrameReport{}, err
	}
	s.Frames++
	s.Viewpoint = player.Viewpoint{Position: in.Position, Forward: in.Forward}

	var report FrameReport
	if snap, ok := s.Streamer.Update(in.Position); ok {
		report.Streamed = true
		s.log.WithFields(logrus.Fields{
			"center": snap.Center.String(),
			"chunks": s.Store.Len(),
		}).Debug("viewpoint crossed into a new chunk")
		if err := s.upload(snap); err != nil {
			return report, err
		}
	}

	if !in.Carve {
		return report, nil
	}
	res, err := s.Pickaxe.Dig(in.Position, in.Forward)
	if err != nil {
		s.log.WithError(err).Error("carve abandoned")
		return report, fmt.Errorf("frame %d: %w", s.Frames, err)
	}
	report.Dig = &res
	if !res.Hit {
		s.log.Debug("nothing in reach")
		return report, nil
	}
	s.log.WithFields(logrus.Fields{
		"chunk":     res.Chunk.String(),
		"viewpoint": s.Viewpoint.Chunk(float32(s.Settings.World.ChunkSize)).String(),
		"position":  fmt.Sprintf("%.3f,%.3f,%.3f", res.Position.X(), res.Position.Y(), res.Position.Z()),
		"steps":     res.Steps,
	}).Info("carved")
	return report, s.upload(res.Snapshot)
}

func (s *Session) upload(snap world.Snapshot) error {
	s.Buffer.SetData(snap)
	for _, fn := range s.onUpload {
		if err := fn(s.Buffer); err != nil {
			return fmt.Errorf("upload listener: %w", err)
		}
	}
	return nil
}
