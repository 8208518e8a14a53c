package main

import (
	"fmt"
	"os"

	"sdfdig/internal/game"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Script is a recorded sequence of camera frames replayed against a session.
type Script struct {
	Frames []ScriptFrame `yaml:"frames"`
}

// ScriptFrame is one input frame. Repeat replays it that many times; the
// carve flag only fires on the first repetition.
type ScriptFrame struct {
	Position [3]float32 `yaml:"position"`
	Forward  [3]float32 `yaml:"forward"`
	Carve    bool       `yaml:"carve"`
	Repeat   int        `yaml:"repeat"`
}

func loadScript(path string) (Script, error) {
	var s Script
	raw, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Inputs expands the script into per-frame inputs.
func (s Script) Inputs() []game.FrameInput {
	var out []game.FrameInput
	for _, f := range s.Frames {
		forward := mgl32.Vec3(f.Forward)
		if forward.LenSqr() > 0 {
			forward = forward.Normalize()
		}
		n := max(f.Repeat, 1)
		for i := 0; i < n; i++ {
			out = append(out, game.FrameInput{
				Position: mgl32.Vec3(f.Position),
				Forward:  forward,
				Carve:    f.Carve && i == 0,
			})
		}
	}
	return out
}

// defaultScript walks east across a chunk border, digging on the way.
func defaultScript() Script {
	return Script{Frames: []ScriptFrame{
		{Position: [3]float32{0, 2, 0}, Forward: [3]float32{0, -1, 0}, Carve: true},
		{Position: [3]float32{0, 2, 0}, Forward: [3]float32{0, -1, 0}, Carve: true},
		{Position: [3]float32{16, 2, 0}, Forward: [3]float32{0, 0, -1}, Repeat: 10},
		{Position: [3]float32{30.5, 1, 0}, Forward: [3]float32{1, -0.5, 0}, Carve: true},
		{Position: [3]float32{40, 2, 0}, Forward: [3]float32{1, -1, 0}, Carve: true},
		{Position: [3]float32{100, 2, 0}, Forward: [3]float32{0, -1, 0}, Carve: true},
	}}
}
