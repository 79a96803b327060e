package gui

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/horyzen/internal/geodesic"
)

const Title = "Black Hole Geodesics"

var (
	ColBg     = rl.NewColor(10, 10, 10, 255)
	ColAxis   = rl.NewColor(140, 140, 140, 255)
	ColPhoton = rl.NewColor(255, 170, 0, 60)
	ColText   = rl.NewColor(140, 140, 140, 255)
)

// palette cycles for more trajectories than colours.
var palette = []rl.Color{
	rl.NewColor(0, 255, 136, 255),
	rl.NewColor(0, 204, 255, 255),
	rl.NewColor(255, 0, 255, 255),
	rl.NewColor(255, 204, 0, 255),
	rl.NewColor(255, 68, 68, 255),
	rl.NewColor(170, 136, 255, 255),
}

type Options struct {
	Width, Height int
	AxisLength    float32
	PhotonSphere  bool
	Mass          float64
	MarkerRadius  float32
}

func (o *Options) defaults() {
	if o.Width <= 0 {
		o.Width = 1280
	}
	if o.Height <= 0 {
		o.Height = 720
	}
	if o.AxisLength <= 0 {
		o.AxisLength = 10
	}
	if o.Mass <= 0 {
		o.Mass = 1
	}
	if o.MarkerRadius <= 0 {
		o.MarkerRadius = 0.4
	}
}

// Scene is a raylib window showing one sphere per trajectory around the
// black hole. It satisfies viz.Scene.
type Scene struct {
	opts   Options
	camera rl.Camera3D
	points []geodesic.Point
}

// NewScene opens the window. Close must be called to release it.
func NewScene(opts Options) *Scene {
	opts.defaults()

	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), Title)
	rl.SetTargetFPS(60)

	return &Scene{
		opts: opts,
		camera: rl.NewCamera3D(
			rl.NewVector3(40, 25, 40),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			45.0,
			rl.CameraPerspective,
		),
	}
}

func (s *Scene) SetPoints(pts []geodesic.Point) {
	s.points = append(s.points[:0], pts...)
}

// toWorld maps physics z (spin axis) onto raylib's up axis.
func toWorld(p geodesic.Point) rl.Vector3 {
	return rl.NewVector3(float32(p.X), float32(p.Z), float32(p.Y))
}

func (s *Scene) Frame() (time.Duration, bool) {
	if rl.WindowShouldClose() {
		return 0, false
	}
	rl.UpdateCamera(&s.camera, rl.CameraOrbital)

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode3D(s.camera)
	s.drawAxes()
	for i, p := range s.points {
		rl.DrawSphere(toWorld(p), s.opts.MarkerRadius, palette[i%len(palette)])
	}
	if s.opts.PhotonSphere {
		rl.DrawSphere(rl.NewVector3(0, 0, 0), float32(3*s.opts.Mass), ColPhoton)
	}
	rl.EndMode3D()

	rl.DrawText(Title, 20, 20, 20, ColText)
	rl.DrawFPS(20, 48)
	rl.EndDrawing()

	return time.Duration(float64(rl.GetFrameTime()) * float64(time.Second)), true
}

func (s *Scene) drawAxes() {
	o := rl.NewVector3(0, 0, 0)
	l := s.opts.AxisLength
	rl.DrawLine3D(o, rl.NewVector3(l, 0, 0), ColAxis)
	rl.DrawLine3D(o, rl.NewVector3(0, 0, l), ColAxis)
	rl.DrawLine3D(o, rl.NewVector3(0, l, 0), ColAxis)
}

func (s *Scene) Close() error {
	rl.CloseWindow()
	return nil
}
