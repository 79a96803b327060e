package viz

import (
	"time"

	"github.com/san-kum/horyzen/internal/geodesic"
)

const (
	DefaultPeriod = 20 * time.Millisecond
	DefaultStep   = 10
)

// Scene is anything that can show one marker per trajectory.
type Scene interface {
	SetPoints(pts []geodesic.Point)
	// Frame draws one frame and reports the wall time it took and
	// whether the scene is still open.
	Frame() (time.Duration, bool)
	Close() error
}

// TrailScene is a Scene that also draws the recent path of each
// trajectory. TrailLength is the number of rows it wants per trajectory.
type TrailScene interface {
	Scene
	TrailLength() int
	SetTrails(trails [][]geodesic.Point)
}

type Options struct {
	Period time.Duration
	Step   int
}

// Viewport advances a Buffer on a fixed period and pushes the current
// points into a Scene.
type Viewport struct {
	buf    *Buffer
	scene  Scene
	period time.Duration
	step   int

	acc   time.Duration
	ticks int
}

func NewViewport(buf *Buffer, scene Scene, opts Options) *Viewport {
	if opts.Period <= 0 {
		opts.Period = DefaultPeriod
	}
	if opts.Step <= 0 {
		opts.Step = DefaultStep
	}
	return &Viewport{buf: buf, scene: scene, period: opts.Period, step: opts.Step}
}

// Tick rotates the buffer by one step and updates the scene.
func (v *Viewport) Tick() {
	v.buf.Advance(v.step)
	v.push()
	v.ticks++
}

func (v *Viewport) push() {
	v.scene.SetPoints(v.buf.Current())
	ts, ok := v.scene.(TrailScene)
	if !ok {
		return
	}
	k := ts.TrailLength()
	trails := make([][]geodesic.Point, v.buf.Len())
	for i := range trails {
		trails[i] = v.buf.Trail(i, k)
	}
	ts.SetTrails(trails)
}

// Elapse accounts d of wall time and fires one Tick per whole period.
func (v *Viewport) Elapse(d time.Duration) int {
	v.acc += d
	fired := 0
	for v.acc >= v.period {
		v.acc -= v.period
		v.Tick()
		fired++
	}
	return fired
}

func (v *Viewport) Ticks() int { return v.ticks }

// Run drives the scene until it is closed, then disposes of it.
func (v *Viewport) Run() error {
	v.push()
	for {
		d, open := v.scene.Frame()
		if !open {
			break
		}
		v.Elapse(d)
	}
	return v.scene.Close()
}
