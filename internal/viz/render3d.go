package viz

import (
	"math"
	"sort"

	"github.com/san-kum/horyzen/internal/geodesic"
)

type Vec3 struct {
	X, Y, Z float64
}

func FromPoint(p geodesic.Point) Vec3 { return Vec3{p.X, p.Y, p.Z} }

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Camera projects world points onto a screen plane. Distance is measured
// along the view axis after rotation.
type Camera struct {
	Distance   float64
	Near       float64
	RotX, RotZ float64
	Zoom       float64
}

// NewCamera looks at the origin from slightly above the equatorial plane.
func NewCamera() *Camera {
	return &Camera{Distance: 120, Near: 0.1, RotX: -1.2, RotZ: 0.6, Zoom: 1.0}
}

func (c *Camera) Orbit(da float64) { c.RotZ += da }
func (c *Camera) Tilt(da float64) {
	c.RotX = math.Max(-math.Pi/2, math.Min(0, c.RotX+da))
}
func (c *Camera) ZoomIn()  { c.Zoom = math.Min(20, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.05, c.Zoom/1.2) }

// Rotate spins about z first, then tilts about x.
func (c *Camera) Rotate(p Vec3) Vec3 {
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	return p
}

// ProjectF returns perspective-divided screen coordinates with the origin
// at the centre and y pointing up, plus the depth along the view axis.
func (c *Camera) ProjectF(p Vec3) (float64, float64, float64, bool) {
	rot := c.Rotate(p).Scale(c.Zoom)
	if rot.Z >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z)
	return rot.X * scale, rot.Y * scale, rot.Z, true
}

// Project maps p onto a sw x sh pixel grid where span world units fit the
// shorter side.
func (c *Camera) Project(p Vec3, sw, sh int, span float64) (int, int, float64, bool) {
	x, y, depth, ok := c.ProjectF(p)
	if !ok {
		return 0, 0, 0, false
	}
	pScale := float64(min(sw, sh)) / span
	sx := int(x*pScale) + sw/2
	sy := int(-y*pScale) + sh/2
	return sx, sy, depth, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe           { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e Vec3)   { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) AddPoint(p Vec3)     { w.Edges = append(w.Edges, Edge{p, p}) }
func (w *Wireframe) Extend(o *Wireframe) { w.Edges = append(w.Edges, o.Edges...) }

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render3D draws the wireframe far-to-near onto the canvas sub-pixel grid,
// tagging the cells it touches.
func Render3D(c *Canvas, w *Wireframe, cam *Camera, span float64, tag int) {
	if c == nil || w == nil || cam == nil {
		return
	}
	pw, ph := c.Width*2, c.Height*4
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, pw, ph, span)
		x2, y2, d2, v2 := cam.Project(e.End, pw, ph, span)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Mark(e.x1, e.y1, tag)
		} else {
			c.DrawLine(e.x1, e.y1, e.x2, e.y2, tag)
		}
	}
}

// AxesWireframe is the three positive coordinate axes of length l.
func AxesWireframe(l float64) *Wireframe {
	w, o := NewWireframe(), Vec3{}
	w.AddEdge(o, Vec3{l, 0, 0})
	w.AddEdge(o, Vec3{0, l, 0})
	w.AddEdge(o, Vec3{0, 0, l})
	return w
}

// SphereWireframe approximates a sphere of radius r with latitude and
// longitude rings.
func SphereWireframe(r float64, rings int) *Wireframe {
	w := NewWireframe()
	const seg = 32
	for i := 1; i < rings; i++ {
		theta := math.Pi * float64(i) / float64(rings)
		z, rho := r*math.Cos(theta), r*math.Sin(theta)
		for j := 0; j < seg; j++ {
			a0 := 2 * math.Pi * float64(j) / seg
			a1 := 2 * math.Pi * float64(j+1) / seg
			w.AddEdge(Vec3{rho * math.Cos(a0), rho * math.Sin(a0), z}, Vec3{rho * math.Cos(a1), rho * math.Sin(a1), z})
		}
	}
	for i := 0; i < rings; i++ {
		phi := math.Pi * float64(i) / float64(rings)
		cp, sp := math.Cos(phi), math.Sin(phi)
		for j := 0; j < seg; j++ {
			t0 := 2 * math.Pi * float64(j) / seg
			t1 := 2 * math.Pi * float64(j+1) / seg
			p0 := Vec3{r * math.Sin(t0) * cp, r * math.Sin(t0) * sp, r * math.Cos(t0)}
			p1 := Vec3{r * math.Sin(t1) * cp, r * math.Sin(t1) * sp, r * math.Cos(t1)}
			w.AddEdge(p0, p1)
		}
	}
	return w
}
