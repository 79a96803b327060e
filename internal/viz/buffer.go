package viz

import (
	"errors"
	"fmt"

	"github.com/san-kum/horyzen/internal/geodesic"
	"github.com/san-kum/horyzen/internal/storage"
)

var errEmptyBuffer = errors.New("viz: no trajectory data")

var bufferColumns = []string{"time", "x", "y", "z"}

// Buffer holds several equal-length trajectories and a shared playback
// offset. Rotation moves the offset, the samples themselves never move.
type Buffer struct {
	trajs  [][]geodesic.Point
	steps  int
	offset int
}

// NewBuffer builds a buffer from in-memory trajectories. Every trajectory
// must have the same number of steps as the first.
func NewBuffer(trajs [][]geodesic.Point) (*Buffer, error) {
	if len(trajs) == 0 || len(trajs[0]) == 0 {
		return nil, errEmptyBuffer
	}
	steps := len(trajs[0])
	for i, t := range trajs[1:] {
		if len(t) != steps {
			return nil, &geodesic.DimensionMismatchError{
				Path: fmt.Sprintf("trajectory %d", i+1),
				Want: steps,
				Got:  len(t),
			}
		}
	}
	return &Buffer{trajs: trajs, steps: steps}, nil
}

// LoadBuffer reads the time and Cartesian columns of each results.h5 in
// order. All files are read before the buffer is built, so a mismatch
// leaves nothing behind.
func LoadBuffer(paths ...string) (*Buffer, error) {
	if len(paths) == 0 {
		return nil, errEmptyBuffer
	}

	trajs := make([][]geodesic.Point, 0, len(paths))
	for _, path := range paths {
		cols, err := storage.ReadColumns(path, bufferColumns...)
		if err != nil {
			return nil, err
		}
		n := len(cols[0])
		for j, col := range cols[1:] {
			if len(col) != n {
				return nil, &geodesic.DimensionMismatchError{
					Path: fmt.Sprintf("%s (%s)", path, bufferColumns[j+1]),
					Want: n,
					Got:  len(col),
				}
			}
		}
		if len(trajs) > 0 && n != len(trajs[0]) {
			return nil, &geodesic.DimensionMismatchError{Path: path, Want: len(trajs[0]), Got: n}
		}

		xs, ys, zs := cols[1], cols[2], cols[3]
		pts := make([]geodesic.Point, n)
		for i := range pts {
			pts[i] = geodesic.Point{X: xs[i], Y: ys[i], Z: zs[i]}
		}
		trajs = append(trajs, pts)
	}
	return NewBuffer(trajs)
}

// Len is the number of trajectories.
func (b *Buffer) Len() int { return len(b.trajs) }

// Steps is the shared step count.
func (b *Buffer) Steps() int { return b.steps }

func (b *Buffer) Offset() int { return b.offset }

// Advance rotates every trajectory left by n rows, wrapping around.
func (b *Buffer) Advance(n int) {
	b.offset = ((b.offset+n)%b.steps + b.steps) % b.steps
}

// Row returns row i of trajectory traj in the rotated view.
func (b *Buffer) Row(traj, i int) geodesic.Point {
	return b.trajs[traj][(b.offset+i)%b.steps]
}

// Current returns row 0 of every trajectory.
func (b *Buffer) Current() []geodesic.Point {
	pts := make([]geodesic.Point, len(b.trajs))
	for i := range b.trajs {
		pts[i] = b.Row(i, 0)
	}
	return pts
}

// Trail returns up to k rows of trajectory traj ending at the current
// point, oldest first.
func (b *Buffer) Trail(traj, k int) []geodesic.Point {
	k = min(k, b.steps)
	if k <= 0 {
		return nil
	}
	out := make([]geodesic.Point, k)
	for j := 0; j < k; j++ {
		idx := ((b.offset-k+1+j)%b.steps + b.steps) % b.steps
		out[j] = b.trajs[traj][idx]
	}
	return out
}
