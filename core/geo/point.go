// Package geo holds the planar geometry used by the simulation. Distances
// are Euclidean; there is no road network.
package geo

import (
	"fmt"
	"math"
)

const (
	equalULPs     = 10
	equalAbsolute = 1e-9
)

// Point is an immutable coordinate on the simulation plane.
type Point struct {
	x float64
	y float64
}

// NewPoint returns the point (x, y).
func NewPoint(x, y float64) Point { return Point{x: x, y: y} }

// X returns the horizontal coordinate.
func (p Point) X() float64 { return p.x }

// Y returns the vertical coordinate.
func (p Point) Y() float64 { return p.y }

// Distance returns the Euclidean distance to o.
func (p Point) Distance(o Point) float64 {
	return math.Hypot(o.x-p.x, o.y-p.y)
}

// StepToward moves dist units along the segment from p to target. When the
// remaining distance is at most dist the target itself is returned, so a
// step never overshoots.
func (p Point) StepToward(target Point, dist float64) Point {
	remaining := p.Distance(target)
	if remaining <= dist {
		return target
	}
	ratio := dist / remaining
	return Point{
		x: p.x + (target.x-p.x)*ratio,
		y: p.y + (target.y-p.y)*ratio,
	}
}

// Equal compares coordinates with a tolerance of 10 ULPs of the mean operand
// magnitude, or 1e-9 absolute, whichever is looser.
func (p Point) Equal(o Point) bool {
	return nearlyEqual(p.x, o.x) && nearlyEqual(p.y, o.y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.x, p.y)
}

func nearlyEqual(a, b float64) bool {
	if a == b {
		return true
	}
	tol := equalULPs * ulp((math.Abs(a)+math.Abs(b))/2)
	if tol < equalAbsolute {
		tol = equalAbsolute
	}
	return math.Abs(a-b) <= tol
}

func ulp(x float64) float64 {
	return math.Nextafter(x, math.Inf(1)) - x
}
