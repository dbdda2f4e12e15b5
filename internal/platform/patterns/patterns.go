// Package patterns provides mouse movement pattern generation for pointer jitter.
package patterns

import (
	"math"
	"time"
)

// Point is a screen coordinate.
type Point struct {
	X int
	Y int
}

// Path is a sequence of absolute positions visited at a fixed cadence.
type Path struct {
	Points    []Point
	StepDelay time.Duration
}

// Target returns the final point of the path, or the zero Point if empty.
func (p Path) Target() Point {
	if len(p.Points) == 0 {
		return Point{}
	}
	return p.Points[len(p.Points)-1]
}

// Source is the randomness a Generator needs; *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Generator generates small, smooth pointer offsets.
type Generator struct {
	rnd Source
}

// NewGenerator creates a new pattern generator with a random source.
func NewGenerator(rnd Source) *Generator {
	return &Generator{rnd: rnd}
}

// Offset draws a displacement in [-maxOffset, maxOffset] on each axis independently.
func (g *Generator) Offset(maxOffset int) Point {
	if maxOffset <= 0 {
		return Point{}
	}
	span := 2*maxOffset + 1
	return Point{
		X: g.rnd.Intn(span) - maxOffset,
		Y: g.rnd.Intn(span) - maxOffset,
	}
}

// Jitter builds a path from origin to origin+offset, linearly interpolated
// over steps points spread across duration. Coordinates never go negative.
func (g *Generator) Jitter(origin Point, maxOffset, steps int, duration time.Duration) Path {
	return Interpolate(origin, g.Offset(maxOffset), steps, duration)
}

// Interpolate splits the move origin→origin+offset into steps points.
func Interpolate(origin, offset Point, steps int, duration time.Duration) Path {
	if steps < 1 {
		steps = 1
	}

	points := make([]Point, 0, steps)
	for i := 1; i <= steps; i++ {
		frac := float64(i) / float64(steps)
		points = append(points, Clamp(Point{
			X: origin.X + int(math.Round(float64(offset.X)*frac)),
			Y: origin.Y + int(math.Round(float64(offset.Y)*frac)),
		}))
	}

	return Path{
		Points:    points,
		StepDelay: duration / time.Duration(steps),
	}
}

// Clamp keeps a point inside the non-negative quadrant.
func Clamp(p Point) Point {
	if p.X < 0 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
	return p
}

// Distance is the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
