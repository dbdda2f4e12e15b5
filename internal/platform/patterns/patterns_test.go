package patterns

import (
	"math/rand"
	"testing"
	"time"
)

func TestNewGenerator(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	gen := NewGenerator(rnd)
	if gen == nil {
		t.Fatal("NewGenerator returned nil")
	}
}

func TestOffsetBounds(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(42)))

	seenNegative, seenPositive := false, false
	for i := 0; i < 2000; i++ {
		off := gen.Offset(20)
		if off.X < -20 || off.X > 20 || off.Y < -20 || off.Y > 20 {
			t.Fatalf("offset %v outside ±20", off)
		}
		if off.X < 0 {
			seenNegative = true
		}
		if off.X > 0 {
			seenPositive = true
		}
	}
	if !seenNegative || !seenPositive {
		t.Error("expected offsets in both directions")
	}
}

func TestOffsetZeroMax(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(1)))
	if off := gen.Offset(0); off != (Point{}) {
		t.Errorf("Offset(0) = %v, want zero", off)
	}
}

func TestJitterDeterministic(t *testing.T) {
	// Same seed should produce same results
	p1 := NewGenerator(rand.New(rand.NewSource(12345))).Jitter(Point{500, 400}, 20, 10, 300*time.Millisecond)
	p2 := NewGenerator(rand.New(rand.NewSource(12345))).Jitter(Point{500, 400}, 20, 10, 300*time.Millisecond)

	if len(p1.Points) != len(p2.Points) {
		t.Fatalf("point counts differ: %d vs %d", len(p1.Points), len(p2.Points))
	}
	for i := range p1.Points {
		if p1.Points[i] != p2.Points[i] {
			t.Errorf("point %d differs: %v vs %v", i, p1.Points[i], p2.Points[i])
		}
	}
}

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name      string
		origin    Point
		offset    Point
		steps     int
		duration  time.Duration
		wantLast  Point
		wantLen   int
		wantDelay time.Duration
	}{
		{
			name:      "straight line",
			origin:    Point{100, 100},
			offset:    Point{10, -10},
			steps:     10,
			duration:  500 * time.Millisecond,
			wantLast:  Point{110, 90},
			wantLen:   10,
			wantDelay: 50 * time.Millisecond,
		},
		{
			name:      "clamped at screen edge",
			origin:    Point{5, 3},
			offset:    Point{-20, -20},
			steps:     4,
			duration:  200 * time.Millisecond,
			wantLast:  Point{0, 0},
			wantLen:   4,
			wantDelay: 50 * time.Millisecond,
		},
		{
			name:      "zero steps treated as one",
			origin:    Point{10, 10},
			offset:    Point{3, 4},
			steps:     0,
			duration:  200 * time.Millisecond,
			wantLast:  Point{13, 14},
			wantLen:   1,
			wantDelay: 200 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := Interpolate(tt.origin, tt.offset, tt.steps, tt.duration)
			if len(path.Points) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(path.Points), tt.wantLen)
			}
			if path.Target() != tt.wantLast {
				t.Errorf("target = %v, want %v", path.Target(), tt.wantLast)
			}
			if path.StepDelay != tt.wantDelay {
				t.Errorf("step delay = %v, want %v", path.StepDelay, tt.wantDelay)
			}
			for _, p := range path.Points {
				if p.X < 0 || p.Y < 0 {
					t.Errorf("negative coordinate %v", p)
				}
			}
		})
	}
}

func TestInterpolateIsMonotonic(t *testing.T) {
	path := Interpolate(Point{200, 200}, Point{17, 9}, 10, time.Second)
	origin := Point{200, 200}
	prev := 0.0
	for i, p := range path.Points {
		d := Distance(origin, p)
		if d < prev {
			t.Errorf("point %d moved backwards: %v < %v", i, d, prev)
		}
		prev = d
	}
}

func TestTargetEmpty(t *testing.T) {
	if (Path{}).Target() != (Point{}) {
		t.Error("empty path target should be zero")
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(Point{0, 0}, Point{3, 4}); d != 5 {
		t.Errorf("Distance = %v, want 5", d)
	}
}
