package physics

import (
	"math"
	"testing"
)

func TestLineIntersection(t *testing.T) {
	tests := []struct {
		name           string
		a1, a2, b1, b2 Vec2
		want           Vec2
		wantOK         bool
	}{
		{
			name: "perpendicular cross",
			a1:   Vec2{0, 0}, a2: Vec2{10, 0},
			b1: Vec2{5, -5}, b2: Vec2{5, 5},
			want: Vec2{5, 0}, wantOK: true,
		},
		{
			name: "diagonal cross",
			a1:   Vec2{0, 0}, a2: Vec2{10, 10},
			b1: Vec2{0, 10}, b2: Vec2{10, 0},
			want: Vec2{5, 5}, wantOK: true,
		},
		{
			name: "parallel",
			a1:   Vec2{0, 0}, a2: Vec2{10, 0},
			b1: Vec2{0, 1}, b2: Vec2{10, 1},
			wantOK: false,
		},
		{
			name: "collinear",
			a1:   Vec2{0, 0}, a2: Vec2{10, 0},
			b1: Vec2{20, 0}, b2: Vec2{30, 0},
			wantOK: false,
		},
		{
			name: "lines cross outside first segment",
			a1:   Vec2{0, 0}, a2: Vec2{4, 0},
			b1: Vec2{5, -5}, b2: Vec2{5, 5},
			wantOK: false,
		},
		{
			name: "lines cross outside second segment",
			a1:   Vec2{0, 0}, a2: Vec2{10, 0},
			b1: Vec2{5, 1}, b2: Vec2{5, 5},
			wantOK: false,
		},
		{
			name: "touching endpoints",
			a1:   Vec2{0, 0}, a2: Vec2{5, 0},
			b1: Vec2{5, 0}, b2: Vec2{5, 5},
			want: Vec2{5, 0}, wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LineIntersection(tt.a1, tt.a2, tt.b1, tt.b2)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if math.Abs(float64(got.X-tt.want.X)) > 1e-4 || math.Abs(float64(got.Y-tt.want.Y)) > 1e-4 {
				t.Errorf("intersection = (%v, %v), want (%v, %v)", got.X, got.Y, tt.want.X, tt.want.Y)
			}
		})
	}
}

func TestPointToSegmentDistance(t *testing.T) {
	tests := []struct {
		name   string
		p      Vec2
		s1, s2 Vec2
		want   float32
	}{
		{"perpendicular foot inside", Vec2{5, 3}, Vec2{0, 0}, Vec2{10, 0}, 3},
		{"clamped to start", Vec2{-4, 3}, Vec2{0, 0}, Vec2{10, 0}, 5},
		{"clamped to end", Vec2{14, 3}, Vec2{0, 0}, Vec2{10, 0}, 5},
		{"on segment", Vec2{5, 0}, Vec2{0, 0}, Vec2{10, 0}, 0},
		{"zero-length segment", Vec2{3, 4}, Vec2{0, 0}, Vec2{0, 0}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PointToSegmentDistance(tt.p, tt.s1, tt.s2)
			if math.Abs(float64(got-tt.want)) > 1e-4 {
				t.Errorf("distance = %v, want %v", got, tt.want)
			}
		})
	}
}
