package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "touching edges count as overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: true,
		},
		{
			name:     "gap of a fraction",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10.5, 0, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersects(tc.b)
			if result != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", result, tc.expected)
			}
			// Also test symmetry
			resultReverse := tc.b.Intersects(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestCircleRectOverlap(t *testing.T) {
	brick := NewRect(100, 100, 70, 20)

	tests := []struct {
		name     string
		c        Circle
		expected bool
	}{
		{"center inside", Circle{X: 130, Y: 110, R: 8}, true},
		{"bounding box grazes bottom", Circle{X: 130, Y: 128, R: 8}, true},
		{"just below", Circle{X: 130, Y: 128.5, R: 8}, false},
		{"corner by box only", Circle{X: 95, Y: 95, R: 8}, true},
		{"far left", Circle{X: 50, Y: 110, R: 8}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CircleRectOverlap(tc.c, brick); got != tc.expected {
				t.Errorf("CircleRectOverlap(%+v) = %v, expected %v", tc.c, got, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %v, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %v, expected 25", r.Bottom())
	}

	c := r.Center()
	if c.X != 15 || c.Y != 17.5 {
		t.Errorf("Center() = (%v, %v), expected (15, 17.5)", c.X, c.Y)
	}

	if !r.Contains(25, 25) {
		t.Error("Contains() should include the bottom-right corner")
	}
	if r.Contains(26, 20) {
		t.Error("Contains() should exclude points right of the box")
	}
}

func TestVec(t *testing.T) {
	v := Vec{X: 1, Y: 2}.Add(Vec{X: 3, Y: -4}).Scale(0.5)
	if v.X != 2 || v.Y != -1 {
		t.Errorf("Vec arithmetic = %+v, expected {2 -1}", v)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMaxAbs(t *testing.T) {
	if Min(5, 10) != 5 || Min(10, 5) != 5 {
		t.Error("Min should return the smaller value")
	}
	if Max(5, 10) != 10 || Max(10, 5) != 10 {
		t.Error("Max should return the larger value")
	}
	if Abs(-5) != 5 || Abs(5) != 5 || Abs(0) != 0 {
		t.Error("Abs should return the magnitude")
	}
}
