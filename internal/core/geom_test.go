package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%v, %v) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEmpty(t *testing.T) {
	tests := []struct {
		name     string
		r        Rect
		expected bool
	}{
		{"normal", NewRect(0, 0, 200, 50), false},
		{"zero width", NewRect(10, 10, 0, 50), true},
		{"zero height", NewRect(10, 10, 200, 0), true},
		{"negative", NewRect(0, 0, -5, 5), true},
		{"zero value", Rect{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Empty(); got != tc.expected {
				t.Errorf("Empty() = %v, expected %v", got, tc.expected)
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

	cx, cy := r.Center()
	if cx != 15 || cy != 17.5 {
		t.Errorf("Center() = (%v, %v), expected (15, 17.5)", cx, cy)
	}
}

func TestRectRelativeAndScale(t *testing.T) {
	outer := NewRect(100, 40, 500, 300)
	inner := NewRect(150, 90, 200, 50)

	rel := inner.Relative(outer)
	if rel != NewRect(50, 50, 200, 50) {
		t.Errorf("Relative() = %+v, expected {50 50 200 50}", rel)
	}

	scaled := NewRect(2, 3, 20, 3).Scale(5, 10)
	if scaled != NewRect(10, 30, 100, 30) {
		t.Errorf("Scale() = %+v, expected {10 30 100 30}", scaled)
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
