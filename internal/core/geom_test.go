package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping rects", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"non-overlapping horizontal", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"non-overlapping vertical", NewRect(0, 0, 10, 10), NewRect(0, 15, 10, 10), false},
		{"adjacent horizontal (no overlap)", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), false},
		{"adjacent vertical (no overlap)", NewRect(0, 0, 10, 10), NewRect(0, 10, 10, 10), false},
		{"contained rect", NewRect(0, 0, 20, 20), NewRect(5, 5, 5, 5), true},
		{"single cell overlap", NewRect(0, 0, 6, 6), NewRect(5, 5, 1, 1), true},
		{"empty rect never intersects", NewRect(0, 0, 10, 10), NewRect(2, 2, 0, 3), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"last inside cell", 29, 24, true},
		{"outside left", 5, 15, false},
		{"outside top", 15, 5, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectEdgesAndOffset(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 || r.Bottom() != 25 {
		t.Errorf("Right/Bottom = %d/%d, expected 25/25", r.Right(), r.Bottom())
	}
	if cx, cy := r.Center(); cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
	if moved := r.Offset(-5, 2); moved != NewRect(0, 12, 20, 15) {
		t.Errorf("Offset() = %+v", moved)
	}
}

func TestClampAndWrap(t *testing.T) {
	clampTests := []struct{ val, lo, hi, expected int }{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tc := range clampTests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}

	wrapTests := []struct{ val, n, expected int }{
		{42, 42, 0},
		{-1, 42, 41},
		{19, 19, 0},
		{-1, 19, 18},
		{7, 42, 7},
		{3, 0, 0},
	}
	for _, tc := range wrapTests {
		if got := Wrap(tc.val, tc.n); got != tc.expected {
			t.Errorf("Wrap(%d, %d) = %d, expected %d", tc.val, tc.n, got, tc.expected)
		}
	}
}

func TestInputFrameLastDirection(t *testing.T) {
	f := NewInputFrame()
	if f.LastDirection() != ActionNone {
		t.Fatal("empty frame should have no direction")
	}

	f.Set(ActionUp)
	f.Set(ActionPause)
	f.Set(ActionLeft)
	if got := f.LastDirection(); got != ActionLeft {
		t.Errorf("LastDirection() = %v, expected Left", got)
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionUp) || f.LastDirection() != ActionNone {
		t.Error("Clear should drop all actions")
	}
	if !clone.Has(ActionPause) || clone.LastDirection() != ActionLeft {
		t.Error("Clone should be independent of the original")
	}
}
