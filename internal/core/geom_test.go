package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(3, 19, 3, 3)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"origin", 3, 19, true},
		{"far corner", 5, 21, true},
		{"one past right", 6, 19, false},
		{"one past bottom", 3, 22, false},
		{"left of origin", 2, 20, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectTranslate(t *testing.T) {
	r := NewRect(3, 19, 4, 4)

	moved := r.Translate(-1, -2)
	if moved.X != 2 || moved.Y != 17 {
		t.Errorf("Translate(-1, -2) origin = (%d, %d), expected (2, 17)", moved.X, moved.Y)
	}
	if moved.W != 4 || moved.H != 4 {
		t.Errorf("Translate changed size to %dx%d", moved.W, moved.H)
	}
	if r.X != 3 || r.Y != 19 {
		t.Error("Translate should not modify the receiver")
	}
	if moved.Right() != 6 || moved.Bottom() != 21 {
		t.Errorf("Right/Bottom = %d/%d, expected 6/21", moved.Right(), moved.Bottom())
	}
}

func TestPointAdd(t *testing.T) {
	p := Pt(1, 2).Add(Pt(-3, 4))
	if p != (Point{X: -2, Y: 6}) {
		t.Errorf("Add = %+v, expected {-2 6}", p)
	}
}
