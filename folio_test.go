package folio

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-6

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ffffff", Color{1, 1, 1, 1}},
		{"#000", Color{0, 0, 0, 1}},
		{"ff000080", Color{1, 0, 0, 128.0 / 255}},
		{" #6366f1 ", Color{99.0 / 255, 102.0 / 255, 241.0 / 255, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if err != nil {
				t.Fatalf("ParseHexColor: %v", err)
			}
			if !approxEqual(got.R, tt.want.R, epsilon) || !approxEqual(got.G, tt.want.G, epsilon) ||
				!approxEqual(got.B, tt.want.B, epsilon) || !approxEqual(got.A, tt.want.A, epsilon) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseHexColorInvalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#12345", "#zzzzzz"} {
		if _, err := ParseHexColor(in); err == nil {
			t.Errorf("ParseHexColor(%q): expected error", in)
		}
	}
}

func TestColorRGBAPremultiplies(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 1}.rgba(0.5)
	if c.A != 128 || c.R != 128 || c.G != 64 || c.B != 0 {
		t.Errorf("rgba = %+v", c)
	}
}

func TestRectIntersectsAndInset(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	b := Rect{X: 0, Y: 100, Width: 100, Height: 50}
	if !a.Intersects(b) {
		t.Error("adjacent rects should intersect")
	}
	if a.Inset(10).Intersects(b) {
		t.Error("inset rect should no longer touch b")
	}
	if got := a.Inset(-5); got != (Rect{X: -5, Y: -5, Width: 110, Height: 110}) {
		t.Errorf("Inset(-5) = %+v", got)
	}
	if a.Bottom() != 100 {
		t.Errorf("Bottom = %v", a.Bottom())
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-1, 0}, {0, 0}, {0.3, 0.3}, {1, 1}, {2, 1}, {math.NaN(), 0}, {math.Inf(1), 1},
	}
	for _, tt := range tests {
		if got := clamp01(tt.in); got != tt.want {
			t.Errorf("clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSentinelErrorsWrap(t *testing.T) {
	_, err := NewTable([]float64{0, 0}, []float64{1, 2})
	if !errors.Is(err, ErrBreakpointOrder) {
		t.Errorf("err = %v, want ErrBreakpointOrder", err)
	}
}
