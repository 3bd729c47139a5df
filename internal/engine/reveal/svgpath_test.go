package reveal

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/gg"
)

func TestParsePathDataElements(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		want  int // number of elements
		end   gg.Point
		close bool
	}{
		{"absolute line", "M 0 0 L 10 0", 2, gg.Point{X: 10}, false},
		{"relative line", "m 5 5 l 10 0 l 0 10", 3, gg.Point{X: 15, Y: 15}, false},
		{"implicit lineto", "M0,0 10,0 10,10", 3, gg.Point{X: 10, Y: 10}, false},
		{"horizontal vertical", "M0 0H20V5h-5v5", 5, gg.Point{X: 15, Y: 10}, false},
		{"cubic", "M0 0 C 0 10 10 10 10 0", 2, gg.Point{X: 10}, false},
		{"smooth cubic", "M0 0 C0 10 10 10 10 0 S 20 -10 20 0", 3, gg.Point{X: 20}, false},
		{"quad", "M0 0 Q 5 10 10 0 T 20 0", 3, gg.Point{X: 20}, false},
		{"packed numbers", "M0-1.5.5-2L1e1-2", 3, gg.Point{X: 10, Y: -2}, false},
		{"closed", "M0 0 L 10 0 L 10 10 Z", 4, gg.Point{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePathData(tt.data)
			if err != nil {
				t.Fatalf("ParsePathData(%q): %v", tt.data, err)
			}
			els := p.Elements()
			if len(els) != tt.want {
				t.Fatalf("got %d elements, want %d", len(els), tt.want)
			}
			if tt.close {
				if _, ok := els[len(els)-1].(gg.Close); !ok {
					t.Errorf("last element %T, want Close", els[len(els)-1])
				}
				return
			}
			if got := p.CurrentPoint(); got != tt.end {
				t.Errorf("end point = %v, want %v", got, tt.end)
			}
		})
	}
}

func TestParsePathDataSmoothReflects(t *testing.T) {
	p, err := ParsePathData("M0 0 C 0 10 10 10 10 0 S 20 -10 20 0")
	if err != nil {
		t.Fatal(err)
	}
	c, ok := p.Elements()[2].(gg.CubicTo)
	if !ok {
		t.Fatalf("element 2 is %T", p.Elements()[2])
	}
	if want := (gg.Point{X: 10, Y: -10}); c.Control1 != want {
		t.Errorf("reflected control = %v, want %v", c.Control1, want)
	}
}

func TestParsePathDataErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"empty", "", ErrEmptyPath},
		{"only move", "M 10 10", ErrEmptyPath},
		{"arc", "M0 0 A 5 5 0 0 1 10 0", ErrUnsupportedCommand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePathData(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	for _, bad := range []string{"10 10", "M 0", "M 0 0 L x 1"} {
		if _, err := ParsePathData(bad); err == nil {
			t.Errorf("ParsePathData(%q) succeeded", bad)
		}
	}
}

func TestNewPathLength(t *testing.T) {
	p, err := NewPath("M 0 0 L 30 0 L 30 40", ViewBox{Width: 100, Height: 100})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(p.Length()-70) > 1e-9 {
		t.Errorf("Length = %v, want 70", p.Length())
	}
}

func TestViewBoxFit(t *testing.T) {
	vb := ViewBox{Width: 100, Height: 200}

	// Height limits: scale 2, centred horizontally.
	m := vb.Fit(400, 400)
	got := m.TransformPoint(gg.Point{X: 0, Y: 0})
	if got != (gg.Point{X: 100, Y: 0}) {
		t.Errorf("origin maps to %v, want (100,0)", got)
	}
	got = m.TransformPoint(gg.Point{X: 100, Y: 200})
	if got != (gg.Point{X: 300, Y: 400}) {
		t.Errorf("corner maps to %v, want (300,400)", got)
	}
	if s := vb.Scale(400, 400); s != 2 {
		t.Errorf("Scale = %v, want 2", s)
	}
}

func TestTrimPolylines(t *testing.T) {
	lines := [][]gg.Point{
		{{X: 0}, {X: 10}},
		{{X: 0, Y: 5}, {X: 10, Y: 5}, {X: 10, Y: 15}},
	}
	tests := []struct {
		name     string
		fraction float64
		length   float64
		parts    int
	}{
		{"none", 0, 0, 0},
		{"negative", -1, 0, 0},
		{"first half of first line", 1.0 / 6, 5, 1},
		{"into second line", 0.5, 15, 2},
		{"all", 1, 30, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimPolylines(lines, tt.fraction)
			if len(got) != tt.parts {
				t.Fatalf("parts = %d, want %d", len(got), tt.parts)
			}
			if l := polylineLength(got); math.Abs(l-tt.length) > 1e-9 {
				t.Errorf("length = %v, want %v", l, tt.length)
			}
		})
	}
}
