package signal

import "testing"

func TestCellLastWriteWins(t *testing.T) {
	c := NewCell(0.0)
	c.Store(10)
	c.Store(20)
	c.Store(5)

	if got := c.Load(); got != 5 {
		t.Errorf("Load() = %v, want 5", got)
	}
	if c.Writes() != 3 {
		t.Errorf("Writes() = %d, want 3", c.Writes())
	}
}

func TestPointerFromClient(t *testing.T) {
	tests := []struct {
		x, y float64
		want Pointer
	}{
		{400, 300, Pointer{0, 0}},
		{0, 0, Pointer{-400, -300}},
		{800, 600, Pointer{400, 300}},
	}
	for _, tt := range tests {
		if got := PointerFromClient(tt.x, tt.y, 800, 600); got != tt.want {
			t.Errorf("PointerFromClient(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
