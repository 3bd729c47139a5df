// Package signal holds the latest-value registers written by input
// listeners and read by render loops.
package signal

// Cell keeps only the most recent value written to it.
type Cell[T any] struct {
	value  T
	writes uint64
}

// NewCell creates a cell holding v.
func NewCell[T any](v T) *Cell[T] {
	return &Cell[T]{value: v}
}

// Store replaces the value.
func (c *Cell[T]) Store(v T) {
	c.value = v
	c.writes++
}

// Load returns the latest value.
func (c *Cell[T]) Load() T {
	return c.value
}

// Writes returns how many times Store was called.
func (c *Cell[T]) Writes() uint64 {
	return c.writes
}

// Pointer is a pointer position relative to the viewport centre, in pixels.
type Pointer struct {
	X, Y float64
}

// PointerFromClient converts client coordinates into an offset from the
// centre of a width x height viewport.
func PointerFromClient(clientX, clientY float64, width, height int) Pointer {
	return Pointer{
		X: clientX - float64(width)/2,
		Y: clientY - float64(height)/2,
	}
}
