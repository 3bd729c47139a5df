// Package particles implements the ambient particle field: a fixed cloud of
// points that eases toward the pointer and drifts against the scroll.
package particles

import (
	"math/rand/v2"

	"github.com/Faultbox/detailfx/pkg/math"
)

// Field is an immutable set of point positions. Only the transform of the
// object containing it changes per frame.
type Field struct {
	positions []math.Vec3
	spread    float32
	seed      uint64
}

// NewField samples count points uniformly inside a cube of side spread
// centred on the origin. The same seed always yields the same field.
func NewField(count int, spread float32, seed uint64) *Field {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	positions := make([]math.Vec3, count)
	for i := range positions {
		positions[i] = math.Vec3{
			X: (rng.Float32() - 0.5) * spread,
			Y: (rng.Float32() - 0.5) * spread,
			Z: (rng.Float32() - 0.5) * spread,
		}
	}
	return &Field{positions: positions, spread: spread, seed: seed}
}

// Len returns the number of points.
func (f *Field) Len() int {
	return len(f.positions)
}

// At returns the i-th position.
func (f *Field) At(i int) math.Vec3 {
	return f.positions[i]
}

// Spread returns the cube side length.
func (f *Field) Spread() float32 {
	return f.spread
}

// Seed returns the seed the field was sampled with.
func (f *Field) Seed() uint64 {
	return f.seed
}

// Interleaved returns the positions as x,y,z triples for vertex upload.
func (f *Field) Interleaved() []float32 {
	out := make([]float32, 0, len(f.positions)*3)
	for _, p := range f.positions {
		out = append(out, p.X, p.Y, p.Z)
	}
	return out
}
