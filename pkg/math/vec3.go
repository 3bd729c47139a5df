// Package math provides the small vector and matrix toolkit used by the renderers.
package math

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Euler is an XYZ-order rotation in radians.
type Euler struct {
	X, Y, Z float32
}

// Matrix returns the rotation matrix Rx * Ry * Rz.
func (e Euler) Matrix() Mat4 {
	return RotateX(e.X).Mul(RotateY(e.Y)).Mul(RotateZ(e.Z))
}
