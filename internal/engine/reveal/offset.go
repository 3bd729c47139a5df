package reveal

import "github.com/Faultbox/detailfx/pkg/math"

// Progress returns how far scrollY has travelled through totalDistance,
// clamped to [0, 1]. A non-positive distance reports 0.
func Progress(scrollY, totalDistance float64) float64 {
	if !(totalDistance > 0) {
		return 0
	}
	p := scrollY / totalDistance
	if p != p { // NaN
		return 0
	}
	return math.Clamp(p, 0, 1)
}

// StrokeOffset returns the dash offset that reveals a fraction of a path of
// the given length. totalDistance is the anchor top minus the viewport
// height; when it is not positive the path stays fully hidden.
func StrokeOffset(length, scrollY, totalDistance float64) float64 {
	if !(totalDistance > 0) {
		return length
	}
	return length * (1 - Progress(scrollY, totalDistance))
}

// VisibleFraction returns the drawn share of a path under a [length, length]
// dash shifted by offset.
func VisibleFraction(length, offset float64) float64 {
	if !(length > 0) {
		return 0
	}
	return math.Clamp((length-offset)/length, 0, 1)
}
