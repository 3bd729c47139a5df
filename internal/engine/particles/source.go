package particles

import "github.com/Faultbox/detailfx/internal/engine/smoothscroll"

// ScrollSource is the optional shared smooth-scroll controller.
type ScrollSource interface {
	On(event string, h smoothscroll.Handler) smoothscroll.SubscriptionID
	Off(event string, id smoothscroll.SubscriptionID) bool
}

// SignalKind picks which controller value feeds the scroll signal.
type SignalKind int

const (
	SignalScroll SignalKind = iota
	SignalProgress
	SignalVelocity
)

// ParseSignalKind maps a config name to a SignalKind. Unknown names mean scroll.
func ParseSignalKind(s string) SignalKind {
	switch s {
	case "progress":
		return SignalProgress
	case "velocity":
		return SignalVelocity
	default:
		return SignalScroll
	}
}

// Value extracts the selected value from a controller event.
func (k SignalKind) Value(e smoothscroll.Event) float64 {
	switch k {
	case SignalProgress:
		return e.Progress
	case SignalVelocity:
		return e.Velocity
	default:
		return e.Scroll
	}
}
