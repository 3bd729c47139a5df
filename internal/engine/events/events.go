// Package events provides the listener registry that stands in for the
// browser window as an event target.
package events

// Kind identifies an event type.
type Kind int

const (
	PointerMove Kind = iota
	Scroll
	Resize
	Wheel
	Key
	Quit
)

func (k Kind) String() string {
	switch k {
	case PointerMove:
		return "pointermove"
	case Scroll:
		return "scroll"
	case Resize:
		return "resize"
	case Wheel:
		return "wheel"
	case Key:
		return "key"
	case Quit:
		return "quit"
	}
	return "unknown"
}

// KeyCode is a host-independent key identifier.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeySpace
	KeyEscape
	KeyScreenshot
)

// Event carries the payload of a dispatched event. Only the fields relevant
// to Kind are set.
type Event struct {
	Kind Kind

	// PointerMove: client coordinates in logical pixels.
	X, Y float64

	// Scroll: document scroll offset in pixels.
	ScrollY float64

	// Wheel: vertical delta in pixels, positive scrolls down.
	DeltaY float64

	// Resize: new viewport size in logical pixels and device pixel ratio.
	Width, Height int
	PixelRatio    float64

	// Key: pressed key.
	Key KeyCode
}

// Handler receives dispatched events.
type Handler func(Event)

// ListenerID identifies a registration for removal.
type ListenerID uint64

// Source is anything listeners can be attached to.
type Source interface {
	AddListener(kind Kind, h Handler) ListenerID
	RemoveListener(id ListenerID) bool
}

type listener struct {
	id      ListenerID
	kind    Kind
	handler Handler
	removed bool
}

// Target is a single-goroutine event target.
type Target struct {
	nextID    ListenerID
	listeners []*listener
}

// NewTarget creates an empty event target.
func NewTarget() *Target {
	return &Target{}
}

// AddListener registers h for events of the given kind.
func (t *Target) AddListener(kind Kind, h Handler) ListenerID {
	t.nextID++
	t.listeners = append(t.listeners, &listener{id: t.nextID, kind: kind, handler: h})
	return t.nextID
}

// RemoveListener unregisters a listener. It reports whether the id was
// registered. A listener removed during a dispatch is not called for the
// rest of that dispatch.
func (t *Target) RemoveListener(id ListenerID) bool {
	for i, l := range t.listeners {
		if l.id == id {
			l.removed = true
			t.listeners = append(t.listeners[:i:i], t.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// Dispatch calls every listener registered for e.Kind in registration order.
func (t *Target) Dispatch(e Event) {
	snapshot := make([]*listener, 0, len(t.listeners))
	for _, l := range t.listeners {
		if l.kind == e.Kind {
			snapshot = append(snapshot, l)
		}
	}
	for _, l := range snapshot {
		if l.removed {
			continue
		}
		l.handler(e)
	}
}

// Count returns the number of listeners registered for kind.
func (t *Target) Count(kind Kind) int {
	n := 0
	for _, l := range t.listeners {
		if l.kind == kind {
			n++
		}
	}
	return n
}

// Len returns the total number of registered listeners.
func (t *Target) Len() int {
	return len(t.listeners)
}
