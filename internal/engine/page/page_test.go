package page

import (
	"errors"
	"testing"

	"github.com/Faultbox/detailfx/internal/engine/events"
)

func testSections() []Section {
	return []Section{
		{ID: "hero", Height: Length{Value: 100, VH: true}},
		{ID: "services", Height: Length{Value: 1200}},
		{ID: "booking", Height: Length{Value: 1000}},
	}
}

func TestLayoutAndLookup(t *testing.T) {
	doc := NewDocument(events.NewTarget(), Viewport{Width: 1280, Height: 800}, testSections())

	if top, ok := doc.Lookup("#booking"); !ok || top != 2000 {
		t.Errorf("Lookup(#booking) = %v, %v; want 2000, true", top, ok)
	}
	if top, ok := doc.Lookup("#hero"); !ok || top != 0 {
		t.Errorf("Lookup(#hero) = %v, %v; want 0, true", top, ok)
	}
	if _, ok := doc.Lookup("#pricing"); ok {
		t.Error("expected missing section lookup to fail")
	}
	if _, ok := doc.Lookup("booking"); ok {
		t.Error("expected selector without # to fail")
	}
	if doc.ScrollHeight() != 3000 {
		t.Errorf("ScrollHeight() = %v, want 3000", doc.ScrollHeight())
	}
	if doc.MaxScroll() != 2200 {
		t.Errorf("MaxScroll() = %v, want 2200", doc.MaxScroll())
	}
}

func TestScrollClampsAndDispatches(t *testing.T) {
	target := events.NewTarget()
	doc := NewDocument(target, Viewport{Width: 1280, Height: 800}, testSections())

	var seen []float64
	target.AddListener(events.Scroll, func(e events.Event) { seen = append(seen, e.ScrollY) })

	doc.ScrollTo(600)
	doc.ScrollTo(600) // unchanged, no event
	doc.ScrollBy(-1000)
	doc.ScrollTo(99999)

	want := []float64{600, 0, 2200}
	if len(seen) != len(want) {
		t.Fatalf("scroll events %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("event %d: %v, want %v", i, seen[i], want[i])
		}
	}
}

func TestResizeRelayoutsViewportUnits(t *testing.T) {
	target := events.NewTarget()
	doc := NewDocument(target, Viewport{Width: 1280, Height: 800}, testSections())
	doc.ScrollTo(2200)

	var order []events.Kind
	target.AddListener(events.Resize, func(e events.Event) { order = append(order, e.Kind) })
	target.AddListener(events.Scroll, func(e events.Event) { order = append(order, e.Kind) })

	doc.Resize(Viewport{Width: 1280, Height: 400, PixelRatio: 2})

	if top, _ := doc.Lookup("#booking"); top != 1600 {
		t.Errorf("booking top after resize = %v, want 1600", top)
	}
	// Height 2600 - viewport 400 leaves the old offset reachable.
	if doc.ScrollY() != 2200 {
		t.Errorf("ScrollY() = %v, want 2200", doc.ScrollY())
	}
	if len(order) != 1 || order[0] != events.Resize {
		t.Errorf("events %v, want just resize", order)
	}

}

func TestResizeClampsScroll(t *testing.T) {
	target := events.NewTarget()
	doc := NewDocument(target, Viewport{Width: 1280, Height: 800}, []Section{
		{ID: "a", Height: Length{Value: 1000}},
		{ID: "b", Height: Length{Value: 2000}},
	})
	doc.ScrollTo(2200)

	var scrolled []float64
	target.AddListener(events.Scroll, func(e events.Event) { scrolled = append(scrolled, e.ScrollY) })

	doc.Resize(Viewport{Width: 1280, Height: 1200})
	if doc.ScrollY() != 1800 {
		t.Errorf("expected scroll clamped to 1800, got %v", doc.ScrollY())
	}
	if len(scrolled) != 1 || scrolled[0] != 1800 {
		t.Errorf("expected one scroll event at 1800, got %v", scrolled)
	}
}

func TestViewportCappedRatio(t *testing.T) {
	tests := []struct {
		ratio, want float64
	}{
		{0, 1},
		{1, 1},
		{1.5, 1.5},
		{3, 2},
	}
	for _, tt := range tests {
		if got := (Viewport{PixelRatio: tt.ratio}).CappedRatio(2); got != tt.want {
			t.Errorf("CappedRatio(%v) = %v, want %v", tt.ratio, got, tt.want)
		}
	}
}

func TestContainerChildren(t *testing.T) {
	c := NewContainer("fx")
	a, b := new(int), new(int)

	c.Append(a)
	c.Append(b)
	c.Append(a)

	children := c.Children()
	if len(children) != 2 || children[0] != Node(b) || children[1] != Node(a) {
		t.Errorf("unexpected child order %v", children)
	}

	if err := c.Remove(a); err != nil {
		t.Fatalf("Remove(a) = %v", err)
	}
	if err := c.Remove(a); !errors.Is(err, ErrNotChild) {
		t.Errorf("second Remove(a) = %v, want ErrNotChild", err)
	}
	if c.Contains(a) || !c.Contains(b) {
		t.Error("unexpected membership after removal")
	}
}

func TestNilContainer(t *testing.T) {
	var c *Container
	if c.Connected() {
		t.Error("nil container should not be connected")
	}
	if err := c.Remove(new(int)); !errors.Is(err, ErrNotChild) {
		t.Errorf("Remove on nil container = %v, want ErrNotChild", err)
	}
	if c.Contains(new(int)) || c.Children() != nil {
		t.Error("nil container should be empty")
	}
}
