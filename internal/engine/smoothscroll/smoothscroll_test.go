package smoothscroll

import (
	"testing"
)

type fakeDoc struct {
	y, max float64
	moves  int
}

func (d *fakeDoc) ScrollY() float64   { return d.y }
func (d *fakeDoc) MaxScroll() float64 { return d.max }
func (d *fakeDoc) ScrollTo(y float64) {
	if y != d.y {
		d.moves++
	}
	d.y = y
}

func TestWheelEasesTowardTarget(t *testing.T) {
	doc := &fakeDoc{max: 2000}
	c := New(doc, DefaultOptions(), nil)

	var events []Event
	c.On(EventScroll, func(e Event) { events = append(events, e) })

	c.Wheel(300)
	if !c.Animating() {
		t.Fatal("expected controller to animate after wheel input")
	}

	frames := 0
	for c.Advance() {
		frames++
		if frames > 600 {
			t.Fatal("spring never settled")
		}
	}

	if doc.y != 300 {
		t.Errorf("document offset = %v, want 300", doc.y)
	}
	if len(events) < 2 {
		t.Fatalf("expected several eased events, got %d", len(events))
	}
	if events[0].Scroll <= 0 || events[0].Scroll >= 300 {
		t.Errorf("first eased step %v should be strictly between 0 and 300", events[0].Scroll)
	}
	last := events[len(events)-1]
	if last.Scroll != 300 || last.Velocity != 0 || last.Direction != 0 {
		t.Errorf("final event %+v, want settled at 300", last)
	}
	if last.Progress != 0.15 {
		t.Errorf("progress = %v, want 0.15", last.Progress)
	}
}

func TestTargetClampedToRange(t *testing.T) {
	doc := &fakeDoc{max: 500}
	c := New(doc, DefaultOptions(), nil)

	c.Wheel(-100)
	if c.Target() != 0 {
		t.Errorf("target = %v, want 0", c.Target())
	}
	c.Wheel(10000)
	if c.Target() != 500 {
		t.Errorf("target = %v, want 500", c.Target())
	}
}

func TestImmediateScrollClampsAndReportsProgress(t *testing.T) {
	doc := &fakeDoc{max: 800}
	c := New(doc, DefaultOptions(), nil)

	var last Event
	c.On(EventScroll, func(e Event) { last = e })

	tests := []struct {
		y        float64
		scroll   float64
		progress float64
	}{
		{-50, 0, 0},
		{200, 200, 0.25},
		{5000, 800, 1},
	}
	for _, tt := range tests {
		c.ScrollTo(tt.y, true)
		if doc.y != tt.scroll || last.Scroll != tt.scroll {
			t.Errorf("ScrollTo(%v): document %v, event %v, want %v", tt.y, doc.y, last.Scroll, tt.scroll)
		}
		if last.Progress != tt.progress {
			t.Errorf("ScrollTo(%v): progress = %v, want %v", tt.y, last.Progress, tt.progress)
		}
	}
}

func TestImmediateScrollEmitsOnce(t *testing.T) {
	doc := &fakeDoc{max: 1000}
	c := New(doc, DefaultOptions(), nil)

	calls := 0
	c.On(EventScroll, func(e Event) {
		calls++
		if e.Scroll != 400 {
			t.Errorf("scroll = %v, want 400", e.Scroll)
		}
	})

	c.ScrollTo(400, true)
	if calls != 1 || doc.y != 400 {
		t.Errorf("calls=%d doc=%v", calls, doc.y)
	}
	if c.Advance() {
		t.Error("controller should be at rest after an immediate jump")
	}
}

func TestOnOffSymmetry(t *testing.T) {
	doc := &fakeDoc{max: 1000}
	c := New(doc, DefaultOptions(), nil)

	calls := 0
	id := c.On(EventScroll, func(Event) { calls++ })
	if c.Subscribers() != 1 {
		t.Fatalf("Subscribers() = %d, want 1", c.Subscribers())
	}
	if !c.Off(EventScroll, id) {
		t.Fatal("Off should report an existing subscription")
	}
	if c.Off(EventScroll, id) {
		t.Error("second Off should report false")
	}

	c.ScrollTo(100, true)
	if calls != 0 {
		t.Errorf("handler called %d times after Off", calls)
	}
}

func TestUnknownEventNeverFires(t *testing.T) {
	doc := &fakeDoc{max: 1000}
	c := New(doc, DefaultOptions(), nil)

	calls := 0
	id := c.On("stop", func(Event) { calls++ })
	c.ScrollTo(100, true)

	if calls != 0 || c.Subscribers() != 0 {
		t.Errorf("calls=%d subscribers=%d", calls, c.Subscribers())
	}
	if c.Off("stop", id) {
		t.Error("Off for unknown event should report false")
	}
}

func TestResizeShrinksTarget(t *testing.T) {
	doc := &fakeDoc{max: 1000}
	c := New(doc, DefaultOptions(), nil)
	c.ScrollTo(900, true)

	doc.max = 600
	c.Resize()
	if c.Target() != 600 || !c.Animating() {
		t.Errorf("target=%v animating=%v", c.Target(), c.Animating())
	}
	c.Advance()
	if doc.y > 600 {
		t.Errorf("document offset %v exceeds new limit", doc.y)
	}
}
