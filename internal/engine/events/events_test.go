package events

import "testing"

func TestDispatchByKind(t *testing.T) {
	target := NewTarget()

	var moves, scrolls int
	target.AddListener(PointerMove, func(Event) { moves++ })
	target.AddListener(Scroll, func(Event) { scrolls++ })

	target.Dispatch(Event{Kind: PointerMove, X: 10})
	target.Dispatch(Event{Kind: PointerMove, X: 20})
	target.Dispatch(Event{Kind: Scroll, ScrollY: 5})

	if moves != 2 {
		t.Errorf("expected 2 pointer events, got %d", moves)
	}
	if scrolls != 1 {
		t.Errorf("expected 1 scroll event, got %d", scrolls)
	}
}

func TestRemoveListener(t *testing.T) {
	target := NewTarget()

	calls := 0
	id := target.AddListener(Resize, func(Event) { calls++ })

	if !target.RemoveListener(id) {
		t.Fatal("expected first removal to succeed")
	}
	if target.RemoveListener(id) {
		t.Error("expected second removal to report false")
	}

	target.Dispatch(Event{Kind: Resize, Width: 100, Height: 100})
	if calls != 0 {
		t.Errorf("removed listener was called %d times", calls)
	}
	if target.Len() != 0 {
		t.Errorf("expected no listeners, got %d", target.Len())
	}
}

func TestRemoveDuringDispatch(t *testing.T) {
	target := NewTarget()

	var second ListenerID
	secondCalls := 0
	target.AddListener(Scroll, func(Event) { target.RemoveListener(second) })
	second = target.AddListener(Scroll, func(Event) { secondCalls++ })

	target.Dispatch(Event{Kind: Scroll})
	if secondCalls != 0 {
		t.Errorf("listener removed mid-dispatch was still called %d times", secondCalls)
	}
	if target.Count(Scroll) != 1 {
		t.Errorf("expected 1 scroll listener left, got %d", target.Count(Scroll))
	}
}

func TestAddDuringDispatchWaitsForNextEvent(t *testing.T) {
	target := NewTarget()

	lateCalls := 0
	added := false
	target.AddListener(Wheel, func(Event) {
		if !added {
			added = true
			target.AddListener(Wheel, func(Event) { lateCalls++ })
		}
	})

	target.Dispatch(Event{Kind: Wheel})
	if lateCalls != 0 {
		t.Errorf("listener added mid-dispatch ran in the same dispatch")
	}
	target.Dispatch(Event{Kind: Wheel})
	if lateCalls != 1 {
		t.Errorf("expected late listener to run once, got %d", lateCalls)
	}
}

func TestKindString(t *testing.T) {
	if PointerMove.String() != "pointermove" || Scroll.String() != "scroll" {
		t.Errorf("unexpected names: %s, %s", PointerMove, Scroll)
	}
}
