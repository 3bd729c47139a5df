package frame

import (
	"testing"
	"time"
)

func TestFlushRunsRequestedCallbacksOnce(t *testing.T) {
	q := NewQueue()

	calls := 0
	q.Request(func(time.Time) { calls++ })
	q.Request(func(time.Time) { calls++ })

	if ran := q.Flush(time.Now()); ran != 2 {
		t.Errorf("expected 2 callbacks to run, got %d", ran)
	}
	if ran := q.Flush(time.Now()); ran != 0 {
		t.Errorf("expected nothing on second flush, got %d", ran)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
	if q.Frames() != 2 {
		t.Errorf("expected 2 frames, got %d", q.Frames())
	}
}

func TestRequestDuringFlushWaitsForNextFrame(t *testing.T) {
	q := NewQueue()

	var frames []uint64
	var tick Callback
	tick = func(time.Time) {
		frames = append(frames, q.Frames())
		q.Request(tick)
	}
	q.Request(tick)

	q.Flush(time.Now())
	q.Flush(time.Now())
	q.Flush(time.Now())

	if len(frames) != 3 {
		t.Fatalf("expected one run per flush, got %v", frames)
	}
	if q.Pending() != 1 {
		t.Errorf("expected the rescheduled callback to be pending, got %d", q.Pending())
	}
}

func TestCancelPending(t *testing.T) {
	q := NewQueue()

	calls := 0
	id := q.Request(func(time.Time) { calls++ })
	q.Cancel(id)
	q.Cancel(id)

	q.Flush(time.Now())
	if calls != 0 {
		t.Errorf("cancelled callback ran %d times", calls)
	}
}

func TestCancelWithinSameFlush(t *testing.T) {
	q := NewQueue()

	var victim RequestID
	victimCalls := 0
	q.Request(func(time.Time) { q.Cancel(victim) })
	victim = q.Request(func(time.Time) { victimCalls++ })

	if ran := q.Flush(time.Now()); ran != 1 {
		t.Errorf("expected 1 callback to run, got %d", ran)
	}
	if victimCalls != 0 {
		t.Errorf("callback cancelled mid-flush still ran")
	}
}
