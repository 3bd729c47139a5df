// Package frame schedules callbacks against the display refresh, the way a
// browser's animation-frame queue does.
package frame

import "time"

// Callback runs once for the frame it was requested for.
type Callback func(now time.Time)

// RequestID identifies a pending callback.
type RequestID uint64

// Scheduler is the request/cancel contract the animation loops depend on.
type Scheduler interface {
	Request(cb Callback) RequestID
	Cancel(id RequestID)
}

type request struct {
	id RequestID
	cb Callback
}

// Queue is a Scheduler flushed by the host once per presented frame.
// Callbacks requested while a flush is running wait for the next flush.
type Queue struct {
	nextID  RequestID
	pending []request
	frames  uint64

	// inFlight holds the batch being flushed; Cancel flips entries to false.
	inFlight map[RequestID]bool
}

// NewQueue creates an empty frame queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Request schedules cb for the next flush.
func (q *Queue) Request(cb Callback) RequestID {
	q.nextID++
	q.pending = append(q.pending, request{id: q.nextID, cb: cb})
	return q.nextID
}

// Cancel drops a pending request, including one in the batch currently
// being flushed that has not run yet. Unknown or already-run ids are ignored.
func (q *Queue) Cancel(id RequestID) {
	for i, r := range q.pending {
		if r.id == id {
			q.pending = append(q.pending[:i:i], q.pending[i+1:]...)
			return
		}
	}
	if _, ok := q.inFlight[id]; ok {
		q.inFlight[id] = false
	}
}

// Flush runs every callback requested before the call and returns how many ran.
func (q *Queue) Flush(now time.Time) int {
	batch := q.pending
	q.pending = nil
	q.frames++

	q.inFlight = make(map[RequestID]bool, len(batch))
	for _, r := range batch {
		q.inFlight[r.id] = true
	}
	defer func() { q.inFlight = nil }()

	ran := 0
	for _, r := range batch {
		if !q.inFlight[r.id] {
			continue
		}
		delete(q.inFlight, r.id)
		r.cb(now)
		ran++
	}
	return ran
}

// Pending returns the number of callbacks waiting for the next flush.
func (q *Queue) Pending() int {
	return len(q.pending)
}

// Frames returns how many flushes have happened.
func (q *Queue) Frames() uint64 {
	return q.frames
}
