// Package anim drives "sample signals, derive a transform, draw" animations,
// either continuously from the frame scheduler or on demand from events.
package anim

import (
	"context"
	"time"

	"github.com/Faultbox/detailfx/internal/engine/frame"
)

// State is the run state of a Loop.
type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Loop runs tick once per frame until stopped.
//
// Every run owns a context. Stop cancels it and the pending frame request;
// the frame callback checks the context before ticking and again before
// rescheduling, so no tick executes after Stop returns.
type Loop struct {
	frames frame.Scheduler
	tick   func(now time.Time)

	state   State
	cancel  context.CancelFunc
	pending frame.RequestID
	ticks   uint64
}

// NewLoop creates a stopped loop.
func NewLoop(frames frame.Scheduler, tick func(now time.Time)) *Loop {
	return &Loop{frames: frames, tick: tick}
}

// Start begins scheduling frames. Starting a running loop is a no-op.
func (l *Loop) Start() {
	if l.state == Running {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.state = Running
	l.pending = l.frames.Request(l.frameFunc(ctx))
}

// Stop halts the loop. It is safe to call from any state, including from
// inside the tick.
func (l *Loop) Stop() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	if l.pending != 0 {
		l.frames.Cancel(l.pending)
		l.pending = 0
	}
	l.state = Stopped
}

// State returns the current run state.
func (l *Loop) State() State {
	return l.state
}

// Ticks returns how many frames have run since creation.
func (l *Loop) Ticks() uint64 {
	return l.ticks
}

func (l *Loop) frameFunc(ctx context.Context) frame.Callback {
	var cb frame.Callback
	cb = func(now time.Time) {
		if ctx.Err() != nil {
			return
		}
		l.pending = 0
		l.ticks++
		l.tick(now)
		if ctx.Err() != nil {
			return
		}
		l.pending = l.frames.Request(cb)
	}
	return cb
}
