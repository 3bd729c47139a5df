package anim

import (
	"time"

	"github.com/Faultbox/detailfx/internal/engine/frame"
)

// Driven pairs a sampling function with an apply function. The sample reads
// the latest input signals; apply derives the new visual state from the
// sample and draws it.
type Driven[S any] struct {
	sample func() S
	apply  func(S)
	loop   *Loop
	last   S
	steps  uint64
}

// NewDriven creates an animation from its sample and apply halves.
func NewDriven[S any](sample func() S, apply func(S)) *Driven[S] {
	return &Driven[S]{sample: sample, apply: apply}
}

// Step samples once and applies the result.
func (d *Driven[S]) Step() S {
	s := d.sample()
	d.apply(s)
	d.last = s
	d.steps++
	return s
}

// Run steps once per frame from the scheduler until Stop.
func (d *Driven[S]) Run(frames frame.Scheduler) {
	if d.loop == nil {
		d.loop = NewLoop(frames, func(time.Time) { d.Step() })
	}
	d.loop.Start()
}

// Stop halts a running animation. Event-driven animations have nothing to stop.
func (d *Driven[S]) Stop() {
	if d.loop != nil {
		d.loop.Stop()
	}
}

// Running reports whether the animation is scheduled on frames.
func (d *Driven[S]) Running() bool {
	return d.loop != nil && d.loop.State() == Running
}

// Last returns the most recent sample.
func (d *Driven[S]) Last() S {
	return d.last
}

// Steps returns how many times the animation has been applied.
func (d *Driven[S]) Steps() uint64 {
	return d.steps
}
