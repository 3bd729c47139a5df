// Package smoothscroll implements the shared smooth-scroll controller: wheel
// input moves a target offset and a critically damped spring eases the
// document toward it, one step per frame. Components subscribe to its
// "scroll" event to receive the eased value.
package smoothscroll

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"go.uber.org/zap"

	pmath "github.com/Faultbox/detailfx/pkg/math"
)

// EventScroll is the only event the controller emits.
const EventScroll = "scroll"

// settle is the distance and speed, in pixels, below which the spring snaps
// to its target.
const settle = 0.5

// Event is the payload delivered to scroll subscribers.
type Event struct {
	Scroll    float64 // eased offset in pixels
	Limit     float64 // maximum offset
	Progress  float64 // Scroll/Limit in [0, 1]
	Velocity  float64 // pixels per second
	Direction int     // 1 down, -1 up, 0 at rest
}

// Handler receives scroll events.
type Handler func(Event)

// SubscriptionID identifies an On registration.
type SubscriptionID uint64

// Document is the scroll target the controller drives.
type Document interface {
	ScrollY() float64
	MaxScroll() float64
	ScrollTo(y float64)
}

// Options tunes the spring.
type Options struct {
	FPS             int
	Frequency       float64
	Damping         float64
	WheelMultiplier float64
}

// DefaultOptions returns the spring used by the site.
func DefaultOptions() Options {
	return Options{FPS: 60, Frequency: 6, Damping: 1, WheelMultiplier: 1}
}

type subscription struct {
	id      SubscriptionID
	handler Handler
	removed bool
}

// Controller is the smooth-scroll signal source.
type Controller struct {
	doc    Document
	opts   Options
	spring harmonica.Spring
	log    *zap.Logger

	target    float64
	current   float64
	velocity  float64
	animating bool

	nextID SubscriptionID
	subs   []*subscription
}

// New creates a controller starting at the document's current offset.
func New(doc Document, opts Options, log *zap.Logger) *Controller {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.WheelMultiplier == 0 {
		opts.WheelMultiplier = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	y := doc.ScrollY()
	return &Controller{
		doc:     doc,
		opts:    opts,
		spring:  harmonica.NewSpring(harmonica.FPS(opts.FPS), opts.Frequency, opts.Damping),
		log:     log,
		target:  y,
		current: y,
	}
}

// On subscribes h to event. Only "scroll" is emitted; other names are
// accepted and never fire.
func (c *Controller) On(event string, h Handler) SubscriptionID {
	c.nextID++
	if event != EventScroll {
		c.log.Warn("subscription to unknown event", zap.String("event", event))
		return c.nextID
	}
	c.subs = append(c.subs, &subscription{id: c.nextID, handler: h})
	return c.nextID
}

// Off removes a subscription and reports whether it existed.
func (c *Controller) Off(event string, id SubscriptionID) bool {
	if event != EventScroll {
		return false
	}
	for i, s := range c.subs {
		if s.id == id {
			s.removed = true
			c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Subscribers returns the number of live subscriptions.
func (c *Controller) Subscribers() int {
	return len(c.subs)
}

// Wheel moves the target by a wheel delta in pixels.
func (c *Controller) Wheel(deltaY float64) {
	c.ScrollTo(c.target+deltaY*c.opts.WheelMultiplier, false)
}

// ScrollTo sets a new target. With immediate the document jumps there and
// subscribers are notified at once.
func (c *Controller) ScrollTo(y float64, immediate bool) {
	c.target = pmath.Clamp(y, 0, c.doc.MaxScroll())
	if immediate {
		c.current = c.target
		c.velocity = 0
		c.animating = false
		c.doc.ScrollTo(c.current)
		c.emit()
		return
	}
	c.animating = c.target != c.current || c.velocity != 0
}

// Resize re-clamps the target after the scroll range changed.
func (c *Controller) Resize() {
	limit := c.doc.MaxScroll()
	if c.target > limit || c.current > limit {
		c.target = math.Min(c.target, limit)
		c.animating = true
	}
}

// Advance runs one spring step. It returns false when the controller is at rest.
func (c *Controller) Advance() bool {
	if !c.animating {
		return false
	}

	c.current, c.velocity = c.spring.Update(c.current, c.velocity, c.target)
	if math.Abs(c.target-c.current) < settle && math.Abs(c.velocity) < settle {
		c.current = c.target
		c.velocity = 0
		c.animating = false
	}
	c.current = pmath.Clamp(c.current, 0, c.doc.MaxScroll())

	c.doc.ScrollTo(c.current)
	c.emit()
	return c.animating
}

// Animating reports whether the spring is still moving.
func (c *Controller) Animating() bool {
	return c.animating
}

// Current returns the eased offset.
func (c *Controller) Current() float64 {
	return c.current
}

// Target returns the offset the spring is heading to.
func (c *Controller) Target() float64 {
	return c.target
}

func (c *Controller) emit() {
	limit := c.doc.MaxScroll()
	e := Event{
		Scroll:   c.current,
		Limit:    limit,
		Velocity: c.velocity,
	}
	if limit > 0 {
		e.Progress = pmath.Clamp(c.current/limit, 0, 1)
	}
	switch {
	case c.velocity > 0:
		e.Direction = 1
	case c.velocity < 0:
		e.Direction = -1
	}

	snapshot := append([]*subscription(nil), c.subs...)
	for _, s := range snapshot {
		if s.removed {
			continue
		}
		s.handler(e)
	}
}
