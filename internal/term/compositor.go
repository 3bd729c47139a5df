package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/detailfx/internal/engine/page"
)

// Layer is a render surface the compositor can present.
type Layer interface {
	Canvas() *Canvas
	Blend() Blend
}

// Compositor composes layers over the background and writes them to a
// screen.
type Compositor struct {
	screen     tcell.Screen
	background [3]float32
	frame      *Canvas
}

// NewCompositor creates a compositor for screen.
func NewCompositor(screen tcell.Screen, background [3]float32) *Compositor {
	return &Compositor{screen: screen, background: background, frame: NewCanvas(0, 0)}
}

// Present draws every layer among nodes in order and shows the result.
// Nodes that are not layers are skipped.
func (c *Compositor) Present(nodes []page.Node) {
	cols, rows := c.screen.Size()
	if w, h := c.frame.Size(); w != cols || h != rows*2 {
		c.frame.Resize(cols, rows*2)
	}
	c.frame.Fill(c.background)
	for _, n := range nodes {
		if l, ok := n.(Layer); ok {
			c.frame.Composite(l.Canvas(), l.Blend())
		}
	}
	c.frame.Blit(c.screen)
	c.screen.Show()
}

// Frame returns the last composed canvas.
func (c *Compositor) Frame() *Canvas {
	return c.frame
}
