package page

import "errors"

// ErrNotChild is returned when removing a node that is not attached.
var ErrNotChild = errors.New("page: node is not a child of this container")

// Node is anything attachable to a container. Nodes are compared by
// identity, so implementations should be pointers.
type Node any

// Container is a mount point render surfaces attach themselves to. The host
// compositor presents its children in order every frame.
type Container struct {
	id        string
	connected bool
	children  []Node
}

// NewContainer creates a connected container.
func NewContainer(id string) *Container {
	return &Container{id: id, connected: true}
}

// ID returns the container id.
func (c *Container) ID() string {
	return c.id
}

// Connected reports whether the container is part of the live document.
// A nil container is never connected.
func (c *Container) Connected() bool {
	return c != nil && c.connected
}

// Disconnect detaches the container from the document. Children stay
// attached to it until they remove themselves.
func (c *Container) Disconnect() {
	c.connected = false
}

// Connect re-attaches the container to the document.
func (c *Container) Connect() {
	c.connected = true
}

// Append adds n as the last child, moving it if already present.
func (c *Container) Append(n Node) {
	c.remove(n)
	c.children = append(c.children, n)
}

// Remove detaches n. It returns ErrNotChild if n is not attached.
func (c *Container) Remove(n Node) error {
	if c == nil || !c.remove(n) {
		return ErrNotChild
	}
	return nil
}

func (c *Container) remove(n Node) bool {
	for i, child := range c.children {
		if child == n {
			c.children = append(c.children[:i:i], c.children[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether n is a child.
func (c *Container) Contains(n Node) bool {
	if c == nil {
		return false
	}
	for _, child := range c.children {
		if child == n {
			return true
		}
	}
	return false
}

// Children returns a copy of the child list in paint order.
func (c *Container) Children() []Node {
	if c == nil {
		return nil
	}
	return append([]Node(nil), c.children...)
}
