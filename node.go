package hopper

// Node is a member of the scene graph: an *Entity or a *Group. The set is
// closed; other types cannot implement it.
type Node interface {
	// Handle returns the node's arena handle. It goes stale once the node is
	// destroyed.
	Handle() Handle
	// Active reports whether the node takes part in update and render.
	Active() bool
	// Destroyed reports whether Destroy has been called.
	Destroyed() bool

	nodeName() string
	nodeView() View
	parentHandle() Handle
	setParent(h Handle)
	hide()
	update()
	render()
}

// container is anything that holds nodes: the World, a Group or an Entity.
type container interface {
	addChild(n Node)
	// removeChild reports false when n is not a member.
	removeChild(n Node) bool
	containerView() View
}

// containerOf resolves a parent handle to its container. The zero handle and
// stale handles resolve to nil.
func (w *World) containerOf(h Handle) container {
	if h == worldHandle {
		return w
	}
	switch c := w.nodes.get(h).(type) {
	case *Group:
		return c
	case *Entity:
		return c
	}
	return nil
}

// reparent moves n from its current container into dst. A nil dst detaches
// n from the tree and hides its view.
func (w *World) reparent(n Node, dst container, dstHandle Handle) {
	if old := w.containerOf(n.parentHandle()); old != nil {
		old.removeChild(n)
	}
	if dst == nil {
		n.setParent(Handle{})
		n.hide()
		return
	}
	dst.addChild(n)
	n.setParent(dstHandle)
	if v := n.nodeView(); v != 0 {
		w.surface.Attach(v, dst.containerView())
	}
}

// updateNode runs one child's update, isolating a panic to that child.
func updateNode(n Node) {
	defer recoverNode("update", n)
	n.update()
}

// renderNode runs one child's render, isolating a panic to that child.
func renderNode(n Node) {
	defer recoverNode("render", n)
	n.render()
}

// removeEntity removes e from list, preserving order. Reports whether e was
// found. Uses copy+nil to avoid retaining a dangling pointer.
func removeEntity(list []*Entity, e *Entity) ([]*Entity, bool) {
	for i, c := range list {
		if c == e {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = nil
			return list[:len(list)-1], true
		}
	}
	return list, false
}
