package rosetree

// Cursor is an ephemeral navigation handle over a single tree. It holds a
// position that can move along parent and child references and mutate the
// tree in place. A tree must not be navigated by two cursors at once.
//
// Movement methods that cannot move (FirstChild on a leaf, MoveParent on
// the root) report false and leave the cursor where it was.
type Cursor[T comparable] struct {
	tree *Tree[T]
	cur  *node[T]
}

// Cursor returns a cursor positioned at the root, or ok=false for an empty
// tree.
func (t *Tree[T]) Cursor() (*Cursor[T], bool) {
	if t.root == nil {
		return nil, false
	}

	return &Cursor[T]{tree: t, cur: t.root}, true
}

// Valid reports whether the cursor still points at a live node. A cursor
// is invalidated by removing the node it points at.
func (c *Cursor[T]) Valid() bool {
	return c.cur != nil
}

// Value returns the value at the current position.
func (c *Cursor[T]) Value() T {
	return c.cur.value
}

// SetValue replaces the value at the current position.
func (c *Cursor[T]) SetValue(value T) {
	c.cur.value = value
}

// IsLeaf reports whether the current node has no children.
func (c *Cursor[T]) IsLeaf() bool {
	return len(c.cur.children) == 0
}

// IsRoot reports whether the current node is the root.
func (c *Cursor[T]) IsRoot() bool {
	return c.cur.parent == nil
}

// Level returns the depth of the current node; the root is at level 0.
func (c *Cursor[T]) Level() int {
	return c.cur.level
}

// PushChild appends a new child under the current node and leaves the
// cursor in place.
func (c *Cursor[T]) PushChild(value T) {
	child := &node[T]{value: value, parent: c.cur, level: c.cur.level + 1}
	c.cur.children = append(c.cur.children, child)
	c.tree.count++
}

// FirstChild moves to the first child. Reports false on a leaf.
func (c *Cursor[T]) FirstChild() bool {
	if len(c.cur.children) == 0 {
		return false
	}

	c.cur = c.cur.children[0]

	return true
}

// NextSibling moves to the next child of the same parent. Reports false at
// the root or at the last sibling.
func (c *Cursor[T]) NextSibling() bool {
	parent := c.cur.parent
	if parent == nil {
		return false
	}

	for i, sib := range parent.children {
		if sib == c.cur {
			if i+1 >= len(parent.children) {
				return false
			}
			c.cur = parent.children[i+1]

			return true
		}
	}

	return false
}

// MoveParent moves to the parent. Reports false at the root.
func (c *Cursor[T]) MoveParent() bool {
	if c.cur.parent == nil {
		return false
	}

	c.cur = c.cur.parent

	return true
}

// MoveRoot moves back to the root.
func (c *Cursor[T]) MoveRoot() {
	c.cur = c.tree.root
}

// FirstLeaf descends along first children to the leftmost leaf of the
// current subtree. A no-op when the current node is already a leaf.
func (c *Cursor[T]) FirstLeaf() {
	for len(c.cur.children) > 0 {
		c.cur = c.cur.children[0]
	}
}

// RemoveLeaf removes the current node when it is a leaf and moves the
// cursor to its parent. Removing the root empties the tree and invalidates
// the cursor. On a non-leaf, nothing is mutated and ok is false.
func (c *Cursor[T]) RemoveLeaf() (value T, ok bool) {
	if len(c.cur.children) > 0 {
		return value, false
	}

	removed := c.cur
	parent := removed.parent
	if parent == nil {
		c.tree.root = nil
	} else {
		detachChild(parent, removed)
	}
	removed.parent = nil
	c.tree.count--
	c.cur = parent

	return removed.value, true
}

// SplitIntoTree detaches the current subtree into a new independent tree.
// The cursor moves to the parent of the detached node; splitting at the
// root empties the original tree, invalidates the cursor, and reports
// ok=false.
func (c *Cursor[T]) SplitIntoTree() (split *Tree[T], ok bool) {
	detached := c.cur
	parent := detached.parent

	if parent == nil {
		split = &Tree[T]{root: detached, count: c.tree.count}
		c.tree.root = nil
		c.tree.count = 0
		c.cur = nil

		return split, false
	}

	detachChild(parent, detached)
	detached.parent = nil

	// Renormalize levels and count the detached subtree iteratively.
	shift := detached.level
	size := 0
	stack := []*node[T]{detached}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n.level -= shift
		size++
		stack = append(stack, n.children...)
	}

	c.tree.count -= size
	c.cur = parent

	return &Tree[T]{root: detached, count: size}, true
}

// detachChild removes child from parent's ordered child list, preserving
// the order of the remaining children.
func detachChild[T comparable](parent, child *node[T]) {
	for i, n := range parent.children {
		if n == child {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			return
		}
	}
}
