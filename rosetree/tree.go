package rosetree

import (
	"fmt"
	"iter"
)

// node is the internal representation of a tree element. Nodes are owned by
// exactly one Tree and are never handed out to callers.
type node[T comparable] struct {
	value    T
	parent   *node[T] // nil only for the root
	children []*node[T]
	level    int // root = 0
}

// Tree is an owned n-ary tree. The zero state (from New) is empty; the tree
// caches its node count so Len is O(1).
type Tree[T comparable] struct {
	root  *node[T]
	count int
}

// Pair is a preorder edge: a parent value and one of its child values.
type Pair[T comparable] struct {
	Parent T
	Child  T
}

// PairError reports the first preorder pair whose parent value could not be
// located while rebuilding a tree.
type PairError[T comparable] struct {
	Parent T
	Child  T
}

func (e *PairError[T]) Error() string {
	return fmt.Sprintf("rosetree: cannot attach pair (%v, %v): no matching ancestor", e.Parent, e.Child)
}

// New creates an empty tree.
func New[T comparable]() *Tree[T] {
	return &Tree[T]{}
}

// NewWithRoot creates a tree holding a single root node.
func NewWithRoot[T comparable](value T) *Tree[T] {
	return &Tree[T]{root: &node[T]{value: value}, count: 1}
}

// Len returns the number of live nodes.
func (t *Tree[T]) Len() int {
	return t.count
}

// IsEmpty reports whether the tree has no nodes.
func (t *Tree[T]) IsEmpty() bool {
	return t.root == nil
}

// FromPreorderPairs rebuilds a tree from the edge sequence produced by a
// preorder traversal. The first pair establishes the root; each following
// pair (parent, child) is attached by one of three moves, tried in order:
//
//  1. descend: parent equals the most recently inserted child
//  2. sibling: parent equals the current attachment point
//  3. ascend: parent equals the nearest ancestor of the attachment point
//
// When no ancestor matches, the offending pair is returned as a *PairError
// and the partially built tree is discarded.
func FromPreorderPairs[T comparable](pairs iter.Seq2[T, T]) (*Tree[T], error) {
	t := New[T]()

	var currentParent, lastChild *node[T]
	for p, c := range pairs {
		switch {
		case t.root == nil:
			t.root = &node[T]{value: p}
			t.count = 1
			currentParent = t.root
		case lastChild != nil && p == lastChild.value:
			currentParent = lastChild
		case p == currentParent.value:
			// Sibling of the last child; the attachment point stays.
		default:
			anc := currentParent.parent
			for anc != nil && anc.value != p {
				anc = anc.parent
			}
			if anc == nil {
				return nil, &PairError[T]{Parent: p, Child: c}
			}
			currentParent = anc
		}

		child := &node[T]{value: c, parent: currentParent, level: currentParent.level + 1}
		currentParent.children = append(currentParent.children, child)
		t.count++
		lastChild = child
	}

	return t, nil
}

// FromPreorderPairList is FromPreorderPairs over a slice.
func FromPreorderPairList[T comparable](pairs []Pair[T]) (*Tree[T], error) {
	return FromPreorderPairs(func(yield func(T, T) bool) {
		for _, p := range pairs {
			if !yield(p.Parent, p.Child) {
				return
			}
		}
	})
}

// VisitPreorder calls fn for every value in preorder (parents before
// children, children in insertion order). The walk is iterative.
func (t *Tree[T]) VisitPreorder(fn func(value T)) {
	for v := range t.All() {
		fn(v)
	}
}

// All iterates all values in preorder.
func (t *Tree[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if t.root == nil {
			return
		}

		stack := []*node[T]{t.root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(n.value) {
				return
			}
			for i := len(n.children) - 1; i >= 0; i-- {
				stack = append(stack, n.children[i])
			}
		}
	}
}

// VisitPreorderPairs calls fn for every edge in preorder. The emitted
// sequence is exactly the input accepted by FromPreorderPairs.
func (t *Tree[T]) VisitPreorderPairs(fn func(parent, child T)) {
	for p, c := range t.PreorderPairs() {
		fn(p, c)
	}
}

// PreorderPairs iterates the (parent, child) edges in preorder.
func (t *Tree[T]) PreorderPairs() iter.Seq2[T, T] {
	return func(yield func(T, T) bool) {
		if t.root == nil {
			return
		}

		stack := []*node[T]{t.root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if n.parent != nil {
				if !yield(n.parent.value, n.value) {
					return
				}
			}
			for i := len(n.children) - 1; i >= 0; i-- {
				stack = append(stack, n.children[i])
			}
		}
	}
}

// PreorderPairList collects PreorderPairs into a slice.
func (t *Tree[T]) PreorderPairList() []Pair[T] {
	if t.count <= 1 {
		return nil
	}

	pairs := make([]Pair[T], 0, t.count-1)
	t.VisitPreorderPairs(func(p, c T) {
		pairs = append(pairs, Pair[T]{Parent: p, Child: c})
	})

	return pairs
}

// Equal reports structural equality: same values, same child counts, same
// child order throughout. Trees of different length short-circuit to false.
func (t *Tree[T]) Equal(other *Tree[T]) bool {
	if t.count != other.count {
		return false
	}
	if t.root == nil || other.root == nil {
		return t.root == nil && other.root == nil
	}

	type framePair struct {
		a, b *node[T]
	}

	stack := []framePair{{t.root, other.root}}
	for len(stack) > 0 {
		fp := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if fp.a.value != fp.b.value || len(fp.a.children) != len(fp.b.children) {
			return false
		}
		for i := range fp.a.children {
			stack = append(stack, framePair{fp.a.children[i], fp.b.children[i]})
		}
	}

	return true
}

// Clone returns a structurally equal copy. The copy is rebuilt from the
// preorder pair sequence, so no per-node recursion is involved.
func (t *Tree[T]) Clone() *Tree[T] {
	switch t.count {
	case 0:
		return New[T]()
	case 1:
		return NewWithRoot(t.root.value)
	}

	clone, err := FromPreorderPairList(t.PreorderPairList())
	if err != nil {
		// A live tree always emits an attachable sequence.
		panic(fmt.Sprintf("rosetree: clone rebuild failed: %v", err))
	}

	return clone
}

// DrainPostOrder consumes the tree, yielding values in post-order. The
// drain repeatedly removes the leftmost leaf, so stack usage is constant
// regardless of depth. Breaking out of the iteration leaves the tree
// partially drained.
func (t *Tree[T]) DrainPostOrder() iter.Seq[T] {
	return func(yield func(T) bool) {
		cur := t.root
		for cur != nil {
			for len(cur.children) > 0 {
				cur = cur.children[0]
			}

			parent := cur.parent
			if parent == nil {
				t.root = nil
			} else {
				parent.children = parent.children[1:]
			}
			cur.parent = nil
			t.count--

			if !yield(cur.value) {
				return
			}

			cur = parent
		}
	}
}

// Clear removes every node through the post-order drain, keeping stack
// usage independent of tree depth.
func (t *Tree[T]) Clear() {
	for range t.DrainPostOrder() {
	}
}
