// Package rosetree implements an owned n-ary tree with parent
// back-references, cursor navigation, and preorder-pair reconstruction.
//
// A Tree exclusively owns its nodes; values are reached and mutated only
// through the Tree and Cursor APIs. Each node carries its value, a parent
// reference, an ordered child list, and its depth level (root = 0).
//
// # Preorder pairs
//
// A tree with at least two nodes round-trips through its preorder edge
// sequence: the (parent, child) pairs emitted by a preorder traversal.
// FromPreorderPairs rebuilds the tree from that sequence, attaching each
// pair by descending to the most recent child, adding a sibling under the
// current parent, or ascending to the nearest matching ancestor:
//
//	pairs := []rosetree.Pair[string]{{"R", "H"}, {"H", "E"}, {"E", "A"}}
//	tree, err := rosetree.FromPreorderPairList(pairs)
//
// The reconstruction is unambiguous when sibling values are distinct under
// each parent; Clone relies on this round trip.
//
// # Deep trees
//
// Every traversal, comparison, and destruction path is iterative. Draining
// or clearing a tree walks to the leftmost leaf and removes it repeatedly,
// so a tree nested a hundred thousand levels deep is destroyed in O(depth)
// heap and O(1) stack, never by per-node recursion.
package rosetree
