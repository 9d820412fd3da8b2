package dom

import (
	"iter"
	"slices"
)

// All returns pre-order iterator over subtree rooted at n, n included.
func (n Node) All() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		n.walk(0, func(c Node, _ int) bool {
			return yield(c)
		})
	}
}

// walk visits subtree in pre-order and stops as soon as fn returns false.
func (n Node) walk(depth int, fn func(Node, int) bool) bool {
	if n.IsZero() {
		return true
	}
	if !fn(n, depth) {
		return false
	}
	for c := n.FirstChild(); !c.IsZero(); c = c.NextSibling() {
		if !c.walk(depth+1, fn) {
			return false
		}
	}
	return true
}

// Descendants returns n and every node below it in pre-order.
func (n Node) Descendants() []Node {
	return slices.Collect(n.All())
}

// DescendantsWithTag returns elements with given tag among Descendants, in
// pre-order.
func (n Node) DescendantsWithTag(tag string) []Node {
	var found []Node
	for c := range n.All() {
		if c.IsElement() && c.Tag() == tag {
			found = append(found, c)
		}
	}
	return found
}
