package dom

// Copy returns a deep copy of the subtree rooted at n. The copy is a root
// living in the same document, every node in it is newly created and it is
// Equal to n.
func (n Node) Copy() Node {
	if n.IsZero() {
		return Node{}
	}
	d := n.doc
	s := d.slots[n.id]
	if s.kind == KindText {
		return d.NewText(s.value)
	}
	c := d.NewElement(s.value)
	for child := n.FirstChild(); !child.IsZero(); child = child.NextSibling() {
		d.insertBefore(d.slots[c.id].ring, child.Copy().id)
	}
	return c
}

// Equal reports whether subtrees rooted at n and o are structurally equal:
// same kind and payload and pairwise equal children in the same order. Node
// identity is ignored, so nodes from different documents may be compared.
func (n Node) Equal(o Node) bool {
	if n.IsZero() || o.IsZero() {
		return n.IsZero() && o.IsZero()
	}
	if n.Payload() != o.Payload() {
		return false
	}
	a, b := n.FirstChild(), o.FirstChild()
	for !a.IsZero() && !b.IsZero() {
		if !a.Equal(b) {
			return false
		}
		a, b = a.NextSibling(), b.NextSibling()
	}
	return a.IsZero() && b.IsZero()
}
