package dom

// Ring primitives operate on arena indexes and do not check preconditions,
// callers in node.go do.

// insertBefore splices root slot c into a ring right in front of slot at.
// Inserting in front of a sentinel appends c as the last child.
func (d *Document) insertBefore(at, c int32) {
	prev := d.slots[at].prev
	d.slots[c].prev = prev
	d.slots[c].next = at
	d.slots[prev].next = c
	d.slots[at].prev = c
}

// unlink removes attached slot c from its ring, making it a root.
func (d *Document) unlink(c int32) {
	next, prev := d.slots[c].next, d.slots[c].prev
	d.slots[prev].next = next
	d.slots[next].prev = prev
	d.slots[c].next, d.slots[c].prev = 0, 0
}

// sentinelOf follows next links starting after attached slot c until it finds
// the sentinel of the ring.
func (d *Document) sentinelOf(c int32) int32 {
	i := d.slots[c].next
	for range len(d.slots) {
		if d.slots[i].kind == kindSentinel {
			return i
		}
		i = d.slots[i].next
	}
	panic("dom: sibling ring has no sentinel")
}

// parentOf returns element owning the ring slot c is attached to or 0 for
// roots.
func (d *Document) parentOf(c int32) int32 {
	if d.slots[c].next == 0 {
		return 0
	}
	return d.slots[d.sentinelOf(c)].owner
}

// isAncestorOrSelf reports whether a is e or one of e's ancestors.
func (d *Document) isAncestorOrSelf(a, e int32) bool {
	for i := e; i != 0; i = d.parentOf(i) {
		if i == a {
			return true
		}
	}
	return false
}

// member converts attached ring slot i into a node handle, sentinel becomes
// zero handle.
func (d *Document) member(i int32) Node {
	if i == 0 || d.slots[i].kind == kindSentinel {
		return Node{}
	}
	return Node{doc: d, id: i}
}
