package dom

import "fmt"

// Node is a handle of a text or element node living in a Document. Handles
// are small values and compare equal when they name the same node. The zero
// Node names nothing.
type Node struct {
	doc *Document
	id  int32
}

// IsZero reports whether n names no node.
func (n Node) IsZero() bool {
	return n.doc == nil
}

// Document returns the arena n lives in.
func (n Node) Document() *Document {
	return n.doc
}

func (n Node) slot() slot {
	if n.doc == nil {
		return slot{}
	}
	return n.doc.slots[n.id]
}

func (n Node) Kind() Kind {
	return n.slot().kind
}

func (n Node) IsText() bool {
	return n.Kind() == KindText
}

func (n Node) IsElement() bool {
	return n.Kind() == KindElement
}

// Text returns content of a text node and empty string for anything else.
func (n Node) Text() string {
	if s := n.slot(); s.kind == KindText {
		return s.value
	}
	return ""
}

// Tag returns tag name of an element node and empty string for anything else.
func (n Node) Tag() string {
	if s := n.slot(); s.kind == KindElement {
		return s.value
	}
	return ""
}

// Payload returns what n was created from.
func (n Node) Payload() Payload {
	s := n.slot()
	return Payload{kind: s.kind, value: s.value}
}

// IsRoot reports whether n is not attached to any parent. The zero Node is
// not a root.
func (n Node) IsRoot() bool {
	return !n.IsZero() && n.slot().next == 0
}

// AddChild appends root node child as the last child of element n.
//
// It fails with ErrPreconditionViolation when n is not an element, when child
// is already attached somewhere, when both belong to different documents or
// when child is n or one of its ancestors. Attached nodes are never moved
// implicitly: Detach them first.
func (n Node) AddChild(child Node) error {
	if n.IsZero() || child.IsZero() {
		return fmt.Errorf("%w: add child with zero node", ErrPreconditionViolation)
	}
	if n.doc != child.doc {
		return fmt.Errorf("%w: nodes belong to different documents", ErrPreconditionViolation)
	}
	d := n.doc
	if d.slots[n.id].kind != KindElement {
		return fmt.Errorf("%w: text node %q cannot have children", ErrPreconditionViolation, d.slots[n.id].value)
	}
	if d.slots[child.id].next != 0 {
		return fmt.Errorf("%w: node is already attached", ErrPreconditionViolation)
	}
	if d.slots[child.id].kind == KindElement && d.isAncestorOrSelf(child.id, n.id) {
		return fmt.Errorf("%w: <%s> cannot become its own descendant", ErrPreconditionViolation, d.slots[child.id].value)
	}
	d.insertBefore(d.slots[n.id].ring, child.id)
	return nil
}

// Detach removes attached node n from its parent and makes it a root again.
// Remaining siblings keep their order. Detaching a root fails with
// ErrPreconditionViolation.
func (n Node) Detach() error {
	if n.IsZero() {
		return fmt.Errorf("%w: detach of zero node", ErrPreconditionViolation)
	}
	if n.doc.slots[n.id].next == 0 {
		return fmt.Errorf("%w: detach of root node", ErrPreconditionViolation)
	}
	n.doc.unlink(n.id)
	return nil
}

// Parent returns the element n is attached to and false for roots.
//
// Nodes do not store their parent: lookup walks n's sibling ring forward until
// it reaches the ring sentinel, which holds the only parent reference. The
// cost is O(number of n's siblings).
func (n Node) Parent() (Node, bool) {
	if n.IsZero() {
		return Node{}, false
	}
	p := n.doc.parentOf(n.id)
	if p == 0 {
		return Node{}, false
	}
	return Node{doc: n.doc, id: p}, true
}

// FirstChild returns first child of element n or zero Node.
func (n Node) FirstChild() Node {
	s := n.slot()
	if s.kind != KindElement {
		return Node{}
	}
	return n.doc.member(n.doc.slots[s.ring].next)
}

// LastChild returns last child of element n or zero Node.
func (n Node) LastChild() Node {
	s := n.slot()
	if s.kind != KindElement {
		return Node{}
	}
	return n.doc.member(n.doc.slots[s.ring].prev)
}

// NextSibling returns node following n under the same parent or zero Node.
func (n Node) NextSibling() Node {
	if n.IsZero() {
		return Node{}
	}
	return n.doc.member(n.doc.slots[n.id].next)
}

// PrevSibling returns node preceding n under the same parent or zero Node.
func (n Node) PrevSibling() Node {
	if n.IsZero() {
		return Node{}
	}
	return n.doc.member(n.doc.slots[n.id].prev)
}

// Children returns a snapshot of n's children in order. The slice does not
// follow later changes of the tree.
func (n Node) Children() []Node {
	var children []Node
	for c := n.FirstChild(); !c.IsZero(); c = c.NextSibling() {
		children = append(children, c)
	}
	return children
}

// NumChildren returns number of n's children.
func (n Node) NumChildren() int {
	var count int
	for c := n.FirstChild(); !c.IsZero(); c = c.NextSibling() {
		count++
	}
	return count
}
