// Package dom keeps trees of HTML-like nodes: text leaves and tagged elements
// with ordered children.
//
// Children of an element are linked into an intrusive circular doubly-linked
// ring anchored at a private sentinel slot owned by the element. Only the
// sentinel remembers the element, nodes themselves have no parent field. As a
// result AddChild and Detach are O(1) while Parent has to walk the ring forward
// until it meets the sentinel, which costs O(number of siblings).
//
// All nodes of a tree live in a Document arena and are addressed by Node
// handles, ring links are arena indexes. A Document is not safe for concurrent
// use, callers which share one must serialize access themselves.
package dom

import "math"

// Kind classifies a node. It is fixed when the node is created.
type Kind uint8

const (
	KindNone Kind = iota
	KindText
	KindElement
	kindSentinel
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindElement:
		return "element"
	case kindSentinel:
		return "sentinel"
	default:
		return "none"
	}
}

// slot is a single arena cell. Index 0 is never used, so zero link means
// "absent".
type slot struct {
	kind  Kind
	value string // text or tag name
	next  int32  // ring links, both zero for roots
	prev  int32
	owner int32 // sentinels only: element owning the ring
	ring  int32 // elements only: sentinel anchoring children
}

// Document is an arena holding nodes and the sentinels of their child rings.
// Slots are never reused, a Document and all its nodes are reclaimed together
// once nothing references them.
type Document struct {
	slots []slot
	nodes int
}

// NewDocument returns an empty arena.
func NewDocument() *Document {
	return &Document{slots: make([]slot, 1, 64)}
}

// Len returns number of nodes created in the document so far, sentinels are
// not counted.
func (d *Document) Len() int {
	return d.nodes
}

func (d *Document) alloc(s slot) int32 {
	if len(d.slots) == math.MaxInt32 {
		panic("dom: document arena is full")
	}
	d.slots = append(d.slots, s)
	return int32(len(d.slots) - 1)
}

// Payload is the immutable content of a node: either text or a tag name. The
// zero Payload carries neither and is rejected by Document.New.
type Payload struct {
	kind  Kind
	value string
}

// Text returns payload for a text node.
func Text(text string) Payload {
	return Payload{kind: KindText, value: text}
}

// Tag returns payload for an element node.
func Tag(tag string) Payload {
	return Payload{kind: KindElement, value: tag}
}

func (p Payload) Kind() Kind {
	return p.kind
}

func (p Payload) Value() string {
	return p.value
}

// New creates root node from payload.
func (d *Document) New(p Payload) (Node, error) {
	switch p.kind {
	case KindText:
		return d.NewText(p.value), nil
	case KindElement:
		return d.NewElement(p.value), nil
	}
	return Node{}, ErrInvalidPayload
}

// NewText creates root text node.
func (d *Document) NewText(text string) Node {
	id := d.alloc(slot{kind: KindText, value: text})
	d.nodes++
	return Node{doc: d, id: id}
}

// NewElement creates root element node without children: its ring holds only
// its own sentinel linked to itself.
func (d *Document) NewElement(tag string) Node {
	id := d.alloc(slot{kind: KindElement, value: tag})
	s := d.alloc(slot{kind: kindSentinel, owner: id})
	d.slots[s].next, d.slots[s].prev = s, s
	d.slots[id].ring = s
	d.nodes++
	return Node{doc: d, id: id}
}
