package dom

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// refNode is the plain representation of the same tree: explicit parent
// pointer and owning slice of children. It serves as executable model the ring
// implementation is compared against.
type refNode struct {
	isText   bool
	value    string
	parent   *refNode
	children []*refNode
}

func (r *refNode) addChild(c *refNode) {
	r.children = append(r.children, c)
	c.parent = r
}

func (r *refNode) detach() {
	i := slices.Index(r.parent.children, r)
	r.parent.children = slices.Delete(r.parent.children, i, i+1)
	r.parent = nil
}

func (r *refNode) isAncestorOrSelf(of *refNode) bool {
	for n := of; n != nil; n = n.parent {
		if n == r {
			return true
		}
	}
	return false
}

func (r *refNode) copy() *refNode {
	c := &refNode{isText: r.isText, value: r.value}
	for _, child := range r.children {
		c.addChild(child.copy())
	}
	return c
}

// preorder lists r and every node below it, node first.
func (r *refNode) preorder() []*refNode {
	all := []*refNode{r}
	for _, c := range r.children {
		all = append(all, c.preorder()...)
	}
	return all
}

func (r *refNode) String() string {
	if r.isText {
		return r.value
	}
	var sb strings.Builder
	sb.WriteString("<" + r.value + ">")
	for _, c := range r.children {
		sb.WriteString(c.String())
	}
	sb.WriteString("</" + r.value + ">")
	return sb.String()
}

func TestReferenceModel(t *testing.T) {
	html := &refNode{value: "html"}
	body := &refNode{value: "body"}
	h1 := &refNode{value: "h1"}
	h1.addChild(&refNode{isText: true, value: "JLearner"})
	p := &refNode{value: "p"}
	p.addChild(&refNode{isText: true, value: "Please"})
	html.addChild(body)
	body.addChild(h1)
	body.addChild(p)
	body.addChild(p.copy())
	h1.detach()
	body.addChild(h1)

	want := "<html><body><p>Please</p><p>Please</p><h1>JLearner</h1></body></html>"
	if got := html.String(); got != want {
		t.Errorf("reference String() = %q, want %q", got, want)
	}
}

// treeMachine applies the same random operations to both representations.
type treeMachine struct {
	doc   *Document
	nodes []Node
	refs  []*refNode
	index map[*refNode]int
}

func (m *treeMachine) track(n Node, r *refNode) {
	m.index[r] = len(m.nodes)
	m.nodes = append(m.nodes, n)
	m.refs = append(m.refs, r)
}

// pick draws an index of a tracked node matching filter or skips the action.
func (m *treeMachine) pick(t *rapid.T, label string, filter func(*refNode) bool) int {
	var candidates []int
	for i, r := range m.refs {
		if filter(r) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		t.Skip("no candidate for " + label)
	}
	return rapid.SampledFrom(candidates).Draw(t, label)
}

func isRoot(r *refNode) bool     { return r.parent == nil }
func isAttached(r *refNode) bool { return r.parent != nil }
func isElement(r *refNode) bool  { return !r.isText }
func isText(r *refNode) bool     { return r.isText }
func anyNode(*refNode) bool      { return true }

func (m *treeMachine) newText(t *rapid.T) {
	text := rapid.StringMatching(`[a-z .]{0,6}`).Draw(t, "text")
	m.track(m.doc.NewText(text), &refNode{isText: true, value: text})
}

func (m *treeMachine) newElement(t *rapid.T) {
	tag := rapid.SampledFrom([]string{"div", "p", "b", "ul", "li"}).Draw(t, "tag")
	m.track(m.doc.NewElement(tag), &refNode{value: tag})
}

func (m *treeMachine) addChild(t *rapid.T) {
	p := m.pick(t, "parent", isElement)
	c := m.pick(t, "child", isRoot)

	err := m.nodes[p].AddChild(m.nodes[c])
	if m.refs[c].isAncestorOrSelf(m.refs[p]) {
		if !errors.Is(err, ErrPreconditionViolation) {
			t.Fatalf("AddChild() creating a cycle returned %v", err)
		}
		return
	}
	if err != nil {
		t.Fatalf("AddChild() error = %v", err)
	}
	m.refs[p].addChild(m.refs[c])
}

func (m *treeMachine) addAttached(t *rapid.T) {
	p := m.pick(t, "parent", isElement)
	c := m.pick(t, "child", isAttached)
	if err := m.nodes[p].AddChild(m.nodes[c]); !errors.Is(err, ErrPreconditionViolation) {
		t.Fatalf("AddChild() of attached node returned %v", err)
	}
}

func (m *treeMachine) addToText(t *rapid.T) {
	p := m.pick(t, "parent", isText)
	c := m.pick(t, "child", anyNode)
	if err := m.nodes[p].AddChild(m.nodes[c]); !errors.Is(err, ErrPreconditionViolation) {
		t.Fatalf("AddChild() to text node returned %v", err)
	}
}

func (m *treeMachine) detach(t *rapid.T) {
	c := m.pick(t, "node", isAttached)
	if err := m.nodes[c].Detach(); err != nil {
		t.Fatalf("Detach() error = %v", err)
	}
	m.refs[c].detach()
}

func (m *treeMachine) detachRoot(t *rapid.T) {
	c := m.pick(t, "node", isRoot)
	if err := m.nodes[c].Detach(); !errors.Is(err, ErrPreconditionViolation) {
		t.Fatalf("Detach() of root returned %v", err)
	}
}

func (m *treeMachine) copy(t *rapid.T) {
	c := m.pick(t, "node", anyNode)
	watermark := int32(len(m.doc.slots))
	dup := m.nodes[c].Copy()
	for n := range dup.All() {
		if n.id < watermark {
			t.Fatalf("copy reuses node #%d", n.id)
		}
	}
	if !dup.Equal(m.nodes[c]) {
		t.Fatal("copy is not equal to its source")
	}
	// every copied node is tracked, so later checks can find copied children
	refs := m.refs[c].copy().preorder()
	copied := dup.Descendants()
	if len(copied) != len(refs) {
		t.Fatalf("copy has %d nodes, model %d", len(copied), len(refs))
	}
	for i, n := range copied {
		m.track(n, refs[i])
	}
}

func (m *treeMachine) check(t *rapid.T) {
	if err := m.doc.Check(); err != nil {
		t.Fatalf("Check() = %v", err)
	}
	for i, n := range m.nodes {
		r := m.refs[i]
		if got, want := n.String(), r.String(); got != want {
			t.Fatalf("node %d serializes to %q, model %q", i, got, want)
		}
		p, ok := n.Parent()
		switch {
		case r.parent == nil && ok:
			t.Fatalf("node %d has a parent, model says root", i)
		case r.parent != nil && (!ok || p != m.nodes[m.index[r.parent]]):
			t.Fatalf("node %d has wrong parent", i)
		}
		children := n.Children()
		if len(children) != len(r.children) {
			t.Fatalf("node %d has %d children, model %d", i, len(children), len(r.children))
		}
		for j, c := range children {
			if c != m.nodes[m.index[r.children[j]]] {
				t.Fatalf("child %d of node %d is out of order", j, i)
			}
		}
	}
}

func TestRingMatchesReferenceModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := &treeMachine{doc: NewDocument(), index: make(map[*refNode]int)}
		t.Repeat(map[string]func(*rapid.T){
			"text":        m.newText,
			"element":     m.newElement,
			"addChild":    m.addChild,
			"addAttached": m.addAttached,
			"addToText":   m.addToText,
			"detach":      m.detach,
			"detachRoot":  m.detachRoot,
			"copy":        m.copy,
			"":            m.check,
		})
	})
}

func TestCopyProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := NewDocument()
		root := genTree(t, d, 0)

		before := root.String()
		dup := root.Copy()

		if !dup.Equal(root) || !root.Equal(dup) {
			t.Fatal("copy is not equal to the original")
		}
		if dup.String() != before || root.String() != before {
			t.Fatal("serialization changed by copying")
		}
		original := make(map[Node]bool)
		for n := range root.All() {
			original[n] = true
		}
		for n := range dup.All() {
			if original[n] {
				t.Fatalf("node #%d shared between original and copy", n.id)
			}
		}
		if err := d.Check(); err != nil {
			t.Fatal(err)
		}
	})
}

// genTree draws a random tree, keeping depth bounded.
func genTree(t *rapid.T, d *Document, depth int) Node {
	if depth > 3 || rapid.IntRange(0, 3).Draw(t, "leaf") == 0 {
		return d.NewText(rapid.StringMatching(`[a-z]{0,4}`).Draw(t, "text"))
	}
	e := d.NewElement(rapid.SampledFrom([]string{"div", "p", "i"}).Draw(t, "tag"))
	for range rapid.IntRange(0, 4).Draw(t, "children") {
		if err := e.AddChild(genTree(t, d, depth+1)); err != nil {
			t.Fatal(err)
		}
	}
	return e
}
