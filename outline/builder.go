package outline

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"
	yaml "gopkg.in/yaml.v3"

	"htmltree/dom"
)

var ErrUnknownTag = errors.New("unknown HTML tag")

// EntryError locates a problem in the outline source.
type EntryError struct {
	Line   int
	Column int
	Err    error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Column, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

type builder struct {
	doc  *dom.Document
	opts Options
	log  *zap.Logger
	errs error
}

func newBuilder(doc *dom.Document, opts Options, log *zap.Logger) *builder {
	return &builder{doc: doc, opts: opts, log: log}
}

func (b *builder) fail(n *yaml.Node, err error) {
	b.errs = multierr.Append(b.errs, &EntryError{Line: n.Line, Column: n.Column, Err: err})
}

// entry turns a single outline entry into a root node. Children which fail
// are reported and left out, so the rest of the outline is still checked.
func (b *builder) entry(n *yaml.Node) (dom.Node, bool) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			b.fail(n, fmt.Errorf("empty entry: %w", dom.ErrInvalidPayload))
			return dom.Node{}, false
		}
		return b.doc.NewText(b.text(n.Value)), true
	case yaml.MappingNode:
		return b.element(n)
	case yaml.AliasNode:
		b.fail(n, errors.New("aliases are not supported"))
	default:
		b.fail(n, errors.New("entry must be a string or a mapping"))
	}
	return dom.Node{}, false
}

func (b *builder) element(n *yaml.Node) (dom.Node, bool) {
	var text, tag, children *yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		switch key.Value {
		case "text":
			text = value
		case "tag":
			tag = value
		case "children":
			children = value
		default:
			b.fail(key, fmt.Errorf("unknown key '%s'", key.Value))
		}
	}

	var p dom.Payload
	switch {
	case text != nil && tag == nil:
		if !b.scalar(text) {
			return dom.Node{}, false
		}
		p = dom.Text(b.text(text.Value))
	case tag != nil && text == nil:
		if !b.scalar(tag) || !b.vetTag(tag) {
			return dom.Node{}, false
		}
		p = dom.Tag(tag.Value)
	}
	// both or none leave p empty
	node, err := b.doc.New(p)
	if err != nil {
		b.fail(n, fmt.Errorf("exactly one of 'text' or 'tag' is required: %w", err))
		return dom.Node{}, false
	}

	if children == nil {
		return node, true
	}
	if children.Kind != yaml.SequenceNode {
		b.fail(children, errors.New("'children' must be a list"))
		return node, true
	}
	for _, c := range children.Content {
		child, ok := b.entry(c)
		if !ok {
			continue
		}
		if err := node.AddChild(child); err != nil {
			b.fail(c, err)
		}
	}
	return node, true
}

func (b *builder) scalar(n *yaml.Node) bool {
	if n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		b.fail(n, errors.New("value must be a string"))
		return false
	}
	return true
}

func (b *builder) text(s string) string {
	if b.opts.NormalizeText {
		return norm.NFC.String(s)
	}
	return s
}

// vetTag checks tag against known HTML tags.
func (b *builder) vetTag(n *yaml.Node) bool {
	if atom.Lookup([]byte(n.Value)) != 0 {
		return true
	}
	if b.opts.StrictTags {
		b.fail(n, fmt.Errorf("%w <%s>", ErrUnknownTag, n.Value))
		return false
	}
	if b.opts.WarnUnknownTags {
		b.log.Warn("Unknown HTML tag", zap.String("tag", n.Value), zap.Int("line", n.Line), zap.Int("column", n.Column))
	}
	return true
}
