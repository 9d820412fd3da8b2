package render

import (
	"io"

	"github.com/beevik/etree"

	"htmltree/dom"
)

// toXML converts subtree into an etree document. Unlike markup output, text
// is escaped by etree when written.
func toXML(n dom.Node) *etree.Document {
	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalEndTags = true
	appendXML(&doc.Element, n)
	return doc
}

func appendXML(parent *etree.Element, n dom.Node) {
	if n.IsText() {
		parent.CreateText(n.Text())
		return
	}
	el := parent.CreateElement(n.Tag())
	for c := n.FirstChild(); !c.IsZero(); c = c.NextSibling() {
		appendXML(el, c)
	}
}

func writeXML(w io.Writer, n dom.Node, indent int) error {
	doc := toXML(n)
	if indent > 0 {
		doc.Indent(indent)
	} else {
		doc.Indent(etree.NoIndent)
	}
	_, err := doc.WriteTo(w)
	return err
}
