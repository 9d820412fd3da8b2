package dom

import "io"

// String serializes subtree rooted at n. Text is written as is, elements as
// opening tag, children and closing tag. There is no escaping, no attributes
// and no self-closing form.
func (n Node) String() string {
	return string(n.AppendMarkup(nil))
}

// AppendMarkup appends serialized subtree rooted at n to dst.
func (n Node) AppendMarkup(dst []byte) []byte {
	switch s := n.slot(); s.kind {
	case KindText:
		dst = append(dst, s.value...)
	case KindElement:
		dst = append(dst, '<')
		dst = append(dst, s.value...)
		dst = append(dst, '>')
		for c := n.FirstChild(); !c.IsZero(); c = c.NextSibling() {
			dst = c.AppendMarkup(dst)
		}
		dst = append(dst, '<', '/')
		dst = append(dst, s.value...)
		dst = append(dst, '>')
	}
	return dst
}

// WriteTo writes serialized subtree rooted at n to w.
func (n Node) WriteTo(w io.Writer) (int64, error) {
	written, err := w.Write(n.AppendMarkup(nil))
	return int64(written), err
}
