package dom

import (
	"fmt"

	"htmltree/utils/debug"
)

// Dump returns readable outline of the subtree rooted at n with arena indexes
// of nodes and of ring sentinels. It exists solely for troubleshooting.
func (n Node) Dump(indent int) string {
	tw := debug.NewTreeWriter(indent)
	if n.IsZero() {
		tw.Line(0, "<zero node>")
		return tw.String()
	}
	n.walk(0, func(c Node, depth int) bool {
		s := c.slot()
		if s.kind == KindText {
			tw.TextBlock(depth, fmt.Sprintf("text #%d", c.id), s.value)
			return true
		}
		tw.Line(depth, "element <%s> #%d ring=#%d children=%d", s.value, c.id, s.ring, c.NumChildren())
		return true
	})
	return tw.String()
}
