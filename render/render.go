// Package render writes dom trees out in one of supported formats.
package render

import (
	"fmt"
	"io"

	"htmltree/dom"
)

type Options struct {
	Format Format
	// Indent is number of spaces per level for xml and tree formats.
	Indent int
}

// Write renders subtree rooted at n to w. Markup output is terminated with a
// new line so several trees may be written one after another.
func Write(w io.Writer, n dom.Node, opts Options) error {
	var err error
	switch opts.Format {
	case FormatMarkup:
		if _, err = n.WriteTo(w); err == nil {
			_, err = io.WriteString(w, "\n")
		}
	case FormatXML:
		err = writeXML(w, n, opts.Indent)
	case FormatTree:
		_, err = io.WriteString(w, n.Dump(opts.Indent))
	default:
		return fmt.Errorf("unsupported output format %s", opts.Format)
	}
	if err != nil {
		return fmt.Errorf("unable to write %s output: %w", opts.Format, err)
	}
	return nil
}
