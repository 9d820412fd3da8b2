// Package debug has helpers producing human readable dumps of internal
// structures.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

const defaultIndent = 2

type TreeWriter struct {
	w      *strings.Builder
	indent string
}

// NewTreeWriter returns writer indenting every level by given number of
// spaces. Non-positive indent selects the default.
func NewTreeWriter(indent int) *TreeWriter {
	if indent <= 0 {
		indent = defaultIndent
	}
	return &TreeWriter{
		w:      &strings.Builder{},
		indent: strings.Repeat(" ", indent),
	}
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes labeled value, quoting it so whitespace and control
// characters stay visible.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

func (tw *TreeWriter) pad(depth int) {
	for range depth {
		tw.w.WriteString(tw.indent)
	}
}

func encodeText(raw string) string {
	if raw == "" {
		return `""`
	}
	return strconv.Quote(raw)
}
