package render

import (
	"fmt"
	"strings"
)

// Format selects how trees are written out.
type Format int

const (
	// FormatMarkup is the exact serialization of the tree.
	FormatMarkup Format = iota
	// FormatXML is the tree written as indented XML for reading.
	FormatXML
	// FormatTree is the debug dump of nodes and rings.
	FormatTree
)

var formatNames = []string{"markup", "xml", "tree"}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// Ext returns file name extension for the format.
func (f Format) Ext() string {
	switch f {
	case FormatMarkup:
		return ".html"
	case FormatXML:
		return ".xml"
	case FormatTree:
		return ".txt"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// FormatNames returns list of known format names.
func FormatNames() []string {
	return append([]string(nil), formatNames...)
}

// ParseFormat converts name into Format, ignoring case.
func ParseFormat(name string) (Format, error) {
	for i, n := range formatNames {
		if strings.EqualFold(n, name) {
			return Format(i), nil
		}
	}
	return FormatMarkup, fmt.Errorf("%s is not a valid Format, try [%s]", name, strings.Join(formatNames, ", "))
}
