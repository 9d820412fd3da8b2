package render

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"

	"htmltree/config"
	"htmltree/dom"
)

// NameValues holds variables available to output name template.
type NameValues struct {
	// SourceFile is source name without directories and extension.
	SourceFile string
	// Index is 1 based position of the tree in its source.
	Index int
	// Count is number of trees in the source.
	Count int
	// RootTag is tag of the tree root, empty for text roots.
	RootTag string
	Format  string
}

// NewNameValues describes i-th (0 based) of count trees loaded from src.
func NewNameValues(src string, i, count int, root dom.Node, f Format) NameValues {
	base := filepath.Base(filepath.FromSlash(src))
	return NameValues{
		SourceFile: strings.TrimSuffix(base, filepath.Ext(base)),
		Index:      i + 1,
		Count:      count,
		RootTag:    root.Tag(),
		Format:     f.String(),
	}
}

// Namer builds output file paths either from template or using default naming
// scheme "<source>[-<index>]<ext>", index is added only when source holds
// more than one tree.
type Namer struct {
	tmpl          *template.Template
	transliterate bool
}

func NewNamer(cfg *config.RenderConfig) (*Namer, error) {
	n := &Namer{transliterate: cfg.FileNameTransliterate}
	if len(cfg.OutputNameTemplate) == 0 {
		return n, nil
	}
	tmpl, err := template.New(string(config.OutputNameTemplateFieldName)).Funcs(sprig.FuncMap()).Parse(cfg.OutputNameTemplate)
	if err != nil {
		return nil, fmt.Errorf("unable to parse template field %s: %w", config.OutputNameTemplateFieldName, err)
	}
	n.tmpl = tmpl
	return n, nil
}

// Path returns output file path under dir. Template may produce
// subdirectories using "/", every path segment is cleaned and, if requested,
// transliterated. Empty expansion falls back to default name.
func (n *Namer) Path(dir string, v NameValues, f Format) (string, error) {
	if n.tmpl == nil {
		return filepath.Join(dir, n.defaultName(v)+f.Ext()), nil
	}

	buf := new(bytes.Buffer)
	if err := n.tmpl.Execute(buf, v); err != nil {
		return "", fmt.Errorf("unable to expand output name: %w", err)
	}

	var segments []string
	for s := range strings.SplitSeq(filepath.ToSlash(buf.String()), "/") {
		if s = strings.TrimSpace(s); len(s) > 0 {
			segments = append(segments, n.clean(s))
		}
	}
	if len(segments) == 0 {
		return filepath.Join(dir, n.defaultName(v)+f.Ext()), nil
	}
	segments[len(segments)-1] += f.Ext()
	return filepath.Join(append([]string{dir}, segments...)...), nil
}

func (n *Namer) defaultName(v NameValues) string {
	name := v.SourceFile
	if v.Count > 1 {
		name += "-" + strconv.Itoa(v.Index)
	}
	return n.clean(name)
}

func (n *Namer) clean(segment string) string {
	if n.transliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
