// Package outline builds dom trees from YAML descriptions.
//
// An outline document describes a single tree. Every entry is either a plain
// string (text node) or a mapping with exactly one of "text" or "tag" keys;
// tag entries may list their children under "children":
//
//	tag: p
//	children:
//	  - "Please "
//	  - tag: b
//	    children: [practice]
//	  - text: "."
//
// A stream may hold several documents separated by "---", each becomes a
// separate root in the same dom.Document.
package outline

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
	yaml "gopkg.in/yaml.v3"

	"htmltree/dom"
)

// Options controls how outlines are decoded.
type Options struct {
	// Encoding is IANA name of input character set, empty means UTF-8.
	Encoding string
	// NormalizeText converts text payloads to Unicode NFC.
	NormalizeText bool
	// StrictTags rejects tags which are not known HTML tags.
	StrictTags bool
	// WarnUnknownTags logs unknown tags when StrictTags is off.
	WarnUnknownTags bool
}

// Load decodes every outline document in r into a fresh dom.Document and
// returns their roots in input order. Problems in entries do not stop decoding,
// all of them are returned together.
func Load(r io.Reader, opts Options, log *zap.Logger) ([]dom.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read outline: %w", err)
	}
	if data, err = decodeCharset(data, opts.Encoding); err != nil {
		return nil, err
	}

	b := newBuilder(dom.NewDocument(), opts, log)

	var roots []dom.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("unable to decode outline: %w", err)
		}
		if len(doc.Content) == 0 {
			continue
		}
		if root, ok := b.entry(doc.Content[0]); ok {
			roots = append(roots, root)
		}
	}
	if b.errs != nil {
		return nil, b.errs
	}
	if len(roots) == 0 {
		return nil, errors.New("outline is empty")
	}
	return roots, nil
}

// LoadFile opens outline file and decodes it with Load.
func LoadFile(path string, opts Options, log *zap.Logger) ([]dom.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open outline: %w", err)
	}
	defer f.Close()

	roots, err := Load(f, opts, log.With(zap.String("file", path)))
	if err != nil {
		return nil, fmt.Errorf("outline '%s': %w", path, err)
	}
	return roots, nil
}

func decodeCharset(data []byte, name string) ([]byte, error) {
	if len(name) == 0 {
		return data, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown input encoding '%s': %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("input encoding '%s' is not supported", name)
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("unable to decode input from '%s': %w", name, err)
	}
	return out, nil
}
