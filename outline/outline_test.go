package outline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"htmltree/dom"
)

const pageOutline = `
tag: html
children:
  - tag: head
    children:
      - tag: title
        children: [JLearner]
  - tag: body
    children:
      - tag: h1
        children:
          - text: JLearner
      - tag: p
        children:
          - "Please "
          - tag: b
            children: [practice]
          - "."
`

func testLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
}

func TestLoad(t *testing.T) {
	roots, err := Load(strings.NewReader(pageOutline), Options{}, testLogger(t))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(roots) != 1 {
		t.Fatalf("Load() returned %d roots, want 1", len(roots))
	}

	want := "<html><head><title>JLearner</title></head><body><h1>JLearner</h1><p>Please <b>practice</b>.</p></body></html>"
	if got := roots[0].String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if err := roots[0].Document().Check(); err != nil {
		t.Errorf("Check() = %v", err)
	}
}

func TestLoad_MultipleDocuments(t *testing.T) {
	src := "tag: p\nchildren: [one]\n---\ntwo\n---\ntag: br\n"
	roots, err := Load(strings.NewReader(src), Options{}, testLogger(t))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	var got []string
	for _, r := range roots {
		got = append(got, r.String())
		if !r.IsRoot() {
			t.Errorf("%q is not a root", r.String())
		}
		if r.Document() != roots[0].Document() {
			t.Error("roots do not share a document")
		}
	}
	if strings.Join(got, "|") != "<p>one</p>|two|<br></br>" {
		t.Errorf("roots = %v", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		target error
		line   int
	}{
		{name: "both text and tag", src: "tag: p\ntext: x\n", target: dom.ErrInvalidPayload, line: 1},
		{name: "neither text nor tag", src: "tag: p\nchildren:\n  - children: []\n", target: dom.ErrInvalidPayload, line: 3},
		{name: "null entry", src: "tag: p\nchildren:\n  - ~\n", target: dom.ErrInvalidPayload, line: 3},
		{name: "children of text", src: "tag: p\nchildren:\n  - text: a\n    children: [b]\n", target: dom.ErrPreconditionViolation, line: 4},
		{name: "strict unknown tag", src: "tag: blink2\n", target: ErrUnknownTag, line: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.src), Options{StrictTags: true}, testLogger(t))
			if !errors.Is(err, tt.target) {
				t.Fatalf("Load() error = %v, want %v", err, tt.target)
			}
			var ee *EntryError
			if !errors.As(err, &ee) {
				t.Fatalf("error %v carries no position", err)
			}
			if ee.Line != tt.line {
				t.Errorf("error line = %d, want %d", ee.Line, tt.line)
			}
		})
	}
}

func TestLoad_CollectsAllErrors(t *testing.T) {
	src := `
tag: ul
children:
  - tag: li
    colour: red
  - tag: li
    text: both
  - tag: li
    children: not-a-list
`
	_, err := Load(strings.NewReader(src), Options{}, testLogger(t))
	if err == nil {
		t.Fatal("Load() succeeded on broken outline")
	}
	if n := len(multierr.Errors(err)); n != 3 {
		t.Errorf("Load() reported %d problems, want 3: %v", n, err)
	}
}

func TestLoad_Malformed(t *testing.T) {
	for name, src := range map[string]string{
		"empty":       "",
		"bad yaml":    "tag: [p\n",
		"only nulls":  "---\n---\n",
		"alias":       "tag: p\nchildren:\n  - &a x\n  - *a\n",
		"list at top": "- a\n- b\n",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(src), Options{}, testLogger(t)); err == nil {
				t.Error("Load() succeeded")
			}
		})
	}
}

func TestLoad_UnknownTagWarning(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	roots, err := Load(strings.NewReader("tag: widget\n"), Options{WarnUnknownTags: true}, zap.New(core))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if roots[0].Tag() != "widget" {
		t.Errorf("Tag() = %q", roots[0].Tag())
	}
	if logs.FilterMessage("Unknown HTML tag").Len() != 1 {
		t.Errorf("expected one warning, got %d", logs.Len())
	}

	core, logs = observer.New(zapcore.WarnLevel)
	if _, err := Load(strings.NewReader("tag: widget\n"), Options{}, zap.New(core)); err != nil {
		t.Fatal(err)
	}
	if logs.Len() != 0 {
		t.Error("warning logged while disabled")
	}
}

func TestLoad_NormalizeText(t *testing.T) {
	// "e" followed by combining acute accent
	src := "tag: p\nchildren: [\"caf\\u0065\\u0301\"]\n"

	roots, err := Load(strings.NewReader(src), Options{NormalizeText: true}, testLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	if got := roots[0].String(); got != "<p>café</p>" {
		t.Errorf("normalized = %q", got)
	}

	roots, err = Load(strings.NewReader(src), Options{}, testLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	if got := roots[0].String(); got != "<p>cafe\u0301</p>" {
		t.Errorf("raw = %q", got)
	}
}

func TestLoad_Encoding(t *testing.T) {
	// "tag: p\nchildren: [Größe]\n" in ISO-8859-1
	src := []byte("tag: p\nchildren: [Gr\xf6\xdfe]\n")

	roots, err := Load(strings.NewReader(string(src)), Options{Encoding: "ISO-8859-1"}, testLogger(t))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := roots[0].String(); got != "<p>Größe</p>" {
		t.Errorf("String() = %q", got)
	}

	if _, err := Load(strings.NewReader("x"), Options{Encoding: "no-such-charset"}, testLogger(t)); err == nil {
		t.Error("unknown encoding accepted")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.yaml")
	if err := os.WriteFile(path, []byte(pageOutline), 0644); err != nil {
		t.Fatal(err)
	}
	roots, err := LoadFile(path, Options{StrictTags: true}, testLogger(t))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(roots[0].DescendantsWithTag("b")) != 1 {
		t.Error("<b> is missing")
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"), Options{}, testLogger(t)); err == nil {
		t.Error("LoadFile() of absent file succeeded")
	}
}
