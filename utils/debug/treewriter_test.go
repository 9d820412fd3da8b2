package debug

import "testing"

func TestNewTreeWriter(t *testing.T) {
	tests := []struct {
		name   string
		indent int
		want   string
	}{
		{name: "default on zero", indent: 0, want: "  "},
		{name: "default on negative", indent: -3, want: "  "},
		{name: "four spaces", indent: 4, want: "    "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter(tt.indent)
			if tw.w == nil {
				t.Fatal("TreeWriter builder is nil")
			}
			if tw.indent != tt.want {
				t.Errorf("indent = %q, want %q", tw.indent, tt.want)
			}
			if tw.String() != "" {
				t.Error("Expected empty string from new TreeWriter")
			}
		})
	}
}

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		indent int
		depth  int
		format string
		args   []any
		want   string
	}{
		{name: "no depth", depth: 0, format: "test", want: "test\n"},
		{name: "depth 1", depth: 1, format: "indented", want: "  indented\n"},
		{name: "depth 2 indent 3", indent: 3, depth: 2, format: "deep", want: "      deep\n"},
		{name: "with formatting", depth: 1, format: "element <%s> #%d", args: []any{"p", 7}, want: "  element <p> #7\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter(tt.indent)
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		label string
		value string
		want  string
	}{
		{name: "empty value stays visible", label: "text #3", value: "", want: "text #3: \"\"\n"},
		{name: "plain", label: "text", value: "hello world", want: "text: \"hello world\"\n"},
		{name: "nested", depth: 2, label: "text", value: "data", want: "    text: \"data\"\n"},
		{name: "trailing space", label: "text", value: "Please ", want: "text: \"Please \"\n"},
		{name: "newline", label: "text", value: "line1\nline2", want: "text: \"line1\\nline2\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter(0)
			tw.TextBlock(tt.depth, tt.label, tt.value)
			if got := tw.String(); got != tt.want {
				t.Errorf("TextBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Accumulates(t *testing.T) {
	tw := NewTreeWriter(2)
	tw.Line(0, "element <p>")
	tw.TextBlock(1, "text", "x")
	want := "element <p>\n  text: \"x\"\n"
	if got := tw.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
