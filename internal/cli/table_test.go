package cli

import (
	"strings"
	"testing"
)

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"NAME", "VALUE"})
	table.AddRow([]string{"octree", "0.812"})
	table.AddRow([]string{"kmeans", "0.790"})

	out := table.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Render() produced %d lines, want 4:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "NAME") {
		t.Errorf("header line = %q, want NAME prefix", lines[0])
	}
	if !strings.Contains(lines[1], "----") {
		t.Errorf("separator line = %q, want dashes", lines[1])
	}
	if !strings.Contains(lines[2], "octree") || !strings.Contains(lines[2], "0.812") {
		t.Errorf("row line = %q, want octree and 0.812", lines[2])
	}
}

func TestTableColumnAlignment(t *testing.T) {
	table := NewTable([]string{"A", "B"})
	table.AddRow([]string{"longvalue", "x"})
	table.AddRow([]string{"y", "z"})

	lines := strings.Split(strings.TrimRight(table.Render(), "\n"), "\n")
	// Second column should start at the same offset on every row.
	first := strings.Index(lines[2], "x")
	second := strings.Index(lines[3], "z")
	if first != second {
		t.Errorf("column B misaligned: offsets %d and %d\n%s", first, second, table.Render())
	}
}

func TestTableShortRowPadded(t *testing.T) {
	table := NewTable([]string{"A", "B", "C"})
	table.AddRow([]string{"only"})

	out := table.Render()
	if !strings.Contains(out, "only") {
		t.Errorf("Render() missing short row content:\n%s", out)
	}
}

func TestTableEmpty(t *testing.T) {
	if out := NewTable(nil).Render(); out != "" {
		t.Errorf("Render() on empty table = %q, want empty", out)
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"ab", 4, "ab  "},
		{"abcd", 4, "abcd"},
		{"abcdef", 4, "abcdef"},
		{"", 2, "  "},
	}

	for _, tt := range tests {
		if got := padRight(tt.in, tt.width); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
