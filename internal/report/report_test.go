// # internal/report/report_test.go
package report

import (
	"strings"
	"testing"

	"includecost/internal/graph"
	"includecost/internal/lexer"
)

func buildSet(t *testing.T, files map[string]string) *graph.Set {
	t.Helper()
	s := graph.NewSet()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			if names[j] < names[i] {
				names[i], names[j] = names[j], names[i]
			}
		}
	}
	for _, name := range names {
		f := &graph.File{Name: name, Data: files[name], Source: strings.HasSuffix(name, ".cpp")}
		f.ParsedIncludes, f.CodeLines = lexer.Scan(files[name])
		f.TextLines = lexer.CountLines(files[name])
		if _, err := s.Add(f); err != nil {
			t.Fatal(err)
		}
	}
	s.SynthesizeStubs()
	if err := s.LinkIncludes(); err != nil {
		t.Fatal(err)
	}
	return s
}

func resolvedSet(t *testing.T, files map[string]string) *graph.Set {
	t.Helper()
	s := buildSet(t, files)
	if err := s.CheckCycles(); err != nil {
		t.Fatalf("CheckCycles: %v", err)
	}
	s.ResolveIndirect()
	s.CalcCosts()
	return s
}

func TestParseSortKey(t *testing.T) {
	for _, key := range SortKeys() {
		got, err := ParseSortKey(string(key))
		if err != nil {
			t.Errorf("ParseSortKey(%s): %v", key, err)
		}
		if got != key {
			t.Errorf("ParseSortKey(%s) = %s", key, got)
		}
	}

	if _, err := ParseSortKey("by-vibes"); err == nil {
		t.Error("Expected error for unknown sort key")
	}
	if got, err := ParseSortKey("  Combined-Lines "); err != nil || got != ByCombinedLines {
		t.Errorf("Expected case/space-insensitive parse, got %v %v", got, err)
	}
}

func TestOrder_GroupsHeadersStubsSources(t *testing.T) {
	s := resolvedSet(t, map[string]string{
		"z.cpp": "#include \"a.h\"\n#include <sys.h>\n",
		"a.h":   "int x;\n",
	})

	ordered := Order(s.Files, ByName, false)
	if len(ordered) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(ordered))
	}
	if ordered[0].Name != "a.h" {
		t.Errorf("Expected project header first, got %s", ordered[0].Name)
	}
	if !ordered[1].Stub {
		t.Errorf("Expected stub second, got %s", ordered[1].Name)
	}
	if !ordered[2].Source {
		t.Errorf("Expected source last, got %s", ordered[2].Name)
	}
}

func TestOrder_ByMetricAndDirection(t *testing.T) {
	s := resolvedSet(t, map[string]string{
		"small.h": "int a;\n",
		"big.h":   "int a;\nint b;\nint c;\n",
	})

	asc := Order(s.Files, ByCodeLines, false)
	if asc[0].Name != "small.h" || asc[1].Name != "big.h" {
		t.Errorf("Ascending order wrong: %s, %s", asc[0].Name, asc[1].Name)
	}

	desc := Order(s.Files, ByCodeLines, true)
	if desc[0].Name != "big.h" || desc[1].Name != "small.h" {
		t.Errorf("Descending order wrong: %s, %s", desc[0].Name, desc[1].Name)
	}
}

func TestOrder_NameTiebreakIsStable(t *testing.T) {
	s := resolvedSet(t, map[string]string{
		"b.h": "int x;\n",
		"a.h": "int x;\n",
		"c.h": "int x;\n",
	})

	for _, desc := range []bool{false, true} {
		ordered := Order(s.Files, ByCodeLines, desc)
		if ordered[0].Name != "a.h" || ordered[1].Name != "b.h" || ordered[2].Name != "c.h" {
			t.Errorf("Expected name tiebreak regardless of direction (desc=%v), got %s %s %s",
				desc, ordered[0].Name, ordered[1].Name, ordered[2].Name)
		}
	}
}

func TestTable_ContainsRecordsAndTotals(t *testing.T) {
	s := resolvedSet(t, map[string]string{
		"main.cpp": "#include \"util.h\"\nint main() {}\n",
		"util.h":   "int helper();\n",
	})

	out := New(s, ByName, false).Table()
	for _, want := range []string{"main.cpp", "util.h", "Total files", "Total code lines"} {
		if !strings.Contains(out, want) {
			t.Errorf("Table output missing %q", want)
		}
	}
	if strings.Contains(out, unknown) {
		t.Error("Resolved table must not render unknown markers")
	}
}

func TestTable_UnresolvedRendersUnknown(t *testing.T) {
	s := buildSet(t, map[string]string{
		"a.h": "#include \"b.h\"\n",
		"b.h": "#include \"a.h\"\n",
	})
	if err := s.CheckCycles(); err == nil {
		t.Fatal("Expected cycle for this fixture")
	}

	out := New(s, ByName, false).Table()
	if !strings.Contains(out, unknown) {
		t.Error("Unresolved costs must render as unknown")
	}
	if !strings.Contains(out, "Total compiled code lines: ?") {
		t.Error("Compiled total must be unknown after a cycle")
	}
}

func TestTSV(t *testing.T) {
	s := resolvedSet(t, map[string]string{
		"main.cpp": "#include \"util.h\"\nint main() {}\n", // 2 code lines
		"util.h":   "int helper();\n",                      // 1 code line
	})

	out := New(s, ByName, false).TSV()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "File\t") {
		t.Errorf("Unexpected header: %q", lines[0])
	}

	var mainRow string
	for _, line := range lines[1:] {
		if strings.HasPrefix(line, "main.cpp\t") {
			mainRow = line
		}
	}
	if mainRow == "" {
		t.Fatal("Missing main.cpp row")
	}
	cols := strings.Split(mainRow, "\t")
	if len(cols) != len(headerRow) {
		t.Fatalf("Expected %d columns, got %d", len(headerRow), len(cols))
	}
	if cols[3] != "2" {
		t.Errorf("Code lines column = %q, want 2", cols[3])
	}
	if cols[8] != "3" {
		t.Errorf("Combined lines column = %q, want 3", cols[8])
	}
}

func TestHeaviestIncluders(t *testing.T) {
	// h.h is included by headers heavy.h (pulled in by two sources) and
	// light.h (one source), plus one source directly.
	s := resolvedSet(t, map[string]string{
		"s1.cpp": "#include \"heavy.h\"\n",
		"s2.cpp": "#include \"heavy.h\"\n",
		"s3.cpp": "#include \"light.h\"\n",
		"s4.cpp": "#include \"h.h\"\n",
		"heavy.h": "#include \"h.h\"\n",
		"light.h": "#include \"h.h\"\n",
		"h.h":     "int x;\n",
	})

	idx, ok := s.Lookup("h.h")
	if !ok {
		t.Fatal("missing h.h")
	}
	got := New(s, ByName, false).heaviestIncluders(s.Files[idx])
	if got != "heavy.h light.h +1 src" {
		t.Errorf("heaviestIncluders = %q", got)
	}
}

func TestSummary(t *testing.T) {
	s := resolvedSet(t, map[string]string{
		"a.cpp": "#include \"b.h\"\n#include <ext.h>\nint main() {}\n",
		"b.h":   "int x;\n",
	})

	sum := New(s, ByName, false).Summary()
	if sum.Files != 3 || sum.Sources != 1 || sum.Headers != 1 || sum.Stubs != 1 {
		t.Errorf("Unexpected summary counts: %+v", sum)
	}
	if sum.Edges != 2 {
		t.Errorf("Edges = %d, want 2", sum.Edges)
	}
	if !sum.Resolved {
		t.Error("Expected resolved summary")
	}
	if sum.CodeLines != 4 {
		t.Errorf("CodeLines = %d, want 4", sum.CodeLines)
	}
	if sum.CompiledLines != 4 {
		t.Errorf("CompiledLines = %d, want 4", sum.CompiledLines)
	}
}

func TestFormatCount(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4200, "-4,200"},
	}
	for _, c := range cases {
		if got := FormatCount(c.n); got != c.want {
			t.Errorf("FormatCount(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}
