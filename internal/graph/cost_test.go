// # internal/graph/cost_test.go
package graph

import "testing"

func resolvedSet(t *testing.T, files map[string]string) *Set {
	t.Helper()
	s := linkedSet(t, files)
	if err := s.CheckCycles(); err != nil {
		t.Fatalf("CheckCycles: %v", err)
	}
	s.ResolveIndirect()
	s.CalcCosts()
	return s
}

func TestCalcCosts_CombinedLines(t *testing.T) {
	s := resolvedSet(t, map[string]string{
		"a.cpp": "#include \"b.h\"\nint main() {}\n", // 2 code lines
		"b.h":   "int x;\nint y;\n",                  // 2 code lines
	})

	a := s.Files[mustIndex(t, s, "a.cpp")]
	if a.CombinedLines != 4 {
		t.Errorf("combinedLines(a.cpp) = %d, want 4", a.CombinedLines)
	}
	if a.CombinedLines < a.CodeLines {
		t.Error("combinedLines must never undercut own code lines")
	}
}

func TestCalcCosts_DiamondCountsSharedHeaderOnce(t *testing.T) {
	s := resolvedSet(t, map[string]string{
		"s.cpp": "#include \"a.h\"\n#include \"b.h\"\nint main() {}\n", // 3
		"a.h":   "#include \"c.h\"\nint a;\n",                          // 2
		"b.h":   "#include \"c.h\"\nint b;\n",                          // 2
		"c.h":   "int c1;\nint c2;\nint c3;\n",                         // 3
	})

	src := s.Files[mustIndex(t, s, "s.cpp")]
	// 3 + 2 + 2 + 3: c.h contributes exactly once despite two paths.
	if src.CombinedLines != 10 {
		t.Errorf("combinedLines(s.cpp) = %d, want 10", src.CombinedLines)
	}
}

func TestCalcCosts_SourceWeightIsOne(t *testing.T) {
	s := resolvedSet(t, map[string]string{
		"a.cpp": "#include \"b.h\"\nint main() {}\n",
		"b.h":   "int x;\n",
	})

	a := s.Files[mustIndex(t, s, "a.cpp")]
	if a.ContribSelf != a.CodeLines {
		t.Errorf("contributionSelf(source) = %d, want own code lines %d", a.ContribSelf, a.CodeLines)
	}
	if a.ContribTotal != a.CombinedLines {
		t.Errorf("contributionTotal(source) = %d, want combined lines %d", a.ContribTotal, a.CombinedLines)
	}
}

func TestCalcCosts_FanInWeighting(t *testing.T) {
	s := resolvedSet(t, map[string]string{
		"s1.cpp": "#include \"h.h\"\n",
		"s2.cpp": "#include \"h.h\"\n",
		"s3.cpp": "#include \"h2.h\"\n",
		"h2.h":   "#include \"h.h\"\nint v;\n",
		"h.h":    "int a;\nint b;\n", // 2 code lines
	})

	h := s.Files[mustIndex(t, s, "h.h")]
	if w := len(h.IncludedByIndirectSources); w != 3 {
		t.Fatalf("Expected weight 3, got %d", w)
	}
	if h.ContribSelf != h.CodeLines*3 {
		t.Errorf("contributionSelf(h.h) = %d, want %d", h.ContribSelf, h.CodeLines*3)
	}
	if h.ContribTotal != h.CombinedLines*3 {
		t.Errorf("contributionTotal(h.h) = %d, want %d", h.ContribTotal, h.CombinedLines*3)
	}
}

func TestCalcCosts_UnreferencedHeaderContributesNothing(t *testing.T) {
	s := resolvedSet(t, map[string]string{
		"lonely.h": "int x;\n",
	})

	h := s.Files[mustIndex(t, s, "lonely.h")]
	if h.ContribSelf != 0 || h.ContribTotal != 0 {
		t.Errorf("Header with no consumers must contribute 0, got self=%d total=%d",
			h.ContribSelf, h.ContribTotal)
	}
}

func TestCalcCosts_StubIsFree(t *testing.T) {
	s := resolvedSet(t, map[string]string{
		"a.cpp": "#include <vector>\nint main() {}\n",
	})

	stub := s.Files[mustIndex(t, s, "vector")]
	if stub.CombinedLines != 0 || stub.ContribTotal != 0 {
		t.Errorf("Stub must cost nothing, got combined=%d total=%d",
			stub.CombinedLines, stub.ContribTotal)
	}

	a := s.Files[mustIndex(t, s, "a.cpp")]
	if a.CombinedLines != a.CodeLines {
		t.Errorf("Stub include must not add lines, got %d", a.CombinedLines)
	}
}

func TestCalcCosts_Totals(t *testing.T) {
	s := resolvedSet(t, map[string]string{
		"a.cpp": "#include \"h.h\"\nint main() {}\n", // 2 code lines
		"b.cpp": "#include \"h.h\"\nint run() {}\n",  // 2 code lines
		"h.h":   "int x;\n",                          // 1 code line
	})

	if got := s.TotalCodeLines(); got != 5 {
		t.Errorf("TotalCodeLines = %d, want 5", got)
	}
	// Each source compiles h.h again: (2+1) + (2+1).
	if got := s.TotalCompiledLines(); got != 6 {
		t.Errorf("TotalCompiledLines = %d, want 6", got)
	}
	if !s.Resolved() {
		t.Error("Set must report resolved after CalcCosts")
	}
}

func TestResolved_FalseBeforeCalc(t *testing.T) {
	s := linkedSet(t, map[string]string{"a.h": ""})
	if s.Resolved() {
		t.Error("Resolved must be false before cost aggregation")
	}
}
