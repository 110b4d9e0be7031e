// # internal/graph/cost.go
package graph

// CalcCosts combines per-file code-line counts with the closure sets.
// Precondition: ResolveIndirect has run.
//
// CombinedLines is a file's own code lines plus the code lines of everything
// it transitively includes, each counted once. For a header the contribution
// metrics are weighted by the number of distinct translation units that pull
// it in; a source file compiles exactly once, weight 1.
func (s *Set) CalcCosts() {
	for _, f := range s.Files {
		sum := 0
		for _, idx := range f.IncludesIndirect {
			sum += s.Files[idx].CodeLines
		}
		f.CombinedLines = f.CodeLines + sum

		if f.Source {
			f.ContribSelf = f.CodeLines
			f.ContribTotal = f.CombinedLines
		} else {
			w := len(f.IncludedByIndirectSources)
			f.ContribSelf = f.CodeLines * w
			f.ContribTotal = f.CombinedLines * w
		}
	}
	s.resolved = true
}

// TotalCodeLines sums code lines over every record.
func (s *Set) TotalCodeLines() int {
	n := 0
	for _, f := range s.Files {
		n += f.CodeLines
	}
	return n
}

// TotalCompiledLines estimates the lines a compiler processes across the
// whole build: the combined lines of every translation unit. Zero until
// costs are resolved.
func (s *Set) TotalCompiledLines() int {
	n := 0
	for _, f := range s.Files {
		if f.Source {
			n += f.CombinedLines
		}
	}
	return n
}
