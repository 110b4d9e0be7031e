// # internal/graph/closure.go
package graph

import "sort"

// ResolveIndirect computes the transitive closure of every record in both
// edge directions plus the source-only subset of the backward closure.
// Precondition: CheckCycles returned nil; traversal carries no cycle guard
// beyond the visited set.
func (s *Set) ResolveIndirect() {
	for _, f := range s.Files {
		f.IncludesIndirect = s.collect(f.Includes, func(g *File) []int { return g.Includes })
		f.IncludedByIndirect = s.collect(f.IncludedBy, func(g *File) []int { return g.IncludedBy })

		sources := make([]int, 0, len(f.IncludedByIndirect))
		for _, idx := range f.IncludedByIndirect {
			if s.Files[idx].Source {
				sources = append(sources, idx)
			}
		}
		f.IncludedByIndirectSources = sources
	}
}

// collect walks from the given seed edges with an explicit stack so closure
// depth is not bounded by goroutine stack size. Each reachable index is
// recorded once even when multiple paths lead to it.
func (s *Set) collect(seeds []int, edges func(*File) []int) []int {
	visited := make(map[int]bool, len(seeds))
	stack := append([]int(nil), seeds...)
	out := make([]int, 0, len(seeds))

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[idx] {
			continue
		}
		visited[idx] = true
		out = append(out, idx)
		stack = append(stack, edges(s.Files[idx])...)
	}

	sort.Ints(out)
	return out
}
