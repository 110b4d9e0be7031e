// # internal/graph/detect.go
package graph

import "fmt"

// CycleError is the witness for a non-DAG include graph: B is a remaining
// includer of A after topological reduction. It names one diagnostic pair,
// not every cycle.
type CycleError struct {
	A string
	B string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular include detected: %s <-> %s", e.A, e.B)
}

type pendingNode struct {
	idx        int
	includedBy []int
}

// CheckCycles verifies the forward include graph is acyclic by iterative
// peeling: nodes with no remaining includers are removed one at a time, and
// their outgoing presence is erased from every other node's incoming set.
// When a full pass removes nothing, whatever is left participates in at
// least one cycle.
func (s *Set) CheckCycles() *CycleError {
	all := make([]pendingNode, 0, len(s.Files))
	for idx, f := range s.Files {
		all = append(all, pendingNode{
			idx:        idx,
			includedBy: append([]int(nil), f.IncludedBy...),
		})
	}

	for {
		removed := false
		for i := range all {
			if len(all[i].includedBy) != 0 {
				continue
			}
			gone := all[i].idx
			all = append(all[:i], all[i+1:]...)
			for j := range all {
				all[j].includedBy = removeIndex(all[j].includedBy, gone)
			}
			removed = true
			break
		}
		if !removed {
			break
		}
	}

	if len(all) == 0 {
		return nil
	}
	return &CycleError{
		A: s.Files[all[0].idx].DisplayName(),
		B: s.Files[all[0].includedBy[0]].DisplayName(),
	}
}

func removeIndex(list []int, idx int) []int {
	out := list[:0]
	for _, v := range list {
		if v != idx {
			out = append(out, v)
		}
	}
	return out
}
