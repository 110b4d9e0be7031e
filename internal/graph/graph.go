// # internal/graph/graph.go
package graph

import (
	"fmt"

	"includecost/internal/lexer"
)

// File is one record in the include graph: a real file loaded from disk or a
// stub synthesized for an include target that was never found. Edges are
// indices into the owning Set, never pointers between records, since the raw
// relation may be cyclic before validation.
type File struct {
	Name   string
	Data   string
	Stub   bool // synthesized for a missing include target
	Source bool // translation-unit root (e.g. .cpp)

	TextLines int // physical lines
	CodeLines int // lines neither blank nor fully inside a comment

	// Includes as parsed, in source order, duplicates preserved.
	ParsedIncludes []lexer.Include

	// Direct edges, deduplicated: a file appears at most once regardless of
	// how many times it is #included.
	Includes   []int
	IncludedBy []int

	// Transitive closures, each reachable file recorded once, self excluded.
	IncludesIndirect          []int
	IncludedByIndirect        []int
	IncludedByIndirectSources []int

	// Cost metrics, valid only once Set.Resolved() reports true.
	CombinedLines int
	ContribSelf   int
	ContribTotal  int
}

// DisplayName wraps stub names in angle brackets so they stand out in any
// listing.
func (f *File) DisplayName() string {
	if f.Stub {
		return "<" + f.Name + ">"
	}
	return f.Name
}

// Set owns every file record. Names form one flat namespace; there is no
// path or search-order resolution.
type Set struct {
	Files []*File

	index    map[string]int
	resolved bool
}

func NewSet() *Set {
	return &Set{index: make(map[string]int)}
}

func (s *Set) Add(f *File) (int, error) {
	if _, exists := s.index[f.Name]; exists {
		return 0, fmt.Errorf("duplicate file name %q", f.Name)
	}
	idx := len(s.Files)
	s.Files = append(s.Files, f)
	s.index[f.Name] = idx
	return idx, nil
}

func (s *Set) Lookup(name string) (int, bool) {
	idx, ok := s.index[name]
	return idx, ok
}

func (s *Set) Len() int {
	return len(s.Files)
}

// Resolved reports whether closure and cost fields have been computed. It
// stays false when the pipeline halted on a cycle.
func (s *Set) Resolved() bool {
	return s.resolved
}

// SynthesizeStubs creates a stub record for every include target that has no
// matching file. Returns the number of stubs created; running it again is a
// no-op since synthesized names join the namespace.
func (s *Set) SynthesizeStubs() int {
	missing := make(map[string]bool)
	for _, f := range s.Files {
		for _, inc := range f.ParsedIncludes {
			if _, ok := s.index[inc.Name]; !ok {
				missing[inc.Name] = true
			}
		}
	}

	for name := range missing {
		s.index[name] = len(s.Files)
		s.Files = append(s.Files, &File{Name: name, Stub: true})
	}
	return len(missing)
}

// LinkIncludes converts parsed directives into forward and backward index
// edges. Every target must already have a record (run SynthesizeStubs
// first); repeated directives collapse to a single edge.
func (s *Set) LinkIncludes() error {
	for idx, f := range s.Files {
		seen := make(map[int]bool, len(f.ParsedIncludes))
		for _, inc := range f.ParsedIncludes {
			target, ok := s.index[inc.Name]
			if !ok {
				return fmt.Errorf("unresolved include target %q in %s", inc.Name, f.Name)
			}
			if seen[target] {
				continue
			}
			seen[target] = true

			f.Includes = append(f.Includes, target)
			s.Files[target].IncludedBy = append(s.Files[target].IncludedBy, idx)
		}
	}
	return nil
}

// EdgeCount returns the number of direct include edges.
func (s *Set) EdgeCount() int {
	n := 0
	for _, f := range s.Files {
		n += len(f.Includes)
	}
	return n
}

func (s *Set) StubCount() int {
	n := 0
	for _, f := range s.Files {
		if f.Stub {
			n++
		}
	}
	return n
}

func (s *Set) SourceCount() int {
	n := 0
	for _, f := range s.Files {
		if f.Source {
			n++
		}
	}
	return n
}
