// # internal/report/sort.go
package report

import (
	"sort"
	"strings"

	apperrors "includecost/internal/errors"
	"includecost/internal/graph"
)

// SortKey selects the primary metric a listing is ordered by. Keys are data,
// not code paths: adding one means adding a comparator entry below.
type SortKey string

const (
	ByName          SortKey = "name"
	BySize          SortKey = "size"
	ByIncludeCount  SortKey = "includes"
	ByCodeLines     SortKey = "code-lines"
	ByTextLines     SortKey = "text-lines"
	ByCombinedLines SortKey = "combined-lines"
	ByContribSelf   SortKey = "contrib-self"
	ByContribTotal  SortKey = "contrib-total"
)

// comparator reports a < b for the key's metric.
type comparator func(a, b *graph.File) bool

var comparators = map[SortKey]comparator{
	ByName:          func(a, b *graph.File) bool { return a.Name < b.Name },
	BySize:          func(a, b *graph.File) bool { return len(a.Data) < len(b.Data) },
	ByIncludeCount:  func(a, b *graph.File) bool { return len(a.Includes) < len(b.Includes) },
	ByCodeLines:     func(a, b *graph.File) bool { return a.CodeLines < b.CodeLines },
	ByTextLines:     func(a, b *graph.File) bool { return a.TextLines < b.TextLines },
	ByCombinedLines: func(a, b *graph.File) bool { return a.CombinedLines < b.CombinedLines },
	ByContribSelf:   func(a, b *graph.File) bool { return a.ContribSelf < b.ContribSelf },
	ByContribTotal:  func(a, b *graph.File) bool { return a.ContribTotal < b.ContribTotal },
}

// SortKeys lists every key in a stable order for help text and the UI.
func SortKeys() []SortKey {
	return []SortKey{
		ByName, BySize, ByIncludeCount, ByCodeLines,
		ByTextLines, ByCombinedLines, ByContribSelf, ByContribTotal,
	}
}

func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.TrimSpace(strings.ToLower(s)))
	if _, ok := comparators[key]; !ok {
		return "", apperrors.AddContext(
			apperrors.New(apperrors.CodeValidation, "unknown sort key"),
			apperrors.CtxSortKey, s)
	}
	return key, nil
}

// classRank keeps the listing grouped: project headers first, stub headers
// next, sources last, whatever the primary key says.
func classRank(f *graph.File) int {
	switch {
	case f.Source:
		return 2
	case f.Stub:
		return 1
	default:
		return 0
	}
}

// Order returns the records sorted by group, then the requested key and
// direction, with name as the stable tiebreak.
func Order(files []*graph.File, key SortKey, descending bool) []*graph.File {
	less := comparators[key]
	if less == nil {
		less = comparators[ByName]
	}

	out := append([]*graph.File(nil), files...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ra, rb := classRank(a), classRank(b); ra != rb {
			return ra < rb
		}
		if less(a, b) {
			return !descending
		}
		if less(b, a) {
			return descending
		}
		return a.Name < b.Name
	})
	return out
}
