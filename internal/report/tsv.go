// # internal/report/tsv.go
package report

import (
	"strconv"
	"strings"
)

// TSV renders the same listing as Table in machine-readable form: plain
// numbers, tab separated, one row per file in the same grouped order.
func (g *Generator) TSV() string {
	var buf strings.Builder

	buf.WriteString(strings.Join(headerRow, "\t"))
	buf.WriteString("\n")

	resolved := g.set.Resolved()
	cost := func(n int) string {
		if !resolved {
			return unknown
		}
		return strconv.Itoa(n)
	}

	for _, f := range Order(g.set.Files, g.key, g.descending) {
		cols := []string{
			f.DisplayName(),
			strconv.Itoa(len(f.Data)),
			strconv.Itoa(f.TextLines),
			strconv.Itoa(f.CodeLines),
			strconv.Itoa(len(f.Includes)),
			cost(len(f.IncludesIndirect)),
			strconv.Itoa(len(f.IncludedBy)),
			cost(len(f.IncludedByIndirectSources)),
			cost(f.CombinedLines),
			cost(f.ContribSelf),
			cost(f.ContribTotal),
			g.heaviestIncluders(f),
		}
		buf.WriteString(strings.Join(cols, "\t"))
		buf.WriteString("\n")
	}

	return buf.String()
}
