// # internal/report/report.go
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"includecost/internal/graph"
)

var headerRow = []string{
	"File",
	"Size",
	"Text lines",
	"Code lines",
	"Incl (direct)",
	"Incl (total)",
	"Incl by (direct)",
	"Incl by src (total)",
	"Combined lines",
	"Contrib (self)",
	"Contrib (total)",
	"Heaviest includers",
}

// unknown is rendered for closure and cost columns when the pipeline halted
// on a cycle and those fields were never computed.
const unknown = "?"

var (
	tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	tableHeaderStyle = lipgloss.NewStyle().Bold(true)
)

type Generator struct {
	set        *graph.Set
	key        SortKey
	descending bool
}

func New(set *graph.Set, key SortKey, descending bool) *Generator {
	return &Generator{set: set, key: key, descending: descending}
}

type Summary struct {
	Files         int
	Sources       int
	Headers       int
	Stubs         int
	Edges         int
	CodeLines     int
	CompiledLines int
	Resolved      bool
}

func (g *Generator) Summary() Summary {
	s := g.set
	return Summary{
		Files:         s.Len(),
		Sources:       s.SourceCount(),
		Headers:       s.Len() - s.SourceCount() - s.StubCount(),
		Stubs:         s.StubCount(),
		Edges:         s.EdgeCount(),
		CodeLines:     s.TotalCodeLines(),
		CompiledLines: s.TotalCompiledLines(),
		Resolved:      s.Resolved(),
	}
}

// Table renders the grouped per-file listing plus a totals footer.
func (g *Generator) Table() string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return lipgloss.NewStyle()
		}).
		Headers(headerRow...)

	for _, f := range Order(g.set.Files, g.key, g.descending) {
		t.Row(g.row(f)...)
	}

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(g.totals())
	return b.String()
}

func (g *Generator) row(f *graph.File) []string {
	resolved := g.set.Resolved()

	cost := func(n int) string {
		if !resolved {
			return unknown
		}
		return FormatCount(n)
	}

	return []string{
		f.DisplayName(),
		FormatCount(len(f.Data)),
		FormatCount(f.TextLines),
		FormatCount(f.CodeLines),
		FormatCount(len(f.Includes)),
		cost(len(f.IncludesIndirect)),
		FormatCount(len(f.IncludedBy)),
		cost(len(f.IncludedByIndirectSources)),
		cost(f.CombinedLines),
		cost(f.ContribSelf),
		cost(f.ContribTotal),
		g.heaviestIncluders(f),
	}
}

// heaviestIncluders lists the direct header includers of f, heaviest first
// (by size of their own transitive includer set), stubs in angle brackets.
// Source includers are folded into a trailing count.
func (g *Generator) heaviestIncluders(f *graph.File) string {
	headers := make([]int, 0, len(f.IncludedBy))
	for _, idx := range f.IncludedBy {
		if !g.set.Files[idx].Source {
			headers = append(headers, idx)
		}
	}
	sort.Slice(headers, func(i, j int) bool {
		a, b := g.set.Files[headers[i]], g.set.Files[headers[j]]
		if len(a.IncludedByIndirect) != len(b.IncludedByIndirect) {
			return len(a.IncludedByIndirect) > len(b.IncludedByIndirect)
		}
		return a.Name < b.Name
	})

	parts := make([]string, 0, len(headers)+1)
	for _, idx := range headers {
		parts = append(parts, g.set.Files[idx].DisplayName())
	}
	if hidden := len(f.IncludedBy) - len(headers); hidden > 0 {
		parts = append(parts, fmt.Sprintf("+%d src", hidden))
	}
	return strings.Join(parts, " ")
}

func (g *Generator) totals() string {
	s := g.Summary()

	var b strings.Builder
	fmt.Fprintf(&b, "Total files: %d sources, %d headers, %d stubs\n",
		s.Sources, s.Headers, s.Stubs)
	fmt.Fprintf(&b, "Total code lines: %s\n", FormatCount(s.CodeLines))
	if s.Resolved {
		fmt.Fprintf(&b, "Total compiled code lines: %s\n", FormatCount(s.CompiledLines))
	} else {
		fmt.Fprintf(&b, "Total compiled code lines: %s\n", unknown)
	}
	return b.String()
}
