package hierarchy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// Metrics are read-only aggregates over a constructed tree.
type Metrics struct {
	// Number of nodes placed in the tree.
	TotalNodes int

	// Depth of the deepest branch; a lone root has depth 1.
	MaxDepth int

	// Node count per type tag. Untyped nodes count under "".
	TypeCounts map[string]int
}

// Metrics aggregates over the constructed tree. Nodes that were dropped
// (duplicates, cycle members) are not counted.
func (r *ValidationResult) Metrics() Metrics {
	m := Metrics{TypeCounts: map[string]int{}}
	for _, root := range r.Roots {
		depth := measure(root, 1, &m)
		if depth > m.MaxDepth {
			m.MaxDepth = depth
		}
	}
	return m
}

func measure(t *TreeNode, depth int, m *Metrics) int {
	m.TotalNodes++
	m.TypeCounts[t.Node.Type]++
	max := depth
	for _, c := range t.Children {
		if d := measure(c, depth+1, m); d > max {
			max = d
		}
	}
	return max
}

func (m Metrics) String() string {
	s := strings.Builder{}
	fmt.Fprintf(&s, "%s nodes, max depth %d", humanize.Comma(int64(m.TotalNodes)), m.MaxDepth)

	types := make([]string, 0, len(m.TypeCounts))
	for t := range m.TypeCounts {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		name := t
		if name == "" {
			name = "untyped"
		}
		fmt.Fprintf(&s, "\n  %-12s %s", name, humanize.Comma(int64(m.TypeCounts[t])))
	}
	return s.String()
}
