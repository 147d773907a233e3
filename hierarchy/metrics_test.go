package hierarchy_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/woadrules/woad/hierarchy"
)

func TestMetrics(t *testing.T) {
	nodes := []hierarchy.Node{
		{ID: "root", Type: "section"},
		{ID: "a", ParentID: "root", Type: "text"},
		{ID: "b", ParentID: "root", Type: "text"},
		{ID: "a1", ParentID: "a", Type: "number"},
		{ID: "a1x", ParentID: "a1", Type: "number"},
		{ID: "other_root", Type: "section"},
	}

	m := hierarchy.Build(nodes).Metrics()
	require.Equal(t, 6, m.TotalNodes)
	require.Equal(t, 4, m.MaxDepth) // root -> a -> a1 -> a1x
	require.Equal(t, map[string]int{"section": 2, "text": 2, "number": 2}, m.TypeCounts)
}

func TestMetricsUntypedNodes(t *testing.T) {
	nodes := []hierarchy.Node{
		{ID: "a"},
		{ID: "b", Type: "text"},
	}

	m := hierarchy.Build(nodes).Metrics()
	require.Equal(t, 2, m.TotalNodes)
	require.Equal(t, 1, m.MaxDepth)
	require.Equal(t, 1, m.TypeCounts[""])

	s := m.String()
	require.True(t, strings.Contains(s, "untyped"))
	require.True(t, strings.Contains(s, "max depth 1"))
}

// Cycle members are dropped from the tree, so they do not inflate metrics.
func TestMetricsExcludeCycleMembers(t *testing.T) {
	nodes := []hierarchy.Node{
		{ID: "root", Type: "section"},
		{ID: "a", ParentID: "b"},
		{ID: "b", ParentID: "a"},
	}

	m := hierarchy.Build(nodes).Metrics()
	require.Equal(t, 1, m.TotalNodes)
}
