package hierarchy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/woadrules/woad/hierarchy"
)

func TestRepairClearsOrphans(t *testing.T) {
	nodes := []hierarchy.Node{
		{ID: "root"},
		{ID: "a", ParentID: "root"},
		{ID: "stray", ParentID: "deleted_section"},
	}

	repaired := hierarchy.Repair(nodes)
	require.Equal(t, "", repaired[2].ParentID)
	require.Equal(t, "root", repaired[1].ParentID)

	// Input is untouched.
	require.Equal(t, "deleted_section", nodes[2].ParentID)

	res := hierarchy.Build(repaired)
	require.True(t, res.Valid)
	require.Empty(t, res.Issues)
}

func TestRepairBreaksCycle(t *testing.T) {
	nodes := []hierarchy.Node{
		{ID: "a", ParentID: "b"},
		{ID: "b", ParentID: "a"},
	}

	repaired := hierarchy.Repair(nodes)

	// The first node at which the cycle is detected loses its parent
	// link; the rest of the chain stays intact.
	require.Equal(t, "", repaired[0].ParentID)
	require.Equal(t, "a", repaired[1].ParentID)

	res := hierarchy.Build(repaired)
	require.True(t, res.Valid)
	require.Len(t, res.Roots, 1)
}

func TestRepairLongCycle(t *testing.T) {
	nodes := []hierarchy.Node{
		{ID: "a", ParentID: "c"},
		{ID: "b", ParentID: "a"},
		{ID: "c", ParentID: "b"},
		{ID: "leaf", ParentID: "b"},
	}

	repaired := hierarchy.Repair(nodes)

	res := hierarchy.Build(repaired)
	require.True(t, res.Valid)

	m := res.Metrics()
	require.Equal(t, 4, m.TotalNodes)
}

func TestRepairValidInputUnchanged(t *testing.T) {
	nodes := []hierarchy.Node{
		{ID: "root"},
		{ID: "a", ParentID: "root"},
	}

	repaired := hierarchy.Repair(nodes)
	require.Equal(t, nodes, repaired)
}
