package hierarchy

// DetectCycle reports whether following the declared out-edges from start
// ever revisits a node. The visited set is seeded with start, so a node
// declaring itself as an edge is a cycle.
//
// This is the one cycle check in the system: parent chains use it with a
// single out-edge per node, formula dependency graphs with many. Because
// out-degree may exceed one, the walk is breadth-first over a work queue
// rather than a linear chain. Reaching a node along two paths counts as a
// revisit, so a diamond of shared dependencies is flagged as well as a true
// cycle.
//
// The edges function must return the out-edges of the id, or nil for an
// unknown id.
func DetectCycle(start string, edges func(id string) []string) bool {
	seen := map[string]bool{start: true}
	queue := append([]string(nil), edges(start)...)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if seen[id] {
			return true
		}
		seen[id] = true
		queue = append(queue, edges(id)...)
	}
	return false
}
