package hierarchy

// Repair returns a corrected copy of the node list. A parentId that does not
// resolve to any known id is cleared to "". Circular parent chains are
// broken by clearing the parent link of the first node, in input order, at
// which the cycle is detected. The input slice is never mutated.
//
// Repair does not deduplicate ids; duplicate nodes are a schema-level
// conflict the caller has to resolve, not a link to rewrite.
func Repair(nodes []Node) []Node {
	out := append([]Node(nil), nodes...)

	index := make(map[string]int, len(out))
	for i, n := range out {
		if _, seen := index[n.ID]; !seen {
			index[n.ID] = i
		}
	}

	// Clear unresolved parent references first so cycle walks only
	// follow real links.
	for i := range out {
		if out[i].ParentID == "" {
			continue
		}
		if _, ok := index[out[i].ParentID]; !ok {
			out[i].ParentID = ""
		}
	}

	for i := range out {
		if out[i].ParentID == "" {
			continue
		}
		seen := map[string]bool{out[i].ID: true}
		cur := out[i].ParentID
		for cur != "" {
			if seen[cur] {
				out[i].ParentID = ""
				break
			}
			seen[cur] = true
			cur = out[index[cur]].ParentID
		}
	}

	return out
}
