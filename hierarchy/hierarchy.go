// Package hierarchy validates the structure of a form's field list: it
// builds the parent/child tree from flat parent pointers, detects duplicate
// ids, orphaned parent references and circular chains, and exposes a generic
// cycle detector reused for formula dependency graphs.
//
// Structural problems are reported as issues, never raised: the editor must
// keep functioning while it shows them as actionable diagnostics. Both
// validation and repair are pure functions of their input; nothing here
// holds state between calls or mutates the node list it is given.
package hierarchy

// A Node is one field in the flat list the authoring layer stores.
type Node struct {
	// Unique node identifier. (required)
	ID string `json:"id"`

	// The parent node's id, or "" for a root.
	ParentID string `json:"parentId,omitempty"`

	// Free-form type tag ("section", "text", "number", ...), aggregated
	// by Metrics.
	Type string `json:"type,omitempty"`

	// A reference to any object. Not used by the validator.
	Meta any `json:"-"`
}

// Severity of a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// IssueCode identifies the kind of structural problem found.
type IssueCode string

const (
	CodeDuplicateID  IssueCode = "duplicate_id"
	CodeOrphanParent IssueCode = "orphan_parent"
	CodeCircularRef  IssueCode = "circular_ref"
)

// An Issue is one structural problem, tied to the offending node.
type Issue struct {
	Severity Severity  `json:"severity"`
	Code     IssueCode `json:"code"`
	NodeID   string    `json:"nodeId"`
	Message  string    `json:"message"`
}

// A TreeNode is a node placed in the constructed tree, with its children in
// input order.
type TreeNode struct {
	Node     Node
	Children []*TreeNode
}

// ValidationResult is the outcome of Build: the constructed tree plus every
// issue found. Nodes caught in a parent cycle are flagged but not placed in
// the tree, since they are unreachable from any root.
type ValidationResult struct {
	// False when any error-severity issue was found.
	Valid bool

	// Every structural problem, in detection order.
	Issues []Issue

	// Root nodes (no parent, or an unresolved parent) in input order.
	Roots []*TreeNode
}

// Build groups a flat node list into a parent/child tree and reports
// structural issues. Duplicate ids keep the first occurrence; later ones are
// flagged and dropped. A parent reference to an unknown id is flagged as an
// orphan warning and the node is treated as a root. A node whose ancestor
// chain revisits an id is flagged as a circular reference.
//
// A nil or empty node list yields an empty, valid result.
func Build(nodes []Node) *ValidationResult {
	res := &ValidationResult{Valid: true}
	if len(nodes) == 0 {
		return res
	}

	// Index nodes by id, first occurrence wins.
	byID := make(map[string]Node, len(nodes))
	order := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if _, seen := byID[n.ID]; seen {
			res.report(Issue{
				Severity: SeverityError,
				Code:     CodeDuplicateID,
				NodeID:   n.ID,
				Message:  "duplicate node id " + n.ID,
			})
			continue
		}
		byID[n.ID] = n
		order = append(order, n.ID)
	}

	edges := parentEdges(byID)

	cyclic := make(map[string]bool, len(order))
	for _, id := range order {
		if DetectCycle(id, edges) {
			cyclic[id] = true
			res.report(Issue{
				Severity: SeverityError,
				Code:     CodeCircularRef,
				NodeID:   id,
				Message:  "node " + id + " is part of a circular parent chain",
			})
		}
	}

	treeNodes := make(map[string]*TreeNode, len(order))
	for _, id := range order {
		treeNodes[id] = &TreeNode{Node: byID[id]}
	}

	for _, id := range order {
		n := byID[id]
		if cyclic[id] {
			continue
		}
		if n.ParentID == "" {
			res.Roots = append(res.Roots, treeNodes[id])
			continue
		}
		parent, ok := byID[n.ParentID]
		if !ok {
			res.report(Issue{
				Severity: SeverityWarning,
				Code:     CodeOrphanParent,
				NodeID:   id,
				Message:  "node " + id + " references unknown parent " + n.ParentID,
			})
			res.Roots = append(res.Roots, treeNodes[id])
			continue
		}
		treeNodes[parent.ID].Children = append(treeNodes[parent.ID].Children, treeNodes[id])
	}

	return res
}

func (r *ValidationResult) report(i Issue) {
	r.Issues = append(r.Issues, i)
	if i.Severity == SeverityError {
		r.Valid = false
	}
}

// IssuesFor returns the issues recorded against the node id.
func (r *ValidationResult) IssuesFor(id string) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.NodeID == id {
			out = append(out, i)
		}
	}
	return out
}

func parentEdges(byID map[string]Node) func(string) []string {
	return func(id string) []string {
		n, ok := byID[id]
		if !ok || n.ParentID == "" {
			return nil
		}
		if _, ok := byID[n.ParentID]; !ok {
			return nil
		}
		return []string{n.ParentID}
	}
}

// ParentEdges adapts a flat node list to the edge-lookup signature used by
// DetectCycle, following parent pointers. Unresolved parents have no edge.
func ParentEdges(nodes []Node) func(string) []string {
	byID := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		if _, seen := byID[n.ID]; !seen {
			byID[n.ID] = n
		}
	}
	return parentEdges(byID)
}
