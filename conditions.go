package woad

// A Condition is a boolean expression over form field values. It is either a
// single Comparison against one field, or a Group combining child conditions
// with a logical operator. Condition is a sealed interface: the two
// implementations in this package are the only ones, so a type switch over
// *Comparison and *Group is exhaustive.
//
// Condition trees are built fresh by the authoring layer each time and are
// never self-referential. Cycles between different fields (for example,
// computed-field formulas) are caught by the hierarchy package, not here.
type Condition interface {
	condition()
}

// Comparison tests a single field against a value with a comparison operator.
type Comparison struct {
	// The field the comparison reads, either "fieldId" or "moduleKey.fieldId".
	Field string `json:"field"`

	// The comparison operator.
	Op ComparisonOp `json:"operator"`

	// The value the field is compared against. Ignored by valueless
	// operators (isNull, isNotNull, isEmpty, isNotEmpty). For in/notIn
	// this is the collection to test membership in.
	Value any `json:"value,omitempty"`
}

// Group combines child conditions with a logical operator.
type Group struct {
	Op LogicalOp `json:"logicalOperator"`

	// The child conditions. An empty And is vacuously true, an empty
	// Or is false.
	Children []Condition `json:"conditions,omitempty"`
}

func (*Comparison) condition() {}
func (*Group) condition()      {}

// ComparisonOp identifies a comparison operator. The string codes are the
// stable wire representation stored in schemas.
type ComparisonOp string

const (
	OpEquals             ComparisonOp = "equals"
	OpNotEquals          ComparisonOp = "notEquals"
	OpGreaterThan        ComparisonOp = "greaterThan"
	OpGreaterThanOrEqual ComparisonOp = "greaterThanOrEqual"
	OpLessThan           ComparisonOp = "lessThan"
	OpLessThanOrEqual    ComparisonOp = "lessThanOrEqual"
	OpContains           ComparisonOp = "contains"
	OpNotContains        ComparisonOp = "notContains"
	OpStartsWith         ComparisonOp = "startsWith"
	OpEndsWith           ComparisonOp = "endsWith"
	OpIn                 ComparisonOp = "in"
	OpNotIn              ComparisonOp = "notIn"
	OpIsNull             ComparisonOp = "isNull"
	OpIsNotNull          ComparisonOp = "isNotNull"
	OpIsEmpty            ComparisonOp = "isEmpty"
	OpIsNotEmpty         ComparisonOp = "isNotEmpty"
)

// Valid reports whether op is a member of the closed operator set.
func (op ComparisonOp) Valid() bool {
	switch op {
	case OpEquals, OpNotEquals,
		OpGreaterThan, OpGreaterThanOrEqual, OpLessThan, OpLessThanOrEqual,
		OpContains, OpNotContains, OpStartsWith, OpEndsWith,
		OpIn, OpNotIn,
		OpIsNull, OpIsNotNull, OpIsEmpty, OpIsNotEmpty:
		return true
	}
	return false
}

// Valueless reports whether op ignores the comparison value.
// The authoring UI omits the value input for these operators.
func (op ComparisonOp) Valueless() bool {
	switch op {
	case OpIsNull, OpIsNotNull, OpIsEmpty, OpIsNotEmpty:
		return true
	}
	return false
}

// LogicalOp combines the children of a Group.
type LogicalOp string

const (
	And LogicalOp = "and"
	Or  LogicalOp = "or"

	// Not negates the AND of all children. The authoring layer restricts
	// Not groups to a single child.
	Not LogicalOp = "not"
)

// Valid reports whether op is a known logical operator.
func (op LogicalOp) Valid() bool {
	switch op {
	case And, Or, Not:
		return true
	}
	return false
}
