package woad

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// defaultMaxDepth bounds condition tree recursion. Trees are acyclic by
// construction, but a corrupted schema should fail with an error rather
// than exhaust the stack.
const defaultMaxDepth = 64

// EvalOptions control how conditions are evaluated.
// Use the EvalOption functions to set them.
type EvalOptions struct {
	// String comparisons (equals, contains, startsWith, endsWith and
	// their negations) are case-insensitive unless set.
	CaseSensitive bool

	// Maximum condition tree depth. 0 means defaultMaxDepth.
	MaxDepth int

	// If set, one TraceRow is appended per comparison evaluated.
	Trace *Trace
}

type EvalOption func(o *EvalOptions)

func applyEvalOptions(o *EvalOptions, opts ...EvalOption) {
	for _, opt := range opts {
		opt(o)
	}
}

// CaseSensitive makes string comparisons exact instead of the
// case-insensitive default.
func CaseSensitive(b bool) EvalOption {
	return func(o *EvalOptions) {
		o.CaseSensitive = b
	}
}

// MaxDepth overrides the default condition tree depth limit.
func MaxDepth(n int) EvalOption {
	return func(o *EvalOptions) {
		o.MaxDepth = n
	}
}

// CollectTrace records one row per comparison into t during evaluation.
func CollectTrace(t *Trace) EvalOption {
	return func(o *EvalOptions) {
		o.Trace = t
	}
}

// Evaluate tests the condition against the data context.
//
// Missing data and failed numeric coercion are not errors; they flow through
// the comparison semantics (an absent value satisfies isNull, a non-numeric
// operand makes an ordering comparison false). Evaluate returns an error
// only for malformed conditions: a nil condition, an unknown comparison or
// logical operator, or a tree deeper than the depth limit.
func Evaluate(c Condition, ctx DataContext, opts ...EvalOption) (bool, error) {
	o := EvalOptions{MaxDepth: defaultMaxDepth}
	applyEvalOptions(&o, opts...)
	if o.MaxDepth <= 0 {
		o.MaxDepth = defaultMaxDepth
	}
	return eval(c, ctx, o, 0)
}

func eval(c Condition, ctx DataContext, o EvalOptions, depth int) (bool, error) {
	if depth >= o.MaxDepth {
		return false, fmt.Errorf("condition tree exceeds maximum depth %d", o.MaxDepth)
	}

	switch v := c.(type) {
	case *Comparison:
		return evalComparison(v, ctx, o)
	case *Group:
		return evalGroup(v, ctx, o, depth)
	case nil:
		return false, fmt.Errorf("nil condition")
	default:
		return false, fmt.Errorf("unknown condition type %T", c)
	}
}

func evalGroup(g *Group, ctx DataContext, o EvalOptions, depth int) (bool, error) {
	switch g.Op {
	case And, Not:
		// Not negates the AND of its children. The authoring layer
		// restricts Not to a single child.
		all := true
		for _, child := range g.Children {
			ok, err := eval(child, ctx, o, depth+1)
			if err != nil {
				return false, err
			}
			if !ok {
				all = false
				break
			}
		}
		if g.Op == Not {
			return !all, nil
		}
		return all, nil
	case Or:
		for _, child := range g.Children {
			ok, err := eval(child, ctx, o, depth+1)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, fmt.Errorf("unknown logical operator %q", g.Op)
	}
}

func evalComparison(cmp *Comparison, ctx DataContext, o EvalOptions) (bool, error) {
	if !cmp.Op.Valid() {
		return false, fmt.Errorf("unknown comparison operator %q on field %q", cmp.Op, cmp.Field)
	}

	resolved, present := ctx.Resolve(cmp.Field)

	var out bool
	switch cmp.Op {
	case OpIsNull:
		out = !present || resolved == nil
	case OpIsNotNull:
		out = present && resolved != nil
	case OpIsEmpty:
		out = isEmpty(resolved, present)
	case OpIsNotEmpty:
		out = !isEmpty(resolved, present)
	case OpEquals:
		out = looseEqual(resolved, cmp.Value, o)
	case OpNotEquals:
		out = !looseEqual(resolved, cmp.Value, o)
	case OpGreaterThan, OpGreaterThanOrEqual, OpLessThan, OpLessThanOrEqual:
		out = numericCompare(cmp.Op, resolved, cmp.Value)
	case OpContains:
		out = foldContains(stringify(resolved), stringify(cmp.Value), o)
	case OpNotContains:
		out = !foldContains(stringify(resolved), stringify(cmp.Value), o)
	case OpStartsWith:
		out = foldHasPrefix(stringify(resolved), stringify(cmp.Value), o)
	case OpEndsWith:
		out = foldHasSuffix(stringify(resolved), stringify(cmp.Value), o)
	case OpIn:
		out = member(resolved, cmp.Value, o)
	case OpNotIn:
		out = !member(resolved, cmp.Value, o)
	}

	if o.Trace != nil {
		o.Trace.add(cmp, resolved, present, out)
	}
	return out, nil
}

// looseEqual implements the equality rule shared by equals, notEquals, in
// and notIn: numeric comparison when both operands coerce to a number,
// otherwise case-normalized string comparison. Booleans fall through to the
// string comparison via their canonical true/false form.
func looseEqual(a, b any, o EvalOptions) bool {
	da, aok := toDecimal(a)
	db, bok := toDecimal(b)
	if aok && bok {
		return da.Equal(db)
	}
	sa, sb := stringify(a), stringify(b)
	if o.CaseSensitive {
		return sa == sb
	}
	return strings.EqualFold(sa, sb)
}

// numericCompare implements the ordering operators. A value that cannot be
// coerced to a number makes the comparison false rather than an error.
func numericCompare(op ComparisonOp, a, b any) bool {
	da, aok := toDecimal(a)
	db, bok := toDecimal(b)
	if !aok || !bok {
		return false
	}
	switch op {
	case OpGreaterThan:
		return da.GreaterThan(db)
	case OpGreaterThanOrEqual:
		return da.GreaterThanOrEqual(db)
	case OpLessThan:
		return da.LessThan(db)
	case OpLessThanOrEqual:
		return da.LessThanOrEqual(db)
	}
	return false
}

// member tests membership of v in coll using the looseEqual rule, element by
// element. A non-collection coll is treated as a single-element collection.
func member(v, coll any, o EvalOptions) bool {
	if coll == nil {
		return false
	}
	rv := reflect.ValueOf(coll)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if looseEqual(v, rv.Index(i).Interface(), o) {
				return true
			}
		}
		return false
	default:
		return looseEqual(v, coll, o)
	}
}

// isEmpty reports whether a resolved value is absent, nil, a whitespace-only
// string, or a zero-length collection.
func isEmpty(v any, present bool) bool {
	if !present || v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	}
	return false
}

// toDecimal attempts numeric coercion of a form value. Strings are trimmed
// and parsed; booleans do not coerce.
func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case float64:
		return decimal.NewFromFloat(n), true
	case json.Number:
		d, err := decimal.NewFromString(string(n))
		return d, err == nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return decimal.Decimal{}, false
		}
		d, err := decimal.NewFromString(s)
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

// stringify produces the canonical string form of a value for the
// string-based comparisons. Absent/nil values stringify to "".
func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func foldContains(s, substr string, o EvalOptions) bool {
	if o.CaseSensitive {
		return strings.Contains(s, substr)
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func foldHasPrefix(s, prefix string, o EvalOptions) bool {
	if o.CaseSensitive {
		return strings.HasPrefix(s, prefix)
	}
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
}

func foldHasSuffix(s, suffix string, o EvalOptions) bool {
	if o.CaseSensitive {
		return strings.HasSuffix(s, suffix)
	}
	return strings.HasSuffix(strings.ToLower(s), strings.ToLower(suffix))
}
