package woad_test

import (
	"testing"

	"github.com/woadrules/woad"
)

func testContext() woad.DataContext {
	return woad.DataContext{
		Modules: map[string]map[string]any{
			"PersonalInfo": {
				"applicant_age": 16,
				"province":      "ON",
				"name":          "Ada Lovelace",
				"consent":       true,
				"notes":         "   ",
				"tags":          []any{},
			},
			"Step1": {
				"total_request_amount": 7500,
				"amount_text":          "10",
			},
		},
		CurrentModule: "PersonalInfo",
	}
}

func cmp(field string, op woad.ComparisonOp, value any) woad.Condition {
	return &woad.Comparison{Field: field, Op: op, Value: value}
}

// Test the comparison operator semantics against a fixed context.
func TestComparisonOperators(t *testing.T) {

	ctx := testContext()

	cases := map[string]struct {
		cond woad.Condition
		want bool
	}{
		"equals numeric":                 {cmp("applicant_age", woad.OpEquals, 16), true},
		"equals numeric string coercion": {cmp("Step1.amount_text", woad.OpEquals, 10), true},
		"equals numeric float":           {cmp("applicant_age", woad.OpEquals, 16.0), true},
		"equals string case insensitive": {cmp("province", woad.OpEquals, "on"), true},
		"equals bool canonical form":     {cmp("consent", woad.OpEquals, "TRUE"), true},
		"equals mismatch":                {cmp("province", woad.OpEquals, "QC"), false},
		"notEquals":                      {cmp("province", woad.OpNotEquals, "QC"), true},
		"greaterThan":                    {cmp("Step1.total_request_amount", woad.OpGreaterThan, 5000), true},
		"greaterThan false":              {cmp("Step1.total_request_amount", woad.OpGreaterThan, 10000), false},
		"greaterThan non-coercible":      {cmp("name", woad.OpGreaterThan, 10), false},
		"greaterThanOrEqual boundary":    {cmp("applicant_age", woad.OpGreaterThanOrEqual, 16), true},
		"lessThan":                       {cmp("applicant_age", woad.OpLessThan, 18), true},
		"lessThanOrEqual boundary":       {cmp("applicant_age", woad.OpLessThanOrEqual, 16), true},
		"lessThan absent value":          {cmp("missing_field", woad.OpLessThan, 18), false},
		"contains":                       {cmp("name", woad.OpContains, "love"), true},
		"contains false":                 {cmp("name", woad.OpContains, "xyz"), false},
		"notContains":                    {cmp("name", woad.OpNotContains, "xyz"), true},
		"startsWith":                     {cmp("name", woad.OpStartsWith, "ada"), true},
		"endsWith":                       {cmp("name", woad.OpEndsWith, "LACE"), true},
		"in":                             {cmp("province", woad.OpIn, []any{"ON", "QC", "BC"}), true},
		"in miss":                        {cmp("province", woad.OpIn, []any{"AB", "SK"}), false},
		"in string slice":                {cmp("province", woad.OpIn, []string{"on", "qc"}), true},
		"in single element":              {cmp("province", woad.OpIn, "ON"), true},
		"in numeric elements":            {cmp("applicant_age", woad.OpIn, []any{"16", 21}), true},
		"notIn":                          {cmp("province", woad.OpNotIn, []any{"AB", "SK"}), true},
		"isNull absent":                  {cmp("missing_field", woad.OpIsNull, nil), true},
		"isNull present":                 {cmp("province", woad.OpIsNull, nil), false},
		"isNotNull":                      {cmp("province", woad.OpIsNotNull, nil), true},
		"isEmpty absent":                 {cmp("missing_field", woad.OpIsEmpty, nil), true},
		"isEmpty whitespace":             {cmp("notes", woad.OpIsEmpty, nil), true},
		"isEmpty empty list":             {cmp("tags", woad.OpIsEmpty, nil), true},
		"isEmpty populated":              {cmp("province", woad.OpIsEmpty, nil), false},
		"isNotEmpty":                     {cmp("province", woad.OpIsNotEmpty, nil), true},
		"valueless op ignores value":     {cmp("missing_field", woad.OpIsNull, "ignored"), true},
		"zero is not empty":              {cmp("applicant_age", woad.OpIsEmpty, nil), false},
	}

	for name, c := range cases {
		got, err := woad.Evaluate(c.cond, ctx)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if got != c.want {
			t.Errorf("%s: got %t, want %t", name, got, c.want)
		}
	}
}

func TestEmptyGroups(t *testing.T) {

	ctx := testContext()

	cases := map[string]struct {
		cond woad.Condition
		want bool
	}{
		"empty and is vacuously true": {&woad.Group{Op: woad.And}, true},
		"empty or is false":           {&woad.Group{Op: woad.Or}, false},
		// Not negates the AND of its children; AND of nothing is true.
		"empty not is false": {&woad.Group{Op: woad.Not}, false},
	}

	for name, c := range cases {
		got, err := woad.Evaluate(c.cond, ctx)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if got != c.want {
			t.Errorf("%s: got %t, want %t", name, got, c.want)
		}
	}
}

func TestNotGroup(t *testing.T) {

	ctx := testContext()

	single := &woad.Group{
		Op:       woad.Not,
		Children: []woad.Condition{cmp("province", woad.OpEquals, "ON")},
	}
	got, err := woad.Evaluate(single, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Errorf("not(province == ON): got true, want false")
	}

	// Multiple children are AND-ed before negation.
	multi := &woad.Group{
		Op: woad.Not,
		Children: []woad.Condition{
			cmp("province", woad.OpEquals, "ON"),
			cmp("applicant_age", woad.OpEquals, 99),
		},
	}
	got, err = woad.Evaluate(multi, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Errorf("not(true and false): got false, want true")
	}
}

// The minor-in-ON-or-QC scenario: age < 18 AND (province == ON OR province == QC).
func TestNestedGroupScenario(t *testing.T) {

	cond := &woad.Group{
		Op: woad.And,
		Children: []woad.Condition{
			cmp("PersonalInfo.applicant_age", woad.OpLessThan, 18),
			&woad.Group{
				Op: woad.Or,
				Children: []woad.Condition{
					cmp("PersonalInfo.province", woad.OpEquals, "ON"),
					cmp("PersonalInfo.province", woad.OpEquals, "QC"),
				},
			},
		},
	}

	ctx := woad.DataContext{
		Modules: map[string]map[string]any{
			"PersonalInfo": {"applicant_age": 16, "province": "ON"},
		},
	}

	got, err := woad.Evaluate(cond, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Errorf("expected condition to hold")
	}

	// Flip the province out of the list and the condition fails.
	ctx.Modules["PersonalInfo"]["province"] = "AB"
	got, err = woad.Evaluate(cond, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Errorf("expected condition to fail for AB")
	}
}

func TestCaseSensitiveOption(t *testing.T) {

	ctx := testContext()
	cond := cmp("province", woad.OpEquals, "on")

	got, err := woad.Evaluate(cond, ctx, woad.CaseSensitive(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Errorf("case-sensitive equals: got true, want false")
	}

	got, err = woad.Evaluate(cond, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Errorf("case-insensitive equals: got false, want true")
	}
}

func TestUnknownOperator(t *testing.T) {

	_, err := woad.Evaluate(cmp("province", "matches", ".*"), testContext())
	if err == nil {
		t.Fatalf("expected error for unknown operator")
	}
}

func TestNilCondition(t *testing.T) {

	_, err := woad.Evaluate(nil, testContext())
	if err == nil {
		t.Fatalf("expected error for nil condition")
	}
}

func TestMaxDepth(t *testing.T) {

	// A chain of single-child groups deeper than the limit must error
	// rather than recurse unboundedly.
	var cond woad.Condition = cmp("province", woad.OpEquals, "ON")
	for i := 0; i < 100; i++ {
		cond = &woad.Group{Op: woad.And, Children: []woad.Condition{cond}}
	}

	_, err := woad.Evaluate(cond, testContext())
	if err == nil {
		t.Fatalf("expected depth error")
	}

	_, err = woad.Evaluate(cond, testContext(), woad.MaxDepth(200))
	if err != nil {
		t.Fatalf("unexpected error with raised depth limit: %v", err)
	}
}

// Evaluating the same condition and context twice yields identical results;
// there is no hidden state.
func TestIdempotence(t *testing.T) {

	ctx := testContext()
	cond := &woad.Group{
		Op: woad.Or,
		Children: []woad.Condition{
			cmp("province", woad.OpEquals, "QC"),
			cmp("applicant_age", woad.OpLessThan, 18),
		},
	}

	first, err := woad.Evaluate(cond, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := woad.Evaluate(cond, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("results differ across identical evaluations: %t then %t", first, second)
	}
}
