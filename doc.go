// Package woad evaluates conditional rules over form data.
//
// A Condition is a boolean expression tree over field values: a single
// comparison (field, operator, value) or a logical group of sub-conditions.
// Field references may carry a module prefix ("PersonalInfo.applicant_age"),
// letting a rule in one workflow step read values captured in another.
//
// Typical use:
//
//  1. The authoring UI supplies ConditionalRules as part of a module or
//     workflow schema.
//  2. The form runtime snapshots the current field values in a DataContext.
//  3. An Engine evaluates the rules and returns triggered results in
//     priority order.
//  4. The workflow layer consumes the results to show/hide fields, skip
//     steps or complete the workflow.
//
// Missing data is never an error: a reference to a field that was never
// captured resolves to an absent value, which is exactly what the isNull and
// isEmpty operators test for. Coercion failures make comparisons false, and
// malformed rules carry their error in the result, so one bad rule cannot
// take down a batch.
//
// All evaluation is pure and side-effect free. The engine never mutates the
// rules or the data context it is given, so evaluations may run concurrently
// without coordination.
//
// The hierarchy subpackage validates the field parent/child structure and
// detects dependency cycles before rules run. The cel subpackage compiles
// computed-field formulas and extracts their field dependencies.
package woad
