// Package cel compiles computed-field formulas using Google's cel-go
// expression engine. See https://github.com/google/cel-go for more
// information about CEL; formulas must conform to the CEL spec.
//
// Besides evaluating a formula against a woad.DataContext, a compiled
// Formula reports the field references its expression reads. Those
// references are the declared dependency edges the hierarchy package's
// cycle detector walks before computed fields are allowed to run.
package cel

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/checker/decls"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"

	"github.com/woadrules/woad"
)

// Type of a declared formula input.
type Type int

const (
	Any Type = iota
	String
	Int
	Float
	Bool

	// List is a list of Any.
	List

	// Map is a map of string to Any. Module keys are declared as maps so
	// formulas can read cross-module values as "ModuleKey.field".
	Map
)

// Field declares one named input available to a formula.
type Field struct {
	Name string
	Type Type
}

// Schema lists the inputs a formula may reference. Compilation fails for
// references outside the schema, surfacing authoring typos before runtime.
type Schema struct {
	Elements []Field
}

// SchemaFromContext builds a schema from a data context snapshot: every
// module key as a map, and the current module's fields as unqualified
// inputs.
func SchemaFromContext(ctx woad.DataContext) Schema {
	s := Schema{}
	current := ctx.CurrentModule
	if current == "" {
		current = woad.DefaultModuleKey
	}
	for key := range ctx.Modules {
		s.Elements = append(s.Elements, Field{Name: key, Type: Map})
	}
	for name := range ctx.Modules[current] {
		s.Elements = append(s.Elements, Field{Name: name, Type: Any})
	}
	return s
}

// A Formula is a compiled computed-field expression.
type Formula struct {
	// The computed field this formula populates.
	FieldID string

	// The CEL source expression.
	Expr string

	program cel.Program
	refs    []string
}

// Compile parses, checks and compiles the formula expression against the
// schema's declarations.
func Compile(fieldID, expr string, s Schema) (*Formula, error) {
	declarations, err := schemaToDeclarations(s)
	if err != nil {
		return nil, err
	}

	env, err := cel.NewEnv(declarations)
	if err != nil {
		return nil, errors.Wrapf(err, "creating environment for formula %s", fieldID)
	}

	p, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return nil, errors.Wrapf(iss.Err(), "parsing formula for %s", fieldID)
	}

	c, iss := env.Check(p)
	if iss != nil && iss.Err() != nil {
		return nil, errors.Wrapf(iss.Err(), "checking formula for %s", fieldID)
	}

	prg, err := env.Program(c)
	if err != nil {
		return nil, errors.Wrapf(err, "generating program for %s", fieldID)
	}

	refs := map[string]bool{}
	collectReferences(c.Expr(), refs)

	f := &Formula{
		FieldID: fieldID,
		Expr:    expr,
		program: prg,
		refs:    make([]string, 0, len(refs)),
	}
	for r := range refs {
		f.refs = append(f.refs, r)
	}
	sort.Strings(f.refs)
	return f, nil
}

// References returns the field references the formula reads, sorted.
// Unqualified identifiers are returned as-is; cross-module reads are
// returned as "moduleKey.fieldId".
func (f *Formula) References() []string {
	out := make([]string, len(f.refs))
	copy(out, f.refs)
	return out
}

// Evaluate runs the formula against the data context. Module maps are bound
// under their module keys; the current module's fields are also bound
// unqualified.
func (f *Formula) Evaluate(ctx woad.DataContext) (any, error) {
	val, _, err := f.program.Eval(activation(ctx))
	if err != nil {
		return nil, errors.Wrapf(err, "evaluating formula for %s", f.FieldID)
	}
	return val.Value(), nil
}

// DependencyEdges adapts a set of compiled formulas, keyed by computed field
// id, to the edge-lookup signature of hierarchy.DetectCycle. Fields without
// a formula have no out-edges.
func DependencyEdges(formulas map[string]*Formula) func(id string) []string {
	return func(id string) []string {
		f, ok := formulas[id]
		if !ok {
			return nil
		}
		return f.References()
	}
}

func activation(ctx woad.DataContext) map[string]any {
	data := make(map[string]any, len(ctx.Modules)*2)
	for key, fields := range ctx.Modules {
		data[key] = fields
	}
	current := ctx.CurrentModule
	if current == "" {
		current = woad.DefaultModuleKey
	}
	for name, v := range ctx.Modules[current] {
		if _, taken := data[name]; !taken {
			data[name] = v
		}
	}
	return data
}

// collectReferences walks the checked AST for identifiers and selects.
// A select over an identifier is a qualified module.field reference and is
// collected as one reference, not as the module identifier alone.
func collectReferences(e *exprpb.Expr, out map[string]bool) {
	if e == nil {
		return
	}
	switch node := e.ExprKind.(type) {
	case *exprpb.Expr_IdentExpr:
		out[node.IdentExpr.Name] = true
	case *exprpb.Expr_SelectExpr:
		if id, ok := node.SelectExpr.Operand.ExprKind.(*exprpb.Expr_IdentExpr); ok {
			out[id.IdentExpr.Name+"."+node.SelectExpr.Field] = true
			return
		}
		collectReferences(node.SelectExpr.Operand, out)
	case *exprpb.Expr_CallExpr:
		collectReferences(node.CallExpr.Target, out)
		for _, arg := range node.CallExpr.Args {
			collectReferences(arg, out)
		}
	case *exprpb.Expr_ListExpr:
		for _, el := range node.ListExpr.Elements {
			collectReferences(el, out)
		}
	case *exprpb.Expr_StructExpr:
		for _, entry := range node.StructExpr.Entries {
			collectReferences(entry.GetMapKey(), out)
			collectReferences(entry.GetValue(), out)
		}
	case *exprpb.Expr_ComprehensionExpr:
		c := node.ComprehensionExpr
		collectReferences(c.IterRange, out)
		collectReferences(c.AccuInit, out)
		collectReferences(c.LoopCondition, out)
		collectReferences(c.LoopStep, out)
		collectReferences(c.Result, out)
	}
}

// celType converts a formula input type to a CEL type.
func celType(t Type) *exprpb.Type {
	switch t {
	case String:
		return decls.String
	case Int:
		return decls.Int
	case Float:
		return decls.Double
	case Bool:
		return decls.Bool
	case List:
		return decls.NewListType(decls.Any)
	case Map:
		return decls.NewMapType(decls.String, decls.Any)
	default:
		return decls.Any
	}
}

// schemaToDeclarations converts a Schema to the CEL declarations passed to
// the environment.
func schemaToDeclarations(s Schema) (cel.EnvOption, error) {
	items := make([]*exprpb.Decl, 0, len(s.Elements))
	for _, f := range s.Elements {
		items = append(items, decls.NewIdent(f.Name, celType(f.Type), nil))
	}
	return cel.Declarations(items...), nil
}
