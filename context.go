package woad

import "strings"

// DefaultModuleKey is the implicit module key used when a field reference
// carries no module prefix and the context does not name a current module.
const DefaultModuleKey = "current"

// DataContext is a snapshot of form data: a map from module key to that
// module's field values. Module keys and field ids are opaque strings.
//
// The engine never mutates a DataContext, so the same context may be shared
// by concurrent evaluations.
type DataContext struct {
	// Field values per module.
	Modules map[string]map[string]any `json:"modules"`

	// The module used for references without a module prefix.
	// When empty, DefaultModuleKey is used.
	CurrentModule string `json:"currentModule,omitempty"`
}

// ParseFieldRef splits a field reference into its module key and field id.
// References are either "fieldId" or "moduleKey.fieldId"; the split happens
// on the first dot, so field ids may themselves contain dots. A reference
// without a dot has an empty module key.
func ParseFieldRef(ref string) (module, field string) {
	if i := strings.Index(ref, "."); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return "", ref
}

// Resolve looks up the value a field reference points at. The second return
// is false when the module or the field is not present in the context.
// A miss is not an error: it is what lets isNull and isEmpty checks succeed
// against data that was never captured.
func (c DataContext) Resolve(ref string) (any, bool) {
	module, field := ParseFieldRef(ref)
	if module == "" {
		module = c.CurrentModule
		if module == "" {
			module = DefaultModuleKey
		}
	}
	fields, ok := c.Modules[module]
	if !ok {
		return nil, false
	}
	v, ok := fields[field]
	if !ok {
		return nil, false
	}
	return v, true
}
