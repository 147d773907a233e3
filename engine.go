package woad

import (
	"sort"

	"github.com/rs/zerolog"
)

// Engine evaluates conditional rules against form data and turns them into
// ordered, actionable results. An Engine holds no per-evaluation state and
// is safe for concurrent use.
type Engine struct {
	opts EngineOptions
}

// See the functional definitions below for the meaning.
type EngineOptions struct {
	Logger   zerolog.Logger
	EvalOpts []EvalOption
}

type EngineOption func(o *EngineOptions)

// Given an array of EngineOption functions, apply their effect
// on the EngineOptions struct.
func applyEngineOptions(o *EngineOptions, opts ...EngineOption) {
	for _, opt := range opts {
		opt(o)
	}
}

// WithLogger attaches a logger to the engine. Rule evaluations are logged
// at debug level. The default is a disabled logger.
func WithLogger(l zerolog.Logger) EngineOption {
	return func(o *EngineOptions) {
		o.Logger = l.With().Str("component", "rules").Logger()
	}
}

// WithEvalOptions sets default evaluation options (case sensitivity, trace
// collection) applied to every rule the engine evaluates.
func WithEvalOptions(opts ...EvalOption) EngineOption {
	return func(o *EngineOptions) {
		o.EvalOpts = append(o.EvalOpts, opts...)
	}
}

// NewEngine initializes a new engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := Engine{
		opts: EngineOptions{Logger: zerolog.Nop()},
	}
	applyEngineOptions(&e.opts, opts...)
	return &e
}

// EvaluateRule evaluates a single rule against the data context.
//
// Inactive rules are short-circuited: the result is not triggered and the
// condition is never evaluated. An evaluation failure is captured in the
// result's Err field, never returned as an error, so a malformed rule in a
// batch cannot abort the others.
func (e *Engine) EvaluateRule(r *ConditionalRule, ctx DataContext) *RuleEvaluationResult {
	res := &RuleEvaluationResult{Rule: r}
	if r == nil {
		res.Err = "nil rule"
		return res
	}
	if !r.Active {
		e.opts.Logger.Debug().Str("rule", r.ID).Msg("inactive rule skipped")
		return res
	}

	triggered, err := Evaluate(r.Condition, ctx, e.opts.EvalOpts...)
	if err != nil {
		res.Err = err.Error()
		e.opts.Logger.Debug().Str("rule", r.ID).Err(err).Msg("rule evaluation failed")
		return res
	}

	res.Triggered = triggered
	e.opts.Logger.Debug().
		Str("rule", r.ID).
		Bool("triggered", triggered).
		Str("action", string(r.Action)).
		Msg("rule evaluated")
	return res
}

// EvaluateRules evaluates every rule independently and returns the triggered
// results sorted ascending by priority (lower priority number = higher
// precedence = applied first). Rules sharing a priority keep their input
// order. Rules that fail to evaluate are not triggered and therefore not
// returned here; use EvaluateRulesAll to see them.
func (e *Engine) EvaluateRules(rules []*ConditionalRule, ctx DataContext) []*RuleEvaluationResult {
	all := e.EvaluateRulesAll(rules, ctx)
	triggered := make([]*RuleEvaluationResult, 0, len(all))
	for _, res := range all {
		if res.Triggered {
			triggered = append(triggered, res)
		}
	}
	return triggered
}

// EvaluateRulesAll evaluates every rule and returns all results, including
// untriggered and failed ones, in the same stable priority order as
// EvaluateRules. This is the surface the editor's issues panel uses to
// render partial outcomes when some rules are malformed.
func (e *Engine) EvaluateRulesAll(rules []*ConditionalRule, ctx DataContext) []*RuleEvaluationResult {
	results := make([]*RuleEvaluationResult, 0, len(rules))
	for _, r := range rules {
		results = append(results, e.EvaluateRule(r, ctx))
	}
	sort.SliceStable(results, func(i, j int) bool {
		return rulePriority(results[i]) < rulePriority(results[j])
	})
	return results
}

func rulePriority(r *RuleEvaluationResult) int {
	if r.Rule == nil {
		return 0
	}
	return r.Rule.Priority
}
