// SPDX-License-Identifier: MPL-2.0

package validation

import (
	"fmt"
	"iter"
	"slices"

	"github.com/pwa-builder/manifoldjs-cordova/pkg/manifest"
	"github.com/pwa-builder/manifoldjs-cordova/pkg/platform"
)

type (
	// Engine holds the rule set of each sub-platform. Register all rules
	// before sharing an Engine between goroutines; running rules never
	// mutates it.
	Engine struct {
		rules map[platform.ID][]Rule
	}

	// Report aggregates the outcome of running rules, grouped by severity.
	Report struct {
		Warnings    []Result
		Suggestions []Result
		// Errors holds RuleError entries and unknown-platform errors.
		Errors []error
	}
)

// NewEngine creates an Engine with no rules.
func NewEngine() *Engine {
	return &Engine{rules: make(map[platform.ID][]Rule)}
}

// DefaultEngine creates an Engine with the built-in rules of every sub-platform.
func DefaultEngine() *Engine {
	e := NewEngine()
	e.Register(platform.AndroidID, AndroidRules()...)
	e.Register(platform.IOSID, IOSRules()...)
	e.Register(platform.WindowsID, WindowsRules()...)
	return e
}

// Register appends rules to the set of platform id.
func (e *Engine) Register(id platform.ID, rules ...Rule) {
	e.rules[id] = append(e.rules[id], rules...)
}

// Rules returns a copy of the rules registered for id.
func (e *Engine) Rules(id platform.ID) []Rule {
	return slices.Clone(e.rules[id])
}

// RunAll returns a sequence over the findings of every rule registered for
// id. A rule that fails or panics yields a *RuleError in place of a finding
// and the remaining rules still run. Rules run lazily as the sequence is
// consumed, and the sequence can be ranged over any number of times.
func (e *Engine) RunAll(m *manifest.Manifest, id platform.ID) iter.Seq2[Result, error] {
	rules, known := e.rules[id]
	return func(yield func(Result, error) bool) {
		if !known {
			yield(Result{}, fmt.Errorf("%w: %q", ErrUnknownPlatform, id))
			return
		}
		for _, rule := range rules {
			res, err := runRule(rule, m, id)
			if err != nil {
				if !yield(Result{}, err) {
					return
				}
				continue
			}
			if res == nil {
				continue
			}
			if !yield(*res, nil) {
				return
			}
		}
	}
}

// Report runs the rules of each id and aggregates the outcome.
func (e *Engine) Report(m *manifest.Manifest, ids ...platform.ID) *Report {
	r := &Report{}
	for _, id := range ids {
		for res, err := range e.RunAll(m, id) {
			switch {
			case err != nil:
				r.Errors = append(r.Errors, err)
			case res.Level == LevelWarning:
				r.Warnings = append(r.Warnings, res)
			default:
				r.Suggestions = append(r.Suggestions, res)
			}
		}
	}
	return r
}

// Results returns warnings followed by suggestions.
func (r *Report) Results() []Result {
	return slices.Concat(r.Warnings, r.Suggestions)
}

// Empty reports whether the report holds no findings and no errors.
func (r *Report) Empty() bool {
	return len(r.Warnings) == 0 && len(r.Suggestions) == 0 && len(r.Errors) == 0
}

// runRule calls rule.Validate and converts failures and panics into a *RuleError.
func runRule(rule Rule, m *manifest.Manifest, id platform.ID) (res *Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			res = nil
			err = &RuleError{Rule: rule.Name(), Platform: id, Cause: fmt.Errorf("panic: %v", p)}
		}
	}()

	res, err = rule.Validate(m)
	if err != nil {
		return nil, &RuleError{Rule: rule.Name(), Platform: id, Cause: err}
	}
	return res, nil
}
