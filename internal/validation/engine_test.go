// SPDX-License-Identifier: MPL-2.0

package validation

import (
	"errors"
	"slices"
	"testing"

	"github.com/pwa-builder/manifoldjs-cordova/pkg/manifest"
	"github.com/pwa-builder/manifoldjs-cordova/pkg/platform"
)

type (
	panicRule struct{}

	failingRule struct{ err error }
)

func (panicRule) Name() string        { return "panics" }
func (panicRule) Description() string { return "always panics" }
func (panicRule) Validate(*manifest.Manifest) (*Result, error) {
	panic("boom")
}

func (failingRule) Name() string        { return "fails" }
func (failingRule) Description() string { return "always fails" }
func (r failingRule) Validate(*manifest.Manifest) (*Result, error) {
	return nil, r.err
}

func collect(e *Engine, m *manifest.Manifest, id platform.ID) (results []Result, errs []error) {
	for res, err := range e.RunAll(m, id) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results = append(results, res)
	}
	return results, errs
}

func TestEngine_RunAll_Order(t *testing.T) {
	t.Parallel()

	e := DefaultEngine()
	results, errs := collect(e, manifestWithSizes("76x76"), platform.IOSID)
	if len(errs) != 0 {
		t.Fatalf("errors = %v", errs)
	}

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	// requiredAppIcon is second and only lacks the sizes after 76x76.
	if !slices.Equal(results[1].Data, []string{"120x120", "152x152", "180x180"}) {
		t.Errorf("second finding data = %v", results[1].Data)
	}
}

func TestEngine_RunAll_Restartable(t *testing.T) {
	t.Parallel()

	e := DefaultEngine()
	m := manifestWithSizes("24x24")
	seq := e.RunAll(m, platform.WindowsID)

	var first, second []Result
	for res, err := range seq {
		if err != nil {
			t.Fatal(err)
		}
		first = append(first, res)
	}
	for res, err := range seq {
		if err != nil {
			t.Fatal(err)
		}
		second = append(second, res)
	}

	if len(first) != 2 || len(first) != len(second) {
		t.Fatalf("runs yielded %d and %d results, want 2 each", len(first), len(second))
	}
	for i := range first {
		if first[i].Code != second[i].Code || !slices.Equal(first[i].Data, second[i].Data) {
			t.Errorf("result %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestEngine_RunAll_EarlyStop(t *testing.T) {
	t.Parallel()

	e := DefaultEngine()
	count := 0
	for range e.RunAll(manifestWithSizes(), platform.IOSID) {
		count++
		break
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestEngine_RunAll_RuleFailuresAreIsolated(t *testing.T) {
	t.Parallel()

	cause := errors.New("broken rule")
	e := NewEngine()
	e.Register(platform.AndroidID, panicRule{}, failingRule{err: cause})
	e.Register(platform.AndroidID, AndroidRules()...)

	results, errs := collect(e, manifestWithSizes(), platform.AndroidID)
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), errs)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	var ruleErr *RuleError
	if !errors.As(errs[0], &ruleErr) {
		t.Fatalf("errs[0] = %T, want *RuleError", errs[0])
	}
	if ruleErr.Rule != "panics" || ruleErr.Platform != platform.AndroidID {
		t.Errorf("RuleError = %+v", ruleErr)
	}
	if !errors.Is(errs[0], ErrRule) {
		t.Error("panic error does not wrap ErrRule")
	}
	if !errors.Is(errs[1], cause) || !errors.Is(errs[1], ErrRule) {
		t.Errorf("errs[1] = %v, want wrapping both cause and ErrRule", errs[1])
	}
}

func TestEngine_RunAll_UnknownPlatform(t *testing.T) {
	t.Parallel()

	results, errs := collect(DefaultEngine(), manifestWithSizes(), platform.ID("firefoxos"))
	if len(results) != 0 {
		t.Errorf("results = %v, want none", results)
	}
	if len(errs) != 1 || !errors.Is(errs[0], ErrUnknownPlatform) {
		t.Errorf("errs = %v, want one ErrUnknownPlatform", errs)
	}
}

func TestEngine_Rules_ReturnsCopy(t *testing.T) {
	t.Parallel()

	e := DefaultEngine()
	rules := e.Rules(platform.IOSID)
	rules[0] = panicRule{}

	if _, errs := collect(e, manifestWithSizes(), platform.IOSID); len(errs) != 0 {
		t.Errorf("modifying Rules() result affected the engine: %v", errs)
	}
}

func TestEngine_Report(t *testing.T) {
	t.Parallel()

	e := DefaultEngine()
	e.Register(platform.WindowsID, failingRule{err: errors.New("x")})

	r := e.Report(manifestWithSizes(), platform.AndroidID, platform.WindowsID)
	if len(r.Warnings) != 2 {
		t.Errorf("Warnings = %d, want 2", len(r.Warnings))
	}
	if len(r.Suggestions) != 2 {
		t.Errorf("Suggestions = %d, want 2", len(r.Suggestions))
	}
	if len(r.Errors) != 1 {
		t.Errorf("Errors = %d, want 1", len(r.Errors))
	}
	if got := r.Results(); len(got) != 4 || got[0].Level != LevelWarning {
		t.Errorf("Results() = %+v", got)
	}
	if r.Empty() {
		t.Error("Empty() = true")
	}

	full := manifestWithSizes("48x48", "72x72", "96x96", "144x144", "192x192", "512x512")
	if r := e.Report(full, platform.AndroidID); !r.Empty() {
		t.Errorf("Report() = %+v, want empty", r)
	}
}
