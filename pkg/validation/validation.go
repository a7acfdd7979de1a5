// Package validation inspects a generated file set for violations of the
// structural contracts every generated app must satisfy: import/export
// consistency, the shared-context idiom, required boilerplate, and
// well-formed content.
//
// Validators are pure functions over a read-only FileSet. They are
// independent and composable; the runner executes all of them and merges
// their issues.
package validation

import (
	"context"
	"sync"

	"webwright/pkg/types"
)

// Validator checks the whole file set for one contract.
type Validator interface {
	Name() string
	Validate(set *types.FileSet) []types.ValidationIssue
}

// DefaultValidators returns the full validator suite in its canonical order.
func DefaultValidators(requiredPaths []string) []Validator {
	return []Validator{
		&ContentValidator{},
		&BoilerplateValidator{Required: requiredPaths},
		&ContextPatternValidator{},
		&ExportImportValidator{},
	}
}

// RunAll runs every validator against the set and merges their issues.
// Validators only read the set, so they run concurrently; results are merged
// in validator order to keep output deterministic.
func RunAll(ctx context.Context, set *types.FileSet, validators []Validator) []types.ValidationIssue {
	if err := ctx.Err(); err != nil {
		return nil
	}

	results := make([][]types.ValidationIssue, len(validators))
	var wg sync.WaitGroup
	for i, v := range validators {
		wg.Add(1)
		go func(i int, v Validator) {
			defer wg.Done()
			results[i] = v.Validate(set)
		}(i, v)
	}
	wg.Wait()

	var merged []types.ValidationIssue
	for _, issues := range results {
		merged = append(merged, issues...)
	}
	return merged
}
