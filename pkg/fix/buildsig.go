package fix

import (
	"fmt"

	"webwright/pkg/boilerplate"
	"webwright/pkg/types"
	"webwright/pkg/validation"
)

// BuildSignatureFixer routes classified build errors to the pattern fixer
// that repairs the underlying defect. The mapping is a static table; a
// signature without an entry is surfaced as unfixable.
type BuildSignatureFixer struct {
	registry *Registry
	manifest *boilerplate.Manifest
}

func (f *BuildSignatureFixer) Kind() types.IssueKind { return types.IssueBuildErrorSignature }

func (f *BuildSignatureFixer) Fix(set *types.FileSet, issue types.ValidationIssue) (Outcome, error) {
	translated, ok := f.translate(issue)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnfixableSignature, issue.SignatureID)
	}
	return f.registry.Apply(set, translated)
}

// translate maps a build error signature onto the structural issue its
// fixer understands.
func (f *BuildSignatureFixer) translate(issue types.ValidationIssue) (types.ValidationIssue, bool) {
	switch issue.SignatureID {
	case "missing-export":
		if issue.FilePath == "" || issue.Symbol == "" {
			return types.ValidationIssue{}, false
		}
		return types.ValidationIssue{
			Kind:     types.IssueMissingExport,
			FilePath: issue.FilePath,
			Symbol:   issue.Symbol,
			Detail:   issue.Detail,
		}, true
	case "missing-default-export":
		if issue.FilePath == "" {
			return types.ValidationIssue{}, false
		}
		return types.ValidationIssue{
			Kind:     types.IssueMissingExport,
			FilePath: issue.FilePath,
			Symbol:   validation.DefaultExportName,
			Detail:   issue.Detail,
		}, true
	case "module-not-found":
		// Only repairable when the missing module is manifest boilerplate.
		if _, ok := f.manifest.Lookup(issue.FilePath); ok {
			return types.ValidationIssue{
				Kind:     types.IssueMissingBoilerplate,
				FilePath: issue.FilePath,
				Detail:   issue.Detail,
			}, true
		}
		return types.ValidationIssue{}, false
	default:
		return types.ValidationIssue{}, false
	}
}

// FixableSignature reports whether a signature ID has a fixer mapping at
// all. The orchestrator uses it to decide between another fix cycle and
// terminal failure without mutating the set.
func FixableSignature(signatureID string) bool {
	switch signatureID {
	case "missing-export", "missing-default-export", "module-not-found":
		return true
	}
	return false
}
