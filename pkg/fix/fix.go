// Package fix rewrites generated files to resolve detected validation
// issues. Every fixer handles exactly one issue kind and is idempotent:
// applying it twice leaves the file set identical to applying it once.
package fix

import (
	"errors"
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"

	"webwright/pkg/boilerplate"
	"webwright/pkg/types"
)

// ErrIrreparableExport is reported when no plausible local binding exists to
// export. It is terminal for the issue, not a crash: the orchestrator records
// it as unresolved.
var ErrIrreparableExport = errors.New("no plausible local binding to export")

// ErrUnfixableSignature is reported when a build error signature has no
// fixer mapping.
var ErrUnfixableSignature = errors.New("build error signature has no known fixer")

// Outcome reports what a fixer did.
type Outcome struct {
	// Fixed is true when the issue is resolved, including the no-op case
	// where a previous application already resolved it.
	Fixed bool
	// Diff is the patch text of the rewrite, empty when nothing changed.
	Diff   string
	Detail string
}

// Fixer resolves one issue kind by deterministically rewriting the
// offending file.
type Fixer interface {
	Kind() types.IssueKind
	Fix(set *types.FileSet, issue types.ValidationIssue) (Outcome, error)
}

// Registry maps issue kinds to their fixers.
type Registry struct {
	fixers map[types.IssueKind]Fixer
}

// NewRegistry builds the full fixer registry around the boilerplate
// manifest.
func NewRegistry(manifest *boilerplate.Manifest) *Registry {
	r := &Registry{
		fixers: make(map[types.IssueKind]Fixer),
	}
	r.register(&ExportFixer{})
	r.register(&ImportTargetFixer{})
	r.register(&BoilerplateFixer{Manifest: manifest})
	r.register(&ContentFixer{})
	r.register(&BuildSignatureFixer{registry: r, manifest: manifest})
	return r
}

func (r *Registry) register(f Fixer) {
	r.fixers[f.Kind()] = f
}

// Apply dispatches the issue to its fixer.
func (r *Registry) Apply(set *types.FileSet, issue types.ValidationIssue) (Outcome, error) {
	fixer, ok := r.fixers[issue.Kind]
	if !ok {
		return Outcome{}, fmt.Errorf("no fixer registered for issue kind %q", issue.Kind)
	}
	return fixer.Fix(set, issue)
}

// renderDiff produces a patch-text diff of a file rewrite for the repair
// audit trail.
func renderDiff(path, before, after string) string {
	if before == after {
		return ""
	}
	dmp := diffmatchpatch.New()
	patches := dmp.PatchMake(before, after)
	return fmt.Sprintf("--- %s\n%s", path, dmp.PatchToText(patches))
}
