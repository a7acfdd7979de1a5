package validation

import (
	"fmt"
	"path"
	"regexp"

	"webwright/pkg/types"
)

// contextFileRe matches shared-state modules by naming convention, e.g.
// context/TodoContext.tsx → base "Todo".
var contextFileRe = regexp.MustCompile(`^([A-Z][\w$]*)Context\.(tsx?|jsx?)$`)

// ContextPatternValidator enforces the shared-context idiom: a module named
// <Base>Context must export both the state container (<Base>Context) and its
// accessor (use<Base>Context). Models omit the accessor export more than any
// other single defect, so this gets its own validator rather than waiting
// for an importer to trip the export/import check.
type ContextPatternValidator struct{}

func (v *ContextPatternValidator) Name() string { return "context-pattern" }

func (v *ContextPatternValidator) Validate(set *types.FileSet) []types.ValidationIssue {
	var issues []types.ValidationIssue
	for _, f := range set.Files() {
		base, ok := contextBaseName(f.Path)
		if !ok {
			continue
		}
		exports := ScanExports(f.Content)
		for _, required := range RequiredContextExports(base) {
			if !exports[required] {
				issues = append(issues, types.ValidationIssue{
					Kind:     types.IssueMissingExport,
					FilePath: f.Path,
					Symbol:   required,
					Detail:   fmt.Sprintf("context module %s must export %q", f.Path, required),
				})
			}
		}
	}
	return issues
}

// RequiredContextExports returns the symbols a context module with the given
// base name must export: the container and the accessor.
func RequiredContextExports(base string) []string {
	return []string{base + "Context", "use" + base + "Context"}
}

// contextBaseName extracts the base name when the path follows the context
// module convention.
func contextBaseName(p string) (string, bool) {
	m := contextFileRe.FindStringSubmatch(path.Base(p))
	if m == nil {
		return "", false
	}
	return m[1], true
}
