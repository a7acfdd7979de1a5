package fix

import (
	"fmt"

	"webwright/pkg/boilerplate"
	"webwright/pkg/types"
)

// BoilerplateFixer inserts a missing required file verbatim from the static
// manifest. It never attempts partial synthesis.
type BoilerplateFixer struct {
	Manifest *boilerplate.Manifest
}

func (f *BoilerplateFixer) Kind() types.IssueKind { return types.IssueMissingBoilerplate }

func (f *BoilerplateFixer) Fix(set *types.FileSet, issue types.ValidationIssue) (Outcome, error) {
	canonical, ok := f.Manifest.Lookup(issue.FilePath)
	if !ok {
		return Outcome{}, fmt.Errorf("%s is not in the boilerplate manifest", issue.FilePath)
	}

	// Already present (earlier application or late task output): leave the
	// existing content alone.
	if _, ok := set.Get(issue.FilePath); ok {
		return Outcome{Fixed: true, Detail: fmt.Sprintf("%s already present", issue.FilePath)}, nil
	}

	set.Put(types.GeneratedFile{Path: issue.FilePath, Content: canonical})
	return Outcome{
		Fixed:  true,
		Diff:   renderDiff(issue.FilePath, "", canonical),
		Detail: fmt.Sprintf("inserted canonical %s", issue.FilePath),
	}, nil
}
