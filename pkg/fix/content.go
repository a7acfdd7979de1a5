package fix

import (
	"fmt"
	"strings"

	"webwright/pkg/types"
)

// ContentFixer re-applies the parser's normalization to content that is not
// a well-formed string: invalid UTF-8 sequences are replaced and NUL bytes
// stripped.
type ContentFixer struct{}

func (f *ContentFixer) Kind() types.IssueKind { return types.IssueNonStringContent }

func (f *ContentFixer) Fix(set *types.FileSet, issue types.ValidationIssue) (Outcome, error) {
	file, ok := set.Get(issue.FilePath)
	if !ok {
		return Outcome{}, fmt.Errorf("cannot fix content of %s: file not in set", issue.FilePath)
	}

	before := file.Content
	cleaned := strings.ToValidUTF8(before, "�")
	cleaned = strings.ReplaceAll(cleaned, "\x00", "")

	if cleaned == before {
		return Outcome{Fixed: true, Detail: fmt.Sprintf("%s content already well-formed", issue.FilePath)}, nil
	}

	file.Content = cleaned
	return Outcome{
		Fixed:  true,
		Diff:   renderDiff(issue.FilePath, before, cleaned),
		Detail: fmt.Sprintf("normalized content of %s", issue.FilePath),
	}, nil
}
