package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"webwright/pkg/types"
)

// ContentValidator re-checks the file set for content that is not a
// well-formed string: invalid UTF-8 or embedded NUL bytes. The parser
// already coerces everything to strings; this is defense in depth against
// content introduced after parsing.
type ContentValidator struct{}

func (v *ContentValidator) Name() string { return "content-type" }

func (v *ContentValidator) Validate(set *types.FileSet) []types.ValidationIssue {
	var issues []types.ValidationIssue
	for _, f := range set.Files() {
		if utf8.ValidString(f.Content) && !strings.ContainsRune(f.Content, 0) {
			continue
		}
		issues = append(issues, types.ValidationIssue{
			Kind:     types.IssueNonStringContent,
			FilePath: f.Path,
			Detail:   fmt.Sprintf("%s content is not a well-formed string", f.Path),
		})
	}
	return issues
}
