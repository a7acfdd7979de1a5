package orchestration

import (
	"fmt"
	"strings"

	"webwright/pkg/utils"
)

// Report renders the attempt log as an ordered, human-readable sequence of
// cycle summaries. This shape is the stable contract callers build status
// output on; raw build text stays available for debugging but is truncated
// here.
func (r *Result) Report() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Generation session finished: %s\n", strings.ToUpper(string(r.State)))
	if r.FileSet != nil {
		fmt.Fprintf(&sb, "Files: %d\n", r.FileSet.Len())
	}

	for _, a := range r.Attempts {
		if len(a.IssuesFound) > 0 {
			fmt.Fprintf(&sb, "\nCycle %d: %d issue(s) found, %d fixed\n", a.Cycle, len(a.IssuesFound), a.IssuesFixed)
			for _, issue := range a.IssuesFound {
				fmt.Fprintf(&sb, "  - [%s] %s\n", issue.Kind, issue.Detail)
			}
		}
		if a.BuildAttempted {
			if a.BuildSucceeded {
				fmt.Fprintf(&sb, "\nBuild: ✅ success\n")
			} else {
				fmt.Fprintf(&sb, "\nBuild: ❌ %d error(s)\n", len(a.BuildErrors))
				for _, e := range a.BuildErrors {
					label := e.SignatureID
					if label == "" {
						label = "unrecognized"
					}
					fmt.Fprintf(&sb, "  - [%s] %s\n", label, utils.TruncateString(e.Raw, 160))
				}
			}
		}
	}

	if len(r.Unresolved) > 0 {
		fmt.Fprintf(&sb, "\nUnresolved issues:\n")
		for _, issue := range r.Unresolved {
			fmt.Fprintf(&sb, "  - [%s] %s %s\n", issue.Kind, issue.FilePath, issue.Detail)
		}
	}

	return sb.String()
}
