package validation

import (
	"fmt"

	"webwright/pkg/types"
)

// BoilerplateValidator checks that every file in the required-file manifest
// is present in the set.
type BoilerplateValidator struct {
	Required []string
}

func (v *BoilerplateValidator) Name() string { return "boilerplate" }

func (v *BoilerplateValidator) Validate(set *types.FileSet) []types.ValidationIssue {
	var issues []types.ValidationIssue
	for _, p := range v.Required {
		if _, ok := set.Get(p); !ok {
			issues = append(issues, types.ValidationIssue{
				Kind:     types.IssueMissingBoilerplate,
				FilePath: p,
				Detail:   fmt.Sprintf("required boilerplate file %s is missing", p),
			})
		}
	}
	return issues
}
