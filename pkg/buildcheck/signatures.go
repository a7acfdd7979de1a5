package buildcheck

import (
	"regexp"
	"strings"

	"webwright/pkg/types"
)

// Signature is one recognizable pattern within a raw build error message.
// FileGroup and SymbolGroup are submatch indexes (0 when the pattern does
// not capture that field).
type Signature struct {
	ID          string
	Re          *regexp.Regexp
	FileGroup   int
	SymbolGroup int
}

// signatures is the ordered classification table; first match wins. The IDs
// are the contract with the fix package's signature → fixer table.
var signatures = []Signature{
	{
		// rollup/esbuild: "useTodoContext" is not exported by "context/TodoContext.ts"
		ID:          "missing-export",
		Re:          regexp.MustCompile(`"([^"]+)" is not exported by "([^"]+)"`),
		SymbolGroup: 1,
		FileGroup:   2,
	},
	{
		// esbuild: No matching export in "src/App.tsx" for import "default"
		ID:        "missing-default-export",
		Re:        regexp.MustCompile(`No matching export in "([^"]+)" for import "default"`),
		FileGroup: 1,
	},
	{
		ID:        "module-not-found",
		Re:        regexp.MustCompile(`(?:Could not resolve|Cannot find module) ['"]([^'"]+)['"]`),
		FileGroup: 1,
	},
	{
		ID: "syntax-error",
		Re: regexp.MustCompile(`(?i)(?:unexpected token|parse error|unterminated string)`),
	},
}

// Classify matches a raw build error against the signature table. It
// returns the matched signature ID plus any file path and symbol the
// pattern extracts; the ID is empty when nothing matches.
func Classify(raw string) (signatureID, filePath, symbol string) {
	for _, sig := range signatures {
		m := sig.Re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		if sig.FileGroup > 0 {
			filePath = normalizeModulePath(m[sig.FileGroup])
		}
		if sig.SymbolGroup > 0 {
			symbol = m[sig.SymbolGroup]
		}
		return sig.ID, filePath, symbol
	}
	return "", "", ""
}

// SynthesizeIssues converts classified build errors into issues the fix
// registry can dispatch. Unclassified errors produce no issues; the
// orchestrator surfaces them verbatim instead.
func SynthesizeIssues(result types.BuildResult) []types.ValidationIssue {
	var issues []types.ValidationIssue
	for _, e := range result.Errors {
		if e.SignatureID == "" {
			continue
		}
		_, filePath, symbol := Classify(e.Raw)
		issues = append(issues, types.ValidationIssue{
			Kind:        types.IssueBuildErrorSignature,
			SignatureID: e.SignatureID,
			FilePath:    filePath,
			Symbol:      symbol,
			Detail:      e.Raw,
		})
	}
	return issues
}

// normalizeModulePath strips the relative prefix build tools put on module
// specifiers so paths line up with FileSet keys.
func normalizeModulePath(p string) string {
	return strings.TrimPrefix(p, "./")
}
