package fix

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"webwright/pkg/types"
	"webwright/pkg/validation"
)

var localDeclRe = regexp.MustCompile(`(?m)^\s*(?:export\s+)?(?:async\s+)?(?:const|let|var|function\*?|class)\s+([A-Za-z_$][\w$]*)`)

// ExportFixer appends the minimal export statement for a missing symbol.
// When the symbol is declared locally it is exported directly; otherwise the
// nearest matching local declaration is re-exported under the required name.
type ExportFixer struct{}

func (f *ExportFixer) Kind() types.IssueKind { return types.IssueMissingExport }

func (f *ExportFixer) Fix(set *types.FileSet, issue types.ValidationIssue) (Outcome, error) {
	file, ok := set.Get(issue.FilePath)
	if !ok {
		return Outcome{}, fmt.Errorf("cannot fix export in %s: file not in set", issue.FilePath)
	}

	// Re-scan before rewriting so a second application is a no-op.
	if validation.ScanExports(file.Content)[issue.Symbol] {
		return Outcome{Fixed: true, Detail: fmt.Sprintf("%s already exports %q", issue.FilePath, issue.Symbol)}, nil
	}

	stmt, detail, err := exportStatement(file, issue.Symbol)
	if err != nil {
		return Outcome{}, err
	}

	before := file.Content
	file.Content = appendStatement(file.Content, stmt)
	return Outcome{
		Fixed:  true,
		Diff:   renderDiff(issue.FilePath, before, file.Content),
		Detail: detail,
	}, nil
}

// exportStatement decides what to append for the missing symbol.
func exportStatement(file *types.GeneratedFile, symbol string) (stmt, detail string, err error) {
	decls := localDeclarations(file.Content)

	if symbol == validation.DefaultExportName {
		target := pickDefaultCandidate(file.Path, decls)
		if target == "" {
			return "", "", fmt.Errorf("%w: %s needs a default export", ErrIrreparableExport, file.Path)
		}
		return fmt.Sprintf("export default %s;", target),
			fmt.Sprintf("exported %s as default from %s", target, file.Path), nil
	}

	for _, d := range decls {
		if d == symbol {
			return fmt.Sprintf("export { %s };", symbol),
				fmt.Sprintf("exported local declaration %q from %s", symbol, file.Path), nil
		}
	}

	if nearest := nearestDeclaration(symbol, decls); nearest != "" {
		return fmt.Sprintf("export { %s as %s };", nearest, symbol),
			fmt.Sprintf("re-exported %q as %q from %s", nearest, symbol, file.Path), nil
	}

	return "", "", fmt.Errorf("%w: %q in %s", ErrIrreparableExport, symbol, file.Path)
}

// ImportTargetFixer resolves a missing import target by exporting the symbol
// from the target module. Same remediation as a missing export, different
// trigger.
type ImportTargetFixer struct{}

func (f *ImportTargetFixer) Kind() types.IssueKind { return types.IssueMissingImportTarget }

func (f *ImportTargetFixer) Fix(set *types.FileSet, issue types.ValidationIssue) (Outcome, error) {
	delegated := issue
	delegated.Kind = types.IssueMissingExport
	return (&ExportFixer{}).Fix(set, delegated)
}

func localDeclarations(content string) []string {
	var decls []string
	seen := make(map[string]bool)
	for _, m := range localDeclRe.FindAllStringSubmatch(content, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			decls = append(decls, m[1])
		}
	}
	return decls
}

// pickDefaultCandidate prefers a declaration matching the file's base name
// (App.tsx → App), falling back to the first declaration.
func pickDefaultCandidate(filePath string, decls []string) string {
	if len(decls) == 0 {
		return ""
	}
	base := strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))
	for _, d := range decls {
		if strings.EqualFold(d, base) {
			return d
		}
	}
	return decls[0]
}

// nearestDeclaration finds the local declaration most plausibly meant to
// carry the missing name: case-insensitive equality first, then
// containment either way, longest candidate winning ties.
func nearestDeclaration(symbol string, decls []string) string {
	lowSym := strings.ToLower(symbol)

	best := ""
	for _, d := range decls {
		lowDecl := strings.ToLower(d)
		if lowDecl == lowSym {
			return d
		}
		if strings.Contains(lowSym, lowDecl) || strings.Contains(lowDecl, lowSym) {
			if len(d) > len(best) {
				best = d
			}
		}
	}
	return best
}

func appendStatement(content, stmt string) string {
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + stmt + "\n"
}
