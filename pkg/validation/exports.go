package validation

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"webwright/pkg/types"
)

// Lexical scanning is deliberate: generated apps are small, flat module
// graphs, so a textual export/import index is cheap, deterministic, and
// sufficient. Full type-checked resolution belongs to the build step.
var (
	exportDefaultRe   = regexp.MustCompile(`(?m)^\s*export\s+default\b`)
	exportNamedDeclRe = regexp.MustCompile(`(?m)^\s*export\s+(?:async\s+)?(?:const|let|var|function\*?|class|interface|type|enum)\s+([A-Za-z_$][\w$]*)`)
	exportBraceRe     = regexp.MustCompile(`(?m)^\s*export\s*\{([^}]*)\}`)
	// The clause class excludes quotes and semicolons so it can span the
	// newlines of a multi-line named import without ever swallowing a
	// neighboring statement.
	importRe = regexp.MustCompile(`(?m)^\s*import\s+(?:type\s+)?([^'";]+?)\s+from\s+['"]([^'"]+)['"]`)
)

// moduleExtensions are tried in order when resolving an extensionless import
// specifier against the file set.
var moduleExtensions = []string{"", ".ts", ".tsx", ".js", ".jsx", "/index.ts", "/index.tsx", "/index.js"}

// DefaultExportName is the symbol name used for default exports/imports in
// the index.
const DefaultExportName = "default"

// ExportImportValidator builds a module → exported-symbols index and checks
// every import that targets a generated module against it.
type ExportImportValidator struct{}

func (v *ExportImportValidator) Name() string { return "export-import" }

func (v *ExportImportValidator) Validate(set *types.FileSet) []types.ValidationIssue {
	exports := BuildExportIndex(set)

	var issues []types.ValidationIssue
	for _, f := range set.Files() {
		if !isScriptPath(f.Path) {
			continue
		}
		for _, imp := range scanImports(f.Content) {
			target, ok := resolveModule(imp.From, f.Path, set)
			if !ok {
				// Not a generated module (external package); out of scope.
				continue
			}
			for _, sym := range imp.Symbols {
				if !exports[target][sym] {
					issues = append(issues, types.ValidationIssue{
						Kind:     types.IssueMissingImportTarget,
						FilePath: target,
						Symbol:   sym,
						FromPath: f.Path,
						Detail:   fmt.Sprintf("%s imports %q from %s, which does not export it", f.Path, sym, target),
					})
				}
			}
		}
	}
	return issues
}

// BuildExportIndex scans every script file and returns path → exported
// symbol set. The fix package reuses it to check idempotence of export
// rewrites.
func BuildExportIndex(set *types.FileSet) map[string]map[string]bool {
	index := make(map[string]map[string]bool)
	for _, f := range set.Files() {
		if !isScriptPath(f.Path) {
			continue
		}
		index[f.Path] = ScanExports(f.Content)
	}
	return index
}

// ScanExports returns the set of symbols a module's source exports,
// determined lexically.
func ScanExports(content string) map[string]bool {
	exports := make(map[string]bool)
	if exportDefaultRe.MatchString(content) {
		exports[DefaultExportName] = true
	}
	for _, m := range exportNamedDeclRe.FindAllStringSubmatch(content, -1) {
		exports[m[1]] = true
	}
	for _, m := range exportBraceRe.FindAllStringSubmatch(content, -1) {
		for _, item := range strings.Split(m[1], ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			// "A as B" exports B; plain "A" exports A.
			if parts := strings.Fields(item); len(parts) == 3 && parts[1] == "as" {
				exports[parts[2]] = true
			} else {
				exports[parts[0]] = true
			}
		}
	}
	return exports
}

type moduleImport struct {
	From    string
	Symbols []string
}

// scanImports extracts the imported symbol names per source module. For
// aliased imports ("A as B") the source symbol A is what must exist in the
// target module. Namespace and side-effect imports carry no symbols to check.
func scanImports(content string) []moduleImport {
	var imports []moduleImport
	for _, m := range importRe.FindAllStringSubmatch(content, -1) {
		clause, from := strings.TrimSpace(m[1]), m[2]
		imp := moduleImport{From: from}

		if strings.HasPrefix(clause, "*") {
			continue
		}

		named := ""
		if i := strings.Index(clause, "{"); i >= 0 {
			j := strings.Index(clause, "}")
			if j > i {
				named = clause[i+1 : j]
			}
			clause = strings.TrimSpace(strings.TrimSuffix(clause[:i], ","))
		}
		if clause != "" && !strings.HasPrefix(clause, "{") {
			imp.Symbols = append(imp.Symbols, DefaultExportName)
		}
		for _, item := range strings.Split(named, ",") {
			item = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(item), "type "))
			if item == "" {
				continue
			}
			if parts := strings.Fields(item); len(parts) > 0 {
				imp.Symbols = append(imp.Symbols, parts[0])
			}
		}
		if len(imp.Symbols) > 0 {
			imports = append(imports, imp)
		}
	}
	return imports
}

// resolveModule resolves a relative import specifier against the file set.
// Only relative specifiers can target generated modules; bare specifiers are
// external packages.
func resolveModule(spec, fromPath string, set *types.FileSet) (string, bool) {
	if !strings.HasPrefix(spec, "./") && !strings.HasPrefix(spec, "../") {
		return "", false
	}
	base := path.Join(path.Dir(fromPath), spec)
	for _, ext := range moduleExtensions {
		candidate := base + ext
		if _, ok := set.Get(candidate); ok {
			return candidate, true
		}
	}
	return "", false
}

func isScriptPath(p string) bool {
	switch path.Ext(p) {
	case ".ts", ".tsx", ".js", ".jsx":
		return true
	}
	return false
}
