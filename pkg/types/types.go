// Package types holds the shared data model for the generation and repair
// pipeline. It is a leaf package: everything else in pkg/ depends on it.
package types

// IssueKind identifies one structural defect class. The set is closed: the
// pipeline targets a fixed catalog of known defects, not arbitrary bugs.
type IssueKind string

const (
	// IssueNonStringContent marks a file whose content survived parsing as
	// something other than a plain string.
	IssueNonStringContent IssueKind = "non_string_content"
	// IssueMissingExport marks a module that fails to export a symbol the
	// context idiom requires.
	IssueMissingExport IssueKind = "missing_export"
	// IssueMissingImportTarget marks an import whose source module exists in
	// the file set but does not export the imported symbol.
	IssueMissingImportTarget IssueKind = "missing_import_target"
	// IssueMissingBoilerplate marks a required boilerplate file absent from
	// the file set.
	IssueMissingBoilerplate IssueKind = "missing_boilerplate"
	// IssueBuildErrorSignature marks a build failure matched against the
	// known-signature table.
	IssueBuildErrorSignature IssueKind = "build_error_signature"
)

// GeneratedFile is one logical file produced by a generation task.
// Content is always a string once the parser has run; no other type is ever
// materialized.
type GeneratedFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// FileSet is an ordered collection of generated files keyed by path.
// Later writes for the same path replace earlier ones but keep the original
// position, so materialization order stays deterministic across repair
// cycles. A FileSet is owned by exactly one session; it is not safe for
// concurrent mutation.
type FileSet struct {
	order []string
	files map[string]*GeneratedFile
}

// NewFileSet returns an empty file set.
func NewFileSet() *FileSet {
	return &FileSet{files: make(map[string]*GeneratedFile)}
}

// Put inserts or replaces the file at f.Path.
func (s *FileSet) Put(f GeneratedFile) {
	if _, ok := s.files[f.Path]; !ok {
		s.order = append(s.order, f.Path)
	}
	copied := f
	s.files[f.Path] = &copied
}

// Get returns the file stored under path. The returned pointer aliases the
// set's storage so fixers can rewrite content in place.
func (s *FileSet) Get(path string) (*GeneratedFile, bool) {
	f, ok := s.files[path]
	return f, ok
}

// Paths returns the paths in insertion order.
func (s *FileSet) Paths() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Files returns the files in insertion order.
func (s *FileSet) Files() []*GeneratedFile {
	out := make([]*GeneratedFile, 0, len(s.order))
	for _, p := range s.order {
		out = append(out, s.files[p])
	}
	return out
}

// Len returns the number of files in the set.
func (s *FileSet) Len() int { return len(s.order) }

// Merge applies every file from other into s, later tasks overwriting
// earlier ones by path.
func (s *FileSet) Merge(other *FileSet) {
	if other == nil {
		return
	}
	for _, f := range other.Files() {
		s.Put(*f)
	}
}

// ValidationIssue is one detected violation of a structural contract.
// Issues live for a single repair cycle: produced by a validator, consumed
// by the matching fixer, then discarded.
type ValidationIssue struct {
	Kind     IssueKind `json:"kind"`
	FilePath string    `json:"file_path"`
	// Symbol is set for missing_export and missing_import_target issues.
	Symbol string `json:"symbol,omitempty"`
	// FromPath is the importing file for missing_import_target issues.
	FromPath string `json:"from_path,omitempty"`
	// SignatureID is set for build_error_signature issues.
	SignatureID string `json:"signature_id,omitempty"`
	Detail      string `json:"detail,omitempty"`
}

// StructuredBuildError is one raw build error plus its classification.
// SignatureID is empty when no known signature matched.
type StructuredBuildError struct {
	Raw         string `json:"raw"`
	SignatureID string `json:"signature_id,omitempty"`
}

// BuildResult is the outcome of one external build invocation.
type BuildResult struct {
	Success bool                   `json:"success"`
	Errors  []StructuredBuildError `json:"errors,omitempty"`
	// RawOutput is the full combined tool output, kept for diagnostics only.
	RawOutput string `json:"-"`
}

// RepairAttempt is the audit record for one repair cycle. The session log is
// append-only; callers read it to decide whether to surface failure.
type RepairAttempt struct {
	Cycle       int               `json:"cycle"`
	IssuesFound []ValidationIssue `json:"issues_found,omitempty"`
	IssuesFixed int               `json:"issues_fixed"`
	// Unresolved lists issues no fixer could repair this cycle.
	Unresolved     []ValidationIssue `json:"unresolved,omitempty"`
	BuildAttempted bool              `json:"build_attempted"`
	BuildSucceeded bool              `json:"build_succeeded"`
	// BuildErrors carries classified build failures verbatim so unmatched
	// errors stay visible in the final log entry.
	BuildErrors []StructuredBuildError `json:"build_errors,omitempty"`
	// FixDiffs holds unified diffs of every file rewrite made this cycle.
	FixDiffs []string `json:"fix_diffs,omitempty"`
}
