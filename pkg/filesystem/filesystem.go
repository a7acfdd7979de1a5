// Package filesystem materializes a generated file set into a target
// directory with write semantics that never leave a half-written file
// silently treated as complete.
package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"webwright/pkg/types"
)

// protectedPatterns lists paths the stale-file sweep must never touch.
// These are tool- or dependency-owned, not generated.
var protectedPatterns = []string{
	".git/",
	".webwright/",
	"node_modules/",
	"dist/",
	".env",
}

// Materialize writes one generated file beneath targetDir. The write goes
// through a temp file in the same directory followed by a rename, so an
// error mid-write leaves either the old content or nothing, never a
// truncated file reported as success.
func Materialize(f types.GeneratedFile, targetDir string) error {
	dest, err := resolvePath(f.Path, targetDir)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(dest); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create directory %s: %w", dir, err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".webwright-*")
	if err != nil {
		return fmt.Errorf("could not create temp file for %s: %w", f.Path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(f.Content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("could not write %s: %w", f.Path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("could not write %s: %w", f.Path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("could not set mode on %s: %w", f.Path, err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("could not finalize %s: %w", f.Path, err)
	}
	return nil
}

// MaterializeSet writes every file in the set beneath targetDir. Each file
// gets one retry on IO failure. Failures are reported per file via
// errors.Join so the caller sees exactly which paths did not land.
func MaterializeSet(set *types.FileSet, targetDir string) error {
	var errs []error
	for _, f := range set.Files() {
		if err := Materialize(*f, targetDir); err != nil {
			// One retry per file before declaring the failure.
			if retryErr := Materialize(*f, targetDir); retryErr != nil {
				errs = append(errs, retryErr)
			}
		}
	}
	return errors.Join(errs...)
}

// SweepStale removes previously materialized files that are no longer in
// the set. Only paths in written (what the caller itself wrote) are removal
// candidates; anything else in targetDir is user-owned and never touched.
// Protected paths are skipped via gitignore-style matching on top of that.
func SweepStale(set *types.FileSet, written map[string]bool, targetDir string) error {
	matcher := ignore.CompileIgnoreLines(protectedPatterns...)

	keep := make(map[string]bool, set.Len())
	for _, p := range set.Paths() {
		keep[filepath.ToSlash(filepath.Clean(p))] = true
	}

	var errs []error
	for p := range written {
		rel := filepath.ToSlash(filepath.Clean(filepath.FromSlash(p)))
		if keep[rel] || matcher.MatchesPath(rel) {
			continue
		}
		dest, err := resolvePath(p, targetDir)
		if err != nil {
			continue
		}
		if rmErr := os.Remove(dest); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("could not remove stale file %s: %w", rel, rmErr))
		}
	}
	return errors.Join(errs...)
}

// LoadSet reads an existing project directory back into a file set, in
// walk order. Protected paths are skipped with the same matcher the
// stale-file sweep uses.
func LoadSet(dir string) (*types.FileSet, error) {
	matcher := ignore.CompileIgnoreLines(protectedPatterns...)
	set := types.NewFileSet()

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if matcher.MatchesPath(rel + "/") {
				return filepath.SkipDir
			}
			return nil
		}
		if matcher.MatchesPath(rel) {
			return nil
		}
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("could not read %s: %w", rel, readErr)
		}
		set.Put(types.GeneratedFile{Path: rel, Content: string(content)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// resolvePath joins a generated path onto targetDir, rejecting absolute
// paths and traversal outside the target. Generated paths are untrusted.
func resolvePath(p, targetDir string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("empty file path")
	}
	clean := filepath.Clean(filepath.FromSlash(p))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("refusing path outside target dir: %s", p)
	}
	return filepath.Join(targetDir, clean), nil
}
