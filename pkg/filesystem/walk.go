package filesystem

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultIgnoreDirs are directories skipped during traversal.
var DefaultIgnoreDirs = []string{
	"node_modules", "bower_components", "jspm_packages",
	"dist", "build", "out", "coverage", "tmp", "temp",
	".git", ".svn", ".hg", ".next", ".nuxt", ".turbo", ".cache",
	".idea", ".vscode",
}

// WalkOptions configures directory traversal.
type WalkOptions struct {
	IgnoreDirs     []string // directories to skip, DefaultIgnoreDirs when empty
	IgnorePatterns []string // file name patterns to skip, such as "*.d.ts"
	IncludeHidden  bool     // visit entries whose name starts with a dot
}

// Walk visits every file and directory under root that the options do not
// exclude. Return filepath.SkipDir from visit to skip a directory.
func Walk(root string, opts WalkOptions, visit func(path string, d fs.DirEntry) error) error {
	ignoreDirs := opts.IgnoreDirs
	if len(ignoreDirs) == 0 {
		ignoreDirs = DefaultIgnoreDirs
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return visit(path, d)
		}

		name := d.Name()
		if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if slices.Contains(ignoreDirs, name) {
				return filepath.SkipDir
			}
			return visit(path, d)
		}
		if matchAny(opts.IgnorePatterns, name) {
			return nil
		}
		return visit(path, d)
	})
}

// WalkWithDefaults walks root with DefaultIgnoreDirs and no file patterns.
func WalkWithDefaults(root string, visit func(path string, d fs.DirEntry) error) error {
	return Walk(root, WalkOptions{}, visit)
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}
