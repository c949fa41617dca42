package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// SourceExtensions are the file extensions treated as TypeScript sources.
var SourceExtensions = []string{".ts", ".tsx", ".mts", ".cts"}

// SourceOptions configures source discovery.
type SourceOptions struct {
	IncludeDeclarations bool     // include .d.ts files
	IncludeTests        bool     // include *.test.ts and *.spec.ts files
	ExcludePaths        []string // skip files whose path contains any of these
	Walk                WalkOptions
}

// IsSource reports whether path names a TypeScript source file.
func IsSource(path string) bool {
	return slices.Contains(SourceExtensions, filepath.Ext(path))
}

// IsDeclaration reports whether path is a .d.ts style declaration file.
func IsDeclaration(path string) bool {
	base := filepath.Base(path)
	for _, ext := range SourceExtensions {
		if strings.HasSuffix(base, ".d"+ext) {
			return true
		}
	}
	return false
}

// IsTest reports whether path follows the *.test.ts or *.spec.ts convention.
func IsTest(path string) bool {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.HasSuffix(stem, ".test") || strings.HasSuffix(stem, ".spec")
}

// SourceFiles returns the sorted TypeScript sources under root.
func SourceFiles(root string, opts SourceOptions) ([]string, error) {
	var files []string
	err := Walk(root, opts.Walk, func(path string, d fs.DirEntry) error {
		if !d.IsDir() && opts.accept(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover sources in %s: %w", root, err)
	}
	slices.Sort(files)
	return files, nil
}

// Expand resolves paths given on a command line: directories are searched
// with SourceFiles, files are kept as given. The result is sorted and free
// of duplicates.
func Expand(paths []string, opts SourceOptions) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		found, err := SourceFiles(p, opts)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

func (o SourceOptions) accept(path string) bool {
	if !IsSource(path) {
		return false
	}
	if !o.IncludeDeclarations && IsDeclaration(path) {
		return false
	}
	if !o.IncludeTests && IsTest(path) {
		return false
	}
	for _, ex := range o.ExcludePaths {
		if strings.Contains(filepath.ToSlash(path), ex) {
			return false
		}
	}
	return true
}
