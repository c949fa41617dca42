package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Well-known file names.
const (
	PackageJSON = "package.json"
	TSConfig    = "tsconfig.json"
	ConfigFile  = "codegen.yaml"
)

// Frameworks, in detection order. Next is checked before React because a
// Next app depends on both.
const (
	FrameworkNext    = "next"
	FrameworkReact   = "react"
	FrameworkVue     = "vue"
	FrameworkExpress = "express"
)

// Test frameworks.
const (
	TestVitest = "vitest"
	TestJest   = "jest"
)

var frameworks = []string{FrameworkNext, FrameworkReact, FrameworkVue, FrameworkExpress}

// Info describes a detected project.
type Info struct {
	Root          string `json:"root" yaml:"root"`
	Name          string `json:"name,omitempty" yaml:"name,omitempty"`
	Framework     string `json:"framework,omitempty" yaml:"framework,omitempty"`
	TestFramework string `json:"testFramework,omitempty" yaml:"testFramework,omitempty"`
	HasPackage    bool   `json:"hasPackage" yaml:"hasPackage"`
	TypeScript    bool   `json:"typescript" yaml:"typescript"`
	HasConfig     bool   `json:"hasConfig" yaml:"hasConfig"`
}

// UsesJSX reports whether components should be written as .tsx files.
func (i *Info) UsesJSX() bool {
	return i.Framework == FrameworkReact || i.Framework == FrameworkNext
}

type packageManifest struct {
	Name            string            `json:"name"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func (m *packageManifest) has(dep string) bool {
	_, ok := m.Dependencies[dep]
	if !ok {
		_, ok = m.DevDependencies[dep]
	}
	return ok
}

// Detect inspects root. A directory without package.json is not an error;
// the returned Info then only reports the marker files found.
func Detect(root string) (*Info, error) {
	info := &Info{
		Root:       root,
		TypeScript: exists(filepath.Join(root, TSConfig)),
		HasConfig:  exists(filepath.Join(root, ConfigFile)),
	}

	data, err := os.ReadFile(filepath.Join(root, PackageJSON))
	if errors.Is(err, os.ErrNotExist) {
		return info, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", PackageJSON, err)
	}

	var m packageManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", PackageJSON, err)
	}
	info.HasPackage = true
	info.Name = m.Name
	for _, fw := range frameworks {
		if m.has(fw) {
			info.Framework = fw
			break
		}
	}
	switch {
	case m.has(TestVitest):
		info.TestFramework = TestVitest
	case m.has(TestJest), m.has("ts-jest"):
		info.TestFramework = TestJest
	}
	if !info.TypeScript && m.has("typescript") {
		info.TypeScript = true
	}
	return info, nil
}

// FindRoot walks up from dir to the nearest directory holding package.json.
func FindRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for d := abs; ; {
		if exists(filepath.Join(d, PackageJSON)) {
			return d, nil
		}
		parent := filepath.Dir(d)
		if parent == d {
			return "", fmt.Errorf("%s not found in %s or any parent directory", PackageJSON, abs)
		}
		d = parent
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
