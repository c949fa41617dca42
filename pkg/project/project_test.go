package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name          string
		pkg           string
		framework     string
		testFramework string
		jsx           bool
	}{
		{
			name:          "next app with vitest",
			pkg:           `{"name":"web","dependencies":{"next":"14.0.0","react":"18.2.0"},"devDependencies":{"vitest":"1.0.0"}}`,
			framework:     FrameworkNext,
			testFramework: TestVitest,
			jsx:           true,
		},
		{
			name:          "react with jest",
			pkg:           `{"name":"ui","dependencies":{"react":"18.2.0"},"devDependencies":{"jest":"29.0.0"}}`,
			framework:     FrameworkReact,
			testFramework: TestJest,
			jsx:           true,
		},
		{
			name:          "express with ts-jest",
			pkg:           `{"name":"api","dependencies":{"express":"4.18.0"},"devDependencies":{"ts-jest":"29.0.0"}}`,
			framework:     FrameworkExpress,
			testFramework: TestJest,
		},
		{
			name:      "vue",
			pkg:       `{"name":"spa","dependencies":{"vue":"3.0.0"}}`,
			framework: FrameworkVue,
		},
		{
			name: "library",
			pkg:  `{"name":"lib"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			write(t, dir, PackageJSON, tt.pkg)

			info, err := Detect(dir)
			require.NoError(t, err)
			assert.True(t, info.HasPackage)
			assert.Equal(t, tt.framework, info.Framework)
			assert.Equal(t, tt.testFramework, info.TestFramework)
			assert.Equal(t, tt.jsx, info.UsesJSX())
		})
	}
}

func TestDetect_MarkerFiles(t *testing.T) {
	dir := t.TempDir()
	info, err := Detect(dir)
	require.NoError(t, err)
	assert.Equal(t, &Info{Root: dir}, info)

	write(t, dir, TSConfig, "{}")
	write(t, dir, ConfigFile, "project:\n  name: x\n")
	write(t, dir, PackageJSON, `{"name":"@scope/pkg"}`)

	info, err = Detect(dir)
	require.NoError(t, err)
	assert.Equal(t, "@scope/pkg", info.Name)
	assert.True(t, info.TypeScript)
	assert.True(t, info.HasConfig)
}

func TestDetect_TypeScriptDependency(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, PackageJSON, `{"devDependencies":{"typescript":"5.4.0"}}`)

	info, err := Detect(dir)
	require.NoError(t, err)
	assert.True(t, info.TypeScript)
}

func TestDetect_InvalidPackageJSON(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, PackageJSON, "{not json")

	_, err := Detect(dir)
	assert.ErrorContains(t, err, "failed to parse package.json")
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	write(t, root, PackageJSON, "{}")
	nested := filepath.Join(root, "src", "components")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := FindRoot(nested)
	require.NoError(t, err)
	want, _ := filepath.Abs(root)
	assert.Equal(t, want, got)
}
