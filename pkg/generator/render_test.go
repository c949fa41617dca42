package generator

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderString(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name        string
		templateStr string
		data        any
		expected    string
		errContains string
	}{
		{
			name:        "struct data",
			templateStr: "export const {{ camelCase .Name }} = 1;",
			data:        struct{ Name string }{Name: "MaxRetries"},
			expected:    "export const maxRetries = 1;",
		},
		{
			name:        "case helpers",
			templateStr: "{{ pascalCase .n }} {{ kebabCase .n }} {{ snakeCase .n }} {{ constantCase .n }} {{ titleCase .n }}",
			data:        map[string]any{"n": "userProfile"},
			expected:    "UserProfile user-profile user_profile USER_PROFILE User Profile",
		},
		{
			name:        "inflection",
			templateStr: "{{ plural .n }}/{{ singular (plural .n) }}",
			data:        map[string]any{"n": "category"},
			expected:    "categories/category",
		},
		{
			name:        "join pipeline and default",
			templateStr: `{{ .names | join ", " }} {{ default "none" .empty }}`,
			data:        map[string]any{"names": []string{"a", "b"}, "empty": ""},
			expected:    "a, b none",
		},
		{
			name:        "snippets",
			templateStr: `{{ importDefault "React" "react" }}|{{ importStatement "zod" "z" }}|{{ importType "./types" "User" }}|{{ exportFrom "./Button" }}`,
			expected:    "import React from 'react';|import { z } from 'zod';|import type { User } from './types';|export * from './Button';",
		},
		{
			name:        "syntax error",
			templateStr: "{{ .Name }",
			errContains: "failed to parse template",
		},
		{
			name:        "execution error",
			templateStr: "{{ .Missing }}",
			data:        struct{}{},
			errContains: "failed to render template",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.RenderString(tt.name, tt.templateStr, tt.data)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestRenderFS(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/component.tsx.tmpl": {Data: []byte("export function {{ pascalCase .Name }}() {}\n")},
	}
	r := NewRenderer()

	out, err := r.RenderFS(fsys, "templates/component.tsx.tmpl", map[string]string{"Name": "nav-bar"})
	require.NoError(t, err)
	assert.Equal(t, "export function NavBar() {}\n", string(out))

	_, err = r.RenderFS(fsys, "templates/missing.tmpl", nil)
	assert.ErrorContains(t, err, "failed to read template from fs")
}

func TestRenderFile_AndCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("v1 {{ .X }}"), 0o644))

	r := NewRenderer()
	out, err := r.RenderFile(path, map[string]int{"X": 1})
	require.NoError(t, err)
	assert.Equal(t, "v1 1", string(out))

	// The parsed template is cached until ClearCache.
	require.NoError(t, os.WriteFile(path, []byte("v2 {{ .X }}"), 0o644))
	out, _ = r.RenderFile(path, map[string]int{"X": 1})
	assert.Equal(t, "v1 1", string(out))

	r.ClearCache()
	out, _ = r.RenderFile(path, map[string]int{"X": 1})
	assert.Equal(t, "v2 1", string(out))
}

func TestRenderer_Funcs(t *testing.T) {
	r := NewRenderer().Funcs(map[string]any{"shout": func(s string) string { return s + "!" }})
	out, err := r.RenderString("shout", `{{ shout "hi" }}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "hi!", string(out))
}

func TestRenderer_Concurrent(t *testing.T) {
	r := NewRenderer()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := r.RenderString("shared", "{{ upper .s }}", map[string]string{"s": "ok"})
			assert.NoError(t, err)
			assert.Equal(t, "OK", string(out))
		}()
	}
	wg.Wait()
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "'plain'", Quote("plain"))
	assert.Equal(t, `'it\'s'`, Quote("it's"))
	assert.Equal(t, `'a\\b\n'`, Quote("a\\b\n"))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n\n  b", Indent(2, "a\n\nb"))
}

func TestJSDoc(t *testing.T) {
	doc, err := JSDoc("Loads a user.", "id", "User id", "@returns", "The user")
	require.NoError(t, err)
	assert.Equal(t, "/**\n * Loads a user.\n *\n * @param id - User id\n * @returns The user\n */", doc)

	_, err = JSDoc("x", "dangling")
	assert.Error(t, err)
}

func TestExportHelpers(t *testing.T) {
	assert.Equal(t, "export { a, b };", ExportStatement("a", "b"))
	assert.Equal(t, "export default App;", ExportDefault("App"))
	assert.Equal(t, "export { Button } from './Button';", ExportFrom("./Button", "Button"))
}

func TestDict(t *testing.T) {
	m, err := Dict("a", 1, "b", "two")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1, "b": "two"}, m)

	_, err = Dict("a")
	assert.Error(t, err)
	_, err = Dict(1, 2)
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	assert.Equal(t, "d", Default("d", nil))
	assert.Equal(t, "d", Default("d", ""))
	assert.Equal(t, "d", Default("d", []string{}))
	assert.Equal(t, 0, Default("d", 0))
	assert.Equal(t, "v", Default("d", "v"))
}
