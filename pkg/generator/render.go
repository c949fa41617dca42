package generator

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"text/template"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/inflect"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/printer"
)

// Renderer parses and renders templates, caching parsed templates by source.
// It is safe for concurrent use.
type Renderer struct {
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex
}

// NewRenderer creates a renderer with the built-in helper functions.
func NewRenderer() *Renderer {
	return &Renderer{
		funcMap: defaultFuncMap(),
		cache:   make(map[string]*template.Template),
	}
}

// Funcs adds helpers, replacing built-ins of the same name. Call it before
// rendering; templates already cached keep the old helpers.
func (r *Renderer) Funcs(funcs template.FuncMap) *Renderer {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, fn := range funcs {
		r.funcMap[name] = fn
	}
	return r
}

// RenderString renders a template held in memory. name is used for caching
// and in error messages.
func (r *Renderer) RenderString(name, text string, data any) ([]byte, error) {
	return r.render("string:"+name, name, func() (string, error) { return text, nil }, data)
}

// RenderFS renders a template read from fsys, typically an embed.FS.
func (r *Renderer) RenderFS(fsys fs.FS, path string, data any) ([]byte, error) {
	return r.render("fs:"+path, path, func() (string, error) {
		b, err := fs.ReadFile(fsys, path)
		if err != nil {
			return "", fmt.Errorf("failed to read template from fs '%s': %w", path, err)
		}
		return string(b), nil
	}, data)
}

// RenderFile renders a template file from disk, for user template overrides.
func (r *Renderer) RenderFile(path string, data any) ([]byte, error) {
	return r.render("file:"+path, path, func() (string, error) {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read template file '%s': %w", path, err)
		}
		return string(b), nil
	}, data)
}

// ClearCache drops every parsed template.
func (r *Renderer) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*template.Template)
}

func (r *Renderer) render(key, name string, load func() (string, error), data any) ([]byte, error) {
	r.mu.RLock()
	tmpl, ok := r.cache[key]
	r.mu.RUnlock()

	if !ok {
		text, err := load()
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		tmpl, err = template.New(name).Funcs(r.funcMap).Parse(text)
		if err == nil {
			r.cache[key] = tmpl
		}
		r.mu.Unlock()
		if err != nil {
			return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", name, err)
	}
	return buf.Bytes(), nil
}

func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		// Case conversion
		"pascalCase":   inflect.PascalCase,   // user_name → UserName
		"camelCase":    inflect.CamelCase,    // user_name → userName
		"snakeCase":    inflect.SnakeCase,    // UserName → user_name
		"kebabCase":    inflect.KebabCase,    // UserName → user-name
		"constantCase": inflect.ConstantCase, // userName → USER_NAME
		"titleCase":    inflect.TitleCase,    // userName → User Name
		"plural":       inflect.Pluralize,
		"singular":     inflect.Singularize,

		// Strings
		"quote":     Quote,
		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
		"trim":      strings.TrimSpace,
		"join":      Join,
		"split":     strings.Split,
		"contains":  strings.Contains,
		"hasPrefix": strings.HasPrefix,
		"hasSuffix": strings.HasSuffix,
		"replace":   strings.ReplaceAll,
		"indent":    Indent,

		// TypeScript snippets
		"importStatement": ImportStatement,
		"importDefault":   ImportDefault,
		"importType":      ImportType,
		"exportStatement": ExportStatement,
		"exportDefault":   ExportDefault,
		"exportFrom":      ExportFrom,
		"jsdoc":           JSDoc,

		// Utilities
		"dict":    Dict,
		"default": Default,
	}
}

// Quote renders s as a single-quoted TypeScript string literal.
func Quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return "'" + s + "'"
}

// Join joins items with sep. Its argument order suits pipelines:
// {{ .Names | join ", " }}.
func Join(sep string, items []string) string {
	return strings.Join(items, sep)
}

// Indent prefixes every non-empty line of text with n spaces.
func Indent(n int, text string) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}

// ImportStatement renders import { names } from 'module'.
func ImportStatement(module string, names ...string) string {
	return printer.GenerateImportStatement(printer.ImportOptions{ModuleSpecifier: module, NamedImports: names})
}

// ImportDefault renders import name from 'module'.
func ImportDefault(name, module string) string {
	return printer.GenerateImportStatement(printer.ImportOptions{ModuleSpecifier: module, DefaultImport: name})
}

// ImportType renders import type { names } from 'module'.
func ImportType(module string, names ...string) string {
	return printer.GenerateImportStatement(printer.ImportOptions{ModuleSpecifier: module, NamedImports: names, TypeOnly: true})
}

// ExportStatement renders export { names }.
func ExportStatement(names ...string) string {
	return printer.GenerateExportStatement(printer.ExportOptions{Names: names})
}

// ExportDefault renders export default name.
func ExportDefault(name string) string {
	return printer.GenerateExportStatement(printer.ExportOptions{Name: name, IsDefault: true})
}

// ExportFrom re-exports names from module, or everything when names is empty.
func ExportFrom(module string, names ...string) string {
	return printer.GenerateExportStatement(printer.ExportOptions{Names: names, From: module, All: len(names) == 0})
}

// JSDoc renders a doc block from a description and name/description pairs.
// The name "@returns" documents the return value instead of a parameter.
//
//	{{ jsdoc "Loads a user." "id" "User id" "@returns" "The user" }}
func JSDoc(description string, pairs ...string) (string, error) {
	if len(pairs)%2 != 0 {
		return "", fmt.Errorf("jsdoc requires name/description pairs, got %d values", len(pairs))
	}
	opts := printer.DocOptions{Description: description}
	for i := 0; i < len(pairs); i += 2 {
		if pairs[i] == "@returns" {
			opts.Returns = &printer.DocReturn{Description: pairs[i+1]}
			continue
		}
		opts.Params = append(opts.Params, printer.DocParam{Name: pairs[i], Description: pairs[i+1]})
	}
	return printer.GenerateDoc(opts), nil
}

// Dict creates a map from alternating key-value pairs
// Usage in template: {{ template "partial" (dict "key1" val1 "key2" val2) }}
func Dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("dict requires an even number of arguments")
	}
	result := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict keys must be strings, got %T at position %d", values[i], i)
		}
		result[key] = values[i+1]
	}
	return result, nil
}

// Default returns defaultVal when val is nil, an empty string, or an empty
// slice or map. Numeric zero is a real value and is kept.
func Default(defaultVal, val any) any {
	switch v := val.(type) {
	case nil:
		return defaultVal
	case string:
		if v == "" {
			return defaultVal
		}
	case []string:
		if len(v) == 0 {
			return defaultVal
		}
	case []any:
		if len(v) == 0 {
			return defaultVal
		}
	case map[string]any:
		if len(v) == 0 {
			return defaultVal
		}
	}
	return val
}
