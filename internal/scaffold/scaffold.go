// Package scaffold generates TypeScript source files from embedded
// templates: React components, API routes, models, and test suites.
package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/config"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/generator"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/inflect"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/parser"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/printer"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/project"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/source"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/syntax"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Recipe kinds.
const (
	KindComponent = "component"
	KindRoute     = "route"
	KindModel     = "model"
	KindTest      = "test"
)

// Kinds lists the recipes in help order.
var Kinds = []string{KindComponent, KindRoute, KindModel, KindTest}

// ErrUnknownKind is returned by Generate for an unrecognised recipe.
var ErrUnknownKind = errors.New("unknown generator")

// reserved model fields are always generated.
var reserved = []string{"id", "createdAt"}

// Options describes one scaffolding request.
type Options struct {
	Name string
	// Dir replaces the configured output directory.
	Dir string
	// Fields are component props or model properties.
	Fields []source.Parameter
	// Module is the source file a test suite covers.
	Module string
}

// Generator renders recipes into file operations.
type Generator struct {
	cfg      *config.Config
	project  *project.Info
	renderer *generator.Renderer
}

// New creates a Generator. info may be nil, in which case paths are
// relative to the working directory and no framework is assumed.
func New(cfg *config.Config, info *project.Info) *Generator {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if info == nil {
		info = &project.Info{Root: "."}
	}
	g := &Generator{cfg: cfg, project: info}
	q := cfg.QuoteChar()
	g.renderer = generator.NewRenderer().Funcs(map[string]any{
		"str": func(s string) string { return q + s + q },
	})
	return g
}

// TestFramework is the configured framework, unless no config file was
// read and the project's package.json names one.
func (g *Generator) TestFramework() string {
	if g.cfg.File == "" && g.project.TestFramework != "" {
		return g.project.TestFramework
	}
	return g.cfg.Generate.TestFramework
}

// Generate dispatches to the recipe named kind.
func (g *Generator) Generate(kind string, opts Options) ([]generator.Operation, error) {
	switch kind {
	case KindComponent:
		return g.Component(opts)
	case KindRoute:
		return g.Route(opts)
	case KindModel:
		return g.Model(opts)
	case KindTest:
		return g.Test(opts)
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownKind, kind, strings.Join(Kinds, ", "))
	}
}

// data is what every template sees.
type data struct {
	Name   string // PascalCase
	Camel  string
	Kebab  string
	Plural string

	Imports     string
	Doc         string
	FactoryDoc  string
	RequestType string
	Fields      []source.Parameter
	Subjects    []subject
}

type subject struct {
	Name string
	Kind source.Kind
}

func (g *Generator) newData(name string, fields []source.Parameter) (*data, error) {
	pascal := inflect.PascalCase(name)
	if pascal == "" || !unicode.IsLetter([]rune(pascal)[0]) {
		return nil, fmt.Errorf("invalid name %q", name)
	}
	normalized := make([]source.Parameter, 0, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			continue
		}
		if f.Type == "" {
			f.Type = "string"
		}
		normalized = append(normalized, f)
	}
	return &data{
		Name:   pascal,
		Camel:  inflect.CamelCase(pascal),
		Kebab:  inflect.KebabCase(pascal),
		Plural: inflect.Pluralize(pascal),
		Fields: normalized,
	}, nil
}

// Component renders <Name>/<Name>.tsx and an index barrel.
func (g *Generator) Component(opts Options) ([]generator.Operation, error) {
	d, err := g.newData(opts.Name, opts.Fields)
	if err != nil {
		return nil, err
	}
	d.Imports = g.imports(printer.ImportOptions{ModuleSpecifier: "react", DefaultImport: "React"})
	d.Doc = printer.GenerateDoc(printer.DocOptions{
		Description: fmt.Sprintf("%s component.", d.Name),
		Params:      []printer.DocParam{{Name: "props", Type: d.Name + "Props", Description: "Component props"}},
		Returns:     &printer.DocReturn{Type: "JSX.Element"},
	})

	dir := g.dir(opts.Dir, g.cfg.Generate.ComponentDir, d.Name)
	file, err := g.render("component.tsx.tmpl", filepath.Join(dir, d.Name+".tsx"), d)
	if err != nil {
		return nil, err
	}

	q := g.cfg.QuoteChar()
	index := printer.GenerateExportStatement(printer.ExportOptions{Names: []string{d.Name}, From: "./" + d.Name, Quote: q}) + "\n" +
		printer.GenerateExportStatement(printer.ExportOptions{Names: []string{d.Name + "Props"}, From: "./" + d.Name, TypeOnly: true, Quote: q}) + "\n"
	return []generator.Operation{file, g.write(filepath.Join(dir, "index.ts"), index)}, nil
}

// Route renders an API route module for a resource. Next projects get a
// route.ts per resource directory, Express projects a Router.
func (g *Generator) Route(opts Options) ([]generator.Operation, error) {
	d, err := g.newData(inflect.Singularize(opts.Name), nil)
	if err != nil {
		return nil, err
	}
	plural := inflect.KebabCase(d.Plural)
	dir := g.dir(opts.Dir, g.cfg.Generate.RouteDir, "")

	tmpl, path := "route.ts.tmpl", filepath.Join(dir, plural+".ts")
	d.RequestType = "Request"
	d.Doc = printer.GenerateDoc(printer.DocOptions{
		Description: fmt.Sprintf("Lists %s. Supports a limit query parameter.", d.Plural),
	})
	var imports []printer.ImportOptions
	switch g.project.Framework {
	case project.FrameworkExpress:
		tmpl = "route.express.ts.tmpl"
		d.Doc = printer.GenerateDoc(printer.DocOptions{Description: fmt.Sprintf("Routes for %s.", d.Plural)})
		imports = []printer.ImportOptions{
			{ModuleSpecifier: "express", NamedImports: []string{"Router"}},
			{ModuleSpecifier: "express", NamedImports: []string{"Request", "Response"}, TypeOnly: true},
		}
	case project.FrameworkNext:
		path = filepath.Join(dir, plural, "route.ts")
		d.RequestType = "NextRequest"
		imports = []printer.ImportOptions{{ModuleSpecifier: "next/server", NamedImports: []string{"NextRequest"}, TypeOnly: true}}
	}
	model := filepath.Join(g.dir("", g.cfg.Generate.ModelDir, ""), d.Kebab)
	imports = append(imports, printer.ImportOptions{
		ModuleSpecifier: relImport(filepath.Dir(path), model),
		NamedImports:    []string{d.Name},
		TypeOnly:        true,
	})
	d.Imports = g.imports(imports...)

	op, err := g.render(tmpl, path, d)
	if err != nil {
		return nil, err
	}
	return []generator.Operation{op}, nil
}

// Model renders an interface, a class implementing it, and a factory.
func (g *Generator) Model(opts Options) ([]generator.Operation, error) {
	fields := slices.DeleteFunc(slices.Clone(opts.Fields), func(p source.Parameter) bool {
		return slices.Contains(reserved, p.Name)
	})
	d, err := g.newData(inflect.Singularize(opts.Name), fields)
	if err != nil {
		return nil, err
	}
	d.Doc = printer.GenerateDoc(printer.DocOptions{Description: fmt.Sprintf("%s record.", d.Name)})
	d.FactoryDoc = printer.GenerateDoc(printer.DocOptions{
		Description: fmt.Sprintf("Creates a %s with a new id.", d.Name),
		Params:      []printer.DocParam{{Name: "input", Description: "Field values"}},
		Returns:     &printer.DocReturn{Description: "The new " + d.Camel},
	})

	dir := g.dir(opts.Dir, g.cfg.Generate.ModelDir, "")
	op, err := g.render("model.ts.tmpl", filepath.Join(dir, d.Kebab+".ts"), d)
	if err != nil {
		return nil, err
	}
	return []generator.Operation{op}, nil
}

// Test renders a test suite. When Module names an existing file, the suite
// covers its exported functions and classes; otherwise it covers a single
// export called Name from a module of the same name in the source dir.
func (g *Generator) Test(opts Options) ([]generator.Operation, error) {
	name := opts.Name
	if name == "" && opts.Module != "" {
		name = moduleStem(opts.Module)
	}
	d, err := g.newData(name, nil)
	if err != nil {
		return nil, err
	}

	module := opts.Module
	if module == "" {
		module = filepath.Join(g.dir("", g.cfg.Project.SrcDir, ""), d.Kebab+".ts")
	} else if !filepath.IsAbs(module) {
		module = filepath.Join(g.project.Root, module)
	}
	d.Subjects = subjectsOf(module)
	if len(d.Subjects) == 0 {
		d.Subjects = []subject{{Name: d.Name}}
	}

	dir := g.dir(opts.Dir, g.cfg.Project.TestDir, "")
	ext := ".test.ts"
	if filepath.Ext(module) == ".tsx" {
		ext = ".test.tsx"
	}

	var imports []printer.ImportOptions
	if g.TestFramework() == project.TestVitest {
		imports = append(imports, printer.ImportOptions{ModuleSpecifier: "vitest", NamedImports: []string{"describe", "expect", "it"}})
	}
	names := make([]string, 0, len(d.Subjects))
	for _, s := range d.Subjects {
		names = append(names, s.Name)
	}
	imports = append(imports, printer.ImportOptions{ModuleSpecifier: relImport(dir, module), NamedImports: names})
	d.Imports = g.imports(imports...)

	op, err := g.render("test.ts.tmpl", filepath.Join(dir, moduleStem(module)+ext), d)
	if err != nil {
		return nil, err
	}
	return []generator.Operation{op}, nil
}

// subjectsOf lists the exported functions and classes of a source file, in
// source order. Unreadable files have no subjects.
func subjectsOf(path string) []subject {
	result, err := parser.ParseFile(path)
	if err != nil {
		return nil
	}
	var out []subject
	for _, decl := range result.Declarations.TopLevel() {
		if !decl.IsExported || decl.Name == "" {
			continue
		}
		if decl.Kind == source.KindFunction || decl.Kind == source.KindClass {
			out = append(out, subject{Name: decl.Name, Kind: decl.Kind})
		}
	}
	return out
}

// render renders a template, preferring a same-named file in the
// configured template directory, then formats the result.
func (g *Generator) render(tmpl, path string, d *data) (*generator.WriteFileOp, error) {
	var (
		out []byte
		err error
	)
	override := ""
	if g.cfg.Generate.TemplateDir != "" {
		override = filepath.Join(g.cfg.Generate.TemplateDir, tmpl)
	}
	if override != "" && fileExists(override) {
		out, err = g.renderer.RenderFile(override, d)
	} else {
		out, err = g.renderer.RenderFS(templatesFS, "templates/"+tmpl, d)
	}
	if err != nil {
		return nil, err
	}
	return g.write(path, string(out)), nil
}

func (g *Generator) write(path, text string) *generator.WriteFileOp {
	text = printer.FormatDialect(text, syntax.DialectFor(path))
	if g.cfg.Format.License != "" {
		// Prepended unconditionally: generated files may open with a doc comment.
		text = printer.AddLicenseHeader("", g.cfg.Format.License) + text
	}
	return &generator.WriteFileOp{Path: path, Data: []byte(text), Mode: 0o644}
}

func (g *Generator) imports(opts ...printer.ImportOptions) string {
	lines := make([]string, 0, len(opts))
	for _, o := range opts {
		o.Quote = g.cfg.QuoteChar()
		lines = append(lines, printer.GenerateImportStatement(o))
	}
	return strings.Join(lines, "\n")
}

// dir resolves an output directory against the project root.
func (g *Generator) dir(override, configured, sub string) string {
	d := configured
	if override != "" {
		d = override
	}
	if !filepath.IsAbs(d) {
		d = filepath.Join(g.project.Root, d)
	}
	return filepath.Join(d, sub)
}

// relImport returns the module specifier for target (a file path, with or
// without extension) as seen from a file in fromDir.
func relImport(fromDir, target string) string {
	target = strings.TrimSuffix(target, filepath.Ext(target))
	rel, err := filepath.Rel(fromDir, target)
	if err != nil {
		rel = target
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}
	return rel
}

func moduleStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
