package scaffold

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/config"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/generator"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/parser"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/project"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/source"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/syntax"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/transformer"
)

func newGenerator(t *testing.T, framework string) (*Generator, string) {
	t.Helper()
	root := t.TempDir()
	return New(config.DefaultConfig(), &project.Info{Root: root, Framework: framework}), root
}

// files returns path → content for every write operation.
func files(t *testing.T, ops []generator.Operation) map[string]string {
	t.Helper()
	out := make(map[string]string, len(ops))
	for _, op := range ops {
		w, ok := op.(*generator.WriteFileOp)
		require.True(t, ok, "unexpected operation %T", op)
		out[w.Path] = string(w.Data)
	}
	return out
}

func TestComponent(t *testing.T) {
	g, root := newGenerator(t, project.FrameworkReact)
	ops, err := g.Component(Options{
		Name:   "nav-bar",
		Fields: transformer.ParseParameters("title: string, items?: string[]"),
	})
	require.NoError(t, err)

	got := files(t, ops)
	require.Len(t, got, 2)

	component := got[filepath.Join(root, "src/components/NavBar/NavBar.tsx")]
	want := `import React from 'react';

export interface NavBarProps {
  className?: string;
  children?: React.ReactNode;
  title: string;
  items?: string[];
}

/**
 * NavBar component.
 *
 * @param {NavBarProps} props - Component props
 * @returns {JSX.Element}
 */
export function NavBar({ className, children, title, items }: NavBarProps) {
  return (
    <div className={className} data-testid="nav-bar">
      {children}
    </div>
  );
}

export default NavBar;
`
	assert.Equal(t, want, component)

	index := got[filepath.Join(root, "src/components/NavBar/index.ts")]
	assert.Equal(t, "export { NavBar } from './NavBar';\nexport type { NavBarProps } from './NavBar';\n", index)

	doc := syntax.ParseDialect(component, syntax.TSX)
	defer doc.Close()
	result := parser.FromDocument(doc)
	decl, ok := result.Declarations.Find(source.KindFunction, "NavBar")
	require.True(t, ok)
	assert.True(t, decl.IsExported)
	assert.NotEmpty(t, decl.Doc)
}

func TestRoute(t *testing.T) {
	tests := []struct {
		name      string
		framework string
		path      string
		contains  []string
	}{
		{
			name: "web handlers",
			path: "src/routes/users.ts",
			contains: []string{
				"import type { User } from '../models/user';",
				"export async function GET(request: Request): Promise<Response> {",
				"export async function POST(request: Request): Promise<Response> {",
				"url.searchParams.get('limit')",
			},
		},
		{
			name:      "next",
			framework: project.FrameworkNext,
			path:      "src/routes/users/route.ts",
			contains: []string{
				"import type { NextRequest } from 'next/server';",
				"import type { User } from '../../models/user';",
				"export async function GET(request: NextRequest): Promise<Response> {",
			},
		},
		{
			name:      "express",
			framework: project.FrameworkExpress,
			path:      "src/routes/users.ts",
			contains: []string{
				"import { Router } from 'express';",
				"import type { Request, Response } from 'express';",
				"export const userRouter = Router();",
				"userRouter.post('/', async (req: Request, res: Response) => {",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, root := newGenerator(t, tt.framework)
			ops, err := g.Route(Options{Name: "users"})
			require.NoError(t, err)

			got := files(t, ops)
			content, ok := got[filepath.Join(root, tt.path)]
			require.True(t, ok, "paths: %v", got)
			for _, want := range tt.contains {
				assert.Contains(t, content, want)
			}
		})
	}
}

func TestModel(t *testing.T) {
	g, root := newGenerator(t, "")
	ops, err := g.Model(Options{
		Name:   "BlogPosts",
		Fields: transformer.ParseParameters("id: number, title: string, body, draft?: boolean"),
	})
	require.NoError(t, err)

	content := files(t, ops)[filepath.Join(root, "src/models/blog-post.ts")]
	require.NotEmpty(t, content)

	result := parser.Parse(content)
	iface, ok := result.Declarations.Find(source.KindInterface, "BlogPost")
	require.True(t, ok)
	var props []string
	for _, m := range result.Declarations.ChildrenOf(iface.ID) {
		props = append(props, m.Name)
	}
	assert.Equal(t, []string{"id", "title", "body", "draft", "createdAt"}, props, "reserved fields are not duplicated")

	_, ok = result.Declarations.Find(source.KindClass, "BlogPostModel")
	assert.True(t, ok)
	factory, ok := result.Declarations.Find(source.KindFunction, "createBlogPost")
	require.True(t, ok)
	assert.Contains(t, factory.Doc, "Creates a BlogPost with a new id.")

	assert.Contains(t, content, "  body: string;\n", "untyped fields default to string")
	assert.Contains(t, content, "export type BlogPostInput = Omit<BlogPost, 'id' | 'createdAt'>;")
}

func TestTest_FromModule(t *testing.T) {
	g, root := newGenerator(t, "")
	module := filepath.Join(root, "src", "format.ts")
	require.NoError(t, os.MkdirAll(filepath.Dir(module), 0o755))
	require.NoError(t, os.WriteFile(module, []byte(
		"export function formatDate(d: Date): string { return ''; }\n"+
			"function internal() {}\n"+
			"export class Formatter {}\n"+
			"export interface Options {}\n"), 0o644))

	ops, err := g.Test(Options{Module: "src/format.ts"})
	require.NoError(t, err)

	content := files(t, ops)[filepath.Join(root, "tests/format.test.ts")]
	require.NotEmpty(t, content)
	assert.Contains(t, content, "import { describe, expect, it } from 'vitest';\n")
	assert.Contains(t, content, "import { formatDate, Formatter } from '../src/format';\n")
	assert.Contains(t, content, "describe('Format', () => {")
	assert.Contains(t, content, "  describe('formatDate', () => {")
	assert.Contains(t, content, "it.todo('returns the expected result from formatDate');")
	assert.Contains(t, content, "it.todo('constructs a Formatter');")
	assert.NotContains(t, content, "internal")
	assert.NotContains(t, content, "Options")
}

func TestTest_JestWithoutModule(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Generate.TestFramework = "jest"
	cfg.File = "codegen.yaml"
	root := t.TempDir()
	g := New(cfg, &project.Info{Root: root, TestFramework: project.TestVitest})
	assert.Equal(t, "jest", g.TestFramework(), "an explicit config file wins over detection")

	ops, err := g.Test(Options{Name: "slugify"})
	require.NoError(t, err)

	content := files(t, ops)[filepath.Join(root, "tests/slugify.test.ts")]
	assert.NotContains(t, content, "vitest")
	assert.Contains(t, content, "import { Slugify } from '../src/slugify';")
	assert.Contains(t, content, "expect(Slugify).toBeDefined();")
}

func TestTestFramework_Detected(t *testing.T) {
	g := New(config.DefaultConfig(), &project.Info{Root: ".", TestFramework: project.TestJest})
	assert.Equal(t, project.TestJest, g.TestFramework())
}

func TestGenerate_Dispatch(t *testing.T) {
	g, _ := newGenerator(t, "")
	for _, kind := range Kinds {
		ops, err := g.Generate(kind, Options{Name: "widget"})
		require.NoError(t, err, kind)
		assert.NotEmpty(t, ops, kind)
	}

	_, err := g.Generate("service", Options{Name: "x"})
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = g.Generate(KindModel, Options{Name: "123"})
	assert.ErrorContains(t, err, "invalid name")
}

func TestGenerator_DoubleQuotesAndLicense(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Generate.Quote = "double"
	cfg.Format.License = "Copyright Acme"
	root := t.TempDir()
	g := New(cfg, &project.Info{Root: root})

	ops, err := g.Route(Options{Name: "order"})
	require.NoError(t, err)
	content := files(t, ops)[filepath.Join(root, "src/routes/orders.ts")]

	assert.Contains(t, content, `import type { Order } from "../models/order";`)
	assert.Contains(t, content, `url.searchParams.get("limit")`)
	assert.Contains(t, content, "Copyright Acme")
	assert.True(t, content[0] == '/', "license header comes first")
}

func TestGenerator_TemplateOverride(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Generate.TemplateDir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Generate.TemplateDir, "model.ts.tmpl"),
		[]byte("export type {{ .Name }} = { custom: true };\n"), 0o644))
	root := t.TempDir()

	ops, err := New(cfg, &project.Info{Root: root}).Model(Options{Name: "tag"})
	require.NoError(t, err)
	assert.Equal(t, "export type Tag = { custom: true };\n", files(t, ops)[filepath.Join(root, "src/models/tag.ts")])
}

func TestGenerator_WritesThroughExecutor(t *testing.T) {
	g, root := newGenerator(t, project.FrameworkReact)
	ops, err := g.Component(Options{Name: "Card", Dir: "ui"})
	require.NoError(t, err)

	res, err := generator.Execute(context.Background(), ops, generator.ExecuteOptions{Writer: &bytes.Buffer{}})
	require.NoError(t, err)
	assert.Len(t, res.Written, 2)
	assert.FileExists(t, filepath.Join(root, "ui", "Card", "Card.tsx"))
	assert.FileExists(t, filepath.Join(root, "ui", "Card", "index.ts"))
}

func TestRelImport(t *testing.T) {
	assert.Equal(t, "../models/user", relImport("src/routes", "src/models/user"))
	assert.Equal(t, "./util", relImport("src", "src/util.ts"))
	assert.Equal(t, "../src/format", relImport("tests", "src/format.ts"))
}
