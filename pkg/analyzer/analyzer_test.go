package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/logger"
)

func kinds(r *Report) []string {
	out := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		out = append(out, issue.Kind)
	}
	return out
}

func TestAnalyzer_WithLogger(t *testing.T) {
	a := New()
	custom := logger.NewSilentLogger()
	b := a.WithLogger(custom)

	assert.Same(t, custom, b.logger)
	assert.NotSame(t, a, b)
}

func TestAnalyze_MissingJSDoc(t *testing.T) {
	r := Analyze("export function noDoc(): void {}")

	require.Contains(t, kinds(r), KindMissingJSDoc)
	issue := r.Issues[0]
	assert.Equal(t, SeverityInfo, issue.Severity)
	assert.Equal(t, "noDoc", issue.Declaration)
	assert.Equal(t, 1, issue.Line)
}

func TestAnalyze_DocumentedExportsAreClean(t *testing.T) {
	src := `/** A user record. */
export interface User {
  id: string;
}

/**
 * Loads a user.
 */
export function load(id: string): User {
  return { id };
}

export const LIMIT = 10;

function internal() {}
`
	r := Analyze(src)
	assert.Empty(t, r.Issues)
	assert.Contains(t, r.Summary, "Issues: 0 error(s), 0 warning(s), 0 info")
}

func TestAnalyze_Naming(t *testing.T) {
	r := Analyze("class widget {}\ninterface props {}\nclass Good {}\ninterface _Hidden {}\n")

	var names []string
	for _, issue := range r.Issues {
		if issue.Kind == KindNaming {
			names = append(names, issue.Declaration)
			assert.Equal(t, SeverityWarning, issue.Severity)
		}
	}
	assert.Equal(t, []string{"widget", "props", "_Hidden"}, names)
}

func TestAnalyze_LargeFile(t *testing.T) {
	var b strings.Builder
	for i := 0; i < MaxLinesOfCode+10; i++ {
		fmt.Fprintf(&b, "const v%d = %d;\n", i, i)
	}
	r := Analyze(b.String())

	assert.Contains(t, kinds(r), KindLargeFile)
	assert.Equal(t, MaxLinesOfCode+10, r.Metrics.LinesOfCode)
	assert.NotContains(t, kinds(Analyze("const a = 1;\n")), KindLargeFile)
}

func TestAnalyze_Complexity(t *testing.T) {
	var b strings.Builder
	b.WriteString("function busy(x: number) {\n")
	for i := 0; i < MaxComplexity; i++ {
		b.WriteString("  if (x > 0) { x--; }\n")
	}
	b.WriteString("}\n")

	r := Analyze(b.String())
	assert.Equal(t, MaxComplexity+1, r.Metrics.CyclomaticComplexity)
	assert.Contains(t, kinds(r), KindComplexity)

	r = Analyze("function calm(x: number) { if (x) { return 1; } return 0; }\n")
	assert.NotContains(t, kinds(r), KindComplexity)
}

func TestAnalyzer_WithThresholds(t *testing.T) {
	code := "function f(x: number) {\n  if (x) { return 1; }\n  if (x > 1) { return 2; }\n  return 0;\n}\n"

	assert.Empty(t, kinds(New().Analyze(code)))

	r := New().WithThresholds(3, 2).Analyze(code)
	assert.ElementsMatch(t, []string{KindLargeFile, KindComplexity}, kinds(r))
	assert.Contains(t, r.Issues[0].Message, "limit 3")

	a := New().WithThresholds(0, -1)
	assert.Equal(t, MaxLinesOfCode, a.maxLines, "non-positive values keep the default")
	assert.Equal(t, MaxComplexity, a.maxComplexity)
}

func TestAnalyze_DeadCodeHeuristic(t *testing.T) {
	src := `import { Request, unused as gone } from 'express';
import Default from 'lib';
import * as ns from 'ns';

function handle(req: Request): void {}
`
	r := Analyze(src)

	var flagged []string
	for _, issue := range r.Issues {
		if issue.Kind == KindDeadCode {
			flagged = append(flagged, issue.Declaration)
			assert.Equal(t, 1, issue.Line)
		}
	}
	// Only named bindings are checked, by their local name.
	assert.Equal(t, []string{"gone"}, flagged)
}

func TestAnalyze_Summary(t *testing.T) {
	src := `import { helper } from './helper';

export class Box {
  open(): void {}
}

export function make(): Box { return new Box(); }
`
	r := Analyze(src)

	assert.Equal(t, 3, r.Count(SeverityInfo))
	assert.Equal(t,
		"Lines: 7 | Functions: 1 | Classes: 1 | Imports: 1 | Exports: 2 | Complexity: 1 | Issues: 0 error(s), 0 warning(s), 3 info",
		r.Summary)
}

func TestAnalyze_InvalidInputDoesNotFail(t *testing.T) {
	r := Analyze("class {{{ ??? export")
	require.NotNil(t, r)
	assert.NotEmpty(t, r.Summary)
}

func TestAnalyzeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Button.tsx")
	require.NoError(t, os.WriteFile(path, []byte("export function Button() { return <button />; }\n"), 0o644))

	r, err := AnalyzeFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Metrics.FunctionCount)
	assert.Contains(t, kinds(r), KindMissingJSDoc)

	_, err = AnalyzeFile(filepath.Join(t.TempDir(), "missing.ts"))
	assert.Error(t, err)
}
