// Package analyzer derives advisory quality issues and structural diffs from
// parsed TypeScript source.
//
// Every check works on the declaration model produced by the parser. None of
// them type-check or resolve symbols, so findings are hints, never errors.
package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/logger"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/parser"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/source"
)

// Thresholds for the size and complexity checks. Complexity is the
// aggregate for the whole file, not per function.
const (
	MaxLinesOfCode = 500
	MaxComplexity  = 20
)

// Issue kinds.
const (
	KindLargeFile    = "large-file"
	KindComplexity   = "complexity"
	KindMissingJSDoc = "missing-jsdoc"
	KindNaming       = "naming"
	KindDeadCode     = "dead-code"
)

// Severity ranks an issue.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Issue is one finding.
type Issue struct {
	Kind        string   `json:"kind" yaml:"kind"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Message     string   `json:"message" yaml:"message"`
	Declaration string   `json:"declaration,omitempty" yaml:"declaration,omitempty"`
	Line        int      `json:"line,omitempty" yaml:"line,omitempty"`
}

// Report is the result of analyzing one source unit.
type Report struct {
	Issues  []Issue        `json:"issues" yaml:"issues"`
	Metrics source.Metrics `json:"metrics" yaml:"metrics"`
	Summary string         `json:"summary" yaml:"summary"`
}

// Count returns the number of issues with the given severity.
func (r *Report) Count(sev Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == sev {
			n++
		}
	}
	return n
}

// Analyzer runs the checks.
type Analyzer struct {
	logger        logger.Logger
	maxLines      int
	maxComplexity int
}

// New creates an Analyzer with a silent logger and the default thresholds.
func New() *Analyzer {
	return &Analyzer{
		logger:        logger.NewSilentLogger(),
		maxLines:      MaxLinesOfCode,
		maxComplexity: MaxComplexity,
	}
}

// WithLogger returns a new Analyzer with the specified logger
func (a *Analyzer) WithLogger(log logger.Logger) *Analyzer {
	c := *a
	c.logger = log
	return &c
}

// WithThresholds returns a copy that flags files above maxLines lines of
// code or maxComplexity aggregate complexity. Non-positive values keep the
// current threshold.
func (a *Analyzer) WithThresholds(maxLines, maxComplexity int) *Analyzer {
	c := *a
	if maxLines > 0 {
		c.maxLines = maxLines
	}
	if maxComplexity > 0 {
		c.maxComplexity = maxComplexity
	}
	return &c
}

// Analyze parses text and reports its issues.
func Analyze(text string) *Report {
	return New().Analyze(text)
}

// AnalyzeFile reads and analyzes path.
func AnalyzeFile(path string) (*Report, error) {
	return New().AnalyzeFile(path)
}

func (a *Analyzer) Analyze(text string) *Report {
	return a.Report(parser.Parse(text))
}

func (a *Analyzer) AnalyzeFile(path string) (*Report, error) {
	model, err := parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("analyzing file", logger.F("path", path))
	return a.Report(model), nil
}

// Report runs every check against an already parsed model.
func (a *Analyzer) Report(model *source.AnalysisResult) *Report {
	r := &Report{Issues: []Issue{}, Metrics: model.Metrics}

	r.Issues = append(r.Issues, checkSize(model.Metrics, a.maxLines, a.maxComplexity)...)
	r.Issues = append(r.Issues, checkDeclarations(model.Declarations)...)
	r.Issues = append(r.Issues, checkUnusedImports(model)...)
	r.Summary = summarize(r)

	a.logger.Debug("analysis complete",
		logger.F("issues", len(r.Issues)),
		logger.F("complexity", model.Metrics.CyclomaticComplexity))
	return r
}

func checkSize(m source.Metrics, maxLines, maxComplexity int) []Issue {
	var issues []Issue
	if m.LinesOfCode > maxLines {
		issues = append(issues, Issue{
			Kind:     KindLargeFile,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("file has %d lines of code (limit %d); consider splitting it", m.LinesOfCode, maxLines),
		})
	}
	if m.CyclomaticComplexity > maxComplexity {
		issues = append(issues, Issue{
			Kind:     KindComplexity,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("cyclomatic complexity %d exceeds %d", m.CyclomaticComplexity, maxComplexity),
		})
	}
	return issues
}

func checkDeclarations(tree *source.Tree) []Issue {
	var issues []Issue
	for _, d := range tree.TopLevel() {
		if d.Name == "" {
			continue
		}
		if d.Kind.IsContainer() && !startsUpper(d.Name) {
			issues = append(issues, Issue{
				Kind:        KindNaming,
				Severity:    SeverityWarning,
				Message:     fmt.Sprintf("%s %q should start with an uppercase letter", d.Kind, d.Name),
				Declaration: d.Name,
				Line:        d.StartLine,
			})
		}
		if d.IsExported && needsDoc(d.Kind) && strings.TrimSpace(d.Doc) == "" {
			issues = append(issues, Issue{
				Kind:        KindMissingJSDoc,
				Severity:    SeverityInfo,
				Message:     fmt.Sprintf("exported %s %q has no JSDoc comment", d.Kind, d.Name),
				Declaration: d.Name,
				Line:        d.StartLine,
			})
		}
	}
	return issues
}

func needsDoc(k source.Kind) bool {
	return k == source.KindClass || k == source.KindInterface || k == source.KindFunction
}

func startsUpper(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// checkUnusedImports flags named imports whose local name never shows up in
// a declaration name or in any declaration's metadata. It is a textual
// containment test over the model, so a name used only inside a function
// body is reported, and a name that happens to be a substring of another is
// not.
func checkUnusedImports(model *source.AnalysisResult) []Issue {
	var haystack strings.Builder
	model.Declarations.Walk(func(d *source.Declaration) bool {
		haystack.WriteString(d.Name)
		haystack.WriteByte('\n')
		if len(d.Metadata) > 0 {
			if data, err := json.Marshal(d.Metadata); err == nil {
				haystack.Write(data)
				haystack.WriteByte('\n')
			}
		}
		return true
	})
	text := haystack.String()

	var issues []Issue
	for _, imp := range model.Imports {
		for _, spec := range imp.NamedImports {
			name := source.LocalName(spec)
			if name == "" || strings.Contains(text, name) {
				continue
			}
			issues = append(issues, Issue{
				Kind:        KindDeadCode,
				Severity:    SeverityInfo,
				Message:     fmt.Sprintf("import %q from %q may be unused", name, imp.ModuleSpecifier),
				Declaration: name,
				Line:        imp.Line,
			})
		}
	}
	return issues
}

func summarize(r *Report) string {
	m := r.Metrics
	return fmt.Sprintf("Lines: %d | Functions: %d | Classes: %d | Imports: %d | Exports: %d | Complexity: %d | Issues: %d error(s), %d warning(s), %d info",
		m.LinesOfCode, m.FunctionCount, m.ClassCount, m.ImportCount, m.ExportCount, m.CyclomaticComplexity,
		r.Count(SeverityError), r.Count(SeverityWarning), r.Count(SeverityInfo))
}
