// Package review produces a deterministic, heuristic code review for a
// TypeScript source unit: analyzer issues plus a handful of style rules
// evaluated against the syntax tree.
package review

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/analyzer"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/logger"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/parser"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/source"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/syntax"
)

// Limits for the style rules.
const (
	MaxLineLength     = 120
	MaxFunctionLength = 50
	MaxNesting        = 3
)

// Suggestion kinds added on top of the analyzer's issue kinds.
const (
	KindConsole      = "console"
	KindExplicitAny  = "explicit-any"
	KindTodo         = "todo"
	KindLongLine     = "long-line"
	KindLongFunction = "long-function"
	KindNesting      = "deep-nesting"
)

// penalty is subtracted from the score for each suggestion of a severity.
var penalty = map[analyzer.Severity]int{
	analyzer.SeverityError:   15,
	analyzer.SeverityWarning: 5,
	analyzer.SeverityInfo:    2,
}

// Suggestion is one review comment.
type Suggestion struct {
	Kind     string            `json:"kind" yaml:"kind"`
	Severity analyzer.Severity `json:"severity" yaml:"severity"`
	Line     int               `json:"line,omitempty" yaml:"line,omitempty"`
	Message  string            `json:"message" yaml:"message"`
}

// Review is the outcome of reviewing one source unit.
type Review struct {
	Score       int          `json:"score" yaml:"score"`
	Suggestions []Suggestion `json:"suggestions" yaml:"suggestions"`
	Summary     string       `json:"summary" yaml:"summary"`
}

// Reviewer runs the review rules.
type Reviewer struct {
	analyzer *analyzer.Analyzer
	logger   logger.Logger
}

func New() *Reviewer {
	return &Reviewer{analyzer: analyzer.New(), logger: logger.NewSilentLogger()}
}

// WithLogger returns a Reviewer that logs through l.
func (r *Reviewer) WithLogger(l logger.Logger) *Reviewer {
	return &Reviewer{analyzer: r.analyzer.WithLogger(l), logger: l}
}

// Review parses text as TypeScript and reviews it.
func (r *Reviewer) Review(text string) *Review {
	return r.ReviewDialect(text, syntax.TypeScript)
}

// ReviewFile reads path and reviews it, choosing the grammar from its
// extension.
func (r *Reviewer) ReviewFile(path string) (*Review, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	r.logger.Debug("reviewing file", logger.F("path", path))
	return r.ReviewDialect(string(data), syntax.DialectFor(path)), nil
}

// ReviewDialect reviews text parsed with the given grammar.
func (r *Reviewer) ReviewDialect(text string, dialect syntax.Dialect) *Review {
	doc := syntax.ParseDialect(text, dialect)
	defer doc.Close()

	model := parser.FromDocument(doc)
	report := r.analyzer.Report(model)

	var out []Suggestion
	for _, issue := range report.Issues {
		out = append(out, Suggestion{
			Kind:     issue.Kind,
			Severity: issue.Severity,
			Line:     issue.Line,
			Message:  issue.Message,
		})
	}

	c := &collector{doc: doc}
	c.walk(doc.Root(), 0)
	out = append(out, c.found...)
	out = append(out, longLines(text)...)
	out = append(out, longFunctions(model.Declarations)...)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Kind < out[j].Kind
	})
	if out == nil {
		out = []Suggestion{}
	}

	rv := &Review{Score: score(out), Suggestions: out}
	rv.Summary = summarize(rv)
	r.logger.Debug("review complete",
		logger.F("score", rv.Score),
		logger.F("suggestions", len(out)))
	return rv
}

// controlFlow are the statements that open a nesting level.
var controlFlow = map[string]bool{
	"if_statement":     true,
	"for_statement":    true,
	"for_in_statement": true,
	"while_statement":  true,
	"do_statement":     true,
	"switch_statement": true,
	"try_statement":    true,
}

type collector struct {
	doc   *syntax.Document
	found []Suggestion
}

func (c *collector) add(kind string, sev analyzer.Severity, n *sitter.Node, format string, args ...any) {
	c.found = append(c.found, Suggestion{
		Kind:     kind,
		Severity: sev,
		Line:     syntax.StartLine(n),
		Message:  fmt.Sprintf(format, args...),
	})
}

func (c *collector) walk(n *sitter.Node, depth int) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "call_expression":
		if fn := n.ChildByFieldName("function"); fn != nil && fn.Type() == "member_expression" {
			obj := fn.ChildByFieldName("object")
			prop := fn.ChildByFieldName("property")
			if obj != nil && prop != nil && c.doc.Text(obj) == "console" {
				c.add(KindConsole, analyzer.SeverityWarning, n,
					"Remove console.%s before committing; use a logger instead", c.doc.Text(prop))
			}
		}
	case "predefined_type":
		if c.doc.Text(n) == "any" {
			c.add(KindExplicitAny, analyzer.SeverityWarning, n,
				"Avoid explicit 'any'; prefer 'unknown' or a concrete type")
		}
	case "comment":
		text := c.doc.Text(n)
		for _, marker := range []string{"TODO", "FIXME"} {
			if strings.Contains(text, marker) {
				c.add(KindTodo, analyzer.SeverityInfo, n, "Resolve %s comment", marker)
				break
			}
		}
	}

	// An else-if chain stays at the depth of its first if.
	if controlFlow[n.Type()] && !isElseIf(n) {
		depth++
		if depth > MaxNesting {
			c.add(KindNesting, analyzer.SeverityWarning, n,
				"Control flow nested %d levels deep; extract a function or return early", depth)
			return
		}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c.walk(n.Child(i), depth)
	}
}

func isElseIf(n *sitter.Node) bool {
	if n.Type() != "if_statement" {
		return false
	}
	p := n.Parent()
	return p != nil && p.Type() == "else_clause"
}

func longLines(text string) []Suggestion {
	var out []Suggestion
	for i, line := range strings.Split(text, "\n") {
		if n := utf8.RuneCountInString(strings.TrimRight(line, "\r")); n > MaxLineLength {
			out = append(out, Suggestion{
				Kind:     KindLongLine,
				Severity: analyzer.SeverityInfo,
				Line:     i + 1,
				Message:  fmt.Sprintf("Line is %d characters long (max %d)", n, MaxLineLength),
			})
		}
	}
	return out
}

func longFunctions(tree *source.Tree) []Suggestion {
	var out []Suggestion
	tree.Walk(func(d *source.Declaration) bool {
		if d.Kind != source.KindFunction && d.Kind != source.KindMethod {
			return true
		}
		if lines := d.Span() + 1; lines > MaxFunctionLength {
			out = append(out, Suggestion{
				Kind:     KindLongFunction,
				Severity: analyzer.SeverityWarning,
				Line:     d.StartLine,
				Message: fmt.Sprintf("%s %q is %d lines long (max %d); consider splitting it",
					d.Kind, d.Name, lines, MaxFunctionLength),
			})
		}
		return true
	})
	return out
}

func score(suggestions []Suggestion) int {
	s := 100
	for _, sg := range suggestions {
		s -= penalty[sg.Severity]
	}
	return max(0, min(100, s))
}

func summarize(r *Review) string {
	if len(r.Suggestions) == 0 {
		return fmt.Sprintf("Score %d/100: no suggestions", r.Score)
	}
	counts := map[analyzer.Severity]int{}
	for _, s := range r.Suggestions {
		counts[s.Severity]++
	}
	var parts []string
	for _, sev := range []analyzer.Severity{analyzer.SeverityError, analyzer.SeverityWarning, analyzer.SeverityInfo} {
		if n := counts[sev]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, sev))
		}
	}
	noun := "suggestions"
	if len(r.Suggestions) == 1 {
		noun = "suggestion"
	}
	return fmt.Sprintf("Score %d/100: %d %s (%s)", r.Score, len(r.Suggestions), noun, strings.Join(parts, ", "))
}
