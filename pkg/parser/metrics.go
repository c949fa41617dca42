package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/syntax"
)

// decisionNodes are the node types that each add one path through the unit.
var decisionNodes = map[string]bool{
	"if_statement":       true,
	"for_statement":      true,
	"for_in_statement":   true,
	"while_statement":    true,
	"do_statement":       true,
	"switch_case":        true,
	"catch_clause":       true,
	"ternary_expression": true,
}

// Complexity computes the aggregate cyclomatic complexity of everything
// under root: 1 plus one per branch point, including && and || operators.
// It is a single figure for the whole file, not a per-function value.
func Complexity(root *sitter.Node) int {
	complexity := 1
	syntax.Walk(root, func(n *sitter.Node) bool {
		typ := n.Type()
		if decisionNodes[typ] {
			complexity++
			return true
		}
		if typ == "binary_expression" {
			if op := n.ChildByFieldName("operator"); op != nil {
				if t := op.Type(); t == "&&" || t == "||" {
					complexity++
				}
			}
		}
		return true
	})
	return complexity
}

// CountLines returns the number of lines in text. A trailing newline does
// not start a new line and empty text has none.
func CountLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}
