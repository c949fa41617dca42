// Package syntax wraps the tree-sitter TypeScript grammar.
//
// It is the single place the engine touches tree-sitter. The parser reads
// declarations from a Document, the transformer computes byte-range splices
// from node spans, and the formatter uses token ranges to find string,
// template, and comment regions.
//
//	doc := syntax.Parse(src)
//	defer doc.Close()
//
//	syntax.Walk(doc.Root(), func(n *sitter.Node) bool {
//	    fmt.Println(n.Type(), syntax.StartLine(n))
//	    return true
//	})
package syntax
