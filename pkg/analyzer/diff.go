package analyzer

import (
	"sort"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/parser"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/source"
)

// ModifiedThreshold is how many lines a declaration's span must grow or
// shrink by before it is reported as modified.
const ModifiedThreshold = 2

// StructureDiff compares the top-level declarations of two versions by
// "{kind}:{name}" identifier. Each list is sorted.
type StructureDiff struct {
	Added    []string `json:"added" yaml:"added"`
	Removed  []string `json:"removed" yaml:"removed"`
	Modified []string `json:"modified" yaml:"modified"`
}

// Empty reports whether the two versions have the same structure.
func (d *StructureDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Modified) == 0
}

// CompareStructure diffs the declarations of oldText and newText. A
// declaration present in both counts as modified when its line span changed
// by more than ModifiedThreshold; edits that keep the size are not seen.
func CompareStructure(oldText, newText string) *StructureDiff {
	return Compare(parser.Parse(oldText), parser.Parse(newText))
}

// Compare diffs two parsed models.
func Compare(before, after *source.AnalysisResult) *StructureDiff {
	old := spans(before.Declarations)
	cur := spans(after.Declarations)

	diff := &StructureDiff{Added: []string{}, Removed: []string{}, Modified: []string{}}
	for key, span := range cur {
		prev, ok := old[key]
		if !ok {
			diff.Added = append(diff.Added, key)
			continue
		}
		if abs(span-prev) > ModifiedThreshold {
			diff.Modified = append(diff.Modified, key)
		}
	}
	for key := range old {
		if _, ok := cur[key]; !ok {
			diff.Removed = append(diff.Removed, key)
		}
	}
	sort.Strings(diff.Added)
	sort.Strings(diff.Removed)
	sort.Strings(diff.Modified)
	return diff
}

// spans maps each top-level identifier to the span of its first occurrence.
func spans(tree *source.Tree) map[string]int {
	out := make(map[string]int)
	for _, d := range tree.TopLevel() {
		if _, seen := out[d.Key()]; !seen {
			out[d.Key()] = d.Span()
		}
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
