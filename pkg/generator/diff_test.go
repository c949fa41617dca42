package generator

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func plain(old, newer string) string {
	return GenerateDiff("a.ts", "b.ts", []byte(old), []byte(newer), &DiffOptions{})
}

func TestGenerateDiff_Identical(t *testing.T) {
	assert.Empty(t, plain("const a = 1;\n", "const a = 1;\n"))
	assert.Empty(t, plain("", ""))
	// A missing final newline alone is not a line change.
	assert.Empty(t, plain("x\ny", "x\ny\n"))
}

func TestGenerateDiff_Replacement(t *testing.T) {
	want := "--- a.ts\n+++ b.ts\n@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n"
	assert.Equal(t, want, plain("a\nb\nc\n", "a\nB\nc\n"))
}

func TestGenerateDiff_AddToEmpty(t *testing.T) {
	want := "--- a.ts\n+++ b.ts\n@@ -0,0 +1,2 @@\n+x\n+y\n"
	assert.Equal(t, want, plain("", "x\ny\n"))
}

func TestGenerateDiff_RemoveAll(t *testing.T) {
	want := "--- a.ts\n+++ b.ts\n@@ -1,2 +0,0 @@\n-x\n-y\n"
	assert.Equal(t, want, plain("x\ny\n", ""))
}

func TestGenerateDiff_MultipleHunks(t *testing.T) {
	var old, newer []string
	for i := 1; i <= 20; i++ {
		old = append(old, fmt.Sprintf("line %d", i))
		switch i {
		case 2:
			newer = append(newer, "changed 2")
		case 18:
			newer = append(newer, "changed 18")
		default:
			newer = append(newer, fmt.Sprintf("line %d", i))
		}
	}
	diff := plain(strings.Join(old, "\n")+"\n", strings.Join(newer, "\n")+"\n")

	assert.Equal(t, 2, strings.Count(diff, "@@ -"))
	assert.Contains(t, diff, "@@ -1,5 +1,5 @@")
	assert.Contains(t, diff, "@@ -15,6 +15,6 @@")
}

func TestGenerateDiff_ContextLines(t *testing.T) {
	old := "1\n2\n3\n4\n5\n6\n7\n"
	newer := "1\n2\n3\nfour\n5\n6\n7\n"
	diff := GenerateDiff("a", "b", []byte(old), []byte(newer), &DiffOptions{ContextLines: 1})
	assert.Contains(t, diff, "@@ -3,3 +3,3 @@\n 3\n-4\n+four\n 5\n")
}

func TestGenerateDiff_Binary(t *testing.T) {
	assert.Equal(t, "Binary files differ\n", plain("a\x00b", "a"))
}

func TestGenerateDiff_LineNumbers(t *testing.T) {
	diff := GenerateDiff("a", "b", []byte("x\ny\n"), []byte("x\nz\n"), &DiffOptions{ShowLineNums: true})
	assert.Contains(t, diff, "   1  x\n")
	assert.Contains(t, diff, "   2 -y\n")
	assert.Contains(t, diff, "     +z\n")
}

func TestDiffGenerator_Reuse(t *testing.T) {
	gen := NewDiffGenerator()
	first := gen.GenerateDiff("a", "b", []byte("a\nb\n"), []byte("a\nc\n"), nil)
	_ = gen.GenerateDiff("a", "b", []byte(strings.Repeat("x\n", 50)), []byte(strings.Repeat("y\n", 40)), nil)
	again := gen.GenerateDiff("a", "b", []byte("a\nb\n"), []byte("a\nc\n"), nil)
	assert.Equal(t, first, again)
}

func TestEditScript_ReconstructsBothSides(t *testing.T) {
	cases := [][2]string{
		{"a b c a b b a", "c b a b a c"},
		{"", "x y"},
		{"x y", ""},
		{"same", "same"},
	}
	gen := NewDiffGenerator()
	for _, c := range cases {
		a, b := strings.Fields(c[0]), strings.Fields(c[1])
		var gotA, gotB []string
		for _, l := range gen.editScript(a, b) {
			if l.op != opInsert {
				gotA = append(gotA, l.text)
			}
			if l.op != opDelete {
				gotB = append(gotB, l.text)
			}
		}
		assert.Equal(t, len(a), len(gotA))
		assert.Equal(t, len(b), len(gotB))
		assert.Equal(t, strings.Join(a, " "), strings.Join(gotA, " "))
		assert.Equal(t, strings.Join(b, " "), strings.Join(gotB, " "))
	}
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{}, splitLines(""))
	assert.Equal(t, []string{"a", "", "b"}, splitLines("a\n\nb\n"))
	assert.Equal(t, []string{""}, splitLines("\n"))
}

func TestExpandTabs(t *testing.T) {
	assert.Equal(t, "    x", expandTabs("\tx", 4))
	assert.Equal(t, "ab  x", expandTabs("ab\tx", 4))
	assert.Equal(t, "plain", expandTabs("plain", 4))
}

func TestTruncateLine(t *testing.T) {
	assert.Equal(t, "short", truncateLine("short", 10))
	assert.Equal(t, "abcdefg...", truncateLine("abcdefghijklmnop", 10))
	assert.Equal(t, "..", truncateLine("abcdef", 2))
}
