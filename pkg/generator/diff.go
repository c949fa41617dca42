package generator

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// maxDiffLines bounds the inputs GenerateDiff will compare.
const maxDiffLines = 10000

// DiffOptions configures how diffs are generated and displayed.
// All fields are optional.
type DiffOptions struct {
	// ContextLines is the number of unchanged lines shown around changes.
	// Default: 3
	ContextLines int

	// TabWidth is the number of spaces each tab expands to.
	// Default: 4
	TabWidth int

	// ShowLineNums prefixes each line with its number in the old file.
	ShowLineNums bool

	// Color styles headers and changed lines and truncates long lines to
	// the terminal width. Plain output is a standard unified diff.
	Color bool
}

// DiffGenerator computes unified diffs with the Myers algorithm. It keeps
// its work buffers between calls, so reuse one for many diffs.
//
// Example:
//
//	gen := NewDiffGenerator()
//	fmt.Print(gen.GenerateDiff("a/user.ts", "b/user.ts", old, newer, nil))
type DiffGenerator struct {
	v     []int
	trace [][]int
}

// NewDiffGenerator creates a diff generator.
func NewDiffGenerator() *DiffGenerator {
	return &DiffGenerator{}
}

// GenerateDiff is a convenience wrapper around a fresh DiffGenerator.
func GenerateDiff(oldPath, newPath string, old, newer []byte, opts *DiffOptions) string {
	return NewDiffGenerator().GenerateDiff(oldPath, newPath, old, newer, opts)
}

// GenerateDiff returns the unified diff between old and newer, or "" when
// they have the same lines.
func (dg *DiffGenerator) GenerateDiff(oldPath, newPath string, old, newer []byte, opts *DiffOptions) string {
	o := DiffOptions{ContextLines: 3, TabWidth: 4}
	if opts != nil {
		o = *opts
		if o.ContextLines <= 0 {
			o.ContextLines = 3
		}
		if o.TabWidth <= 0 {
			o.TabWidth = 4
		}
	}

	if isBinary(old) || isBinary(newer) {
		return "Binary files differ\n"
	}

	a, b := splitLines(string(old)), splitLines(string(newer))
	if equalLines(a, b) {
		return ""
	}
	if len(a) > maxDiffLines || len(b) > maxDiffLines {
		return fmt.Sprintf("Files too large for diff (%d and %d lines)\n", len(a), len(b))
	}

	hunks := buildHunks(dg.editScript(a, b), o.ContextLines)
	if len(hunks) == 0 {
		return ""
	}

	width := 0
	if o.Color {
		width = terminalWidth()
	}

	var buf strings.Builder
	buf.WriteString(o.style(diffHeaderStyle, "--- "+oldPath) + "\n")
	buf.WriteString(o.style(diffHeaderStyle, "+++ "+newPath) + "\n")
	for _, h := range hunks {
		buf.WriteString(formatHunk(h, &o, width))
	}
	return buf.String()
}

func (o *DiffOptions) style(s lipgloss.Style, text string) string {
	if !o.Color {
		return text
	}
	return s.Render(text)
}

type lineOp int

const (
	opEqual lineOp = iota
	opInsert
	opDelete
)

// diffLine is one line of the edit script. oldPos and newPos count the lines
// of each file consumed before this one.
type diffLine struct {
	op             lineOp
	text           string
	oldPos, newPos int
}

type hunk struct {
	oldStart, oldCount int
	newStart, newCount int
	lines              []diffLine
}

var (
	diffHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hunkStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	insertStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("22"))
	deleteStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("52"))
	lineNumStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Faint(true)
)

// editScript finds a shortest edit script from a to b ("An O(ND) Difference
// Algorithm and Its Variations", Myers 1986). V is indexed by diagonal
// k = x - y, shifted by offset.
func (dg *DiffGenerator) editScript(a, b []string) []diffLine {
	n, m := len(a), len(b)
	maxD := n + m
	offset := maxD + 1

	size := 2*maxD + 3
	if cap(dg.v) < size {
		dg.v = make([]int, size)
	}
	v := dg.v[:size]
	for i := range v {
		v[i] = 0
	}
	dg.trace = dg.trace[:0]

	for d := 0; d <= maxD; d++ {
		dg.trace = append(dg.trace, append([]int(nil), v...))
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[offset+k] = x
			if x >= n && y >= m {
				return backtrack(a, b, dg.trace, offset)
			}
		}
	}
	return nil
}

func backtrack(a, b []string, trace [][]int, offset int) []diffLine {
	x, y := len(a), len(b)
	var rev []diffLine
	for d := len(trace) - 1; d >= 0; d-- {
		v := trace[d]
		k := x - y

		prevK := k - 1
		if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
			prevK = k + 1
		}
		prevX := v[offset+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			rev = append(rev, diffLine{op: opEqual, text: a[x], oldPos: x, newPos: y})
		}
		if d == 0 {
			break
		}
		if x == prevX {
			y--
			rev = append(rev, diffLine{op: opInsert, text: b[y], oldPos: x, newPos: y})
		} else {
			x--
			rev = append(rev, diffLine{op: opDelete, text: a[x], oldPos: x, newPos: y})
		}
	}

	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// buildHunks groups changes separated by at most 2*context unchanged lines
// and pads each group with context lines on both sides.
func buildHunks(script []diffLine, context int) []hunk {
	var changes []int
	for i, l := range script {
		if l.op != opEqual {
			changes = append(changes, i)
		}
	}
	if len(changes) == 0 {
		return nil
	}

	var hunks []hunk
	first, last := changes[0], changes[0]
	emit := func() {
		start := max(first-context, 0)
		end := min(last+context, len(script)-1)
		hunks = append(hunks, newHunk(script[start:end+1]))
	}
	for _, c := range changes[1:] {
		if c-last-1 > 2*context {
			emit()
			first = c
		}
		last = c
	}
	emit()
	return hunks
}

func newHunk(lines []diffLine) hunk {
	h := hunk{lines: lines}
	for _, l := range lines {
		if l.op != opInsert {
			h.oldCount++
		}
		if l.op != opDelete {
			h.newCount++
		}
	}
	// An empty range is numbered by the line before it.
	h.oldStart = lines[0].oldPos
	if h.oldCount > 0 {
		h.oldStart++
	}
	h.newStart = lines[0].newPos
	if h.newCount > 0 {
		h.newStart++
	}
	return h
}

func formatHunk(h hunk, o *DiffOptions, width int) string {
	var buf strings.Builder
	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.oldStart, h.oldCount, h.newStart, h.newCount)
	buf.WriteString(o.style(hunkStyle, header) + "\n")

	for _, l := range h.lines {
		text := expandTabs(l.text, o.TabWidth)
		if width > 0 {
			text = truncateLine(text, width-10)
		}

		var line string
		switch l.op {
		case opInsert:
			line = o.style(insertStyle, "+"+text)
		case opDelete:
			line = o.style(deleteStyle, "-"+text)
		default:
			line = " " + text
		}

		if o.ShowLineNums {
			num := "    "
			if l.op != opInsert {
				num = fmt.Sprintf("%4d", l.oldPos+1)
			}
			line = o.style(lineNumStyle, num) + " " + line
		}
		buf.WriteString(line + "\n")
	}
	return buf.String()
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// isBinary reports whether the first 8 KiB of data contain a NUL byte.
func isBinary(data []byte) bool {
	return bytes.IndexByte(data[:min(len(data), 8192)], 0) != -1
}

// splitLines splits content into lines; a final newline does not add an
// empty line.
func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func expandTabs(s string, tabWidth int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var buf strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			spaces := tabWidth - col%tabWidth
			buf.WriteString(strings.Repeat(" ", spaces))
			col += spaces
			continue
		}
		buf.WriteRune(r)
		col++
	}
	return buf.String()
}

// truncateLine shortens s to maxWidth runes, ending in "...".
func truncateLine(s string, maxWidth int) string {
	if maxWidth <= 0 {
		maxWidth = 80
	}
	if utf8.RuneCountInString(s) <= maxWidth {
		return s
	}
	if maxWidth < 3 {
		return "..."[:maxWidth]
	}
	return string([]rune(s)[:maxWidth-3]) + "..."
}

// terminalWidth returns the width of stdout, or 80 when it is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
