package generator

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConflictResolution is what to do with a file that already exists.
type ConflictResolution int

const (
	Skip ConflictResolution = iota
	Overwrite
	ShowDiff
	Cancel
)

func (r ConflictResolution) String() string {
	switch r {
	case Skip:
		return "skip"
	case Overwrite:
		return "overwrite"
	case ShowDiff:
		return "diff"
	default:
		return "cancel"
	}
}

// ErrCancelled is returned by Execute when the user cancels at a conflict.
var ErrCancelled = errors.New("generation cancelled")

// ConflictStrategy decides how to resolve one conflict.
type ConflictStrategy interface {
	Resolve(path string, existing, newer []byte) (ConflictResolution, error)
}

// Resolver resolves conflicts between generated files and files on disk.
type Resolver struct {
	strategy ConflictStrategy
}

var (
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	borderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("white")).Bold(true)
)

// NewResolver creates a resolver from the --force, --skip and --diff flags.
// With none set the user is asked interactively.
func NewResolver(force, skip, diff bool) (*Resolver, error) {
	if force && (skip || diff) {
		return nil, fmt.Errorf("--force cannot be combined with --skip or --diff")
	}
	if skip && diff {
		return nil, fmt.Errorf("--skip cannot be combined with --diff")
	}

	var s ConflictStrategy
	switch {
	case force:
		s = ForceStrategy{}
	case skip:
		s = SkipStrategy{}
	case diff:
		s = &DiffStrategy{Out: os.Stdout, Next: &InteractiveStrategy{}}
	default:
		s = &InteractiveStrategy{}
	}
	return &Resolver{strategy: s}, nil
}

// NewResolverWithStrategy wraps a custom strategy.
func NewResolverWithStrategy(s ConflictStrategy) *Resolver {
	return &Resolver{strategy: s}
}

// ResolveConflict asks the strategy what to do. A ShowDiff answer is
// followed by printing the diff and asking again, so callers only ever see
// Skip, Overwrite or Cancel.
func (r *Resolver) ResolveConflict(path string, existing, newer []byte) (ConflictResolution, error) {
	for {
		res, err := r.strategy.Resolve(path, existing, newer)
		if err != nil || res != ShowDiff {
			return res, err
		}
		if err := showDiff(os.Stdout, path, existing, newer); err != nil {
			return Cancel, err
		}
	}
}

// ForceStrategy always overwrites.
type ForceStrategy struct{}

func (ForceStrategy) Resolve(string, []byte, []byte) (ConflictResolution, error) {
	return Overwrite, nil
}

// SkipStrategy always keeps the existing file.
type SkipStrategy struct{}

func (SkipStrategy) Resolve(string, []byte, []byte) (ConflictResolution, error) {
	return Skip, nil
}

// DiffStrategy prints the diff, then delegates the decision to Next.
type DiffStrategy struct {
	Out  io.Writer
	Next ConflictStrategy
}

func (s *DiffStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	if err := showDiff(s.Out, path, existing, newer); err != nil {
		return Cancel, err
	}
	return s.Next.Resolve(path, existing, newer)
}

// showDiff prints short diffs inline and pages long ones in a viewport.
func showDiff(out io.Writer, path string, existing, newer []byte) error {
	diff := GenerateDiff(path, path+" (generated)", existing, newer, &DiffOptions{Color: true})
	if strings.Count(diff, "\n") <= 20 {
		_, err := fmt.Fprintln(out, diff)
		return err
	}
	p := tea.NewProgram(newDiffViewerModel(path, diff), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("showing diff: %w", err)
	}
	return nil
}

// InteractiveStrategy shows a keyboard-driven menu. In and Out default to
// the terminal.
type InteractiveStrategy struct {
	In  io.Reader
	Out io.Writer
}

func (s *InteractiveStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	info, err := os.Stat(path)
	if err != nil && !os.IsNotExist(err) {
		return Cancel, fmt.Errorf("stat %s: %w", path, err)
	}

	var opts []tea.ProgramOption
	if s.In != nil {
		opts = append(opts, tea.WithInput(s.In))
	}
	if s.Out != nil {
		opts = append(opts, tea.WithOutput(s.Out))
	}
	final, err := tea.NewProgram(newConflictMenuModel(path, info), opts...).Run()
	if err != nil {
		return Cancel, fmt.Errorf("showing conflict menu: %w", err)
	}

	m := final.(conflictMenuModel)
	if m.selected == nil {
		return Cancel, nil
	}
	return *m.selected, nil
}

var menuChoices = []struct {
	label      string
	resolution ConflictResolution
}{
	{"Show diff and decide", ShowDiff},
	{"Skip (keep existing file)", Skip},
	{"Overwrite (replace with generated code)", Overwrite},
	{"Cancel generation", Cancel},
}

type conflictMenuModel struct {
	path     string
	info     os.FileInfo
	cursor   int
	selected *ConflictResolution
	now      func() time.Time
}

func newConflictMenuModel(path string, info os.FileInfo) conflictMenuModel {
	return conflictMenuModel{path: path, info: info, now: time.Now}
}

func (m conflictMenuModel) Init() tea.Cmd {
	return nil
}

func (m conflictMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuChoices)-1 {
			m.cursor++
		}
	case "d":
		r := ShowDiff
		m.selected = &r
		return m, tea.Quit
	case "s":
		r := Skip
		m.selected = &r
		return m, tea.Quit
	case "o":
		r := Overwrite
		m.selected = &r
		return m, tea.Quit
	case "enter":
		r := menuChoices[m.cursor].resolution
		m.selected = &r
		return m, tea.Quit
	}
	return m, nil
}

func (m conflictMenuModel) View() string {
	var b strings.Builder
	b.WriteString(warningStyle.Render("! File already exists: ") + titleStyle.Render(m.path) + "\n")
	if m.info != nil {
		b.WriteString(mutedStyle.Render("    Last modified: ") + relativeTime(m.now().Sub(m.info.ModTime())) + "\n")
		b.WriteString(mutedStyle.Render("    Size: ") + fileSize(m.info.Size()) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("    [↑/↓] Navigate    [Enter] Select    [d/s/o] Shortcut    [q] Cancel") + "\n\n")

	for i, c := range menuChoices {
		if i == m.cursor {
			b.WriteString("    " + selectedStyle.Render("> "+c.label) + "\n")
		} else {
			b.WriteString("      " + c.label + "\n")
		}
	}
	return b.String()
}

// diffViewerModel pages a long diff.
type diffViewerModel struct {
	path     string
	diff     string
	viewport viewport.Model
	ready    bool
}

func newDiffViewerModel(path, diff string) diffViewerModel {
	return diffViewerModel{path: path, diff: diff}
}

func (m diffViewerModel) Init() tea.Cmd {
	return nil
}

func (m diffViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		const chrome = 4 // header and footer lines
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, msg.Height-chrome)
			m.viewport.SetContent(m.diff)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = msg.Height - chrome
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m diffViewerModel) View() string {
	if !m.ready {
		return "Loading diff..."
	}
	rule := strings.Repeat("─", max(0, m.viewport.Width))
	return titleStyle.Render("Diff: "+m.path) + "\n" +
		borderStyle.Render(rule) + "\n" +
		m.viewport.View() + "\n" +
		borderStyle.Render(rule) + "\n" +
		mutedStyle.Render(fmt.Sprintf("[↑/↓ pgup/pgdn] Scroll    [q] Back to menu    %3.f%%", m.viewport.ScrollPercent()*100))
}

// relativeTime renders an age such as "3 hours ago".
func relativeTime(d time.Duration) string {
	units := []struct {
		size time.Duration
		name string
	}{
		{365 * 24 * time.Hour, "year"},
		{30 * 24 * time.Hour, "month"},
		{7 * 24 * time.Hour, "week"},
		{24 * time.Hour, "day"},
		{time.Hour, "hour"},
		{time.Minute, "minute"},
	}
	for _, u := range units {
		if d >= u.size {
			n := int(d / u.size)
			if n == 1 {
				return "1 " + u.name + " ago"
			}
			return fmt.Sprintf("%d %ss ago", n, u.name)
		}
	}
	return "just now"
}

// fileSize renders a byte count in binary units.
func fileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
