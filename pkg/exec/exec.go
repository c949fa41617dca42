package exec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Executor runs external commands.
type Executor struct {
	stdout  io.Writer
	stderr  io.Writer
	env     []string
	dir     string
	spinner bool

	commandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// Options configures command execution.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	Env    []string // added to the inherited environment
	Dir    string   // working directory
	// Spinner shows progress on Stderr while a hook runs. It is ignored
	// when Stderr is not a terminal.
	Spinner bool
}

// NewExecutor creates an executor. nil options write to the process's
// standard streams and show a spinner on terminals.
func NewExecutor(opts *Options) *Executor {
	if opts == nil {
		opts = &Options{Spinner: true}
	}
	e := &Executor{
		stdout:      opts.Stdout,
		stderr:      opts.Stderr,
		env:         opts.Env,
		dir:         opts.Dir,
		spinner:     opts.Spinner,
		commandFunc: exec.CommandContext,
	}
	if e.stdout == nil {
		e.stdout = os.Stdout
	}
	if e.stderr == nil {
		e.stderr = os.Stderr
	}
	return e
}

// Run executes name with args and waits for it. Cancelling ctx kills the
// process.
func (e *Executor) Run(ctx context.Context, name string, args ...string) error {
	cmd := e.commandFunc(ctx, name, args...)
	if e.dir != "" {
		cmd.Dir = e.dir
	}
	if len(e.env) > 0 {
		cmd.Env = append(cmd.Environ(), e.env...)
	}
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	err := cmd.Run()
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return fmt.Errorf("%s cancelled: %w", name, ctx.Err())
	case errors.Is(err, exec.ErrNotFound):
		return fmt.Errorf("%w\nCommand '%s' not found. Please install it and try again", err, name)
	default:
		return fmt.Errorf("%s failed: %w", name, err)
	}
}

// RunWithSpinner runs the command behind a spinner labelled message. Its
// output is captured and only shown when it fails. Without a terminal it
// behaves like Run.
func (e *Executor) RunWithSpinner(ctx context.Context, message, name string, args ...string) error {
	if !e.spinner || !isTerminal(e.stderr) {
		return e.Run(ctx, name, args...)
	}

	var captured strings.Builder
	quiet := *e
	quiet.stdout = &captured
	quiet.stderr = &captured

	p := tea.NewProgram(newSpinnerModel(message), tea.WithOutput(e.stderr), tea.WithInput(nil))
	uiDone := make(chan struct{})
	go func() {
		defer close(uiDone)
		_, _ = p.Run()
	}()

	err := quiet.Run(ctx, name, args...)
	p.Send(spinnerDoneMsg{err: err})
	<-uiDone

	if err != nil && captured.Len() > 0 {
		fmt.Fprint(e.stderr, captured.String())
	}
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
	err     error
}

type spinnerDoneMsg struct {
	err error
}

func newSpinnerModel(message string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return spinnerModel{spinner: s, message: message}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		if m.err != nil {
			return fmt.Sprintf("✘ %s\n", m.message)
		}
		return fmt.Sprintf("✔ %s\n", m.message)
	}
	return fmt.Sprintf("%s %s...", m.spinner.View(), m.message)
}
