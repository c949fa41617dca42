package exec

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCommand re-runs the test binary as TestHelperProcess.
func mockCommand(ctx context.Context, name string, args ...string) *exec.Cmd {
	cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
	cmd := exec.CommandContext(ctx, os.Args[0], cs...)
	cmd.Env = []string{"GO_WANT_HELPER_PROCESS=1"}
	return cmd
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}
	switch args[0] {
	case "echo":
		fmt.Println(strings.Join(args[1:], " "))
	case "env":
		fmt.Println(os.Getenv(args[1]))
	case "sleep":
		time.Sleep(10 * time.Second)
	case "error":
		fmt.Fprintln(os.Stderr, "error occurred")
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		os.Exit(1)
	}
	os.Exit(0)
}

func newMocked(opts *Options) *Executor {
	e := NewExecutor(opts)
	e.commandFunc = mockCommand
	return e
}

func TestNewExecutor(t *testing.T) {
	e := NewExecutor(nil)
	assert.Equal(t, os.Stdout, e.stdout)
	assert.Equal(t, os.Stderr, e.stderr)
	assert.True(t, e.spinner)

	var stdout bytes.Buffer
	e = NewExecutor(&Options{Stdout: &stdout, Env: []string{"A=1"}, Dir: "/tmp"})
	assert.Equal(t, &stdout, e.stdout)
	assert.Equal(t, os.Stderr, e.stderr)
	assert.Equal(t, []string{"A=1"}, e.env)
	assert.Equal(t, "/tmp", e.dir)
	assert.False(t, e.spinner)
}

func TestExecutor_Run(t *testing.T) {
	var stdout bytes.Buffer
	e := newMocked(&Options{Stdout: &stdout})

	require.NoError(t, e.Run(context.Background(), "echo", "hello", "world"))
	assert.Equal(t, "hello world\n", stdout.String())
}

func TestExecutor_RunWithError(t *testing.T) {
	var stderr bytes.Buffer
	e := newMocked(&Options{Stdout: &bytes.Buffer{}, Stderr: &stderr})

	err := e.Run(context.Background(), "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error failed")
	assert.Contains(t, stderr.String(), "error occurred")
}

func TestExecutor_Cancelled(t *testing.T) {
	e := newMocked(&Options{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := e.Run(ctx, "sleep")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")
}

func TestExecutor_Environment(t *testing.T) {
	var stdout bytes.Buffer
	e := newMocked(&Options{Stdout: &stdout, Env: []string{"CODEGEN_HOOK=yes"}})

	require.NoError(t, e.Run(context.Background(), "env", "CODEGEN_HOOK"))
	assert.Equal(t, "yes\n", stdout.String())
}

func TestExecutor_CommandNotFound(t *testing.T) {
	e := NewExecutor(&Options{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})

	err := e.Run(context.Background(), "codegen-no-such-command-xyz")
	require.Error(t, err)
	assert.ErrorIs(t, err, exec.ErrNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestExecutor_RunWithSpinnerWithoutTerminal(t *testing.T) {
	var stdout bytes.Buffer
	e := newMocked(&Options{Stdout: &stdout, Stderr: &bytes.Buffer{}, Spinner: true})

	require.NoError(t, e.RunWithSpinner(context.Background(), "Echoing", "echo", "ok"))
	assert.Equal(t, "ok\n", stdout.String(), "output passes through when there is no terminal")
}

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		line    string
		want    []string
		wantErr bool
	}{
		{line: "npx prettier --write", want: []string{"npx", "prettier", "--write"}},
		{line: "  eslint\t--fix  ", want: []string{"eslint", "--fix"}},
		{line: `sh -c "echo 'hi there'"`, want: []string{"sh", "-c", "echo 'hi there'"}},
		{line: `printf '%s\n' x`, want: []string{"printf", `%s\n`, "x"}},
		{line: `a\ b c`, want: []string{"a b", "c"}},
		{line: `echo ""`, want: []string{"echo", ""}},
		{line: "", want: nil},
		{line: `echo "open`, wantErr: true},
		{line: `echo \`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := SplitCommand(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandHook(t *testing.T) {
	files := []string{"src/a.ts", "src/b.ts"}

	name, args, err := ExpandHook("npx prettier --write {files}", files)
	require.NoError(t, err)
	assert.Equal(t, "npx", name)
	assert.Equal(t, []string{"prettier", "--write", "src/a.ts", "src/b.ts"}, args)

	_, args, err = ExpandHook(`sh -c "eslint {files}"`, files)
	require.NoError(t, err)
	assert.Equal(t, []string{"-c", "eslint src/a.ts src/b.ts"}, args)

	_, args, err = ExpandHook("npm run lint", files)
	require.NoError(t, err)
	assert.Equal(t, []string{"run", "lint"}, args)

	_, _, err = ExpandHook("   ", files)
	assert.ErrorIs(t, err, ErrEmptyHook)
}

func TestRunHooks(t *testing.T) {
	var stdout bytes.Buffer
	e := newMocked(&Options{Stdout: &stdout, Stderr: &bytes.Buffer{}})
	files := []string{"a.ts", "b.ts"}

	require.NoError(t, e.RunHooks(context.Background(), []string{"echo fmt {files}", "echo done"}, files))
	assert.Equal(t, "fmt a.ts b.ts\ndone\n", stdout.String())

	stdout.Reset()
	err := e.RunHooks(context.Background(), []string{"error", "echo unreachable"}, files)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `hook "error"`)
	assert.Empty(t, stdout.String())

	assert.NoError(t, e.RunHooks(context.Background(), []string{"error"}, nil), "no files, no hooks")
}

func TestSpinnerModel(t *testing.T) {
	m := newSpinnerModel("Formatting")
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Formatting...")

	next, cmd := m.Update(spinnerDoneMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, "✔ Formatting\n", next.View())

	next, _ = m.Update(spinnerDoneMsg{err: assert.AnError})
	assert.Equal(t, "✘ Formatting\n", next.View())
}
