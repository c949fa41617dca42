// Package output prints styled terminal messages for the codegen CLI.
//
// Styling is done with lipgloss and hidden from callers:
//
//	output.Success("Generated 3 files")
//	output.Info("Next steps:")
//	output.Step("npm test")
//
// Verbose messages only print after SetVerbose(true).
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)

	mu          sync.Mutex
	out         io.Writer = os.Stdout
	verboseMode bool
)

// SetVerbose enables or disables verbose output.
// This should be called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

// SetWriter redirects all output to w and returns the previous writer.
func SetWriter(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

func emit(s string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, s)
}

// Success prints a success message in green.
//
// Example:
//
//	output.Success("Created src/components/Button.tsx")
func Success(msg string) {
	emit(successStyle.Render("✔ " + msg))
}

// Error prints an error message in red.
func Error(msg string) {
	emit(errorStyle.Render("✘ " + msg))
}

// Warn prints a warning in yellow.
func Warn(msg string) {
	emit(warnStyle.Render("! " + msg))
}

// Info prints an informational message in cyan.
func Info(msg string) {
	emit(infoStyle.Render("ℹ " + msg))
}

// Step prints an indented step message in gray.
//
// Example:
//
//	output.Step("npm install zod")
func Step(msg string) {
	emit(stepStyle.Render("   " + msg))
}

// Header prints a bold section title, such as a file name above its report.
func Header(msg string) {
	emit(headerStyle.Render(msg))
}

// Plain prints msg without styling.
func Plain(msg string) {
	emit(msg)
}

// Verbose prints a debug message only if verbose mode is enabled.
func Verbose(msg string) {
	mu.Lock()
	v := verboseMode
	mu.Unlock()
	if v {
		emit(stepStyle.Render("… " + msg))
	}
}

// Severity prints an analyzer finding styled by its severity ("error",
// "warning" or "info").
func Severity(severity, msg string) {
	switch severity {
	case "error":
		Error(msg)
	case "warning":
		Warn(msg)
	default:
		Info(msg)
	}
}
