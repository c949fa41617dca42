// Package input provides interactive terminal prompts for the codegen CLI.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Prompter reads answers from in and writes questions to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Stdio returns a Prompter over the process's standard streams.
func Stdio() *Prompter {
	return NewPrompter(os.Stdin, os.Stdout)
}

// Prompt asks the user for text input with an optional default value.
// If the user presses Enter without typing anything, the default is returned.
//
// Example:
//
//	dir := input.Prompt("Components directory", "src/components")
//	// Displays: Components directory (src/components): _
func Prompt(message, defaultValue string) string {
	return Stdio().Prompt(message, defaultValue)
}

// Confirm asks a yes/no question on the standard streams.
func Confirm(message string, defaultYes bool) bool {
	return Stdio().Confirm(message, defaultYes)
}

func (p *Prompter) Prompt(message, defaultValue string) string {
	if defaultValue != "" {
		fmt.Fprint(p.out, promptStyle.Render(message)+" "+
			hintStyle.Render(fmt.Sprintf("(%s)", defaultValue))+": ")
	} else {
		fmt.Fprint(p.out, promptStyle.Render(message)+": ")
	}

	answer, err := p.in.ReadString('\n')
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return defaultValue
	}
	if err != nil && err != io.EOF {
		return defaultValue
	}
	return answer
}

// Confirm returns true if the user answers yes (y/Y/yes/YES). An empty
// answer, or no answer at all, returns defaultYes.
//
// Example:
//
//	if input.Confirm("Overwrite codegen.yaml?", false) {
//	    // User said yes
//	}
//	// Displays: Overwrite codegen.yaml? [y/N]: _
func (p *Prompter) Confirm(message string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprint(p.out, promptStyle.Render(message)+" "+hintStyle.Render(hint)+": ")

	answer, err := p.in.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	if answer == "" || (err != nil && err != io.EOF) {
		return defaultYes
	}
	return answer == "y" || answer == "yes"
}
