package input

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrompt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   string
		want  string
	}{
		{"typed answer", "src/ui\n", "src/components", "src/ui"},
		{"enter keeps default", "\n", "src/components", "src/components"},
		{"eof keeps default", "", "src/components", "src/components"},
		{"answer without newline", "lib", "", "lib"},
		{"whitespace trimmed", "  app  \n", "", "app"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)
			assert.Equal(t, tt.want, p.Prompt("Directory", tt.def))
			assert.Contains(t, out.String(), "Directory")
		})
	}
}

func TestPrompt_ShowsDefault(t *testing.T) {
	var out bytes.Buffer
	NewPrompter(strings.NewReader("\n"), &out).Prompt("Name", "Button")
	assert.Contains(t, out.String(), "(Button)")
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input      string
		defaultYes bool
		want       bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", true, false},
		{"nope\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"", true, true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		p := NewPrompter(strings.NewReader(tt.input), &out)
		assert.Equal(t, tt.want, p.Confirm("Continue?", tt.defaultYes), "input %q", tt.input)
	}

	var out bytes.Buffer
	NewPrompter(strings.NewReader("\n"), &out).Confirm("Continue?", true)
	assert.Contains(t, out.String(), "[Y/n]")
}
