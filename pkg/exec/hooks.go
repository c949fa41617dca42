package exec

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// FilesPlaceholder expands to the generated file paths.
const FilesPlaceholder = "{files}"

// ErrEmptyHook is returned for a hook with no command.
var ErrEmptyHook = errors.New("empty hook command")

// SplitCommand splits a command line into words. Single and double quotes
// group words; a backslash escapes the next character outside single
// quotes.
func SplitCommand(line string) ([]string, error) {
	var (
		words   []string
		cur     strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)
	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inWord = true
		case r == ' ' || r == '\t' || r == '\n':
			if inWord {
				words = append(words, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote in %q", quote, line)
	}
	if escaped {
		return nil, fmt.Errorf("trailing backslash in %q", line)
	}
	if inWord {
		words = append(words, cur.String())
	}
	return words, nil
}

// ExpandHook turns a hook into a command and its arguments. A word equal to
// {files} becomes one argument per file; inside a longer word it is
// replaced by the space-joined list. Without a placeholder the files are
// not passed.
func ExpandHook(hook string, files []string) (string, []string, error) {
	words, err := SplitCommand(hook)
	if err != nil {
		return "", nil, err
	}
	if len(words) == 0 {
		return "", nil, ErrEmptyHook
	}

	var args []string
	for _, w := range words[1:] {
		switch {
		case w == FilesPlaceholder:
			args = append(args, files...)
		case strings.Contains(w, FilesPlaceholder):
			args = append(args, strings.ReplaceAll(w, FilesPlaceholder, strings.Join(files, " ")))
		default:
			args = append(args, w)
		}
	}
	return words[0], args, nil
}

// RunHooks runs each hook in order and stops at the first failure. Hooks
// are skipped when there are no files.
func (e *Executor) RunHooks(ctx context.Context, hooks []string, files []string) error {
	if len(files) == 0 {
		return nil
	}
	for _, hook := range hooks {
		name, args, err := ExpandHook(hook, files)
		if err != nil {
			return fmt.Errorf("hook %q: %w", hook, err)
		}
		if err := e.RunWithSpinner(ctx, "Running "+name, name, args...); err != nil {
			return fmt.Errorf("hook %q: %w", hook, err)
		}
	}
	return nil
}
