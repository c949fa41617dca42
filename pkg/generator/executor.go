package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// ExecuteOptions configures execution behavior
type ExecuteOptions struct {
	DryRun bool
	Force  bool
	Writer io.Writer // progress output, os.Stdout when nil

	// Resolver decides what happens to files that already exist. Without
	// one, an existing target fails validation unless Force is set.
	Resolver *Resolver
}

// ExecuteResult lists what Execute did.
type ExecuteResult struct {
	Written   []string
	Skipped   []string
	Unchanged []string
}

// Execute validates every operation and then runs them in order. Nothing
// is written if any operation fails validation or the user cancels.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) (*ExecuteResult, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	res := &ExecuteResult{}

	type step struct {
		op    Operation
		force bool
		skip  string // reason the operation is not run
	}
	steps := make([]step, 0, len(ops))

	for _, op := range ops {
		s := step{op: op, force: opts.Force}
		if fw, ok := op.(FileWriter); ok && !opts.Force {
			existing, err := os.ReadFile(fw.Target())
			switch {
			case err == nil && bytes.Equal(existing, fw.Content()):
				s.skip = "Unchanged"
				res.Unchanged = append(res.Unchanged, fw.Target())
			case err == nil && opts.Resolver != nil:
				decision, err := opts.Resolver.ResolveConflict(fw.Target(), existing, fw.Content())
				if err != nil {
					return res, fmt.Errorf("resolving %s: %w", fw.Target(), err)
				}
				switch decision {
				case Overwrite:
					s.force = true
				case Skip:
					s.skip = "Skip"
					res.Skipped = append(res.Skipped, fw.Target())
				default:
					return res, ErrCancelled
				}
			}
		}
		if s.skip == "" {
			if err := op.Validate(ctx, s.force); err != nil {
				return res, fmt.Errorf("validation failed: %w", err)
			}
		}
		steps = append(steps, s)
	}

	for _, s := range steps {
		if s.skip != "" {
			fmt.Fprintf(opts.Writer, "- %s %s\n", s.skip, describeTarget(s.op))
			continue
		}
		if opts.DryRun {
			fmt.Fprintf(opts.Writer, "✓ [DRY RUN] %s\n", s.op.Description())
			continue
		}
		if err := s.op.Execute(ctx); err != nil {
			return res, fmt.Errorf("execution failed: %w", err)
		}
		if fw, ok := s.op.(FileWriter); ok {
			res.Written = append(res.Written, fw.Target())
		}
		fmt.Fprintf(opts.Writer, "✓ %s\n", s.op.Description())
	}
	return res, nil
}

func describeTarget(op Operation) string {
	if fw, ok := op.(FileWriter); ok {
		return fw.Target()
	}
	return op.Description()
}

// IsConflict reports whether err came from an existing target file.
func IsConflict(err error) bool {
	return errors.Is(err, ErrFileExists)
}
