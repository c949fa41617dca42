package transformer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/generator"
)

// FileOp is a generator.Operation that transforms a file in place, so
// transformations can run in the same batches as generated files.
type FileOp struct {
	Path       string
	Operations []Operation
	// AllowPartial writes the file even when some operations fail.
	AllowPartial bool

	result *Result
}

var _ generator.Operation = (*FileOp)(nil)

// Validate checks that the file exists and every operation is well formed.
// force has no effect: the file is expected to exist.
func (op *FileOp) Validate(ctx context.Context, force bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(op.Path)
	if err != nil {
		return fmt.Errorf("file not found: %s: %w", op.Path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", op.Path)
	}
	if err := Validate(op.Operations); err != nil {
		return fmt.Errorf("%s: %w", op.Path, err)
	}
	return nil
}

// Plan transforms the file without writing it. The result is kept for
// Execute.
func (op *FileOp) Plan(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := TransformFile(op.Path, op.Operations)
	if err != nil {
		return nil, err
	}
	op.result = res
	return res, nil
}

// Execute transforms and rewrites the file. Unless AllowPartial is set the
// file is left untouched when any operation fails.
func (op *FileOp) Execute(ctx context.Context) error {
	res := op.result
	if res == nil {
		var err error
		if res, err = op.Plan(ctx); err != nil {
			return err
		}
	}
	if !res.Success && !op.AllowPartial {
		return fmt.Errorf("transforming %s: %w", op.Path, failureError(res.FailedOperations))
	}

	info, err := os.Stat(op.Path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", op.Path, err)
	}
	if err := os.WriteFile(op.Path, []byte(res.Source), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", op.Path, err)
	}
	return nil
}

func (op *FileOp) Description() string {
	return fmt.Sprintf("Modify %s (%d changes)", op.Path, len(op.Operations))
}

// Describe lists the operations one per line.
func (op *FileOp) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Transformations for %s:\n", op.Path)
	for i, o := range op.Operations {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, describe(o))
	}
	return sb.String()
}

func describe(op Operation) string {
	switch op := op.(type) {
	case AddImport:
		return fmt.Sprintf("add import from %q", op.ModuleSpecifier)
	case RemoveImport:
		return fmt.Sprintf("remove import from %q", op.ModuleSpecifier)
	case AddExport:
		return fmt.Sprintf("add export %s", op.Name)
	case AddProperty:
		return fmt.Sprintf("add property %s.%s", op.TargetClass, op.Name)
	case AddMethod:
		return fmt.Sprintf("add method %s.%s", op.TargetClass, op.Name)
	case Rename:
		if op.TargetClass != "" {
			return fmt.Sprintf("rename %s.%s to %s", op.TargetClass, op.OldName, op.NewName)
		}
		return fmt.Sprintf("rename %s to %s", op.OldName, op.NewName)
	case nil:
		return "<nil>"
	default:
		return op.Kind()
	}
}

func failureError(failures []Failure) error {
	errs := make([]error, 0, len(failures))
	for _, f := range failures {
		errs = append(errs, fmt.Errorf("operation %d (%s): %w", f.Index, f.Kind, f.Err))
	}
	return errors.Join(errs...)
}
