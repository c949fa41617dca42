package generator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Operation is a file system change that can be checked before it is made.
//
// Validate reports whether Execute would succeed. force skips the check for
// an existing target. Execute performs the change and is only called after
// every operation in the batch validated. Description is a one-line summary
// for output, such as "Create src/components/Button.tsx (412 bytes)".
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// FileWriter is an Operation that writes one file. Execute uses it to detect
// conflicts with files already on disk.
type FileWriter interface {
	Operation
	Target() string
	Content() []byte
}

// ErrFileExists is returned by Validate when the target exists and force is
// not set.
var ErrFileExists = fs.ErrExist

// WriteFileOp writes Data to Path, creating parent directories.
// Empty data is allowed; nil data is rejected.
type WriteFileOp struct {
	Path string
	Data []byte
	Mode fs.FileMode // 0644 when zero
}

func (op *WriteFileOp) Target() string  { return op.Path }
func (op *WriteFileOp) Content() []byte { return op.Data }

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if op.Data == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}
	info, err := os.Stat(op.Path)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("%s is a directory", op.Path)
	case err == nil && !force:
		return fmt.Errorf("%s: %w", op.Path, ErrFileExists)
	case err != nil && !os.IsNotExist(err):
		return fmt.Errorf("stat %s: %w", op.Path, err)
	}
	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(op.Path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", op.Path, err)
	}
	mode := op.Mode
	if mode == 0 {
		mode = 0o644
	}
	if err := os.WriteFile(op.Path, op.Data, mode); err != nil {
		return fmt.Errorf("writing %s: %w", op.Path, err)
	}
	return nil
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Create %s (%d bytes)", op.Path, len(op.Data))
}
