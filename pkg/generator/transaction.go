package generator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Transaction stages file writes and applies them together. If a write
// fails, files written so far are restored to their previous contents, or
// removed if they did not exist.
type Transaction struct {
	staged    []stagedFile
	applied   []backup
	committed bool
}

type stagedFile struct {
	path    string
	content []byte
	mode    os.FileMode
}

type backup struct {
	path    string
	content []byte // nil when the file did not exist
	mode    os.FileMode
}

// NewTransaction creates an empty transaction.
func NewTransaction() *Transaction {
	return &Transaction{}
}

// AddFile stages a write. Nothing touches the disk until Commit.
func (t *Transaction) AddFile(path string, content []byte, mode os.FileMode) {
	if mode == 0 {
		mode = 0o644
	}
	t.staged = append(t.staged, stagedFile{path: path, content: content, mode: mode})
}

// Files returns the staged paths in order.
func (t *Transaction) Files() []string {
	paths := make([]string, len(t.staged))
	for i, f := range t.staged {
		paths[i] = f.path
	}
	return paths
}

// Commit writes every staged file. On failure the files already written are
// rolled back and the write error is returned.
func (t *Transaction) Commit() error {
	if t.committed {
		return fmt.Errorf("transaction already committed")
	}
	for _, f := range t.staged {
		prev, err := snapshot(f.path)
		if err != nil {
			return errors.Join(err, t.Rollback())
		}
		if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
			return errors.Join(fmt.Errorf("creating directory for %s: %w", f.path, err), t.Rollback())
		}
		if err := os.WriteFile(f.path, f.content, f.mode); err != nil {
			return errors.Join(fmt.Errorf("writing %s: %w", f.path, err), t.Rollback())
		}
		t.applied = append(t.applied, prev)
	}
	t.committed = true
	return nil
}

// Rollback undoes the writes of an uncommitted transaction, newest first.
// It is safe to defer.
func (t *Transaction) Rollback() error {
	if t.committed {
		return nil
	}
	var errs []error
	for i := len(t.applied) - 1; i >= 0; i-- {
		b := t.applied[i]
		if b.content == nil {
			if err := os.Remove(b.path); err != nil && !os.IsNotExist(err) {
				errs = append(errs, err)
			}
			continue
		}
		if err := os.WriteFile(b.path, b.content, b.mode); err != nil {
			errs = append(errs, err)
		}
	}
	t.applied = nil
	return errors.Join(errs...)
}

func snapshot(path string) (backup, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return backup{path: path}, nil
	}
	if err != nil {
		return backup{}, fmt.Errorf("stat %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return backup{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if data == nil {
		data = []byte{}
	}
	return backup{path: path, content: data, mode: info.Mode().Perm()}, nil
}
