package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits for a burst of events to settle.
const DefaultDebounce = 250 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	Debounce time.Duration // DefaultDebounce when zero
	Sources  SourceOptions // which changed files are reported
}

// Watch reports changed TypeScript sources under target until ctx is done.
// Events are batched: onChange receives the sorted, de-duplicated paths that
// changed during one debounce window. A file target watches its directory
// and only reports that file.
func Watch(ctx context.Context, target string, opts WatchOptions, onChange func(changed []string)) error {
	abs, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}
	root, only := abs, ""
	if !info.IsDir() {
		root, only = filepath.Dir(abs), abs
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	if err := addRecursive(watcher, root, opts.Sources.Walk); err != nil {
		return err
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	pending := map[string]bool{}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path := filepath.Clean(event.Name)
			if event.Has(fsnotify.Create) {
				if st, err := os.Stat(path); err == nil && st.IsDir() {
					_ = addRecursive(watcher, path, opts.Sources.Walk)
					continue
				}
			}
			if only != "" && path != only {
				continue
			}
			if !opts.Sources.accept(path) || ignoredTemp(path) {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			pending[path] = true
			timer.Reset(debounce)
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			slices.Sort(changed)
			pending = map[string]bool{}
			onChange(changed)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching %s: %w", target, werr)
		}
	}
}

func addRecursive(w *fsnotify.Watcher, root string, opts WalkOptions) error {
	return Walk(root, opts, func(path string, d fs.DirEntry) error {
		if !d.IsDir() {
			return nil
		}
		return w.Add(path)
	})
}

// ignoredTemp matches emacs lock files, which keep the source extension.
func ignoredTemp(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".#")
}
