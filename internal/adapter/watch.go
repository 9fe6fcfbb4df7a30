package adapter

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch converts the tree once, then keeps re-transpiling files as they
// change until ctx is cancelled. Newly created subdirectories join the
// watch set. Per-file failures are logged and watching continues.
func Watch(ctx context.Context, t Transpiler, srcRoot, dstRoot string) error {
	if err := Folder(t, srcRoot, dstRoot); err != nil {
		slog.Error("initial conversion finished with errors", "error", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addRecursive(watcher, srcRoot); err != nil {
		return err
	}

	slog.Info("watching", "dir", srcRoot)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}

			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if err := addRecursive(watcher, event.Name); err != nil {
					slog.Error("watch new directory", "dir", event.Name, "error", err)
				}
				continue
			}

			if !isSQL(event.Name) {
				continue
			}
			rel, err := filepath.Rel(srcRoot, event.Name)
			if err != nil {
				continue
			}
			dst := filepath.Join(dstRoot, rel)
			if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
				slog.Error("create destination directory", "error", err)
				continue
			}
			if err := File(t, event.Name, dst); err != nil {
				slog.Error("transpile failed", "src", event.Name, "error", err)
				continue
			}
			slog.Info("transpiled", "src", rel, "dst", dst)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

// addRecursive registers root and every directory below it.
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
