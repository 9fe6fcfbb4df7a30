package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Folder transpiles every *.sql file under srcRoot into the mirrored
// location under dstRoot, creating destination directories as needed.
// A failing file is logged and skipped so the rest of the tree still
// converts; the failures come back joined into one error.
func Folder(t Transpiler, srcRoot, dstRoot string) error {
	var errs []error

	walkErr := filepath.WalkDir(srcRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSQL(path) {
			return nil
		}

		rel, err := filepath.Rel(srcRoot, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(dstRoot, rel)

		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}

		if err := File(t, path, dst); err != nil {
			slog.Error("skipping file", "src", path, "error", err)
			errs = append(errs, err)
			return nil
		}

		slog.Info("transpiled", "src", rel, "dst", dst)
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("walk %s: %w", srcRoot, walkErr)
	}

	return errors.Join(errs...)
}
