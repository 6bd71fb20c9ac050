package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureLayout creates the given directories and the given files, along with
// their parent directories. Existing files are left untouched; missing ones
// are created empty. A file that cannot be created does not stop the others;
// every failure is joined into the returned error.
func EnsureLayout(dirs []string, files []string) error {
	for _, f := range files {
		if f == "" {
			continue
		}
		dirs = append(dirs, filepath.Dir(f))
	}

	for _, d := range dirs {
		if d == "" {
			continue
		}
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", d, err)
		}
	}

	var errs []error
	for _, f := range files {
		if f == "" {
			continue
		}
		fh, err := os.OpenFile(f, os.O_WRONLY|os.O_CREATE, 0o644)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to create file %s: %w", f, err))
			continue
		}
		if err := fh.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to create file %s: %w", f, err))
		}
	}

	return errors.Join(errs...)
}
