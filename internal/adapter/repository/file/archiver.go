package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

// Archiver moves processed input files into the archive directory,
// replacing any earlier file with the same name.
type Archiver struct {
	dir     string
	retrier *Retrier
}

// NewArchiver creates a new Archiver.
func NewArchiver(dir string, retrier *Retrier) *Archiver {
	return &Archiver{dir: dir, retrier: retrier}
}

// Archive moves path into the archive directory.
func (a *Archiver) Archive(ctx context.Context, path string) error {
	target := filepath.Join(a.dir, filepath.Base(path))

	err := a.retrier.Retry(ctx, func() error {
		return move(path, target)
	})
	if err != nil {
		return fmt.Errorf("failed to archive %s: %w", path, err)
	}

	return nil
}

func move(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}

	// Source and archive are on different filesystems.
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
