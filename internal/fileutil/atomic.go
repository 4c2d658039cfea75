// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fileutil writes output files so that a failed run leaves the
// destination untouched.
package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteAtomic streams write's output into a temporary file next to path and
// renames it over path only if write and the close both succeed.
func WriteAtomic(path string, write func(w io.Writer) error) error {
	return ReplaceAtomic(path, func(tmp string) error {
		f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return err
		}
		if err := write(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})
}

// ReplaceAtomic reserves a temporary file next to path, lets fill populate it
// by name, and renames it over path. On any error the temporary file is
// removed and path is left as it was.
func ReplaceAtomic(path string, fill func(tmp string) error) (err error) {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file in %s: %w", dir, err)
	}
	tmp := f.Name()
	f.Close()

	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if err := fill(tmp); err != nil {
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", tmp, path, err)
	}
	return nil
}
