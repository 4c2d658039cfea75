// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fileutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	err := WriteAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello")
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assertOnlyFile(t, dir, "out.txt")
}

func TestWriteAtomic_FailureLeavesDestination(t *testing.T) {
	tests := []struct {
		name     string
		existing bool
	}{
		{name: "no existing file"},
		{name: "existing file kept", existing: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "out.xlsx")
			if tt.existing {
				require.NoError(t, os.WriteFile(path, []byte("previous"), 0o644))
			}

			boom := errors.New("boom")
			err := WriteAtomic(path, func(w io.Writer) error {
				io.WriteString(w, "partial")
				return boom
			})
			require.ErrorIs(t, err, boom)

			if tt.existing {
				data, err := os.ReadFile(path)
				require.NoError(t, err)
				assert.Equal(t, "previous", string(data))
				assertOnlyFile(t, dir, "out.xlsx")
			} else {
				_, err := os.Stat(path)
				assert.True(t, os.IsNotExist(err))
				assertOnlyFile(t, dir, "")
			}
		})
	}
}

func TestReplaceAtomic_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "out.db")
	err := ReplaceAtomic(path, func(string) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating temporary file")
}

// assertOnlyFile checks that dir holds exactly the named file, or nothing when name is "".
func assertOnlyFile(t *testing.T, dir, name string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if name == "" {
		assert.Empty(t, names)
		return
	}
	assert.Equal(t, []string{name}, names)
}
