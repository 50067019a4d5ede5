package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ReplaceDir fills a staging directory next to dir and swaps it in place of
// dir once fill succeeds. If fill or the swap fails, dir keeps its previous
// contents and the staging directory is removed.
func ReplaceDir(dir string, fill func(staging string) error) (err error) {
	dir = filepath.Clean(dir)
	parent, base := filepath.Dir(dir), filepath.Base(dir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return err
	}

	staging, err := os.MkdirTemp(parent, "."+base+".staging-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(staging)
		}
	}()
	if err := os.Chmod(staging, 0o755); err != nil {
		return err
	}
	if err := fill(staging); err != nil {
		return err
	}

	info, statErr := os.Stat(dir)
	switch {
	case errors.Is(statErr, fs.ErrNotExist):
		return os.Rename(staging, dir)
	case statErr != nil:
		return statErr
	case !info.IsDir():
		return fmt.Errorf("%s exists and is not a directory", dir)
	}

	backup := staging + ".previous"
	if err := os.Rename(dir, backup); err != nil {
		return err
	}
	if err := os.Rename(staging, dir); err != nil {
		if restoreErr := os.Rename(backup, dir); restoreErr != nil {
			return errors.Join(err, restoreErr)
		}
		return err
	}
	return os.RemoveAll(backup)
}
