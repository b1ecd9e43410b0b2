package report

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/AndreyAkinshin/junitmerge/internal/errors"
)

// File and directory permissions for written reports.
const (
	filePerm = 0644
	dirPerm  = 0755
)

// Write writes text to path. When the parent directory does not exist and
// createDir is set, the directory tree is created and the write retried once;
// otherwise a KindMissingOutputDirectory error is returned. Other write
// failures are returned unchanged.
func Write(path, text string, createDir bool) error {
	err := os.WriteFile(path, []byte(text), filePerm)
	if err == nil {
		return nil
	}
	if !stderrors.Is(err, fs.ErrNotExist) {
		return err
	}

	if !createDir {
		return errors.MissingOutputDirectory(path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return os.WriteFile(path, []byte(text), filePerm)
}
