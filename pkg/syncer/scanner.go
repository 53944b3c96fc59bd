// pkg/syncer/scanner.go
package syncer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pilgrimtabby/gdrive-stash/pkg/fileinfo"
	"github.com/spf13/afero"
)

// scanDirectory lists the immediate children of dirPath, sorted by name.
// Symlinks are followed, so a link to a directory is reported as a directory.
// No file content is read.
func scanDirectory(fsys afero.Fs, dirPath string) ([]fileinfo.FileInfo, error) {
	if err := checkLocalDir(fsys, dirPath); err != nil {
		return nil, err
	}

	children, err := afero.ReadDir(fsys, dirPath)
	if err != nil {
		return nil, fmt.Errorf("could not read directory %s: %w", dirPath, err)
	}

	entries := make([]fileinfo.FileInfo, 0, len(children))
	for _, child := range children {
		childPath := filepath.Join(dirPath, child.Name())

		childInfo := child
		if child.Mode()&os.ModeSymlink != 0 {
			childInfo, err = fsys.Stat(childPath)
			if err != nil {
				return nil, fmt.Errorf("could not stat %s: %w", childPath, err)
			}
		}
		entries = append(entries, fileinfo.New(childPath, childInfo))
	}
	return entries, nil
}

// checkLocalDir fails with ErrLocalDirectoryNotFound unless dirPath is an
// existing directory.
func checkLocalDir(fsys afero.Fs, dirPath string) error {
	info, err := fsys.Stat(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s does not exist", ErrLocalDirectoryNotFound, dirPath)
		}
		return fmt.Errorf("could not stat %s: %w", dirPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrLocalDirectoryNotFound, dirPath)
	}
	return nil
}
