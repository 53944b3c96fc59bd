// pkg/fileinfo/fileinfo.go
package fileinfo

import (
	"io/fs"
	"time"
)

// Kind classifies an entry as a directory or a file. Anything that is not a
// directory (regular files, symlink targets, remote documents) is a file.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// KindOf returns the Kind described by the given mode.
func KindOf(mode fs.FileMode) Kind {
	if mode.IsDir() {
		return KindDirectory
	}
	return KindFile
}

// FileInfo holds metadata about a local file or directory relevant for syncing.
type FileInfo struct {
	Name    string    // Base name, compared case-sensitively
	Path    string    // Path on the local filesystem
	Kind    Kind      // Directory or file
	Size    int64     // File size in bytes
	ModTime time.Time // Modification time
}

// New creates a FileInfo struct from fs.FileInfo and its path.
func New(path string, info fs.FileInfo) FileInfo {
	return FileInfo{
		Name:    info.Name(),
		Path:    path,
		Kind:    KindOf(info.Mode()),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}

// IsDir reports whether the entry is a directory.
func (fi FileInfo) IsDir() bool {
	return fi.Kind == KindDirectory
}

// NewerThan reports whether the file was modified strictly after t.
// Both instants are compared in UTC at second precision, since the remote
// side only reports whole seconds.
func (fi FileInfo) NewerThan(t time.Time) bool {
	local := fi.ModTime.UTC().Truncate(time.Second)
	return local.After(t.UTC().Truncate(time.Second))
}
