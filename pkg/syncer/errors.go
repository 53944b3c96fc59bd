// pkg/syncer/errors.go
package syncer

import "errors"

var (
	// ErrLocalDirectoryNotFound is returned when a local path is missing or
	// is not a directory.
	ErrLocalDirectoryNotFound = errors.New("local directory not found")

	// ErrPathSegmentNotFound is returned when a segment of the destination
	// path does not exist and missing directories may not be created.
	ErrPathSegmentNotFound = errors.New("destination path segment not found")
)
