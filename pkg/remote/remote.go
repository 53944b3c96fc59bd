// pkg/remote/remote.go

// Package remote talks to the remote file store through an external tool.
package remote

import (
	"context"
	"errors"
	"time"

	"github.com/pilgrimtabby/gdrive-stash/pkg/fileinfo"
)

// RootID denotes the root directory of the remote store.
const RootID = ""

var (
	// ErrRemoteDirectoryNotFound is returned when a directory id does not
	// exist on the remote store.
	ErrRemoteDirectoryNotFound = errors.New("remote directory not found")

	// ErrExternalTool is returned for any other failure of the external tool:
	// non-zero exit, unexpected output, or a missing executable.
	ErrExternalTool = errors.New("external tool failure")
)

// Entry is one child of a remote directory, as reported by a listing.
type Entry struct {
	ID        string
	Name      string
	Kind      fileinfo.Kind
	Size      int64 // -1 when the tool reports no size
	CreatedAt time.Time
}

// Client is the set of remote operations the syncer relies on.
type Client interface {
	// List returns the immediate children of the directory parentID,
	// ordered by name. RootID lists the root.
	List(ctx context.Context, parentID string) ([]Entry, error)

	// Mkdir creates a directory called name under parentID and returns its id.
	Mkdir(ctx context.Context, parentID, name string) (string, error)

	// Upload copies the local file at localPath into parentID.
	Upload(ctx context.Context, parentID, localPath string) error

	// Delete removes the entry with the given id.
	Delete(ctx context.Context, id string) error
}

func describeParent(parentID string) string {
	if parentID == RootID {
		return "root"
	}
	return parentID
}
