// pkg/remote/dryrun.go
package remote

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

const dryRunPrefix = "dry-run:"

// DryRun wraps a Client so that nothing on the remote store changes. Listings
// are still read from the wrapped client; directories that would have been
// created get placeholder ids whose listing is empty.
type DryRun struct {
	inner Client
	next  int
}

// NewDryRun wraps inner.
func NewDryRun(inner Client) *DryRun {
	return &DryRun{inner: inner}
}

// List implements Client.
func (d *DryRun) List(ctx context.Context, parentID string) ([]Entry, error) {
	if IsPlaceholder(parentID) {
		return nil, nil
	}
	return d.inner.List(ctx, parentID)
}

// Mkdir implements Client.
func (d *DryRun) Mkdir(_ context.Context, parentID, name string) (string, error) {
	d.next++
	id := fmt.Sprintf("%s%d", dryRunPrefix, d.next)
	slog.Info("[dry-run] mkdir", "parent", describeParent(parentID), "name", name, "id", id)
	return id, nil
}

// Upload implements Client.
func (d *DryRun) Upload(_ context.Context, parentID, localPath string) error {
	slog.Info("[dry-run] upload", "parent", describeParent(parentID), "path", localPath)
	return nil
}

// Delete implements Client.
func (d *DryRun) Delete(_ context.Context, id string) error {
	slog.Info("[dry-run] delete", "id", id)
	return nil
}

// IsPlaceholder reports whether id was handed out by a DryRun client.
func IsPlaceholder(id string) bool {
	return strings.HasPrefix(id, dryRunPrefix)
}
