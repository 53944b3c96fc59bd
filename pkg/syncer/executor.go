// pkg/syncer/executor.go
package syncer

import (
	"context"
	"fmt"
	"log/slog"
)

// apply performs the remote calls for one action. Calls are issued one at a
// time; the first failure aborts the run and nothing already done is undone.
func (s *Syncer) apply(ctx context.Context, act SyncAction) error {
	switch act.Type {
	case Add:
		slog.Info("uploading new file", "path", act.Local.Path)
		if err := s.client.Upload(ctx, act.ParentID, act.Local.Path); err != nil {
			return err
		}
		s.tracker.Summary.Uploaded++
		s.tracker.Summary.BytesSent += act.Local.Size

	case Update:
		slog.Info("replacing modified file", "path", act.Local.Path, "remote_id", act.Remote.ID,
			"modified", act.Local.ModTime.UTC(), "uploaded", act.Remote.CreatedAt)
		// Delete first: the new upload must get a fresh creation time.
		if err := s.client.Delete(ctx, act.Remote.ID); err != nil {
			return err
		}
		if err := s.client.Upload(ctx, act.ParentID, act.Local.Path); err != nil {
			return err
		}
		s.tracker.Summary.Replaced++
		s.tracker.Summary.BytesSent += act.Local.Size

	case None:
		slog.Debug("unchanged", "path", act.Local.Path)
		s.tracker.Summary.Unchanged++

	case SkipDir:
		slog.Debug("skipping directory (not recursive)", "path", act.Local.Path)
		s.tracker.Summary.DirsSkipped++

	case CreateDir:
		slog.Info("creating remote directory", "path", act.Local.Path)
		id, err := s.client.Mkdir(ctx, act.ParentID, act.Local.Name)
		if err != nil {
			return err
		}
		s.tracker.Summary.DirsCreated++
		return s.syncDir(ctx, act.Local.Path, id, true)

	case Descend:
		return s.syncDir(ctx, act.Local.Path, act.Remote.ID, true)

	default:
		return fmt.Errorf("unknown sync action %s for %s", act.Type, act.Local.Path)
	}
	return nil
}
