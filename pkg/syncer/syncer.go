// pkg/syncer/syncer.go
package syncer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/pilgrimtabby/gdrive-stash/pkg/fileinfo"
	"github.com/pilgrimtabby/gdrive-stash/pkg/ignore"
	"github.com/pilgrimtabby/gdrive-stash/pkg/progress"
	"github.com/pilgrimtabby/gdrive-stash/pkg/remote"
	"github.com/spf13/afero"
)

// Options describes one run.
type Options struct {
	Source          string   // Local directory whose contents are copied
	Destination     string   // Remote path, or remote id when DestinationIsID
	Recursive       bool     // Descend into subdirectories
	MakeParents     bool     // Create missing directories of Destination
	DestinationIsID bool     // Use Destination as an id, skipping path resolution
	DryRun          bool     // Log mutations instead of performing them
	Excludes        []string // Extra ignore patterns
}

// Syncer copies a local directory tree onto the remote store. The remote side
// only grows: local deletions are never propagated.
type Syncer struct {
	opts     Options
	fs       afero.Fs
	client   remote.Client
	resolver *Resolver
	ignore   *ignore.Matcher
	tracker  *progress.Tracker
}

// NewSyncer creates a new Syncer instance. A nil tracker disables progress
// output.
func NewSyncer(client remote.Client, fsys afero.Fs, opts Options, tracker *progress.Tracker) *Syncer {
	if opts.DryRun {
		client = remote.NewDryRun(client)
	}
	if tracker == nil {
		tracker = progress.New(&progress.Options{Enabled: false, Output: io.Discard})
	}
	return &Syncer{
		opts:     opts,
		fs:       fsys,
		client:   client,
		resolver: NewResolver(client),
		tracker:  tracker,
	}
}

// Summary returns the counts collected so far.
func (s *Syncer) Summary() progress.Summary {
	return s.tracker.Summary
}

// Run executes the whole synchronization: validate the source, load ignore
// rules, resolve the destination, then walk the tree.
func (s *Syncer) Run(ctx context.Context) error {
	// The source is checked before any remote call is made.
	if err := checkLocalDir(s.fs, s.opts.Source); err != nil {
		return err
	}

	var err error
	s.ignore, err = ignore.NewMatcher(s.fs, s.opts.Source, s.opts.Excludes)
	if err != nil {
		return fmt.Errorf("failed to load ignore rules: %w", err)
	}
	slog.Debug("ignore rules", "patterns", s.ignore.Patterns())

	destID, err := s.destinationID(ctx)
	s.tracker.Summary.DirsCreated += s.resolver.Created()
	if err != nil {
		return err
	}
	slog.Info("syncing", "source", s.opts.Source, "destination", s.opts.Destination,
		"remote_id", destID, "recursive", s.opts.Recursive)

	if err := s.syncDir(ctx, s.opts.Source, destID, s.opts.Recursive); err != nil {
		return err
	}
	return s.tracker.Finish(s.opts.DryRun)
}

func (s *Syncer) destinationID(ctx context.Context) (string, error) {
	if s.opts.DestinationIsID {
		return strings.TrimSpace(s.opts.Destination), nil
	}
	return s.resolver.Resolve(ctx, s.opts.Destination, s.opts.MakeParents)
}

// syncDir brings the remote directory remoteParentID up to date with the local
// directory localPath. Both listings are taken once, up front; files are
// handled before any subdirectory is descended into.
func (s *Syncer) syncDir(ctx context.Context, localPath, remoteParentID string, recursive bool) error {
	relDir := s.relPath(localPath)
	s.tracker.EnterDir(relDir)

	localEntries, err := scanDirectory(s.fs, localPath)
	if err != nil {
		return err
	}
	listing, err := s.client.List(ctx, remoteParentID)
	if err != nil {
		return err
	}

	var dirs []fileinfo.FileInfo
	for _, local := range localEntries {
		s.tracker.Entry()
		if s.ignore.Matches(filepath.Join(relDir, local.Name), local.IsDir()) {
			slog.Debug("ignoring", "path", local.Path)
			s.tracker.Summary.Ignored++
			continue
		}
		if local.IsDir() {
			dirs = append(dirs, local)
			continue
		}
		if err := s.apply(ctx, planEntry(local, findMatch(local, listing), remoteParentID, recursive)); err != nil {
			return err
		}
	}

	for _, dir := range dirs {
		// Without recursion a directory is not even matched.
		var match *remote.Entry
		if recursive {
			match = findMatch(dir, listing)
		}
		if err := s.apply(ctx, planEntry(dir, match, remoteParentID, recursive)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Syncer) relPath(localPath string) string {
	rel, err := filepath.Rel(s.opts.Source, localPath)
	if err != nil {
		return localPath
	}
	return rel
}
