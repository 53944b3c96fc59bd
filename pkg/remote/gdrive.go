// pkg/remote/gdrive.go
package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/pilgrimtabby/gdrive-stash/pkg/command"
)

// DefaultListMax is passed as --max to listing calls. gdrive only returns 30
// entries per listing unless told otherwise.
const DefaultListMax = 1000

// GdriveOptions configures a Gdrive client.
type GdriveOptions struct {
	FieldSeparator string         // Separator requested from "files list"
	Location       *time.Location // Zone of the created column
	ListMax        int            // Maximum entries per listing
}

// DefaultGdriveOptions returns the options used by the command line tool.
func DefaultGdriveOptions() GdriveOptions {
	return GdriveOptions{
		FieldSeparator: DefaultFieldSeparator,
		Location:       time.Local,
		ListMax:        DefaultListMax,
	}
}

// Gdrive implements Client on top of the gdrive command line tool.
type Gdrive struct {
	runner command.Runner
	opts   GdriveOptions
}

// NewGdrive creates a client issuing gdrive commands through runner.
func NewGdrive(runner command.Runner, opts GdriveOptions) *Gdrive {
	defaults := DefaultGdriveOptions()
	if opts.FieldSeparator == "" {
		opts.FieldSeparator = defaults.FieldSeparator
	}
	if opts.Location == nil {
		opts.Location = defaults.Location
	}
	if opts.ListMax <= 0 {
		opts.ListMax = defaults.ListMax
	}
	return &Gdrive{runner: runner, opts: opts}
}

// List implements Client.
func (g *Gdrive) List(ctx context.Context, parentID string) ([]Entry, error) {
	args := []string{
		"files", "list",
		"--skip-header",
		"--full-name",
		"--field-separator", g.opts.FieldSeparator,
		"--order-by", "name",
		"--max", strconv.Itoa(g.opts.ListMax),
	}
	args = withParent(args, parentID)

	result, err := g.runner.Run(ctx, args...)
	if err != nil {
		if parentID != RootID && isExit(err) {
			return nil, fmt.Errorf("%w: directory with id %s: %v", ErrRemoteDirectoryNotFound, parentID, err)
		}
		return nil, fmt.Errorf("%w: listing %s: %v", ErrExternalTool, describeParent(parentID), err)
	}

	entries, err := ParseListing(result.Stdout, g.opts.FieldSeparator, g.opts.Location)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", describeParent(parentID), err)
	}
	slog.Debug("listed remote directory", "parent", describeParent(parentID), "entries", len(entries))
	if len(entries) >= g.opts.ListMax {
		slog.Warn("remote listing reached --list-max and may be truncated",
			"parent", describeParent(parentID), "max", g.opts.ListMax)
	}
	return entries, nil
}

// Mkdir implements Client.
func (g *Gdrive) Mkdir(ctx context.Context, parentID, name string) (string, error) {
	args := withParent([]string{"files", "mkdir", "--print-only-id"}, parentID)
	args = append(args, name)

	result, err := g.runner.Run(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("%w: creating directory %q in %s: %v", ErrExternalTool, name, describeParent(parentID), err)
	}

	id := strings.TrimSpace(result.Stdout)
	if id == "" || strings.ContainsAny(id, " \n") {
		return "", fmt.Errorf("%w: unexpected mkdir output for %q: %q", ErrExternalTool, name, result.Stdout)
	}
	return id, nil
}

// Upload implements Client.
func (g *Gdrive) Upload(ctx context.Context, parentID, localPath string) error {
	args := withParent([]string{"files", "upload"}, parentID)
	args = append(args, localPath)

	if _, err := g.runner.Run(ctx, args...); err != nil {
		return fmt.Errorf("%w: uploading %s to %s: %v", ErrExternalTool, localPath, describeParent(parentID), err)
	}
	return nil
}

// Delete implements Client.
func (g *Gdrive) Delete(ctx context.Context, id string) error {
	if _, err := g.runner.Run(ctx, "files", "delete", id); err != nil {
		return fmt.Errorf("%w: deleting %s: %v", ErrExternalTool, id, err)
	}
	return nil
}

func withParent(args []string, parentID string) []string {
	if parentID != RootID {
		args = append(args, "--parent", parentID)
	}
	return args
}

// isExit reports whether the tool ran and exited with a failure status.
func isExit(err error) bool {
	var exitErr *command.ExitError
	return errors.As(err, &exitErr) && exitErr.Result != nil && exitErr.Result.ExitCode > 0
}
