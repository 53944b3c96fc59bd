// pkg/syncer/resolver.go
package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pilgrimtabby/gdrive-stash/pkg/fileinfo"
	"github.com/pilgrimtabby/gdrive-stash/pkg/remote"
)

// Resolver turns a slash-delimited destination path into a remote directory id.
type Resolver struct {
	client  remote.Client
	created int
}

// NewResolver creates a Resolver issuing calls through client.
func NewResolver(client remote.Client) *Resolver {
	return &Resolver{client: client}
}

// SplitPath normalizes separators to "/" and returns the non-empty segments
// of p. The root ("", "/", "\") has no segments.
func SplitPath(p string) []string {
	p = strings.ReplaceAll(p, `\`, "/")
	var segments []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// Resolve walks destPath from the remote root and returns the id of its last
// directory. Missing directories are created when createMissing is set;
// otherwise the walk stops with ErrPathSegmentNotFound before anything is
// changed. The root resolves to remote.RootID without any remote call.
func (r *Resolver) Resolve(ctx context.Context, destPath string, createMissing bool) (string, error) {
	r.created = 0
	segments := SplitPath(destPath)
	if len(segments) == 0 {
		return remote.RootID, nil
	}

	currentID := remote.RootID
	listing, err := r.client.List(ctx, currentID)
	if err != nil {
		return "", err
	}

	for i, seg := range segments {
		last := i == len(segments)-1

		if match := findByName(seg, fileinfo.KindDirectory, listing); match != nil {
			currentID = match.ID
			if !last {
				if listing, err = r.client.List(ctx, currentID); err != nil {
					return "", err
				}
			}
			continue
		}

		if !createMissing {
			return "", fmt.Errorf("%w: destination %s is not a directory (case-sensitive), %q is missing; "+
				"use --make-parents to create missing directories", ErrPathSegmentNotFound, destPath, seg)
		}

		newID, err := r.client.Mkdir(ctx, currentID, seg)
		if err != nil {
			return "", err
		}
		slog.Info("created remote directory", "name", seg, "id", newID)
		r.created++
		currentID = newID
		// A new directory has no children.
		listing = nil
	}

	return currentID, nil
}

// Created returns how many directories the last Resolve call created.
func (r *Resolver) Created() int {
	return r.created
}
