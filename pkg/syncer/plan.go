// pkg/syncer/plan.go
package syncer

import (
	"github.com/pilgrimtabby/gdrive-stash/pkg/fileinfo"
	"github.com/pilgrimtabby/gdrive-stash/pkg/remote"
)

// SyncActionType defines the type of action to be taken for a local entry.
type SyncActionType int

const (
	None      SyncActionType = iota // File is not newer than its remote copy
	Add                             // Upload a file with no remote copy
	Update                          // Delete the remote copy, then upload
	CreateDir                       // Create a missing remote directory, then descend
	Descend                         // Descend into an existing remote directory
	SkipDir                         // Directory left alone (not recursive)
)

func (t SyncActionType) String() string {
	switch t {
	case None:
		return "None"
	case Add:
		return "Add"
	case Update:
		return "Update"
	case CreateDir:
		return "CreateDir"
	case Descend:
		return "Descend"
	case SkipDir:
		return "SkipDir"
	default:
		return "Unknown"
	}
}

// SyncAction is the decision taken for one local entry.
type SyncAction struct {
	Type     SyncActionType
	Local    fileinfo.FileInfo
	Remote   *remote.Entry // Matching remote entry, nil when there is none
	ParentID string        // Remote directory the entry belongs in
}

// planEntry decides what to do with a local entry given its remote match.
// Change detection is timestamp-only: the remote creation time is reset on
// every upload, so a local file modified after it has changed since the last
// sync.
func planEntry(local fileinfo.FileInfo, match *remote.Entry, parentID string, recursive bool) SyncAction {
	action := SyncAction{Local: local, Remote: match, ParentID: parentID}

	switch local.Kind {
	case fileinfo.KindDirectory:
		switch {
		case !recursive:
			action.Type = SkipDir
		case match == nil:
			action.Type = CreateDir
		default:
			action.Type = Descend
		}
	case fileinfo.KindFile:
		switch {
		case match == nil:
			action.Type = Add
		case local.NewerThan(match.CreatedAt):
			action.Type = Update
		default:
			action.Type = None
		}
	}
	return action
}
