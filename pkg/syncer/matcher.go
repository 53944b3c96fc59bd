// pkg/syncer/matcher.go
package syncer

import (
	"github.com/pilgrimtabby/gdrive-stash/pkg/fileinfo"
	"github.com/pilgrimtabby/gdrive-stash/pkg/remote"
)

// findMatch returns the first remote entry with the same name and kind as
// local. Names are compared case-sensitively: the remote store allows
// siblings that differ only in case. A nil result means the entry is new.
func findMatch(local fileinfo.FileInfo, listing []remote.Entry) *remote.Entry {
	return findByName(local.Name, local.Kind, listing)
}

func findByName(name string, kind fileinfo.Kind, listing []remote.Entry) *remote.Entry {
	for i := range listing {
		if listing[i].Name == name && listing[i].Kind == kind {
			return &listing[i]
		}
	}
	return nil
}
