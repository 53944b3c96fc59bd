package syncer

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/pilgrimtabby/gdrive-stash/pkg/fileinfo"
	"github.com/pilgrimtabby/gdrive-stash/pkg/remote"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

var (
	t0 = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Hour)
	t2 = t0.Add(2 * time.Hour)
	t3 = t0.Add(3 * time.Hour)
)

// call is one operation received by fakeRemote.
type call struct {
	Op     string // list, mkdir, upload, delete
	Parent string
	Arg    string // name for mkdir, path for upload, id for delete
}

func (c call) String() string {
	return fmt.Sprintf("%s(%q, %q)", c.Op, c.Parent, c.Arg)
}

// fakeRemote is an in-memory remote store that records every call.
type fakeRemote struct {
	dirs   map[string][]remote.Entry // children by parent id
	calls  []call
	nextID int
	now    time.Time // creation time given to uploads
	failOn map[call]error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		dirs:   map[string][]remote.Entry{remote.RootID: {}},
		now:    t3,
		failOn: map[call]error{},
	}
}

func (f *fakeRemote) record(c call) error {
	f.calls = append(f.calls, c)
	return f.failOn[c]
}

func (f *fakeRemote) newID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

// addDir seeds a directory under parent and returns its id.
func (f *fakeRemote) addDir(parent, name string) string {
	id := f.newID("dir")
	f.dirs[parent] = append(f.dirs[parent], remote.Entry{ID: id, Name: name, Kind: fileinfo.KindDirectory, Size: -1, CreatedAt: t0})
	f.dirs[id] = []remote.Entry{}
	return id
}

// addFile seeds a file under parent and returns its id.
func (f *fakeRemote) addFile(parent, name string, created time.Time) string {
	id := f.newID("file")
	f.dirs[parent] = append(f.dirs[parent], remote.Entry{ID: id, Name: name, Kind: fileinfo.KindFile, Size: 10, CreatedAt: created})
	return id
}

func (f *fakeRemote) List(_ context.Context, parentID string) ([]remote.Entry, error) {
	if err := f.record(call{Op: "list", Parent: parentID}); err != nil {
		return nil, err
	}
	entries, ok := f.dirs[parentID]
	if !ok {
		return nil, fmt.Errorf("%w: directory with id %s", remote.ErrRemoteDirectoryNotFound, parentID)
	}
	return append([]remote.Entry(nil), entries...), nil
}

func (f *fakeRemote) Mkdir(_ context.Context, parentID, name string) (string, error) {
	if err := f.record(call{Op: "mkdir", Parent: parentID, Arg: name}); err != nil {
		return "", err
	}
	return f.addDir(parentID, name), nil
}

func (f *fakeRemote) Upload(_ context.Context, parentID, localPath string) error {
	if err := f.record(call{Op: "upload", Parent: parentID, Arg: localPath}); err != nil {
		return err
	}
	f.addFile(parentID, filepath.Base(localPath), f.now)
	return nil
}

func (f *fakeRemote) Delete(_ context.Context, id string) error {
	if err := f.record(call{Op: "delete", Arg: id}); err != nil {
		return err
	}
	for parent, entries := range f.dirs {
		for i, e := range entries {
			if e.ID == id {
				f.dirs[parent] = append(entries[:i:i], entries[i+1:]...)
				return nil
			}
		}
	}
	return fmt.Errorf("%w: delete of unknown id %s", remote.ErrExternalTool, id)
}

// mutations returns every recorded call except listings.
func (f *fakeRemote) mutations() []call {
	var out []call
	for _, c := range f.calls {
		if c.Op != "list" {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeRemote) reset() {
	f.calls = nil
}

// writeFile creates a local file with the given modification time.
func writeFile(t require.TestingT, fsys afero.Fs, path string, mod time.Time) {
	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fsys, path, []byte("content of "+path), 0o644))
	require.NoError(t, fsys.Chtimes(path, mod, mod))
}
