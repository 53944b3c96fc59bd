package remote

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pilgrimtabby/gdrive-stash/pkg/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records invocations and replies from a script.
type fakeRunner struct {
	calls [][]string
	reply func(args []string) (*command.Result, error)
}

func (f *fakeRunner) Run(_ context.Context, args ...string) (*command.Result, error) {
	f.calls = append(f.calls, args)
	if f.reply == nil {
		return &command.Result{}, nil
	}
	return f.reply(args)
}

func exitFailure(args []string) (*command.Result, error) {
	result := &command.Result{Stderr: "Error: File not found", ExitCode: 1}
	return result, &command.ExitError{Program: "gdrive", Args: args, Result: result, Err: errors.New("exit status 1")}
}

func newTestGdrive(r *fakeRunner) *Gdrive {
	return NewGdrive(r, GdriveOptions{Location: time.UTC})
}

func TestGdriveListArgs(t *testing.T) {
	r := &fakeRunner{reply: func([]string) (*command.Result, error) {
		return &command.Result{Stdout: record("id1", "a.txt", "regular", "10 B", "2024-05-01 10:00:00") + "\n"}, nil
	}}
	g := newTestGdrive(r)

	entries, err := g.List(context.Background(), RootID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.txt", entries[0].Name)

	_, err = g.List(context.Background(), "parent1")
	require.NoError(t, err)

	require.Len(t, r.calls, 2)
	assert.Equal(t, []string{
		"files", "list", "--skip-header", "--full-name",
		"--field-separator", DefaultFieldSeparator,
		"--order-by", "name", "--max", "1000",
	}, r.calls[0])
	assert.Equal(t, []string{"--parent", "parent1"}, r.calls[1][len(r.calls[1])-2:])
}

func TestGdriveListUnknownParent(t *testing.T) {
	g := newTestGdrive(&fakeRunner{reply: exitFailure})

	_, err := g.List(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteDirectoryNotFound)
	assert.Contains(t, err.Error(), "missing")
}

func TestGdriveListUnstartableToolIsToolFailure(t *testing.T) {
	script := filepath.Join(t.TempDir(), "gdrive")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nexit 0\n"), 0o755))
	runner, err := command.New(script)
	require.NoError(t, err)
	require.NoError(t, os.Remove(script))

	_, err = NewGdrive(runner, GdriveOptions{}).List(context.Background(), "abc")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExternalTool)
	assert.NotErrorIs(t, err, ErrRemoteDirectoryNotFound)
}

func TestGdriveListInterruptedIsToolFailure(t *testing.T) {
	runner, err := command.New("sh")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewGdrive(runner, GdriveOptions{}).List(ctx, "abc")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExternalTool)
	assert.NotErrorIs(t, err, ErrRemoteDirectoryNotFound)
}

func TestGdriveListRootFailure(t *testing.T) {
	g := newTestGdrive(&fakeRunner{reply: exitFailure})

	_, err := g.List(context.Background(), RootID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExternalTool)
	assert.NotErrorIs(t, err, ErrRemoteDirectoryNotFound)
}

func TestGdriveListContextFailureIsToolFailure(t *testing.T) {
	g := newTestGdrive(&fakeRunner{reply: func([]string) (*command.Result, error) {
		return nil, context.Canceled
	}})

	_, err := g.List(context.Background(), "parent1")
	assert.ErrorIs(t, err, ErrExternalTool)
}

func TestGdriveListMalformedOutput(t *testing.T) {
	g := newTestGdrive(&fakeRunner{reply: func([]string) (*command.Result, error) {
		return &command.Result{Stdout: "Id Name Type Size Created\n"}, nil
	}})

	_, err := g.List(context.Background(), RootID)
	assert.ErrorIs(t, err, ErrExternalTool)
}

func TestGdriveMkdir(t *testing.T) {
	r := &fakeRunner{reply: func([]string) (*command.Result, error) {
		return &command.Result{Stdout: "newid\n"}, nil
	}}
	g := newTestGdrive(r)

	id, err := g.Mkdir(context.Background(), RootID, "backups")
	require.NoError(t, err)
	assert.Equal(t, "newid", id)

	_, err = g.Mkdir(context.Background(), "p1", "sub dir")
	require.NoError(t, err)

	assert.Equal(t, []string{"files", "mkdir", "--print-only-id", "backups"}, r.calls[0])
	assert.Equal(t, []string{"files", "mkdir", "--print-only-id", "--parent", "p1", "sub dir"}, r.calls[1])
}

func TestGdriveMkdirUnexpectedOutput(t *testing.T) {
	for _, out := range []string{"", "Created directory foo with id 123\n"} {
		g := newTestGdrive(&fakeRunner{reply: func([]string) (*command.Result, error) {
			return &command.Result{Stdout: out}, nil
		}})
		_, err := g.Mkdir(context.Background(), RootID, "foo")
		assert.ErrorIs(t, err, ErrExternalTool)
	}
}

func TestGdriveUploadAndDelete(t *testing.T) {
	r := &fakeRunner{}
	g := newTestGdrive(r)

	require.NoError(t, g.Upload(context.Background(), RootID, "/src/a.txt"))
	require.NoError(t, g.Upload(context.Background(), "p1", "/src/b.txt"))
	require.NoError(t, g.Delete(context.Background(), "id1"))

	assert.Equal(t, [][]string{
		{"files", "upload", "/src/a.txt"},
		{"files", "upload", "--parent", "p1", "/src/b.txt"},
		{"files", "delete", "id1"},
	}, r.calls)
}

func TestGdriveMutationFailures(t *testing.T) {
	g := newTestGdrive(&fakeRunner{reply: exitFailure})

	assert.ErrorIs(t, g.Upload(context.Background(), "p1", "/src/a.txt"), ErrExternalTool)
	assert.ErrorIs(t, g.Delete(context.Background(), "id1"), ErrExternalTool)
	_, err := g.Mkdir(context.Background(), "p1", "x")
	assert.ErrorIs(t, err, ErrExternalTool)
}

func TestNewGdriveDefaults(t *testing.T) {
	g := NewGdrive(&fakeRunner{}, GdriveOptions{})
	assert.Equal(t, DefaultFieldSeparator, g.opts.FieldSeparator)
	assert.Equal(t, DefaultListMax, g.opts.ListMax)
	assert.Equal(t, time.Local, g.opts.Location)
}
