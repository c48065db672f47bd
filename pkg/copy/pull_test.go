package copy

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/containers/docker-cp/pkg/bindings/bindingstest"
	"github.com/containers/docker-cp/pkg/define"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const versionText = "Linux version 6.1.0-18-amd64 (debian-kernel@lists.debian.org)\n"

func newVersionContainer() *bindingstest.FakeContainer {
	ctr := bindingstest.NewFakeContainer("f00dcafe", "mycontainer")
	ctr.AddFile("/proc/version", []byte(versionText), 0o444, 1561398395)
	return ctr
}

func TestPull(t *testing.T) {
	ctr := newVersionContainer()
	dir := t.TempDir()

	require.NoError(t, Pull(context.Background(), ctr, "/proc/version", dir, 4))
	assert.Equal(t, 1, ctr.Closes)

	target := filepath.Join(dir, "version")
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, versionText, string(data))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o444), info.Mode().Perm())
	assert.Equal(t, int64(1561398395), info.ModTime().Unix())

	assert.Equal(t, []bindingstest.Fetch{{Path: "/proc/version", ChunkSize: 4}}, ctr.Fetches)
}

func TestPullDestinationNotADirectory(t *testing.T) {
	ctr := newVersionContainer()
	dir := t.TempDir()

	// A non-existing destination resolves to its parent directory and
	// the file keeps the name reported by the archive.
	require.NoError(t, Pull(context.Background(), ctr, "/proc/version", filepath.Join(dir, "renamed"), define.DefaultBufferLength))

	_, err := os.Stat(filepath.Join(dir, "renamed"))
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile(filepath.Join(dir, "version"))
	require.NoError(t, err)
	assert.Equal(t, versionText, string(data))
}

func TestPullOverwrites(t *testing.T) {
	ctr := newVersionContainer()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "version"), []byte("stale content that is longer than the new one, by quite a bit\n\n\n"), 0o600))

	require.NoError(t, Pull(context.Background(), ctr, "/proc/version", dir, define.DefaultBufferLength))

	data, err := os.ReadFile(filepath.Join(dir, "version"))
	require.NoError(t, err)
	assert.Equal(t, versionText, string(data))
}

func TestPullInvalidDestination(t *testing.T) {
	ctr := newVersionContainer()

	err := Pull(context.Background(), ctr, "/proc/version", "/foo_/bar_", define.DefaultBufferLength)
	require.Error(t, err)
	assert.Equal(t, define.ErrInvalidDestination, err)
	assert.EqualError(t, err, "Invalid output path")
	assert.Empty(t, ctr.Fetches, "nothing must be fetched for an invalid destination")
}

func TestPullFetchErrorPropagates(t *testing.T) {
	ctr := newVersionContainer()
	ctr.FetchErr = define.Kind(define.ErrNoSuchCtr, errors.New("Container not found"))

	err := Pull(context.Background(), ctr, "/proc/version", t.TempDir(), define.DefaultBufferLength)
	require.Error(t, err)
	assert.Same(t, ctr.FetchErr, err)
	assert.EqualError(t, err, "Container not found")
}

func TestPullMissingPath(t *testing.T) {
	err := Pull(context.Background(), newVersionContainer(), "/proc/nope", t.TempDir(), define.DefaultBufferLength)
	require.Error(t, err)
	assert.ErrorIs(t, err, define.ErrNoSuchPath)
}

func TestPullCorruptArchive(t *testing.T) {
	ctr := newVersionContainer()
	ctr.Archives["/proc/version"] = []byte("definitely not a tarball")
	dir := t.TempDir()

	err := Pull(context.Background(), ctr, "/proc/version", dir, define.DefaultBufferLength)
	require.Error(t, err)
	assert.ErrorIs(t, err, define.ErrCorruptArchive)
	assert.Equal(t, 1, ctr.Closes)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing must be written for a corrupt archive")
}

func TestPullDirectorySource(t *testing.T) {
	ctr := newVersionContainer()
	ctr.Archives["/opt/app"] = directoryArchive(t, "app")
	dir := t.TempDir()

	err := Pull(context.Background(), ctr, "/opt/app", dir, define.DefaultBufferLength)
	require.Error(t, err)
	assert.ErrorIs(t, err, define.ErrCorruptArchive)
	assert.Equal(t, 1, ctr.Closes)

	_, err = os.Stat(filepath.Join(dir, "app"))
	assert.True(t, os.IsNotExist(err))
}

func TestPullWriteFailure(t *testing.T) {
	ctr := newVersionContainer()
	dir := t.TempDir()
	// A directory in the way of the destination file cannot be replaced.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "version", "keep"), 0o755))

	err := Pull(context.Background(), ctr, "/proc/version", dir, define.DefaultBufferLength)
	require.Error(t, err)
	assert.ErrorIs(t, err, define.ErrIO)
	assert.Equal(t, 1, ctr.Closes)
}

func TestResolveDestinationDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	for _, tc := range []struct {
		name     string
		input    string
		expected string
	}{
		{"existing directory", dir, dir},
		{"existing file", file, dir},
		{"missing file in existing directory", filepath.Join(dir, "new"), dir},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveDestinationDir(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}

	_, err := ResolveDestinationDir(filepath.Join(dir, "missing", "file"))
	assert.Equal(t, define.ErrInvalidDestination, err)
}

func TestResolveDestinationDirRelative(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	got, err := ResolveDestinationDir(".")
	require.NoError(t, err)
	assert.Equal(t, wd, got)
}
