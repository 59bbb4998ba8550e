package fsops_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranaysashank/hpath/pkg/errors"
	"github.com/pranaysashank/hpath/pkg/fsops"
	"github.com/pranaysashank/hpath/pkg/paths"
	"github.com/pranaysashank/hpath/pkg/testutil"
)

func TestCreateRegularFile(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "new")

	require.NoError(t, fsops.CreateRegularFile(paths.MustParse(file), 0640))

	info, err := os.Lstat(file)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())
	assert.Zero(t, info.Size())
}

func TestCreateRegularFileAlreadyExists(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "present")
	testutil.CreateFile(t, file, "x", 0644)

	err := fsops.CreateRegularFile(paths.MustParse(file), 0644)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
}

func TestCreateDir(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "new")

	require.NoError(t, fsops.CreateDir(paths.MustParse(dir), 0700))

	info, err := os.Lstat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestCreateDirAlreadyExists(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "present")
	testutil.CreateDir(t, dir, 0755)

	err := fsops.CreateDir(paths.MustParse(dir), 0755)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
}

func TestCreateDirUnwritableParent(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	tmp := t.TempDir()
	parent := filepath.Join(tmp, "parent")
	testutil.CreateDir(t, parent, 0555)
	t.Cleanup(func() { _ = os.Chmod(parent, 0755) })

	err := fsops.CreateDir(paths.MustParse(filepath.Join(parent, "child")), 0755)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPermission))
}

func TestCreateDirUnsearchableParent(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	tmp := t.TempDir()
	parent := filepath.Join(tmp, "parent")
	testutil.CreateDir(t, parent, 0644)
	t.Cleanup(func() { _ = os.Chmod(parent, 0755) })

	err := fsops.CreateDir(paths.MustParse(filepath.Join(parent, "child")), 0755)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPermission))
}

func TestCreateSymlink(t *testing.T) {
	tmp := t.TempDir()
	link := filepath.Join(tmp, "link")

	require.NoError(t, fsops.CreateSymlink(paths.MustParse(link), "some/target"))

	target, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, "some/target", target)
}

func TestCreateSymlinkAlreadyExists(t *testing.T) {
	tmp := t.TempDir()
	link := filepath.Join(tmp, "link")
	testutil.CreateSymlink(t, link, "first")

	err := fsops.CreateSymlink(paths.MustParse(link), "second")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
}

func TestCreateSymlinkEmptyTarget(t *testing.T) {
	tmp := t.TempDir()
	err := fsops.CreateSymlink(paths.MustParse(filepath.Join(tmp, "link")), "")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
