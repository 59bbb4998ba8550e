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

func TestRecreateSymlink(t *testing.T) {
	tmp := t.TempDir()
	testutil.CreateFile(t, filepath.Join(tmp, "target"), "content", 0644)
	testutil.CreateSymlink(t, filepath.Join(tmp, "link"), "target")
	dst := filepath.Join(tmp, "copy")

	err := fsops.RecreateSymlink(paths.MustParse(filepath.Join(tmp, "link")), paths.MustParse(dst), fsops.Strict)
	require.NoError(t, err)

	target, err := os.Readlink(dst)
	require.NoError(t, err)
	assert.Equal(t, "target", target)
}

func TestRecreateSymlinkPreservesDanglingTarget(t *testing.T) {
	tmp := t.TempDir()
	testutil.CreateSymlink(t, filepath.Join(tmp, "dangling"), "does/not/exist")
	dst := filepath.Join(tmp, "copy")

	err := fsops.RecreateSymlink(paths.MustParse(filepath.Join(tmp, "dangling")), paths.MustParse(dst), fsops.Strict)
	require.NoError(t, err)

	target, err := os.Readlink(dst)
	require.NoError(t, err)
	assert.Equal(t, "does/not/exist", target, "the target string is recreated verbatim")
}

func TestRecreateSymlinkRejectsNonSymlinkSource(t *testing.T) {
	tmp := t.TempDir()
	testutil.CreateFile(t, filepath.Join(tmp, "regular"), "x", 0644)

	err := fsops.RecreateSymlink(
		paths.MustParse(filepath.Join(tmp, "regular")),
		paths.MustParse(filepath.Join(tmp, "dst")),
		fsops.Strict,
	)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidArgument))
}

func TestRecreateSymlinkSameFile(t *testing.T) {
	tmp := t.TempDir()
	link := filepath.Join(tmp, "link")
	testutil.CreateSymlink(t, link, "anywhere")

	err := fsops.RecreateSymlink(paths.MustParse(link), paths.MustParse(link), fsops.Overwrite)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSameFile))
}

func TestRecreateSymlinkStrictRejectsOccupiedDestination(t *testing.T) {
	tmp := t.TempDir()
	testutil.CreateSymlink(t, filepath.Join(tmp, "link"), "target")
	testutil.CreateFile(t, filepath.Join(tmp, "dst"), "occupied", 0644)

	err := fsops.RecreateSymlink(
		paths.MustParse(filepath.Join(tmp, "link")),
		paths.MustParse(filepath.Join(tmp, "dst")),
		fsops.Strict,
	)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
}

func TestRecreateSymlinkOverwriteReplacesFile(t *testing.T) {
	tmp := t.TempDir()
	testutil.CreateSymlink(t, filepath.Join(tmp, "link"), "target")
	dst := filepath.Join(tmp, "dst")
	testutil.CreateFile(t, dst, "occupied", 0644)

	err := fsops.RecreateSymlink(paths.MustParse(filepath.Join(tmp, "link")), paths.MustParse(dst), fsops.Overwrite)
	require.NoError(t, err)

	target, err := os.Readlink(dst)
	require.NoError(t, err)
	assert.Equal(t, "target", target)
}

func TestRecreateSymlinkOverwriteReplacesEmptyDir(t *testing.T) {
	tmp := t.TempDir()
	testutil.CreateSymlink(t, filepath.Join(tmp, "link"), "target")
	dst := filepath.Join(tmp, "emptydir")
	testutil.CreateDir(t, dst, 0755)

	err := fsops.RecreateSymlink(paths.MustParse(filepath.Join(tmp, "link")), paths.MustParse(dst), fsops.Overwrite)
	require.NoError(t, err)

	target, err := os.Readlink(dst)
	require.NoError(t, err)
	assert.Equal(t, "target", target)
}

func TestRecreateSymlinkOverwriteUnwritableDestination(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	tmp := t.TempDir()
	testutil.CreateSymlink(t, filepath.Join(tmp, "link"), "target")
	dst := filepath.Join(tmp, "readonly")
	testutil.CreateFile(t, dst, "occupied", 0444)

	err := fsops.RecreateSymlink(paths.MustParse(filepath.Join(tmp, "link")), paths.MustParse(dst), fsops.Overwrite)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPermission),
		"an unwritable occupied destination is reported before any create is attempted")

	info, err := os.Lstat(dst)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular(), "the destination survives untouched")
}

func TestRecreateSymlinkOverwriteBlocksOnNonEmptyDir(t *testing.T) {
	tmp := t.TempDir()
	testutil.CreateSymlink(t, filepath.Join(tmp, "link"), "target")
	dst := filepath.Join(tmp, "fulldir")
	testutil.CreateFile(t, filepath.Join(dst, "occupant"), "x", 0644)

	err := fsops.RecreateSymlink(paths.MustParse(filepath.Join(tmp, "link")), paths.MustParse(dst), fsops.Overwrite)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDirNotEmpty))
}

func TestRecreateSymlinkMissingSource(t *testing.T) {
	tmp := t.TempDir()
	err := fsops.RecreateSymlink(
		paths.MustParse(filepath.Join(tmp, "missing")),
		paths.MustParse(filepath.Join(tmp, "dst")),
		fsops.Strict,
	)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}
