package fsops_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranaysashank/hpath/pkg/errors"
	"github.com/pranaysashank/hpath/pkg/fsops"
	"github.com/pranaysashank/hpath/pkg/paths"
	"github.com/pranaysashank/hpath/pkg/testutil"
)

func TestCopyFilePreservesContentAndMode(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	dst := filepath.Join(tmp, "dst")

	content := strings.Repeat("some file content\n", 1000)
	testutil.CreateFile(t, src, content, 0640)

	err := fsops.CopyFile(paths.MustParse(src), paths.MustParse(dst), fsops.Strict)
	require.NoError(t, err)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())
}

func TestCopyFileEmptyFile(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "empty")
	dst := filepath.Join(tmp, "dst")
	testutil.CreateFile(t, src, "", 0644)

	require.NoError(t, fsops.CopyFile(paths.MustParse(src), paths.MustParse(dst), fsops.Strict))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCopyFileStrictRejectsExistingDestination(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	dst := filepath.Join(tmp, "dst")
	testutil.CreateFile(t, src, "new", 0644)
	testutil.CreateFile(t, dst, "old", 0644)

	err := fsops.CopyFile(paths.MustParse(src), paths.MustParse(dst), fsops.Strict)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

	got, rerr := os.ReadFile(dst)
	require.NoError(t, rerr)
	assert.Equal(t, "old", string(got), "existing destination must be untouched")
}

func TestCopyFileOverwriteReplacesDestination(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	dst := filepath.Join(tmp, "dst")
	testutil.CreateFile(t, src, "new content", 0600)
	testutil.CreateFile(t, dst, "old content that is longer", 0644)

	require.NoError(t, fsops.CopyFile(paths.MustParse(src), paths.MustParse(dst), fsops.Overwrite))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new content", string(got))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestCopyFileSameFile(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	testutil.CreateFile(t, src, "content", 0644)

	err := fsops.CopyFile(paths.MustParse(src), paths.MustParse(src), fsops.Overwrite)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSameFile))
}

func TestCopyFileSameFileThroughSymlink(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	link := filepath.Join(tmp, "link")
	testutil.CreateFile(t, src, "content", 0644)
	testutil.CreateSymlink(t, link, "src")

	// destination resolves to the source file; the same-file check fires
	// before the symlink-destination rejection
	err := fsops.CopyFile(paths.MustParse(src), paths.MustParse(link), fsops.Overwrite)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSameFile))
}

func TestCopyFileRejectsSymlinkSource(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "target")
	link := filepath.Join(tmp, "link")
	testutil.CreateFile(t, target, "content", 0644)
	testutil.CreateSymlink(t, link, "target")

	err := fsops.CopyFile(paths.MustParse(link), paths.MustParse(filepath.Join(tmp, "dst")), fsops.Strict)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidArgument))
}

func TestCopyFileRejectsDirectorySource(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "dir")
	testutil.CreateDir(t, dir, 0755)

	err := fsops.CopyFile(paths.MustParse(dir), paths.MustParse(filepath.Join(tmp, "dst")), fsops.Strict)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidArgument))
}

func TestCopyFileRejectsSymlinkDestination(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	other := filepath.Join(tmp, "other")
	link := filepath.Join(tmp, "link")
	testutil.CreateFile(t, src, "content", 0644)
	testutil.CreateFile(t, other, "other", 0644)
	testutil.CreateSymlink(t, link, "other")

	err := fsops.CopyFile(paths.MustParse(src), paths.MustParse(link), fsops.Overwrite)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidArgument))
}

func TestCopyFileMissingSource(t *testing.T) {
	tmp := t.TempDir()
	err := fsops.CopyFile(
		paths.MustParse(filepath.Join(tmp, "missing")),
		paths.MustParse(filepath.Join(tmp, "dst")),
		fsops.Strict,
	)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestCopyFileUnwritableDestinationDirLeavesNoLitter(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	outDir := filepath.Join(tmp, "out")
	testutil.CreateFile(t, src, "content", 0644)
	testutil.CreateDir(t, outDir, 0555)
	t.Cleanup(func() { _ = os.Chmod(outDir, 0755) })

	dst := filepath.Join(outDir, "dst")
	err := fsops.CopyFile(paths.MustParse(src), paths.MustParse(dst), fsops.Strict)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPermission))

	_, serr := os.Lstat(dst)
	assert.True(t, os.IsNotExist(serr), "no partial destination may be left behind")
}

func TestCopyFileOverwriteReadOnlyDestination(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	dst := filepath.Join(tmp, "dst")
	testutil.CreateFile(t, src, "new", 0644)
	testutil.CreateFile(t, dst, "old", 0444)

	// the destination is not writable, so the delete-and-retry branch
	// must not engage
	err := fsops.CopyFile(paths.MustParse(src), paths.MustParse(dst), fsops.Overwrite)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPermission))

	got, rerr := os.ReadFile(dst)
	require.NoError(t, rerr)
	assert.Equal(t, "old", string(got))
}
