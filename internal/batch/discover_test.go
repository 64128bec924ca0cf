package batch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bagextract/internal/testutil"
)

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteBag(t, dir, "b.bag")
	testutil.WriteBag(t, dir, "a.BAG")
	testutil.WriteBag(t, dir, "notes.txt")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a"), 0o755))
	testutil.WriteBag(t, filepath.Join(dir, "a"), "a.bag")

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.BAG"), filepath.Join(dir, "b.bag")}, files)
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WriteBag(t, dir, "a.bag")
	b := testutil.WriteBag(t, dir, "b.bag")

	files, err := Collect([]string{b, dir})
	require.NoError(t, err)
	assert.Equal(t, []string{b, a}, files)

	_, err = Collect([]string{filepath.Join(dir, "missing.bag")})
	assert.Error(t, err)
}

func TestSelect(t *testing.T) {
	files := []string{"/d/walk_01.bag", "/d/walk_02.bag", "/d/calib.bag"}

	got, err := Select(files, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, files, got)

	got, err = Select(files, []string{"walk_*"}, []string{"*_02.bag"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/d/walk_01.bag"}, got)

	got, err = Select(files, nil, []string{"calib.bag"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/d/walk_01.bag", "/d/walk_02.bag"}, got)

	_, err = Select(files, []string{"["}, nil)
	assert.Error(t, err)
}

func TestCopyFilePreservesContentAndTime(t *testing.T) {
	dir := t.TempDir()
	src := testutil.WriteBag(t, dir, "a.bag")
	mtime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	dst := filepath.Join(dir, "copy.bag")
	require.NoError(t, CopyFile(src, dst))

	want, _ := os.ReadFile(src)
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	fi, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, fi.ModTime().Equal(mtime))
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := CopyFile(filepath.Join(dir, "nope.bag"), filepath.Join(dir, "out.bag"))

	var copyErr *CopyError
	require.ErrorAs(t, err, &copyErr)
	assert.Equal(t, filepath.Join(dir, "nope.bag"), copyErr.Src)
}
