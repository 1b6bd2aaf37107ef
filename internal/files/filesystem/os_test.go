package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFileSystem_Open_File(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("a\r\nb"), 0644))

	p := NewOSFileSystem()

	rc, err := p.Open(filePath)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "a\r\nb", string(data))
}

func TestOSFileSystem_Open_NonexistentPath(t *testing.T) {
	p := NewOSFileSystem()

	_, err := p.Open(filepath.Join(t.TempDir(), "nonexistent"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist), "expected fs.ErrNotExist, got %v", err)
}

func TestOSFileSystem_Open_Directory(t *testing.T) {
	p := NewOSFileSystem()

	_, err := p.Open(t.TempDir())
	assert.ErrorIs(t, err, ErrIsDirectory)
}

func TestOSFileSystem_Create_CommitReplacesContent(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(dst, []byte("old content that is longer"), 0644))

	p := NewOSFileSystem()
	out, err := p.Create(dst)
	require.NoError(t, err)
	assert.Equal(t, dst, out.Path())

	_, err = out.Write([]byte("new"))
	require.NoError(t, err)

	// Nothing is visible before commit.
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "old content that is longer", string(data))

	require.NoError(t, out.Commit())
	require.NoError(t, out.Abort(), "Abort after Commit must be a no-op")

	data, err = os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestOSFileSystem_Create_AbortLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.txt")

	p := NewOSFileSystem()
	out, err := p.Create(dst)
	require.NoError(t, err)

	_, err = out.Write([]byte("partial"))
	require.NoError(t, err)
	require.NoError(t, out.Abort())

	_, err = os.Stat(dst)
	assert.True(t, errors.Is(err, fs.ErrNotExist), "destination must not exist after abort")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOSFileSystem_Create_CommitTwice(t *testing.T) {
	p := NewOSFileSystem()
	out, err := p.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)

	require.NoError(t, out.Commit())
	assert.Error(t, out.Commit())
}

func TestOSFileSystem_Create_MissingDirectory(t *testing.T) {
	p := NewOSFileSystem()

	_, err := p.Create(filepath.Join(t.TempDir(), "missing", "out.txt"))
	assert.Error(t, err)
}

func TestOSFileSystem_Create_Directory(t *testing.T) {
	p := NewOSFileSystem()

	_, err := p.Create(t.TempDir())
	assert.ErrorIs(t, err, ErrIsDirectory)
}

func commitString(t *testing.T, p Provider, path, content string) {
	t.Helper()
	out, err := p.Create(path)
	require.NoError(t, err)
	defer out.Abort()

	_, err = out.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, out.Commit())
}

func TestOSFileSystem_Create_FollowsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	link := filepath.Join(dir, "link.txt")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0644))
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	commitString(t, NewOSFileSystem(), link, "new")

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "link must remain a symlink")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "temp file must not be left behind")
}

func TestOSFileSystem_Create_DanglingSymlinkCreatesTarget(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "link.txt")
	if err := os.Symlink("target.txt", link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	commitString(t, NewOSFileSystem(), link, "new")

	data, err := os.ReadFile(filepath.Join(dir, "target.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)
}

func TestOSFileSystem_Create_PreservesMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not preserved on windows")
	}
	dst := filepath.Join(t.TempDir(), "secret.txt")
	require.NoError(t, os.WriteFile(dst, []byte("old"), 0600))
	require.NoError(t, os.Chmod(dst, 0600))

	commitString(t, NewOSFileSystem(), dst, "new")

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestOSFileSystem_Create_PreservesModeThroughSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not preserved on windows")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	link := filepath.Join(dir, "link.txt")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0600))
	require.NoError(t, os.Chmod(target, 0600))
	require.NoError(t, os.Symlink(target, link))

	commitString(t, NewOSFileSystem(), link, "new")

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestOSFileSystem_ReadFile(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "test.txt")
	expected := "hello"
	require.NoError(t, os.WriteFile(filePath, []byte(expected), 0644))

	p := NewOSFileSystem()

	data, err := p.ReadFile(filePath)
	require.NoError(t, err)
	assert.Equal(t, expected, string(data))
}

func TestOSFileSystem_Stat_File(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "test.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("12345"), 0644))

	p := NewOSFileSystem()

	info, err := p.Stat(filePath)
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())
	assert.False(t, info.IsDir())
}

func TestWriteFile_OS(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "written.txt")

	require.NoError(t, WriteFile(NewOSFileSystem(), dst, []byte("payload")))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}
