package blobfs

import (
	"context"
	"io"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob"
	"gocloud.dev/blob/memblob"
)

func setupTestBucket(t *testing.T) *blob.Bucket {
	t.Helper()

	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)

	t.Cleanup(func() { _ = bucket.Close() })

	objs := map[string]string{
		"file1":              "hello",
		"file2":              `{"value": "goodbye world"}`,
		"file3":              `value: what a world`,
		"dir1/file1":         `value: out of this world`,
		"dir1/file2":         `value: foo`,
		"dir2/file3":         "foo",
		"dir2/file4":         "bar",
		"dir2/sub1/subfile1": "baz",
		"dir2/sub1/subfile2": "qux",
	}

	for k, v := range objs {
		require.NoError(t, bucket.WriteAll(ctx, k, []byte(v), nil))
	}

	return bucket
}

func TestBlobFS(t *testing.T) {
	ft := time.Now()
	fakeModTime = &ft

	defer func() { fakeModTime = nil }()

	bucket := setupTestBucket(t)

	fsys := New(context.Background(), bucket, "")

	require.NoError(t, fstest.TestFS(fsys,
		"file1", "file2", "file3",
		"dir1/file1", "dir1/file2",
		"dir2/file3", "dir2/file4",
		"dir2/sub1/subfile1", "dir2/sub1/subfile2"),
	)

	fsys = New(context.Background(), bucket, "/dir2/")

	require.NoError(t, fstest.TestFS(fsys,
		"file3", "file4", "sub1/subfile1", "sub1/subfile2"))
}

func TestBlobFS_ReadDir(t *testing.T) {
	bucket := setupTestBucket(t)

	fsys := New(context.Background(), bucket, "")

	de, err := fs.ReadDir(fsys, "dir1")
	require.NoError(t, err)
	assert.Len(t, de, 2)

	de, err = fs.ReadDir(fsys, ".")
	require.NoError(t, err)
	assert.Len(t, de, 5)

	fi, err := de[0].Info()
	require.NoError(t, err)
	assert.Equal(t, "dir1", fi.Name())
	assert.True(t, fi.IsDir())

	f, err := fsys.Open("dir1")
	require.NoError(t, err)
	assert.IsType(t, &blobFile{}, f)

	fi, err = f.Stat()
	require.NoError(t, err)
	assert.Equal(t, "dir1", fi.Name())
	assert.True(t, fi.IsDir())

	f, err = fsys.Open("file1")
	require.NoError(t, err)

	defer f.Close()

	fi, err = f.Stat()
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o444), fi.Mode())

	b, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
}

func TestBlobFS_DirPrefixSibling(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)

	defer bucket.Close()

	require.NoError(t, bucket.WriteAll(ctx, "docs.txt", []byte("sibling"), nil))
	require.NoError(t, bucket.WriteAll(ctx, "docs/", []byte{}, nil))
	require.NoError(t, bucket.WriteAll(ctx, "docs/index.md", []byte("# index"), nil))

	fsys := New(ctx, bucket, "")

	fi, err := fs.Stat(fsys, "docs")
	require.NoError(t, err)
	assert.True(t, fi.IsDir())

	de, err := fs.ReadDir(fsys, "docs")
	require.NoError(t, err)
	require.Len(t, de, 1)
	assert.Equal(t, "index.md", de[0].Name())
}

func TestBlobFS_Errors(t *testing.T) {
	bucket := setupTestBucket(t)

	fsys := New(context.Background(), bucket, "")

	_, err := fsys.Open("missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	_, err = fs.ReadFile(fsys, "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	_, err = fsys.Open("../escape")
	require.ErrorIs(t, err, fs.ErrInvalid)

	_, err = fs.Sub(fsys, "/abs")
	require.Error(t, err)

	_, err = fs.ReadFile(fsys, ".")
	require.ErrorIs(t, err, fs.ErrInvalid)
}

func TestBlobFS_WithContext(t *testing.T) {
	bucket := setupTestBucket(t)

	type ctxKey struct{}

	ctx := context.WithValue(context.Background(), ctxKey{}, "v")

	fsys := New(context.Background(), bucket, "dir1")
	cfsys := fsys.(*blobFS).WithContext(ctx)

	require.NotSame(t, fsys, cfsys)
	assert.Equal(t, ctx, cfsys.(*blobFS).ctx)
	assert.Equal(t, "dir1", cfsys.(*blobFS).root)
	assert.Same(t, fsys, fsys.(*blobFS).WithContext(nil)) //nolint:staticcheck

	b, err := fs.ReadFile(cfsys, "file2")
	require.NoError(t, err)
	assert.Equal(t, "value: foo", string(b))
}
