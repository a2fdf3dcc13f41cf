package blobfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/hairyhenderson/go-urlreader/internal"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
)

type blobFS struct {
	ctx    context.Context
	bucket *blob.Bucket
	root   string
}

// Some blob APIs don't return valid modTimes, and some do. To conform to fstest
// set this to a fake value
//
//nolint:gochecknoglobals
var fakeModTime *time.Time

const fileMode = fs.FileMode(0o444)

// New provides a filesystem (an fs.FS) backed by the given bucket, rooted at
// the key prefix root. Leading and trailing slashes in root are ignored.
//
// The given context is used for all bucket operations. A different context can
// be given by using WithContext.
func New(ctx context.Context, bucket *blob.Bucket, root string) fs.FS {
	if ctx == nil {
		ctx = context.Background()
	}

	return &blobFS{
		ctx:    ctx,
		bucket: bucket,
		root:   strings.Trim(root, "/"),
	}
}

var (
	_ fs.FS                  = (*blobFS)(nil)
	_ fs.ReadFileFS          = (*blobFS)(nil)
	_ fs.SubFS               = (*blobFS)(nil)
	_ internal.WithContexter = (*blobFS)(nil)
)

// IsNotFound reports whether err indicates a missing object, either as
// reported by the blob backend or by this filesystem.
func IsNotFound(err error) bool {
	return gcerrors.Code(err) == gcerrors.NotFound || errors.Is(err, fs.ErrNotExist)
}

func (f *blobFS) WithContext(ctx context.Context) fs.FS {
	if ctx == nil {
		return f
	}

	fsys := *f
	fsys.ctx = ctx

	return &fsys
}

func (f *blobFS) Sub(name string) (fs.FS, error) {
	if !internal.ValidPath(name) {
		return nil, &fs.PathError{Op: "sub", Path: name, Err: fs.ErrInvalid}
	}

	if name == "." || name == "" {
		return f, nil
	}

	fsys := *f
	fsys.root = path.Join(fsys.root, name)

	return &fsys, nil
}

func (f *blobFS) Open(name string) (fs.File, error) {
	if !internal.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	file := &blobFile{
		ctx:    f.ctx,
		name:   strings.TrimPrefix(path.Base(name), "."),
		bucket: f.bucket,
		root:   strings.TrimPrefix(path.Join(f.root, path.Dir(name)), "."),
	}

	if name == "." {
		file.fi = internal.DirInfo(".", modTime(time.Time{}))

		return file, nil
	}

	_, err := file.Stat()
	if err != nil {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: err}
	}

	return file, nil
}

func (f *blobFS) ReadFile(name string) ([]byte, error) {
	if !internal.ValidPath(name) {
		return nil, &fs.PathError{Op: "readFile", Path: name, Err: fs.ErrInvalid}
	}

	if name == "." {
		return nil, &fs.PathError{Op: "readFile", Path: name, Err: fs.ErrInvalid}
	}

	b, err := f.bucket.ReadAll(f.ctx, path.Join(f.root, name))
	if err != nil {
		return nil, &fs.PathError{Op: "readFile", Path: name, Err: err}
	}

	return b, nil
}

func modTime(t time.Time) time.Time {
	if fakeModTime != nil {
		return *fakeModTime
	}

	return t
}

type blobFile struct {
	ctx      context.Context
	reader   *blob.Reader
	bucket   *blob.Bucket
	fi       fs.FileInfo
	listIter *blob.ListIterator
	name     string
	root     string
}

var _ fs.ReadDirFile = (*blobFile)(nil)

func (f *blobFile) key() string {
	return path.Join(f.root, f.name)
}

func (f *blobFile) Close() error {
	if f.reader == nil {
		return nil
	}

	return f.reader.Close()
}

func (f *blobFile) Read(p []byte) (int, error) {
	if f.fi != nil && f.fi.IsDir() {
		return 0, &fs.PathError{Op: "read", Path: f.name, Err: errors.New("is a directory")}
	}

	if f.reader == nil {
		r, err := f.bucket.NewReader(f.ctx, f.key(), nil)
		if err != nil {
			return 0, &fs.PathError{Op: "read", Path: f.name, Err: err}
		}

		f.reader = r
	}

	return f.reader.Read(p)
}

func (f *blobFile) Stat() (fs.FileInfo, error) {
	if f.fi != nil {
		return f.fi, nil
	}

	out, err := f.bucket.Attributes(f.ctx, f.key())
	if gcerrors.Code(err) == gcerrors.NotFound {
		fi, derr := blobFindDir(f.ctx, f.bucket, f.key(), f.name)
		if derr != nil {
			return nil, derr
		}

		f.fi = fi

		return fi, nil
	}

	if err != nil {
		return nil, err
	}

	f.fi = internal.FileInfo(f.name, out.Size, fileMode, modTime(out.ModTime))

	return f.fi, nil
}

// blobFindDir determines whether any objects exist below key, in which case
// key is treated as a directory.
func blobFindDir(ctx context.Context, bucket *blob.Bucket, key, name string) (fs.FileInfo, error) {
	opts := blob.ListOptions{Delimiter: "/", Prefix: key + "/"}

	list, _, err := bucket.ListPage(ctx, blob.FirstPageToken, 1, &opts)
	if err != nil {
		return nil, err
	}

	if len(list) == 0 {
		return nil, fs.ErrNotExist
	}

	return internal.DirInfo(name, modTime(time.Time{})), nil
}

//nolint:gocyclo
func (f *blobFile) ReadDir(n int) ([]fs.DirEntry, error) {
	if f.fi != nil && !f.fi.IsDir() {
		return nil, &fs.PathError{Op: "readdir", Path: f.name, Err: errors.New("not a directory")}
	}

	prefix := f.key()
	if prefix != "" {
		prefix += "/"
	}

	if f.listIter == nil {
		f.listIter = f.bucket.List(&blob.ListOptions{Delimiter: "/", Prefix: prefix})
	}

	dirents := []fs.DirEntry{}

	for i := 0; (n > 0 && i < n) || n <= 0; i++ {
		obj, err := f.listIter.Next(f.ctx)
		if errors.Is(err, io.EOF) {
			if n <= 0 {
				err = nil
			}

			return dirents, err
		}

		if err != nil {
			return nil, fmt.Errorf("list %q: %w", prefix, err)
		}

		// directory placeholder objects list themselves
		if obj.Key == prefix {
			i--

			continue
		}

		name := strings.TrimSuffix(path.Base(obj.Key), "/")

		var fi fs.FileInfo
		if obj.IsDir {
			fi = internal.DirInfo(name, modTime(time.Time{}))
		} else {
			fi = internal.FileInfo(name, obj.Size, fileMode, modTime(obj.ModTime))
		}

		dirents = append(dirents, internal.FileInfoDirEntry(fi))
	}

	return dirents, nil
}
