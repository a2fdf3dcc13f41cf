package internal

import (
	"context"
	"io/fs"
	"time"
)

// FileInfo creates a static fs.FileInfo with the given properties.
// The result is also a fs.DirEntry and can be safely cast.
func FileInfo(name string, size int64, mode fs.FileMode, modTime time.Time) fs.FileInfo {
	return &staticFileInfo{
		name:    name,
		size:    size,
		mode:    mode,
		modTime: modTime,
	}
}

// DirInfo creates a fs.FileInfo for a read-only directory.
func DirInfo(name string, modTime time.Time) fs.FileInfo {
	return FileInfo(name, 0, fs.ModeDir|0o555, modTime)
}

type staticFileInfo struct {
	modTime time.Time
	name    string
	size    int64
	mode    fs.FileMode
}

var (
	_ fs.FileInfo = (*staticFileInfo)(nil)
	_ fs.DirEntry = (*staticFileInfo)(nil)
)

func (fi staticFileInfo) IsDir() bool                 { return fi.Mode().IsDir() }
func (fi staticFileInfo) Mode() fs.FileMode           { return fi.mode }
func (fi *staticFileInfo) ModTime() time.Time         { return fi.modTime }
func (fi staticFileInfo) Name() string                { return fi.name }
func (fi staticFileInfo) Size() int64                 { return fi.size }
func (fi staticFileInfo) Sys() any                    { return nil }
func (fi *staticFileInfo) Info() (fs.FileInfo, error) { return fi, nil }
func (fi staticFileInfo) Type() fs.FileMode           { return fi.Mode().Type() }

// FileInfoDirEntry adapts a fs.FileInfo into a fs.DirEntry.
func FileInfoDirEntry(fi fs.FileInfo) fs.DirEntry {
	if de, ok := fi.(fs.DirEntry); ok {
		return de
	}

	return fs.FileInfoToDirEntry(fi)
}

// WithContexter is an fs.FS that can be configured with a custom context
type WithContexter interface {
	WithContext(ctx context.Context) fs.FS
}
