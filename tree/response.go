package tree

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/hairyhenderson/go-urlreader/internal"
	"golang.org/x/sync/errgroup"
)

// Response is a fixed set of files read from a tree. File content is read
// from the underlying filesystem on demand, so Close must be called once the
// Response is no longer needed.
type Response struct {
	closer      io.Closer
	fsys        fs.FS
	etag        string
	workDir     string
	files       []fileEntry
	concurrency int
}

// File is a single file in a Response.
type File struct {
	ModTime time.Time
	Path    string
	Content []byte
}

// ETag identifies the version of the tree, if the reader could determine one.
func (r *Response) ETag() string {
	return r.etag
}

// Paths returns the slash-separated paths of all files, in lexical order.
func (r *Response) Paths() []string {
	paths := make([]string, len(r.files))
	for i, f := range r.files {
		paths[i] = f.path
	}

	return paths
}

// Close releases the resources held by the Response. It is safe to call more
// than once.
func (r *Response) Close() error {
	c := r.closer
	r.closer = nil

	if c == nil {
		return nil
	}

	return c.Close()
}

// withContext injects ctx into the filesystem, if the filesystem supports it
// (i.e. has a WithContext method).
func (r *Response) withContext(ctx context.Context) fs.FS {
	if cfsys, ok := r.fsys.(internal.WithContexter); ok {
		return cfsys.WithContext(ctx)
	}

	return r.fsys
}

// Files reads every file, returning them in lexical order of path.
func (r *Response) Files(ctx context.Context) ([]File, error) {
	out := make([]File, len(r.files))
	fsys := r.withContext(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, f := range r.files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			b, err := fs.ReadFile(fsys, f.path)
			if err != nil {
				return fmt.Errorf("read %s: %w", f.path, err)
			}

			out[i] = File{Path: f.path, Content: b, ModTime: f.modTime}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// Archive writes all files to w as a gzip-compressed tarball.
func (r *Response) Archive(ctx context.Context, w io.Writer) error {
	fsys := r.withContext(ctx)
	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)

	for _, f := range r.files {
		if err := ctx.Err(); err != nil {
			return err
		}

		b, err := fs.ReadFile(fsys, f.path)
		if err != nil {
			return fmt.Errorf("read %s: %w", f.path, err)
		}

		hdr := &tar.Header{
			Typeflag: tar.TypeReg,
			Name:     f.path,
			Mode:     0o644,
			Size:     int64(len(b)),
			ModTime:  f.modTime,
		}

		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("write header for %s: %w", f.path, err)
		}

		if _, err := tw.Write(b); err != nil {
			return fmt.Errorf("write %s: %w", f.path, err)
		}
	}

	if err := tw.Close(); err != nil {
		return err
	}

	return gz.Close()
}

// Dir writes all files below target, creating directories as needed, and
// returns target. If target is empty, a new temporary directory is created in
// the factory's working directory.
func (r *Response) Dir(ctx context.Context, target string) (string, error) {
	if target == "" {
		dir, err := os.MkdirTemp(r.workDir, "urlreader-tree-")
		if err != nil {
			return "", fmt.Errorf("create temp dir: %w", err)
		}

		target = dir
	}

	files, err := r.Files(ctx)
	if err != nil {
		return "", err
	}

	for _, f := range files {
		dest := filepath.Join(target, filepath.FromSlash(f.Path))

		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return "", err
		}

		//nolint:gosec
		if err := os.WriteFile(dest, f.Content, 0o644); err != nil {
			return "", err
		}
	}

	return target, nil
}
