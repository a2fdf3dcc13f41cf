package tree

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/hairyhenderson/go-urlreader/config"
)

const defaultConcurrency = 8

// ResponseFactory creates Responses. The zero value is not usable; use
// NewResponseFactory or FromConfig.
type ResponseFactory struct {
	workDir     string
	concurrency int
}

// FactoryOption configures a ResponseFactory.
type FactoryOption func(*ResponseFactory)

// WithWorkingDirectory sets the directory in which Response.Dir creates
// temporary directories. By default the system temp dir is used.
func WithWorkingDirectory(dir string) FactoryOption {
	return func(f *ResponseFactory) {
		f.workDir = dir
	}
}

// WithConcurrency limits how many files are read in parallel by
// Response.Files.
func WithConcurrency(n int) FactoryOption {
	return func(f *ResponseFactory) {
		if n > 0 {
			f.concurrency = n
		}
	}
}

// NewResponseFactory returns a ResponseFactory configured with opts.
func NewResponseFactory(opts ...FactoryOption) *ResponseFactory {
	f := &ResponseFactory{concurrency: defaultConcurrency}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// FromConfig returns a ResponseFactory using "backend.workingDirectory" from
// cfg, if set and valid.
func FromConfig(cfg *config.Config) *ResponseFactory {
	dir, _, err := cfg.OptionalString("backend.workingDirectory")
	if err != nil {
		dir = ""
	}

	return NewResponseFactory(WithWorkingDirectory(dir))
}

// Filter decides whether a file is included in a Response. path is
// slash-separated and relative to the tree's root.
type Filter func(path string, info fs.FileInfo) bool

// Option configures a single Response.
type Option func(*options)

type options struct {
	closer io.Closer
	filter Filter
	etag   string
}

// WithFilter includes only the files for which filter returns true.
func WithFilter(filter Filter) Option {
	return func(o *options) {
		o.filter = filter
	}
}

// WithCloser registers c to be closed by Response.Close. Readers use this to
// release the backend handle that the Response reads from.
func WithCloser(c io.Closer) Option {
	return func(o *options) {
		o.closer = c
	}
}

// WithETag sets the ETag reported by the Response.
func WithETag(etag string) Option {
	return func(o *options) {
		o.etag = etag
	}
}

// FromFS walks fsys and returns a Response holding every regular file found,
// subject to any filter.
func (f *ResponseFactory) FromFS(ctx context.Context, fsys fs.FS, opts ...Option) (*Response, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	files := []fileEntry{}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return err
		}

		if o.filter != nil && !o.filter(p, fi) {
			return nil
		}

		files = append(files, fileEntry{path: p, modTime: fi.ModTime()})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk tree: %w", err)
	}

	return &Response{
		closer:      o.closer,
		fsys:        fsys,
		files:       files,
		etag:        o.etag,
		workDir:     f.workDir,
		concurrency: f.concurrency,
	}, nil
}

type fileEntry struct {
	modTime time.Time
	path    string
}
