package urlreader

import (
	"context"
	"net/url"

	"github.com/hairyhenderson/go-urlreader/tree"
)

// Reader reads content from the backend it is bound to.
type Reader interface {
	// ReadURL returns the full content of the object at u.
	ReadURL(ctx context.Context, u *url.URL) ([]byte, error)

	// ReadTree returns every file below u, which is treated as a directory.
	ReadTree(ctx context.Context, u *url.URL, opts ...tree.Option) (*tree.Response, error)
}

// Entry pairs a Reader with the Predicate selecting the URLs it handles.
type Entry struct {
	Reader    Reader
	Predicate Predicate
}
