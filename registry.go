package urlreader

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hairyhenderson/go-urlreader/tree"
)

// Registry dispatches URLs to the first registered reader whose predicate
// matches. A Registry is never modified once built, so it can be shared
// freely between goroutines.
//
// Registry is itself a Reader, which reads from whichever reader is
// responsible for the given URL.
type Registry struct {
	entries []Entry
}

var _ Reader = (*Registry)(nil)

// NewRegistry returns a Registry holding the given entries, in order.
func NewRegistry(entries ...Entry) *Registry {
	return (*Registry)(nil).Register(entries...)
}

// Register returns a new Registry containing r's entries followed by the
// given ones. r is left untouched. Entries without a reader or predicate are
// ignored.
func (r *Registry) Register(entries ...Entry) *Registry {
	n := r.Len()

	out := &Registry{entries: make([]Entry, 0, n+len(entries))}
	if r != nil {
		out.entries = append(out.entries, r.entries...)
	}

	for _, e := range entries {
		if e.Reader == nil || e.Predicate == nil {
			continue
		}

		out.entries = append(out.entries, e)
	}

	return out
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}

	return len(r.entries)
}

// Entries returns a copy of the registered entries, in registration order.
func (r *Registry) Entries() []Entry {
	if r == nil {
		return []Entry{}
	}

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)

	return out
}

// Resolve returns the reader of the first entry whose predicate matches u.
// The second return value is false when no entry matches.
func (r *Registry) Resolve(u *url.URL) (Reader, bool) {
	if r == nil || u == nil {
		return nil, false
	}

	for _, e := range r.entries {
		if e.Predicate.Match(u) {
			return e.Reader, true
		}
	}

	return nil, false
}

// Lookup parses rawURL and resolves it. When no reader matches, the returned
// error wraps ErrNoReader.
func (r *Registry) Lookup(rawURL string) (Reader, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	return r.lookup(u)
}

func (r *Registry) lookup(u *url.URL) (Reader, error) {
	reader, ok := r.Resolve(u)
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrNoReader, u.Redacted())
	}

	return reader, nil
}

// ReadURL - implements Reader
func (r *Registry) ReadURL(ctx context.Context, u *url.URL) ([]byte, error) {
	reader, err := r.lookup(u)
	if err != nil {
		return nil, err
	}

	return reader.ReadURL(ctx, u)
}

// ReadTree - implements Reader
func (r *Registry) ReadTree(ctx context.Context, u *url.URL, opts ...tree.Option) (*tree.Response, error) {
	reader, err := r.lookup(u)
	if err != nil {
		return nil, err
	}

	return reader.ReadTree(ctx, u, opts...)
}
