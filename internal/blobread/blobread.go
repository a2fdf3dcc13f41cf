// Package blobread implements urlreader.Reader operations over an opened
// gocloud.dev/blob bucket, shared by the object storage readers.
package blobread

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hairyhenderson/go-urlreader"
	"github.com/hairyhenderson/go-urlreader/blobfs"
	"github.com/hairyhenderson/go-urlreader/tree"
	"gocloud.dev/blob"
)

// ReadObject reads the object at key and closes the bucket.
func ReadObject(ctx context.Context, bucket *blob.Bucket, key string, u *url.URL) ([]byte, error) {
	defer bucket.Close()

	b, err := bucket.ReadAll(ctx, key)
	if blobfs.IsNotFound(err) {
		return nil, &urlreader.NotFoundError{URL: u.Redacted(), Err: err}
	}

	if err != nil {
		return nil, fmt.Errorf("read %s: %w", u.Redacted(), err)
	}

	return b, nil
}

// ReadTree returns every file under prefix. The bucket is closed when the
// returned Response is closed, or immediately on error.
func ReadTree(ctx context.Context, factory *tree.ResponseFactory, bucket *blob.Bucket,
	prefix string, u *url.URL, opts ...tree.Option,
) (*tree.Response, error) {
	fsys := blobfs.New(ctx, bucket, prefix)

	resp, err := factory.FromFS(ctx, fsys, append(opts[:len(opts):len(opts)], tree.WithCloser(bucket))...)
	if err != nil {
		_ = bucket.Close()

		if blobfs.IsNotFound(err) {
			return nil, &urlreader.NotFoundError{URL: u.Redacted(), Err: err}
		}

		return nil, fmt.Errorf("read tree %s: %w", u.Redacted(), err)
	}

	if len(resp.Paths()) == 0 {
		_ = resp.Close()

		return nil, &urlreader.NotFoundError{URL: u.Redacted()}
	}

	return resp, nil
}
