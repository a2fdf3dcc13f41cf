package gcsreader

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/hairyhenderson/go-urlreader"
	"github.com/hairyhenderson/go-urlreader/integration"
	"github.com/hairyhenderson/go-urlreader/internal"
	"github.com/hairyhenderson/go-urlreader/internal/blobread"
	"github.com/hairyhenderson/go-urlreader/tree"
	"gocloud.dev/blob"
	"gocloud.dev/blob/gcsblob"
	"gocloud.dev/gcp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
)

const readOnlyScope = "https://www.googleapis.com/auth/devstorage.read_only"

// Reader reads from GCS buckets as a single service account.
type Reader struct {
	tokens      oauth2.TokenSource
	hclient     *http.Client
	treeFactory *tree.ResponseFactory
	logger      *slog.Logger
	// overridden in tests
	openBucket  func(ctx context.Context, name string) (*blob.Bucket, error)
	integration integration.GCSConfig
}

var _ urlreader.Reader = (*Reader)(nil)

// NewReader returns a Reader for the given integration. The private key is
// not parsed until the first request.
func NewReader(cfg integration.GCSConfig, treeFactory *tree.ResponseFactory, logger *slog.Logger) *Reader {
	if treeFactory == nil {
		treeFactory = tree.NewResponseFactory()
	}

	jwtConfig := &jwt.Config{
		Email:      cfg.ClientEmail,
		PrivateKey: []byte(cfg.PrivateKey),
		Scopes:     []string{readOnlyScope},
		TokenURL:   google.JWTTokenURL,
	}

	r := &Reader{
		integration: cfg,
		tokens:      jwtConfig.TokenSource(context.Background()),
		hclient:     http.DefaultClient,
		treeFactory: treeFactory,
		logger:      internal.LoggerOrDiscard(logger).With(slog.String("reader", "gcs"), slog.String("host", cfg.Host)),
	}
	r.openBucket = r.openAuthenticatedBucket

	return r
}

// WithHTTPClient returns a copy of the reader that sends requests through
// client's transport.
func (r *Reader) WithHTTPClient(client *http.Client) *Reader {
	if client == nil {
		return r
	}

	out := *r
	out.hclient = client
	out.openBucket = out.openAuthenticatedBucket

	return &out
}

func (r *Reader) String() string {
	return fmt.Sprintf("gcs(host=%s, clientEmail=%s)", r.integration.Host, r.integration.ClientEmail)
}

func (r *Reader) openAuthenticatedBucket(ctx context.Context, name string) (*blob.Bucket, error) {
	client, err := gcp.NewHTTPClient(r.hclient.Transport, r.tokens)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP HTTP client: %w", err)
	}

	bucket, err := gcsblob.OpenBucket(ctx, client, name, nil)
	if err != nil {
		return nil, fmt.Errorf("open bucket %q: %w", name, err)
	}

	return bucket, nil
}

// parseURL splits u into bucket name and object key.
func (r *Reader) parseURL(u *url.URL) (string, string, error) {
	if !urlreader.HostPredicate(r.integration.Host).Match(u) {
		return "", "", fmt.Errorf("%w: %s is not a GCS URL for host %s",
			urlreader.ErrInvalidURL, u.Redacted(), r.integration.Host)
	}

	bucket, key, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	if bucket == "" {
		return "", "", fmt.Errorf("%w: no bucket in %s", urlreader.ErrInvalidURL, u.Redacted())
	}

	return bucket, key, nil
}

// ReadURL - implements urlreader.Reader
func (r *Reader) ReadURL(ctx context.Context, u *url.URL) ([]byte, error) {
	bucketName, key, err := r.parseURL(u)
	if err != nil {
		return nil, err
	}

	if key == "" || strings.HasSuffix(key, "/") {
		return nil, fmt.Errorf("%w: no object in %s", urlreader.ErrInvalidURL, u.Redacted())
	}

	r.logger.DebugContext(ctx, "reading object", slog.String("bucket", bucketName), slog.String("key", key))

	bucket, err := r.openBucket(ctx, bucketName)
	if err != nil {
		return nil, err
	}

	return blobread.ReadObject(ctx, bucket, key, u)
}

// ReadTree - implements urlreader.Reader
//
// The path after the bucket name is treated as a directory. The returned
// Response must be closed.
func (r *Reader) ReadTree(ctx context.Context, u *url.URL, opts ...tree.Option) (*tree.Response, error) {
	bucketName, prefix, err := r.parseURL(u)
	if err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "reading tree", slog.String("bucket", bucketName), slog.String("prefix", prefix))

	bucket, err := r.openBucket(ctx, bucketName)
	if err != nil {
		return nil, err
	}

	return blobread.ReadTree(ctx, r.treeFactory, bucket, prefix, u, opts...)
}
