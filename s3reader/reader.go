package s3reader

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hairyhenderson/go-urlreader"
	"github.com/hairyhenderson/go-urlreader/integration"
	"github.com/hairyhenderson/go-urlreader/internal"
	"github.com/hairyhenderson/go-urlreader/internal/blobread"
	"github.com/hairyhenderson/go-urlreader/tree"
	"gocloud.dev/blob"
	"gocloud.dev/blob/s3blob"
)

// Reader reads from S3 buckets using a single integration's credentials.
type Reader struct {
	hclient     *http.Client
	treeFactory *tree.ResponseFactory
	logger      *slog.Logger
	integration integration.AWSS3Config
}

var _ urlreader.Reader = (*Reader)(nil)

// NewReader returns a Reader for the given integration.
func NewReader(cfg integration.AWSS3Config, treeFactory *tree.ResponseFactory, logger *slog.Logger) *Reader {
	if treeFactory == nil {
		treeFactory = tree.NewResponseFactory()
	}

	return &Reader{
		integration: cfg,
		hclient:     http.DefaultClient,
		treeFactory: treeFactory,
		logger:      internal.LoggerOrDiscard(logger).With(slog.String("reader", "awsS3"), slog.String("host", cfg.Host)),
	}
}

// WithHTTPClient returns a copy of the reader that sends requests with
// client.
func (r *Reader) WithHTTPClient(client *http.Client) *Reader {
	if client == nil {
		return r
	}

	out := *r
	out.hclient = client

	return &out
}

func (r *Reader) String() string {
	if r.integration.Endpoint != "" {
		return fmt.Sprintf("awsS3(host=%s, endpoint=%s)", r.integration.Host, r.integration.Endpoint)
	}

	return fmt.Sprintf("awsS3(host=%s)", r.integration.Host)
}

func (r *Reader) newClient(ctx context.Context, region string) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
		awsconfig.WithHTTPClient(r.hclient),
	}

	if r.integration.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(r.integration.AccessKeyID, r.integration.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if r.integration.Endpoint != "" {
			o.BaseEndpoint = aws.String(r.integration.Endpoint)
		}

		o.UsePathStyle = r.integration.S3ForcePathStyle
	}), nil
}

func (r *Reader) openBucket(ctx context.Context, loc location) (*blob.Bucket, error) {
	client, err := r.newClient(ctx, loc.region)
	if err != nil {
		return nil, err
	}

	bucket, err := s3blob.OpenBucketV2(ctx, client, loc.bucket, nil)
	if err != nil {
		return nil, fmt.Errorf("open bucket %q: %w", loc.bucket, err)
	}

	return bucket, nil
}

// ReadURL - implements urlreader.Reader
func (r *Reader) ReadURL(ctx context.Context, u *url.URL) ([]byte, error) {
	loc, err := parseURL(u, r.integration)
	if err != nil {
		return nil, err
	}

	if loc.key == "" || strings.HasSuffix(loc.key, "/") {
		return nil, fmt.Errorf("%w: no object in %s", urlreader.ErrInvalidURL, u.Redacted())
	}

	r.logger.DebugContext(ctx, "reading object",
		slog.String("bucket", loc.bucket), slog.String("key", loc.key), slog.String("region", loc.region))

	bucket, err := r.openBucket(ctx, loc)
	if err != nil {
		return nil, err
	}

	return blobread.ReadObject(ctx, bucket, loc.key, u)
}

// ReadTree - implements urlreader.Reader
//
// The key is treated as a directory prefix. The returned Response must be
// closed.
func (r *Reader) ReadTree(ctx context.Context, u *url.URL, opts ...tree.Option) (*tree.Response, error) {
	loc, err := parseURL(u, r.integration)
	if err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "reading tree",
		slog.String("bucket", loc.bucket), slog.String("prefix", loc.key), slog.String("region", loc.region))

	bucket, err := r.openBucket(ctx, loc)
	if err != nil {
		return nil, err
	}

	return blobread.ReadTree(ctx, r.treeFactory, bucket, loc.key, u, opts...)
}
