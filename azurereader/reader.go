package azurereader

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"github.com/hairyhenderson/go-urlreader"
	"github.com/hairyhenderson/go-urlreader/integration"
	"github.com/hairyhenderson/go-urlreader/internal"
	"github.com/hairyhenderson/go-urlreader/internal/blobread"
	"github.com/hairyhenderson/go-urlreader/tree"
	"gocloud.dev/blob"
	"gocloud.dev/blob/azureblob"
)

// Reader reads from the containers of a single storage account.
type Reader struct {
	hclient     *http.Client
	treeFactory *tree.ResponseFactory
	logger      *slog.Logger
	integration integration.AzureBlobConfig
}

var _ urlreader.Reader = (*Reader)(nil)

// NewReader returns a Reader for the given integration.
func NewReader(cfg integration.AzureBlobConfig, treeFactory *tree.ResponseFactory, logger *slog.Logger) *Reader {
	if treeFactory == nil {
		treeFactory = tree.NewResponseFactory()
	}

	return &Reader{
		integration: cfg,
		hclient:     http.DefaultClient,
		treeFactory: treeFactory,
		logger: internal.LoggerOrDiscard(logger).With(
			slog.String("reader", "azureBlobStorage"), slog.String("host", cfg.Host)),
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
	return fmt.Sprintf("azureBlobStorage(host=%s, accountName=%s)", r.integration.Host, r.integration.AccountName)
}

// parseURL splits u into container name and blob path.
func (r *Reader) parseURL(u *url.URL) (string, string, error) {
	if !urlreader.HostPredicate(r.integration.Host).Match(u) {
		return "", "", fmt.Errorf("%w: %s is not an Azure Blob Storage URL for host %s",
			urlreader.ErrInvalidURL, u.Redacted(), r.integration.Host)
	}

	containerName, key, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	if containerName == "" {
		return "", "", fmt.Errorf("%w: no container in %s", urlreader.ErrInvalidURL, u.Redacted())
	}

	return containerName, key, nil
}

func (r *Reader) openBucket(ctx context.Context, containerName string) (*blob.Bucket, error) {
	cred, err := azblob.NewSharedKeyCredential(r.integration.AccountName, r.integration.AccountKey)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials for account %s: %w", r.integration.AccountName, err)
	}

	containerURL := r.integration.Endpoint + "/" + url.PathEscape(containerName)

	client, err := container.NewClientWithSharedKeyCredential(containerURL, cred, &container.ClientOptions{
		ClientOptions: azcore.ClientOptions{Transport: r.hclient},
	})
	if err != nil {
		return nil, fmt.Errorf("create container client for %s: %w", containerURL, err)
	}

	bucket, err := azureblob.OpenBucket(ctx, client, nil)
	if err != nil {
		return nil, fmt.Errorf("open container %q: %w", containerName, err)
	}

	return bucket, nil
}

// ReadURL - implements urlreader.Reader
func (r *Reader) ReadURL(ctx context.Context, u *url.URL) ([]byte, error) {
	containerName, key, err := r.parseURL(u)
	if err != nil {
		return nil, err
	}

	if key == "" || strings.HasSuffix(key, "/") {
		return nil, fmt.Errorf("%w: no blob in %s", urlreader.ErrInvalidURL, u.Redacted())
	}

	r.logger.DebugContext(ctx, "reading blob", slog.String("container", containerName), slog.String("key", key))

	bucket, err := r.openBucket(ctx, containerName)
	if err != nil {
		return nil, err
	}

	return blobread.ReadObject(ctx, bucket, key, u)
}

// ReadTree - implements urlreader.Reader
//
// The blob path is treated as a directory prefix. The returned Response must
// be closed.
func (r *Reader) ReadTree(ctx context.Context, u *url.URL, opts ...tree.Option) (*tree.Response, error) {
	containerName, prefix, err := r.parseURL(u)
	if err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "reading tree", slog.String("container", containerName), slog.String("prefix", prefix))

	bucket, err := r.openBucket(ctx, containerName)
	if err != nil {
		return nil, err
	}

	return blobread.ReadTree(ctx, r.treeFactory, bucket, prefix, u, opts...)
}
