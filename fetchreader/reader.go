package fetchreader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/hairyhenderson/go-urlreader"
	"github.com/hairyhenderson/go-urlreader/internal"
	"github.com/hairyhenderson/go-urlreader/tree"
)

// Reader reads URLs with plain GET requests.
type Reader struct {
	client  *http.Client
	headers http.Header
	logger  *slog.Logger
	allow   AllowList
}

var _ urlreader.Reader = (*Reader)(nil)

// NewReader returns a Reader that reads only URLs matched by allow.
func NewReader(allow AllowList, logger *slog.Logger) *Reader {
	return &Reader{
		allow:   allow,
		client:  http.DefaultClient,
		headers: http.Header{},
		logger:  internal.LoggerOrDiscard(logger).With(slog.String("reader", "fetch")),
	}
}

// WithHTTPClient returns a copy of the reader that sends requests with
// client.
func (r *Reader) WithHTTPClient(client *http.Client) *Reader {
	if client == nil {
		return r
	}

	out := *r
	out.client = client

	return &out
}

// WithHeader returns a copy of the reader that adds headers to every
// request.
func (r *Reader) WithHeader(headers http.Header) *Reader {
	if headers == nil {
		return r
	}

	out := *r
	out.headers = r.headers.Clone()

	for k, vs := range headers {
		for _, v := range vs {
			out.headers.Add(k, v)
		}
	}

	return &out
}

func (r *Reader) String() string {
	return fmt.Sprintf("fetch(%s)", r.allow)
}

// ReadURL - implements urlreader.Reader
func (r *Reader) ReadURL(ctx context.Context, u *url.URL) ([]byte, error) {
	if !r.allow.Match(u) {
		return nil, fmt.Errorf("%w: %s is not allowed by %s", urlreader.ErrInvalidURL, u.Redacted(), allowKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header = r.headers.Clone()

	r.logger.DebugContext(ctx, "fetching", slog.String("url", u.Redacted()))

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u.Redacted(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &urlreader.NotFoundError{URL: u.Redacted(), Err: httpError(resp)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: %w", u.Redacted(), httpError(resp))
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", u.Redacted(), err)
	}

	return b, nil
}

// ReadTree - implements urlreader.Reader
func (r *Reader) ReadTree(_ context.Context, u *url.URL, _ ...tree.Option) (*tree.Response, error) {
	return nil, fmt.Errorf("%w: fetch reader can't read tree %s", urlreader.ErrNotSupported, u.Redacted())
}

// StatusError is returned for unsuccessful HTTP responses.
type StatusError struct {
	Status     string
	StatusCode int
}

func (e *StatusError) Error() string {
	return "unexpected HTTP status " + e.Status
}

func httpError(resp *http.Response) error {
	status := resp.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return &StatusError{Status: status, StatusCode: resp.StatusCode}
}
