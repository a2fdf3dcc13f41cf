// Package tracereader instruments a [urlreader.Reader] for distributed
// tracing with OpenTelemetry.
//
// # Usage
//
// Wrap a single reader with [New], or every reader a factory produces with
// [Factory]:
//
//	reg := urlreader.Build(opts,
//		tracereader.Factory(gcsreader.Factory),
//		tracereader.Factory(fetchreader.Factory),
//	)
//
// Each ReadURL and ReadTree call creates a span named "urlreader.ReadURL" or
// "urlreader.ReadTree", carrying the URL and the type of reader that served
// it. Failures are recorded on the span.
//
// In order to report traces, an OTel [trace.TracerProvider] must first be set
// up, or passed to [New] using [WithTracerProvider]. See the urlreader command
// for one approach.
package tracereader

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hairyhenderson/go-urlreader"
	"github.com/hairyhenderson/go-urlreader/tree"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/hairyhenderson/go-urlreader/tracereader"

type traceReader struct {
	reader urlreader.Reader
	tracer trace.Tracer
}

var _ urlreader.Reader = (*traceReader)(nil)

// New returns a Reader that instruments r, adding a trace span for each
// operation.
func New(r urlreader.Reader, opts ...Option) urlreader.Reader {
	cfg := config{}
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	if cfg.tp == nil {
		cfg.tp = otel.GetTracerProvider()
	}

	return &traceReader{
		reader: r,
		tracer: cfg.tp.Tracer(tracerName),
	}
}

// Factory wraps f so that every reader it creates is instrumented.
func Factory(f urlreader.Factory, opts ...Option) urlreader.Factory {
	return func(fo urlreader.FactoryOptions) []urlreader.Entry {
		entries := f(fo)
		for i, e := range entries {
			if e.Reader != nil {
				entries[i].Reader = New(e.Reader, opts...)
			}
		}

		return entries
	}
}

// Unwrap returns the instrumented reader.
func (t *traceReader) Unwrap() urlreader.Reader {
	return t.reader
}

func (t *traceReader) String() string {
	return fmt.Sprint(t.reader)
}

type resolver interface {
	Resolve(u *url.URL) (urlreader.Reader, bool)
}

// readerType names the reader that will serve u, looking through registries.
func (t *traceReader) readerType(u *url.URL) string {
	r := t.reader

	if res, ok := r.(resolver); ok {
		if resolved, ok := res.Resolve(u); ok {
			r = resolved
		}
	}

	if tr, ok := r.(*traceReader); ok {
		return tr.readerType(u)
	}

	return fmt.Sprintf("%T", r)
}

func (t *traceReader) start(ctx context.Context, name string, u *url.URL) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, trace.WithAttributes(
		semconv.URLFull(u.Redacted()),
		ReaderType(t.readerType(u)),
	))
}

func (t *traceReader) ReadURL(ctx context.Context, u *url.URL) ([]byte, error) {
	ctx, span := t.start(ctx, "urlreader.ReadURL", u)
	defer span.End()

	b, err := t.reader.ReadURL(ctx, u)
	if err != nil {
		return nil, recordError(span, err)
	}

	span.SetAttributes(FileSize(int64(len(b))))

	return b, nil
}

func (t *traceReader) ReadTree(ctx context.Context, u *url.URL, opts ...tree.Option) (*tree.Response, error) {
	ctx, span := t.start(ctx, "urlreader.ReadTree", u)
	defer span.End()

	resp, err := t.reader.ReadTree(ctx, u, opts...)
	if err != nil {
		return nil, recordError(span, err)
	}

	span.SetAttributes(TreeFiles(len(resp.Paths())))

	return resp, nil
}

func recordError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	return err
}
