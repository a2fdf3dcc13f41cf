package tracereader

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"testing/fstest"

	"github.com/hairyhenderson/go-urlreader"
	"github.com/hairyhenderson/go-urlreader/internal/tests"
	"github.com/hairyhenderson/go-urlreader/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

//nolint:gochecknoglobals
var (
	exporter = tracetest.NewInMemoryExporter()
	tp       = sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
)

func attribmap(kvs []attribute.KeyValue) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs))

	for _, attr := range kvs {
		m[string(attr.Key)] = attr.Value.AsInterface()
	}

	return m
}

type mapReader struct {
	fsys fstest.MapFS
}

func (r *mapReader) ReadURL(_ context.Context, u *url.URL) ([]byte, error) {
	f, ok := r.fsys[u.Path[1:]]
	if !ok {
		return nil, &urlreader.NotFoundError{URL: u.String()}
	}

	return f.Data, nil
}

func (r *mapReader) ReadTree(ctx context.Context, _ *url.URL, opts ...tree.Option) (*tree.Response, error) {
	return tree.NewResponseFactory().FromFS(ctx, r.fsys, opts...)
}

func (r *mapReader) String() string {
	return "map"
}

func newMapReader() *mapReader {
	return &mapReader{fsys: fstest.MapFS{
		"a.txt":     {Data: []byte("hello")},
		"dir/b.txt": {Data: []byte("world")},
	}}
}

func TestReadURL(t *testing.T) {
	exporter.Reset()

	r := New(newMapReader(), WithTracerProvider(tp))

	b, err := r.ReadURL(context.Background(), tests.MustURL("mem:///a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "urlreader.ReadURL", spans[0].Name)
	assert.Equal(t, map[string]interface{}{
		"url.full":    "mem:///a.txt",
		"reader.type": "*tracereader.mapReader",
		"file.size":   int64(5),
	}, attribmap(spans[0].Attributes))
	assert.Equal(t, codes.Unset, spans[0].Status.Code)
}

func TestReadURL_Error(t *testing.T) {
	exporter.Reset()

	r := New(newMapReader(), WithTracerProvider(tp))

	_, err := r.ReadURL(context.Background(), tests.MustURL("mem:///missing.txt"))
	assert.True(t, urlreader.IsNotFound(err))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "exception", spans[0].Events[0].Name)
}

func TestReadTree(t *testing.T) {
	exporter.Reset()

	r := New(newMapReader(), WithTracerProvider(tp))

	resp, err := r.ReadTree(context.Background(), tests.MustURL("mem:///"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "dir/b.txt"}, resp.Paths())

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "urlreader.ReadTree", spans[0].Name)
	assert.Equal(t, int64(2), attribmap(spans[0].Attributes)["tree.files"])
}

func TestRegistryReaderType(t *testing.T) {
	exporter.Reset()

	reg := urlreader.NewRegistry(urlreader.Entry{
		Reader:    newMapReader(),
		Predicate: urlreader.PredicateFunc(func(u *url.URL) bool { return u.Scheme == "mem" }),
	})

	r := New(reg, WithTracerProvider(tp))

	_, err := r.ReadURL(context.Background(), tests.MustURL("mem:///a.txt"))
	require.NoError(t, err)

	_, err = r.ReadURL(context.Background(), tests.MustURL("https://example.com/a.txt"))
	require.ErrorIs(t, err, urlreader.ErrNoReader)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "*tracereader.mapReader", attribmap(spans[0].Attributes)["reader.type"])
	assert.Equal(t, "*urlreader.Registry", attribmap(spans[1].Attributes)["reader.type"])
}

func TestFactory(t *testing.T) {
	exporter.Reset()

	inner := newMapReader()
	f := Factory(func(urlreader.FactoryOptions) []urlreader.Entry {
		return []urlreader.Entry{
			{Reader: inner, Predicate: urlreader.HostPredicate("example.com")},
			{Predicate: urlreader.HostPredicate("nil.example.com")},
		}
	}, WithTracerProvider(tp))

	entries := f(urlreader.FactoryOptions{})
	require.Len(t, entries, 2)
	assert.Nil(t, entries[1].Reader)

	tr, ok := entries[0].Reader.(interface{ Unwrap() urlreader.Reader })
	require.True(t, ok)
	assert.Same(t, inner, tr.Unwrap())
	assert.Equal(t, "map", entries[0].Reader.(interface{ String() string }).String())

	_, err := entries[0].Reader.ReadURL(context.Background(), tests.MustURL("https://example.com/dir/b.txt"))
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "*tracereader.mapReader", attribmap(spans[0].Attributes)["reader.type"])
}

func TestRecordError(t *testing.T) {
	exporter.Reset()

	_, span := tp.Tracer("test").Start(context.Background(), "test")
	err := recordError(span, errors.New("boom"))
	span.End()

	assert.EqualError(t, err, "boom")

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "boom", spans[0].Status.Description)
}
