package gcsreader

import (
	"log/slog"

	"github.com/hairyhenderson/go-urlreader"
	"github.com/hairyhenderson/go-urlreader/integration"
)

var _ urlreader.Factory = Factory

// Factory creates one reader per valid GCS integration, each matching URLs
// whose hostname is exactly the integration's host.
func Factory(opts urlreader.FactoryOptions) []urlreader.Entry {
	opts = opts.WithDefaults()

	configs := integration.ReadGCSConfigs(opts.Config, opts.Logger)
	entries := make([]urlreader.Entry, 0, len(configs))

	for _, cfg := range configs {
		entries = append(entries, urlreader.Entry{
			Reader:    NewReader(cfg, opts.TreeResponseFactory, opts.Logger),
			Predicate: urlreader.HostPredicate(cfg.Host),
		})
	}

	opts.Logger.Debug("configured GCS readers", slog.Int("count", len(entries)))

	return entries
}
