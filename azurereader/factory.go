package azurereader

import (
	"github.com/hairyhenderson/go-urlreader"
	"github.com/hairyhenderson/go-urlreader/integration"
)

var _ urlreader.Factory = Factory

// Factory creates one reader per valid Azure Blob Storage integration, each
// matching its account's host exactly.
func Factory(opts urlreader.FactoryOptions) []urlreader.Entry {
	opts = opts.WithDefaults()

	configs := integration.ReadAzureBlobConfigs(opts.Config, opts.Logger)
	entries := make([]urlreader.Entry, 0, len(configs))

	for _, cfg := range configs {
		entries = append(entries, urlreader.Entry{
			Reader:    NewReader(cfg, opts.TreeResponseFactory, opts.Logger),
			Predicate: urlreader.HostPredicate(cfg.Host),
		})
	}

	return entries
}
