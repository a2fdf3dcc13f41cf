package s3reader

import (
	"github.com/hairyhenderson/go-urlreader"
	"github.com/hairyhenderson/go-urlreader/integration"
)

var _ urlreader.Factory = Factory

// Factory creates one reader per valid AWS S3 integration. Since buckets are
// usually part of the hostname, each reader matches its host and all of its
// subdomains.
func Factory(opts urlreader.FactoryOptions) []urlreader.Entry {
	opts = opts.WithDefaults()

	configs := integration.ReadAWSS3Configs(opts.Config, opts.Logger)
	entries := make([]urlreader.Entry, 0, len(configs))

	for _, cfg := range configs {
		entries = append(entries, urlreader.Entry{
			Reader:    NewReader(cfg, opts.TreeResponseFactory, opts.Logger),
			Predicate: urlreader.HostSuffixPredicate(cfg.Host),
		})
	}

	return entries
}
