package urlreader

import (
	"log/slog"

	"github.com/hairyhenderson/go-urlreader/config"
	"github.com/hairyhenderson/go-urlreader/internal"
	"github.com/hairyhenderson/go-urlreader/tree"
)

// FactoryOptions carries what a Factory needs to build its readers.
type FactoryOptions struct {
	Config              *config.Config
	Logger              *slog.Logger
	TreeResponseFactory *tree.ResponseFactory
}

// Factory builds zero or more entries for one backend type from
// configuration. A backend that isn't configured yields no entries. Factories
// must not perform network I/O.
type Factory func(opts FactoryOptions) []Entry

// WithDefaults returns a copy of o with nil fields replaced by usable
// defaults: an empty config, a logger that discards everything, and a tree
// response factory built from the config.
func (o FactoryOptions) WithDefaults() FactoryOptions {
	if o.Config == nil {
		o.Config = config.New(nil)
	}

	o.Logger = internal.LoggerOrDiscard(o.Logger)

	if o.TreeResponseFactory == nil {
		o.TreeResponseFactory = tree.FromConfig(o.Config)
	}

	return o
}

// Build runs each factory in turn and registers the resulting entries, in
// order, in a new Registry.
func Build(opts FactoryOptions, factories ...Factory) *Registry {
	opts = opts.WithDefaults()

	var reg *Registry

	for _, f := range factories {
		if f == nil {
			continue
		}

		reg = reg.Register(f(opts)...)
	}

	if reg == nil {
		return NewRegistry()
	}

	return reg
}
