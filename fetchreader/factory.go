package fetchreader

import (
	"log/slog"

	"github.com/hairyhenderson/go-urlreader"
)

var _ urlreader.Factory = Factory

// Factory creates a single fetch reader covering every valid allow rule, or
// nothing when there are none.
func Factory(opts urlreader.FactoryOptions) []urlreader.Entry {
	opts = opts.WithDefaults()

	rules := ReadAllowRules(opts.Config, opts.Logger)
	if len(rules) == 0 {
		return []urlreader.Entry{}
	}

	allow := AllowList(rules)

	opts.Logger.Debug("configured fetch reader", slog.Int("rules", len(rules)))

	return []urlreader.Entry{{
		Reader:    NewReader(allow, opts.Logger),
		Predicate: allow,
	}}
}
