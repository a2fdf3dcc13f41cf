package integration

import (
	"fmt"
	"log/slog"

	"github.com/hairyhenderson/go-urlreader/config"
	"github.com/hairyhenderson/go-urlreader/internal"
)

// readAll applies read to every element of the list at key, keeping the
// successful results in order. Elements that fail are logged and skipped.
func readAll[T any](cfg *config.Config, logger *slog.Logger, key string, read func(*config.Config) (T, error)) []T {
	logger = internal.LoggerOrDiscard(logger)

	items, ok, err := cfg.OptionalArray(key)
	if err != nil {
		logger.Warn("ignoring integration config", slog.String("key", key), slog.Any("err", err))

		return []T{}
	}

	if !ok {
		return []T{}
	}

	out := make([]T, 0, len(items))

	for i, item := range items {
		c, err := cfg.Element(key, i, item)
		if err != nil {
			logger.Debug("skipping invalid integration entry",
				slog.String("key", key), slog.Int("index", i), slog.Any("err", err))

			continue
		}

		v, err := read(c)
		if err != nil {
			logger.Debug("skipping invalid integration entry",
				slog.String("key", key), slog.Int("index", i), slog.Any("err", err))

			continue
		}

		out = append(out, v)
	}

	return out
}

func optionalString(c *config.Config, key, def string) (string, error) {
	s, ok, err := c.OptionalString(key)
	if err != nil {
		return "", err
	}

	if !ok || s == "" {
		return def, nil
	}

	return s, nil
}

func requiredString(c *config.Config, key string) (string, error) {
	s, err := c.String(key)
	if err != nil {
		return "", err
	}

	if s == "" {
		return "", fmt.Errorf("%w %q: empty", config.ErrMissing, fullKey(c, key))
	}

	return s, nil
}

func fullKey(c *config.Config, key string) string {
	if c.Prefix() == "" {
		return key
	}

	return c.Prefix() + "." + key
}
