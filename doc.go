// Package urlreader dispatches URL reads to the reader responsible for them.
//
// A [Registry] holds an ordered list of [Entry] values, each pairing a
// [Reader] with a [Predicate]. Resolving a URL returns the reader of the first
// entry whose predicate matches, so entries registered earlier take
// precedence. A Registry is itself a Reader, and can be used directly:
//
//	cfg, err := config.LoadFiles("app-config.yaml")
//	if err != nil {
//		return err
//	}
//
//	reg := urlreader.Build(urlreader.FactoryOptions{Config: cfg, Logger: logger},
//		gcsreader.Factory,
//		fetchreader.Factory,
//	)
//
//	b, err := reg.ReadURL(ctx, u)
//
// Readers for each supported backend live in their own packages
// (gcsreader, s3reader, azurereader, fetchreader), each exposing a [Factory]
// that turns configuration into entries. The autoreader package registers all
// of them.
package urlreader
