// Package autoreader builds a registry of every reader supported by this
// module. Using this package will compile all backend SDKs into the resulting
// binary, so unless you need them all, pass only the factories you need to
// urlreader.Build instead.
package autoreader

import (
	"github.com/hairyhenderson/go-urlreader"
	"github.com/hairyhenderson/go-urlreader/azurereader"
	"github.com/hairyhenderson/go-urlreader/fetchreader"
	"github.com/hairyhenderson/go-urlreader/gcsreader"
	"github.com/hairyhenderson/go-urlreader/s3reader"
)

// Factories returns the factories of all supported readers, in the order
// their entries are registered. The fetch reader comes last, so that it only
// handles URLs no storage-specific reader claims.
func Factories() []urlreader.Factory {
	return []urlreader.Factory{
		azurereader.Factory,
		s3reader.Factory,
		gcsreader.Factory,
		fetchreader.Factory,
	}
}

// New returns a registry holding the readers of every configured
// integration.
func New(opts urlreader.FactoryOptions) *urlreader.Registry {
	return urlreader.Build(opts, Factories()...)
}
