// Package tree builds the responses returned by URL readers when reading a
// whole directory tree.
//
// A Response is built from any fs.FS, which is walked once up front so that
// the set of files is fixed. The files' content can then be consumed as a
// list (Files), as a gzipped tarball (Archive), or written to a local
// directory (Dir).
package tree
