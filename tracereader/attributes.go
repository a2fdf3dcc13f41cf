package tracereader

import (
	"go.opentelemetry.io/otel/attribute"
)

const (
	typeKey      = attribute.Key("reader.type")
	sizeKey      = attribute.Key("file.size")
	treeFilesKey = attribute.Key("tree.files")
)

// The type of reader handling the URL.
//
// Type: string
// Required: No
// Examples: "*gcsreader.Reader", "*fetchreader.Reader"
func ReaderType(name string) attribute.KeyValue {
	return typeKey.String(name)
}

// The size of the content read by ReadURL.
//
// Type: int64
// Required: No
// Examples: 1024, 0
func FileSize(n int64) attribute.KeyValue {
	return sizeKey.Int64(n)
}

// The number of files in a tree returned by ReadTree.
//
// Type: int
// Required: No
// Examples: 3, 0
func TreeFiles(n int) attribute.KeyValue {
	return treeFilesKey.Int(n)
}
