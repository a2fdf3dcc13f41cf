// Package blobfs provides a read-only filesystem view of a blob storage
// bucket, such as a Google Cloud Storage, Azure Blob Storage, or AWS S3
// bucket, as opened with the Go CDK (gocloud.dev/blob).
//
// This filesystem's behaviour complies with fstest.TestFS.
//
// # Usage
//
// Open a bucket for the backend in question, then call New with the bucket
// and the key prefix to treat as the filesystem's root. The bucket is not
// closed by the filesystem.
package blobfs
