// Package s3reader reads objects and directory trees from AWS S3 and
// S3-compatible stores configured under "integrations.awsS3".
//
// Both virtual-hosted and path-style URLs are understood:
//
//	https://bucket.s3.us-west-2.amazonaws.com/path/to/file
//	https://bucket.s3-us-west-2.amazonaws.com/path/to/file
//	https://bucket.s3.amazonaws.com/path/to/file
//	https://s3.us-west-2.amazonaws.com/bucket/path/to/file
//
// When an integration sets an endpoint or s3ForcePathStyle, the bucket is
// always taken from the first path segment.
package s3reader
