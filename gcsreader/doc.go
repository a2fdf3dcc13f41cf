// Package gcsreader reads objects and directory trees from Google Cloud
// Storage, authenticating with service account credentials configured under
// "integrations.gcs".
//
// URLs take the form https://storage.cloud.google.com/<bucket>/<object>, where
// the host can be overridden per integration (for example, to match URLs of a
// proxy in front of GCS).
//
// Register the readers with a urlreader.Registry by passing Factory to
// urlreader.Build.
package gcsreader
