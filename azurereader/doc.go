// Package azurereader reads blobs and directory trees from Azure Blob Storage
// accounts configured under "integrations.azureBlobStorage", using shared
// account keys.
//
// URLs take the form https://<account>.blob.core.windows.net/<container>/<path>.
package azurereader
