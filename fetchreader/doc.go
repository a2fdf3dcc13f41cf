// Package fetchreader reads plain HTTP(S) URLs from hosts explicitly allowed
// under "backend.reading.allow". It is meant as the fallback reader,
// registered after the storage-specific ones.
//
//	backend:
//	  reading:
//	    allow:
//	      - host: example.com
//	      - host: '*.internal.example.com:8080'
//	        paths: [/docs/]
//
// Trees can't be read over plain HTTP, so ReadTree always fails with
// urlreader.ErrNotSupported.
package fetchreader
