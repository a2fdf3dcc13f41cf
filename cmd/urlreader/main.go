/*
urlreader reads files and directory trees from any URL supported by the
configured readers: Google Cloud Storage, AWS S3, Azure Blob Storage, and
allow-listed HTTP(S) hosts.

# Usage

	urlreader [flags] <command>

	Flags:
	  -c, --config stringArray     config file(s) to load, later files override earlier ones
	      --env-file stringArray   dotenv file(s) to load before reading config
	      --tracing                enable tracing with OTel
	  -v, --verbose                enable debug logging

	Commands:
	  read URL      print the content at URL to standard output
	  tree URL      list, extract (--out DIR) or archive (--archive FILE) the files below URL
	  readers       list the configured readers, in the order they're matched

# Examples

	$ urlreader -c app-config.yaml read https://storage.cloud.google.com/team1/service1/catalog-info.yaml
	apiVersion: backstage.io/v1alpha1
	kind: Component
	...

	$ urlreader -c app-config.yaml tree https://storage.cloud.google.com/team1/service1/docs
	index.md
	guides/setup.md

	$ urlreader -c app-config.yaml readers
	 #  TYPE                 MATCHES                               READER
	 0  *gcsreader.Reader    host=storage.cloud.google.com         gcs(host=storage.cloud.google.com, clientEmail=...)
	 1  *fetchreader.Reader  allow=(host=example.com)              fetch(allow=(host=example.com))
*/
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hairyhenderson/go-urlreader/autoreader"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)

	o := &rootOptions{
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		factories: autoreader.Factories(),
	}

	err := newRootCmd(o).ExecuteContext(ctx)

	stop()

	if err != nil {
		slog.Error("exiting with error", slog.Any("err", err))
		os.Exit(1)
	}
}
