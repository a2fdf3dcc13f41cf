package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/hairyhenderson/go-urlreader"
	"github.com/hairyhenderson/go-urlreader/config"
	"github.com/hairyhenderson/go-urlreader/tracereader"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	stdout   io.Writer
	stderr   io.Writer
	logger   *slog.Logger
	registry *urlreader.Registry
	shutdown func(context.Context) error

	factories []urlreader.Factory
	configs   []string
	envFiles  []string
	verbose   bool
	tracing   bool
}

func newRootCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "urlreader",
		Short:         "Read files and trees from cloud storage and HTTP URLs",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.init(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if o.shutdown == nil {
				return nil
			}

			return o.shutdown(cmd.Context())
		},
	}

	cmd.SetOut(o.stdout)
	cmd.SetErr(o.stderr)

	flags := cmd.PersistentFlags()
	flags.StringArrayVarP(&o.configs, "config", "c", nil, "config file(s) to load, later files override earlier ones")
	flags.StringArrayVar(&o.envFiles, "env-file", nil, "dotenv file(s) to load before reading config")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&o.tracing, "tracing", false, "enable tracing with OTel")

	cmd.AddCommand(newReadCmd(o), newTreeCmd(o), newReadersCmd(o))

	return cmd
}

// init sets up logging, loads configuration and builds the registry.
func (o *rootOptions) init(ctx context.Context) error {
	o.logger = setupLogging(o.stderr, o.verbose)

	if len(o.envFiles) > 0 {
		if err := godotenv.Load(o.envFiles...); err != nil {
			return fmt.Errorf("loading env files: %w", err)
		}
	}

	cfg := config.New(nil)

	if len(o.configs) > 0 {
		var err error

		cfg, err = config.LoadFiles(o.configs...)
		if err != nil {
			return err
		}
	}

	factories := o.factories

	if o.tracing {
		shutdown, err := initTracing(context.WithoutCancel(ctx))
		if err != nil {
			return fmt.Errorf("init trace exporter: %w", err)
		}

		o.shutdown = shutdown

		factories = make([]urlreader.Factory, len(o.factories))
		for i, f := range o.factories {
			factories[i] = tracereader.Factory(f)
		}
	}

	o.registry = urlreader.Build(urlreader.FactoryOptions{Config: cfg, Logger: o.logger}, factories...)

	o.logger.DebugContext(ctx, "readers configured", slog.Int("count", o.registry.Len()))

	return nil
}
