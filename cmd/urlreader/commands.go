package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"text/tabwriter"

	"github.com/hairyhenderson/go-urlreader"
	"github.com/hairyhenderson/go-urlreader/tree"
	"github.com/spf13/cobra"
)

func parseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}

	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%w: %q must be an absolute URL", urlreader.ErrInvalidURL, raw)
	}

	return u, nil
}

func newReadCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "read URL",
		Short: "Print the content at URL to standard output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := parseURL(args[0])
			if err != nil {
				return err
			}

			b, err := o.registry.ReadURL(cmd.Context(), u)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(b)

			return err
		},
	}
}

func newTreeCmd(o *rootOptions) *cobra.Command {
	var outDir, archive string

	cmd := &cobra.Command{
		Use:   "tree URL",
		Short: "List the files below URL, or write them to a directory or archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			u, err := parseURL(args[0])
			if err != nil {
				return err
			}

			resp, err := o.registry.ReadTree(ctx, u)
			if err != nil {
				return err
			}
			defer resp.Close()

			w := cmd.OutOrStdout()

			switch {
			case outDir != "":
				dir, err := resp.Dir(ctx, outDir)
				if err != nil {
					return err
				}

				_, err = fmt.Fprintln(w, dir)

				return err
			case archive != "":
				return writeArchive(cmd, resp, archive)
			default:
				for _, p := range resp.Paths() {
					if _, err := fmt.Fprintln(w, p); err != nil {
						return err
					}
				}

				return nil
			}
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "write the files into `DIR`")
	cmd.Flags().StringVarP(&archive, "archive", "a", "", "write the files to a gzipped tar `FILE` (- for standard output)")
	cmd.MarkFlagsMutuallyExclusive("out", "archive")

	return cmd
}

func writeArchive(cmd *cobra.Command, resp *tree.Response, name string) error {
	if name == "-" {
		return resp.Archive(cmd.Context(), cmd.OutOrStdout())
	}

	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}

	if err := resp.Archive(cmd.Context(), f); err != nil {
		_ = f.Close()

		return err
	}

	return f.Close()
}

func newReadersCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "readers",
		Short: "List the configured readers, in the order they're matched",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listReaders(cmd.OutOrStdout(), o.registry.Entries())
		},
	}
}

type unwrapper interface {
	Unwrap() urlreader.Reader
}

func listReaders(w io.Writer, entries []urlreader.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "#\tTYPE\tMATCHES\tREADER")

	for i, e := range entries {
		r := e.Reader
		if uw, ok := r.(unwrapper); ok {
			r = uw.Unwrap()
		}

		fmt.Fprintf(tw, "%d\t%T\t%v\t%v\n", i, r, e.Predicate, r)
	}

	return tw.Flush()
}
