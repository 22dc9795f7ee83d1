package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/raoulx24/pages-prep/internal/pipeline"
	"github.com/raoulx24/pages-prep/internal/rules"
)

func newHeadersCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "headers",
		Short: "Print the _headers file without touching the tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			blocks := rules.Headers(pipeline.HeaderParams(cfg, time.Now()))
			_, err = fmt.Fprint(cmd.OutOrStdout(), rules.RenderHeaders(blocks))
			return err
		},
	}
}

func newRedirectsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "redirects",
		Short: "Print the _redirects file without touching the tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			rs := rules.Redirects(pipeline.RedirectParams(cfg))
			if err := rules.ValidateRedirectOrder(rs); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rules.RenderRedirects(rs))
			return err
		},
	}
}

func newMatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "match <url-path>",
		Short: "Show which header blocks and redirect rules apply to a request path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			urlPath := args[0]

			blocks := rules.MatchingBlocks(rules.Headers(pipeline.HeaderParams(cfg, time.Now())), urlPath)
			if len(blocks) > 0 {
				fmt.Fprint(out, rules.RenderHeaders(blocks))
			}
			for _, r := range rules.Redirects(pipeline.RedirectParams(cfg)) {
				if rules.Match(r.From, urlPath) {
					// the platform applies the first matching redirect only
					fmt.Fprintf(out, "redirect: %s\n", r)
					break
				}
			}
			if len(blocks) == 0 {
				fmt.Fprintf(out, "no header rules match %s\n", urlPath)
			}
			return nil
		},
	}
}
