package main

import (
	"github.com/spf13/cobra"

	"github.com/raoulx24/pages-prep/internal/pipeline"
)

func newBuildCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Run one preparation pass (the default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, opts)
		},
	}
}

func runBuild(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logg, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logg.Sync() }()

	_, err = pipeline.New(cfg, logg, nil).Run(cmd.Context())
	return err
}
