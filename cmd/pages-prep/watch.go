package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raoulx24/pages-prep/internal/mailbox"
	"github.com/raoulx24/pages-prep/internal/pipeline"
	"github.com/raoulx24/pages-prep/internal/watcher"
)

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Prepare the tree again whenever the build stamp changes",
		Long: `watch runs one pass immediately, then waits for the external build to touch
the trigger file (watch.trigger, relative to the root) and runs again.
SIGHUP reloads the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts)
		},
	}
}

func runWatch(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logg, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logg.Sync() }()

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Mailbox for build triggers
	mb := mailbox.New[watcher.Trigger]()

	p := pipeline.New(cfg, logg, nil)
	if _, err := p.Run(ctx); err != nil {
		logg.Error("initial preparation failed", "error", err)
	}

	watch := watcher.New(cfg.Root, cfg.Watch, logg, mb, nil)

	go p.Start(ctx, mb)

	errCh := make(chan error, 1)
	go func() {
		errCh <- watch.Start(ctx)
	}()

	// Hot reload on SIGHUP
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGHUP)
		defer signal.Stop(sigCh)

		for {
			select {
			case <-ctx.Done():
				return
			case <-sigCh:
			}

			newCfg, err := loadConfig(cmd, opts)
			if err != nil {
				logg.Error("config reload failed", "error", err)
				continue
			}

			p.UpdateConfig(newCfg)
			watch.UpdateConfig(newCfg.Root, newCfg.Watch)

			logg.Info("config reloaded", "release", newCfg.Release)
		}
	}()

	select {
	case <-ctx.Done():
		logg.Info("shutting down")
		return nil
	case err := <-errCh:
		if err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	}
}

