package main

import (
	"github.com/spf13/cobra"

	"github.com/raoulx24/pages-prep/internal/config"
	"github.com/raoulx24/pages-prep/internal/logging"
)

// options holds the persistent flags. Flags left unset keep the values from
// the config file.
type options struct {
	configPath   string
	root         string
	output       string
	release      string
	flattenIndex bool
	verify       bool
	logLevel     string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "pages-prep",
		Short: "Prepare a static asset tree for CDN hosting",
		Long: `pages-prep strips pre-compression suffixes from the app tree, optionally
flattens the index directory, and writes the _headers and _redirects rule
files for the release being deployed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, opts)
		},
	}

	f := root.PersistentFlags()
	f.StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "path to the YAML config file")
	f.StringVar(&opts.root, "root", "", "asset root containing app/ and index/")
	f.StringVar(&opts.output, "output", "", "directory receiving _headers and _redirects")
	f.StringVar(&opts.release, "release", "", "release version used in versioned paths")
	f.BoolVar(&opts.flattenIndex, "flatten-index", false, "move index/ entries up into the root")
	f.BoolVar(&opts.verify, "verify", false, "check that every payload decodes as brotli before renaming")
	f.StringVar(&opts.logLevel, "log-level", "", "debug, info or error")

	root.AddCommand(
		newBuildCmd(opts),
		newWatchCmd(opts),
		newHeadersCmd(opts),
		newRedirectsCmd(opts),
		newMatchCmd(opts),
	)
	return root
}

// loadConfig reads the config file and applies flag overrides. The default
// config path may be absent; an explicit one must exist.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	explicit := cmd.Flags().Changed("config")
	cfg, err := config.Load(opts.configPath, !explicit)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Root = opts.root
	}
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("release") {
		cfg.Release = opts.release
	}
	if flags.Changed("flatten-index") {
		cfg.FlattenIndex = opts.flattenIndex
	}
	if flags.Changed("verify") {
		cfg.Verify = opts.verify
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (logging.ZapLogger, error) {
	return logging.New(cfg.Logging.Level, cfg.Logging.Format)
}
