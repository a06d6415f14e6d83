package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

type rootOptions struct {
	configPath string
	skin       string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "popcorn",
		Short: "Browse and search movies from your terminal",
		Long: `popcorn lists popular movies and searches the TMDB catalogue as you type.
Set TMDB_API_KEY (or api-key in ~/.config/popcorn/config.yml) to a TMDB read token.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return runTUI(cfg)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is $HOME/.config/popcorn/config.yml)")
	root.Flags().StringVar(&opts.skin, "skin", "", "colour skin name (default or a file under ~/.config/popcorn/skins)")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newVersionCmd())
	return root
}

// load reads the config file and environment, then applies flag overrides.
func (o *rootOptions) load(cmd *cobra.Command) (appConfig, error) {
	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	if f := cmd.Flags().Lookup("skin"); f != nil && f.Changed {
		cfg.Skin = o.skin
	}
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Popcorn - Terminal Movie Browser\n")
			fmt.Fprintf(out, "  Version:    %s\n", version)
			fmt.Fprintf(out, "  Commit:     %s\n", commit)
			fmt.Fprintf(out, "  Built:      %s\n", buildTime)
			fmt.Fprintf(out, "  Go version: %s\n", runtime.Version())
		},
	}
}
