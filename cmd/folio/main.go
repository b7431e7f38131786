package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmcdole/folio/internal/config"
)

// Version is set at build time via -ldflags
var Version = "dev"

// Persistent flags shared by every subcommand
var (
	configPath string
	debug      bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "folio",
		Short:         "A photography gallery for a folder of images",
		Long:          `folio serves a photo folder over HTTP and browses it as a masonry gallery in the terminal.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/folio/config.yaml)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(serveCmd())
	root.AddCommand(browseCmd())
	root.AddCommand(versionCmd())
	return root
}

// loadConfig reads the config file named by --config, or the default locations
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadConfigFile(configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if debug {
		cfg.Logging.Level = "DEBUG"
	}
	return cfg, nil
}
