package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmcdole/folio/internal/log"
	"github.com/mmcdole/folio/internal/server"
)

func serveCmd() *cobra.Command {
	var (
		addr   string
		images string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the image listing, the images and the gallery page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("images") {
				cfg.Server.ImagesDir = images
			}

			logger := log.ConsoleLogger(os.Stderr, cfg.Logging.Level)

			srv, err := server.New(cfg.Server, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.Run(ctx); err != nil {
				return err
			}
			logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8000)")
	cmd.Flags().StringVar(&images, "images", "", "images directory (default ./images)")
	return cmd
}
