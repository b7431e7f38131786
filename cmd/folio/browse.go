package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/folio/internal/config"
	"github.com/mmcdole/folio/internal/imageinfo"
	"github.com/mmcdole/folio/internal/log"
	"github.com/mmcdole/folio/internal/resolver"
	"github.com/mmcdole/folio/internal/tui"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [base-url]",
		Short: "Browse a gallery in the terminal",
		Long: `Browse resolves the images of a gallery served at base-url (the listing
endpoint first, probing common file names otherwise) and shows them as a
masonry grid with a lightbox.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("browse needs an interactive terminal")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.Gallery.BaseURL = args[0]
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			return runBrowse(cfg)
		},
	}
}

func runBrowse(cfg *config.Config) error {
	// The terminal belongs to the UI, so logs go to a file
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting folio", "version", Version, "base_url", cfg.Gallery.BaseURL)

	model, err := newBrowseModel(cfg, logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// newBrowseModel wires the resolver and tile loader for the configured gallery
func newBrowseModel(cfg *config.Config, logger *slog.Logger) (tui.Model, error) {
	g := cfg.Gallery

	paths, err := resolver.NewPaths(g.BaseURL, g.BasePath, g.ImagesPath)
	if err != nil {
		return tui.Model{}, err
	}

	httpClient := &http.Client{Timeout: g.RequestTimeout}

	var lister *resolver.HTTPLister
	if g.ListingEndpoint != "" {
		lister = resolver.NewHTTPLister(paths.Listing(g.ListingEndpoint), httpClient, logger)
	}

	opts := resolver.Options{
		Prober:        resolver.NewHTTPProber(paths, g.ProbeTimeout, &http.Client{}, logger),
		TargetCount:   g.TargetCount,
		MaxCandidates: g.MaxCandidates,
		Logger:        logger,
	}
	if lister != nil {
		opts.Lister = lister
	}

	return tui.NewModel(tui.Options{
		Resolver:       resolver.New(opts),
		Loader:         imageinfo.NewFetcher(httpClient, g.LoadConcurrency, logger),
		ImageURL:       paths.Image,
		UI:             cfg.UI,
		ResolveTimeout: g.ResolveTimeout(),
		LoadTimeout:    g.RequestTimeout,
		Logger:         logger,
	}), nil
}
