package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sidenav/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and serve it with live reload",
	Long:  `Builds the site, serves it over HTTP with the navigation API, and rebuilds on content changes, pushing reloads to open pages.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides serve.port)")
	serveCmd.Flags().Bool("open", false, "open browser automatically")
	serveCmd.Flags().Bool("no-watch", false, "do not rebuild on changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Serve.Port = port
	}
	if open, _ := cmd.Flags().GetBool("open"); open {
		cfg.Serve.Open = true
	}
	if noWatch, _ := cmd.Flags().GetBool("no-watch"); noWatch {
		cfg.Serve.Watch = false
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen := newGenerator(cfg)
	result, err := gen.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}
	fmt.Printf("Static site generated: %s (%d pages)\n", cfg.OutputDir, len(result.Pages))

	hub := site.NewHub(logger, site.WithAllowAllOrigins(cfg.Serve.AllowAll))
	hub.Broadcast(result.BuildID)

	if cfg.Serve.Watch {
		watcher, err := site.NewWatcher(gen, func(r *site.Result) {
			fmt.Printf("Rebuilt %d pages\n", len(r.Pages))
			hub.Broadcast(r.BuildID)
		}, site.WithWatchLogger(logger))
		if err != nil {
			return fmt.Errorf("creating watcher: %w", err)
		}
		if err := watcher.Start(ctx); err != nil {
			return fmt.Errorf("watching %s: %w", cfg.ContentDir, err)
		}
		defer watcher.Stop()
	}

	srv := site.NewServer(site.ServerConfig{
		Port:     cfg.Serve.Port,
		Dir:      cfg.OutputDir,
		AllowAll: cfg.Serve.AllowAll,
		Open:     cfg.Serve.Open,
	}, gen, hub, logger)

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	fmt.Printf("Serving documentation at http://localhost:%d (press Ctrl+C to stop)\n", cfg.Serve.Port)
	return srv.Start()
}
