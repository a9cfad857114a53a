package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/linkbio/linkbio/internal/api"
	"github.com/linkbio/linkbio/internal/config"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the linkbio web server",
	Long:  `Start the linkbio web server. Pages are rendered on the server and all data is read from and written to the configured backend.`,
	Example: `linkbio serve --config config.yml
linkbio serve -c /path/to/config.yml --log-level debug
`,
	Run: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	server, err := api.New(cfg, log.GetLevel() == log.DebugLevel)
	if err != nil {
		log.Fatalf("failed to create web server: %v", err)
	}

	go func() {
		log.Info("starting web server", "listen", cfg.Listen, "backend", cfg.API.BaseURL)
		if err := server.Run(); err != nil {
			log.Fatalf("web server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	log.Info("linkbio started successfully")
	select {
	case <-c:
	case <-cmd.Context().Done():
	}
	log.Info("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shut down web server", "error", err)
	}
}
