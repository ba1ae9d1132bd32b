package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/killallgit/marathon-api/api"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		serverHost string
		serverPort int
	)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long: `Start the Marathon API server with the configured settings.

The server exposes the current marathon draft, its live event stream and
the saved marathons over HTTP.

Example:
  marathon-api serve
  marathon-api serve --port 9090
  marathon-api serve --host 0.0.0.0 --port 8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd, serverHost, serverPort)
		},
	}

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")

	return serveCmd
}

func runServer(cmd *cobra.Command, host string, port int) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if host == "" {
		host = cfg.Server.Host
	}
	if port == 0 {
		port = cfg.Server.Port
	}
	if port < 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := newApp(ctx, cfg, appOptions{writeBehind: true})
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Printf("[ERROR] Shutdown cleanup failed: %v", err)
		}
	}()

	address := fmt.Sprintf("%s:%d", host, port)
	server := api.NewServer(address, cfg)
	server.SetDependencies(application.dependencies())
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	log.Printf("[INFO] Marathon API listening on %s (storage: %s)", address, cfg.Storage.Backend)

	select {
	case <-ctx.Done():
		log.Printf("[INFO] Shutting down server...")
	case err = <-serverErr:
		log.Printf("[ERROR] %v", err)
	}

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Printf("[ERROR] Server forced to shutdown: %v", shutdownErr)
		return errors.Join(err, shutdownErr)
	}

	log.Printf("[INFO] Server gracefully stopped")
	return err
}
