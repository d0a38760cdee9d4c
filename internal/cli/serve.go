package cli

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

	"github.com/spf13/cobra"

	"msgboard/internal/config"
	"msgboard/internal/database"
	"msgboard/internal/handler"
	"msgboard/internal/store"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Port string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(opts.RootOptions)
			if opts.Port != "" {
				cfg.ServerPort = opts.Port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.Port, "port", "p", "", "listen port (overrides SERVER_PORT)")

	return cmd
}

func runServer(ctx context.Context, cfg config.Config) error {
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
	}

	h := handler.New(store.New(db.Gorm), cfg)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	fmt.Println("========================================")
	fmt.Println("  Message Board API Server")
	fmt.Println("========================================")
	fmt.Printf("  Environment: %s\n", cfg.Env)
	fmt.Printf("  Server: http://localhost:%s\n", cfg.ServerPort)
	if cfg.DBDriver == config.DriverMySQL {
		fmt.Printf("  Database: mysql %s@%s:%s/%s\n", cfg.DBUser, cfg.DBHost, cfg.DBPort, cfg.DBName)
	} else {
		fmt.Printf("  Database: sqlite %s\n", cfg.DBPath)
	}
	fmt.Printf("  Allowed Origins: %v\n", cfg.AllowedOrigins)
	fmt.Println("========================================")

	errCh := make(chan error, 1)
	go func() {
		log.Println("🚀 Server started successfully")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutdown signal received; shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Println("Server stopped")
	return nil
}
