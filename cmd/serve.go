package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dkadlec/face-lounge/internal/config"
	"github.com/dkadlec/face-lounge/internal/recognition"
	"github.com/dkadlec/face-lounge/internal/store/postgres"
	"github.com/dkadlec/face-lounge/internal/upload"
	"github.com/dkadlec/face-lounge/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the Face Lounge web server.
The server exposes the face registration and recognition API together
with the chat room endpoints.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to")
	serveCmd.Flags().String("provider", "gemini", "AI provider to use: gemini, openai, ollama")
}

// resolveServeHostPort resolves port and host from flags and environment variables.
func resolveServeHostPort(cmd *cobra.Command) (int, string) {
	port := mustGetInt(cmd, "port")
	host := mustGetString(cmd, "host")

	if envPort := os.Getenv("WEB_PORT"); envPort != "" {
		fmt.Sscanf(envPort, "%d", &port)
	}
	if envHost := os.Getenv("WEB_HOST"); envHost != "" {
		host = envHost
	}
	return port, host
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}
	if cfg.Upload.URL == "" {
		return errors.New("UPLOAD_URL environment variable is required")
	}

	fmt.Printf("Connecting to PostgreSQL database...\n")
	pool, err := postgres.Initialize(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	defer pool.Close()

	profileRepo := postgres.NewProfileRepository(pool)
	messageRepo := postgres.NewMessageRepository(pool)

	uploader, err := upload.New(cfg.Upload.URL, cfg.Upload.Token)
	if err != nil {
		return fmt.Errorf("failed to create upload client: %w", err)
	}

	provider, err := createAIProvider(cfg, mustGetString(cmd, "provider"))
	if err != nil {
		return err
	}
	fmt.Printf("Provider: %s\n", provider.Name())

	workflow := recognition.New(uploader, provider, profileRepo)
	port, host := resolveServeHostPort(cmd)

	server := web.NewServer(cfg, port, host, workflow, profileRepo, messageRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting Face Lounge on http://%s:%d\n", host, port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
