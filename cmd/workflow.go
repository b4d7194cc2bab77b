package cmd

import (
	"errors"
	"fmt"

	"github.com/dkadlec/face-lounge/internal/ai"
	"github.com/dkadlec/face-lounge/internal/config"
	"github.com/dkadlec/face-lounge/internal/recognition"
	"github.com/dkadlec/face-lounge/internal/store/postgres"
	"github.com/dkadlec/face-lounge/internal/upload"
	"github.com/spf13/cobra"
)

// workflowDeps bundles the wired recognition workflow with the resources
// CLI commands report on and clean up.
type workflowDeps struct {
	workflow *recognition.Workflow
	provider ai.Provider
	pool     *postgres.Pool
}

func (d *workflowDeps) close() {
	d.pool.Close()
}

// createWorkflow wires the recognition workflow for CLI commands.
func createWorkflow(cmd *cobra.Command, cfg *config.Config) (*workflowDeps, error) {
	if cfg.Database.URL == "" {
		return nil, errors.New("DATABASE_URL environment variable is required")
	}
	if cfg.Upload.URL == "" {
		return nil, errors.New("UPLOAD_URL environment variable is required")
	}

	pool, err := postgres.Initialize(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}

	uploader, err := upload.New(cfg.Upload.URL, cfg.Upload.Token)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create upload client: %w", err)
	}

	provider, err := createAIProvider(cfg, mustGetString(cmd, "provider"))
	if err != nil {
		pool.Close()
		return nil, err
	}

	return &workflowDeps{
		workflow: recognition.New(uploader, provider, postgres.NewProfileRepository(pool)),
		provider: provider,
		pool:     pool,
	}, nil
}
