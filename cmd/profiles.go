package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkadlec/face-lounge/internal/config"
	"github.com/dkadlec/face-lounge/internal/store/postgres"
	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List registered profiles",
	RunE:  runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.Initialize(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	defer pool.Close()

	profiles, err := postgres.NewProfileRepository(pool).ListProfiles(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	if len(profiles) == 0 {
		fmt.Println("No registered profiles.")
		return nil
	}

	fmt.Printf("Registered profiles: %d\n\n", len(profiles))
	for i, p := range profiles {
		fmt.Printf("%d. %s (%d, %s)\n", i+1, p.Name, p.Age, p.Gender)
		fmt.Printf("   Registered: %s\n", p.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Printf("   Image: %s\n", p.FaceImageURL)
		fmt.Printf("   Description: %s\n", p.FaceDescription)
	}
	return nil
}
