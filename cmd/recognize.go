package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dkadlec/face-lounge/internal/config"
	"github.com/spf13/cobra"
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize [image-file]",
	Short: "Recognize a face from an image file",
	Long: `Recognize a face against the registered profiles.
The image is described by the AI provider and matched against the stored
face descriptions.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecognize,
}

func init() {
	rootCmd.AddCommand(recognizeCmd)

	recognizeCmd.Flags().String("provider", "gemini", "AI provider to use: gemini, openai, ollama")
}

func runRecognize(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	deps, err := createWorkflow(cmd, cfg)
	if err != nil {
		return err
	}
	defer deps.close()

	image, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read image file: %w", err)
	}

	outcome, err := deps.workflow.Recognize(context.Background(), image)
	if err != nil {
		return err
	}

	fmt.Println(outcome.Message)
	if outcome.Succeeded() {
		fmt.Printf("  Name: %s\n", outcome.Profile.Name)
		fmt.Printf("  Age: %d\n", outcome.Profile.Age)
		fmt.Printf("  Gender: %s\n", outcome.Profile.Gender)
		fmt.Printf("  Confidence: %s\n", outcome.Confidence)
	}
	printUsage(deps.provider)

	if !outcome.Succeeded() {
		return errors.New("recognition failed")
	}
	return nil
}
