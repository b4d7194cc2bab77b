package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/dkadlec/face-lounge/internal/config"
	"github.com/dkadlec/face-lounge/internal/recognition"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register [image-file]",
	Short: "Register a face from an image file",
	Long: `Register a face in the profile store.
The image is uploaded, described by the AI provider and stored as a new
profile. With --dir, every image in the directory is registered in one
run; the profile name is derived from the file name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)

	registerCmd.Flags().String("name", "", "Profile name")
	registerCmd.Flags().Int("age", 0, "Profile age")
	registerCmd.Flags().String("gender", "", "Profile gender: Male, Female or Other")
	registerCmd.Flags().String("dir", "", "Register all images in a directory")
	registerCmd.Flags().String("provider", "gemini", "AI provider to use: gemini, openai, ollama")
}

// imageFilesIn lists the image files in a directory, sorted by name.
func imageFilesIn(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// profileNameFromFile derives a profile name from an image file name.
func profileNameFromFile(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func registerOne(ctx context.Context, deps *workflowDeps, draft recognition.ProfileDraft, imagePath string) (*recognition.Outcome, error) {
	image, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	return deps.workflow.Register(ctx, draft, image)
}

func runRegister(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	dir := mustGetString(cmd, "dir")
	if dir == "" && len(args) != 1 {
		return errors.New("either an image file argument or --dir is required")
	}
	if dir != "" && len(args) > 0 {
		return errors.New("--dir cannot be combined with an image file argument")
	}

	age := mustGetInt(cmd, "age")
	gender := mustGetString(cmd, "gender")

	deps, err := createWorkflow(cmd, cfg)
	if err != nil {
		return err
	}
	defer deps.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal...")
		cancel()
	}()

	if dir == "" {
		draft := recognition.ProfileDraft{
			Name:   mustGetString(cmd, "name"),
			Age:    age,
			Gender: gender,
		}
		outcome, err := registerOne(ctx, deps, draft, args[0])
		if err != nil {
			return err
		}

		fmt.Println(outcome.Message)
		if outcome.Succeeded() {
			fmt.Printf("  Profile: %s (%d, %s)\n", outcome.Profile.Name, outcome.Profile.Age, outcome.Profile.Gender)
			fmt.Printf("  Image: %s\n", outcome.Profile.FaceImageURL)
		}
		printUsage(deps.provider)
		if !outcome.Succeeded() {
			return errors.New("registration failed")
		}
		return nil
	}

	files, err := imageFilesIn(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no image files found in %s", dir)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("Registering faces"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("faces"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)

	var failures []string
	for _, file := range files {
		if ctx.Err() != nil {
			break
		}

		draft := recognition.ProfileDraft{
			Name:   profileNameFromFile(file),
			Age:    age,
			Gender: gender,
		}
		outcome, err := registerOne(ctx, deps, draft, file)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", file, err))
		} else if !outcome.Succeeded() {
			failures = append(failures, fmt.Sprintf("%s: %s", file, outcome.Message))
		}
		bar.Add(1)
	}
	fmt.Println()

	fmt.Printf("Registered: %d faces\n", len(files)-len(failures))
	if len(failures) > 0 {
		fmt.Printf("Failed: %d\n", len(failures))
		for _, f := range failures {
			fmt.Printf("  - %s\n", f)
		}
	}
	printUsage(deps.provider)

	if len(failures) > 0 {
		return errors.New("some registrations failed")
	}
	return nil
}
