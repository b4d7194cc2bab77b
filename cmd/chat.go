package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dkadlec/face-lounge/internal/chat"
	"github.com/dkadlec/face-lounge/internal/config"
	"github.com/dkadlec/face-lounge/internal/store"
	"github.com/dkadlec/face-lounge/internal/store/postgres"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Join the chat room from the terminal",
	Long: `Join the shared chat room.
The username from a previous session is reused when available. Type a
message and press Enter to send; type /quit to leave.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().String("name", "", "Username (defaults to the stored one)")
}

// senderTag renders the sender's avatar initial and name in the sender's
// avatar color using a truecolor escape.
func senderTag(name string) string {
	color := chat.AvatarColor(name)
	var r, g, b int
	if _, err := fmt.Sscanf(color, "#%02X%02X%02X", &r, &g, &b); err != nil {
		return fmt.Sprintf("(%s) %s", chat.AvatarInitial(name), name)
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm(%s) %s\x1b[0m", r, g, b, chat.AvatarInitial(name), name)
}

// printMessages prints messages that arrived after the already printed ones.
func printMessages(history []store.Message, printed map[string]bool) {
	for _, m := range history {
		if printed[m.ID] {
			continue
		}
		printed[m.ID] = true
		fmt.Printf("[%s] %s: %s\n", m.Timestamp.Local().Format("15:04"), senderTag(m.SenderName), m.Message)
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.Initialize(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	defer pool.Close()

	names, err := chat.NewFileNameStore()
	if err != nil {
		return fmt.Errorf("failed to open username store: %w", err)
	}

	session := chat.NewSession(postgres.NewMessageRepository(pool), names, cfg.Chat)

	reader := bufio.NewReader(os.Stdin)
	name := mustGetString(cmd, "name")
	if name == "" {
		name = session.ResumeName()
	}
	if name == "" {
		fmt.Print("Choose a username: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
		name = strings.TrimSpace(line)
	}
	if err := session.Join(name); err != nil {
		return err
	}

	printed := make(map[string]bool)
	session.SetOnUpdate(func(history []store.Message) {
		printMessages(history, printed)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go session.Run(ctx)

	fmt.Printf("Joined as %s. Type /quit to leave.\n", session.Username())

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil // stdin closed
		}
		text := strings.TrimSpace(line)
		if text == "/quit" {
			return nil
		}
		if text == "" {
			continue
		}
		if err := session.Send(ctx, text); err != nil {
			fmt.Printf("Could not send: %v\n", err)
		}
	}
}
