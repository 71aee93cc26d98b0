// internal/cli/chat.go
package studybot

import (
	"context"
	"os"

	"github.com/mwiater/studybot/internal/chat"
	"github.com/mwiater/studybot/internal/docs"
	"github.com/spf13/cobra"
)

// chatCmd represents the 'chat' command.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive study session",
	Long:  `The 'chat' command starts the interactive command loop: ask for formulas, query PDFs, and list available documents.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		ctx := context.Background()

		bot, client, err := buildAssistant(ctx, cfg)
		if err != nil {
			return err
		}
		defer client.Close()

		session := chat.NewSession(bot, docs.NewLister(cfg.DocumentsDirPath()), os.Stdin, os.Stdout)
		return session.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
