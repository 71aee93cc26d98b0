// internal/cli/ask.go
package studybot

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mwiater/studybot/internal/chat"
	"github.com/spf13/cobra"
)

// askCmd implements the one-shot formula query.
var askCmd = &cobra.Command{
	Use:   "ask <query>",
	Short: "Look up or generate a formula",
	Long:  `The 'ask' command answers a formula query from the local cache, generating and caching a new explanation when the formula is unknown.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		ctx := context.Background()

		bot, client, err := buildAssistant(ctx, cfg)
		if err != nil {
			return err
		}
		defer client.Close()

		ans, err := bot.ResolveFormula(ctx, strings.Join(args, " "))
		if err != nil {
			fmt.Printf("%s Error: %v\n", color.RedString("❌"), err)
			return nil
		}
		fmt.Println(chat.FormatAnswer(ans))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
