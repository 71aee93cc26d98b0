// internal/cli/pdf.go
package studybot

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mwiater/studybot/internal/chat"
	"github.com/spf13/cobra"
)

// pdfCmd implements the one-shot PDF question.
var pdfCmd = &cobra.Command{
	Use:   "pdf <filename> <question>",
	Short: "Ask a question about a PDF document",
	Long:  `The 'pdf' command extracts text from a PDF in the documents directory and asks the model the given question grounded in that text.`,
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		ctx := context.Background()

		bot, client, err := buildAssistant(ctx, cfg)
		if err != nil {
			return err
		}
		defer client.Close()

		ans, err := bot.ResolvePDFQuestion(ctx, args[0], strings.Join(args[1:], " "))
		if err != nil {
			fmt.Printf("%s Error: %s\n", color.RedString("❌"), chat.DescribeDocumentError(err))
			return nil
		}
		fmt.Println(chat.FormatAnswer(ans))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pdfCmd)
}
