// internal/cli/list.go
package studybot

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/studybot/internal/docs"
	"github.com/spf13/cobra"
)

var listHeaderStyle = lipgloss.NewStyle().Bold(true)

// listCmd prints the PDF documents available for the pdf command.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available PDF documents",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		files := docs.NewLister(getConfig().DocumentsDirPath()).List()
		if len(files) == 0 {
			fmt.Println("No PDFs found")
			return
		}
		fmt.Println(listHeaderStyle.Render("Available PDFs:"))
		for _, f := range files {
			fmt.Printf("- %s\n", f)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
