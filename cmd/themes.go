package cmd

import (
	"fmt"

	"github.com/linkbio/linkbio/internal/theme"
	"github.com/spf13/cobra"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the available public page themes",
	Run: func(cmd *cobra.Command, _ []string) {
		for _, t := range theme.All() {
			marker := " "
			if t.Name == theme.Default {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %-8s %-8s %s\n", marker, t.Name, t.Label, t.BG)
		}
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
}
