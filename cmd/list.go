package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"recipebox/tui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all recipes",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprint(cmd.OutOrStdout(), tui.RenderList(current.store.List()))
		return err
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
