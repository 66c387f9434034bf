package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a recipe",
	Long: `Remove a recipe by id. Removing an id that does not exist is not an
error; the collection is left unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		before := len(current.store.List())
		after := len(current.store.Remove(id))

		if before == after {
			fmt.Fprintf(cmd.OutOrStdout(), "No recipe with id %d\n", id)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed recipe %d\n", id)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
