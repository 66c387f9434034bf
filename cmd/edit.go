package cmd

import (
	"errors"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"recipebox/editor"
	"recipebox/recipes"
	"recipebox/tui"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid recipe id %q", arg)
	}
	return id, nil
}

// runEditor drives an already opened editor through the interactive form.
func runEditor(cmd *cobra.Command, e *editor.Editor) error {
	m := tui.NewEditorModel(e)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}

	if m.Cancelled {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
	}

	return nil
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a recipe interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		e := editor.New(current.store, current.ids)
		e.BeginCreate()

		return runEditor(cmd, e)
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a recipe interactively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		r, err := current.store.Get(id)
		if errors.Is(err, recipes.ErrNotFound) {
			return fmt.Errorf("no recipe with id %d", id)
		}

		e := editor.New(current.store, current.ids)
		e.BeginEdit(r)

		return runEditor(cmd, e)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
}
