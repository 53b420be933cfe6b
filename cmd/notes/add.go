package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/henrytill/notes-go/internal/controller"
	"github.com/henrytill/notes-go/internal/note"
)

func (c *cli) newAddCmd() *cobra.Command {
	var important bool

	cmd := &cobra.Command{
		Use:   "add CONTENT",
		Short: "Create a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.newApp(cmd)
			defer a.Close()
			if _, err := a.Restore(); err != nil {
				return err
			}

			a.ShowNoteForm()
			created, err := a.AddNote(cmd.Context(), args[0], important)
			if err != nil {
				return err
			}
			return outputJSON(cmd, created)
		},
	}

	cmd.Flags().BoolVar(&important, "important", false, "Mark the note important")

	return cmd
}

func (c *cli) newToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Flip a note's importance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.newApp(cmd)
			defer a.Close()
			if _, err := a.Restore(); err != nil {
				return err
			}

			if err := a.Load(cmd.Context()); err != nil {
				return err
			}

			result, err := a.ToggleImportance(cmd.Context(), note.ID(args[0]))
			if err != nil {
				return err
			}
			if result.Outcome == controller.Removed {
				return errReported
			}
			return outputJSON(cmd, result.Note)
		},
	}
}

func outputJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
