package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/henrytill/notes-go/internal"
)

func (c *cli) newImportCmd() *cobra.Command {
	format := internal.InputFlag()

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Create a note for every entry in FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			if format.Name == "" {
				detected, ok := internal.DetectInputFormat(path)
				if !ok {
					return fmt.Errorf("cannot detect format of %s; use --from (%s)", path, internal.FormatNames(internal.AllInputFormats()))
				}
				format = detected
			}

			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer file.Close()

			notes, err := internal.Parse(format, file)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", path, err)
			}

			a := c.newApp(cmd)
			defer a.Close()
			if _, err := a.Restore(); err != nil {
				return err
			}

			for i, n := range notes {
				a.ShowNoteForm()
				if _, err := a.AddNote(cmd.Context(), n.Content, n.Important); err != nil {
					return fmt.Errorf("imported %d of %d notes: %w", i, len(notes), err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d notes\n", len(notes))
			return nil
		},
	}

	cmd.Flags().VarP(&format, "from", "f", "Input format ("+internal.FormatNames(internal.AllInputFormats())+")")

	return cmd
}
