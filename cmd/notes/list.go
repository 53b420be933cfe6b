package main

import (
	"github.com/spf13/cobra"

	"github.com/henrytill/notes-go/internal"
	"github.com/henrytill/notes-go/internal/note"
)

func (c *cli) newListCmd() *cobra.Command {
	var (
		important bool
		where     string
		format    = internal.Text
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var pred note.Predicate = note.All
			if where != "" {
				var err error
				if pred, err = note.CompileQuery(where); err != nil {
					return err
				}
			}

			a := c.newApp(cmd)
			defer a.Close()

			if err := a.Load(cmd.Context()); err != nil {
				return err
			}
			a.SetShowAll(!important)

			showAll := a.ShowAll()
			notes := a.Query(func(n note.Note) bool {
				return (showAll || n.Important) && pred(n)
			})
			return internal.Unparse(format, cmd.OutOrStdout(), notes)
		},
	}

	cmd.Flags().BoolVar(&important, "important", false, "Show important notes only")
	cmd.Flags().StringVar(&where, "where", "", "Filter expression over id, content and important")
	cmd.Flags().VarP(&format, "to", "t", "Output format ("+internal.FormatNames(internal.AllOutputFormats())+")")

	return cmd
}
