package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"shelter-catalog/internal/domain/catalog"
)

var (
	listSpecies string
	listAge     string
	listAll     bool
)

func init() {
	listCmd.Flags().StringVar(&listSpecies, "species", "", "only this species (exact match)")
	listCmd.Flags().StringVar(&listAge, "age", "", "age bracket: junior, young_adult, adult, senior, unspecified")
	listCmd.Flags().BoolVar(&listAll, "all", false, "include adopted animals")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Prints the catalog as a table.",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := catalog.Filter{Species: strings.TrimSpace(listSpecies)}
		if listAge != "" {
			b, ok := catalog.ParseAgeBracket(listAge)
			if !ok {
				return fmt.Errorf("unknown age bracket %q", listAge)
			}
			f.Bracket = b
		}

		recs, err := svc.LoadShared(cmd.Context(), cfg.SheetURL)
		if err != nil {
			return err
		}
		if !listAll {
			recs = catalog.FilterAvailable(recs)
		}
		renderTable(cmd.OutOrStdout(), catalog.FilterBy(recs, f))
		return nil
	},
}

func renderTable(w io.Writer, recs []catalog.AnimalRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Row", "Name", "Species", "Sex", "Age", "Bracket", "Status", "Cats", "Dogs", "Children", "Photo"})

	for _, r := range recs {
		photo := "-"
		if img, ok := r.ImageURL(); ok {
			photo = img
		}
		t.AppendRow(table.Row{
			r.Row, r.Name, r.Species, r.Sex, r.AgeText(), r.AgeBracket.Label(), r.Status.Label,
			catalog.OuiNon(r.Compat.WithCats), catalog.OuiNon(r.Compat.WithDogs), catalog.OuiNon(r.Compat.WithChildren),
			photo,
		})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d animals", len(recs))})

	t.SetStyle(table.StyleRounded)
	t.Render()
}
