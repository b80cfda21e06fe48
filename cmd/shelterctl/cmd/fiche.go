package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"shelter-catalog/internal/adapters/fiche"
	"shelter-catalog/internal/domain/catalog"
)

var ficheOut string

func init() {
	ficheCmd.Flags().StringVarP(&ficheOut, "output", "o", "", "output file (default Fiche_<name>.pdf)")
	rootCmd.AddCommand(ficheCmd)
}

var ficheCmd = &cobra.Command{
	Use:   "fiche <row>",
	Short: "Writes the adoption sheet PDF of the animal in the given row.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		row, err := strconv.Atoi(args[0])
		if err != nil || row < 1 {
			return fmt.Errorf("invalid row %q", args[0])
		}

		rec, err := svc.Find(cmd.Context(), cfg.SheetURL, row)
		if err != nil {
			return err
		}

		var photo *catalog.Photo
		if img, ok := rec.ImageURL(); ok {
			p, err := client.FetchImage(cmd.Context(), img)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: photo skipped:", err)
			} else {
				photo = &p
			}
		}

		pdf, err := fiche.NewRenderer(fiche.Options{
			ShelterName: cfg.Shelter.Name,
			Phone:       cfg.Shelter.Phone,
			Email:       cfg.Shelter.Email,
			Footer:      cfg.Shelter.Footer,
		}).Render(rec, photo)
		if err != nil {
			return err
		}

		out := ficheOut
		if out == "" {
			out = rec.FicheFilename()
		}
		if err := os.WriteFile(out, pdf, 0o644); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "wrote", out)
		return nil
	},
}
