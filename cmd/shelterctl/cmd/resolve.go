package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"shelter-catalog/internal/domain/source"
)

func init() {
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(imageCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [share-url]",
	Short: "Prints the CSV export and Config endpoints for a share link.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		link := cfg.SheetURL
		if len(args) == 1 {
			link = args[0]
		}

		catalogURL, err := source.CatalogEndpoint(link)
		if err != nil {
			return err
		}
		configURL, err := source.ConfigEndpoint(link)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "catalog:", catalogURL)
		fmt.Fprintln(out, "config: ", configURL)
		return nil
	},
}

var imageCmd = &cobra.Command{
	Use:   "image <photo-ref>",
	Short: "Prints the displayable image URL for a photo cell.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, ok := source.ImageURL(args[0])
		if !ok {
			return fmt.Errorf("%q has no displayable image", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), img)
		return nil
	},
}
