package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Preview the recommended tier and price without storing",
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, _ := cmd.Flags().GetString("format")
		if err := checkFormat(format, "table", "json"); err != nil {
			return err
		}

		p, err := profileFromFlags(cmd)
		if err != nil {
			return err
		}

		// Recommend never touches the store.
		svc, err := newService(nil)
		if err != nil {
			return err
		}

		rec, err := svc.Recommend(p)
		if err != nil {
			return eris.Wrap(err, "quote")
		}

		if format == "json" {
			return writeJSON(cmd.OutOrStdout(), rec)
		}
		formatRecommendation(cmd.OutOrStdout(), *rec, currency())
		return nil
	},
}

func init() {
	addProfileFlags(quoteCmd)
	rootCmd.AddCommand(quoteCmd)
}
