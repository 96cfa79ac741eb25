package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Score, price and store a client intake",
	Long:  "Scores the intake profile, recommends a tier with a price quote, and appends the submission to the intake store.",
	Example: `  concierge submit --file profile.json
  concierge submit --first-name Ada --net-worth 1500000 --goal "wealth management" --service "Legal Services"`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		format, _ := cmd.Flags().GetString("format")
		if err := checkFormat(format, "table", "json"); err != nil {
			return err
		}

		p, err := profileFromFlags(cmd)
		if err != nil {
			return err
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		svc, err := newService(st)
		if err != nil {
			return err
		}

		res, err := svc.Submit(ctx, p)
		if err != nil {
			return eris.Wrap(err, "submit")
		}

		out := cmd.OutOrStdout()
		if format == "json" {
			return writeJSON(out, res)
		}
		_, _ = fmt.Fprintf(out, "Stored intake %s\n\n", res.Record.ID)
		formatRecommendation(out, res.Recommendation, currency())
		return nil
	},
}

func init() {
	addProfileFlags(submitCmd)
	rootCmd.AddCommand(submitCmd)
}
