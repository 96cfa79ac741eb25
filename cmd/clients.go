package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/concierge-cli/internal/export"
	"github.com/sells-group/concierge-cli/internal/model"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Inspect stored client intakes",
}

// -- clients list --

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored intakes with their current recommendation",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		format, _ := cmd.Flags().GetString("format")
		if err := checkFormat(format, "table", "json"); err != nil {
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

		clients, err := svc.List(ctx)
		if err != nil {
			return eris.Wrap(err, "clients list")
		}

		out := cmd.OutOrStdout()
		if format == "json" {
			if clients == nil {
				clients = []model.ClientIntake{}
			}
			return writeJSON(out, map[string]any{"clients": clients})
		}

		if len(clients) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "No clients found.")
			return nil
		}

		recs := make([]model.Recommendation, len(clients))
		for i, c := range clients {
			rec, err := svc.Recommend(c.Profile)
			if err != nil {
				return eris.Wrapf(err, "clients list: recommend %s", c.ID)
			}
			recs[i] = *rec
		}
		formatClientsList(out, clients, recs, currency())
		return nil
	},
}

// -- clients export --

var clientsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored intakes as CSV or XLSX",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		formatName, _ := cmd.Flags().GetString("format")
		format, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		clients, err := st.List(ctx)
		if err != nil {
			return eris.Wrap(err, "clients export")
		}

		var w io.Writer = cmd.OutOrStdout()
		if output != "" && output != "-" {
			f, err := os.Create(output)
			if err != nil {
				return eris.Wrap(err, "clients export: create output")
			}
			defer f.Close() //nolint:errcheck
			w = f
		}

		if err := export.Write(w, format, clients); err != nil {
			return err
		}

		zap.L().Info("clients exported",
			zap.Int("count", len(clients)),
			zap.String("format", string(format)),
			zap.String("output", output),
		)
		return nil
	},
}

// -- clients import --

var clientsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Submit every row of a CSV or XLSX file as a new intake",
	Long:  "Reads profiles laid out like 'clients export' output and submits them in order. Rows already submitted before a failure stay stored.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := args[0]

		format, err := export.FormatFromPath(path)
		if name, _ := cmd.Flags().GetString("format"); name != "" {
			format, err = export.ParseFormat(name)
		}
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return eris.Wrap(err, "clients import: open file")
		}
		defer f.Close() //nolint:errcheck

		profiles, err := export.ReadProfiles(f, format)
		if err != nil {
			return eris.Wrap(err, "clients import")
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

		for i, p := range profiles {
			if _, err := svc.Submit(ctx, p); err != nil {
				return eris.Wrapf(err, "clients import: profile %d of %d", i+1, len(profiles))
			}
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d intakes\n", len(profiles))
		return nil
	},
}

func init() {
	clientsImportCmd.Flags().String("format", "", "input format: csv or xlsx (default from file extension)")

	clientsListCmd.Flags().String("format", "table", "output format: table or json")

	clientsExportCmd.Flags().String("format", "csv", "export format: csv or xlsx")
	clientsExportCmd.Flags().StringP("output", "o", "", "output file (default stdout)")

	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsExportCmd)
	clientsCmd.AddCommand(clientsImportCmd)
	rootCmd.AddCommand(clientsCmd)
}
