package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/concierge-cli/internal/model"
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Show the membership plan catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, _ := cmd.Flags().GetString("format")
		if err := checkFormat(format, "table", "json", "yaml"); err != nil {
			return err
		}

		svc, err := newService(nil)
		if err != nil {
			return err
		}
		catalog := svc.Catalog()
		out := cmd.OutOrStdout()

		switch format {
		case "json":
			return writeJSON(out, map[string]any{"plans": catalog.Plans()})
		case "yaml":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(catalog); err != nil {
				return eris.Wrap(err, "encode yaml")
			}
			return enc.Close()
		default:
			formatPlans(out, catalog.Plans(), func(t model.Tier) float64 {
				return svc.Calculator().BasePrice(t)
			}, currency())
			return nil
		}
	},
}

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List the service catalog with monthly add-on prices",
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := newService(nil)
		if err != nil {
			return err
		}
		formatServices(cmd.OutOrStdout(), svc.Calculator().Rates().Services, currency())
		return nil
	},
}

func init() {
	plansCmd.Flags().String("format", "table", "output format: table, json or yaml")
	rootCmd.AddCommand(plansCmd)
	rootCmd.AddCommand(servicesCmd)
}
