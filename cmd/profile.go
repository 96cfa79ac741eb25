package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sells-group/concierge-cli/internal/model"
)

// addProfileFlags registers the intake form fields on cmd.
func addProfileFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("file", "", "read the profile from a JSON file (- for stdin)")
	f.String("first-name", "", "client first name")
	f.String("last-name", "", "client last name")
	f.String("email", "", "client email")
	f.Float64("net-worth", 0, "net worth in dollars")
	f.Float64("annual-income", 0, "annual income in dollars")
	f.String("employment-status", "", "employment status")
	f.Int("family-size", 0, "number of family members")
	f.StringArray("goal", nil, "goal statement (repeatable)")
	f.StringArray("service", nil, "selected service (repeatable)")
	f.String("format", "table", "output format: table or json")
}

// profileFromFlags builds a profile from --file, then applies any explicitly set field flags.
func profileFromFlags(cmd *cobra.Command) (model.Profile, error) {
	var p model.Profile
	f := cmd.Flags()

	if path, _ := f.GetString("file"); path != "" {
		var r io.Reader = cmd.InOrStdin()
		if path != "-" {
			file, err := os.Open(path)
			if err != nil {
				return p, eris.Wrap(err, "open profile file")
			}
			defer file.Close() //nolint:errcheck
			r = file
		}
		var err error
		if p, err = decodeProfile(r); err != nil {
			return p, err
		}
	}

	f.Visit(func(fl *pflag.Flag) {
		if !fl.Changed {
			return
		}
		switch fl.Name {
		case "first-name":
			p.FirstName, _ = f.GetString(fl.Name)
		case "last-name":
			p.LastName, _ = f.GetString(fl.Name)
		case "email":
			p.Email, _ = f.GetString(fl.Name)
		case "net-worth":
			p.NetWorth, _ = f.GetFloat64(fl.Name)
		case "annual-income":
			p.AnnualIncome, _ = f.GetFloat64(fl.Name)
		case "employment-status":
			p.EmploymentStatus, _ = f.GetString(fl.Name)
		case "family-size":
			p.FamilySize, _ = f.GetInt(fl.Name)
		case "goal":
			p.Goals, _ = f.GetStringArray(fl.Name)
		case "service":
			p.SelectedServices, _ = f.GetStringArray(fl.Name)
		}
	})

	return p, nil
}

// decodeProfile parses a single profile document. Unknown keys are rejected.
func decodeProfile(r io.Reader) (model.Profile, error) {
	var p model.Profile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return model.Profile{}, eris.Wrap(err, "decode profile")
	}
	return p, nil
}
