// Package export writes stored intake records as CSV or XLSX.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/concierge-cli/internal/model"
)

// Format identifies an export file format.
type Format string

// Supported export formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat converts a format name into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", eris.Errorf("export: unknown format %q (want csv or xlsx)", s)
	}
}

// SheetName is the worksheet name used for XLSX exports.
const SheetName = "Clients"

// listSep separates goals and services in hand-written import files.
const listSep = ";"

// Header is the column order shared by every format.
var Header = []string{
	"id",
	"created_at",
	"first_name",
	"last_name",
	"email",
	"net_worth",
	"annual_income",
	"employment_status",
	"family_size",
	"goals",
	"selected_services",
}

// Row flattens a record into Header order.
func Row(c model.ClientIntake) []string {
	return []string{
		c.ID,
		c.CreatedAt.UTC().Format(time.RFC3339),
		c.FirstName,
		c.LastName,
		c.Email,
		strconv.FormatFloat(c.NetWorth, 'f', -1, 64),
		strconv.FormatFloat(c.AnnualIncome, 'f', -1, 64),
		c.EmploymentStatus,
		strconv.Itoa(c.FamilySize),
		encodeList(c.Goals),
		encodeList(c.SelectedServices),
	}
}

// encodeList stores a list cell as a JSON array so items may contain the separator.
func encodeList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	b, _ := json.Marshal(items) // []string always marshals
	return string(b)
}

// WriteCSV writes a header row followed by one row per record.
func WriteCSV(w io.Writer, clients []model.ClientIntake) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, c := range clients {
		if err := cw.Write(Row(c)); err != nil {
			return eris.Wrapf(err, "export: write csv row %s", c.ID)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "export: flush csv")
	}
	return nil
}

// BuildXLSX builds a workbook with a single Clients sheet. Monetary and count
// columns are stored as numbers.
func BuildXLSX(clients []model.ClientIntake) (*xlsx.File, error) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SheetName)
	if err != nil {
		return nil, eris.Wrap(err, "export: add sheet")
	}

	hdr := sheet.AddRow()
	for _, h := range Header {
		hdr.AddCell().SetString(h)
	}

	for _, c := range clients {
		row := sheet.AddRow()
		row.AddCell().SetString(c.ID)
		row.AddCell().SetString(c.CreatedAt.UTC().Format(time.RFC3339))
		row.AddCell().SetString(c.FirstName)
		row.AddCell().SetString(c.LastName)
		row.AddCell().SetString(c.Email)
		row.AddCell().SetFloat(c.NetWorth)
		row.AddCell().SetFloat(c.AnnualIncome)
		row.AddCell().SetString(c.EmploymentStatus)
		row.AddCell().SetInt(c.FamilySize)
		row.AddCell().SetString(encodeList(c.Goals))
		row.AddCell().SetString(encodeList(c.SelectedServices))
	}

	return f, nil
}

// WriteXLSX writes the workbook to w.
func WriteXLSX(w io.Writer, clients []model.ClientIntake) error {
	f, err := BuildXLSX(clients)
	if err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write xlsx")
	}
	return nil
}

// Write dispatches to the writer for format.
func Write(w io.Writer, format Format, clients []model.ClientIntake) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, clients)
	case FormatXLSX:
		return WriteXLSX(w, clients)
	default:
		return eris.Errorf("export: unknown format %q", format)
	}
}
