package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/concierge-cli/internal/model"
)

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// ReadProfiles parses a CSV or XLSX document laid out like Header back into
// profiles. The id and created_at columns are ignored; column order is taken
// from the header row and missing columns are left zero.
func ReadProfiles(r io.Reader, format Format) ([]model.Profile, error) {
	var rows [][]string
	var err error
	switch format {
	case FormatCSV:
		rows, err = readCSVRows(r)
	case FormatXLSX:
		rows, err = readXLSXRows(r)
	default:
		return nil, eris.Errorf("export: unknown format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, eris.New("export: missing header row")
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	out := make([]model.Profile, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		p, err := parseRow(row, cols)
		if err != nil {
			// +2: one for the header, one for 1-based numbering.
			return nil, eris.Wrapf(err, "export: row %d", i+2)
		}
		out = append(out, p)
	}
	return out, nil
}

func readCSVRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable fields
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "export: read csv")
	}
	return rows, nil
}

func readXLSXRows(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "export: read xlsx")
	}
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, eris.Wrap(err, "export: open xlsx")
	}

	sheet, ok := f.Sheet[SheetName]
	if !ok {
		if len(f.Sheets) == 0 {
			return nil, eris.New("export: xlsx has no sheets")
		}
		sheet = f.Sheets[0]
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		rows = append(rows, rowToStrings(row))
	}
	return rows, nil
}

// rowToStrings returns raw cell values so numbers keep full precision.
func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.Value
	}
	return cells
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseRow(row []string, cols map[string]int) (model.Profile, error) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var p model.Profile
	var err error
	p.FirstName = get("first_name")
	p.LastName = get("last_name")
	p.Email = get("email")
	p.EmploymentStatus = get("employment_status")
	if p.NetWorth, err = parseFloat(get("net_worth")); err != nil {
		return p, eris.Wrap(err, "net_worth")
	}
	if p.AnnualIncome, err = parseFloat(get("annual_income")); err != nil {
		return p, eris.Wrap(err, "annual_income")
	}
	if s := get("family_size"); s != "" {
		if p.FamilySize, err = strconv.Atoi(s); err != nil {
			return p, eris.Wrap(err, "family_size")
		}
	}
	if p.Goals, err = decodeList(get("goals")); err != nil {
		return p, eris.Wrap(err, "goals")
	}
	if p.SelectedServices, err = decodeList(get("selected_services")); err != nil {
		return p, eris.Wrap(err, "selected_services")
	}
	return p, nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// decodeList reads a JSON array cell as written by export. Anything else is
// treated as a hand-written, semicolon separated list.
func decodeList(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	if strings.HasPrefix(s, "[") {
		var items []string
		if err := json.Unmarshal([]byte(s), &items); err != nil {
			return nil, eris.Wrap(err, "decode list")
		}
		if len(items) == 0 {
			return nil, nil
		}
		return items, nil
	}
	parts := strings.Split(s, listSep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}
