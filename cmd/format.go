package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/sells-group/concierge-cli/internal/model"
	"github.com/sells-group/concierge-cli/internal/plans"
)

// formatMoney renders a dollar amount in the configured display currency.
// Unknown currency codes fall back to USD.
func formatMoney(amount float64, code string) string {
	cur := money.GetCurrency(strings.ToUpper(code))
	if cur == nil {
		cur = money.GetCurrency(money.USD)
	}
	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

func currency() string {
	if cfg == nil || cfg.Display.Currency == "" {
		return money.USD
	}
	return cfg.Display.Currency
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "encode json")
	}
	return nil
}

func checkFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return eris.Errorf("unknown format %q (want %s)", format, strings.Join(allowed, " or "))
}

// formatRecommendation writes a tier recommendation and its quote to out.
func formatRecommendation(out io.Writer, rec model.Recommendation, code string) {
	q := rec.Quote
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Tier:\t%s\n", rec.Tier.Title())
	_, _ = fmt.Fprintf(w, "Score:\t%d\n", rec.Score)
	_, _ = fmt.Fprintf(w, "Base price:\t%s\n", formatMoney(q.BasePrice, code))
	_, _ = fmt.Fprintf(w, "Net worth multiplier:\t%sx\n", decimal.NewFromFloat(q.NetWorthMultiplier).String())
	_, _ = fmt.Fprintf(w, "Services:\t%s\n", formatMoney(q.ServiceCost, code))
	_, _ = fmt.Fprintf(w, "Monthly:\t%s\n", formatMoney(q.MonthlyPrice, code))
	_, _ = fmt.Fprintf(w, "Annual:\t%s (save %s)\n", formatMoney(q.AnnualPrice, code), formatMoney(q.AnnualSavings, code))
	_ = w.Flush()

	if len(rec.Features) > 0 {
		_, _ = fmt.Fprintln(out, "Features:")
		for _, f := range rec.Features {
			_, _ = fmt.Fprintf(out, "  - %s\n", f)
		}
	}
}

// formatClientsList writes a tabular list of intake records with their current recommendation.
func formatClientsList(out io.Writer, clients []model.ClientIntake, recs []model.Recommendation, code string) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tEMAIL\tNET WORTH\tSERVICES\tTIER\tMONTHLY\tCREATED")
	_, _ = fmt.Fprintln(w, "--\t----\t-----\t---------\t--------\t----\t-------\t-------")

	for i, c := range clients {
		name := strings.TrimSpace(c.FirstName + " " + c.LastName)
		if r := []rune(name); len(r) > 30 {
			name = string(r[:27]) + "..."
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			truncateID(c.ID),
			name,
			c.Email,
			formatMoney(c.NetWorth, code),
			len(c.SelectedServices),
			recs[i].Tier.Title(),
			formatMoney(recs[i].Quote.MonthlyPrice, code),
			c.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	_ = w.Flush()
}

// formatPlans writes the plan catalog with base prices to out.
func formatPlans(out io.Writer, catalog []plans.Plan, basePrice func(model.Tier) float64, code string) {
	for i, p := range catalog {
		if i > 0 {
			_, _ = fmt.Fprintln(out)
		}
		_, _ = fmt.Fprintf(out, "%s (%s/month base)\n", p.Name, formatMoney(basePrice(p.Tier), code))
		for _, f := range p.Features {
			_, _ = fmt.Fprintf(out, "  + %s\n", f)
		}
		for _, f := range p.Excluded {
			_, _ = fmt.Fprintf(out, "  - %s\n", f)
		}
	}
}

// formatServices writes the service catalog with monthly add-on prices.
func formatServices(out io.Writer, prices map[string]float64, code string) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SERVICE\tPRICE\tDESCRIPTION")
	_, _ = fmt.Fprintln(w, "-------\t-----\t-----------")
	for _, name := range model.Services() {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", name, formatMoney(prices[name], code), model.ServiceDescription(name))
	}
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
