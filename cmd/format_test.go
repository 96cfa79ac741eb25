package main

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/concierge-cli/internal/model"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount float64
		code   string
		want   string
	}{
		{49, "USD", "$49.00"},
		{2688.72, "USD", "$2,688.72"},
		{263.6, "usd", "$263.60"},
		{0.005, "USD", "$0.01"},
		{1012.5, "NOPE", "$1,012.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatMoney(tt.amount, tt.code), "%v %s", tt.amount, tt.code)
	}
}

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, checkFormat("json", "table", "json"))
	err := checkFormat("xml", "table", "json")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "table or json")
	}
}

func TestFormatRecommendation(t *testing.T) {
	rec := model.Recommendation{
		Tier:  model.TierPremium,
		Score: 5,
		Quote: model.Quote{
			BasePrice:          99,
			NetWorthMultiplier: 1.4,
			ServiceCost:        125,
			MonthlyPrice:       263.6,
			AnnualPrice:        2688.72,
			AnnualSavings:      474.48,
		},
		Features: []string{"Priority support (4-8 hours)"},
	}

	var buf bytes.Buffer
	formatRecommendation(&buf, rec, "USD")
	out := buf.String()

	assert.Contains(t, out, "Premium")
	assert.Contains(t, out, "1.4x")
	assert.Contains(t, out, "$263.60")
	assert.Contains(t, out, "$2,688.72 (save $474.48)")
	assert.Contains(t, out, "  - Priority support (4-8 hours)")
}

func TestFormatClientsList(t *testing.T) {
	clients := []model.ClientIntake{{
		ID:        "0123456789abcdef",
		CreatedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
		Profile: model.Profile{
			FirstName:        "Bartholomew-Alexander",
			LastName:         "Featherstonehaugh",
			SelectedServices: []string{model.ServiceLegalServices},
		},
	}}
	recs := []model.Recommendation{{Tier: model.TierBasic, Quote: model.Quote{MonthlyPrice: 104}}}

	var buf bytes.Buffer
	formatClientsList(&buf, clients, recs, "USD")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	assert.Len(t, lines, 3)
	assert.Contains(t, lines[2], "01234567 ")
	assert.Contains(t, lines[2], "...")
	assert.Contains(t, lines[2], "$104.00")
	assert.Contains(t, lines[2], "2024-05-01 09:30")
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "abcdefgh", truncateID("abcdefghijkl"))
	assert.Equal(t, "abc", truncateID("abc"))
}

func TestFormatClientsList_TruncatesOnRunes(t *testing.T) {
	clients := []model.ClientIntake{{
		ID:      "abc",
		Profile: model.Profile{FirstName: strings.Repeat("é", 20), LastName: strings.Repeat("ü", 20)},
	}}
	recs := []model.Recommendation{{Tier: model.TierBasic}}

	var buf bytes.Buffer
	formatClientsList(&buf, clients, recs, "USD")

	out := buf.String()
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, strings.Repeat("é", 20)+" "+strings.Repeat("ü", 6)+"...")
}
