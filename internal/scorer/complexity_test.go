package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/concierge-cli/internal/model"
)

func newTestScorer() *ComplexityScorer {
	return NewComplexityScorer(DefaultConfig())
}

func TestNetWorthPoints(t *testing.T) {
	s := newTestScorer()
	tests := []struct {
		name     string
		netWorth float64
		want     int
	}{
		{"zero", 0, 0},
		{"at 100k", 100_000, 0},
		{"just above 100k", 100_000.01, 1},
		{"at 500k", 500_000, 1},
		{"above 500k", 750_000, 2},
		{"at 2M", 2_000_000, 2},
		{"above 2M", 2_000_001, 3},
		{"very high", 100_000_000, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Breakdown(tt.netWorth, nil, nil).NetWorth)
		})
	}
}

func TestGoalKeywords(t *testing.T) {
	s := newTestScorer()
	tests := []struct {
		name  string
		goals []string
		want  int
	}{
		{"none", nil, 0},
		{"no match", []string{"health management"}, 0},
		{"case folded", []string{"WEALTH MANAGEMENT"}, 1},
		{"two keywords one statement", []string{"Business investment"}, 2},
		{"keyword counted once", []string{"investment", "more investment"}, 1},
		{"substring match", []string{"Wealth Management and Investment"}, 2},
		{"bare words do not match phrases", []string{"wealth", "tax", "legal", "business"}, 1},
		{"all five", []string{"wealth management", "tax optimization", "legal planning", "investment", "business"}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Breakdown(0, tt.goals, nil).Goals)
		})
	}
}

func TestGoalKeywords_JoinAcrossStatements(t *testing.T) {
	s := newTestScorer()
	// Goals are space-joined before matching, so a phrase may span two statements.
	b := s.Breakdown(0, []string{"wealth", "management"}, nil)
	assert.Equal(t, 1, b.Goals)
	assert.Equal(t, []string{"wealth management"}, b.MatchedKeywords)
}

func TestServiceCountPoints(t *testing.T) {
	s := newTestScorer()
	all := model.Services()
	tests := []struct {
		n    int
		want int
	}{
		{0, 0}, {1, 0}, {2, 1}, {3, 1}, {4, 2}, {5, 2}, {6, 3}, {8, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.Breakdown(0, nil, all[:tt.n]).ServiceCount, "n=%d", tt.n)
	}
}

func TestServiceCount_DuplicatesCollapse(t *testing.T) {
	s := newTestScorer()
	b := s.Breakdown(0, nil, []string{
		model.ServiceHealthManagement, model.ServiceHealthManagement, model.ServiceHealthManagement,
		model.ServiceHealthManagement,
	})
	assert.Equal(t, 0, b.ServiceCount)

	b = s.Breakdown(0, nil, []string{model.ServiceLegalServices, model.ServiceLegalServices})
	assert.Equal(t, 0, b.PremiumServices)
}

func TestPremiumServicePoints(t *testing.T) {
	s := newTestScorer()
	tests := []struct {
		name     string
		services []string
		want     int
	}{
		{"none", nil, 0},
		{"one premium", []string{model.ServiceLegalServices, model.ServiceHealthManagement}, 0},
		{"two premium", []string{model.ServiceLegalServices, model.ServiceTaxManagement}, 2},
		{"three premium", []string{model.ServiceLegalServices, model.ServiceTaxManagement, model.ServiceInvestmentManagement}, 2},
		{"case sensitive names", []string{"legal services", "tax management"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Breakdown(0, nil, tt.services).PremiumServices)
		})
	}
}

func TestScore_Scenarios(t *testing.T) {
	s := newTestScorer()
	tests := []struct {
		name     string
		netWorth float64
		goals    []string
		services []string
		want     int
	}{
		{
			name: "simple health client", netWorth: 50_000,
			goals: []string{"health management"}, services: []string{model.ServiceHealthManagement},
			want: 0,
		},
		{
			name: "1.5M wealth and tax", netWorth: 1_500_000,
			goals:    []string{"wealth management", "tax optimization"},
			services: []string{model.ServiceInvestmentManagement, model.ServiceLegalServices},
			want:     7,
		},
		{
			name: "15M four services", netWorth: 15_000_000,
			goals: []string{"wealth", "tax", "legal", "business"},
			services: []string{
				model.ServiceInvestmentManagement, model.ServiceLegalServices,
				model.ServiceTaxManagement, model.ServicePersonalAssistant,
			},
			want: 8,
		},
		{name: "empty", want: 0},
		{
			name: "500k at boundary", netWorth: 500_000,
			goals:    []string{"wealth management", "tax optimization"},
			services: []string{model.ServiceInvestmentManagement, model.ServiceTaxManagement},
			want:     6,
		},
		{
			name: "750k health and investment", netWorth: 750_000,
			goals: []string{"health", "investment"},
			services: []string{
				model.ServiceHealthManagement, model.ServiceInvestmentManagement, model.ServiceExpenseTracking,
			},
			want: 4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Score(tt.netWorth, tt.goals, tt.services))
		})
	}
}

func TestScore_NotClamped(t *testing.T) {
	s := newTestScorer()
	got := s.Score(100_000_000,
		[]string{"wealth management", "tax optimization", "legal planning", "business management", "estate planning"},
		[]string{
			model.ServiceInvestmentManagement, model.ServiceLegalServices, model.ServiceTaxManagement,
			model.ServicePersonalAssistant, model.ServiceTravelPlanning, model.ServiceInsuranceManagement,
			model.ServiceExpenseTracking,
		},
	)
	assert.Equal(t, 12, got)

	top := s.Score(100_000_000,
		[]string{"wealth management tax optimization legal planning investment business"},
		model.Services(),
	)
	assert.Equal(t, 13, top)
}

func TestScore_Deterministic(t *testing.T) {
	s := newTestScorer()
	goals := []string{"Wealth Management", "business"}
	services := []string{model.ServiceLegalServices, model.ServiceTaxManagement, "Unknown Service"}

	first := s.Score(3_000_000, goals, services)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, s.Score(3_000_000, goals, services))
	}
}

func TestScore_GoalOrderIrrelevant(t *testing.T) {
	s := newTestScorer()
	a := s.Score(0, []string{"investment", "tax optimization", "business"}, nil)
	b := s.Score(0, []string{"business", "investment", "tax optimization"}, nil)
	assert.Equal(t, a, b)
}

func TestScore_NetWorthMonotonic(t *testing.T) {
	s := newTestScorer()
	goals := []string{"investment"}
	services := []string{model.ServiceLegalServices, model.ServiceTaxManagement}

	prev := -1
	for nw := 0.0; nw <= 20_000_000; nw += 25_000 {
		got := s.Score(nw, goals, services)
		assert.GreaterOrEqual(t, got, prev, "net worth %.0f", nw)
		prev = got
	}
}
