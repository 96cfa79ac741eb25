package model

import "time"

// Profile is the raw intake submission collected from a prospective client.
type Profile struct {
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	Email            string   `json:"email"`
	NetWorth         float64  `json:"net_worth"`
	AnnualIncome     float64  `json:"annual_income"`
	EmploymentStatus string   `json:"employment_status"`
	FamilySize       int      `json:"family_size"`
	Goals            []string `json:"goals"`
	SelectedServices []string `json:"selected_services"`
}

// ClientIntake is a persisted intake record. It is never modified after creation.
type ClientIntake struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Profile
}

// Quote is a derived price quote. All monetary fields are rounded to cents.
type Quote struct {
	BasePrice          float64 `json:"base_price"`
	NetWorthMultiplier float64 `json:"net_worth_multiplier"`
	ServiceCost        float64 `json:"service_cost"`
	MonthlyPrice       float64 `json:"monthly_price"`
	AnnualPrice        float64 `json:"annual_price"`
	AnnualSavings      float64 `json:"annual_savings"`
}

// Recommendation is the outcome of scoring, tier selection and pricing for a profile.
type Recommendation struct {
	Tier     Tier     `json:"tier"`
	Score    int      `json:"score"`
	Quote    Quote    `json:"quote"`
	Features []string `json:"features,omitempty"`
}

// Result is returned by a successful submission.
type Result struct {
	Record ClientIntake `json:"record"`
	Recommendation
}
