package model

// Known services offered at intake.
const (
	ServiceHealthManagement     = "Health Management"
	ServiceInvestmentManagement = "Investment Management"
	ServiceExpenseTracking      = "Expense Tracking"
	ServiceInsuranceManagement  = "Insurance Management"
	ServiceLegalServices        = "Legal Services"
	ServiceTaxManagement        = "Tax Management"
	ServiceTravelPlanning       = "Travel Planning"
	ServicePersonalAssistant    = "Personal Assistant"
)

var serviceDescriptions = map[string]string{
	ServiceHealthManagement:     "Medical appointment scheduling, prescription management, health tracking",
	ServiceInvestmentManagement: "Portfolio monitoring, investment advice, broker coordination",
	ServiceExpenseTracking:      "Budget analysis, expense categorization, financial reporting",
	ServiceInsuranceManagement:  "Policy review, claims assistance, coverage optimization",
	ServiceLegalServices:        "Document review, legal consultation, case management",
	ServiceTaxManagement:        "Tax preparation, filing assistance, optimization strategies",
	ServiceTravelPlanning:       "Trip coordination, booking management, itinerary planning",
	ServicePersonalAssistant:    "Daily task management, scheduling, personal errands",
}

// Services returns the service catalog in display order.
func Services() []string {
	return []string{
		ServiceHealthManagement,
		ServiceInvestmentManagement,
		ServiceExpenseTracking,
		ServiceInsuranceManagement,
		ServiceLegalServices,
		ServiceTaxManagement,
		ServiceTravelPlanning,
		ServicePersonalAssistant,
	}
}

// IsKnownService reports whether name is in the service catalog.
func IsKnownService(name string) bool {
	_, ok := serviceDescriptions[name]
	return ok
}

// ServiceDescription returns the short description of a known service, or "".
func ServiceDescription(name string) string {
	return serviceDescriptions[name]
}

// UniqueServices collapses duplicate service names, keeping first-seen order.
// Names are compared exactly; unknown names are kept.
func UniqueServices(services []string) []string {
	if services == nil {
		return nil
	}
	seen := make(map[string]bool, len(services))
	out := make([]string, 0, len(services))
	for _, s := range services {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
