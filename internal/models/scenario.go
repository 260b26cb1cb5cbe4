package models

import (
	"github.com/shopspring/decimal"
)

// Scenario describes a hypothetical recurring monthly change evaluated over
// a fixed horizon. A negative MonthlyChange means extra payment or saving;
// a positive one means extra spending.
type Scenario struct {
	Name           string          `json:"name"`
	MonthlyChange  decimal.Decimal `json:"monthly_change"`
	DurationMonths int             `json:"duration_months"`
}

// ScenarioResult is the outcome of simulating one Scenario. Exactly one of
// InterestSaved (with TotalImpact) or AdditionalInterest is set, depending
// on the sign of MonthlyChange. Summary is presentation only.
type ScenarioResult struct {
	MonthlyChange      decimal.Decimal  `json:"monthly_change"`
	DurationMonths     int              `json:"duration_months"`
	NewBalance         decimal.Decimal  `json:"new_balance"`
	TotalImpact        *decimal.Decimal `json:"total_impact,omitempty"`
	InterestSaved      *decimal.Decimal `json:"interest_saved,omitempty"`
	AdditionalInterest *decimal.Decimal `json:"additional_interest,omitempty"`
	Summary            string           `json:"summary"`
}
