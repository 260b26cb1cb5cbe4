package payoff

import (
	"fmt"

	"github.com/cardwise/cardwise/internal/models"
	"github.com/shopspring/decimal"
)

// SimulateScenarios evaluates each scenario against the current statement.
// A positive monthly change means extra spending and reports the additional
// interest it causes; a zero or negative change means extra saving and
// reports the interest saved. Scenarios are independent; no state is shared
// between entries.
func (s *Simulator) SimulateScenarios(stmt models.Statement, scenarios []models.Scenario) map[string]models.ScenarioResult {
	results := make(map[string]models.ScenarioResult, len(scenarios))

	rate := stmt.InterestRate
	if rate == 0 {
		rate = DefaultAPR
	}

	for _, sc := range scenarios {
		name := sc.Name
		if name == "" {
			name = "Unnamed Scenario"
		}
		duration := sc.DurationMonths
		if duration <= 0 {
			duration = 12
		}

		if sc.MonthlyChange.IsPositive() {
			results[name] = s.simulateSpending(stmt, sc.MonthlyChange, duration, rate)
		} else {
			results[name] = s.simulateSaving(stmt, sc.MonthlyChange, duration, rate)
		}
	}

	return results
}

func (s *Simulator) simulateSpending(stmt models.Statement, monthlyChange decimal.Decimal, duration int, rate float64) models.ScenarioResult {
	added := monthlyChange.Mul(decimal.NewFromInt(int64(duration)))
	newBalance := stmt.CurrentBalance.Add(added)
	extraInterest := TotalInterest(newBalance, stmt.MinimumPayment, rate, duration)

	return models.ScenarioResult{
		MonthlyChange:      monthlyChange,
		DurationMonths:     duration,
		NewBalance:         newBalance,
		AdditionalInterest: &extraInterest,
		Summary: fmt.Sprintf("Spending $%s more per month would add $%s to debt and ~$%s in extra interest",
			monthlyChange.StringFixed(2), added.StringFixed(2), extraInterest.StringFixed(2)),
	}
}

func (s *Simulator) simulateSaving(stmt models.Statement, monthlyChange decimal.Decimal, duration int, rate float64) models.ScenarioResult {
	additionalPayment := monthlyChange.Abs()
	totalSaved := additionalPayment.Mul(decimal.NewFromInt(int64(duration)))

	newBalance := stmt.CurrentBalance.Sub(totalSaved)
	if newBalance.IsNegative() {
		newBalance = decimal.Zero
	}

	interestSaved := s.InterestSaved(stmt.CurrentBalance, additionalPayment, rate, duration)

	return models.ScenarioResult{
		MonthlyChange:  monthlyChange,
		DurationMonths: duration,
		NewBalance:     newBalance,
		TotalImpact:    &totalSaved,
		InterestSaved:  &interestSaved,
		Summary: fmt.Sprintf("Saving $%s/month for %d months would save $%s total and $%s in interest",
			additionalPayment.StringFixed(2), duration, totalSaved.StringFixed(2), interestSaved.StringFixed(2)),
	}
}
