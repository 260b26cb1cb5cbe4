// Package insights composes deterministic guidance from a parsed
// statement: plain-English nudges, a statement explanation, and a combined
// financial report with stock what-if scenarios. Text generation by a
// hosted model is a concern of the surrounding application, not of this
// package; everything here is rule-driven.
package insights

import (
	"fmt"
	"math"

	"github.com/cardwise/cardwise/internal/models"
	"github.com/cardwise/cardwise/internal/payoff"
	"github.com/shopspring/decimal"
)

const rewardsThreshold = 25000

// Analyzer produces nudges and reports. Simulation policy (baseline
// minimum payment rate) comes from the embedded payoff simulator.
type Analyzer struct {
	sim *payoff.Simulator
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{sim: payoff.NewSimulator()}
}

// Nudges generates personalized guidance from the statement. Each rule is
// independent; rules that do not apply contribute nothing.
func (a *Analyzer) Nudges(stmt models.Statement) []string {
	var nudges []string

	rate := stmt.InterestRate
	if rate == 0 {
		rate = payoff.DefaultAPR
	}

	// Interest avoidance: what next month costs if the balance rides.
	if stmt.CurrentBalance.IsPositive() {
		dailyRate := decimal.NewFromFloat(rate).Div(decimal.NewFromInt(365))
		monthlyInterest := stmt.CurrentBalance.Mul(dailyRate).Mul(decimal.NewFromInt(30))
		nudges = append(nudges, fmt.Sprintf("💰 Pay $%s more to avoid ~$%s in interest next month",
			stmt.CurrentBalance.StringFixed(2), monthlyInterest.StringFixed(2)))
	}

	// Minimum payment trap.
	if stmt.MinimumPayment.IsPositive() &&
		stmt.CurrentBalance.GreaterThan(stmt.MinimumPayment.Mul(decimal.NewFromInt(2))) {
		months := payoff.MonthsToPayoff(stmt.CurrentBalance, stmt.MinimumPayment, rate)
		if !math.IsInf(months, 1) {
			extra := stmt.CurrentBalance.Sub(stmt.MinimumPayment)
			nudges = append(nudges, fmt.Sprintf(
				"⏰ Paying only the minimum? It'll take %.0f months to pay off. Consider paying $%s more.",
				months, extra.Div(decimal.NewFromInt(2)).StringFixed(2)))
		}
	}

	// Credit utilization above the 30% scoring threshold.
	totalLimit := stmt.CurrentBalance.Add(stmt.AvailableCredit)
	if totalLimit.IsPositive() {
		utilization, _ := stmt.CurrentBalance.Div(totalLimit).Mul(decimal.NewFromInt(100)).Float64()
		if utilization > 30 {
			target := totalLimit.Mul(decimal.NewFromFloat(0.30))
			reduction := stmt.CurrentBalance.Sub(target)
			nudges = append(nudges, fmt.Sprintf(
				"📉 Your credit utilization is %.0f%%. Pay down $%s to get under 30%% for better credit scores.",
				utilization, reduction.StringFixed(2)))
		}
	}

	// Dominant spending category.
	if name, amount, ok := highestCategory(stmt.SpendingCategories); ok {
		if amount.GreaterThan(stmt.NewCharges.Mul(decimal.NewFromFloat(0.3))) {
			nudges = append(nudges, fmt.Sprintf(
				"🛍️ %s was your biggest expense at $%s. Consider setting a budget for this category.",
				name, amount.StringFixed(2)))
		}
	}

	// Rewards progress.
	if stmt.RewardsEarned > 0 {
		if stmt.RewardsEarned >= rewardsThreshold {
			nudges = append(nudges, fmt.Sprintf(
				"✈️ You've earned %d points! That's enough for a travel reward - check your redemption options.",
				stmt.RewardsEarned))
		} else {
			nudges = append(nudges, fmt.Sprintf(
				"🎯 You're %d points away from a travel reward. Keep using your card for everyday purchases!",
				rewardsThreshold-stmt.RewardsEarned))
		}
	}

	return nudges
}

// highestCategory returns the category with the largest total. Ties break
// deterministically on name so repeated runs agree.
func highestCategory(categories map[string]decimal.Decimal) (string, decimal.Decimal, bool) {
	var (
		bestName   string
		bestAmount decimal.Decimal
		found      bool
	)
	for name, amount := range categories {
		switch {
		case !found,
			amount.GreaterThan(bestAmount),
			amount.Equal(bestAmount) && name < bestName:
			bestName = name
			bestAmount = amount
			found = true
		}
	}
	return bestName, bestAmount, found
}
