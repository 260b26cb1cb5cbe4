// Package payoff projects balance trajectories under fixed monthly
// payments and compares what-if spending and saving deltas.
//
// The model assumes a constant payment and a constant rate with no further
// charges; a periodic (monthly) rate is derived from the APR by simple
// division. Operations are pure and bounded by the caller-supplied horizon.
package payoff

import (
	"math"

	"github.com/shopspring/decimal"
)

// DefaultAPR is assumed when a statement carries no interest rate.
const DefaultAPR = 0.1899

// Simulator holds simulation policy. MinPaymentRate is the assumed
// baseline minimum payment as a fraction of balance; 2% is a policy
// default, not derived from any issuer formula.
type Simulator struct {
	MinPaymentRate decimal.Decimal
}

// NewSimulator returns a Simulator with the 2% baseline minimum payment.
func NewSimulator() *Simulator {
	return &Simulator{MinPaymentRate: decimal.NewFromFloat(0.02)}
}

// MonthsToPayoff returns the number of months to pay off the balance at a
// fixed monthly payment, via the closed-form amortization formula. When the
// payment does not cover the first month's accrued interest the balance
// never shrinks and +Inf is returned; callers must check math.IsInf before
// presenting a payoff date.
func MonthsToPayoff(balance, monthlyPayment decimal.Decimal, annualRate float64) float64 {
	monthlyRate := annualRate / 12
	bal, _ := balance.Float64()
	pay, _ := monthlyPayment.Float64()

	if pay <= bal*monthlyRate {
		return math.Inf(1)
	}
	if monthlyRate == 0 {
		return bal / pay
	}
	return -math.Log(1-bal*monthlyRate/pay) / math.Log(1+monthlyRate)
}

// TotalInterest simulates interest accrual month by month for up to the
// requested horizon, stopping early once the balance reaches zero. It is
// NOT run to actual payoff: with an insufficient payment the balance grows
// for the full horizon and the figure returned is not a total-to-payoff,
// so callers should check MonthsToPayoff first.
func TotalInterest(balance, monthlyPayment decimal.Decimal, annualRate float64, months int) decimal.Decimal {
	monthlyRate := decimal.NewFromFloat(annualRate).Div(decimal.NewFromInt(12))

	total := decimal.Zero
	bal := balance
	for i := 0; i < months; i++ {
		interest := bal.Mul(monthlyRate)
		total = total.Add(interest)
		bal = bal.Add(interest).Sub(monthlyPayment)
		if bal.LessThanOrEqual(decimal.Zero) {
			break
		}
	}
	return total
}

// InterestSaved compares interest over the horizon between the baseline
// minimum payment and baseline plus the extra payment. Never negative.
func (s *Simulator) InterestSaved(balance, extraPayment decimal.Decimal, annualRate float64, months int) decimal.Decimal {
	minimum := balance.Mul(s.MinPaymentRate)

	baseline := TotalInterest(balance, minimum, annualRate, months)
	enhanced := TotalInterest(balance, minimum.Add(extraPayment), annualRate, months)

	saved := baseline.Sub(enhanced)
	if saved.IsNegative() {
		return decimal.Zero
	}
	return saved
}
