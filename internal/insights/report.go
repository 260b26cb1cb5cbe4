package insights

import (
	"fmt"
	"strings"
	"time"

	"github.com/cardwise/cardwise/internal/models"
	"github.com/shopspring/decimal"
)

// Report is a complete statement analysis: explanation, nudges, and the
// stock what-if scenarios.
type Report struct {
	Explanation string                           `json:"statement_explanation"`
	Nudges      []string                         `json:"personalized_nudges"`
	Scenarios   map[string]models.ScenarioResult `json:"scenario_analysis"`
	Summary     Summary                          `json:"summary"`
	GeneratedAt time.Time                        `json:"generated_at"`
}

// Summary is the headline figures block of a Report.
type Summary struct {
	CurrentBalance  decimal.Decimal `json:"current_balance"`
	MonthlySpending decimal.Decimal `json:"monthly_spending"`
	InterestCharged decimal.Decimal `json:"interest_charged"`
	AvailableCredit decimal.Decimal `json:"available_credit"`
}

// stockScenarios are the standing what-ifs every report evaluates.
var stockScenarios = []models.Scenario{
	{Name: "Save $200 more per month", MonthlyChange: decimal.NewFromInt(-200), DurationMonths: 12},
	{Name: "Save $100 more per month", MonthlyChange: decimal.NewFromInt(-100), DurationMonths: 12},
	{Name: "Spend $150 more per month", MonthlyChange: decimal.NewFromInt(150), DurationMonths: 12},
}

// BuildReport assembles the full analysis for one statement.
func (a *Analyzer) BuildReport(stmt models.Statement) Report {
	return Report{
		Explanation: ExplainStatement(stmt),
		Nudges:      a.Nudges(stmt),
		Scenarios:   a.sim.SimulateScenarios(stmt, stockScenarios),
		Summary: Summary{
			CurrentBalance:  stmt.CurrentBalance,
			MonthlySpending: stmt.NewCharges,
			InterestCharged: stmt.InterestCharged,
			AvailableCredit: stmt.AvailableCredit,
		},
		GeneratedAt: time.Now(),
	}
}

// ExplainStatement composes a plain-English breakdown of the billing cycle.
func ExplainStatement(stmt models.Statement) string {
	var b strings.Builder

	b.WriteString("This month's statement breakdown:\n\n")
	fmt.Fprintf(&b, "💰 You spent $%s in new charges\n", stmt.NewCharges.StringFixed(2))
	fmt.Fprintf(&b, "💳 You made $%s in payments\n", stmt.Payments.StringFixed(2))
	fmt.Fprintf(&b, "📊 Your current balance is $%s\n", stmt.CurrentBalance.StringFixed(2))

	if stmt.InterestCharged.IsPositive() {
		fmt.Fprintf(&b, "\n⚠️ You were charged $%s in interest this month.\n", stmt.InterestCharged.StringFixed(2))
	}
	if stmt.CurrentBalance.GreaterThan(stmt.MinimumPayment) {
		b.WriteString("💡 Pay more than the minimum to save on interest charges.\n")
	}

	return b.String()
}
