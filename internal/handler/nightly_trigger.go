package handler

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/cardwise/cardwise/internal/payoff"
	"github.com/shopspring/decimal"
)

// HandleNightlyTrigger scans stored statements for payments coming due and
// emails reminders.
func (d *Dependencies) HandleNightlyTrigger(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slog.Info("Starting nightly trigger processing")

	userEmail := os.Getenv("USER_EMAIL")
	if userEmail == "" {
		slog.Warn("USER_EMAIL environment variable is not set; skipping email notifications")
		w.WriteHeader(http.StatusOK)
		return
	}

	records, err := d.Database.ListStatements(ctx)
	if err != nil {
		slog.Error("Failed to fetch statements", "error", err)
		http.Error(w, "Failed to fetch statements", http.StatusInternalServerError)
		return
	}

	// Due dates are stored as 2006-01-02 when the source date parsed;
	// anything else never matches and is skipped.
	targetDate := time.Now().AddDate(0, 0, 3).Format("2006-01-02")
	slog.Info("Checking statements for upcoming due date", "target_date", targetDate, "statement_count", len(records))

	for _, record := range records {
		stmt := record.Statement
		if stmt.DueDate != targetDate {
			continue
		}
		if !stmt.MinimumPayment.GreaterThan(decimal.Zero) {
			slog.Info("Statement due soon but no minimum payment recorded",
				"statement_id", record.ID,
				"due_date", stmt.DueDate)
			continue
		}

		slog.Info("Statement payment due",
			"statement_id", record.ID,
			"due_in_days", 3,
			"minimum_payment", stmt.MinimumPayment.StringFixed(2))

		payoffLine := ""
		months := payoff.MonthsToPayoff(stmt.CurrentBalance, stmt.MinimumPayment, payoff.DefaultAPR)
		if math.IsInf(months, 1) {
			payoffLine = "<p>At this payment your balance will not decrease; the minimum does not cover accruing interest.</p>"
		} else if months > 0 {
			payoffLine = fmt.Sprintf("<p>Paying only the minimum, this balance takes about <b>%.0f months</b> to clear.</p>", math.Ceil(months))
		}

		subject := fmt.Sprintf("Payment Reminder: %s", record.Filename)
		body := fmt.Sprintf(`
			<h3>Payment Reminder</h3>
			<p>Your statement <b>%s</b> has a payment due in 3 days (%s).</p>
			<h2>$%s minimum due</h2>
			<p>Current Balance: $%s</p>
			%s
		`,
			record.Filename,
			stmt.DueDate,
			stmt.MinimumPayment.StringFixed(2),
			stmt.CurrentBalance.StringFixed(2),
			payoffLine,
		)

		if err := d.Email.SendEmail(ctx, []string{userEmail}, subject, body); err != nil {
			slog.Error("Failed to send payment reminder email",
				"statement_id", record.ID,
				"email", userEmail,
				"error", err)
			// Continue to next statement even if email fails
		} else {
			slog.Info("Payment reminder email sent", "statement_id", record.ID, "email", userEmail)
		}
	}

	slog.Info("Nightly trigger processing complete")
	w.WriteHeader(http.StatusOK)
}
