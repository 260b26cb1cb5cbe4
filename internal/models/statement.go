package models

import (
	"github.com/shopspring/decimal"
)

// StatementField identifies a single extractable field of a Statement.
// The parser reports which fields were found, derived, or left unresolved
// so callers can tell a genuine zero apart from an absent value.
type StatementField string

const (
	FieldPreviousBalance StatementField = "previous_balance"
	FieldCurrentBalance  StatementField = "current_balance"
	FieldPayments        StatementField = "payments"
	FieldNewCharges      StatementField = "new_charges"
	FieldInterestCharged StatementField = "interest_charged"
	FieldMinimumPayment  StatementField = "minimum_payment"
	FieldInterestRate    StatementField = "interest_rate"
	FieldCreditLimit     StatementField = "credit_limit"
	FieldAvailableCredit StatementField = "available_credit"
	FieldDueDate         StatementField = "due_date"
)

// AllStatementFields returns the extractable fields in canonical order.
func AllStatementFields() []StatementField {
	return []StatementField{
		FieldPreviousBalance,
		FieldCurrentBalance,
		FieldPayments,
		FieldNewCharges,
		FieldInterestCharged,
		FieldMinimumPayment,
		FieldInterestRate,
		FieldCreditLimit,
		FieldAvailableCredit,
		FieldDueDate,
	}
}

// Statement represents one billing cycle of a revolving credit account.
// Monetary fields are non-negative; InterestRate is an annual fraction
// capped at 0.30. DueDate is ISO-8601 when the source format was parseable,
// otherwise the raw matched text.
type Statement struct {
	PreviousBalance    decimal.Decimal            `json:"previous_balance"`
	CurrentBalance     decimal.Decimal            `json:"current_balance"`
	Payments           decimal.Decimal            `json:"payments"`
	NewCharges         decimal.Decimal            `json:"new_charges"`
	InterestCharged    decimal.Decimal            `json:"interest_charged"`
	MinimumPayment     decimal.Decimal            `json:"minimum_payment"`
	InterestRate       float64                    `json:"interest_rate"`
	CreditLimit        decimal.Decimal            `json:"credit_limit"`
	AvailableCredit    decimal.Decimal            `json:"available_credit"`
	DueDate            string                     `json:"due_date,omitempty"`
	SpendingCategories map[string]decimal.Decimal `json:"spending_categories,omitempty"`
	RewardsEarned      int64                      `json:"rewards_earned,omitempty"`
}

// TotalCreditLimit returns the best-known total limit: the explicit credit
// limit when present, otherwise balance plus available credit.
func (s *Statement) TotalCreditLimit() decimal.Decimal {
	if !s.CreditLimit.IsZero() {
		return s.CreditLimit
	}
	return s.CurrentBalance.Add(s.AvailableCredit)
}
