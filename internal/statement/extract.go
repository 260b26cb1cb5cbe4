// Package statement extracts a normalized billing-cycle record from
// unstructured statement text (OCR output, copy-paste, plain-text exports).
//
// Extraction is recoverable-by-omission: a line that matches no label or
// carries no parseable value contributes nothing, and the result reports
// which fields were found, which were derived from accounting identities,
// and which remain unknown. ParseText never fails.
package statement

import (
	"regexp"
	"strings"
	"time"

	"github.com/cardwise/cardwise/internal/models"
	"github.com/shopspring/decimal"
)

// ParseResult carries the best-effort Statement together with explicit
// field bookkeeping, so downstream consumers can distinguish a genuine
// zero from a value that was never present in the input.
type ParseResult struct {
	Statement models.Statement        `json:"statement"`
	Resolved  []models.StatementField `json:"resolved"`
	Derived   []models.StatementField `json:"derived"`
	Missing   []models.StatementField `json:"missing"`
	ParsedAt  time.Time               `json:"parsed_at"`
}

type fieldKind int

const (
	amountField fieldKind = iota
	dateField
)

// labelRule maps label keywords on a statement line to a field. Rules are
// evaluated in order and the first match wins; a line is assigned to at
// most one field. This ordering is a compatibility contract: a line like
// "Payment Due Date: 08/15/2024" matches the payments rule before the due
// date rule, exactly as historical behavior dictates.
type labelRule struct {
	field    models.StatementField
	keywords []string
	exclude  []string
	kind     fieldKind
}

var labelRules = []labelRule{
	{models.FieldPreviousBalance, []string{"previous balance", "last balance"}, nil, amountField},
	{models.FieldCurrentBalance, []string{"current balance", "new balance"}, nil, amountField},
	{models.FieldPayments, []string{"payment"}, []string{"minimum"}, amountField},
	{models.FieldMinimumPayment, []string{"minimum payment"}, nil, amountField},
	{models.FieldInterestCharged, []string{"interest", "finance charge"}, nil, amountField},
	{models.FieldDueDate, []string{"due date", "payment due"}, nil, dateField},
	{models.FieldCreditLimit, []string{"credit limit"}, nil, amountField},
	{models.FieldAvailableCredit, []string{"available credit"}, nil, amountField},
}

var (
	amountPattern = regexp.MustCompile(`\$?([0-9][0-9,]*\.?[0-9]*)`)

	// Tried in order; first match wins.
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`[0-9]{1,2}[/\-][0-9]{1,2}[/\-][0-9]{4}`),
		regexp.MustCompile(`[0-9]{1,2}[/\-][0-9]{1,2}[/\-][0-9]{2}`),
		regexp.MustCompile(`[a-z]{3,9}\s+[0-9]{1,2},?\s+[0-9]{4}`),
	}

	dateLayouts = []string{
		"1/2/2006",
		"1-2-2006",
		"1/2/06",
		"1-2-06",
		"January 2, 2006",
		"January 2 2006",
	}
)

// ParseText parses statement text into a ParseResult. Absent or unparseable
// fields stay unset; degenerate input yields a record with only metadata.
func ParseText(text string) ParseResult {
	var stmt models.Statement
	resolved := make(map[models.StatementField]bool)
	derived := make(map[models.StatementField]bool)

	for _, line := range strings.Split(strings.ToLower(text), "\n") {
		rule, ok := matchRule(line)
		if !ok {
			continue
		}

		switch rule.kind {
		case amountField:
			amount, ok := extractAmount(line)
			if !ok {
				continue
			}
			setAmount(&stmt, rule.field, amount)
			resolved[rule.field] = true
		case dateField:
			date, ok := extractDate(line)
			if !ok {
				continue
			}
			stmt.DueDate = date
			resolved[rule.field] = true
		}
	}

	deriveFields(&stmt, resolved, derived)

	return ParseResult{
		Statement: stmt,
		Resolved:  fieldsInOrder(resolved),
		Derived:   fieldsInOrder(derived),
		Missing:   missingFields(resolved, derived),
		ParsedAt:  time.Now(),
	}
}

// matchRule returns the first label rule whose keywords appear in the line.
func matchRule(line string) (labelRule, bool) {
	for _, rule := range labelRules {
		if !containsAny(line, rule.keywords) {
			continue
		}
		if containsAny(line, rule.exclude) {
			continue
		}
		return rule, true
	}
	return labelRule{}, false
}

func containsAny(line string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}

// extractAmount scans the line for monetary-looking substrings and returns
// the last one. Labels often restate earlier figures, so the trailing
// number on a label line is assumed to be the value.
func extractAmount(line string) (decimal.Decimal, bool) {
	matches := amountPattern.FindAllStringSubmatch(line, -1)
	if len(matches) == 0 {
		return decimal.Decimal{}, false
	}

	raw := matches[len(matches)-1][1]
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.TrimSuffix(raw, ".")

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return amount, true
}

// extractDate returns the first date-looking substring, normalized to
// ISO-8601 when one of the known source formats parses, raw otherwise.
func extractDate(line string) (string, bool) {
	for _, pattern := range datePatterns {
		if match := pattern.FindString(line); match != "" {
			return normalizeDate(match), true
		}
	}
	return "", false
}

func normalizeDate(raw string) string {
	// Lines are lowercased before matching; month-name layouts need the
	// month capitalized for time.Parse.
	candidate := raw
	if len(candidate) > 0 && candidate[0] >= 'a' && candidate[0] <= 'z' {
		candidate = strings.ToUpper(candidate[:1]) + candidate[1:]
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return raw
}

func setAmount(stmt *models.Statement, field models.StatementField, amount decimal.Decimal) {
	switch field {
	case models.FieldPreviousBalance:
		stmt.PreviousBalance = amount
	case models.FieldCurrentBalance:
		stmt.CurrentBalance = amount
	case models.FieldPayments:
		stmt.Payments = amount
	case models.FieldNewCharges:
		stmt.NewCharges = amount
	case models.FieldInterestCharged:
		stmt.InterestCharged = amount
	case models.FieldMinimumPayment:
		stmt.MinimumPayment = amount
	case models.FieldCreditLimit:
		stmt.CreditLimit = amount
	case models.FieldAvailableCredit:
		stmt.AvailableCredit = amount
	}
}

// deriveFields fills fields computable from the accounting identities:
//
//	new_charges      = current - previous + payments - interest  (clamped >= 0)
//	available_credit = credit_limit - current_balance
//	interest_rate    = (interest_charged / previous_balance) * 12  (capped 0.30)
func deriveFields(stmt *models.Statement, resolved, derived map[models.StatementField]bool) {
	known := func(f models.StatementField) bool { return resolved[f] || derived[f] }

	if !known(models.FieldNewCharges) &&
		known(models.FieldCurrentBalance) &&
		known(models.FieldPreviousBalance) &&
		known(models.FieldPayments) {
		charges := stmt.CurrentBalance.
			Sub(stmt.PreviousBalance).
			Add(stmt.Payments).
			Sub(stmt.InterestCharged)
		if charges.IsNegative() {
			charges = decimal.Zero
		}
		stmt.NewCharges = charges
		derived[models.FieldNewCharges] = true
	}

	if !known(models.FieldAvailableCredit) &&
		known(models.FieldCreditLimit) &&
		known(models.FieldCurrentBalance) {
		stmt.AvailableCredit = stmt.CreditLimit.Sub(stmt.CurrentBalance)
		derived[models.FieldAvailableCredit] = true
	}

	if !known(models.FieldInterestRate) &&
		known(models.FieldInterestCharged) &&
		known(models.FieldPreviousBalance) &&
		stmt.InterestCharged.IsPositive() &&
		stmt.PreviousBalance.IsPositive() {
		monthly, _ := stmt.InterestCharged.Div(stmt.PreviousBalance).Float64()
		annual := monthly * 12
		if annual > 0.30 {
			annual = 0.30
		}
		stmt.InterestRate = annual
		derived[models.FieldInterestRate] = true
	}
}

func fieldsInOrder(set map[models.StatementField]bool) []models.StatementField {
	fields := make([]models.StatementField, 0, len(set))
	for _, f := range models.AllStatementFields() {
		if set[f] {
			fields = append(fields, f)
		}
	}
	return fields
}

func missingFields(resolved, derived map[models.StatementField]bool) []models.StatementField {
	var fields []models.StatementField
	for _, f := range models.AllStatementFields() {
		if !resolved[f] && !derived[f] {
			fields = append(fields, f)
		}
	}
	return fields
}
