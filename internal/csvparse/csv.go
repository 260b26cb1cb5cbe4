// Package csvparse extracts transactions from delimited exports. The first
// line is the header; header names are matched fuzzily against known
// aliases, and malformed rows are dropped rather than surfaced as errors.
package csvparse

import (
	"encoding/csv"
	"strings"

	"github.com/cardwise/cardwise/internal/models"
	"github.com/shopspring/decimal"
)

// fieldAliases maps each standard transaction field to its acceptable
// header names, in preference order. The first alias present in the header
// row is the one used.
var fieldAliases = []struct {
	field   string
	aliases []string
}{
	{"date", []string{"date", "transaction date", "trans date"}},
	{"merchant", []string{"merchant", "description", "vendor", "payee"}},
	{"amount", []string{"amount", "debit", "credit", "transaction amount"}},
	{"category", []string{"category", "type", "classification"}},
	{"description", []string{"description", "memo", "details"}},
}

// ParseTransactions parses transactions from delimited text. Rows whose
// token count does not match the header, rows with a non-numeric amount,
// and rows lacking both merchant and description are silently dropped;
// callers wanting drop counts should compare input row counts against the
// returned slice length.
func ParseTransactions(content string) []models.Transaction {
	reader := csv.NewReader(strings.NewReader(strings.TrimSpace(content)))
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil || len(records) < 2 {
		return []models.Transaction{}
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	transactions := make([]models.Transaction, 0, len(records)-1)
	for _, record := range records[1:] {
		if isBlankRow(record) {
			continue
		}
		if len(record) != len(headers) {
			continue // malformed row tolerance
		}

		row := make(map[string]string, len(headers))
		for i, header := range headers {
			row[header] = strings.TrimSpace(strings.Trim(strings.TrimSpace(record[i]), `"`))
		}

		if t, ok := standardize(row); ok {
			transactions = append(transactions, t)
		}
	}

	return transactions
}

func isBlankRow(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// standardize maps a raw row onto the standard transaction fields. A row
// is emitted only if it has a resolved amount and at least one of
// merchant or description.
func standardize(row map[string]string) (models.Transaction, bool) {
	var t models.Transaction
	var hasAmount, hasMerchant, hasDescription bool

	for _, mapping := range fieldAliases {
		for _, alias := range mapping.aliases {
			value, ok := row[alias]
			if !ok {
				continue
			}

			switch mapping.field {
			case "amount":
				amount, ok := parseAmount(value)
				if !ok {
					continue
				}
				t.Amount = amount
				hasAmount = true
			case "date":
				t.Date = value
			case "merchant":
				t.Merchant = value
				hasMerchant = value != ""
			case "category":
				t.Category = models.Category(value)
			case "description":
				t.Description = value
				hasDescription = value != ""
			}
			break
		}
	}

	if !hasAmount || (!hasMerchant && !hasDescription) {
		return models.Transaction{}, false
	}
	return t, true
}

// parseAmount normalizes a monetary token: currency symbols and thousands
// separators stripped, accounting-style parentheses as negation.
func parseAmount(value string) (decimal.Decimal, bool) {
	s := strings.NewReplacer("$", "", ",", "", "(", "-", ")", "").Replace(value)
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return amount, true
}
