package models

import (
	"github.com/shopspring/decimal"
)

// Transaction represents a single ledger entry parsed from a delimited
// export. Date is kept as free text exactly as it appeared in the source;
// Amount keeps the source sign convention (charges are typically negative).
// A Transaction is immutable once parsed.
type Transaction struct {
	Date        string          `json:"date,omitempty"`
	Merchant    string          `json:"merchant,omitempty"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category,omitempty"`
}
