package csvparse

import (
	"testing"

	"github.com/cardwise/cardwise/internal/models"
	"github.com/shopspring/decimal"
)

func TestParseTransactions_Valid(t *testing.T) {
	content := `Date,Merchant,Amount,Category
01/15/2024,Starbucks,-5.75,
01/16/2024,Whole Foods,-87.32,Groceries`

	transactions := ParseTransactions(content)

	if len(transactions) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(transactions))
	}

	t1 := transactions[0]
	if t1.Merchant != "Starbucks" {
		t.Errorf("Expected merchant 'Starbucks', got '%s'", t1.Merchant)
	}
	if !t1.Amount.Equal(decimal.NewFromFloat(-5.75)) {
		t.Errorf("Expected amount -5.75, got %s", t1.Amount)
	}
	if t1.Category != "" {
		t.Errorf("Expected empty category, got '%s'", t1.Category)
	}

	t2 := transactions[1]
	if t2.Category != models.CategoryGroceries {
		t.Errorf("Expected category 'Groceries', got '%s'", t2.Category)
	}
}

func TestParseTransactions_HeaderAliases(t *testing.T) {
	content := `Trans Date,Payee,Transaction Amount,Memo
01/15/2024,Shell Oil,-40.00,fill up`

	transactions := ParseTransactions(content)

	if len(transactions) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(transactions))
	}
	if transactions[0].Merchant != "Shell Oil" {
		t.Errorf("Expected merchant 'Shell Oil', got '%s'", transactions[0].Merchant)
	}
	if transactions[0].Date != "01/15/2024" {
		t.Errorf("Expected date '01/15/2024', got '%s'", transactions[0].Date)
	}
	if transactions[0].Description != "fill up" {
		t.Errorf("Expected description 'fill up', got '%s'", transactions[0].Description)
	}
}

func TestParseTransactions_CurrencyAndParens(t *testing.T) {
	content := `Date,Merchant,Amount
01/15/2024,Target,"$1,234.56"
01/16/2024,Refund Co,(12.34)`

	transactions := ParseTransactions(content)

	if len(transactions) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(transactions))
	}
	if !transactions[0].Amount.Equal(decimal.NewFromFloat(1234.56)) {
		t.Errorf("Expected 1234.56, got %s", transactions[0].Amount)
	}
	if !transactions[1].Amount.Equal(decimal.NewFromFloat(-12.34)) {
		t.Errorf("Expected -12.34 from parentheses, got %s", transactions[1].Amount)
	}
}

// A row with extra commas has a mismatched token count and is skipped;
// the remaining rows still parse and no error is raised.
func TestParseTransactions_MalformedRowTolerance(t *testing.T) {
	content := `Date,Merchant,Amount
01/15/2024,Starbucks,-5.75
01/16/2024,Too,Many,Fields,-10.00
01/17/2024,Kroger,-52.10`

	transactions := ParseTransactions(content)

	if len(transactions) != 2 {
		t.Fatalf("Expected 2 transactions (malformed row dropped), got %d", len(transactions))
	}
}

func TestParseTransactions_NonNumericAmountDropped(t *testing.T) {
	content := `Date,Merchant,Amount
01/15/2024,Starbucks,n/a
01/16/2024,Kroger,-52.10`

	transactions := ParseTransactions(content)

	if len(transactions) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(transactions))
	}
	if transactions[0].Merchant != "Kroger" {
		t.Errorf("Expected surviving row 'Kroger', got '%s'", transactions[0].Merchant)
	}
}

func TestParseTransactions_RequiresMerchantOrDescription(t *testing.T) {
	content := `Date,Merchant,Amount
01/15/2024,,-5.75`

	transactions := ParseTransactions(content)

	if len(transactions) != 0 {
		t.Fatalf("Expected 0 transactions, got %d", len(transactions))
	}
}

func TestParseTransactions_BlankLinesSkipped(t *testing.T) {
	content := "Date,Merchant,Amount\n01/15/2024,Starbucks,-5.75\n\n01/17/2024,Kroger,-52.10\n"

	transactions := ParseTransactions(content)

	if len(transactions) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(transactions))
	}
}

func TestParseTransactions_Empty(t *testing.T) {
	if got := ParseTransactions(""); len(got) != 0 {
		t.Errorf("Expected 0 transactions, got %d", len(got))
	}
}

func TestParseTransactions_HeaderOnly(t *testing.T) {
	if got := ParseTransactions("Date,Merchant,Amount"); len(got) != 0 {
		t.Errorf("Expected 0 transactions, got %d", len(got))
	}
}
