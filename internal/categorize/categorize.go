// Package categorize assigns spending categories to transactions and
// accumulates per-category totals.
package categorize

import (
	"strings"

	"github.com/cardwise/cardwise/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// rule pairs a category with its match keywords. Rules are evaluated in
// order and the first category with a matching keyword wins, so the
// ordering is part of the contract: "walmart" appears under both Groceries
// and Shopping & Retail, and Groceries is tested first.
type rule struct {
	category models.Category
	keywords []string
}

var rules = []rule{
	{models.CategoryDining, []string{"restaurant", "dining", "food", "cafe", "pizza", "burger", "starbucks"}},
	{models.CategoryGasAuto, []string{"gas", "shell", "chevron", "exxon", "bp", "auto", "car"}},
	{models.CategoryGroceries, []string{"grocery", "supermarket", "whole foods", "safeway", "kroger", "walmart"}},
	{models.CategoryShopping, []string{"amazon", "target", "walmart", "mall", "store", "retail", "shopping"}},
	{models.CategoryTravel, []string{"airline", "hotel", "travel", "uber", "lyft", "rental", "airport"}},
	{models.CategoryUtilities, []string{"electric", "gas company", "water", "internet", "phone", "cable"}},
	{models.CategoryEntertainment, []string{"movie", "theater", "netflix", "spotify", "game", "entertainment"}},
	{models.CategoryHealthcare, []string{"medical", "doctor", "pharmacy", "hospital", "health"}},
}

var titleCaser = cases.Title(language.English)

// Resolve returns the category for a single transaction. A user-supplied
// category takes precedence (title-cased verbatim); otherwise merchant and
// description are matched against the keyword rules, falling back to Other.
func Resolve(t models.Transaction) models.Category {
	if t.Category != "" {
		return models.Category(titleCaser.String(strings.ToLower(string(t.Category))))
	}

	text := strings.ToLower(t.Merchant + " " + t.Description)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return r.category
			}
		}
	}
	return models.CategoryOther
}

// Totals accumulates the absolute amount of each transaction under its
// resolved category. Categories with no transactions are omitted.
func Totals(transactions []models.Transaction) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		category := string(Resolve(t))
		totals[category] = totals[category].Add(t.Amount.Abs())
	}
	return totals
}
