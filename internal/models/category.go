package models

// Category represents a spending category for transactions.
type Category string

const (
	CategoryDining        Category = "Dining & Restaurants"
	CategoryGasAuto       Category = "Gas & Auto"
	CategoryGroceries     Category = "Groceries"
	CategoryShopping      Category = "Shopping & Retail"
	CategoryTravel        Category = "Travel"
	CategoryUtilities     Category = "Utilities"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealthcare    Category = "Healthcare"
	CategoryOther         Category = "Other"
)
