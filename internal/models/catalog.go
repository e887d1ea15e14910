package models

import "slices"

// Other is the catch-all entry present in every catalog. It is also the
// bucket name used for records with an empty grouping field.
const Other = "Other"

// Fixed catalogs offered to the user. Records may also carry a free-text
// value outside these sets.
var (
	IncomeSources = []string{
		"Salary", "Freelance", "Business", "Investment", "Gift", "Bonus", Other,
	}

	ExpenseCategories = []string{
		"Groceries", "Rent", "Utilities", "Transportation", "Entertainment",
		"Dining Out", "Healthcare", "Shopping", "Education", "Insurance", Other,
	}

	AssetTypes = []string{
		"Cash", "Savings Account", "Investment", "Real Estate", "Vehicle", Other,
	}

	LiabilityTypes = []string{
		"Credit Card", "Student Loan", "Mortgage", "Car Loan", "Personal Loan", Other,
	}

	PaymentMethods = []string{
		"Cash", "Credit Card", "Debit Card", "Bank Transfer", "Check", Other,
	}
)

// IsKnown reports whether value is one of the catalog entries.
func IsKnown(catalog []string, value string) bool {
	return slices.Contains(catalog, value)
}
