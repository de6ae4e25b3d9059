// Package bookkeeping provides automated bookkeeping assistance: transaction
// categorization, duplicate detection, bank reconciliation and double-entry
// journal generation.
package bookkeeping

import (
	"strings"

	"github.com/shopspring/decimal"
)

// categoryKeywords is an ordered (category, keywords) list. Matching walks
// the list in order and the first keyword found in the description wins;
// anything unmatched falls back to "miscellaneous".
type categoryKeywords struct {
	Category string
	Keywords []string
}

var expenseCategories = []categoryKeywords{
	{"salary", []string{"salary", "wages", "payroll", "bonus", "commission"}},
	{"rent", []string{"rent", "lease", "property"}},
	{"utilities", []string{"electricity", "water", "gas", "internet", "phone", "telecom"}},
	{"supplies", []string{"office supplies", "stationery", "materials"}},
	{"travel", []string{"travel", "transport", "fuel", "petrol", "diesel", "cab", "uber", "ola"}},
	{"marketing", []string{"marketing", "advertising", "promotion", "ads", "campaign"}},
	{"professional_services", []string{"legal", "accounting", "consultant", "professional"}},
	{"insurance", []string{"insurance", "premium"}},
	{"equipment", []string{"equipment", "machinery", "hardware", "software"}},
	{"inventory", []string{"inventory", "stock", "goods", "purchase"}},
	{"taxes", []string{"tax", "gst", "tds", "income tax"}},
	{"bank_charges", []string{"bank charge", "bank fee", "transaction fee"}},
}

var revenueCategories = []categoryKeywords{
	{"product_sales", []string{"sale", "product", "goods", "merchandise"}},
	{"service_revenue", []string{"service", "consulting", "professional fee"}},
	{"subscription", []string{"subscription", "recurring", "membership"}},
	{"interest_income", []string{"interest", "dividend"}},
	{"other_income", []string{"refund", "reimbursement", "miscellaneous"}},
}

var accountNames = map[string]string{
	// Expense accounts
	"salary":                "Salaries & Wages",
	"rent":                  "Rent Expense",
	"utilities":             "Utilities Expense",
	"supplies":              "Office Supplies",
	"travel":                "Travel & Conveyance",
	"marketing":             "Marketing Expense",
	"professional_services": "Professional Fees",
	"insurance":             "Insurance Expense",
	"equipment":             "Equipment & Depreciation",
	"inventory":             "Cost of Goods Sold",
	"taxes":                 "Taxes & Duties",
	"bank_charges":          "Bank Charges",
	"miscellaneous":         "Miscellaneous Expense",
	// Revenue accounts
	"product_sales":    "Sales Revenue",
	"service_revenue":  "Service Income",
	"subscription":     "Subscription Revenue",
	"interest_income":  "Interest Income",
	"other_income":     "Other Income",
}

// CategorizedTransaction is the categorization result for one transaction.
type CategorizedTransaction struct {
	OriginalDescription string  `json:"original_description"`
	Category            string  `json:"category"`
	TransactionType     string  `json:"transaction_type"` // income | expense
	Amount              float64 `json:"amount"`
	Confidence          float64 `json:"confidence"`
	SuggestedAccount    string  `json:"suggested_account"`
}

// Categorize assigns a category from the transaction description. Positive
// amounts are treated as income.
func Categorize(description string, amount decimal.Decimal) CategorizedTransaction {
	lower := strings.ToLower(description)
	isIncome := amount.IsPositive()

	var category string
	transactionType := "expense"
	if isIncome {
		category = matchCategory(lower, revenueCategories)
		transactionType = "income"
	} else {
		category = matchCategory(lower, expenseCategories)
	}

	confidence := 0.85
	if category == "miscellaneous" {
		confidence = 0.5
	}

	return CategorizedTransaction{
		OriginalDescription: description,
		Category:            category,
		TransactionType:     transactionType,
		Amount:              amount.InexactFloat64(),
		Confidence:          confidence,
		SuggestedAccount:    accountName(category),
	}
}

// Transaction is an uncategorized input row.
type Transaction struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date,omitempty"`
}

// BatchCategorize categorizes each transaction in order.
func BatchCategorize(transactions []Transaction) []CategorizedTransaction {
	out := make([]CategorizedTransaction, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, Categorize(t.Description, t.Amount))
	}
	return out
}

func matchCategory(description string, categories []categoryKeywords) string {
	for _, c := range categories {
		for _, keyword := range c.Keywords {
			if strings.Contains(description, keyword) {
				return c.Category
			}
		}
	}
	return "miscellaneous"
}

func accountName(category string) string {
	if name, ok := accountNames[category]; ok {
		return name
	}
	return "Miscellaneous"
}
