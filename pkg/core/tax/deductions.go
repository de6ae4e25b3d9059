package tax

import (
	"strings"

	"github.com/shopspring/decimal"
)

// deductionSections maps expense category keywords to the income tax section
// allowing the deduction. Evaluated in order; the first keyword contained in
// the expense category wins.
var deductionSections = []struct {
	Keyword string
	Section string
}{
	{"rent", "Section 30 - Rent for business premises"},
	{"salary", "Section 36 - Salaries and wages"},
	{"insurance", "Section 36 - Insurance premiums"},
	{"depreciation", "Section 32 - Depreciation on assets"},
	{"professional_fees", "Section 37 - Professional fees"},
	{"travel", "Section 37 - Travel for business"},
	{"marketing", "Section 37 - Advertisement and marketing"},
}

// Assumed income tax slab for the savings estimate.
var assumedTaxRate = decimal.NewFromFloat(0.30)

// Expense is one candidate deduction input.
type Expense struct {
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
}

// DeductibleExpense is an expense matched to a tax section.
type DeductibleExpense struct {
	Expense    string  `json:"expense"`
	Amount     float64 `json:"amount"`
	Category   string  `json:"category"`
	TaxSection string  `json:"tax_section"`
	Deductible bool    `json:"deductible"`
}

// DeductionReport summarizes identified deductions and estimated savings.
type DeductionReport struct {
	DeductibleExpenses  []DeductibleExpense `json:"deductible_expenses"`
	TotalDeductions     float64             `json:"total_deductions"`
	PotentialTaxSavings float64             `json:"potential_tax_savings"`
	Recommendations     []string            `json:"recommendations"`
}

// IdentifyDeductions scans expenses for deductible categories.
func IdentifyDeductions(expenses []Expense) *DeductionReport {
	deductible := []DeductibleExpense{}
	total := decimal.Zero

	for _, e := range expenses {
		category := strings.ToLower(e.Category)
		for _, ds := range deductionSections {
			if strings.Contains(category, ds.Keyword) {
				deductible = append(deductible, DeductibleExpense{
					Expense:    e.Description,
					Amount:     e.Amount.InexactFloat64(),
					Category:   category,
					TaxSection: ds.Section,
					Deductible: true,
				})
				total = total.Add(e.Amount)
				break
			}
		}
	}

	return &DeductionReport{
		DeductibleExpenses:  deductible,
		TotalDeductions:     total.InexactFloat64(),
		PotentialTaxSavings: total.Mul(assumedTaxRate).InexactFloat64(),
		Recommendations: []string{
			"Maintain proper documentation for all deductions",
			"Ensure GST input tax credit is claimed where applicable",
			"Consider depreciation on all business assets",
		},
	}
}
