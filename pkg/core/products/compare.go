package products

import (
	"fmt"

	"finpulse/pkg/core/errs"
)

// Comparison is a side-by-side view of selected products in one category.
type Comparison struct {
	Products []LoanProduct                `json:"products"`
	Matrix   map[string]map[string]string `json:"comparison_matrix"`
}

// Compare builds a comparison for the requested product ids. At least two of
// the ids must exist in the category's catalog.
func Compare(productIDs []string, category string) (*Comparison, error) {
	if category == "" {
		category = "loans"
	}

	// Only loans carry comparable numeric terms today.
	selected := []LoanProduct{}
	if category == "loans" {
		for _, p := range loanCatalog {
			if contains(productIDs, p.ID) {
				selected = append(selected, p)
			}
		}
	}

	if len(selected) < 2 {
		return nil, &errs.InvalidComparisonError{Category: category, Found: len(selected)}
	}

	return &Comparison{
		Products: selected,
		Matrix:   comparisonMatrix(selected),
	}, nil
}

func comparisonMatrix(products []LoanProduct) map[string]map[string]string {
	interest := make(map[string]string, len(products))
	amounts := make(map[string]string, len(products))
	tenures := make(map[string]string, len(products))

	for _, p := range products {
		interest[p.ID] = p.InterestRange
		amounts[p.ID] = fmt.Sprintf("%.0f - %.0f", p.MinAmount, p.MaxAmount)
		tenures[p.ID] = p.Tenure
	}

	return map[string]map[string]string{
		"interest_rate": interest,
		"amount_range":  amounts,
		"tenure":        tenures,
	}
}
