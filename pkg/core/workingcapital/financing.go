package workingcapital

import (
	"github.com/shopspring/decimal"
)

// FinancingOption describes one way of funding a working capital gap.
type FinancingOption struct {
	Option      string   `json:"option"`
	SuitableFor string   `json:"suitable_for"`
	TypicalRate string   `json:"typical_rate"`
	Pros        []string `json:"pros"`
	Cons        []string `json:"cons"`
}

// FinancingNeeds sizes the additional working capital required to support
// projected growth.
type FinancingNeeds struct {
	ProjectedGrowth    float64           `json:"projected_growth"`
	AdditionalWCNeeded float64           `json:"additional_wc_needed"`
	CurrentCashCycle   float64           `json:"current_cash_cycle"`
	FinancingOptions   []FinancingOption `json:"financing_options"`
	Recommendation     string            `json:"recommendation"`
}

// financingOptions is static catalog copy, listed only when a funding gap
// exists.
var financingOptions = []FinancingOption{
	{
		Option:      "Working Capital Loan",
		SuitableFor: "Short-term needs",
		TypicalRate: "10-15% p.a.",
		Pros:        []string{"Quick approval", "No collateral for small amounts"},
		Cons:        []string{"Higher interest rates"},
	},
	{
		Option:      "Overdraft Facility",
		SuitableFor: "Fluctuating needs",
		TypicalRate: "12-16% p.a.",
		Pros:        []string{"Flexible", "Pay interest only on used amount"},
		Cons:        []string{"Needs good banking relationship"},
	},
	{
		Option:      "Invoice Discounting",
		SuitableFor: "High receivables",
		TypicalRate: "12-18% p.a.",
		Pros:        []string{"Converts receivables to cash", "Off-balance sheet"},
		Cons:        []string{"Customer may know about factoring"},
	},
	{
		Option:      "Channel Finance",
		SuitableFor: "Supply chain needs",
		TypicalRate: "9-12% p.a.",
		Pros:        []string{"Lower rates", "Strengthens supplier relationships"},
		Cons:        []string{"Limited to specific supply chains"},
	},
}

// CalculateFinancingNeeds estimates additional working capital for the given
// revenue growth (percent) and recommends a financing route by threshold.
func CalculateFinancingNeeds(projectedRevenueGrowth float64, currentWorkingCapital decimal.Decimal, cashCycle float64) *FinancingNeeds {
	additional := currentWorkingCapital.InexactFloat64() * (projectedRevenueGrowth / 100)

	options := []FinancingOption{}
	if additional > 0 {
		options = financingOptions
	}

	return &FinancingNeeds{
		ProjectedGrowth:    projectedRevenueGrowth,
		AdditionalWCNeeded: round2(additional),
		CurrentCashCycle:   cashCycle,
		FinancingOptions:   options,
		Recommendation:     financingRecommendation(additional, cashCycle),
	}
}

func financingRecommendation(amountNeeded, cashCycle float64) string {
	switch {
	case amountNeeded <= 0:
		return "No additional financing needed. Consider investing surplus in growth."
	case cashCycle > 60:
		return "Consider invoice discounting to reduce cash cycle before taking loans."
	case amountNeeded < 500000:
		return "Working capital loan or overdraft facility would be suitable."
	default:
		return "Explore multiple options including channel finance for larger needs."
	}
}
