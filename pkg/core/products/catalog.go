// Package products scores a static catalog of financial products against a
// business profile and metrics to produce ranked recommendations.
package products

// LoanProduct is one loan offering in the catalog.
type LoanProduct struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	ProviderType  string   `json:"provider_type"`
	MinAmount     float64  `json:"min_amount"`
	MaxAmount     float64  `json:"max_amount"`
	InterestRange string   `json:"interest_range"`
	Tenure        string   `json:"tenure"`
	Requirements  []string `json:"requirements"`
	SuitableFor   []string `json:"suitable_for"`
	MinYears      int      `json:"-"` // minimum years in business stated in requirements
}

// InsuranceProduct is one insurance offering.
type InsuranceProduct struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Coverage     []string `json:"coverage"`
	PremiumRange string   `json:"premium_range"`
	SuitableFor  []string `json:"suitable_for"`
}

// InvestmentProduct is one surplus-parking option.
type InvestmentProduct struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	ReturnRange string   `json:"return_range"`
	Liquidity   string   `json:"liquidity"`
	Risk        string   `json:"risk"`
	SuitableFor []string `json:"suitable_for"`
}

// The catalogs are read-only after startup and shared across requests.
var loanCatalog = []LoanProduct{
	{
		ID:            "wc_loan",
		Name:          "Working Capital Loan",
		ProviderType:  "bank",
		MinAmount:     100000,
		MaxAmount:     10000000,
		InterestRange: "10-15%",
		Tenure:        "12-36 months",
		Requirements:  []string{"2+ years in business", "Positive cash flow"},
		SuitableFor:   []string{"cash_flow_issues", "seasonal_business"},
		MinYears:      2,
	},
	{
		ID:            "term_loan",
		Name:          "Business Term Loan",
		ProviderType:  "bank",
		MinAmount:     500000,
		MaxAmount:     50000000,
		InterestRange: "9-14%",
		Tenure:        "3-7 years",
		Requirements:  []string{"3+ years in business", "Collateral"},
		SuitableFor:   []string{"expansion", "equipment_purchase"},
		MinYears:      3,
	},
	{
		ID:            "mudra_loan",
		Name:          "MUDRA Loan (Shishu/Kishore/Tarun)",
		ProviderType:  "government",
		MinAmount:     0,
		MaxAmount:     1000000,
		InterestRange: "8-12%",
		Tenure:        "12-60 months",
		Requirements:  []string{"MSME registration", "Business plan"},
		SuitableFor:   []string{"startup", "small_business", "micro_enterprise"},
	},
	{
		ID:            "invoice_financing",
		Name:          "Invoice Financing",
		ProviderType:  "nbfc",
		MinAmount:     100000,
		MaxAmount:     5000000,
		InterestRange: "12-18%",
		Tenure:        "30-90 days",
		Requirements:  []string{"B2B invoices", "Good debtor profile"},
		SuitableFor:   []string{"high_receivables", "cash_flow_issues"},
	},
}

var insuranceCatalog = []InsuranceProduct{
	{
		ID:           "business_insurance",
		Name:         "Business Package Policy",
		Coverage:     []string{"Fire", "Theft", "Natural disasters"},
		PremiumRange: "0.1-0.5% of sum insured",
		SuitableFor:  []string{"all_businesses"},
	},
	{
		ID:           "liability_insurance",
		Name:         "Professional Liability Insurance",
		Coverage:     []string{"Professional errors", "Client claims"},
		PremiumRange: "0.3-1% of revenue",
		SuitableFor:  []string{"services", "consulting"},
	},
	{
		ID:           "keyman_insurance",
		Name:         "Key Person Insurance",
		Coverage:     []string{"Loss of key employee/owner"},
		PremiumRange: "Based on sum assured",
		SuitableFor:  []string{"owner_dependent", "small_team"},
	},
}

var investmentCatalog = []InvestmentProduct{
	{
		ID:          "fd",
		Name:        "Business Fixed Deposit",
		ReturnRange: "5-7%",
		Liquidity:   "Low",
		Risk:        "Very Low",
		SuitableFor: []string{"cash_surplus", "reserve_building"},
	},
	{
		ID:          "liquid_fund",
		Name:        "Liquid Mutual Fund",
		ReturnRange: "4-6%",
		Liquidity:   "High",
		Risk:        "Low",
		SuitableFor: []string{"short_term_parking", "emergency_fund"},
	},
	{
		ID:          "debt_fund",
		Name:        "Short-term Debt Fund",
		ReturnRange: "6-8%",
		Liquidity:   "Medium",
		Risk:        "Low-Medium",
		SuitableFor: []string{"medium_term_surplus"},
	},
}

// Fixed surplus allocation splits per investment product id.
var investmentAllocations = map[string]float64{
	"fd":          0.3,
	"liquid_fund": 0.5,
	"debt_fund":   0.2,
}

const defaultAllocation = 0.2
