package products

import (
	"fmt"
	"sort"
	"strings"

	"finpulse/pkg/models"
)

// Metrics are the financial signals the needs inference reads. CurrentRatio
// is nil when it could not be computed, which skips the liquidity check.
type Metrics struct {
	CurrentRatio      *float64 `json:"current_ratio,omitempty"`
	CashFlow          float64  `json:"cash_flow"`
	ReceivableDays    float64  `json:"receivable_days"`
	GrowthRate        float64  `json:"growth_rate"` // percent
	DebtRatio         float64  `json:"debt_ratio"`
	CashSurplus       float64  `json:"cash_surplus"`
	AnnualRevenue     float64  `json:"annual_revenue"`
	InsuranceCoverage bool     `json:"insurance_coverage"`
}

// LoanRecommendation is a scored loan match.
type LoanRecommendation struct {
	Product                 LoanProduct `json:"product"`
	MatchScore              int         `json:"match_score"`
	Reasons                 []string    `json:"reasons"`
	EstimatedEligibleAmount float64     `json:"estimated_eligible_amount"`
}

// InsuranceRecommendation is a prioritized insurance match.
type InsuranceRecommendation struct {
	Product  InsuranceProduct `json:"product"`
	Priority string           `json:"priority"` // essential | recommended
	Reason   string           `json:"reason"`
}

// Allocation is the suggested split of a cash surplus into one product.
type Allocation struct {
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
}

// InvestmentRecommendation pairs a product with its allocation, or carries a
// reserve-building message when there is no surplus.
type InvestmentRecommendation struct {
	Product             *InvestmentProduct `json:"product,omitempty"`
	SuggestedAllocation *Allocation        `json:"suggested_allocation,omitempty"`
	Message             string             `json:"message,omitempty"`
	Target              string             `json:"target,omitempty"`
}

// PriorityAction is a ranked financial action derived from the needs.
type PriorityAction struct {
	Action   string   `json:"action"`
	Priority int      `json:"priority"`
	Steps    []string `json:"steps"`
}

// Recommendations is the full product recommendation set.
type Recommendations struct {
	Loans           []LoanRecommendation       `json:"loans"`
	Insurance       []InsuranceRecommendation  `json:"insurance"`
	Investments     []InvestmentRecommendation `json:"investments"`
	PriorityActions []PriorityAction           `json:"priority_actions"`
}

// Recommend scores the catalogs against the profile and metrics. An empty
// needs list is inferred from the metrics.
func Recommend(profile models.BusinessProfile, metrics Metrics, needs []string) *Recommendations {
	if len(needs) == 0 {
		needs = InferNeeds(metrics)
	}

	return &Recommendations{
		Loans:           recommendLoans(profile, metrics, needs),
		Insurance:       recommendInsurance(profile),
		Investments:     recommendInvestments(metrics),
		PriorityActions: priorityActions(metrics, needs),
	}
}

// InferNeeds derives need tags from the financial signals.
func InferNeeds(m Metrics) []string {
	needs := []string{}

	if m.CurrentRatio != nil && *m.CurrentRatio < 1.2 {
		needs = append(needs, "liquidity")
	}
	if m.CashFlow < 0 {
		needs = append(needs, "cash_flow_issues")
	}
	if m.ReceivableDays > 45 {
		needs = append(needs, "high_receivables")
	}
	if m.GrowthRate > 20 {
		needs = append(needs, "expansion")
	}
	if m.DebtRatio < 0.3 {
		needs = append(needs, "can_leverage")
	}
	if m.CashSurplus > 0 {
		needs = append(needs, "cash_surplus")
	}

	return needs
}

func recommendLoans(profile models.BusinessProfile, metrics Metrics, needs []string) []LoanRecommendation {
	recommendations := []LoanRecommendation{}
	revenue := metrics.AnnualRevenue

	for _, loan := range loanCatalog {
		score := 0
		reasons := []string{}

		for _, need := range needs {
			if contains(loan.SuitableFor, need) {
				score += 30
				reasons = append(reasons, "Addresses "+strings.ReplaceAll(need, "_", " "))
			}
		}

		target := revenue * 0.3
		if loan.MinAmount <= target && target <= loan.MaxAmount {
			score += 20
			reasons = append(reasons, "Amount range suitable for your business size")
		}

		if loan.MinYears > 0 && profile.YearsInBusiness < loan.MinYears {
			score -= 30
			reasons = append(reasons, "May not meet business age requirement")
		}

		if score > 0 {
			if score > 100 {
				score = 100
			}
			eligible := revenue * 0.3
			if eligible > loan.MaxAmount {
				eligible = loan.MaxAmount
			}
			recommendations = append(recommendations, LoanRecommendation{
				Product:                 loan,
				MatchScore:              score,
				Reasons:                 reasons,
				EstimatedEligibleAmount: eligible,
			})
		}
	}

	// Stable sort keeps catalog order for equal scores.
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].MatchScore > recommendations[j].MatchScore
	})
	if len(recommendations) > 3 {
		recommendations = recommendations[:3]
	}
	return recommendations
}

func recommendInsurance(profile models.BusinessProfile) []InsuranceRecommendation {
	recommendations := []InsuranceRecommendation{}

	for _, ins := range insuranceCatalog {
		if contains(ins.SuitableFor, "all_businesses") {
			recommendations = append(recommendations, InsuranceRecommendation{
				Product:  ins,
				Priority: "essential",
				Reason:   "Basic protection for all businesses",
			})
		} else if contains(ins.SuitableFor, profile.Industry) {
			recommendations = append(recommendations, InsuranceRecommendation{
				Product:  ins,
				Priority: "recommended",
				Reason:   fmt.Sprintf("Relevant for %s industry", profile.Industry),
			})
		}
	}

	return recommendations
}

func recommendInvestments(metrics Metrics) []InvestmentRecommendation {
	if metrics.CashSurplus <= 0 {
		return []InvestmentRecommendation{{
			Message: "Focus on building cash reserves before investing",
			Target:  "3-6 months of operating expenses",
		}}
	}

	recommendations := make([]InvestmentRecommendation, 0, len(investmentCatalog))
	for i := range investmentCatalog {
		product := investmentCatalog[i]
		ratio, ok := investmentAllocations[product.ID]
		if !ok {
			ratio = defaultAllocation
		}
		recommendations = append(recommendations, InvestmentRecommendation{
			Product: &product,
			SuggestedAllocation: &Allocation{
				Percentage: ratio * 100,
				Amount:     metrics.CashSurplus * ratio,
			},
		})
	}
	return recommendations
}

func priorityActions(metrics Metrics, needs []string) []PriorityAction {
	actions := []PriorityAction{}

	if contains(needs, "liquidity") {
		actions = append(actions, PriorityAction{
			Action:   "Improve Liquidity",
			Priority: 1,
			Steps: []string{
				"Accelerate receivables collection",
				"Negotiate extended payment terms",
				"Consider short-term financing",
			},
		})
	}

	if contains(needs, "cash_flow_issues") {
		actions = append(actions, PriorityAction{
			Action:   "Stabilize Cash Flow",
			Priority: 1,
			Steps: []string{
				"Review and cut non-essential expenses",
				"Explore invoice financing options",
				"Build emergency reserve",
			},
		})
	}

	if !metrics.InsuranceCoverage {
		actions = append(actions, PriorityAction{
			Action:   "Get Basic Insurance",
			Priority: 2,
			Steps: []string{
				"Obtain business package policy",
				"Consider key person insurance if applicable",
			},
		})
	}

	return actions
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
