package forecast

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"finpulse/pkg/core/errs"
)

// BreakEven is the break-even point relative to current revenue.
type BreakEven struct {
	BreakEvenRevenue      float64  `json:"break_even_revenue"`
	CurrentRevenue        float64  `json:"current_revenue"`
	Gap                   float64  `json:"gap"`
	ContributionMargin    float64  `json:"contribution_margin"` // percent
	IsProfitable          bool     `json:"is_profitable"`
	RevenueIncreaseNeeded *float64 `json:"revenue_increase_needed"` // percent, nil when revenue is zero
	Recommendations       []string `json:"recommendations"`
}

// ProjectBreakEven computes the revenue needed to cover fixed costs at the
// given variable cost ratio. A ratio of 1 or more makes the contribution
// margin non-positive and the break-even point undefined.
func ProjectBreakEven(fixedCosts, variableCostRatio, currentRevenue decimal.Decimal) (*BreakEven, error) {
	if variableCostRatio.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, &errs.ConfigurationError{Reason: "variable cost ratio cannot be 100% or more"}
	}

	vcr := variableCostRatio.InexactFloat64()
	contributionMargin := 1 - vcr
	breakEvenRevenue := fixedCosts.InexactFloat64() / contributionMargin

	current := currentRevenue.InexactFloat64()
	gap := breakEvenRevenue - current

	var increaseNeeded *float64
	if currentRevenue.IsPositive() {
		inc := round1(gap / current * 100)
		increaseNeeded = &inc
	}

	return &BreakEven{
		BreakEvenRevenue:      round2(breakEvenRevenue),
		CurrentRevenue:        current,
		Gap:                   round2(gap),
		ContributionMargin:    round1(contributionMargin * 100),
		IsProfitable:          gap <= 0,
		RevenueIncreaseNeeded: increaseNeeded,
		Recommendations:       breakEvenRecommendations(gap, vcr),
	}, nil
}

func breakEvenRecommendations(gap, variableRatio float64) []string {
	if gap > 0 {
		return []string{
			fmt.Sprintf("Increase revenue by %.0f to reach break-even", gap),
			fmt.Sprintf("Or reduce fixed costs by %.0f", gap*(1-variableRatio)),
			"Consider pricing optimization to improve margins",
		}
	}
	return []string{
		"Currently operating above break-even",
		"Focus on scaling profitable products/services",
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
