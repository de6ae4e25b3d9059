package risk

import (
	"fmt"

	"finpulse/pkg/models"
)

// CreditComponent is one weighted input of the creditworthiness breakdown.
type CreditComponent struct {
	Component   string  `json:"component"`
	Score       int     `json:"score"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description"`
}

// Creditworthiness is the detailed credit profile returned to lenders-facing
// endpoints.
type Creditworthiness struct {
	OverallScore           int               `json:"overall_score"`
	Grade                  string            `json:"grade"`
	Components             []CreditComponent `json:"components"`
	PositiveFactors        []string          `json:"positive_factors"`
	NegativeFactors        []string          `json:"negative_factors"`
	ImprovementSuggestions []string          `json:"improvement_suggestions"`
	EstimatedLoanAmount    *float64          `json:"estimated_loan_amount"`
	EstimatedInterestRate  string            `json:"estimated_interest_rate"`
}

// creditScore computes the 0-100 creditworthiness score from revenue
// presence, profitability and leverage.
func creditScore(p *models.FinancialPeriod) int {
	score := 50

	if p.TotalRevenue.IsPositive() {
		score += 15
	}

	if p.NetMargin != nil {
		nm, _ := p.NetMargin.Float64()
		switch {
		case nm >= 15:
			score += 20
		case nm >= 10:
			score += 15
		case nm >= 5:
			score += 10
		case nm >= 0:
			score += 5
		}
	}

	if p.DebtToEquity != nil {
		dte, _ := p.DebtToEquity.Float64()
		switch {
		case dte <= 0.5:
			score += 15
		case dte <= 1.0:
			score += 10
		case dte <= 2.0:
			score += 5
		default:
			score -= 10
		}
	}

	return clamp(score)
}

// AssessCreditworthiness builds the detailed breakdown around the credit
// score, including an indicative loan amount and rate band.
func AssessCreditworthiness(p *models.FinancialPeriod) Creditworthiness {
	score := creditScore(p)

	grade := "F"
	switch {
	case score >= 80:
		grade = "A"
	case score >= 70:
		grade = "B"
	case score >= 60:
		grade = "C"
	case score >= 50:
		grade = "D"
	}

	revenueScore := 30
	if p.TotalRevenue.IsPositive() {
		revenueScore = 70
	}
	nm := 0.0
	if p.NetMargin != nil {
		nm, _ = p.NetMargin.Float64()
	}
	dte := 0.0
	if p.DebtToEquity != nil {
		dte, _ = p.DebtToEquity.Float64()
	}

	components := []CreditComponent{
		{Component: "Revenue Stability", Score: min100(revenueScore), Weight: 0.3, Description: "Consistent revenue generation"},
		{Component: "Profitability", Score: min100(50 + int(nm*3)), Weight: 0.35, Description: "Net profit margin"},
		{Component: "Debt Management", Score: min100(80 - int(dte*20)), Weight: 0.35, Description: "Debt to equity ratio"},
	}

	var positive, negative []string
	if p.OperatingCashFlow.IsPositive() {
		positive = append(positive, "Positive operating cash flow")
	}
	if p.CurrentRatio != nil {
		if cr, _ := p.CurrentRatio.Float64(); cr >= 1.5 {
			positive = append(positive, "Healthy liquidity position")
		}
	}
	if p.DebtToEquity != nil && dte > 1.5 {
		negative = append(negative, "High debt levels")
	}
	if p.NetMargin != nil && nm < 5 {
		negative = append(negative, "Low profit margins")
	}

	var loanAmount *float64
	if p.TotalRevenue.IsPositive() {
		amt, _ := p.TotalRevenue.Float64()
		amt *= 0.5
		loanAmount = &amt
	}

	return Creditworthiness{
		OverallScore:    score,
		Grade:           grade,
		Components:      components,
		PositiveFactors: positive,
		NegativeFactors: negative,
		ImprovementSuggestions: []string{
			"Maintain consistent revenue growth",
			"Reduce debt gradually",
			"Improve profit margins through cost optimization",
		},
		EstimatedLoanAmount:   loanAmount,
		EstimatedInterestRate: fmt.Sprintf("%d%% - %d%%", 12-score/20, 14-score/20),
	}
}

func min100(v int) int {
	if v > 100 {
		return 100
	}
	return v
}
