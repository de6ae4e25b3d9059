// Package risk computes liquidity/solvency/operational risk sub-scores, an
// overall risk classification, discrete risk factors and a creditworthiness
// grade for one business.
package risk

import (
	"finpulse/pkg/core/errs"
	"finpulse/pkg/models"
)

// Sub-score weights for the overall risk score.
const (
	weightLiquidity   = 0.35
	weightSolvency    = 0.35
	weightOperational = 0.30
)

// Assessment is the full risk picture for one period. All scores are 0-100,
// higher meaning riskier.
type Assessment struct {
	OverallScore          int                 `json:"overall_score"`
	LiquidityScore        int                 `json:"liquidity_score"`
	SolvencyScore         int                 `json:"solvency_score"`
	OperationalScore      int                 `json:"operational_score"`
	CreditworthinessScore int                 `json:"creditworthiness_score"`
	RiskLevel             string              `json:"risk_level"` // low | medium | high
	RiskFactors           []models.RiskFactor `json:"risk_factors"`
}

// Assess runs the full risk assessment. historical is the stored series
// ordered most-recent-first, with the current period at index 0.
func Assess(current *models.FinancialPeriod, historical []*models.FinancialPeriod, industry string) (*Assessment, error) {
	if current == nil {
		return nil, &errs.InsufficientDataError{Required: 1, Got: 0, What: "financial periods"}
	}

	liquidity := assessLiquidity(current)
	solvency := assessSolvency(current)
	operational := assessOperational(current, historical)

	// Weighted average, truncated rather than rounded.
	overall := int(float64(liquidity)*weightLiquidity +
		float64(solvency)*weightSolvency +
		float64(operational)*weightOperational)

	level := "high"
	if overall <= 30 {
		level = "low"
	} else if overall <= 70 {
		level = "medium"
	}

	return &Assessment{
		OverallScore:          overall,
		LiquidityScore:        liquidity,
		SolvencyScore:         solvency,
		OperationalScore:      operational,
		CreditworthinessScore: creditScore(current),
		RiskLevel:             level,
		RiskFactors:           identifyFactors(current, liquidity, solvency, operational),
	}, nil
}

func assessLiquidity(p *models.FinancialPeriod) int {
	score := 50

	if p.CurrentRatio != nil {
		cr, _ := p.CurrentRatio.Float64()
		switch {
		case cr >= 2.0:
			score -= 30
		case cr >= 1.5:
			score -= 20
		case cr >= 1.0:
			score -= 10
		case cr >= 0.5:
			score += 20
		default:
			score += 40
		}
	}

	if p.OperatingCashFlow.IsPositive() {
		score -= 10
	} else {
		score += 20
	}

	return clamp(score)
}

func assessSolvency(p *models.FinancialPeriod) int {
	score := 50

	if p.DebtToEquity != nil {
		dte, _ := p.DebtToEquity.Float64()
		switch {
		case dte <= 0.3:
			score -= 30
		case dte <= 0.5:
			score -= 20
		case dte <= 1.0:
			score -= 10
		case dte <= 2.0:
			score += 15
		default:
			score += 35
		}
	}

	// Simplified interest coverage proxy.
	if p.OperatingIncome.IsPositive() {
		score -= 10
	} else {
		score += 20
	}

	return clamp(score)
}

func assessOperational(p *models.FinancialPeriod, historical []*models.FinancialPeriod) int {
	score := 50

	// Revenue trend over the three most recent periods. The sequence is
	// most-recent-first and is compared in that order on purpose: index 0 is
	// the newest period, so "non-increasing" here means newer >= older.
	if len(historical) >= 3 {
		revs := make([]float64, 3)
		for i := 0; i < 3; i++ {
			revs[i], _ = historical[i].TotalRevenue.Float64()
		}
		nonIncreasing := revs[0] >= revs[1] && revs[1] >= revs[2]
		nonDecreasing := revs[0] <= revs[1] && revs[1] <= revs[2]
		if nonIncreasing {
			score -= 15 // consistent growth
		} else if nonDecreasing {
			score += 20 // declining revenue
		}
	}

	// Margin stability
	if p.NetMargin != nil {
		nm, _ := p.NetMargin.Float64()
		switch {
		case nm >= 10:
			score -= 15
		case nm >= 5:
			score -= 5
		case nm >= 0:
			// neutral
		default:
			score += 25 // operating at a loss
		}
	}

	return clamp(score)
}

func identifyFactors(p *models.FinancialPeriod, liquidity, solvency, operational int) []models.RiskFactor {
	factors := []models.RiskFactor{}

	if liquidity > 60 {
		if p.CurrentRatio != nil {
			if cr, _ := p.CurrentRatio.Float64(); cr < 1.0 {
				severity := "medium"
				if cr < 0.5 {
					severity = "high"
				}
				factors = append(factors, models.RiskFactor{
					Name:           "Low Current Ratio",
					Severity:       severity,
					Description:    "Current assets may not cover short-term obligations",
					ImpactArea:     "liquidity",
					Recommendation: "Improve collection of receivables or negotiate longer payment terms",
				})
			}
		}
		if p.OperatingCashFlow.IsNegative() {
			factors = append(factors, models.RiskFactor{
				Name:           "Negative Operating Cash Flow",
				Severity:       "critical",
				Description:    "Business operations are consuming cash",
				ImpactArea:     "liquidity",
				Recommendation: "Review operating costs and improve revenue collection",
			})
		}
	}

	if solvency > 60 {
		if p.DebtToEquity != nil {
			if dte, _ := p.DebtToEquity.Float64(); dte > 2.0 {
				factors = append(factors, models.RiskFactor{
					Name:           "High Debt Level",
					Severity:       "high",
					Description:    "Debt exceeds 2x equity, indicating high leverage",
					ImpactArea:     "solvency",
					Recommendation: "Consider debt restructuring or equity infusion",
				})
			}
		}
	}

	// Loss-making businesses are flagged regardless of the sub-scores.
	if p.NetMargin != nil {
		if nm, _ := p.NetMargin.Float64(); nm < 0 {
			factors = append(factors, models.RiskFactor{
				Name:           "Operating Loss",
				Severity:       "high",
				Description:    "Business is currently unprofitable",
				ImpactArea:     "profitability",
				Recommendation: "Analyze cost structure and pricing strategy",
			})
		}
	}

	return factors
}

func clamp(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
