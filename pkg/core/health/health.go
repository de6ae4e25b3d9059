// Package health maps a period's ratios into a single 0-100 health score.
package health

import (
	"finpulse/pkg/models"
)

// Status thresholds.
const (
	StatusHealthy  = "healthy"
	StatusCaution  = "caution"
	StatusCritical = "critical"
)

// Score computes the overall financial health score (0-100) for a period.
// Rules are evaluated independently and summed from a base of 50; a missing
// ratio simply skips its rule.
func Score(p *models.FinancialPeriod) models.ScoreResult {
	score := 50

	// Liquidity (up to 20 points)
	if p.CurrentRatio != nil {
		cr, _ := p.CurrentRatio.Float64()
		switch {
		case cr >= 2.0:
			score += 20
		case cr >= 1.5:
			score += 15
		case cr >= 1.0:
			score += 10
		case cr >= 0.5:
			score += 5
		}
	}

	// Profitability (up to 25 points, -10 penalty for losses)
	if p.NetMargin != nil {
		nm, _ := p.NetMargin.Float64()
		switch {
		case nm >= 15:
			score += 25
		case nm >= 10:
			score += 20
		case nm >= 5:
			score += 15
		case nm >= 0:
			score += 10
		default:
			score -= 10
		}
	}

	// Cash flow (up to 20 points)
	if p.OperatingCashFlow.IsPositive() {
		score += 15
		if p.NetCashFlow.IsPositive() {
			score += 5
		}
	}

	// Debt (up to 15 points, -5 penalty for high leverage)
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
			score -= 5
		}
	}

	score = clamp(score)

	status := StatusCritical
	if score >= 70 {
		status = StatusHealthy
	} else if score >= 40 {
		status = StatusCaution
	}

	return models.ScoreResult{Score: score, Label: status}
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
