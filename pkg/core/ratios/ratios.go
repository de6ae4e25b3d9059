// Package ratios derives standard accounting ratios from a period's raw
// financial figures.
package ratios

import (
	"finpulse/pkg/models"

	"github.com/shopspring/decimal"
)

// Set holds the computed ratios. A nil field means the ratio was omitted
// because its denominator was zero or negative. This omission policy is
// specific to this package; the working capital analyzer substitutes zero
// instead, and the two must not be unified.
type Set struct {
	CurrentRatio    *decimal.Decimal `json:"current_ratio,omitempty"`
	QuickRatio      *decimal.Decimal `json:"quick_ratio,omitempty"`
	GrossMargin     *decimal.Decimal `json:"gross_margin,omitempty"`
	OperatingMargin *decimal.Decimal `json:"operating_margin,omitempty"`
	NetMargin       *decimal.Decimal `json:"net_margin,omitempty"`
	DebtToEquity    *decimal.Decimal `json:"debt_to_equity,omitempty"`
	ROE             *decimal.Decimal `json:"roe,omitempty"`
	ROA             *decimal.Decimal `json:"roa,omitempty"`
}

var hundred = decimal.NewFromInt(100)

// Compute calculates every ratio whose denominator is positive.
func Compute(p *models.FinancialPeriod) Set {
	var s Set

	// Liquidity
	if p.CurrentLiabilities.IsPositive() {
		s.CurrentRatio = ptr(p.CurrentAssets.Div(p.CurrentLiabilities))
		quickAssets := p.CurrentAssets.Sub(p.InventoryValue)
		s.QuickRatio = ptr(quickAssets.Div(p.CurrentLiabilities))
	}

	// Profitability, as percentages
	if p.TotalRevenue.IsPositive() {
		s.GrossMargin = ptr(p.GrossProfit.Div(p.TotalRevenue).Mul(hundred))
		s.OperatingMargin = ptr(p.OperatingIncome.Div(p.TotalRevenue).Mul(hundred))
		s.NetMargin = ptr(p.NetProfit.Div(p.TotalRevenue).Mul(hundred))
	}

	// Leverage and returns
	if p.TotalEquity.IsPositive() {
		s.DebtToEquity = ptr(p.TotalLiabilities.Div(p.TotalEquity))
		s.ROE = ptr(p.NetProfit.Div(p.TotalEquity).Mul(hundred))
	}
	if p.TotalAssets.IsPositive() {
		s.ROA = ptr(p.NetProfit.Div(p.TotalAssets).Mul(hundred))
	}

	return s
}

// Apply copies the computed ratios onto the period's nullable ratio fields.
func Apply(p *models.FinancialPeriod, s Set) {
	p.CurrentRatio = s.CurrentRatio
	p.QuickRatio = s.QuickRatio
	p.GrossMargin = s.GrossMargin
	p.OperatingMargin = s.OperatingMargin
	p.NetMargin = s.NetMargin
	p.DebtToEquity = s.DebtToEquity
	p.ROE = s.ROE
	p.ROA = s.ROA
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }
