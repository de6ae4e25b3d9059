package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialPeriod is an immutable snapshot of one reporting period for one
// business. Monetary fields default to zero and are never null; ratio fields
// are nil when the denominator was zero or the data was missing.
type FinancialPeriod struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	PeriodLabel string    `json:"period_label"` // e.g. "2026-01", "Q1 2026"
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	// Revenue & income
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	GrossProfit     decimal.Decimal `json:"gross_profit"`
	OperatingIncome decimal.Decimal `json:"operating_income"`
	NetProfit       decimal.Decimal `json:"net_profit"`

	// Expenses
	TotalExpenses     decimal.Decimal `json:"total_expenses"`
	CostOfGoodsSold   decimal.Decimal `json:"cost_of_goods_sold"`
	OperatingExpenses decimal.Decimal `json:"operating_expenses"`

	// Cash flow
	OperatingCashFlow decimal.Decimal `json:"operating_cash_flow"`
	InvestingCashFlow decimal.Decimal `json:"investing_cash_flow"`
	FinancingCashFlow decimal.Decimal `json:"financing_cash_flow"`
	NetCashFlow       decimal.Decimal `json:"net_cash_flow"`

	// Balance sheet
	AccountsReceivable decimal.Decimal `json:"accounts_receivable"`
	AccountsPayable    decimal.Decimal `json:"accounts_payable"`
	InventoryValue     decimal.Decimal `json:"inventory_value"`
	CurrentAssets      decimal.Decimal `json:"current_assets"`
	CurrentLiabilities decimal.Decimal `json:"current_liabilities"`
	TotalAssets        decimal.Decimal `json:"total_assets"`
	TotalLiabilities   decimal.Decimal `json:"total_liabilities"`
	TotalEquity        decimal.Decimal `json:"total_equity"`

	// Debt
	ShortTermDebt decimal.Decimal `json:"short_term_debt"`
	LongTermDebt  decimal.Decimal `json:"long_term_debt"`

	// Pre-computed ratios, nullable
	CurrentRatio    *decimal.Decimal `json:"current_ratio,omitempty"`
	QuickRatio      *decimal.Decimal `json:"quick_ratio,omitempty"`
	GrossMargin     *decimal.Decimal `json:"gross_margin,omitempty"`
	OperatingMargin *decimal.Decimal `json:"operating_margin,omitempty"`
	NetMargin       *decimal.Decimal `json:"net_margin,omitempty"`
	DebtToEquity    *decimal.Decimal `json:"debt_to_equity,omitempty"`
	ROE             *decimal.Decimal `json:"roe,omitempty"`
	ROA             *decimal.Decimal `json:"roa,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// BusinessProfile describes the business under analysis. Supplied per
// request; the engines do not own it.
type BusinessProfile struct {
	CompanyName     string `json:"company_name"`
	Industry        string `json:"industry"`
	YearsInBusiness int    `json:"years_in_business"`
}

// ScoreResult is a generic clamped score with a classification label.
type ScoreResult struct {
	Score int    `json:"score"` // always in [0,100]
	Label string `json:"label"`
}

// RiskFactor is a discrete risk identified by the risk assessor.
type RiskFactor struct {
	Name           string `json:"name"`
	Severity       string `json:"severity"` // low | medium | high | critical
	Description    string `json:"description"`
	ImpactArea     string `json:"impact_area"`
	Recommendation string `json:"recommendation,omitempty"`
}

// ForecastPoint is one projected period with its confidence band. For the
// expected scenario ConfidenceLow <= Value <= ConfidenceHigh.
type ForecastPoint struct {
	Period         string  `json:"period"`
	Value          float64 `json:"value"`
	ConfidenceLow  float64 `json:"confidence_low"`
	ConfidenceHigh float64 `json:"confidence_high"`
}

// IndustryBenchmark is one row of the per-industry statistics table, used for
// read-only comparison only.
type IndustryBenchmark struct {
	Industry   string          `json:"industry"`
	MetricName string          `json:"metric_name"`
	Avg        decimal.Decimal `json:"avg"`
	Median     decimal.Decimal `json:"median"`
	P25        decimal.Decimal `json:"p25"`
	P75        decimal.Decimal `json:"p75"`
	Min        decimal.Decimal `json:"min"`
	Max        decimal.Decimal `json:"max"`
	SampleSize int             `json:"sample_size"`
}
