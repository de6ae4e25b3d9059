// Package forecast produces cash-flow, revenue and expense projections from
// historical periods, plus break-even and scenario analysis.
package forecast

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finpulse/pkg/core/errs"
)

const (
	// Weighted moving average window.
	maxWindow = 6
	// Minimum history for a cash-flow forecast.
	minHistory = 3

	baseConfidence  = 85
	decayPerMonth   = 5
	floorConfidence = 50
)

var (
	growthCap   = decimal.NewFromFloat(0.1)
	growthFloor = decimal.NewFromFloat(-0.1)
	dampening   = decimal.NewFromFloat(0.5)
)

// MonthlyCashFlow is one month of observed revenue and expenses.
type MonthlyCashFlow struct {
	Period   string          `json:"period"` // "YYYY-MM"
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
}

// ProjectedMonth is one forecast month.
type ProjectedMonth struct {
	Period                string  `json:"period"`
	ProjectedRevenue      float64 `json:"projected_revenue"`
	ProjectedExpenses     float64 `json:"projected_expenses"`
	ProjectedNetCashFlow  float64 `json:"projected_net_cash_flow"`
	CumulativeNetCashFlow float64 `json:"cumulative_net_cash_flow"`
	Confidence            int     `json:"confidence"`
}

// ForecastRisk flags a problem in the projected months.
type ForecastRisk struct {
	Type        string `json:"type"`
	Month       int    `json:"month,omitempty"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// CashFlowSummary aggregates the projection.
type CashFlowSummary struct {
	AverageMonthlyRevenue  float64 `json:"average_monthly_revenue"`
	AverageMonthlyExpenses float64 `json:"average_monthly_expenses"`
	AverageMonthlyNet      float64 `json:"average_monthly_net"`
	RevenueTrend           string  `json:"revenue_trend"`
	ExpenseTrend           string  `json:"expense_trend"`
	OverallConfidence      int     `json:"overall_confidence"`
}

// CashFlowForecast is the full result of ForecastCashFlow.
type CashFlowForecast struct {
	Forecast    []ProjectedMonth `json:"forecast"`
	Summary     CashFlowSummary  `json:"summary"`
	Risks       []ForecastRisk   `json:"risks"`
	Assumptions []string         `json:"assumptions"`
}

// ForecastCashFlow projects revenue and expenses monthsAhead months forward
// using a weighted moving average with dampened growth extrapolation.
// At least three months of history are required.
func ForecastCashFlow(historical []MonthlyCashFlow, monthsAhead int) (*CashFlowForecast, error) {
	if len(historical) < minHistory {
		return nil, &errs.InsufficientDataError{Required: minHistory, Got: len(historical), What: "months of history"}
	}

	revenues := make([]decimal.Decimal, len(historical))
	expenses := make([]decimal.Decimal, len(historical))
	for i, h := range historical {
		revenues[i] = h.Revenue
		expenses[i] = h.Expenses
	}

	revenueForecast := WeightedForecast(revenues, monthsAhead)
	expenseForecast := WeightedForecast(expenses, monthsAhead)

	lastPeriod := historical[len(historical)-1].Period
	periods := generatePeriods(lastPeriod, monthsAhead)

	forecast := make([]ProjectedMonth, 0, monthsAhead)
	cumulative := decimal.Zero
	var revSum, expSum, netSum decimal.Decimal

	for i := 0; i < monthsAhead; i++ {
		net := revenueForecast[i].Sub(expenseForecast[i])
		cumulative = cumulative.Add(net)
		revSum = revSum.Add(revenueForecast[i])
		expSum = expSum.Add(expenseForecast[i])
		netSum = netSum.Add(net)

		forecast = append(forecast, ProjectedMonth{
			Period:                periods[i],
			ProjectedRevenue:      revenueForecast[i].InexactFloat64(),
			ProjectedExpenses:     expenseForecast[i].InexactFloat64(),
			ProjectedNetCashFlow:  net.InexactFloat64(),
			CumulativeNetCashFlow: cumulative.InexactFloat64(),
			Confidence:            Confidence(i),
		})
	}

	n := decimal.NewFromInt(int64(monthsAhead))
	return &CashFlowForecast{
		Forecast: forecast,
		Summary: CashFlowSummary{
			AverageMonthlyRevenue:  revSum.Div(n).InexactFloat64(),
			AverageMonthlyExpenses: expSum.Div(n).InexactFloat64(),
			AverageMonthlyNet:      netSum.Div(n).InexactFloat64(),
			RevenueTrend:           trend(revenues),
			ExpenseTrend:           trend(expenses),
			OverallConfidence:      75,
		},
		Risks: identifyRisks(revenueForecast, expenseForecast),
		Assumptions: []string{
			"Based on historical trends continuing",
			"No major market changes assumed",
			"Seasonality patterns maintained",
		},
	}, nil
}

// WeightedForecast extrapolates a series periods steps forward from a
// linearly weighted average of the last six points. The per-period growth
// rate is capped at +/-10% and dampened by half when compounding.
func WeightedForecast(data []decimal.Decimal, periods int) []decimal.Decimal {
	recent := data
	if len(data) > maxWindow {
		recent = data[len(data)-maxWindow:]
	}

	totalWeight := 0
	weighted := decimal.Zero
	for i, v := range recent {
		w := i + 1 // oldest gets weight 1
		totalWeight += w
		weighted = weighted.Add(v.Mul(decimal.NewFromInt(int64(w))))
	}
	weightedAvg := weighted.Div(decimal.NewFromInt(int64(totalWeight)))

	growth := decimal.Zero
	if len(recent) >= 2 {
		first := recent[0]
		last := recent[len(recent)-1]
		if !first.IsZero() {
			growth = last.Sub(first).
				Div(decimal.NewFromInt(int64(len(recent) - 1))).
				Div(first)
		}
	}
	if growth.GreaterThan(growthCap) {
		growth = growthCap
	}
	if growth.LessThan(growthFloor) {
		growth = growthFloor
	}

	step := decimal.NewFromInt(1).Add(growth.Mul(dampening))
	out := make([]decimal.Decimal, 0, periods)
	current := weightedAvg
	for i := 0; i < periods; i++ {
		current = current.Mul(step)
		out = append(out, current.Round(2))
	}
	return out
}

// Confidence decays linearly the further out the forecast month is.
func Confidence(monthIndex int) int {
	c := baseConfidence - monthIndex*decayPerMonth
	if c < floorConfidence {
		return floorConfidence
	}
	return c
}

// generatePeriods produces "YYYY-MM" labels after lastPeriod. A label that
// does not parse falls back to the current month as the anchor.
func generatePeriods(lastPeriod string, months int) []string {
	year, month := time.Now().Year(), int(time.Now().Month())
	parts := strings.SplitN(lastPeriod, "-", 2)
	if len(parts) == 2 {
		if y, err := strconv.Atoi(parts[0]); err == nil {
			if m, err := strconv.Atoi(parts[1]); err == nil {
				year, month = y, m
			}
		}
	}

	out := make([]string, 0, months)
	for i := 0; i < months; i++ {
		month++
		if month > 12 {
			month = 1
			year++
		}
		out = append(out, fmt.Sprintf("%d-%02d", year, month))
	}
	return out
}

// trend compares the average of the first half of the series against the
// second half.
func trend(data []decimal.Decimal) string {
	if len(data) < 2 {
		return "stable"
	}

	half := len(data) / 2
	firstHalf := average(data[:half])
	secondHalf := average(data[half:])

	if firstHalf.IsZero() {
		return "stable"
	}
	change := secondHalf.Sub(firstHalf).Div(firstHalf)

	switch {
	case change.GreaterThan(decimal.NewFromFloat(0.05)):
		return "increasing"
	case change.LessThan(decimal.NewFromFloat(-0.05)):
		return "decreasing"
	default:
		return "stable"
	}
}

func average(data []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range data {
		sum = sum.Add(d)
	}
	return sum.Div(decimal.NewFromInt(int64(len(data))))
}

func identifyRisks(revenue, expenses []decimal.Decimal) []ForecastRisk {
	risks := []ForecastRisk{}

	ratio := decimal.NewFromFloat(1.2)
	for i := range revenue {
		if expenses[i].GreaterThan(revenue[i]) {
			severity := "medium"
			if expenses[i].GreaterThan(revenue[i].Mul(ratio)) {
				severity = "high"
			}
			risks = append(risks, ForecastRisk{
				Type:        "negative_cash_flow",
				Month:       i + 1,
				Severity:    severity,
				Description: fmt.Sprintf("Projected expenses exceed revenue in month %d", i+1),
			})
		}
	}

	if len(revenue) >= 3 {
		declining := true
		steps := 3
		if len(revenue)-1 < steps {
			steps = len(revenue) - 1
		}
		for i := 0; i < steps; i++ {
			if !revenue[i].GreaterThan(revenue[i+1]) {
				declining = false
				break
			}
		}
		if declining {
			risks = append(risks, ForecastRisk{
				Type:        "declining_revenue",
				Severity:    "high",
				Description: "Revenue shows consistent decline over forecast period",
			})
		}
	}

	return risks
}
