package forecast

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"finpulse/pkg/core/errs"
	"finpulse/pkg/models"
)

// Forecast metric selectors.
const (
	TypeRevenue  = "revenue"
	TypeExpenses = "expenses"
	TypeCashFlow = "cash_flow"
)

var horizonPeriods = map[string]int{
	"3_months":  3,
	"6_months":  6,
	"12_months": 12,
}

// ScenarioForecast projects a single metric under expected, best and worst
// growth assumptions.
type ScenarioForecast struct {
	ForecastType    string                 `json:"forecast_type"`
	ForecastHorizon string                 `json:"forecast_horizon"`
	ExpectedCase    []models.ForecastPoint `json:"expected_case"`
	BestCase        []models.ForecastPoint `json:"best_case"`
	WorstCase       []models.ForecastPoint `json:"worst_case"`
	Trend           string                 `json:"trend"` // growing | stable | declining
	GrowthRate      float64                `json:"growth_rate"` // percent
	KeyAssumptions  []string               `json:"key_assumptions"`
	Risks           []string               `json:"risks"`
}

// ProjectScenarios extrapolates values (chronological order) periodsAhead
// steps under three growth scenarios. At least three values are required to
// establish a growth rate. The average period-over-period growth drives the
// expected case; best and worst scale it by 1.5x and 0.5x.
func ProjectScenarios(values []float64, periodsAhead int) (*ScenarioForecast, error) {
	if len(values) < 3 {
		return nil, &errs.InsufficientDataError{Required: 3, Got: len(values), What: "months of history"}
	}

	var growthSum float64
	for i := 1; i < len(values); i++ {
		if values[i-1] != 0 {
			growthSum += (values[i] - values[i-1]) / values[i-1]
		}
	}
	avgGrowth := growthSum / float64(len(values)-1)

	last := values[len(values)-1]

	expected := make([]models.ForecastPoint, 0, periodsAhead)
	best := make([]models.ForecastPoint, 0, periodsAhead)
	worst := make([]models.ForecastPoint, 0, periodsAhead)

	for i := 1; i <= periodsAhead; i++ {
		label := fmt.Sprintf("Month %d", i)
		k := float64(i)

		e := last * math.Pow(1+avgGrowth, k)
		b := last * math.Pow(1+avgGrowth*1.5, k)
		w := last * math.Pow(1+avgGrowth*0.5, k)

		expected = append(expected, models.ForecastPoint{Period: label, Value: e, ConfidenceLow: e * 0.9, ConfidenceHigh: e * 1.1})
		best = append(best, models.ForecastPoint{Period: label, Value: b, ConfidenceLow: b * 0.95, ConfidenceHigh: b * 1.05})
		worst = append(worst, models.ForecastPoint{Period: label, Value: w, ConfidenceLow: w * 0.85, ConfidenceHigh: w * 0.95})
	}

	trendLabel := "stable"
	if avgGrowth > 0.02 {
		trendLabel = "growing"
	} else if avgGrowth < -0.02 {
		trendLabel = "declining"
	}

	return &ScenarioForecast{
		ExpectedCase: expected,
		BestCase:     best,
		WorstCase:    worst,
		Trend:        trendLabel,
		GrowthRate:   avgGrowth * 100,
		KeyAssumptions: []string{
			"Based on historical growth patterns",
			"Assumes stable market conditions",
			"No major external shocks",
		},
		Risks: []string{
			"Market volatility",
			"Seasonal fluctuations",
			"Economic changes",
		},
	}, nil
}

// ProjectMetric runs the scenario forecast for one metric of a period series.
// periods are ordered most-recent-first as returned by the store and are
// reversed to chronological order before extrapolation.
func ProjectMetric(periods []*models.FinancialPeriod, forecastType, horizon string) (*ScenarioForecast, error) {
	ahead, ok := horizonPeriods[horizon]
	if !ok {
		ahead = 6
	}

	values := make([]float64, 0, len(periods))
	for i := len(periods) - 1; i >= 0; i-- {
		var v decimal.Decimal
		switch forecastType {
		case TypeRevenue:
			v = periods[i].TotalRevenue
		case TypeExpenses:
			v = periods[i].TotalExpenses
		default:
			v = periods[i].NetCashFlow
		}
		values = append(values, v.InexactFloat64())
	}

	sf, err := ProjectScenarios(values, ahead)
	if err != nil {
		return nil, err
	}
	sf.ForecastType = forecastType
	sf.ForecastHorizon = horizon
	return sf, nil
}

// ScenarioResult is the outcome of one what-if scenario.
type ScenarioResult struct {
	Revenue      float64 `json:"revenue"`
	Expenses     float64 `json:"expenses"`
	NetProfit    float64 `json:"net_profit"`
	ProfitMargin float64 `json:"profit_margin"`
	IsProfitable bool    `json:"is_profitable"`
}

// ScenarioAnalysis applies fixed optimistic/base/pessimistic adjustments to a
// revenue and expense baseline.
type ScenarioAnalysis struct {
	Scenarios      map[string]ScenarioResult `json:"scenarios"`
	Recommendation string                    `json:"recommendation"`
}

type scenarioAdjustment struct {
	revenue  decimal.Decimal
	expenses decimal.Decimal
}

var scenarioAdjustments = map[string]scenarioAdjustment{
	"optimistic":  {revenue: decimal.NewFromFloat(1.20), expenses: decimal.NewFromFloat(0.95)},
	"base":        {revenue: decimal.NewFromInt(1), expenses: decimal.NewFromInt(1)},
	"pessimistic": {revenue: decimal.NewFromFloat(0.80), expenses: decimal.NewFromFloat(1.10)},
}

// AnalyzeScenarios runs the what-if adjustments. An empty scenario list runs
// all three standard cases.
func AnalyzeScenarios(baseRevenue, baseExpenses decimal.Decimal, scenarios []string) *ScenarioAnalysis {
	if len(scenarios) == 0 {
		scenarios = []string{"optimistic", "base", "pessimistic"}
	}

	results := make(map[string]ScenarioResult, len(scenarios))
	for _, name := range scenarios {
		adj, ok := scenarioAdjustments[name]
		if !ok {
			adj = scenarioAdjustments["base"]
		}

		revenue := baseRevenue.Mul(adj.revenue)
		expenses := baseExpenses.Mul(adj.expenses)
		net := revenue.Sub(expenses)

		margin := decimal.Zero
		if revenue.IsPositive() {
			margin = net.Div(revenue).Mul(decimal.NewFromInt(100))
		}

		results[name] = ScenarioResult{
			Revenue:      revenue.InexactFloat64(),
			Expenses:     expenses.InexactFloat64(),
			NetProfit:    net.InexactFloat64(),
			ProfitMargin: margin.InexactFloat64(),
			IsProfitable: net.IsPositive(),
		}
	}

	return &ScenarioAnalysis{
		Scenarios:      results,
		Recommendation: scenarioRecommendation(results),
	}
}

func scenarioRecommendation(results map[string]ScenarioResult) string {
	if r, ok := results["pessimistic"]; ok && r.IsProfitable {
		return "Strong position - profitable even in worst case"
	}
	if r, ok := results["base"]; ok && r.IsProfitable {
		return "Good position - profitable in base case. Build reserves for downturns."
	}
	return "Action needed - not profitable in base case. Focus on cost reduction or revenue growth."
}
