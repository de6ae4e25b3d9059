package forecast_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"finpulse/pkg/core/errs"
	"finpulse/pkg/core/forecast"
)

func money(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func flatHistory(months int, revenue, expenses int64) []forecast.MonthlyCashFlow {
	out := make([]forecast.MonthlyCashFlow, 0, months)
	year, month := 2026, 1
	for i := 0; i < months; i++ {
		out = append(out, forecast.MonthlyCashFlow{
			Period:   fmt.Sprintf("%d-%02d", year, month),
			Revenue:  money(revenue),
			Expenses: money(expenses),
		})
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	return out
}

func TestForecastCashFlow_RequiresThreeMonths(t *testing.T) {
	_, err := forecast.ForecastCashFlow(flatHistory(2, 1000, 800), 3)
	if err == nil {
		t.Fatal("expected error with two months of history")
	}
	var insufficient *errs.InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientDataError, got %T", err)
	}
	if insufficient.Required != 3 || insufficient.Got != 2 {
		t.Errorf("expected required=3 got=2, got required=%d got=%d", insufficient.Required, insufficient.Got)
	}
}

func TestForecastCashFlow_FlatHistoryProjectsFlat(t *testing.T) {
	result, err := forecast.ForecastCashFlow(flatHistory(6, 1000, 800), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Forecast) != 3 {
		t.Fatalf("expected 3 projected months, got %d", len(result.Forecast))
	}

	cumulative := 0.0
	for i, m := range result.Forecast {
		if !almostEqual(m.ProjectedRevenue, 1000) {
			t.Errorf("month %d revenue: expected 1000, got %v", i+1, m.ProjectedRevenue)
		}
		if !almostEqual(m.ProjectedExpenses, 800) {
			t.Errorf("month %d expenses: expected 800, got %v", i+1, m.ProjectedExpenses)
		}
		if !almostEqual(m.ProjectedNetCashFlow, 200) {
			t.Errorf("month %d net: expected 200, got %v", i+1, m.ProjectedNetCashFlow)
		}
		cumulative += 200
		if !almostEqual(m.CumulativeNetCashFlow, cumulative) {
			t.Errorf("month %d cumulative: expected %v, got %v", i+1, cumulative, m.CumulativeNetCashFlow)
		}
	}

	if result.Summary.RevenueTrend != "stable" {
		t.Errorf("expected stable trend, got %s", result.Summary.RevenueTrend)
	}
	if len(result.Risks) != 0 {
		t.Errorf("expected no risks, got %v", result.Risks)
	}
}

func TestForecastCashFlow_PeriodLabelsFollowHistory(t *testing.T) {
	history := []forecast.MonthlyCashFlow{
		{Period: "2026-09", Revenue: money(1000), Expenses: money(800)},
		{Period: "2026-10", Revenue: money(1000), Expenses: money(800)},
		{Period: "2026-11", Revenue: money(1000), Expenses: money(800)},
	}

	result, err := forecast.ForecastCashFlow(history, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"2026-12", "2027-01", "2027-02"}
	for i, w := range want {
		if result.Forecast[i].Period != w {
			t.Errorf("period %d: expected %s, got %s", i, w, result.Forecast[i].Period)
		}
	}
}

func TestForecastCashFlow_NegativeCashFlowRisk(t *testing.T) {
	result, err := forecast.ForecastCashFlow(flatHistory(4, 500, 800), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Risks) != 2 {
		t.Fatalf("expected a risk per projected month, got %d", len(result.Risks))
	}
	for _, r := range result.Risks {
		if r.Type != "negative_cash_flow" {
			t.Errorf("expected negative_cash_flow risk, got %s", r.Type)
		}
		// 800 > 500*1.2
		if r.Severity != "high" {
			t.Errorf("expected high severity, got %s", r.Severity)
		}
	}
}

func TestWeightedForecast_GrowthCapped(t *testing.T) {
	// Raw growth would be 100% per period; it must be capped at 10% and
	// dampened to a 5% step.
	data := []decimal.Decimal{money(100), money(200)}
	out := forecast.WeightedForecast(data, 3)

	// weighted average = (100*1 + 200*2) / 3
	base := 500.0 / 3
	for i, v := range out {
		want := base * math.Pow(1.05, float64(i+1))
		if !almostEqual(v.InexactFloat64(), math.Round(want*100)/100) {
			t.Errorf("period %d: expected %.2f, got %s", i+1, want, v)
		}
	}
}

func TestWeightedForecast_DeclineFloored(t *testing.T) {
	// Raw decline of 50% per period is floored at -10%, giving a 0.95 step.
	data := []decimal.Decimal{money(200), money(100)}
	out := forecast.WeightedForecast(data, 1)

	base := (200.0 + 100*2) / 3
	want := math.Round(base*0.95*100) / 100
	if !almostEqual(out[0].InexactFloat64(), want) {
		t.Errorf("expected %.2f, got %s", want, out[0])
	}
}

func TestConfidence_DecaysToFloor(t *testing.T) {
	cases := []struct{ month, want int }{
		{0, 85},
		{1, 80},
		{6, 55},
		{7, 50},
		{12, 50},
	}
	for _, tc := range cases {
		if got := forecast.Confidence(tc.month); got != tc.want {
			t.Errorf("month %d: expected %d, got %d", tc.month, tc.want, got)
		}
	}
}
