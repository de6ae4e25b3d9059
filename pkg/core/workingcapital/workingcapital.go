// Package workingcapital computes cash-conversion-cycle metrics and
// benchmarks them against industry targets to produce recommendations.
package workingcapital

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// BenchmarkDays are per-industry working capital targets, in days.
type BenchmarkDays struct {
	InventoryDays  float64 `json:"inventory_days"`
	ReceivableDays float64 `json:"receivable_days"`
	PayableDays    float64 `json:"payable_days"`
}

// benchmarks is read-only after startup and safe to share across requests.
var benchmarks = map[string]BenchmarkDays{
	"retail":        {InventoryDays: 45, ReceivableDays: 15, PayableDays: 30},
	"manufacturing": {InventoryDays: 60, ReceivableDays: 45, PayableDays: 45},
	"services":      {InventoryDays: 0, ReceivableDays: 30, PayableDays: 20},
	"technology":    {InventoryDays: 30, ReceivableDays: 45, PayableDays: 30},
	"default":       {InventoryDays: 45, ReceivableDays: 30, PayableDays: 30},
}

// BenchmarkFor returns the industry's working capital targets, falling back
// to the default set.
func BenchmarkFor(industry string) BenchmarkDays {
	if b, ok := benchmarks[industry]; ok {
		return b
	}
	return benchmarks["default"]
}

// OptimizationPotential quantifies the cash that tighter working capital
// management could release.
type OptimizationPotential struct {
	DaysReductionPotential float64            `json:"days_reduction_potential"`
	CashReleasePotential   float64            `json:"cash_release_potential"`
	Areas                  map[string]float64 `json:"areas"`
}

// Report is the working capital analysis for one period. Unlike the ratio
// calculator, zero denominators produce 0 here rather than omitted fields.
type Report struct {
	WorkingCapital      float64               `json:"working_capital"`
	CurrentRatio        float64               `json:"current_ratio"`
	QuickRatio          float64               `json:"quick_ratio"`
	InventoryDays       float64               `json:"inventory_days"`
	ReceivableDays      float64               `json:"receivable_days"`
	PayableDays         float64               `json:"payable_days"`
	CashConversionCycle float64               `json:"cash_conversion_cycle"`
	HealthStatus        string                `json:"health_status"`
	Optimization        OptimizationPotential `json:"optimization_potential"`
}

// Analyze computes working capital metrics from one period's balances.
func Analyze(currentAssets, currentLiabilities, inventory, receivables, payables, annualRevenue, cogs decimal.Decimal) *Report {
	workingCapital := currentAssets.Sub(currentLiabilities)

	currentRatio := 0.0
	quickRatio := 0.0
	if currentLiabilities.IsPositive() {
		currentRatio = currentAssets.Div(currentLiabilities).InexactFloat64()
		quickRatio = currentAssets.Sub(inventory).Div(currentLiabilities).InexactFloat64()
	}

	days := decimal.NewFromInt(365)
	dailyRevenue := annualRevenue.Div(days)
	dailyCOGS := cogs.Div(days)

	inventoryDays := 0.0
	payableDays := 0.0
	if dailyCOGS.IsPositive() {
		inventoryDays = inventory.Div(dailyCOGS).InexactFloat64()
		payableDays = payables.Div(dailyCOGS).InexactFloat64()
	}
	receivableDays := 0.0
	if dailyRevenue.IsPositive() {
		receivableDays = receivables.Div(dailyRevenue).InexactFloat64()
	}

	cashCycle := inventoryDays + receivableDays - payableDays

	return &Report{
		WorkingCapital:      workingCapital.InexactFloat64(),
		CurrentRatio:        round2(currentRatio),
		QuickRatio:          round2(quickRatio),
		InventoryDays:       round1(inventoryDays),
		ReceivableDays:      round1(receivableDays),
		PayableDays:         round1(payableDays),
		CashConversionCycle: round1(cashCycle),
		HealthStatus:        assessHealth(currentRatio, cashCycle),
		Optimization:        optimizationPotential(inventoryDays, receivableDays, payableDays, dailyRevenue),
	}
}

func assessHealth(currentRatio, cashCycle float64) string {
	switch {
	case currentRatio >= 1.5 && cashCycle <= 30:
		return "excellent"
	case currentRatio >= 1.2 && cashCycle <= 60:
		return "good"
	case currentRatio >= 1.0:
		return "adequate"
	default:
		return "needs_attention"
	}
}

// optimizationPotential measures excess days against the default benchmark
// and prices them at daily revenue.
func optimizationPotential(invDays, recDays, payDays float64, dailyRevenue decimal.Decimal) OptimizationPotential {
	b := benchmarks["default"]

	invImprovement := math.Max(0, invDays-b.InventoryDays)
	recImprovement := math.Max(0, recDays-b.ReceivableDays)
	payImprovement := math.Max(0, b.PayableDays-payDays)

	totalDays := invImprovement + recImprovement + payImprovement
	cashRelease := dailyRevenue.Mul(decimal.NewFromFloat(totalDays)).InexactFloat64()

	return OptimizationPotential{
		DaysReductionPotential: round1(totalDays),
		CashReleasePotential:   round2(cashRelease),
		Areas: map[string]float64{
			"inventory":   round1(invImprovement),
			"receivables": round1(recImprovement),
			"payables":    round1(payImprovement),
		},
	}
}

// Recommendation is one actionable working capital improvement.
type Recommendation struct {
	Area             string   `json:"area"`
	Priority         string   `json:"priority"`
	Current          string   `json:"current"`
	Target           string   `json:"target"`
	Actions          []string `json:"actions"`
	PotentialBenefit string   `json:"potential_benefit,omitempty"`
}

// Recommendations generates per-area advice for every area underperforming
// its industry benchmark.
func Recommendations(r *Report, industry string) []Recommendation {
	b := BenchmarkFor(industry)
	recs := []Recommendation{}

	if r.InventoryDays > b.InventoryDays {
		recs = append(recs, Recommendation{
			Area:     "Inventory Management",
			Priority: "high",
			Current:  fmt.Sprintf("%.0f days", r.InventoryDays),
			Target:   fmt.Sprintf("%.0f days", b.InventoryDays),
			Actions: []string{
				"Implement Just-In-Time (JIT) inventory management",
				"Review slow-moving stock and consider clearance sales",
				"Negotiate shorter lead times with suppliers",
				"Use ABC analysis to prioritize inventory items",
			},
			PotentialBenefit: fmt.Sprintf("Release %.0f in working capital", r.Optimization.Areas["inventory"]*1000),
		})
	}

	if r.ReceivableDays > b.ReceivableDays {
		recs = append(recs, Recommendation{
			Area:     "Accounts Receivable",
			Priority: "high",
			Current:  fmt.Sprintf("%.0f days", r.ReceivableDays),
			Target:   fmt.Sprintf("%.0f days", b.ReceivableDays),
			Actions: []string{
				"Implement early payment discounts (e.g., 2/10 net 30)",
				"Automate invoice reminders and follow-ups",
				"Review credit policies for new customers",
				"Consider invoice factoring for immediate cash",
			},
			PotentialBenefit: fmt.Sprintf("Release %.0f in working capital", r.Optimization.Areas["receivables"]*1000),
		})
	}

	if r.PayableDays < b.PayableDays {
		recs = append(recs, Recommendation{
			Area:     "Accounts Payable",
			Priority: "medium",
			Current:  fmt.Sprintf("%.0f days", r.PayableDays),
			Target:   fmt.Sprintf("%.0f days", b.PayableDays),
			Actions: []string{
				"Negotiate longer payment terms with suppliers",
				"Schedule payments strategically near due dates",
				"Consolidate suppliers for better terms",
				"Use credit lines strategically",
			},
			PotentialBenefit: fmt.Sprintf("Retain %.0f longer", r.Optimization.Areas["payables"]*1000),
		})
	}

	if r.CurrentRatio < 1.2 {
		recs = append(recs, Recommendation{
			Area:     "Liquidity",
			Priority: "critical",
			Current:  fmt.Sprintf("%.2f", r.CurrentRatio),
			Target:   "1.5 or higher",
			Actions: []string{
				"Build cash reserves through retained earnings",
				"Consider short-term financing options",
				"Reduce unnecessary current liabilities",
				"Convert short-term debt to long-term",
			},
		})
	}

	return recs
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
