package risk_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"finpulse/pkg/core/risk"
	"finpulse/pkg/models"
)

func TestAssessCreditworthiness_StrongProfile(t *testing.T) {
	p := &models.FinancialPeriod{
		TotalRevenue:      decimal.NewFromInt(2000000),
		NetMargin:         ratio(16),
		DebtToEquity:      ratio(0.4),
		CurrentRatio:      ratio(1.8),
		OperatingCashFlow: decimal.NewFromInt(100000),
	}

	c := risk.AssessCreditworthiness(p)

	// 50 + 15 + 20 + 15 = 100
	if c.OverallScore != 100 {
		t.Errorf("expected score 100, got %d", c.OverallScore)
	}
	if c.Grade != "A" {
		t.Errorf("expected grade A, got %s", c.Grade)
	}
	// 12-100/20 = 7, 14-100/20 = 9
	if c.EstimatedInterestRate != "7% - 9%" {
		t.Errorf("expected rate 7%% - 9%%, got %s", c.EstimatedInterestRate)
	}
	if c.EstimatedLoanAmount == nil || *c.EstimatedLoanAmount != 1000000 {
		t.Errorf("expected loan amount 1000000, got %v", c.EstimatedLoanAmount)
	}
	if len(c.PositiveFactors) != 2 {
		t.Errorf("expected 2 positive factors, got %v", c.PositiveFactors)
	}
	if len(c.NegativeFactors) != 0 {
		t.Errorf("expected no negative factors, got %v", c.NegativeFactors)
	}
}

func TestAssessCreditworthiness_NoData(t *testing.T) {
	c := risk.AssessCreditworthiness(&models.FinancialPeriod{})

	if c.OverallScore != 50 {
		t.Errorf("expected score 50, got %d", c.OverallScore)
	}
	if c.Grade != "D" {
		t.Errorf("expected grade D, got %s", c.Grade)
	}
	if c.EstimatedLoanAmount != nil {
		t.Errorf("expected no loan amount without revenue, got %v", *c.EstimatedLoanAmount)
	}
	// 12-50/20 = 10, 14-50/20 = 12
	if c.EstimatedInterestRate != "10% - 12%" {
		t.Errorf("expected rate 10%% - 12%%, got %s", c.EstimatedInterestRate)
	}
}

func TestAssessCreditworthiness_LeveragedLowMargin(t *testing.T) {
	p := &models.FinancialPeriod{
		TotalRevenue: decimal.NewFromInt(500000),
		NetMargin:    ratio(2),
		DebtToEquity: ratio(2.5),
	}

	c := risk.AssessCreditworthiness(p)

	// 50 + 15 + 5 - 10 = 60
	if c.OverallScore != 60 {
		t.Errorf("expected score 60, got %d", c.OverallScore)
	}
	if c.Grade != "C" {
		t.Errorf("expected grade C, got %s", c.Grade)
	}

	want := map[string]bool{"High debt levels": true, "Low profit margins": true}
	for _, f := range c.NegativeFactors {
		if !want[f] {
			t.Errorf("unexpected negative factor %q", f)
		}
		delete(want, f)
	}
	if len(want) != 0 {
		t.Errorf("missing negative factors: %v", want)
	}
}

func TestAssessCreditworthiness_ComponentScores(t *testing.T) {
	p := &models.FinancialPeriod{
		TotalRevenue: decimal.NewFromInt(1000000),
		NetMargin:    ratio(20),
		DebtToEquity: ratio(1.0),
	}

	c := risk.AssessCreditworthiness(p)
	if len(c.Components) != 3 {
		t.Fatalf("expected 3 components, got %d", len(c.Components))
	}

	// Profitability: min(100, 50 + 20*3) = 100; Debt: 80 - 1.0*20 = 60
	if c.Components[1].Score != 100 {
		t.Errorf("profitability component: expected 100, got %d", c.Components[1].Score)
	}
	if c.Components[2].Score != 60 {
		t.Errorf("debt component: expected 60, got %d", c.Components[2].Score)
	}
}
