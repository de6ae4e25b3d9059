package ratios_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"finpulse/pkg/core/ratios"
	"finpulse/pkg/models"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func checkRatio(t *testing.T, name string, got *decimal.Decimal, want float64) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s: expected %v, got nil", name, want)
	}
	if !got.Equal(decimal.NewFromFloat(want)) {
		t.Errorf("%s: expected %v, got %s", name, want, got)
	}
}

func TestCompute_FullPeriod(t *testing.T) {
	p := &models.FinancialPeriod{
		CurrentAssets:      d(200),
		CurrentLiabilities: d(100),
		InventoryValue:     d(50),
		TotalRevenue:       d(1000),
		GrossProfit:        d(400),
		OperatingIncome:    d(200),
		NetProfit:          d(100),
		TotalLiabilities:   d(250),
		TotalEquity:        d(500),
		TotalAssets:        d(1000),
	}

	s := ratios.Compute(p)

	checkRatio(t, "current ratio", s.CurrentRatio, 2)
	checkRatio(t, "quick ratio", s.QuickRatio, 1.5)
	checkRatio(t, "gross margin", s.GrossMargin, 40)
	checkRatio(t, "operating margin", s.OperatingMargin, 20)
	checkRatio(t, "net margin", s.NetMargin, 10)
	checkRatio(t, "debt to equity", s.DebtToEquity, 0.5)
	checkRatio(t, "roe", s.ROE, 20)
	checkRatio(t, "roa", s.ROA, 10)
}

func TestCompute_ZeroDenominatorsOmitRatios(t *testing.T) {
	p := &models.FinancialPeriod{
		CurrentAssets: d(200),
		NetProfit:     d(100),
	}

	s := ratios.Compute(p)

	if s.CurrentRatio != nil {
		t.Errorf("current ratio should be omitted with zero liabilities, got %s", s.CurrentRatio)
	}
	if s.NetMargin != nil {
		t.Errorf("net margin should be omitted with zero revenue, got %s", s.NetMargin)
	}
	if s.DebtToEquity != nil {
		t.Errorf("debt to equity should be omitted with zero equity, got %s", s.DebtToEquity)
	}
	if s.ROA != nil {
		t.Errorf("roa should be omitted with zero assets, got %s", s.ROA)
	}
}

func TestCompute_NegativeEquityOmitted(t *testing.T) {
	p := &models.FinancialPeriod{
		TotalEquity:      d(-100),
		TotalLiabilities: d(500),
		NetProfit:        d(50),
	}

	s := ratios.Compute(p)
	if s.DebtToEquity != nil {
		t.Errorf("debt to equity should be omitted with negative equity, got %s", s.DebtToEquity)
	}
	if s.ROE != nil {
		t.Errorf("roe should be omitted with negative equity, got %s", s.ROE)
	}
}

func TestApply_CopiesOntoPeriod(t *testing.T) {
	p := &models.FinancialPeriod{
		CurrentAssets:      d(150),
		CurrentLiabilities: d(100),
	}

	ratios.Apply(p, ratios.Compute(p))

	checkRatio(t, "applied current ratio", p.CurrentRatio, 1.5)
	if p.NetMargin != nil {
		t.Errorf("net margin should stay nil, got %s", p.NetMargin)
	}
}
