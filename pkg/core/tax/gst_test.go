package tax_test

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"finpulse/pkg/core/errs"
	"finpulse/pkg/core/tax"
)

func money(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestCalculateGST_Intrastate(t *testing.T) {
	b, err := tax.CalculateGST(money(10000), 18, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(b.CGST, 900) || !almostEqual(b.SGST, 900) {
		t.Errorf("expected CGST/SGST 900 each, got %v/%v", b.CGST, b.SGST)
	}
	if b.IGST != 0 {
		t.Errorf("IGST must be 0 intrastate, got %v", b.IGST)
	}
	if !almostEqual(b.TotalGST, 1800) {
		t.Errorf("total GST: expected 1800, got %v", b.TotalGST)
	}
	if !almostEqual(b.TotalAmount, 11800) {
		t.Errorf("total amount: expected 11800, got %v", b.TotalAmount)
	}
	if b.Type != "Intrastate" {
		t.Errorf("expected Intrastate, got %s", b.Type)
	}
}

func TestCalculateGST_Interstate(t *testing.T) {
	b, err := tax.CalculateGST(money(10000), 12, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(b.IGST, 1200) {
		t.Errorf("IGST: expected 1200, got %v", b.IGST)
	}
	if b.CGST != 0 || b.SGST != 0 {
		t.Errorf("CGST/SGST must be 0 interstate, got %v/%v", b.CGST, b.SGST)
	}
	if b.Type != "Interstate" {
		t.Errorf("expected Interstate, got %s", b.Type)
	}
}

func TestCalculateGST_ZeroRate(t *testing.T) {
	b, err := tax.CalculateGST(money(5000), 0, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.TotalGST != 0 || !almostEqual(b.TotalAmount, 5000) {
		t.Errorf("zero rate: expected no tax, got GST %v total %v", b.TotalGST, b.TotalAmount)
	}
}

func TestCalculateGST_InvalidSlab(t *testing.T) {
	_, err := tax.CalculateGST(money(10000), 15, false)
	if err == nil {
		t.Fatal("expected error for non-slab rate")
	}
	var validation *errs.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

func TestCalculateTDS_RateTable(t *testing.T) {
	cases := []struct {
		paymentType string
		rate        int
	}{
		{"salary", 0},
		{"professional_fees", 10},
		{"rent", 10},
		{"contractor", 1},
		{"contractor_company", 2},
		{"interest", 10},
		{"royalty", 10}, // unmapped, default
	}

	for _, tc := range cases {
		r := tax.CalculateTDS(money(100000), tc.paymentType, true)
		if r.TDSRate != tc.rate {
			t.Errorf("%s: expected rate %d, got %d", tc.paymentType, tc.rate, r.TDSRate)
		}
		if !almostEqual(r.TDSAmount, float64(tc.rate)*1000) {
			t.Errorf("%s: expected TDS %v, got %v", tc.paymentType, float64(tc.rate)*1000, r.TDSAmount)
		}
		if !almostEqual(r.NetPayable, 100000-float64(tc.rate)*1000) {
			t.Errorf("%s: expected net %v, got %v", tc.paymentType, 100000-float64(tc.rate)*1000, r.NetPayable)
		}
	}
}

func TestCalculateTDS_NoPANForcesPenalRate(t *testing.T) {
	r := tax.CalculateTDS(money(50000), "contractor", false)

	if r.TDSRate != 20 {
		t.Errorf("expected 20%% without PAN, got %d", r.TDSRate)
	}
	if !almostEqual(r.TDSAmount, 10000) {
		t.Errorf("expected TDS 10000, got %v", r.TDSAmount)
	}
	if !almostEqual(r.NetPayable, 40000) {
		t.Errorf("expected net 40000, got %v", r.NetPayable)
	}
}
