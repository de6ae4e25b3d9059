package tax_test

import (
	"testing"
	"time"

	"finpulse/pkg/core/tax"
)

func boolPtr(v bool) *bool { return &v }

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestDueDate_FollowingMonth(t *testing.T) {
	asOf := date(2026, 8, 1)

	gstr1 := tax.DueDate("GSTR-1", "07-2026", asOf)
	if !gstr1.Equal(date(2026, 8, 11)) {
		t.Errorf("GSTR-1: expected 2026-08-11, got %s", gstr1)
	}

	gstr3b := tax.DueDate("GSTR-3B", "07-2026", asOf)
	if !gstr3b.Equal(date(2026, 8, 20)) {
		t.Errorf("GSTR-3B: expected 2026-08-20, got %s", gstr3b)
	}

	// December rolls into January of the next year.
	rollover := tax.DueDate("GSTR-1", "12-2026", asOf)
	if !rollover.Equal(date(2027, 1, 11)) {
		t.Errorf("rollover: expected 2027-01-11, got %s", rollover)
	}
}

func TestDueDate_UnparseablePeriodFallsBack(t *testing.T) {
	asOf := date(2026, 8, 1)
	if got := tax.DueDate("GSTR-1", "July", asOf); !got.Equal(asOf) {
		t.Errorf("expected as-of fallback, got %s", got)
	}
}

func TestCheckCompliance_AllFiled(t *testing.T) {
	report := tax.CheckCompliance(tax.ComplianceInput{
		Period:      "07-2026",
		GSTR1Filed:  boolPtr(true),
		GSTR3BFiled: boolPtr(true),
	}, date(2026, 9, 1))

	if report.ComplianceScore != 100 {
		t.Errorf("expected score 100, got %d", report.ComplianceScore)
	}
	if report.Status != "Compliant" {
		t.Errorf("expected Compliant, got %s", report.Status)
	}
	if len(report.Issues) != 0 {
		t.Errorf("expected no issues, got %+v", report.Issues)
	}
}

func TestCheckCompliance_OverdueFilings(t *testing.T) {
	report := tax.CheckCompliance(tax.ComplianceInput{
		Period:      "07-2026",
		GSTR1Filed:  boolPtr(false),
		GSTR3BFiled: boolPtr(false),
	}, date(2026, 9, 1))

	if len(report.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %+v", report.Issues)
	}
	// 100 - 2*25
	if report.ComplianceScore != 50 {
		t.Errorf("expected score 50, got %d", report.ComplianceScore)
	}
	if report.Status != "Non-Compliant" {
		t.Errorf("expected Non-Compliant, got %s", report.Status)
	}
}

func TestCheckCompliance_UnknownFilingStatusIgnored(t *testing.T) {
	// nil flags mean unknown, not unfiled.
	report := tax.CheckCompliance(tax.ComplianceInput{Period: "07-2026"}, date(2026, 9, 1))

	if len(report.Issues) != 0 {
		t.Errorf("expected no issues for unknown status, got %+v", report.Issues)
	}
}

func TestCheckCompliance_HighITCWarning(t *testing.T) {
	report := tax.CheckCompliance(tax.ComplianceInput{
		Period:      "07-2026",
		GSTR1Filed:  boolPtr(true),
		GSTR3BFiled: boolPtr(true),
		OutputTax:   money(10000),
		InputTax:    money(20000),
	}, date(2026, 9, 1))

	if len(report.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %+v", report.Warnings)
	}
	// 100 - 10
	if report.ComplianceScore != 90 {
		t.Errorf("expected score 90, got %d", report.ComplianceScore)
	}
	if report.Status != "Compliant" {
		t.Errorf("expected Compliant at 90, got %s", report.Status)
	}
}

func TestCalculateLateFee_CapAndInterest(t *testing.T) {
	due := date(2026, 8, 20)

	// 10 days late: 1000 fee plus interest on 100000 at 18% p.a.
	fee := tax.CalculateLateFee(money(100000), "", due, date(2026, 8, 30))
	if fee.DaysLate != 10 {
		t.Errorf("expected 10 days late, got %d", fee.DaysLate)
	}
	if !almostEqual(fee.LateFee, 1000) {
		t.Errorf("expected fee 1000, got %v", fee.LateFee)
	}
	if !almostEqual(fee.Interest, 493.15) {
		t.Errorf("expected interest 493.15, got %v", fee.Interest)
	}

	// 200 days late: the fee caps at 10000.
	fee = tax.CalculateLateFee(money(0), "", due, due.AddDate(0, 0, 200))
	if !almostEqual(fee.LateFee, 10000) {
		t.Errorf("expected capped fee 10000, got %v", fee.LateFee)
	}

	// Filed on time: nothing due.
	fee = tax.CalculateLateFee(money(100000), "2026-08-18", due, date(2026, 9, 30))
	if fee.Total != 0 {
		t.Errorf("expected no fee when filed on time, got %v", fee.Total)
	}
}

func TestComplianceChecklist_FivePointChecklist(t *testing.T) {
	items := tax.ComplianceChecklist("07-2026", date(2026, 8, 1))

	if len(items) != 5 {
		t.Fatalf("expected 5 checklist items, got %d", len(items))
	}
	if items[0].Item != "GSTR-1 Filing" || items[0].DueDate != "2026-08-11" {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[1].Priority != "critical" {
		t.Errorf("GSTR-3B should be critical, got %s", items[1].Priority)
	}
}

func TestIdentifyDeductions(t *testing.T) {
	report := tax.IdentifyDeductions([]tax.Expense{
		{Description: "Office rent", Category: "rent", Amount: money(50000)},
		{Description: "Team salaries", Category: "salary", Amount: money(200000)},
		{Description: "Snacks", Category: "entertainment", Amount: money(5000)},
	})

	if len(report.DeductibleExpenses) != 2 {
		t.Fatalf("expected 2 deductible expenses, got %+v", report.DeductibleExpenses)
	}
	if !almostEqual(report.TotalDeductions, 250000) {
		t.Errorf("expected total 250000, got %v", report.TotalDeductions)
	}
	// 30% assumed slab
	if !almostEqual(report.PotentialTaxSavings, 75000) {
		t.Errorf("expected savings 75000, got %v", report.PotentialTaxSavings)
	}
}
