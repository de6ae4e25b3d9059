package bookkeeping_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"finpulse/pkg/core/bookkeeping"
)

func money(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestCategorize_Expense(t *testing.T) {
	c := bookkeeping.Categorize("Monthly office rent payment", money(-25000))

	if c.Category != "rent" {
		t.Errorf("expected rent, got %s", c.Category)
	}
	if c.TransactionType != "expense" {
		t.Errorf("expected expense, got %s", c.TransactionType)
	}
	if c.SuggestedAccount != "Rent Expense" {
		t.Errorf("expected Rent Expense account, got %s", c.SuggestedAccount)
	}
	if c.Confidence != 0.85 {
		t.Errorf("expected confidence 0.85, got %v", c.Confidence)
	}
}

func TestCategorize_Income(t *testing.T) {
	c := bookkeeping.Categorize("Consulting service for client", money(50000))

	if c.TransactionType != "income" {
		t.Errorf("expected income, got %s", c.TransactionType)
	}
	if c.Category != "service_revenue" {
		t.Errorf("expected service_revenue, got %s", c.Category)
	}
	if c.SuggestedAccount != "Service Income" {
		t.Errorf("expected Service Income account, got %s", c.SuggestedAccount)
	}
}

func TestCategorize_FirstMatchWins(t *testing.T) {
	// "salary" appears before "taxes" in the category order, so a description
	// containing both resolves to salary.
	c := bookkeeping.Categorize("Salary payment including tax deduction", money(-80000))
	if c.Category != "salary" {
		t.Errorf("expected salary, got %s", c.Category)
	}
}

func TestCategorize_UnmatchedFallsBack(t *testing.T) {
	c := bookkeeping.Categorize("Zebra enclosure maintenance", money(-1000))

	if c.Category != "miscellaneous" {
		t.Errorf("expected miscellaneous, got %s", c.Category)
	}
	if c.Confidence != 0.5 {
		t.Errorf("expected confidence 0.5, got %v", c.Confidence)
	}
}

func TestBatchCategorize_PreservesOrder(t *testing.T) {
	out := bookkeeping.BatchCategorize([]bookkeeping.Transaction{
		{Description: "Fuel for delivery van", Amount: money(-3000)},
		{Description: "Product sale invoice 42", Amount: money(12000)},
	})

	if len(out) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out))
	}
	if out[0].Category != "travel" {
		t.Errorf("expected travel, got %s", out[0].Category)
	}
	if out[1].Category != "product_sales" {
		t.Errorf("expected product_sales, got %s", out[1].Category)
	}
}

func TestDetectDuplicates(t *testing.T) {
	dupes := bookkeeping.DetectDuplicates([]bookkeeping.Transaction{
		{Description: "Vendor payment", Amount: money(5000), Date: "2026-08-01"},
		{Description: "Vendor payment again", Amount: money(5000), Date: "2026-08-01"},
		{Description: "Different day", Amount: money(5000), Date: "2026-08-02"},
	})

	if len(dupes) != 1 {
		t.Fatalf("expected 1 duplicate pair, got %d", len(dupes))
	}
	if dupes[0].Confidence != 0.8 {
		t.Errorf("expected confidence 0.8, got %v", dupes[0].Confidence)
	}
	if dupes[0].Transaction2.Description != "Vendor payment again" {
		t.Errorf("unexpected pair: %+v", dupes[0])
	}
}

func TestReconcile_Balanced(t *testing.T) {
	r := bookkeeping.Reconcile(money(100000), money(95000), []bookkeeping.UnclearedTransaction{
		{Type: "deposit", Amount: money(5000)},
		{Type: "payment", Amount: money(10000)},
	})

	if !almostEqual(r.AdjustedBookBalance, 95000) {
		t.Errorf("adjusted balance: expected 95000, got %v", r.AdjustedBookBalance)
	}
	if !r.IsReconciled {
		t.Errorf("expected reconciled, got difference %v", r.Difference)
	}
	if r.Status != "Reconciled" {
		t.Errorf("expected Reconciled, got %s", r.Status)
	}
	if len(r.Suggestions) != 0 {
		t.Errorf("expected no suggestions when reconciled, got %v", r.Suggestions)
	}
}

func TestReconcile_Discrepancy(t *testing.T) {
	r := bookkeeping.Reconcile(money(100000), money(99000), nil)

	if r.IsReconciled {
		t.Error("expected discrepancy")
	}
	if !almostEqual(r.Difference, -1000) {
		t.Errorf("difference: expected -1000, got %v", r.Difference)
	}
	if len(r.Suggestions) == 0 {
		t.Error("expected suggestions for a discrepancy")
	}
}

func TestGenerateJournalEntry_Expense(t *testing.T) {
	e := bookkeeping.GenerateJournalEntry("expense", money(25000), "Office rent", "rent")

	if len(e.Entries) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(e.Entries))
	}
	if e.Entries[0].Account != "Rent Expense" || e.Entries[0].Debit != 25000 {
		t.Errorf("unexpected debit line: %+v", e.Entries[0])
	}
	if e.Entries[1].Account != "Cash/Bank" || e.Entries[1].Credit != 25000 {
		t.Errorf("unexpected credit line: %+v", e.Entries[1])
	}
	if !e.IsBalanced || e.TotalDebit != e.TotalCredit {
		t.Errorf("entry must balance: %+v", e)
	}
}

func TestGenerateJournalEntry_Income(t *testing.T) {
	e := bookkeeping.GenerateJournalEntry("income", money(40000), "Invoice 42", "product_sales")

	if e.Entries[0].Account != "Cash/Bank" || e.Entries[0].Debit != 40000 {
		t.Errorf("unexpected debit line: %+v", e.Entries[0])
	}
	if e.Entries[1].Account != "Sales Revenue" || e.Entries[1].Credit != 40000 {
		t.Errorf("unexpected credit line: %+v", e.Entries[1])
	}
}
