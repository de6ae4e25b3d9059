package bookkeeping

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DuplicatePair flags two transactions that look like the same entry.
type DuplicatePair struct {
	Transaction1 Transaction `json:"transaction_1"`
	Transaction2 Transaction `json:"transaction_2"`
	Reason       string      `json:"reason"`
	Confidence   float64     `json:"confidence"`
}

// DetectDuplicates flags transactions sharing amount and date.
func DetectDuplicates(transactions []Transaction) []DuplicatePair {
	duplicates := []DuplicatePair{}
	seen := map[string]Transaction{}

	for _, txn := range transactions {
		key := fmt.Sprintf("%s_%s", txn.Amount.String(), txn.Date)
		if prev, ok := seen[key]; ok {
			duplicates = append(duplicates, DuplicatePair{
				Transaction1: prev,
				Transaction2: txn,
				Reason:       "Same amount and date",
				Confidence:   0.8,
			})
		} else {
			seen[key] = txn
		}
	}

	return duplicates
}

// UnclearedTransaction is a transaction not yet reflected in the bank
// statement. Type is "deposit" or "payment".
type UnclearedTransaction struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// Reconciliation is the outcome of a bank reconciliation.
type Reconciliation struct {
	BookBalance         float64  `json:"book_balance"`
	BankBalance         float64  `json:"bank_balance"`
	UnclearedDeposits   float64  `json:"uncleared_deposits"`
	UnclearedPayments   float64  `json:"uncleared_payments"`
	AdjustedBookBalance float64  `json:"adjusted_book_balance"`
	Difference          float64  `json:"difference"`
	IsReconciled        bool     `json:"is_reconciled"`
	Status              string   `json:"status"`
	Suggestions         []string `json:"suggestions"`
}

var reconcileTolerance = decimal.NewFromFloat(0.01)

// Reconcile adjusts the book balance for uncleared transactions and compares
// it against the bank balance. Balances within a paisa are reconciled.
func Reconcile(bookBalance, bankBalance decimal.Decimal, uncleared []UnclearedTransaction) *Reconciliation {
	deposits := decimal.Zero
	payments := decimal.Zero
	for _, t := range uncleared {
		switch t.Type {
		case "deposit":
			deposits = deposits.Add(t.Amount)
		case "payment":
			payments = payments.Add(t.Amount)
		}
	}

	adjusted := bookBalance.Add(deposits).Sub(payments)
	difference := bankBalance.Sub(adjusted)
	reconciled := difference.Abs().LessThan(reconcileTolerance)

	status := "Discrepancy Found"
	suggestions := []string{
		"Review uncleared transactions",
		"Check for missing bank entries",
		"Verify all deposits are recorded",
	}
	if reconciled {
		status = "Reconciled"
		suggestions = []string{}
	}

	return &Reconciliation{
		BookBalance:         bookBalance.InexactFloat64(),
		BankBalance:         bankBalance.InexactFloat64(),
		UnclearedDeposits:   deposits.InexactFloat64(),
		UnclearedPayments:   payments.InexactFloat64(),
		AdjustedBookBalance: adjusted.InexactFloat64(),
		Difference:          difference.InexactFloat64(),
		IsReconciled:        reconciled,
		Status:              status,
		Suggestions:         suggestions,
	}
}

// JournalLine is one side of a double-entry posting.
type JournalLine struct {
	Account string  `json:"account"`
	Debit   float64 `json:"debit"`
	Credit  float64 `json:"credit"`
}

// JournalEntry is a balanced double-entry record.
type JournalEntry struct {
	Date        string        `json:"date"`
	Description string        `json:"description"`
	Entries     []JournalLine `json:"entries"`
	TotalDebit  float64       `json:"total_debit"`
	TotalCredit float64       `json:"total_credit"`
	IsBalanced  bool          `json:"is_balanced"`
}

// GenerateJournalEntry builds the two postings for an expense or income
// transaction against the cash/bank account.
func GenerateJournalEntry(transactionType string, amount decimal.Decimal, description, category string) *JournalEntry {
	amt := amount.InexactFloat64()
	var entries []JournalLine

	switch transactionType {
	case "expense":
		entries = []JournalLine{
			{Account: accountName(category), Debit: amt},
			{Account: "Cash/Bank", Credit: amt},
		}
	case "income":
		entries = []JournalLine{
			{Account: "Cash/Bank", Debit: amt},
			{Account: accountName(category), Credit: amt},
		}
	}

	return &JournalEntry{
		Date:        time.Now().UTC().Format(time.RFC3339),
		Description: description,
		Entries:     entries,
		TotalDebit:  amt,
		TotalCredit: amt,
		IsBalanced:  true,
	}
}
