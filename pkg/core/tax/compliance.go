package tax

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Due day of the following month for each return type.
var dueDates = map[string]int{
	"GSTR-1":  11,
	"GSTR-3B": 20,
	"GSTR-9":  31, // 31st December of next FY, simplified
}

// ComplianceInput is the filing state for one period. Period is "MM-YYYY".
// A nil filed flag means the filing status is unknown and is not treated as
// unfiled.
type ComplianceInput struct {
	Period      string          `json:"period"`
	GSTR1Filed  *bool           `json:"gstr1_filed"`
	GSTR3BFiled *bool           `json:"gstr3b_filed"`
	OutputTax   decimal.Decimal `json:"output_tax"`
	InputTax    decimal.Decimal `json:"input_tax"`
	Liability   decimal.Decimal `json:"liability"`
	FilingDate  string          `json:"filing_date,omitempty"` // ISO date, empty if not filed
}

// ComplianceIssue is an overdue filing or a warning-level finding.
type ComplianceIssue struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	DueDate  string `json:"due_date,omitempty"`
	Message  string `json:"message,omitempty"`
	Action   string `json:"action"`
}

// LateFee is the late filing fee plus interest accrual.
type LateFee struct {
	DaysLate int     `json:"days_late,omitempty"`
	LateFee  float64 `json:"late_fee"`
	Interest float64 `json:"interest"`
	Total    float64 `json:"total"`
}

// ComplianceReport is the outcome of CheckCompliance.
type ComplianceReport struct {
	ComplianceScore int               `json:"compliance_score"`
	Status          string            `json:"status"` // Compliant | Non-Compliant
	Issues          []ComplianceIssue `json:"issues"`
	Warnings        []ComplianceIssue `json:"warnings"`
	LateFeeEstimate LateFee           `json:"late_fee_estimate"`
	NextDueDates    map[string]string `json:"next_due_dates"`
}

// CheckCompliance evaluates filing deadlines and input tax credit claims as
// of the given date. The score starts at 100 and loses 25 per issue and 10
// per warning, floored at 0.
func CheckCompliance(in ComplianceInput, asOf time.Time) *ComplianceReport {
	issues := []ComplianceIssue{}
	warnings := []ComplianceIssue{}

	gstr1Due := DueDate("GSTR-1", in.Period, asOf)
	if in.GSTR1Filed != nil && !*in.GSTR1Filed && asOf.After(gstr1Due) {
		issues = append(issues, ComplianceIssue{
			Type:     "GSTR-1 Not Filed",
			Severity: "high",
			DueDate:  gstr1Due.Format("2006-01-02"),
			Action:   "File GSTR-1 immediately to avoid late fees",
		})
	}

	gstr3bDue := DueDate("GSTR-3B", in.Period, asOf)
	if in.GSTR3BFiled != nil && !*in.GSTR3BFiled && asOf.After(gstr3bDue) {
		issues = append(issues, ComplianceIssue{
			Type:     "GSTR-3B Not Filed",
			Severity: "critical",
			DueDate:  gstr3bDue.Format("2006-01-02"),
			Action:   "File GSTR-3B immediately. Interest will be charged on late payment.",
		})
	}

	// Input credit disproportionate to output tax invites scrutiny.
	if in.InputTax.GreaterThan(in.OutputTax.Mul(decimal.NewFromFloat(1.5))) {
		warnings = append(warnings, ComplianceIssue{
			Type:     "High ITC Claim",
			Severity: "medium",
			Message:  "Input tax credit is significantly higher than output tax. May trigger scrutiny.",
			Action:   "Verify all ITC claims have valid invoices",
		})
	}

	score := 100 - len(issues)*25 - len(warnings)*10
	if score < 0 {
		score = 0
	}

	status := "Non-Compliant"
	if score >= 80 {
		status = "Compliant"
	}

	return &ComplianceReport{
		ComplianceScore: score,
		Status:          status,
		Issues:          issues,
		Warnings:        warnings,
		LateFeeEstimate: CalculateLateFee(in.Liability, in.FilingDate, gstr3bDue, asOf),
		NextDueDates: map[string]string{
			"GSTR-1":  gstr1Due.Format("2006-01-02"),
			"GSTR-3B": gstr3bDue.Format("2006-01-02"),
		},
	}
}

// DueDate computes the due date of a return for a "MM-YYYY" period: the
// configured day of the following month. An unparseable period falls back to
// the as-of date.
func DueDate(returnType, period string, asOf time.Time) time.Time {
	parts := strings.SplitN(period, "-", 2)
	if len(parts) != 2 {
		return asOf
	}
	month, err1 := strconv.Atoi(parts[0])
	year, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		return asOf
	}

	day, ok := dueDates[returnType]
	if !ok {
		day = 20
	}

	month++
	if month > 12 {
		month = 1
		year++
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// CalculateLateFee computes the combined CGST+SGST late fee of 100/day
// capped at 10000, plus 18% p.a. interest on the liability. Zero when not
// late.
func CalculateLateFee(liability decimal.Decimal, filingDate string, due, asOf time.Time) LateFee {
	var daysLate int
	if filingDate == "" {
		daysLate = int(asOf.Sub(due).Hours() / 24)
	} else {
		filed, err := time.Parse("2006-01-02", filingDate)
		if err != nil {
			daysLate = 0
		} else {
			daysLate = int(filed.Sub(due).Hours() / 24)
		}
	}

	if daysLate <= 0 {
		return LateFee{LateFee: 0, Interest: 0, Total: 0}
	}

	fee := float64(daysLate * 100)
	if fee > 10000 {
		fee = 10000
	}

	interest := liability.InexactFloat64() * 0.18 * float64(daysLate) / 365

	return LateFee{
		DaysLate: daysLate,
		LateFee:  fee,
		Interest: round2(interest),
		Total:    round2(fee + interest),
	}
}

// ChecklistItem is one entry of the per-period compliance checklist.
type ChecklistItem struct {
	Item        string `json:"item"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
}

// ComplianceChecklist lists the filings and checks due for a period.
func ComplianceChecklist(period string, asOf time.Time) []ChecklistItem {
	return []ChecklistItem{
		{
			Item:        "GSTR-1 Filing",
			Description: "Sales return with invoice-wise details",
			DueDate:     DueDate("GSTR-1", period, asOf).Format("2006-01-02"),
			Priority:    "high",
		},
		{
			Item:        "GSTR-3B Filing",
			Description: "Summary return with tax payment",
			DueDate:     DueDate("GSTR-3B", period, asOf).Format("2006-01-02"),
			Priority:    "critical",
		},
		{
			Item:        "TDS Payment",
			Description: "Deposit TDS deducted during the month",
			DueDate:     "7th of following month",
			Priority:    "high",
		},
		{
			Item:        "Advance Tax",
			Description: "Quarterly advance tax if liability > Rs. 10,000",
			DueDate:     "15th of quarter end month",
			Priority:    "medium",
		},
		{
			Item:        "ITC Reconciliation",
			Description: "Match ITC claims with GSTR-2A/2B",
			DueDate:     "Before GSTR-3B filing",
			Priority:    "high",
		},
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
