package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"finpulse/pkg/core/bookkeeping"
	"finpulse/pkg/core/forecast"
	"finpulse/pkg/core/insight"
	"finpulse/pkg/core/products"
	"finpulse/pkg/core/tax"
	"finpulse/pkg/core/workingcapital"
	"finpulse/pkg/store"
)

// AdvancedHandler serves the stateless engine endpoints plus the ones that
// derive their inputs from the latest stored period.
type AdvancedHandler struct {
	repo     *store.Repository
	insights *insight.Service
}

// NewAdvancedHandler builds the advanced analysis handler.
func NewAdvancedHandler(repo *store.Repository, insights *insight.Service) *AdvancedHandler {
	return &AdvancedHandler{repo: repo, insights: insights}
}

// --- Forecasting ---

type cashFlowForecastRequest struct {
	Historical  []forecast.MonthlyCashFlow `json:"historical" validate:"required,min=1,dive"`
	MonthsAhead int                        `json:"months_ahead" validate:"gte=1,lte=24"`
}

// CashFlowForecast projects monthly cash flow from caller supplied history.
func (h *AdvancedHandler) CashFlowForecast(c echo.Context) error {
	var req cashFlowForecastRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := forecast.ForecastCashFlow(req.Historical, req.MonthsAhead)
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, result)
}

type breakEvenRequest struct {
	FixedCosts        decimal.Decimal `json:"fixed_costs"`
	VariableCostRatio decimal.Decimal `json:"variable_cost_ratio"`
	CurrentRevenue    decimal.Decimal `json:"current_revenue"`
}

// BreakEven computes the break-even revenue point.
func (h *AdvancedHandler) BreakEven(c echo.Context) error {
	var req breakEvenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := forecast.ProjectBreakEven(req.FixedCosts, req.VariableCostRatio, req.CurrentRevenue)
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, result)
}

type scenarioRequest struct {
	BaseRevenue  decimal.Decimal `json:"base_revenue"`
	BaseExpenses decimal.Decimal `json:"base_expenses"`
	Scenarios    []string        `json:"scenarios"`
}

// Scenarios runs optimistic/base/pessimistic what-if analysis.
func (h *AdvancedHandler) Scenarios(c echo.Context) error {
	var req scenarioRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, forecast.AnalyzeScenarios(req.BaseRevenue, req.BaseExpenses, req.Scenarios))
}

// --- Working capital ---

type workingCapitalRequest struct {
	CurrentAssets      decimal.Decimal `json:"current_assets"`
	CurrentLiabilities decimal.Decimal `json:"current_liabilities"`
	Inventory          decimal.Decimal `json:"inventory"`
	Receivables        decimal.Decimal `json:"receivables"`
	Payables           decimal.Decimal `json:"payables"`
	AnnualRevenue      decimal.Decimal `json:"annual_revenue"`
	CostOfGoodsSold    decimal.Decimal `json:"cost_of_goods_sold"`
	Industry           string          `json:"industry"`
}

type workingCapitalResponse struct {
	Analysis        *workingcapital.Report          `json:"analysis"`
	Benchmark       workingcapital.BenchmarkDays    `json:"industry_benchmark"`
	Recommendations []workingcapital.Recommendation `json:"recommendations"`
}

// WorkingCapital analyzes one period's balances against industry benchmarks.
func (h *AdvancedHandler) WorkingCapital(c echo.Context) error {
	var req workingCapitalRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	industry := req.Industry
	if industry == "" {
		industry = "default"
	}

	report := workingcapital.Analyze(req.CurrentAssets, req.CurrentLiabilities,
		req.Inventory, req.Receivables, req.Payables, req.AnnualRevenue, req.CostOfGoodsSold)

	return c.JSON(http.StatusOK, workingCapitalResponse{
		Analysis:        report,
		Benchmark:       workingcapital.BenchmarkFor(industry),
		Recommendations: workingcapital.Recommendations(report, industry),
	})
}

// FinancingNeeds sizes working capital financing for a projected growth rate
// using the latest stored period. Query parameter: growth (percent).
func (h *AdvancedHandler) FinancingNeeds(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	growth := 10.0
	if raw := c.QueryParam("growth"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "growth must be a number")
		}
		growth = parsed
	}

	p, err := h.repo.LatestPeriod(c.Request().Context(), uid)
	if err != nil {
		return mapDomainError(err)
	}

	report := workingcapital.Analyze(p.CurrentAssets, p.CurrentLiabilities,
		p.InventoryValue, p.AccountsReceivable, p.AccountsPayable,
		p.TotalRevenue, p.CostOfGoodsSold)

	needs := workingcapital.CalculateFinancingNeeds(growth,
		p.CurrentAssets.Sub(p.CurrentLiabilities), report.CashConversionCycle)
	return c.JSON(http.StatusOK, needs)
}

// --- Tax ---

type gstinRequest struct {
	GSTIN string `json:"gstin" validate:"required"`
}

// ValidateGSTIN checks a GSTIN's structure.
func (h *AdvancedHandler) ValidateGSTIN(c echo.Context) error {
	var req gstinRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tax.ValidateGSTIN(req.GSTIN))
}

type gstRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	GSTRate      int             `json:"gst_rate"`
	IsInterstate bool            `json:"is_interstate"`
}

// CalculateGST splits an amount into CGST/SGST or IGST.
func (h *AdvancedHandler) CalculateGST(c echo.Context) error {
	var req gstRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	breakdown, err := tax.CalculateGST(req.Amount, req.GSTRate, req.IsInterstate)
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, breakdown)
}

type tdsRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	PaymentType  string          `json:"payment_type" validate:"required"`
	PANAvailable bool            `json:"pan_available"`
}

// CalculateTDS computes tax deducted at source for a payment.
func (h *AdvancedHandler) CalculateTDS(c echo.Context) error {
	var req tdsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tax.CalculateTDS(req.Amount, req.PaymentType, req.PANAvailable))
}

// ComplianceCheck evaluates GST filing compliance for one period.
func (h *AdvancedHandler) ComplianceCheck(c echo.Context) error {
	var req tax.ComplianceInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if req.Period == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "period is required")
	}
	return c.JSON(http.StatusOK, tax.CheckCompliance(req, time.Now()))
}

// ComplianceChecklist returns the filing checklist for a period ("MM-YYYY").
func (h *AdvancedHandler) ComplianceChecklist(c echo.Context) error {
	period := c.Param("period")
	if period == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "period is required")
	}
	return c.JSON(http.StatusOK, tax.ComplianceChecklist(period, time.Now()))
}

type deductionsRequest struct {
	Expenses []tax.Expense `json:"expenses" validate:"required,min=1"`
}

// IdentifyDeductions scans expenses for income tax deductions.
func (h *AdvancedHandler) IdentifyDeductions(c echo.Context) error {
	var req deductionsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tax.IdentifyDeductions(req.Expenses))
}

// --- Products ---

type recommendRequest struct {
	Metrics products.Metrics `json:"metrics"`
	Needs   []string         `json:"needs"`
}

// RecommendProducts matches financial products to the business.
func (h *AdvancedHandler) RecommendProducts(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	user, err := h.repo.GetUserByID(c.Request().Context(), uid)
	if err != nil {
		return err
	}

	var req recommendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	return c.JSON(http.StatusOK, products.Recommend(user.Profile(), req.Metrics, req.Needs))
}

// CompareProducts compares catalog products. Query parameters: ids
// (comma-separated) and category.
func (h *AdvancedHandler) CompareProducts(c echo.Context) error {
	raw := c.QueryParam("ids")
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	comparison, err := products.Compare(ids, c.QueryParam("category"))
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, comparison)
}

// --- Bookkeeping ---

type categorizeRequest struct {
	Description string          `json:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
}

// Categorize classifies one transaction.
func (h *AdvancedHandler) Categorize(c echo.Context) error {
	var req categorizeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookkeeping.Categorize(req.Description, req.Amount))
}

type batchCategorizeRequest struct {
	Transactions []bookkeeping.Transaction `json:"transactions" validate:"required,min=1"`
}

// BatchCategorize classifies a batch of transactions.
func (h *AdvancedHandler) BatchCategorize(c echo.Context) error {
	var req batchCategorizeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookkeeping.BatchCategorize(req.Transactions))
}

// DetectDuplicates flags likely duplicate transactions.
func (h *AdvancedHandler) DetectDuplicates(c echo.Context) error {
	var req batchCategorizeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookkeeping.DetectDuplicates(req.Transactions))
}

type reconcileRequest struct {
	BookBalance decimal.Decimal                    `json:"book_balance"`
	BankBalance decimal.Decimal                    `json:"bank_balance"`
	Uncleared   []bookkeeping.UnclearedTransaction `json:"uncleared"`
}

// Reconcile runs a bank reconciliation.
func (h *AdvancedHandler) Reconcile(c echo.Context) error {
	var req reconcileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	return c.JSON(http.StatusOK, bookkeeping.Reconcile(req.BookBalance, req.BankBalance, req.Uncleared))
}

type journalEntryRequest struct {
	TransactionType string          `json:"transaction_type" validate:"required,oneof=income expense"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description" validate:"required"`
	Category        string          `json:"category" validate:"required"`
}

// JournalEntry generates a double-entry journal entry.
func (h *AdvancedHandler) JournalEntry(c echo.Context) error {
	var req journalEntryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK,
		bookkeeping.GenerateJournalEntry(req.TransactionType, req.Amount, req.Description, req.Category))
}

// --- Cost optimization ---

// CostOptimization derives savings opportunities from the latest period.
func (h *AdvancedHandler) CostOptimization(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	user, err := h.repo.GetUserByID(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	p, err := h.repo.LatestPeriod(c.Request().Context(), uid)
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, h.insights.CostOptimization(c.Request().Context(), p, user.Industry))
}
