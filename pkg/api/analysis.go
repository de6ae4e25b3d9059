package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"finpulse/pkg/core/forecast"
	"finpulse/pkg/core/health"
	"finpulse/pkg/core/insight"
	"finpulse/pkg/core/ratios"
	"finpulse/pkg/core/risk"
	"finpulse/pkg/models"
	"finpulse/pkg/store"
)

// Default history window for analysis endpoints.
const defaultPeriodLimit = 12

// AnalysisHandler serves the scoring endpoints driven by stored periods.
type AnalysisHandler struct {
	repo     *store.Repository
	insights *insight.Service
}

// NewAnalysisHandler builds the analysis handler.
func NewAnalysisHandler(repo *store.Repository, insights *insight.Service) *AnalysisHandler {
	return &AnalysisHandler{repo: repo, insights: insights}
}

// CreatePeriod stores a financial period snapshot for the authenticated
// user. Ratios are computed server side; any client supplied values are
// overwritten.
func (h *AnalysisHandler) CreatePeriod(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var p models.FinancialPeriod
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if p.PeriodLabel == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "period_label is required")
	}
	if p.PeriodEnd.Before(p.PeriodStart) {
		return echo.NewHTTPError(http.StatusBadRequest, "period_end must not precede period_start")
	}

	p.UserID = uid
	ratios.Apply(&p, ratios.Compute(&p))

	created, err := h.repo.CreatePeriod(c.Request().Context(), &p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// ListPeriods returns stored periods, most recent first.
func (h *AnalysisHandler) ListPeriods(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	limit := defaultPeriodLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = parsed
	}

	periods, err := h.repo.ListPeriods(c.Request().Context(), uid, limit)
	if err != nil {
		return err
	}
	if periods == nil {
		periods = []*models.FinancialPeriod{}
	}
	return c.JSON(http.StatusOK, periods)
}

// HealthScore scores the latest period.
func (h *AnalysisHandler) HealthScore(c echo.Context) error {
	p, err := h.latestPeriod(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, health.Score(p))
}

// Ratios computes the ratio set for the latest period.
func (h *AnalysisHandler) Ratios(c echo.Context) error {
	p, err := h.latestPeriod(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ratios.Compute(p))
}

type riskResponse struct {
	Assessment *risk.Assessment      `json:"assessment"`
	Insights   *insight.RiskInsights `json:"insights"`
}

// Risk assesses risk over the stored history and layers narrative insights
// on top.
func (h *AnalysisHandler) Risk(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	user, err := h.repo.GetUserByID(c.Request().Context(), uid)
	if err != nil {
		return err
	}

	periods, err := h.repo.ListPeriods(c.Request().Context(), uid, defaultPeriodLimit)
	if err != nil {
		return err
	}
	if len(periods) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "no financial data found")
	}

	assessment, err := risk.Assess(periods[0], periods, user.Industry)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, riskResponse{
		Assessment: assessment,
		Insights:   h.insights.RiskInsights(c.Request().Context(), assessment, user.Industry),
	})
}

// Benchmarks returns the stored statistics table for the user's industry.
func (h *AnalysisHandler) Benchmarks(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	user, err := h.repo.GetUserByID(c.Request().Context(), uid)
	if err != nil {
		return err
	}

	benchmarks, err := h.repo.Benchmarks(c.Request().Context(), user.Industry)
	if err != nil {
		return err
	}
	if benchmarks == nil {
		benchmarks = []models.IndustryBenchmark{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"industry":   user.Industry,
		"benchmarks": benchmarks,
	})
}

// Creditworthiness evaluates the latest period.
func (h *AnalysisHandler) Creditworthiness(c echo.Context) error {
	p, err := h.latestPeriod(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, risk.AssessCreditworthiness(p))
}

// Forecast projects a metric over the stored history. Query parameters:
// type (revenue|expenses|cash_flow) and horizon (3_months|6_months|12_months).
func (h *AnalysisHandler) Forecast(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	forecastType := c.QueryParam("type")
	if forecastType == "" {
		forecastType = forecast.TypeRevenue
	}
	horizon := c.QueryParam("horizon")
	if horizon == "" {
		horizon = "6_months"
	}

	periods, err := h.repo.ListPeriods(c.Request().Context(), uid, defaultPeriodLimit)
	if err != nil {
		return err
	}

	result, err := forecast.ProjectMetric(periods, forecastType, horizon)
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *AnalysisHandler) latestPeriod(c echo.Context) (*models.FinancialPeriod, error) {
	uid, err := userID(c)
	if err != nil {
		return nil, err
	}
	p, err := h.repo.LatestPeriod(c.Request().Context(), uid)
	if err != nil {
		return nil, mapDomainError(err)
	}
	ratios.Apply(p, ratios.Compute(p))
	return p, nil
}
