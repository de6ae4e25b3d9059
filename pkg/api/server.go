// Package api is the HTTP layer: routing, authentication, request
// validation and the mapping from domain errors to HTTP responses.
package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// bindAndValidate decodes the request body into req and runs struct
// validation on it.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	return c.Validate(req)
}

func userID(c echo.Context) (int, error) {
	id, ok := c.Get("user_id").(int)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return id, nil
}

// New assembles the echo server: middleware, validator and every route.
func New(auth *AuthHandler, analysis *AnalysisHandler, advanced *AdvancedHandler, reports *ReportHandler, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &requestValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	e.Use(requestLogger(log))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")

	api.POST("/auth/register", auth.Register)
	api.POST("/auth/login", auth.Login)
	api.GET("/auth/me", auth.Me, auth.Middleware)

	an := api.Group("/analysis", auth.Middleware)
	an.POST("/periods", analysis.CreatePeriod)
	an.GET("/periods", analysis.ListPeriods)
	an.GET("/health-score", analysis.HealthScore)
	an.GET("/ratios", analysis.Ratios)
	an.GET("/risk", analysis.Risk)
	an.GET("/benchmarks", analysis.Benchmarks)
	an.GET("/creditworthiness", analysis.Creditworthiness)
	an.GET("/forecast", analysis.Forecast)

	adv := api.Group("/advanced", auth.Middleware)
	adv.POST("/forecast/cash-flow", advanced.CashFlowForecast)
	adv.POST("/forecast/break-even", advanced.BreakEven)
	adv.POST("/forecast/scenarios", advanced.Scenarios)
	adv.POST("/working-capital/analyze", advanced.WorkingCapital)
	adv.GET("/working-capital/financing-needs", advanced.FinancingNeeds)
	adv.POST("/tax/validate-gstin", advanced.ValidateGSTIN)
	adv.POST("/tax/calculate-gst", advanced.CalculateGST)
	adv.POST("/tax/calculate-tds", advanced.CalculateTDS)
	adv.POST("/tax/compliance-check", advanced.ComplianceCheck)
	adv.GET("/tax/compliance-checklist/:period", advanced.ComplianceChecklist)
	adv.POST("/tax/identify-deductions", advanced.IdentifyDeductions)
	adv.POST("/products/recommend", advanced.RecommendProducts)
	adv.GET("/products/compare", advanced.CompareProducts)
	adv.POST("/bookkeeping/categorize", advanced.Categorize)
	adv.POST("/bookkeeping/batch-categorize", advanced.BatchCategorize)
	adv.POST("/bookkeeping/detect-duplicates", advanced.DetectDuplicates)
	adv.POST("/bookkeeping/reconcile", advanced.Reconcile)
	adv.POST("/bookkeeping/journal-entry", advanced.JournalEntry)
	adv.GET("/cost-optimization", advanced.CostOptimization)

	api.POST("/reports/generate", reports.Generate, auth.Middleware)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			log.Info().
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", c.Response().Status).
				Dur("latency", time.Since(start)).
				Msg("request")
			return nil
		}
	}
}
