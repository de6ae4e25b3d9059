package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"finpulse/pkg/report"
	"finpulse/pkg/store"
)

// ReportHandler serves report generation.
type ReportHandler struct {
	repo      *store.Repository
	generator *report.Generator
}

// NewReportHandler builds the report handler.
func NewReportHandler(repo *store.Repository, generator *report.Generator) *ReportHandler {
	return &ReportHandler{repo: repo, generator: generator}
}

type generateReportRequest struct {
	ReportType string `json:"report_type"`
}

// Generate builds a report over the latest stored period.
func (h *ReportHandler) Generate(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	user, err := h.repo.GetUserByID(c.Request().Context(), uid)
	if err != nil {
		return err
	}

	var req generateReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if req.ReportType == "" {
		req.ReportType = "financial summary"
	}

	p, err := h.repo.LatestPeriod(c.Request().Context(), uid)
	if err != nil {
		return mapDomainError(err)
	}

	result, err := h.generator.Generate(c.Request().Context(), user.Profile(), p, req.ReportType)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
