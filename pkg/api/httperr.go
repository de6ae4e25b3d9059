package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"finpulse/pkg/core/errs"
	"finpulse/pkg/store"
)

// mapDomainError converts engine and store errors into HTTP errors.
// Insufficient data is a 422 because the request was well formed but the
// account lacks the history to answer it.
func mapDomainError(err error) error {
	if err == nil {
		return nil
	}

	var insufficient *errs.InsufficientDataError
	if errors.As(err, &insufficient) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, insufficient.Error())
	}

	var validation *errs.ValidationError
	if errors.As(err, &validation) {
		return echo.NewHTTPError(http.StatusBadRequest, strings.Join(validation.Problems, "; "))
	}

	var comparison *errs.InvalidComparisonError
	if errors.As(err, &comparison) {
		return echo.NewHTTPError(http.StatusBadRequest, comparison.Error())
	}

	var configuration *errs.ConfigurationError
	if errors.As(err, &configuration) {
		return echo.NewHTTPError(http.StatusBadRequest, configuration.Error())
	}

	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "no financial data found")
	}

	return err
}
