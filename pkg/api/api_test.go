package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finpulse/pkg/api"
	"finpulse/pkg/core/insight"
	"finpulse/pkg/report"
)

const testSecret = "test-secret"

func testServer() *echo.Echo {
	insights := insight.NewService(&insight.StubProvider{}, zerolog.Nop())
	auth := api.NewAuthHandler(nil, testSecret, 1)
	analysis := api.NewAnalysisHandler(nil, insights)
	advanced := api.NewAdvancedHandler(nil, insights)
	reports := api.NewReportHandler(nil, report.NewGenerator(insights))
	return api.New(auth, analysis, advanced, reports, zerolog.Nop())
}

func bearerToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": float64(1),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if authenticated {
		req.Header.Set(echo.HeaderAuthorization, bearerToken(t))
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	rec := doJSON(t, testServer(), http.MethodGet, "/health", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	rec := doJSON(t, testServer(), http.MethodPost, "/api/advanced/tax/validate-gstin",
		`{"gstin":"27AAPFU0939F1ZV"}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRejectsMalformedToken(t *testing.T) {
	e := testServer()
	req := httptest.NewRequest(http.MethodPost, "/api/advanced/tax/validate-gstin",
		strings.NewReader(`{"gstin":"27AAPFU0939F1ZV"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestValidateGSTIN(t *testing.T) {
	rec := doJSON(t, testServer(), http.MethodPost, "/api/advanced/tax/validate-gstin",
		`{"gstin":"27AAPFU0939F1ZV"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		IsValid   bool   `json:"is_valid"`
		StateCode string `json:"state_code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.IsValid)
	assert.Equal(t, "27", out.StateCode)
}

func TestCalculateGST(t *testing.T) {
	rec := doJSON(t, testServer(), http.MethodPost, "/api/advanced/tax/calculate-gst",
		`{"amount": 10000, "gst_rate": 18, "is_interstate": false}`, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		CGST     float64 `json:"cgst"`
		SGST     float64 `json:"sgst"`
		TotalGST float64 `json:"total_gst"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.InDelta(t, 900, out.CGST, 0.01)
	assert.InDelta(t, 900, out.SGST, 0.01)
	assert.InDelta(t, 1800, out.TotalGST, 0.01)
}

func TestCalculateGST_InvalidSlabIs400(t *testing.T) {
	rec := doJSON(t, testServer(), http.MethodPost, "/api/advanced/tax/calculate-gst",
		`{"amount": 10000, "gst_rate": 15}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBreakEven_InvalidRatioIs400(t *testing.T) {
	rec := doJSON(t, testServer(), http.MethodPost, "/api/advanced/forecast/break-even",
		`{"fixed_costs": 100000, "variable_cost_ratio": 1.0, "current_revenue": 500000}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCashFlowForecast_TooLittleHistoryIs422(t *testing.T) {
	rec := doJSON(t, testServer(), http.MethodPost, "/api/advanced/forecast/cash-flow",
		`{"historical": [{"period":"2026-01","revenue":1000,"expenses":800}], "months_ahead": 3}`, true)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestScenarios(t *testing.T) {
	rec := doJSON(t, testServer(), http.MethodPost, "/api/advanced/forecast/scenarios",
		`{"base_revenue": 1000000, "base_expenses": 800000}`, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Scenarios map[string]struct {
			NetProfit float64 `json:"net_profit"`
		} `json:"scenarios"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Scenarios, 3)
	assert.InDelta(t, 200000, out.Scenarios["base"].NetProfit, 0.01)
	assert.InDelta(t, -80000, out.Scenarios["pessimistic"].NetProfit, 0.01)
}

func TestCategorize(t *testing.T) {
	rec := doJSON(t, testServer(), http.MethodPost, "/api/advanced/bookkeeping/categorize",
		`{"description": "Monthly office rent", "amount": -25000}`, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Category        string `json:"category"`
		TransactionType string `json:"transaction_type"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "rent", out.Category)
	assert.Equal(t, "expense", out.TransactionType)
}

func TestJournalEntry_ValidatesType(t *testing.T) {
	rec := doJSON(t, testServer(), http.MethodPost, "/api/advanced/bookkeeping/journal-entry",
		`{"transaction_type": "transfer", "amount": 100, "description": "x", "category": "rent"}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompareProducts_SingleIDIs400(t *testing.T) {
	rec := doJSON(t, testServer(), http.MethodGet, "/api/advanced/products/compare?ids=wc_loan", "", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
