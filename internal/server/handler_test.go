package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/runway/internal/breakeven"
	"github.com/rgehrsitz/runway/internal/compare"
	"github.com/rgehrsitz/runway/internal/config"
	"github.com/rgehrsitz/runway/internal/domain"
)

func newTestRouter() http.Handler {
	return NewRouter(NewHandler(nil))
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	rr := do(t, newTestRouter(), "GET", "/healthz", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))
}

func TestRequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest("GET", "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
}

func TestDefaultPlan(t *testing.T) {
	rr := do(t, newTestRouter(), "GET", "/api/v1/plans/default", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	plan := decode[domain.Plan](t, rr)
	assert.Equal(t, 45, plan.Self.CurrentAge)
	assert.Equal(t, 90, plan.Self.LifeExpectancy)
	require.Len(t, plan.IncomeStreams, 1)
	assert.Equal(t, "State Pension", plan.IncomeStreams[0].Name)
}

func TestProjectReturnsAnalysis(t *testing.T) {
	rr := do(t, newTestRouter(), "POST", "/api/v1/projections", config.DefaultPlan())
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	analysis := decode[domain.Analysis](t, rr)
	assert.NotEmpty(t, analysis.ID)
	assert.Equal(t, "Baseline", analysis.Name)
	require.NotNil(t, analysis.Result)
	assert.Equal(t, 45, analysis.Result.YearlyData[0].Age)
}

func TestProjectExportFormats(t *testing.T) {
	router := newTestRouter()

	rr := do(t, router, "POST", "/api/v1/projections?format=csv", config.DefaultPlan())
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "retirement-analysis.csv")
	assert.True(t, strings.HasPrefix(rr.Body.String(), "Age,Year,Starting Balance"))

	rr = do(t, router, "POST", "/api/v1/projections?format=report", config.DefaultPlan())
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Retirement Analysis Report")

	rr = do(t, router, "POST", "/api/v1/projections?format=pdf", config.DefaultPlan())
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestProjectRejectsBadInput(t *testing.T) {
	router := newTestRouter()

	rr := do(t, router, "POST", "/api/v1/projections", "{not json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decode[ErrorResponse](t, rr).Error, "invalid request body")

	rr = do(t, router, "POST", "/api/v1/projections", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	plan := config.DefaultPlan()
	plan.Self.LifeExpectancy = 30
	plan.InflationRate = decimal.NewFromInt(-1)
	rr = do(t, router, "POST", "/api/v1/projections", plan)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	resp := decode[ErrorResponse](t, rr)
	assert.Equal(t, "plan validation failed", resp.Error)
	assert.GreaterOrEqual(t, len(resp.Details), 2)
}

func TestOversizedBodyIsRejected(t *testing.T) {
	body := `{"name":"` + strings.Repeat("x", maxBodyBytes) + `"}`

	rr := do(t, newTestRouter(), "POST", "/api/v1/projections", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Contains(t, decode[ErrorResponse](t, rr).Error, "request body too large")
}

func TestValidatePlanEndpoint(t *testing.T) {
	rr := do(t, newTestRouter(), "POST", "/api/v1/plans/validate", config.DefaultPlan())
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"valid":true}`, rr.Body.String())
}

func TestCompare(t *testing.T) {
	router := newTestRouter()

	rr := do(t, router, "POST", "/api/v1/compare", CompareRequest{
		Plan:       config.DefaultPlan(),
		Templates:  []string{"conservative", "frugal"},
		Transforms: []string{"set_growth:rate=7"},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	set := decode[compare.ComparisonSet](t, rr)
	assert.Equal(t, "Baseline", set.BaseScenarioName)
	assert.Len(t, set.AlternativeResults, 3)

	rr = do(t, router, "POST", "/api/v1/compare", CompareRequest{Plan: config.DefaultPlan()})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, router, "POST", "/api/v1/compare", CompareRequest{Plan: config.DefaultPlan(), Templates: []string{"nope"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, router, "POST", "/api/v1/compare", CompareRequest{Templates: []string{"frugal"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "plan is required", decode[ErrorResponse](t, rr).Error)
}

func TestTemplates(t *testing.T) {
	rr := do(t, newTestRouter(), "GET", "/api/v1/templates", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	templates := decode[[]TemplateDTO](t, rr)
	assert.Len(t, templates, 8)
	for _, tmpl := range templates {
		assert.NotEmpty(t, tmpl.Description, tmpl.Name)
	}
}

func TestBreakEven(t *testing.T) {
	router := newTestRouter()

	rr := do(t, router, "POST", "/api/v1/breakeven/max_spending", BreakEvenRequest{Plan: config.DefaultPlan()})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	result := decode[breakeven.Result](t, rr)
	assert.Equal(t, breakeven.TargetMaxSpending, result.Target)
	assert.True(t, result.Value.IsPositive())

	rr = do(t, router, "POST", "/api/v1/breakeven/max_happiness", BreakEvenRequest{Plan: config.DefaultPlan()})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestBreakEvenNoSolution(t *testing.T) {
	plan := config.DefaultPlan()
	plan.Self.DesiredMonthlyIncome = decimal.NewFromInt(20000)
	upper := decimal.NewFromInt(600000)

	rr := do(t, newTestRouter(), "POST", "/api/v1/breakeven/min_savings", BreakEvenRequest{Plan: plan, Upper: &upper})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestBreakEvenAll(t *testing.T) {
	rr := do(t, newTestRouter(), "POST", "/api/v1/breakeven", BreakEvenRequest{Plan: config.DefaultPlan()})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	multi := decode[breakeven.MultiResult](t, rr)
	assert.NotEmpty(t, multi.Results)
	assert.NotEmpty(t, multi.Recommendations)
}

func TestSensitivity(t *testing.T) {
	router := newTestRouter()
	steps := 3

	rr := do(t, router, "POST", "/api/v1/sensitivity", SensitivityRequest{
		Plan:      config.DefaultPlan(),
		Parameter: domain.ParamGrowthRate,
		Steps:     steps,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	single := decode[domain.ParameterSensitivityAnalysis](t, rr)
	assert.Len(t, single.Results, steps)

	rr = do(t, router, "POST", "/api/v1/sensitivity", SensitivityRequest{
		Plan:      config.DefaultPlan(),
		Parameter: domain.ParamGrowthRate,
		Steps:     steps,
		With:      domain.ParamInflationRate,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	matrix := decode[domain.SensitivityMatrix](t, rr)
	assert.Len(t, matrix.MatrixResults, steps)

	rr = do(t, router, "POST", "/api/v1/sensitivity", SensitivityRequest{Plan: config.DefaultPlan(), Parameter: "luck"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUnknownRoute(t *testing.T) {
	rr := do(t, newTestRouter(), "GET", "/api/v1/nothing", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
