package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/feedlot/internal/domain/models"
	"github.com/mamadbah2/feedlot/internal/repository/memory"
	"github.com/mamadbah2/feedlot/internal/service/advisor"
	"github.com/mamadbah2/feedlot/internal/service/reporting"
	"github.com/mamadbah2/feedlot/internal/service/scenario"
)

type mockAdvisor struct{ mock.Mock }

func (m *mockAdvisor) Analyze(ctx context.Context, in models.SummaryInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

type mockExporter struct{ mock.Mock }

func (m *mockExporter) ExportSimulation(ctx context.Context, label string, res models.Result) error {
	return m.Called(ctx, label, res).Error(0)
}

type fixture struct {
	engine   *gin.Engine
	store    *memory.Store
	advisor  *mockAdvisor
	exporter *mockExporter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	adv := new(mockAdvisor)
	exp := new(mockExporter)
	h := NewSimulationHandler(scenario.NewService(store, nil), adv, exp, store, nil)

	r := gin.New()
	r.POST("/simulations", h.Simulate)
	r.GET("/simulations", h.History)
	r.POST("/analysis", h.Analyze)
	r.POST("/exports", h.Export)
	r.GET("/scenario", h.CurrentScenario)
	r.DELETE("/scenario", h.ClearScenario)
	r.GET("/scenarios/:name", h.ActivateScenario)
	r.PUT("/scenarios/:name", h.UpdateScenario)

	return &fixture{engine: r, store: store, advisor: adv, exporter: exp}
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

const heiferBody = `{
	"base_price": "1000",
	"initial_weight": 300,
	"commission_pct": "3",
	"freight": "65",
	"procedure_fee": "0",
	"daily_cost": "2.5",
	"daily_gain": 0.5,
	"carcass_yield_pct": "50",
	"sale_unit_price": "280"
}`

func TestSimulate(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/simulations", heiferBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.SimulationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.ID)
	assert.InDelta(t, 10.0, resp.Result.Acquisition.GrossWeightUnits, 1e-9)
	assert.InDelta(t, 1095.0, resp.Result.Acquisition.TotalAcquisitionCost, 1e-9)
	require.Len(t, resp.Result.Projections, 11)
	assert.Equal(t, 60, resp.Result.BestProjection.Days)
	assert.InDelta(t, 73.69, resp.Result.BestProjection.MonthlyReturnPct, 0.01)

	records, err := f.store.ListSimulations(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, resp.ID, records[0].ID)
}

func TestSimulate_CustomPeriodsAndScenario(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/simulations", `{"scenario":"boi_magro","base_price":"3000","initial_weight":"390","periods":[30,45]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.SimulationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Result.Projections, 2)
	assert.Equal(t, 30, resp.Result.Projections[0].Days)

	current := f.do(t, http.MethodGet, "/scenario", "")
	require.Equal(t, http.StatusOK, current.Code)
	var state scenario.State
	require.NoError(t, json.Unmarshal(current.Body.Bytes(), &state))
	assert.Equal(t, models.ScenarioBoiMagro, state.Active)
	assert.Equal(t, models.NumericText("3000"), state.Inputs.BasePrice)
}

func TestSimulate_InvalidPayloads(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"base_price":`},
		{name: "boolean field", body: `{"base_price":true}`},
		{name: "negative period", body: `{"periods":[60,-30]}`},
		{name: "unknown scenario", body: `{"scenario":"bezerro"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/simulations", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSimulate_EmptyFormReturnsZeros(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/simulations", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SimulationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.AcquisitionSummary{}, resp.Result.Acquisition)
	assert.Zero(t, resp.Result.BestProjection.MonthlyReturnPct)
}

func TestHistory(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/simulations", heiferBody).Code)
	}

	rec := f.do(t, http.MethodGet, "/simulations?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Simulations []models.SimulationRecord `json:"simulations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Simulations, 2)

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/simulations?limit=abc", "").Code)
}

func TestAnalyze(t *testing.T) {
	f := newFixture(t)
	f.advisor.On("Analyze", mock.Anything, mock.MatchedBy(func(in models.SummaryInput) bool {
		return in.BestDays == 60 && in.BasePrice == "1000" && in.InitialWeight == "300"
	})).Return("Venda aos 60 dias.", nil).Once()

	rec := f.do(t, http.MethodPost, "/analysis", heiferBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Venda aos 60 dias.", resp.Analysis)
	assert.Equal(t, 60, resp.BestProjection.Days)
	f.advisor.AssertExpectations(t)
}

func TestAnalyze_MissingAcquisitionData(t *testing.T) {
	f := newFixture(t)
	f.advisor.On("Analyze", mock.Anything, mock.Anything).Return("", advisor.ErrMissingAcquisitionData)

	rec := f.do(t, http.MethodPost, "/analysis", `{"initial_weight":"300"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExport(t *testing.T) {
	f := newFixture(t)
	f.exporter.On("ExportSimulation", mock.Anything, "boi_magro", mock.Anything).Return(nil).Once()

	rec := f.do(t, http.MethodPost, "/exports", `{"scenario":"boi_magro","base_price":"3000"}`)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	f.exporter.AssertExpectations(t)
}

func TestExport_Errors(t *testing.T) {
	f := newFixture(t)
	f.exporter.On("ExportSimulation", mock.Anything, "disabled", mock.Anything).Return(reporting.ErrExportDisabled)
	f.exporter.On("ExportSimulation", mock.Anything, "manual", mock.Anything).Return(errors.New("quota"))

	assert.Equal(t, http.StatusServiceUnavailable, f.do(t, http.MethodPost, "/exports", `{"label":"disabled"}`).Code)
	assert.Equal(t, http.StatusBadGateway, f.do(t, http.MethodPost, "/exports", `{}`).Code)
}

func TestScenarioLifecycle(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/scenarios/vaca_magra", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var state scenario.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, models.ScenarioVacaMagra, state.Active)
	assert.Equal(t, models.NumericText("47"), state.Inputs.CarcassYieldPct)

	rec = f.do(t, http.MethodPut, "/scenarios/vaca_magra", `{"base_price":"2100","initial_weight":"330","carcass_yield_pct":48}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/scenario", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, models.NumericText("48"), state.Inputs.CarcassYieldPct)

	rec = f.do(t, http.MethodDelete, "/scenario", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/scenario", "")
	state = scenario.State{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Empty(t, state.Active)
	assert.Equal(t, models.ScenarioDefaults[models.ScenarioNovilha], state.Inputs)
}

func TestScenario_Unknown(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/scenarios/bezerro", "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPut, "/scenarios/bezerro", `{}`).Code)
}
