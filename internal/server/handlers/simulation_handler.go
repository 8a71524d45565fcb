package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedlot/internal/domain/models"
	"github.com/mamadbah2/feedlot/internal/service/advisor"
	"github.com/mamadbah2/feedlot/internal/service/reporting"
	"github.com/mamadbah2/feedlot/internal/service/scenario"
	"github.com/mamadbah2/feedlot/internal/service/viability"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

// ScenarioService is the scenario persistence used by the HTTP layer.
type ScenarioService interface {
	Current(ctx context.Context) (scenario.State, error)
	Activate(ctx context.Context, name models.ScenarioType) (scenario.State, error)
	Update(ctx context.Context, name models.ScenarioType, inputs models.RawInputs) (scenario.State, error)
	Clear(ctx context.Context) (scenario.State, error)
}

// Advisor produces the natural-language analysis.
type Advisor interface {
	Analyze(ctx context.Context, in models.SummaryInput) (string, error)
}

// Exporter writes projections to the spreadsheet.
type Exporter interface {
	ExportSimulation(ctx context.Context, label string, res models.Result) error
}

// SimulationStore keeps the history of simulation runs.
type SimulationStore interface {
	SaveSimulation(ctx context.Context, record models.SimulationRecord) error
	ListSimulations(ctx context.Context, limit int) ([]models.SimulationRecord, error)
}

// SimulationHandler exposes the viability engine over HTTP.
type SimulationHandler struct {
	scenarios ScenarioService
	advisor   Advisor
	exporter  Exporter
	history   SimulationStore
	logger    *zap.Logger
	now       func() time.Time
}

// NewSimulationHandler constructs the HTTP handler adapter.
func NewSimulationHandler(scenarios ScenarioService, adv Advisor, exporter Exporter, history SimulationStore, logger *zap.Logger) *SimulationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimulationHandler{
		scenarios: scenarios,
		advisor:   adv,
		exporter:  exporter,
		history:   history,
		logger:    logger,
		now:       time.Now,
	}
}

// Simulate evaluates the posted inputs, records the run and remembers the scenario when one is named.
func (h *SimulationHandler) Simulate(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	res := viability.Evaluate(viability.Normalize(req.RawInputs), req.Periods)

	if req.Scenario != "" {
		if _, err := h.scenarios.Update(ctx, req.Scenario, req.RawInputs); err != nil {
			h.logger.Warn("failed to remember scenario", zap.String("scenario", string(req.Scenario)), zap.Error(err))
		}
	}

	record := models.SimulationRecord{
		ID:        uuid.NewString(),
		Scenario:  req.Scenario,
		Inputs:    req.RawInputs,
		Result:    res,
		CreatedAt: h.now().UTC(),
	}
	if err := h.history.SaveSimulation(ctx, record); err != nil {
		h.logger.Warn("failed to record simulation", zap.String("id", record.ID), zap.Error(err))
	}

	c.JSON(http.StatusOK, models.SimulationResponse{ID: record.ID, Result: res})
}

// History lists recent simulation runs.
func (h *SimulationHandler) History(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(v, maxHistoryLimit)
	}

	records, err := h.history.ListSimulations(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed listing simulations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load history"})
		return
	}
	if records == nil {
		records = []models.SimulationRecord{}
	}

	c.JSON(http.StatusOK, gin.H{"simulations": records})
}

// Analyze asks the advisor to comment on the best holding period.
func (h *SimulationHandler) Analyze(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	res := viability.Evaluate(viability.Normalize(req.RawInputs), req.Periods)
	summary := viability.Summarize(req.RawInputs, res.BestProjection)

	text, err := h.advisor.Analyze(c.Request.Context(), summary)
	if errors.Is(err, advisor.ErrMissingAcquisitionData) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("analysis failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to analyze simulation"})
		return
	}

	c.JSON(http.StatusOK, models.AnalysisResponse{Analysis: text, BestProjection: res.BestProjection})
}

// Export writes the projections of the posted inputs to the spreadsheet.
func (h *SimulationHandler) Export(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	label := req.Label
	if label == "" {
		label = string(req.Scenario)
	}
	if label == "" {
		label = "manual"
	}

	res := viability.Evaluate(viability.Normalize(req.RawInputs), req.Periods)
	if err := h.exporter.ExportSimulation(c.Request.Context(), label, res); err != nil {
		if errors.Is(err, reporting.ErrExportDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("export failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to export projections"})
		return
	}

	c.Status(http.StatusAccepted)
}

// CurrentScenario returns the last active scenario and its inputs.
func (h *SimulationHandler) CurrentScenario(c *gin.Context) {
	state, err := h.scenarios.Current(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading current scenario", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load scenario"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// ClearScenario forgets the active scenario and returns an empty form.
func (h *SimulationHandler) ClearScenario(c *gin.Context) {
	state, err := h.scenarios.Clear(c.Request.Context())
	if err != nil {
		h.logger.Error("failed clearing scenario", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to clear scenario"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// ActivateScenario switches to a preset.
func (h *SimulationHandler) ActivateScenario(c *gin.Context) {
	state, err := h.scenarios.Activate(c.Request.Context(), models.ScenarioType(c.Param("name")))
	h.writeState(c, state, err)
}

// UpdateScenario saves the inputs typed for a preset.
func (h *SimulationHandler) UpdateScenario(c *gin.Context) {
	var inputs models.RawInputs
	if err := c.ShouldBindJSON(&inputs); err != nil {
		h.logger.Warn("invalid scenario payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	state, err := h.scenarios.Update(c.Request.Context(), models.ScenarioType(c.Param("name")), inputs)
	h.writeState(c, state, err)
}

func (h *SimulationHandler) writeState(c *gin.Context, state scenario.State, err error) {
	switch {
	case errors.Is(err, scenario.ErrUnknownScenario):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		h.logger.Error("scenario operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to update scenario"})
	default:
		c.JSON(http.StatusOK, state)
	}
}

func (h *SimulationHandler) bindRequest(c *gin.Context) (models.SimulationRequest, bool) {
	var req models.SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid simulation payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return req, false
	}
	if req.Scenario != "" && !req.Scenario.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown scenario"})
		return req, false
	}
	return req, true
}
