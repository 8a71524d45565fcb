package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedlot/internal/domain/models"
	"github.com/mamadbah2/feedlot/internal/service/viability"
)

const (
	dateLayout       = "2006-01-02"
	projectionsRange = "Projections!A:K"
)

// ErrExportDisabled indicates no spreadsheet is configured.
var ErrExportDisabled = errors.New("projection export is not configured")

// RowWriter appends rows to a spreadsheet range.
type RowWriter interface {
	WriteRows(ctx context.Context, sheetRange string, rows [][]interface{}) error
}

// ScenarioSource returns the current inputs of a preset.
type ScenarioSource interface {
	Inputs(ctx context.Context, scenario models.ScenarioType) (models.RawInputs, error)
}

// Service exports projections and builds the periodic scenario digest.
type Service struct {
	writer    RowWriter
	scenarios ScenarioSource
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a new reporting service instance. writer may be nil when export is disabled.
func NewService(writer RowWriter, scenarios ScenarioSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		writer:    writer,
		scenarios: scenarios,
		logger:    logger,
		now:       time.Now,
	}
}

// ExportEnabled reports whether a spreadsheet is configured.
func (s *Service) ExportEnabled() bool {
	return s.writer != nil
}

// ExportSimulation appends one row per projected period. The best period is flagged.
func (s *Service) ExportSimulation(ctx context.Context, label string, res models.Result) error {
	if s.writer == nil {
		return ErrExportDisabled
	}

	rows := ProjectionRows(s.now(), label, res)
	if err := s.writer.WriteRows(ctx, projectionsRange, rows); err != nil {
		return fmt.Errorf("export projections: %w", err)
	}

	s.logger.Info("projections exported", zap.String("label", label), zap.Int("rows", len(rows)))
	return nil
}

// ExportScenarios evaluates every preset with its current inputs and exports the projections.
func (s *Service) ExportScenarios(ctx context.Context) error {
	if s.writer == nil {
		return ErrExportDisabled
	}

	var firstErr error
	for _, scenario := range models.ScenarioTypes {
		raw, err := s.scenarios.Inputs(ctx, scenario)
		if err != nil {
			s.logger.Error("failed loading scenario for export", zap.String("scenario", string(scenario)), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		res := viability.Evaluate(viability.Normalize(raw), nil)
		if err := s.ExportSimulation(ctx, string(scenario), res); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ProjectionRows flattens a result into spreadsheet rows.
func ProjectionRows(at time.Time, label string, res models.Result) [][]interface{} {
	rows := make([][]interface{}, 0, len(res.Projections))
	for _, p := range res.Projections {
		best := ""
		if p.Days == res.BestProjection.Days {
			best = "*"
		}
		rows = append(rows, []interface{}{
			at.Format(dateLayout),
			label,
			p.Days,
			round(p.FinalWeight),
			round(p.NetMeatUnits),
			round(p.CostPerUnitProduced),
			round(p.TotalPeriodCost),
			round(p.Revenue),
			round(p.ProfitLoss),
			round(p.MonthlyReturnPct),
			best,
		})
	}
	return rows
}

// BuildDigest summarizes the best holding period of every preset.
func (s *Service) BuildDigest(ctx context.Context) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Resumo de cenários (%s)", s.now().Format(dateLayout))

	for _, scenario := range models.ScenarioTypes {
		raw, err := s.scenarios.Inputs(ctx, scenario)
		if err != nil {
			return "", fmt.Errorf("load scenario %s: %w", scenario, err)
		}

		res := viability.Evaluate(viability.Normalize(raw), nil)
		best := res.BestProjection

		fmt.Fprintf(&sb, "\n- %s: melhor prazo %d dias, lucro R$ %s, rentabilidade %s%% a.m., custo por @ produzida R$ %s",
			scenario, best.Days, money(best.ProfitLoss), money(best.MonthlyReturnPct), money(best.CostPerUnitProduced))
		if strings.TrimSpace(string(raw.BasePrice)) == "" {
			sb.WriteString(" (preço de compra não informado)")
		}
	}

	return sb.String(), nil
}

func round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
