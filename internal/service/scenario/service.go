package scenario

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/feedlot/internal/domain/models"
)

// ErrUnknownScenario indicates the requested preset does not exist.
var ErrUnknownScenario = errors.New("unknown scenario")

const (
	activeKey     = "lastActiveScenario"
	dataKeyPrefix = "scenario_data_"
)

// Store is the key-value persistence the service needs.
type Store interface {
	Load(ctx context.Context, key string) (string, bool, error)
	Save(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// State is the form shown to the farmer. Active is empty when no preset is selected.
type State struct {
	Active models.ScenarioType `json:"active,omitempty"`
	Inputs models.RawInputs    `json:"inputs"`
}

// Service remembers the last scenario used and the inputs typed for each preset.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService wires a new scenario service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Current restores the last active scenario with its saved inputs, or its preset when nothing
// was saved. Without an active scenario it returns the heifer preset.
func (s *Service) Current(ctx context.Context) (State, error) {
	active, ok, err := s.store.Load(ctx, activeKey)
	if err != nil {
		return State{}, fmt.Errorf("load active scenario: %w", err)
	}

	scenario := models.ScenarioType(active)
	if !ok || !scenario.Valid() {
		return State{Inputs: models.ScenarioDefaults[models.ScenarioNovilha]}, nil
	}

	inputs, found, err := s.loadInputs(ctx, scenario)
	if err != nil {
		return State{}, err
	}
	if !found {
		inputs = models.ScenarioDefaults[scenario]
	}

	return State{Active: scenario, Inputs: inputs}, nil
}

// Activate selects a preset and returns its saved inputs, or the preset defaults when the farmer
// never edited it.
func (s *Service) Activate(ctx context.Context, scenario models.ScenarioType) (State, error) {
	if !scenario.Valid() {
		return State{}, fmt.Errorf("%w: %s", ErrUnknownScenario, scenario)
	}

	inputs, found, err := s.loadInputs(ctx, scenario)
	if err != nil {
		return State{}, err
	}
	if !found {
		inputs = models.ScenarioDefaults[scenario]
	}

	if err := s.store.Save(ctx, activeKey, string(scenario)); err != nil {
		return State{}, fmt.Errorf("save active scenario: %w", err)
	}

	return State{Active: scenario, Inputs: inputs}, nil
}

// Update saves the inputs typed for a preset and marks it active.
func (s *Service) Update(ctx context.Context, scenario models.ScenarioType, inputs models.RawInputs) (State, error) {
	if !scenario.Valid() {
		return State{}, fmt.Errorf("%w: %s", ErrUnknownScenario, scenario)
	}

	payload, err := json.Marshal(inputs)
	if err != nil {
		return State{}, fmt.Errorf("encode scenario inputs: %w", err)
	}

	if err := s.store.Save(ctx, activeKey, string(scenario)); err != nil {
		return State{}, fmt.Errorf("save active scenario: %w", err)
	}
	if err := s.store.Save(ctx, dataKeyPrefix+string(scenario), string(payload)); err != nil {
		return State{}, fmt.Errorf("save scenario inputs: %w", err)
	}

	s.logger.Debug("scenario updated", zap.String("scenario", string(scenario)))
	return State{Active: scenario, Inputs: inputs}, nil
}

// Clear forgets the active scenario and returns an empty form. Saved inputs per preset are kept.
func (s *Service) Clear(ctx context.Context) (State, error) {
	if err := s.store.Delete(ctx, activeKey); err != nil {
		return State{}, fmt.Errorf("clear active scenario: %w", err)
	}
	return State{}, nil
}

// Inputs returns the saved inputs for a preset, or its defaults.
func (s *Service) Inputs(ctx context.Context, scenario models.ScenarioType) (models.RawInputs, error) {
	if !scenario.Valid() {
		return models.RawInputs{}, fmt.Errorf("%w: %s", ErrUnknownScenario, scenario)
	}

	inputs, found, err := s.loadInputs(ctx, scenario)
	if err != nil {
		return models.RawInputs{}, err
	}
	if !found {
		return models.ScenarioDefaults[scenario], nil
	}
	return inputs, nil
}

func (s *Service) loadInputs(ctx context.Context, scenario models.ScenarioType) (models.RawInputs, bool, error) {
	raw, ok, err := s.store.Load(ctx, dataKeyPrefix+string(scenario))
	if err != nil {
		return models.RawInputs{}, false, fmt.Errorf("load scenario %s: %w", scenario, err)
	}
	if !ok {
		return models.RawInputs{}, false, nil
	}

	var inputs models.RawInputs
	if err := json.Unmarshal([]byte(raw), &inputs); err != nil {
		// A corrupt entry should not lock the farmer out of the preset.
		s.logger.Warn("discarding unreadable scenario data", zap.String("scenario", string(scenario)), zap.Error(err))
		return models.RawInputs{}, false, nil
	}
	return inputs, true, nil
}
