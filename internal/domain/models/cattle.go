package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ScenarioType identifies one of the preset animal categories.
type ScenarioType string

const (
	ScenarioNovilha   ScenarioType = "novilha"
	ScenarioBoiMagro  ScenarioType = "boi_magro"
	ScenarioVacaMagra ScenarioType = "vaca_magra"
)

// ScenarioTypes lists the presets in display order.
var ScenarioTypes = []ScenarioType{ScenarioNovilha, ScenarioBoiMagro, ScenarioVacaMagra}

// Valid reports whether the scenario is one of the known presets.
func (s ScenarioType) Valid() bool {
	_, ok := ScenarioDefaults[s]
	return ok
}

// NumericText holds a user-typed number. It decodes from either a JSON string or a JSON number
// so form payloads and API clients can both send it.
type NumericText string

// UnmarshalJSON accepts "12.5", 12.5 and null.
func (n *NumericText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericText(s)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("numeric field: %w", err)
	}
	*n = NumericText(num.String())
	return nil
}

// RawInputs is the form as entered by the farmer, before normalization.
type RawInputs struct {
	BasePrice       NumericText `json:"base_price" bson:"base_price"`
	InitialWeight   NumericText `json:"initial_weight" bson:"initial_weight"`
	CommissionPct   NumericText `json:"commission_pct" bson:"commission_pct"`
	Freight         NumericText `json:"freight" bson:"freight"`
	ProcedureFee    NumericText `json:"procedure_fee" bson:"procedure_fee"`
	DailyCost       NumericText `json:"daily_cost" bson:"daily_cost"`
	DailyGain       NumericText `json:"daily_gain" bson:"daily_gain"`
	CarcassYieldPct NumericText `json:"carcass_yield_pct" bson:"carcass_yield_pct"`
	SaleUnitPrice   NumericText `json:"sale_unit_price" bson:"sale_unit_price"`
}

// Inputs is the normalized numeric form consumed by the viability engine.
type Inputs struct {
	BasePrice       float64 `json:"base_price"`
	InitialWeight   float64 `json:"initial_weight"`
	CommissionPct   float64 `json:"commission_pct"`
	Freight         float64 `json:"freight"`
	ProcedureFee    float64 `json:"procedure_fee"`
	DailyCost       float64 `json:"daily_cost"`
	DailyGain       float64 `json:"daily_gain"`
	CarcassYieldPct float64 `json:"carcass_yield_pct"`
	SaleUnitPrice   float64 `json:"sale_unit_price"`
}

// ScenarioDefaults holds the preset form values for each animal category. The purchase price is
// left empty on purpose, the farmer always types it.
var ScenarioDefaults = map[ScenarioType]RawInputs{
	ScenarioNovilha: {
		InitialWeight:   "300",
		DailyGain:       "0.5",
		SaleUnitPrice:   "280",
		DailyCost:       "2.5",
		CommissionPct:   "3",
		Freight:         "65",
		ProcedureFee:    "0",
		CarcassYieldPct: "50",
	},
	ScenarioBoiMagro: {
		InitialWeight:   "390",
		DailyGain:       "0.5",
		SaleUnitPrice:   "290",
		DailyCost:       "2.5",
		CommissionPct:   "3",
		Freight:         "65",
		ProcedureFee:    "50",
		CarcassYieldPct: "54",
	},
	ScenarioVacaMagra: {
		InitialWeight:   "330",
		DailyGain:       "0.5",
		SaleUnitPrice:   "280",
		DailyCost:       "2.5",
		CommissionPct:   "3",
		Freight:         "65",
		ProcedureFee:    "0",
		CarcassYieldPct: "47",
	},
}
