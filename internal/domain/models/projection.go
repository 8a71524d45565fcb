package models

import "time"

// AcquisitionSummary is the purchase-side cost breakdown.
type AcquisitionSummary struct {
	GrossWeightUnits       float64 `json:"gross_weight_units" bson:"gross_weight_units"`
	BasePricePerUnit       float64 `json:"base_price_per_unit" bson:"base_price_per_unit"`
	TotalAcquisitionCost   float64 `json:"total_acquisition_cost" bson:"total_acquisition_cost"`
	CostPerUnitAcquisition float64 `json:"cost_per_unit_acquisition" bson:"cost_per_unit_acquisition"`
	CostPerKgAcquisition   float64 `json:"cost_per_kg_acquisition" bson:"cost_per_kg_acquisition"`
}

// ProjectionPoint is the outcome of holding the animal for Days days.
type ProjectionPoint struct {
	Days                int     `json:"days" bson:"days"`
	FinalWeight         float64 `json:"final_weight" bson:"final_weight"`
	NetMeatUnits        float64 `json:"net_meat_units" bson:"net_meat_units"`
	CostPerUnitProduced float64 `json:"cost_per_unit_produced" bson:"cost_per_unit_produced"`
	TotalPeriodCost     float64 `json:"total_period_cost" bson:"total_period_cost"`
	Revenue             float64 `json:"revenue" bson:"revenue"`
	ProfitLoss          float64 `json:"profit_loss" bson:"profit_loss"`
	MonthlyReturnPct    float64 `json:"monthly_return_pct" bson:"monthly_return_pct"`
}

// Result bundles everything computed for one set of inputs.
type Result struct {
	Acquisition    AcquisitionSummary `json:"acquisition" bson:"acquisition"`
	Projections    []ProjectionPoint  `json:"projections" bson:"projections"`
	BestProjection ProjectionPoint    `json:"best_projection" bson:"best_projection"`
}

// SummaryInput is the compact tuple handed to the AI advisor.
type SummaryInput struct {
	BestDays            int         `json:"best_days"`
	ProfitLoss          float64     `json:"profit_loss"`
	MonthlyReturnPct    float64     `json:"monthly_return_pct"`
	CostPerUnitProduced float64     `json:"cost_per_unit_produced"`
	BasePrice           NumericText `json:"base_price"`
	InitialWeight       NumericText `json:"initial_weight"`
	DailyGain           NumericText `json:"daily_gain"`
}

// SimulationRecord is a stored simulation run.
type SimulationRecord struct {
	ID        string       `bson:"_id" json:"id"`
	Scenario  ScenarioType `bson:"scenario,omitempty" json:"scenario,omitempty"`
	Inputs    RawInputs    `bson:"inputs" json:"inputs"`
	Result    Result       `bson:"result" json:"result"`
	CreatedAt time.Time    `bson:"created_at" json:"created_at"`
}
