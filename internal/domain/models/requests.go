package models

// SimulationRequest is the body accepted by the simulation, analysis and export endpoints.
type SimulationRequest struct {
	RawInputs
	Scenario ScenarioType `json:"scenario,omitempty"`
	Label    string       `json:"label,omitempty"`
	Periods  []int        `json:"periods,omitempty" binding:"omitempty,max=64,dive,gt=0,lte=3650"`
}

// SimulationResponse is returned by POST /simulations.
type SimulationResponse struct {
	ID     string `json:"id"`
	Result Result `json:"result"`
}

// AnalysisResponse carries the advisor's commentary for the best period.
type AnalysisResponse struct {
	Analysis       string          `json:"analysis"`
	BestProjection ProjectionPoint `json:"best_projection"`
}
