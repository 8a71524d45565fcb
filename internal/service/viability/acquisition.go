package viability

import "github.com/mamadbah2/feedlot/internal/domain/models"

const (
	// KgPerGrossUnit is the live-weight arroba used on the purchase side.
	KgPerGrossUnit = 30.0
	// KgPerCarcassUnit is the carcass arroba used for yield and revenue.
	KgPerCarcassUnit = 15.0
)

// ComputeAcquisition breaks down what the animal cost to bring onto the farm.
func ComputeAcquisition(in models.Inputs) models.AcquisitionSummary {
	in = sanitize(in)

	var grossUnits float64
	if in.InitialWeight > 0 {
		grossUnits = in.InitialWeight / KgPerGrossUnit
	}

	total := finite(in.BasePrice + in.BasePrice*(in.CommissionPct/100) + in.Freight + in.ProcedureFee)

	return models.AcquisitionSummary{
		GrossWeightUnits:       grossUnits,
		BasePricePerUnit:       safeDiv(in.BasePrice, grossUnits),
		TotalAcquisitionCost:   total,
		CostPerUnitAcquisition: safeDiv(total, grossUnits),
		CostPerKgAcquisition:   safeDiv(total, in.InitialWeight),
	}
}

// safeDiv returns 0 unless the denominator is strictly positive.
func safeDiv(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return finite(num / den)
}
