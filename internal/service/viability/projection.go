package viability

import "github.com/mamadbah2/feedlot/internal/domain/models"

// DefaultPeriods returns the holding periods, in days, that every simulation sweeps.
func DefaultPeriods() []int {
	return []int{60, 90, 120, 150, 180, 210, 240, 270, 300, 330, 360}
}

// ProjectPeriods projects each holding period in order and picks the one with the highest
// monthly return. Ties keep the earlier period. An empty period list yields no projections and
// a zero best projection.
func ProjectPeriods(in models.Inputs, acq models.AcquisitionSummary, periods []int) ([]models.ProjectionPoint, models.ProjectionPoint) {
	in = sanitize(in)

	projections := make([]models.ProjectionPoint, 0, len(periods))
	var best models.ProjectionPoint

	for i, days := range periods {
		point := projectPeriod(in, acq.TotalAcquisitionCost, days)
		projections = append(projections, point)

		if i == 0 || point.MonthlyReturnPct > best.MonthlyReturnPct {
			best = point
		}
	}

	return projections, best
}

func projectPeriod(in models.Inputs, acquisitionCost float64, days int) models.ProjectionPoint {
	d := float64(days)
	months := d / 30
	yieldRatio := in.CarcassYieldPct / 100

	finalWeight := in.InitialWeight + in.DailyGain*d
	netMeatUnits := (finalWeight * yieldRatio) / KgPerCarcassUnit

	weightGained := finalWeight - in.InitialWeight
	unitsProduced := (weightGained * yieldRatio) / KgPerCarcassUnit

	maintenance := in.DailyCost * d
	totalCost := acquisitionCost + maintenance
	revenue := netMeatUnits * in.SaleUnitPrice
	profit := revenue - totalCost

	roi := safeDiv(profit, totalCost) * 100

	return models.ProjectionPoint{
		Days:                days,
		FinalWeight:         finite(finalWeight),
		NetMeatUnits:        finite(netMeatUnits),
		CostPerUnitProduced: safeDiv(maintenance, unitsProduced),
		TotalPeriodCost:     finite(totalCost),
		Revenue:             finite(revenue),
		ProfitLoss:          finite(profit),
		MonthlyReturnPct:    safeDiv(roi, months),
	}
}

// Evaluate runs the acquisition breakdown and the period sweep. A nil or empty periods slice
// falls back to DefaultPeriods.
func Evaluate(in models.Inputs, periods []int) models.Result {
	if len(periods) == 0 {
		periods = DefaultPeriods()
	}

	acq := ComputeAcquisition(in)
	projections, best := ProjectPeriods(in, acq, periods)

	return models.Result{
		Acquisition:    acq,
		Projections:    projections,
		BestProjection: best,
	}
}

// Summarize extracts what the advisor needs from a finished evaluation.
func Summarize(raw models.RawInputs, best models.ProjectionPoint) models.SummaryInput {
	return models.SummaryInput{
		BestDays:            best.Days,
		ProfitLoss:          best.ProfitLoss,
		MonthlyReturnPct:    best.MonthlyReturnPct,
		CostPerUnitProduced: best.CostPerUnitProduced,
		BasePrice:           raw.BasePrice,
		InitialWeight:       raw.InitialWeight,
		DailyGain:           raw.DailyGain,
	}
}
