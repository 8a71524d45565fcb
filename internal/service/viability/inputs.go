package viability

import (
	"math"
	"strconv"
	"strings"

	"github.com/mamadbah2/feedlot/internal/domain/models"
)

// DefaultCarcassYieldPct applies when the yield field is empty or unusable.
const DefaultCarcassYieldPct = 50.0

// Normalize converts the raw form into numbers. Empty, unparseable or non-finite fields become
// 0. Carcass yield becomes DefaultCarcassYieldPct instead, and so does an explicit 0 yield.
// Out-of-range percentages are kept as typed.
func Normalize(raw models.RawInputs) models.Inputs {
	yield := parseOr(raw.CarcassYieldPct, 0)
	if yield == 0 {
		yield = DefaultCarcassYieldPct
	}

	return models.Inputs{
		BasePrice:       parseOr(raw.BasePrice, 0),
		InitialWeight:   parseOr(raw.InitialWeight, 0),
		CommissionPct:   parseOr(raw.CommissionPct, 0),
		Freight:         parseOr(raw.Freight, 0),
		ProcedureFee:    parseOr(raw.ProcedureFee, 0),
		DailyCost:       parseOr(raw.DailyCost, 0),
		DailyGain:       parseOr(raw.DailyGain, 0),
		CarcassYieldPct: yield,
		SaleUnitPrice:   parseOr(raw.SaleUnitPrice, 0),
	}
}

func parseOr(value models.NumericText, fallback float64) float64 {
	str := strings.TrimSpace(string(value))
	if str == "" {
		return fallback
	}

	v, err := strconv.ParseFloat(str, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// finite collapses NaN and infinities to 0 for callers that build Inputs directly.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func sanitize(in models.Inputs) models.Inputs {
	return models.Inputs{
		BasePrice:       finite(in.BasePrice),
		InitialWeight:   finite(in.InitialWeight),
		CommissionPct:   finite(in.CommissionPct),
		Freight:         finite(in.Freight),
		ProcedureFee:    finite(in.ProcedureFee),
		DailyCost:       finite(in.DailyCost),
		DailyGain:       finite(in.DailyGain),
		CarcassYieldPct: finite(in.CarcassYieldPct),
		SaleUnitPrice:   finite(in.SaleUnitPrice),
	}
}
