package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawInputs_DecodesStringsAndNumbers(t *testing.T) {
	payload := `{"base_price":"1000","initial_weight":300,"daily_gain":0.5,"freight":null,"carcass_yield_pct":""}`

	var raw RawInputs
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	assert.Equal(t, NumericText("1000"), raw.BasePrice)
	assert.Equal(t, NumericText("300"), raw.InitialWeight)
	assert.Equal(t, NumericText("0.5"), raw.DailyGain)
	assert.Equal(t, NumericText(""), raw.Freight)
	assert.Equal(t, NumericText(""), raw.CarcassYieldPct)
}

func TestRawInputs_RejectsNonNumericJSON(t *testing.T) {
	var raw RawInputs
	err := json.Unmarshal([]byte(`{"base_price":true}`), &raw)
	assert.Error(t, err)
}

func TestScenarioType_Valid(t *testing.T) {
	for _, s := range ScenarioTypes {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, ScenarioType("bezerro").Valid())
}
