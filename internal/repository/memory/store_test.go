package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/feedlot/internal/domain/models"
)

func TestStore_LoadSaveDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, ok, err := s.Load(ctx, "lastActiveScenario")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, "lastActiveScenario", "boi_magro"))
	value, ok, err := s.Load(ctx, "lastActiveScenario")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "boi_magro", value)

	require.NoError(t, s.Delete(ctx, "lastActiveScenario"))
	require.NoError(t, s.Delete(ctx, "lastActiveScenario"))
	_, ok, _ = s.Load(ctx, "lastActiveScenario")
	assert.False(t, ok)
}

func TestStore_ListSimulationsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.SaveSimulation(ctx, models.SimulationRecord{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Hour)}))
	}

	records, err := s.ListSimulations(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "c", records[0].ID)
	assert.Equal(t, "b", records[1].ID)

	all, err := s.ListSimulations(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
