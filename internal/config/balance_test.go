package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsSane(t *testing.T) {
	b := Default()

	assert.Greater(t, b.TickMinutes, 0.0)
	assert.Greater(t, b.ClosingHour, b.OpeningHour)
	assert.Greater(t, b.EatingTicks, 0)
	assert.Greater(t, b.LeavingTicks, 0)
	assert.Greater(t, b.BaseSeats, 0)
	assert.Greater(t, b.FinanceHistoryDays, 0)
	assert.GreaterOrEqual(t, b.EventTriggerChance, 0.0)
	assert.LessOrEqual(t, b.EventTriggerChance, 1.0)
	// Waiting for a seat is the most punishing status.
	assert.Greater(t, b.DecayWaitingSeat, b.DecayWaitingOrder)
	assert.Greater(t, b.DecayWaitingOrder, b.DecaySeated)
}

func TestRelaxedIsEasier(t *testing.T) {
	d, r := Default(), Relaxed()

	assert.Less(t, r.DecayWaitingSeat, d.DecayWaitingSeat)
	assert.Less(t, r.RentPerLevel, d.RentPerLevel)
	assert.Less(t, r.WageBase, d.WageBase)
	assert.Greater(t, r.EventPositiveShare, d.EventPositiveShare)
}

func TestLoadBalanceLayersOverDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balance.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_minutes: 10\nbase_seats: 20\n"), 0o644))

	b, err := LoadBalance(path)
	require.NoError(t, err)

	assert.Equal(t, 10.0, b.TickMinutes)
	assert.Equal(t, 20, b.BaseSeats)
	// Everything unspecified keeps its default.
	assert.Equal(t, Default().ClosingHour, b.ClosingHour)
	assert.Equal(t, Default().WageBase, b.WageBase)
}

func TestLoadBalanceMissingFile(t *testing.T) {
	b, err := LoadBalance(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
	// A failed load still hands back usable defaults.
	assert.Equal(t, Default(), b)
}

func TestLoadBalanceBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balance.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_minutes: [nope"), 0o644))

	_, err := LoadBalance(path)
	assert.Error(t, err)
}

func TestLoadEnvDefaults(t *testing.T) {
	// Empty values read as unset.
	for _, key := range []string{"CAFESIM_DB", "CAFESIM_API_PORT", "CAFESIM_SEED", "CAFESIM_SPEED", "CAFESIM_TICK_INTERVAL"} {
		t.Setenv(key, "")
	}

	e := LoadEnv()
	assert.Equal(t, "data/cafesim.db", e.DBPath)
	assert.Equal(t, 8080, e.APIPort)
	assert.Equal(t, int64(42), e.Seed)
	assert.Equal(t, 1.0, e.GameSpeed)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CAFESIM_API_PORT", "9999")
	t.Setenv("CAFESIM_SEED", "7")
	t.Setenv("CAFESIM_SPEED", "2.5")
	t.Setenv("CAFESIM_TICK_INTERVAL", "250ms")

	e := LoadEnv()
	assert.Equal(t, 9999, e.APIPort)
	assert.Equal(t, int64(7), e.Seed)
	assert.Equal(t, 2.5, e.GameSpeed)
	assert.Equal(t, "250ms", e.TickInterval.String())
}
