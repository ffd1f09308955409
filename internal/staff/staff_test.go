package staff

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayameworks/cafesim/internal/config"
	"github.com/ayameworks/cafesim/internal/customer"
)

func baseMaid() Maid {
	return Maid{
		ID: "maid-test", Name: "Test",
		Stats: Stats{Charm: 60, Skill: 60, Stamina: 60, Speed: 60},
		Level: 1, Mood: 80, Stamina: 100,
	}
}

func TestEfficiencyDropsWhenDrained(t *testing.T) {
	fresh := baseMaid()
	tired := baseMaid()
	tired.Stamina = 15

	assert.Less(t, tired.Efficiency(), fresh.Efficiency())
	// Under the low-stamina threshold, output is exactly halved.
	assert.InDelta(t, fresh.Efficiency()/2, tired.Efficiency(), 0.001)

	grumpy := baseMaid()
	grumpy.Mood = 0
	assert.Less(t, grumpy.Efficiency(), fresh.Efficiency())
}

func TestServiceStaminaMultiplier(t *testing.T) {
	m := baseMaid()
	assert.Equal(t, 1.0, m.ServiceStaminaMultiplier())

	m.Stamina = 49
	assert.Equal(t, 0.7, m.ServiceStaminaMultiplier())
}

func TestEligible(t *testing.T) {
	b := config.Default()

	m := baseMaid()
	assert.True(t, m.Eligible(b))

	resting := baseMaid()
	resting.IsResting = true
	assert.False(t, resting.Eligible(b))

	busy := baseMaid()
	busy.IsWorking = true
	busy.ServingCustomerID = "cust-000001"
	assert.False(t, busy.Eligible(b))

	drained := baseMaid()
	drained.Stamina = b.AssignMinStamina - 1
	assert.False(t, drained.Eligible(b))
}

func TestGainExperienceMultiLevel(t *testing.T) {
	b := config.Default()
	m := baseMaid()

	// 350 xp from level 1: 100 to reach 2, 200 to reach 3, 50 left over.
	gained := m.GainExperience(350, b)

	assert.Equal(t, 2, gained)
	assert.Equal(t, 3, m.Level)
	assert.Equal(t, 50.0, m.Experience)
	// Every stat grew by two levels' worth.
	assert.Equal(t, 60+2*b.StatGainPerLevel, m.Stats.Charm)
	assert.Equal(t, 60+2*b.StatGainPerLevel, m.Stats.Speed)
}

func TestGainExperienceRespectsLevelCap(t *testing.T) {
	b := config.Default()
	m := baseMaid()
	m.Level = b.LevelCap

	gained := m.GainExperience(100000, b)

	assert.Zero(t, gained)
	assert.Equal(t, b.LevelCap, m.Level)
}

func TestStatClampAt100(t *testing.T) {
	b := config.Default()
	m := baseMaid()
	m.Stats = Stats{Charm: 99, Skill: 99, Stamina: 99, Speed: 99}

	m.GainExperience(100, b)

	assert.Equal(t, 100.0, m.Stats.Charm)
	assert.Equal(t, 100.0, m.Stats.Skill)
}

func TestRecoverClamps(t *testing.T) {
	b := config.Default()

	resting := baseMaid()
	resting.IsResting = true
	resting.Stamina = 99
	resting.Mood = 99
	resting.Recover(60, b)
	assert.Equal(t, 100.0, resting.Stamina)
	assert.Equal(t, 100.0, resting.Mood)

	working := baseMaid()
	working.IsWorking = true
	working.Stamina = 1
	working.Mood = 1
	working.Recover(60, b)
	assert.Equal(t, 0.0, working.Stamina)
	assert.Equal(t, 0.0, working.Mood)

	idle := baseMaid()
	idle.Stamina = 50
	idle.Recover(10, b)
	assert.Equal(t, 50+b.IdleStaminaGain*10, idle.Stamina)
}

func TestRoleBonus(t *testing.T) {
	cases := []struct {
		role Role
		typ  customer.Type
		want float64
	}{
		{RoleGreeter, customer.TypeVIP, 1.15},
		{RoleGreeter, customer.TypeCritic, 1.0},
		{RoleServer, customer.TypeRegular, 1.10},
		{RoleServer, customer.TypeGroup, 1.10},
		{RoleBarista, customer.TypeCritic, 1.10},
		{RoleEntertainer, customer.TypeCritic, 1.15},
		{RoleEntertainer, customer.TypeRegular, 1.0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RoleBonus(tc.role, tc.typ),
			"%s serving %s", RoleName(tc.role), customer.TypeName(tc.typ))
	}
}

func TestWage(t *testing.T) {
	b := config.Default()
	m := baseMaid()
	assert.Equal(t, b.WageBase+b.WagePerLevel, m.Wage(b))

	m.Level = 5
	assert.Equal(t, b.WageBase+5*b.WagePerLevel, m.Wage(b))
}
