// Package staff provides the maid data model: stats, efficiency scoring,
// stamina/mood dynamics, leveling, and role bonuses.
package staff

import (
	"github.com/ayameworks/cafesim/internal/config"
	"github.com/ayameworks/cafesim/internal/customer"
)

// Role is a maid's job specialization.
type Role uint8

const (
	RoleGreeter Role = iota
	RoleServer
	RoleBarista
	RoleEntertainer
)

// RoleName returns a human-readable role name.
func RoleName(r Role) string {
	switch r {
	case RoleGreeter:
		return "greeter"
	case RoleServer:
		return "server"
	case RoleBarista:
		return "barista"
	case RoleEntertainer:
		return "entertainer"
	default:
		return "unknown"
	}
}

// Stats holds a maid's core attributes, each in [1, 100].
type Stats struct {
	Charm   float64 `json:"charm"`
	Skill   float64 `json:"skill"`
	Stamina float64 `json:"stamina"` // Base attribute, not the current pool
	Speed   float64 `json:"speed"`
}

// Maid is one member of staff.
type Maid struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Stats      Stats   `json:"stats"`
	Level      int     `json:"level"`
	Experience float64 `json:"experience"`
	Role       Role    `json:"role"`

	Mood    float64 `json:"mood"`    // 0–100
	Stamina float64 `json:"stamina"` // 0–100 current pool

	IsWorking        bool   `json:"is_working"`
	IsResting        bool   `json:"is_resting"`
	ServingCustomerID string `json:"serving_customer_id,omitempty"`
}

// Efficiency is the derived performance score used to rank staff for
// assignment and to scale rewards:
//
//	(charm+skill+speed)/3 × moodModifier × staminaMultiplier
//
// moodModifier ranges [0.5, 1.0]; the stamina multiplier halves output when
// the maid is nearly spent.
func (m *Maid) Efficiency() float64 {
	base := (m.Stats.Charm + m.Stats.Skill + m.Stats.Speed) / 3
	moodMod := 0.5 + m.Mood/200
	staminaMul := 1.0
	if m.Stamina < 20 {
		staminaMul = 0.5
	}
	return base * moodMod * staminaMul
}

// ServiceStaminaMultiplier scales service-progress accrual. A tired maid
// works noticeably slower.
func (m *Maid) ServiceStaminaMultiplier() float64 {
	if m.Stamina < 50 {
		return 0.7
	}
	return 1.0
}

// Eligible reports whether the maid can be assigned a new customer.
func (m *Maid) Eligible(b config.Balance) bool {
	return !m.IsResting && !m.IsWorking && m.ServingCustomerID == "" && m.Stamina >= b.AssignMinStamina
}

// ExperienceRequired returns the experience needed to advance past a level.
func ExperienceRequired(level int) float64 {
	return float64(level) * 100
}

// GainExperience adds experience and applies any level-ups, including
// multi-level jumps from one large grant. Each level adds to every stat.
// Returns the number of levels gained.
func (m *Maid) GainExperience(amount float64, b config.Balance) int {
	m.Experience += amount
	gained := 0
	for m.Level < b.LevelCap && m.Experience >= ExperienceRequired(m.Level) {
		m.Experience -= ExperienceRequired(m.Level)
		m.Level++
		gained++
		m.Stats.Charm = clampStat(m.Stats.Charm + b.StatGainPerLevel)
		m.Stats.Skill = clampStat(m.Stats.Skill + b.StatGainPerLevel)
		m.Stats.Stamina = clampStat(m.Stats.Stamina + b.StatGainPerLevel)
		m.Stats.Speed = clampStat(m.Stats.Speed + b.StatGainPerLevel)
	}
	return gained
}

func clampStat(v float64) float64 {
	if v > 100 {
		return 100
	}
	if v < 1 {
		return 1
	}
	return v
}

// RoleBonus returns the multiplicative reward/efficiency bonus for a role
// serving a customer type. Matches favor the pairings a specialization was
// hired for.
func RoleBonus(r Role, t customer.Type) float64 {
	switch r {
	case RoleGreeter:
		if t == customer.TypeVIP {
			return 1.15
		}
		if t == customer.TypeGroup {
			return 1.05
		}
	case RoleServer:
		if t == customer.TypeRegular || t == customer.TypeGroup {
			return 1.10
		}
	case RoleBarista:
		if t == customer.TypeRegular {
			return 1.05
		}
		if t == customer.TypeCritic {
			return 1.10
		}
	case RoleEntertainer:
		if t == customer.TypeCritic {
			return 1.15
		}
		if t == customer.TypeVIP {
			return 1.10
		}
	}
	return 1.0
}

// WorkState classifies what the maid is doing this tick for stamina/mood
// bookkeeping.
type WorkState uint8

const (
	StateIdle WorkState = iota
	StateWorking
	StateResting
)

// CurrentState derives the maid's work state from its flags.
func (m *Maid) CurrentState() WorkState {
	switch {
	case m.IsResting:
		return StateResting
	case m.IsWorking:
		return StateWorking
	default:
		return StateIdle
	}
}

// Recover applies per-minute stamina/mood decay or recovery for the given
// number of virtual minutes, clamped to [0, 100].
func (m *Maid) Recover(minutes float64, b config.Balance) {
	switch m.CurrentState() {
	case StateResting:
		m.Stamina += b.RestStaminaGain * minutes
		m.Mood += b.RestMoodGain * minutes
	case StateWorking:
		m.Stamina -= b.WorkStaminaDrain * minutes
		m.Mood -= b.WorkMoodDrain * minutes
	default:
		m.Stamina += b.IdleStaminaGain * minutes
		m.Mood += b.IdleMoodGain * minutes
	}
	m.Stamina = clampScale(m.Stamina)
	m.Mood = clampScale(m.Mood)
}

func clampScale(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Wage returns the maid's daily wage.
func (m *Maid) Wage(b config.Balance) int {
	return b.WageBase + m.Level*b.WagePerLevel
}
