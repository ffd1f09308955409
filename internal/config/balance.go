// Package config holds gameplay balance knobs and runtime environment settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Balance holds every tuning constant the simulation consults. The tick
// orchestrator and the lifecycle systems read these instead of hard-coded
// literals so scenarios and difficulty variants stay data-driven.
type Balance struct {
	// Clock
	TickMinutes     float64 `yaml:"tick_minutes" json:"tick_minutes"`           // Virtual minutes per tick
	MaxCatchUpTicks int     `yaml:"max_catch_up_ticks" json:"max_catch_up_ticks"` // Cap on ticks replayed after a stall
	OpeningHour     int     `yaml:"opening_hour" json:"opening_hour"`
	ClosingHour     int     `yaml:"closing_hour" json:"closing_hour"`

	// Customer spawning
	SpawnCapPerTick      int     `yaml:"spawn_cap_per_tick" json:"spawn_cap_per_tick"`
	SpawnIntervalMinutes float64 `yaml:"spawn_interval_minutes" json:"spawn_interval_minutes"`

	// Dwell timers (ticks spent in each terminal-ish status)
	EatingTicks  int `yaml:"eating_ticks" json:"eating_ticks"`
	PayingTicks  int `yaml:"paying_ticks" json:"paying_ticks"`
	LeavingTicks int `yaml:"leaving_ticks" json:"leaving_ticks"`

	// Patience decay per virtual minute, by status. Statuses not listed
	// (eating, paying, leaving) never decay.
	DecayWaitingSeat  float64 `yaml:"decay_waiting_seat" json:"decay_waiting_seat"`
	DecayWaitingOrder float64 `yaml:"decay_waiting_order" json:"decay_waiting_order"`
	DecayOrdering     float64 `yaml:"decay_ordering" json:"decay_ordering"`
	DecaySeated       float64 `yaml:"decay_seated" json:"decay_seated"`

	// Staff stamina/mood per virtual minute
	RestStaminaGain  float64 `yaml:"rest_stamina_gain" json:"rest_stamina_gain"`
	RestMoodGain     float64 `yaml:"rest_mood_gain" json:"rest_mood_gain"`
	WorkStaminaDrain float64 `yaml:"work_stamina_drain" json:"work_stamina_drain"`
	WorkMoodDrain    float64 `yaml:"work_mood_drain" json:"work_mood_drain"`
	IdleStaminaGain  float64 `yaml:"idle_stamina_gain" json:"idle_stamina_gain"`
	IdleMoodGain     float64 `yaml:"idle_mood_gain" json:"idle_mood_gain"`

	// Staff thresholds and caps
	AssignMinStamina   float64 `yaml:"assign_min_stamina" json:"assign_min_stamina"`
	RestReturnStamina  float64 `yaml:"rest_return_stamina" json:"rest_return_stamina"`
	LevelCap           int     `yaml:"level_cap" json:"level_cap"`
	StatGainPerLevel   float64 `yaml:"stat_gain_per_level" json:"stat_gain_per_level"`
	HardMaxStaff       int     `yaml:"hard_max_staff" json:"hard_max_staff"`

	// Facility
	BaseSeats      int `yaml:"base_seats" json:"base_seats"`
	SeatsPerLevel  int `yaml:"seats_per_level" json:"seats_per_level"`
	MaxCafeLevel   int `yaml:"max_cafe_level" json:"max_cafe_level"`
	UpgradeCostPer int `yaml:"upgrade_cost_per_level" json:"upgrade_cost_per_level"` // cost = level × this

	// Operating costs (per day)
	RentPerLevel     int `yaml:"rent_per_level" json:"rent_per_level"`
	UtilitiesPerSeat int `yaml:"utilities_per_seat" json:"utilities_per_seat"`
	WageBase         int `yaml:"wage_base" json:"wage_base"`
	WagePerLevel     int `yaml:"wage_per_level" json:"wage_per_level"`
	MaintenancePer   int `yaml:"maintenance_per_equip_level" json:"maintenance_per_equip_level"`

	// Events
	EventTriggerChance float64 `yaml:"event_trigger_chance" json:"event_trigger_chance"`
	EventSeasonalShare float64 `yaml:"event_seasonal_share" json:"event_seasonal_share"`
	EventPositiveShare float64 `yaml:"event_positive_share" json:"event_positive_share"`

	// History retention
	FinanceHistoryDays int `yaml:"finance_history_days" json:"finance_history_days"`
}

// Default returns the baseline balance configuration.
func Default() Balance {
	return Balance{
		TickMinutes:     5,
		MaxCatchUpTicks: 5,
		OpeningHour:     9,
		ClosingHour:     22,

		SpawnCapPerTick:      2,
		SpawnIntervalMinutes: 10,

		EatingTicks:  3,
		PayingTicks:  2,
		LeavingTicks: 1,

		DecayWaitingSeat:  2.0,
		DecayWaitingOrder: 1.2,
		DecayOrdering:     0.6,
		DecaySeated:       0.6,

		RestStaminaGain:  2.0,
		RestMoodGain:     1.0,
		WorkStaminaDrain: 0.5,
		WorkMoodDrain:    0.2,
		IdleStaminaGain:  0.5,
		IdleMoodGain:     0.5,

		AssignMinStamina:  10,
		RestReturnStamina: 80,
		LevelCap:          50,
		StatGainPerLevel:  2,
		HardMaxStaff:      12,

		BaseSeats:      8,
		SeatsPerLevel:  4,
		MaxCafeLevel:   10,
		UpgradeCostPer: 5000,

		RentPerLevel:     100,
		UtilitiesPerSeat: 5,
		WageBase:         50,
		WagePerLevel:     10,
		MaintenancePer:   20,

		EventTriggerChance: 0.3,
		EventSeasonalShare: 0.5,
		EventPositiveShare: 0.6,

		FinanceHistoryDays: 7,
	}
}

// Relaxed returns an easier variant for new players: slower patience decay,
// cheaper upkeep.
func Relaxed() Balance {
	b := Default()
	b.DecayWaitingSeat = 1.4
	b.DecayWaitingOrder = 0.9
	b.RentPerLevel = 60
	b.WageBase = 40
	b.EventPositiveShare = 0.75
	return b
}

// LoadBalance reads a YAML balance file layered over Default. Missing keys
// keep their default values.
func LoadBalance(path string) (Balance, error) {
	b := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return b, fmt.Errorf("read balance file: %w", err)
	}
	if err := yaml.Unmarshal(data, &b); err != nil {
		return b, fmt.Errorf("parse balance file: %w", err)
	}
	return b, nil
}
