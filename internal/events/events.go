// Package events provides the random/seasonal event-effect model: trigger
// rolls, additive and multiplicative modifiers, and duration-based expiry.
package events

import (
	"fmt"
	"strings"

	"github.com/ayameworks/cafesim/internal/config"
	"github.com/ayameworks/cafesim/internal/menu"
	"github.com/ayameworks/cafesim/internal/rng"
)

// Target names the quantity an event modifies.
type Target uint8

const (
	TargetRevenue Target = iota
	TargetSpawnRate
	TargetSatisfaction
	TargetReputation
	TargetGold
)

// Kind distinguishes how an effect applies. Additive effects hit their target
// once, at trigger time; multiplicative effects stay in the active set and
// are read on demand by other subsystems. Never both for one event.
type Kind uint8

const (
	KindAdditive Kind = iota
	KindMultiplicative
)

// Event is one triggered modifier.
type Event struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Seasonal    bool    `json:"seasonal"`
	Positive    bool    `json:"positive"`
	Target      Target  `json:"target"`
	Kind        Kind    `json:"kind"`
	Amount      float64 `json:"amount"`       // Additive delta or multiplier
	StartMinute float64 `json:"start_minute"` // Minute-of-day when triggered
	Duration    float64 `json:"duration"`     // Virtual minutes; 0 = instant
}

// Expired reports whether the event has run out at the given minute-of-day.
// Instant (additive) events expire immediately after application.
func (e *Event) Expired(dayMinute float64) bool {
	if e.Kind == KindAdditive {
		return true
	}
	return dayMinute-e.StartMinute >= e.Duration
}

// template is a catalog entry an event is stamped from.
type template struct {
	name        string
	description string
	positive    bool
	target      Target
	kind        Kind
	amount      float64
	duration    float64
	season      menu.Season // Seasonal templates only
}

var genericTemplates = []template{
	{name: "Food Blogger Visit", description: "A popular blogger posts about the cafe.", positive: true, target: TargetSpawnRate, kind: KindMultiplicative, amount: 1.5, duration: 180},
	{name: "Tour Bus Stop", description: "A tour bus unloads outside.", positive: true, target: TargetSpawnRate, kind: KindMultiplicative, amount: 1.8, duration: 90},
	{name: "Generous Patron", description: "A patron leaves an outsized donation.", positive: true, target: TargetGold, kind: KindAdditive, amount: 300},
	{name: "Happy Hour Buzz", description: "Word of a promotion spreads.", positive: true, target: TargetRevenue, kind: KindMultiplicative, amount: 1.25, duration: 120},
	{name: "Kitchen Mishap", description: "A batch of orders is ruined.", positive: false, target: TargetGold, kind: KindAdditive, amount: -150},
	{name: "Rainy Spell", description: "Foot traffic thins in the rain.", positive: false, target: TargetSpawnRate, kind: KindMultiplicative, amount: 0.6, duration: 240},
	{name: "Rude Review", description: "A harsh review circulates.", positive: false, target: TargetReputation, kind: KindAdditive, amount: -4},
	{name: "Noisy Construction", description: "Street works sour the atmosphere.", positive: false, target: TargetSatisfaction, kind: KindMultiplicative, amount: 0.85, duration: 300},
}

var seasonalTemplates = []template{
	{name: "Cherry Blossom Crowds", description: "Hanami picnickers flood the district.", positive: true, target: TargetSpawnRate, kind: KindMultiplicative, amount: 1.6, duration: 240, season: menu.SeasonSpring},
	{name: "Hay Fever Season", description: "Sneezing customers cut visits short.", positive: false, target: TargetSatisfaction, kind: KindMultiplicative, amount: 0.9, duration: 300, season: menu.SeasonSpring},
	{name: "Summer Festival", description: "The street festival brings yukata crowds.", positive: true, target: TargetRevenue, kind: KindMultiplicative, amount: 1.4, duration: 180, season: menu.SeasonSummer},
	{name: "Heat Wave", description: "Sweltering heat keeps people home.", positive: false, target: TargetSpawnRate, kind: KindMultiplicative, amount: 0.7, duration: 240, season: menu.SeasonSummer},
	{name: "Autumn Tasting Fair", description: "Seasonal menus draw food lovers.", positive: true, target: TargetSpawnRate, kind: KindMultiplicative, amount: 1.4, duration: 200, season: menu.SeasonAutumn},
	{name: "Typhoon Warning", description: "Shoppers hurry home early.", positive: false, target: TargetSpawnRate, kind: KindMultiplicative, amount: 0.5, duration: 300, season: menu.SeasonAutumn},
	{name: "Christmas Lights", description: "Illumination strollers stop in to warm up.", positive: true, target: TargetSpawnRate, kind: KindMultiplicative, amount: 1.5, duration: 240, season: menu.SeasonWinter},
	{name: "Snowed-In Streets", description: "Heavy snow buries the storefront.", positive: false, target: TargetSpawnRate, kind: KindMultiplicative, amount: 0.55, duration: 300, season: menu.SeasonWinter},
}

// Roll decides whether an event triggers this pass: a base chance roll, then
// seasonal-vs-generic, then positive-vs-negative weighting. Returns nil when
// nothing triggers. Event IDs derive from the day so equal-seed runs agree.
func Roll(b config.Balance, season menu.Season, day int, dayMinute float64, p rng.Provider) *Event {
	if p.Float64() >= b.EventTriggerChance {
		return nil
	}

	var pool []template
	seasonal := false
	if p.Float64() < b.EventSeasonalShare {
		for _, t := range seasonalTemplates {
			if t.season == season {
				pool = append(pool, t)
			}
		}
		seasonal = len(pool) > 0
	}
	if len(pool) == 0 {
		pool = genericTemplates
	}

	wantPositive := p.Float64() < b.EventPositiveShare
	candidates := make([]template, 0, len(pool))
	for _, t := range pool {
		if t.positive == wantPositive {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		candidates = pool
	}

	t := candidates[p.IntN(len(candidates))]
	return &Event{
		ID:          fmt.Sprintf("evt-%d-%s", day, slug(t.name)),
		Name:        t.name,
		Description: t.description,
		Seasonal:    seasonal,
		Positive:    t.positive,
		Target:      t.target,
		Kind:        t.kind,
		Amount:      t.amount,
		StartMinute: dayMinute,
		Duration:    t.duration,
	}
}

func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// Multiplier folds the active multiplicative events for a target into one
// factor. Additive events never contribute here.
func Multiplier(active []Event, target Target) float64 {
	m := 1.0
	for i := range active {
		e := &active[i]
		if e.Kind == KindMultiplicative && e.Target == target {
			m *= e.Amount
		}
	}
	return m
}
