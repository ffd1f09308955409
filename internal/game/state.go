// Package game provides the simulation core: the immutable state snapshot,
// the closed action set, and the pure reducer that advances the cafe one
// transition at a time.
package game

import (
	"github.com/ayameworks/cafesim/internal/config"
	"github.com/ayameworks/cafesim/internal/customer"
	"github.com/ayameworks/cafesim/internal/events"
	"github.com/ayameworks/cafesim/internal/finance"
	"github.com/ayameworks/cafesim/internal/menu"
	"github.com/ayameworks/cafesim/internal/progress"
	"github.com/ayameworks/cafesim/internal/staff"
)

// MinutesPerDay is the length of one in-game day.
const MinutesPerDay = 24 * 60

// DaysPerSeason controls the seasonal calendar.
const DaysPerSeason = 30

// Decoration is a purchasable cosmetic granting a flat satisfaction bonus.
type Decoration struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Cost              int     `json:"cost"`
	SatisfactionBonus float64 `json:"satisfaction_bonus"`
	Owned             bool    `json:"owned"`
}

// Equipment is upgradable gear granting a leveled efficiency bonus.
type Equipment struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
	MaxLevel int    `json:"max_level"`
}

// UpgradeCost returns the gold price of the next equipment level.
func (e *Equipment) UpgradeCost() int {
	return e.Level * 800
}

// Area is an unlockable section of the cafe.
type Area struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Cost int    `json:"cost"`
}

// AreaCatalog lists the unlockable areas.
var AreaCatalog = []Area{
	{ID: "terrace", Name: "Street Terrace", Cost: 2000},
	{ID: "vip_room", Name: "VIP Room", Cost: 5000},
	{ID: "stage", Name: "Performance Stage", Cost: 8000},
}

// Facility is the physical cafe: level, decorations, equipment, areas.
type Facility struct {
	CafeLevel     int          `json:"cafe_level"` // 1–10
	Decorations   []Decoration `json:"decorations"`
	Equipment     []Equipment  `json:"equipment"`
	UnlockedAreas []string     `json:"unlocked_areas"`
}

// DecorationBonus sums the flat satisfaction bonus of owned decorations.
func (f *Facility) DecorationBonus() float64 {
	total := 0.0
	for _, d := range f.Decorations {
		if d.Owned {
			total += d.SatisfactionBonus
		}
	}
	return total
}

// EquipmentLevels sums all equipment levels (drives maintenance cost and the
// service efficiency bonus).
func (f *Facility) EquipmentLevels() int {
	total := 0
	for _, e := range f.Equipment {
		total += e.Level
	}
	return total
}

// EquipmentEfficiency is the multiplicative service-speed bonus from gear.
func (f *Facility) EquipmentEfficiency() float64 {
	return 1 + 0.03*float64(f.EquipmentLevels()-len(f.Equipment))
}

// HasArea reports whether an area has been unlocked.
func (f *Facility) HasArea(id string) bool {
	for _, a := range f.UnlockedAreas {
		if a == id {
			return true
		}
	}
	return false
}

// Stats tracks cumulative gameplay statistics feeding achievements.
type Stats struct {
	CustomersServed   int `json:"customers_served"`
	CustomersLost     int `json:"customers_lost"`
	GoldEarned        int `json:"gold_earned"`
	TipsEarned        int `json:"tips_earned"`
	MaidsHired        int `json:"maids_hired"`
	MenuItemsUnlocked int `json:"menu_items_unlocked"`
	DaysPlayed        int `json:"days_played"`
	BestDayRevenue    int `json:"best_day_revenue"`
}

// Notification is the core's only UI-facing side channel. The presentation
// layer consumes and clears the list.
type Notification struct {
	Category string  `json:"category"`
	Message  string  `json:"message"`
	Day      int     `json:"day"`
	Minute   float64 `json:"minute"`
}

// Scratch is scheduler scratch state: logically part of the snapshot but not
// business data, and exempt from round-trip serialization guarantees.
type Scratch struct {
	SpawnAccumulator float64        `json:"-"`
	DwellTicks       map[string]int `json:"-"` // customer ID → remaining ticks
	ServeStreak      int            `json:"-"` // consecutive completions without a walkout
}

// State is one immutable snapshot of the whole game. Reducers never mutate a
// snapshot in place; each transition clones first.
type State struct {
	Day         int     `json:"day"`
	TimeMinutes float64 `json:"time_minutes"` // Minute of day
	Speed       float64 `json:"speed"`
	Paused      bool    `json:"paused"`
	Open        bool    `json:"open"` // Inside business hours

	Reputation float64 `json:"reputation"` // 0–100

	Customers    []customer.Customer    `json:"customers"`
	Maids        []staff.Maid           `json:"maids"`
	Facility     Facility               `json:"facility"`
	Finance      finance.Finance        `json:"finance"`
	Menu         []menu.Item            `json:"menu"`
	Tasks        []progress.Task        `json:"tasks"`
	Achievements []progress.Achievement `json:"achievements"`
	ActiveEvents []events.Event         `json:"active_events"`
	EventHistory []events.Event         `json:"event_history"`
	Stats        Stats                  `json:"stats"`

	Notifications  []Notification `json:"notifications"`
	PendingSummary bool           `json:"pending_summary"` // Daily summary presentation request

	Scratch Scratch `json:"-"`
}

// Season returns the current season from the day counter.
func (s *State) Season() menu.Season {
	return menu.Season((s.Day / DaysPerSeason) % 4)
}

// MaxSeats derives seating capacity from the cafe level.
func (s *State) MaxSeats(b config.Balance) int {
	return b.BaseSeats + (s.Facility.CafeLevel-1)*b.SeatsPerLevel
}

// MaxStaff derives staff capacity from the cafe level, capped at the hard
// maximum.
func (s *State) MaxStaff(b config.Balance) int {
	n := 2 + (s.Facility.CafeLevel - 1)
	if n > b.HardMaxStaff {
		n = b.HardMaxStaff
	}
	return n
}

// OccupiedSeats counts customers currently holding a seat.
func (s *State) OccupiedSeats() int {
	n := 0
	for i := range s.Customers {
		if s.Customers[i].SeatID != customer.NoSeat {
			n++
		}
	}
	return n
}

// FreeSeat returns the lowest unoccupied seat ID, or customer.NoSeat when the
// floor is full.
func (s *State) FreeSeat(b config.Balance) int {
	taken := make(map[int]bool, len(s.Customers))
	for i := range s.Customers {
		if s.Customers[i].SeatID != customer.NoSeat {
			taken[s.Customers[i].SeatID] = true
		}
	}
	for seat := 0; seat < s.MaxSeats(b); seat++ {
		if !taken[seat] {
			return seat
		}
	}
	return customer.NoSeat
}

// CustomerByID returns a pointer into the snapshot's customer slice, or nil.
func (s *State) CustomerByID(id string) *customer.Customer {
	for i := range s.Customers {
		if s.Customers[i].ID == id {
			return &s.Customers[i]
		}
	}
	return nil
}

// MaidByID returns a pointer into the snapshot's maid slice, or nil.
func (s *State) MaidByID(id string) *staff.Maid {
	for i := range s.Maids {
		if s.Maids[i].ID == id {
			return &s.Maids[i]
		}
	}
	return nil
}

// Notify appends a notification stamped with the snapshot's clock.
func (s *State) Notify(category, message string) {
	s.Notifications = append(s.Notifications, Notification{
		Category: category,
		Message:  message,
		Day:      s.Day,
		Minute:   s.TimeMinutes,
	})
}

// StatLookup adapts the snapshot to the achievement evaluator's view of it.
func (s *State) StatLookup() progress.StatLookup {
	return func(c progress.ConditionType) float64 {
		switch c {
		case progress.CondCustomersServed:
			return float64(s.Stats.CustomersServed)
		case progress.CondGoldEarned:
			return float64(s.Stats.GoldEarned)
		case progress.CondMaidsHired:
			return float64(s.Stats.MaidsHired)
		case progress.CondMenuUnlocked:
			return float64(s.Stats.MenuItemsUnlocked)
		case progress.CondCafeLevel:
			return float64(s.Facility.CafeLevel)
		case progress.CondReputation:
			return s.Reputation
		case progress.CondDaysPlayed:
			return float64(s.Stats.DaysPlayed)
		case progress.CondServeStreak:
			return float64(s.Scratch.ServeStreak)
		default:
			return 0
		}
	}
}

// Clone deep-copies the snapshot so a reduction can work on a fresh copy
// while external consumers keep reading the previous one.
func (s State) Clone() State {
	out := s

	out.Customers = make([]customer.Customer, len(s.Customers))
	for i, c := range s.Customers {
		out.Customers[i] = c
		out.Customers[i].Order.Lines = append([]customer.OrderLine(nil), c.Order.Lines...)
	}

	out.Maids = append([]staff.Maid(nil), s.Maids...)

	out.Facility.Decorations = append([]Decoration(nil), s.Facility.Decorations...)
	out.Facility.Equipment = append([]Equipment(nil), s.Facility.Equipment...)
	out.Facility.UnlockedAreas = append([]string(nil), s.Facility.UnlockedAreas...)

	out.Finance.History = append([]finance.DayRecord(nil), s.Finance.History...)

	out.Menu = make([]menu.Item, len(s.Menu))
	for i, it := range s.Menu {
		out.Menu[i] = it
		out.Menu[i].Seasons = append([]menu.Season(nil), it.Seasons...)
	}

	out.Tasks = append([]progress.Task(nil), s.Tasks...)
	out.Achievements = append([]progress.Achievement(nil), s.Achievements...)
	out.ActiveEvents = append([]events.Event(nil), s.ActiveEvents...)
	out.EventHistory = append([]events.Event(nil), s.EventHistory...)
	out.Notifications = append([]Notification(nil), s.Notifications...)

	out.Scratch.DwellTicks = make(map[string]int, len(s.Scratch.DwellTicks))
	for k, v := range s.Scratch.DwellTicks {
		out.Scratch.DwellTicks[k] = v
	}

	return out
}

// NewState builds the starting snapshot: a level-1 cafe, two maids, the base
// menu, and the default task/achievement catalogs.
func NewState(b config.Balance) State {
	s := State{
		Day:         1,
		TimeMinutes: float64(b.OpeningHour) * 60,
		Speed:       1,
		Open:        true,
		Reputation:  50,
		Facility: Facility{
			CafeLevel: 1,
			Decorations: []Decoration{
				{ID: "flower_vases", Name: "Flower Vases", Cost: 400, SatisfactionBonus: 2},
				{ID: "lace_curtains", Name: "Lace Curtains", Cost: 900, SatisfactionBonus: 4},
				{ID: "chandelier", Name: "Crystal Chandelier", Cost: 2500, SatisfactionBonus: 8},
			},
			Equipment: []Equipment{
				{ID: "espresso_machine", Name: "Espresso Machine", Level: 1, MaxLevel: 5},
				{ID: "kitchen_set", Name: "Kitchen Set", Level: 1, MaxLevel: 5},
				{ID: "sound_system", Name: "Sound System", Level: 1, MaxLevel: 3},
			},
		},
		Finance:      finance.Finance{Gold: 1000},
		Menu:         menu.DefaultItems(),
		Tasks:        progress.DefaultTasks(),
		Achievements: progress.DefaultAchievements(),
		Maids: []staff.Maid{
			{
				ID: "maid-sakura", Name: "Sakura",
				Stats: staff.Stats{Charm: 65, Skill: 55, Stamina: 60, Speed: 58},
				Level: 1, Role: staff.RoleServer, Mood: 80, Stamina: 100,
			},
			{
				ID: "maid-yui", Name: "Yui",
				Stats: staff.Stats{Charm: 58, Skill: 62, Stamina: 55, Speed: 64},
				Level: 1, Role: staff.RoleGreeter, Mood: 80, Stamina: 100,
			},
		},
		Scratch: Scratch{DwellTicks: map[string]int{}},
	}
	return s
}
