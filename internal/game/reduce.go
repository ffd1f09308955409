package game

import (
	"fmt"

	"github.com/ayameworks/cafesim/internal/config"
	"github.com/ayameworks/cafesim/internal/customer"
	"github.com/ayameworks/cafesim/internal/events"
	"github.com/ayameworks/cafesim/internal/progress"
	"github.com/ayameworks/cafesim/internal/rng"
)

// MaxGameSpeed bounds the speed multiplier.
const MaxGameSpeed = 10.0

// Reducer holds the balance configuration and the injected randomness the
// pure transition function consults. Everything else lives in the snapshot.
type Reducer struct {
	Balance  config.Balance
	RNG      rng.Provider
	Spawner  *customer.Spawner
	Footfall *customer.Footfall
}

// NewReducer wires a reducer from balance knobs and a seed. All stochastic
// behavior derives from the seed, so equal seeds replay identically.
func NewReducer(b config.Balance, seed int64) *Reducer {
	p := rng.NewSeeded(seed)
	return &Reducer{
		Balance:  b,
		RNG:      p,
		Spawner:  customer.NewSpawner(p),
		Footfall: customer.NewFootfall(seed),
	}
}

// Reduce applies one action to a snapshot and returns the next snapshot.
// It is total: invalid or unaffordable actions return the state unchanged
// (modulo the clone). The previous snapshot is never mutated.
func (r *Reducer) Reduce(prev State, action Action) State {
	s := prev.Clone()

	switch a := action.(type) {
	case Tick:
		r.applyTick(&s, a.Minutes)

	case TogglePause:
		s.Paused = !s.Paused

	case SetGameSpeed:
		if a.Speed > 0 && a.Speed <= MaxGameSpeed {
			s.Speed = a.Speed
		}

	case EndDay:
		if s.Open {
			r.settleDay(&s)
		}

	case StartNewDay:
		if !s.Open {
			r.startNewDay(&s)
		}

	case HireMaid:
		r.hireMaid(&s, a)

	case FireMaid:
		r.fireMaid(&s, a.MaidID)

	case AssignRole:
		if m := s.MaidByID(a.MaidID); m != nil {
			m.Role = a.Role
		}

	case ToggleMaidRest:
		if m := s.MaidByID(a.MaidID); m != nil && m.ServingCustomerID == "" {
			m.IsResting = !m.IsResting
			if m.IsResting {
				m.IsWorking = false
			}
		}

	case SpawnCustomer:
		r.admitCustomer(&s, a.Customer)

	case StartService:
		r.startService(&s, a.MaidID, a.CustomerID)

	case CompleteService:
		m := s.MaidByID(a.MaidID)
		c := s.CustomerByID(a.CustomerID)
		if m != nil && c != nil && m.ServingCustomerID == c.ID && c.ServingMaidID == m.ID {
			r.completeService(&s, m, c)
		}

	case RemoveCustomer:
		r.removeCustomer(&s, a.CustomerID)

	case UnlockMenuItem:
		r.unlockMenuItem(&s, a.ItemID)

	case SetItemPrice:
		for i := range s.Menu {
			it := &s.Menu[i]
			if it.ID == a.ItemID && it.ValidPrice(a.Price) {
				it.Price = a.Price
			}
		}

	case UpgradeCafe:
		r.upgradeCafe(&s)

	case BuyDecoration:
		for i := range s.Facility.Decorations {
			d := &s.Facility.Decorations[i]
			if d.ID == a.DecorationID && !d.Owned && s.Finance.CanAfford(d.Cost) {
				s.Finance.Debit(d.Cost)
				d.Owned = true
				s.Notify("facility", fmt.Sprintf("Purchased %s", d.Name))
			}
		}

	case UpgradeEquipment:
		for i := range s.Facility.Equipment {
			e := &s.Facility.Equipment[i]
			if e.ID == a.EquipmentID && e.Level < e.MaxLevel && s.Finance.CanAfford(e.UpgradeCost()) {
				s.Finance.Debit(e.UpgradeCost())
				e.Level++
				s.Notify("facility", fmt.Sprintf("%s upgraded to level %d", e.Name, e.Level))
			}
		}

	case UnlockArea:
		r.unlockArea(&s, a.Area)

	case AddRevenue:
		s.Finance.AddRevenue(a.Amount)

	case AddExpense:
		s.Finance.AddExpense(a.Amount)

	case DeductGold:
		s.Finance.Debit(a.Amount)

	case TriggerEvent:
		r.triggerEvent(&s, a.Event)

	case EndEvent:
		for i := range s.ActiveEvents {
			if s.ActiveEvents[i].ID == a.EventID {
				s.ActiveEvents = append(s.ActiveEvents[:i], s.ActiveEvents[i+1:]...)
				break
			}
		}

	case UnlockAchievement:
		for i := range s.Achievements {
			ach := &s.Achievements[i]
			if ach.ID == a.AchievementID && !ach.Unlocked {
				ach.Unlocked = true
				s.Finance.Credit(ach.RewardGold)
				s.Stats.GoldEarned += ach.RewardGold
				s.Notify("achievement", fmt.Sprintf("Achievement unlocked: %s", ach.Name))
			}
		}

	case ClaimTaskReward:
		for i := range s.Tasks {
			t := &s.Tasks[i]
			if t.ID == a.TaskID && t.Claimable() {
				t.Claimed = true
				s.Finance.Credit(t.RewardGold)
				s.Stats.GoldEarned += t.RewardGold
				addReputation(&s, t.RewardReputation)
				s.Notify("task", fmt.Sprintf("Task reward claimed: %s", t.Name))
			}
		}

	case LoadGame:
		s = a.State.Clone()
		if s.Scratch.DwellTicks == nil {
			s.Scratch.DwellTicks = map[string]int{}
		}
		// Keep freshly issued customer IDs above anything in the save.
		var maxID uint64
		for i := range s.Customers {
			var n uint64
			if _, err := fmt.Sscanf(s.Customers[i].ID, "cust-%d", &n); err == nil && n > maxID {
				maxID = n
			}
		}
		r.Spawner.SetNextID(maxID + 1)

	case ResetGame:
		s = NewState(r.Balance)
	}

	return s
}

func addReputation(s *State, delta float64) {
	s.Reputation += delta
	if s.Reputation < 0 {
		s.Reputation = 0
	}
	if s.Reputation > 100 {
		s.Reputation = 100
	}
}

func (r *Reducer) hireMaid(s *State, a HireMaid) {
	if a.Maid.ID == "" || a.Cost < 0 {
		return
	}
	if len(s.Maids) >= s.MaxStaff(r.Balance) {
		return
	}
	if s.MaidByID(a.Maid.ID) != nil {
		return
	}
	if !s.Finance.CanAfford(a.Cost) {
		return
	}

	s.Finance.Debit(a.Cost)
	m := a.Maid
	m.IsWorking = false
	m.IsResting = false
	m.ServingCustomerID = ""
	if m.Level < 1 {
		m.Level = 1
	}
	s.Maids = append(s.Maids, m)
	s.Stats.MaidsHired++
	r.advanceTasks(s, progress.EventHireMaid, 1)
	s.Notify("staff", fmt.Sprintf("%s joined the staff", m.Name))
}

func (r *Reducer) fireMaid(s *State, id string) {
	for i := range s.Maids {
		if s.Maids[i].ID != id {
			continue
		}
		// Return any customer mid-service to the waiting pool.
		if cid := s.Maids[i].ServingCustomerID; cid != "" {
			if c := s.CustomerByID(cid); c != nil {
				c.ServingMaidID = ""
				c.ServiceProgress = 0
				c.Status = customer.StatusSeated
			}
		}
		name := s.Maids[i].Name
		s.Maids = append(s.Maids[:i], s.Maids[i+1:]...)
		s.Notify("staff", fmt.Sprintf("%s left the staff", name))
		return
	}
}

func (r *Reducer) admitCustomer(s *State, c customer.Customer) {
	if c.ID == "" || s.CustomerByID(c.ID) != nil {
		return
	}
	if s.OccupiedSeats() >= s.MaxSeats(r.Balance) {
		return
	}
	seat := s.FreeSeat(r.Balance)
	if seat == customer.NoSeat {
		return
	}
	c.SeatID = seat
	c.Status = customer.StatusSeated
	c.ServingMaidID = ""
	c.ServiceProgress = 0
	s.Customers = append(s.Customers, c)
}

func (r *Reducer) startService(s *State, maidID, customerID string) {
	m := s.MaidByID(maidID)
	c := s.CustomerByID(customerID)
	if m == nil || c == nil {
		return
	}
	if !m.Eligible(r.Balance) || c.Status != customer.StatusSeated {
		return
	}

	m.IsWorking = true
	m.ServingCustomerID = c.ID
	c.ServingMaidID = m.ID
	c.Status = customer.StatusWaitingOrder
	c.ServiceProgress = 0
	c.ServiceStartMinute = float64(s.Day-1)*MinutesPerDay + s.TimeMinutes
}

func (r *Reducer) removeCustomer(s *State, id string) {
	for i := range s.Customers {
		if s.Customers[i].ID != id {
			continue
		}
		// Release a maid still linked to this customer.
		if mid := s.Customers[i].ServingMaidID; mid != "" {
			if m := s.MaidByID(mid); m != nil && m.ServingCustomerID == id {
				m.ServingCustomerID = ""
				m.IsWorking = false
			}
		}
		s.Customers = append(s.Customers[:i], s.Customers[i+1:]...)
		delete(s.Scratch.DwellTicks, id)
		return
	}
}

func (r *Reducer) unlockMenuItem(s *State, itemID string) {
	for i := range s.Menu {
		it := &s.Menu[i]
		if it.ID != itemID || it.Unlocked {
			continue
		}
		cost := it.BasePrice * 10
		if !s.Finance.CanAfford(cost) {
			return
		}
		s.Finance.Debit(cost)
		it.Unlocked = true
		s.Stats.MenuItemsUnlocked++
		r.advanceTasks(s, progress.EventUnlockMenuItem, 1)
		s.Notify("menu", fmt.Sprintf("New menu item: %s", it.Name))
		return
	}
}

func (r *Reducer) upgradeCafe(s *State) {
	level := s.Facility.CafeLevel
	if level >= r.Balance.MaxCafeLevel {
		return
	}
	cost := level * r.Balance.UpgradeCostPer
	if !s.Finance.CanAfford(cost) {
		return
	}
	s.Finance.Debit(cost)
	s.Facility.CafeLevel++
	r.advanceTasks(s, progress.EventUpgradeCafe, float64(s.Facility.CafeLevel))
	s.Notify("facility", fmt.Sprintf("Cafe upgraded to level %d (%d seats)",
		s.Facility.CafeLevel, s.MaxSeats(r.Balance)))
}

func (r *Reducer) unlockArea(s *State, id string) {
	if s.Facility.HasArea(id) {
		return
	}
	for _, area := range AreaCatalog {
		if area.ID != id {
			continue
		}
		if !s.Finance.CanAfford(area.Cost) {
			return
		}
		s.Finance.Debit(area.Cost)
		s.Facility.UnlockedAreas = append(s.Facility.UnlockedAreas, area.ID)
		s.Notify("facility", fmt.Sprintf("Unlocked the %s", area.Name))
		return
	}
}

// triggerEvent activates an event: additive effects apply once, immediately;
// multiplicative effects join the active set and are read on demand. Every
// trigger lands in the permanent history log.
func (r *Reducer) triggerEvent(s *State, e events.Event) {
	if e.ID == "" {
		return
	}
	for i := range s.ActiveEvents {
		if s.ActiveEvents[i].ID == e.ID {
			return
		}
	}

	if e.Kind == events.KindAdditive {
		switch e.Target {
		case events.TargetReputation:
			addReputation(s, e.Amount)
		case events.TargetGold:
			if e.Amount >= 0 {
				s.Finance.Credit(int(e.Amount))
				s.Stats.GoldEarned += int(e.Amount)
			} else {
				s.Finance.Debit(int(-e.Amount))
			}
		}
	} else {
		s.ActiveEvents = append(s.ActiveEvents, e)
	}

	s.EventHistory = append(s.EventHistory, e)
	s.Notify("event", e.Name+": "+e.Description)
}

// advanceTasks routes a gameplay event through the task evaluator and
// notifies for newly completed tasks.
func (r *Reducer) advanceTasks(s *State, kind progress.EventKind, amount float64) {
	for _, t := range progress.AdvanceTasks(s.Tasks, kind, amount) {
		s.Notify("task", fmt.Sprintf("Task complete: %s", t.Name))
	}
}
