package game

import (
	"fmt"
	"math"
	"sort"

	"github.com/ayameworks/cafesim/internal/customer"
	"github.com/ayameworks/cafesim/internal/events"
	"github.com/ayameworks/cafesim/internal/finance"
	"github.com/ayameworks/cafesim/internal/progress"
	"github.com/ayameworks/cafesim/internal/staff"
)

// applyTick advances the snapshot by one quantum of virtual minutes, running
// every subsystem in fixed order. Later phases always observe the effects of
// earlier phases in the same tick.
func (r *Reducer) applyTick(s *State, minutes float64) {
	if s.Paused || !s.Open || minutes <= 0 {
		return
	}

	s.TimeMinutes += minutes

	r.updateStaff(s, minutes)
	justLeft := r.updatePatience(s, minutes)
	r.processDwellTimers(s, justLeft)
	r.progressServices(s, minutes)
	r.assignStaff(s)
	r.spawnCustomers(s, minutes)
	r.expireEvents(s)
	r.evaluateAchievements(s)

	if s.TimeMinutes >= float64(r.Balance.ClosingHour)*60 {
		r.settleDay(s)
	}
}

// Phase 1: stamina/mood decay and recovery, exhaustion handling.
func (r *Reducer) updateStaff(s *State, minutes float64) {
	for i := range s.Maids {
		m := &s.Maids[i]
		m.Recover(minutes, r.Balance)

		if m.IsWorking && m.Stamina <= 0 {
			// Collapsed mid-shift: force rest and return the customer to
			// the waiting pool.
			if cid := m.ServingCustomerID; cid != "" {
				if c := s.CustomerByID(cid); c != nil {
					c.ServingMaidID = ""
					c.ServiceProgress = 0
					c.Status = customer.StatusSeated
				}
				m.ServingCustomerID = ""
			}
			m.IsWorking = false
			m.IsResting = true
			s.Notify("staff", fmt.Sprintf("%s is exhausted and needs to rest", m.Name))
			continue
		}

		if m.IsResting && m.Stamina >= r.Balance.RestReturnStamina {
			m.IsResting = false
			s.Notify("staff", fmt.Sprintf("%s is rested and back on the floor", m.Name))
		}
	}
}

// patienceDecayRate is the single source of truth for per-minute patience
// decay by status.
func (r *Reducer) patienceDecayRate(st customer.Status) float64 {
	b := r.Balance
	switch st {
	case customer.StatusWaitingSeat:
		return b.DecayWaitingSeat
	case customer.StatusWaitingOrder:
		return b.DecayWaitingOrder
	case customer.StatusOrdering:
		return b.DecayOrdering
	case customer.StatusSeated:
		return b.DecaySeated
	default:
		return 0
	}
}

// Phase 2: patience decay and timeout-to-leave handling. Returns the IDs of
// customers forced to leaving this pass; their dwell timer starts counting on
// the next tick, so a walkout survives exactly one dwell tick.
func (r *Reducer) updatePatience(s *State, minutes float64) map[string]bool {
	justLeft := map[string]bool{}
	for i := range s.Customers {
		c := &s.Customers[i]
		if !customer.Decaying(c.Status) {
			continue
		}

		rate := r.patienceDecayRate(c.Status) * customer.TypeDecayFactor(c.Type)
		c.Patience -= rate * minutes
		if c.Patience > 0 {
			continue
		}
		c.Patience = 0

		// Walkout: jump straight to leaving with zero satisfaction and a
		// type-dependent reputation penalty.
		if mid := c.ServingMaidID; mid != "" {
			if m := s.MaidByID(mid); m != nil && m.ServingCustomerID == c.ID {
				m.ServingCustomerID = ""
				m.IsWorking = false
			}
			c.ServingMaidID = ""
		}
		c.Status = customer.StatusLeaving
		c.Satisfaction = 0
		c.ServiceProgress = 0
		addReputation(s, -customer.TimeoutPenalty(c.Type))
		s.Stats.CustomersLost++
		s.Scratch.ServeStreak = 0
		s.Scratch.DwellTicks[c.ID] = r.Balance.LeavingTicks
		justLeft[c.ID] = true
		s.Notify("customer", fmt.Sprintf("%s ran out of patience and left", c.Name))
	}
	return justLeft
}

// Phase 3: dwell-timer countdown: eating → paying → leaving → removed.
func (r *Reducer) processDwellTimers(s *State, justLeft map[string]bool) {
	var removals []string
	for i := range s.Customers {
		c := &s.Customers[i]
		if justLeft[c.ID] {
			continue
		}
		switch c.Status {
		case customer.StatusEating, customer.StatusPaying, customer.StatusLeaving:
		default:
			continue
		}

		left := s.Scratch.DwellTicks[c.ID] - 1
		if left > 0 {
			s.Scratch.DwellTicks[c.ID] = left
			continue
		}

		switch c.Status {
		case customer.StatusEating:
			c.Status = customer.StatusPaying
			s.Scratch.DwellTicks[c.ID] = r.Balance.PayingTicks
		case customer.StatusPaying:
			c.Status = customer.StatusLeaving
			s.Scratch.DwellTicks[c.ID] = r.Balance.LeavingTicks
		case customer.StatusLeaving:
			removals = append(removals, c.ID)
		}
	}
	for _, id := range removals {
		r.removeCustomer(s, id)
	}
}

// Phase 4: service progress accrual and completion settlement.
func (r *Reducer) progressServices(s *State, minutes float64) {
	for i := range s.Customers {
		c := &s.Customers[i]
		if c.Status != customer.StatusWaitingOrder || c.ServingMaidID == "" {
			continue
		}
		m := s.MaidByID(c.ServingMaidID)
		if m == nil {
			c.ServingMaidID = ""
			c.Status = customer.StatusSeated
			continue
		}

		c.ServiceProgress += m.Stats.Speed * 0.5 * minutes *
			m.ServiceStaminaMultiplier() * s.Facility.EquipmentEfficiency()
		if c.ServiceProgress >= 100 {
			r.completeService(s, m, c)
		}
	}
}

// completeService settles a finished service: satisfaction, tip, gold,
// reputation, staff experience, and the eating transition.
func (r *Reducer) completeService(s *State, m *staff.Maid, c *customer.Customer) {
	now := float64(s.Day-1)*MinutesPerDay + s.TimeMinutes
	waitMinutes := now - c.ArrivedAtMinute
	if waitMinutes < 0 {
		waitMinutes = 0
	}
	waitPenalty := math.Floor(waitMinutes / 5)
	if waitPenalty > 30 {
		waitPenalty = 30
	}

	charmBonus := m.Stats.Charm / 100 * 25
	skillBonus := m.Stats.Skill / 100 * 25
	raw := 50 + charmBonus + skillBonus - waitPenalty + s.Facility.DecorationBonus()
	if m.Stamina < 50 {
		raw -= 5
	}
	if m.Mood < 50 {
		raw -= 5
	}
	raw *= events.Multiplier(s.ActiveEvents, events.TargetSatisfaction)

	satisfaction := customer.AdjustSatisfaction(c.Type, raw)

	tip := 0
	if satisfaction >= 50 {
		tip = int(math.Round((satisfaction - 50) * 0.5 * (1 + m.Stats.Charm/100*0.5)))
	}

	roleBonus := staff.RoleBonus(m.Role, c.Type)
	revenueMult := events.Multiplier(s.ActiveEvents, events.TargetRevenue)
	gold := int(math.Round(float64(c.Order.Total) *
		customer.RewardGoldMultiplier(c.Type, satisfaction) * roleBonus * revenueMult))

	s.Finance.Credit(gold)
	s.Finance.Credit(tip)
	s.Stats.GoldEarned += gold + tip
	s.Stats.TipsEarned += tip
	addReputation(s, customer.ReputationDelta(c.Type, satisfaction))

	xp := math.Round(5 + satisfaction/100*20)
	if gained := m.GainExperience(xp, r.Balance); gained > 0 {
		s.Notify("staff", fmt.Sprintf("%s reached level %d", m.Name, m.Level))
	}

	// Release the pairing and move the customer on to eating.
	m.ServingCustomerID = ""
	m.IsWorking = false
	c.Satisfaction = satisfaction
	c.ServingMaidID = ""
	c.ServiceProgress = 100
	for i := range c.Order.Lines {
		c.Order.Lines[i].Prepared = true
	}
	c.Status = customer.StatusEating
	s.Scratch.DwellTicks[c.ID] = r.Balance.EatingTicks

	s.Stats.CustomersServed++
	s.Scratch.ServeStreak++
	r.advanceTasks(s, progress.EventServeCustomer, 1)
	r.advanceTasks(s, progress.EventEarnGold, float64(gold+tip))
}

// Phase 5: greedy assignment of idle eligible maids to waiting customers.
// Maids rank by efficiency (best first), customers by remaining patience
// (most impatient first). Linear, deterministic, no global optimum search.
func (r *Reducer) assignStaff(s *State) {
	var maids []*staff.Maid
	for i := range s.Maids {
		if s.Maids[i].Eligible(r.Balance) {
			maids = append(maids, &s.Maids[i])
		}
	}
	var waiting []*customer.Customer
	for i := range s.Customers {
		if s.Customers[i].Status == customer.StatusSeated {
			waiting = append(waiting, &s.Customers[i])
		}
	}
	if len(maids) == 0 || len(waiting) == 0 {
		return
	}

	sort.SliceStable(maids, func(i, j int) bool {
		return maids[i].Efficiency() > maids[j].Efficiency()
	})
	sort.SliceStable(waiting, func(i, j int) bool {
		return waiting[i].Patience < waiting[j].Patience
	})

	n := len(maids)
	if len(waiting) < n {
		n = len(waiting)
	}
	now := float64(s.Day-1)*MinutesPerDay + s.TimeMinutes
	for i := 0; i < n; i++ {
		m, c := maids[i], waiting[i]
		m.IsWorking = true
		m.ServingCustomerID = c.ID
		c.ServingMaidID = m.ID
		c.Status = customer.StatusWaitingOrder
		c.ServiceProgress = 0
		c.ServiceStartMinute = now
	}
}

// Phase 6: admit new customers into free seats, bounded per tick so a long
// catch-up frame cannot burst-spawn.
func (r *Reducer) spawnCustomers(s *State, minutes float64) {
	s.Scratch.SpawnAccumulator += minutes

	hour := s.TimeMinutes / 60
	intensity := r.Footfall.Intensity(s.Day, hour)
	intensity *= events.Multiplier(s.ActiveEvents, events.TargetSpawnRate)
	if intensity <= 0 {
		return
	}
	interval := r.Balance.SpawnIntervalMinutes / intensity

	spawned := 0
	now := float64(s.Day-1)*MinutesPerDay + s.TimeMinutes
	for s.Scratch.SpawnAccumulator >= interval && spawned < r.Balance.SpawnCapPerTick {
		s.Scratch.SpawnAccumulator -= interval
		if s.OccupiedSeats() >= s.MaxSeats(r.Balance) {
			break
		}
		c := r.Spawner.Spawn(s.Reputation, s.Season(), s.Menu, now)
		r.admitCustomer(s, *c)
		spawned++
	}
}

// expireEvents drops active events whose duration has elapsed. History keeps
// every trigger permanently.
func (r *Reducer) expireEvents(s *State) {
	kept := s.ActiveEvents[:0]
	for _, e := range s.ActiveEvents {
		if !e.Expired(s.TimeMinutes) {
			kept = append(kept, e)
		}
	}
	s.ActiveEvents = kept
}

// Phase 7: achievement evaluation against the latest statistics snapshot.
func (r *Reducer) evaluateAchievements(s *State) {
	for _, a := range progress.EvaluateAchievements(s.Achievements, s.StatLookup()) {
		s.Finance.Credit(a.RewardGold)
		s.Stats.GoldEarned += a.RewardGold
		s.Notify("achievement", fmt.Sprintf("Achievement unlocked: %s", a.Name))
	}
}

// settleDay closes the business day: clamp the clock, roll up finances,
// clear the floor, and force a pause until the next day starts.
func (r *Reducer) settleDay(s *State) {
	b := r.Balance
	s.TimeMinutes = float64(b.ClosingHour) * 60
	s.Open = false
	s.Paused = true
	s.PendingSummary = true
	s.Stats.DaysPlayed++

	totalWages := 0
	for i := range s.Maids {
		totalWages += s.Maids[i].Wage(b)
	}
	cost := finance.OperatingCost(b, s.Facility.CafeLevel, s.MaxSeats(b),
		totalWages, s.Facility.EquipmentLevels())
	rec := s.Finance.Settle(s.Day, cost, b)
	if rec.Revenue > s.Stats.BestDayRevenue {
		s.Stats.BestDayRevenue = rec.Revenue
	}

	// Close the floor: everyone still inside leaves, staff unwind.
	for i := range s.Maids {
		s.Maids[i].IsWorking = false
		s.Maids[i].ServingCustomerID = ""
	}
	s.Customers = nil
	s.Scratch.DwellTicks = map[string]int{}
	s.Scratch.SpawnAccumulator = 0
	s.ActiveEvents = nil

	s.Notify("summary", fmt.Sprintf("Day %d closed: revenue %d, expenses %d, profit %d",
		rec.Day, rec.Revenue, rec.Expenses, rec.Profit))
}

// startNewDay reopens the cafe on the next calendar day with rested staff
// and a fresh day-start event roll.
func (r *Reducer) startNewDay(s *State) {
	s.Day++
	s.TimeMinutes = float64(r.Balance.OpeningHour) * 60
	s.Open = true
	s.Paused = false
	s.PendingSummary = false

	// Overnight recovery: full stamina, mood drifts back toward content.
	for i := range s.Maids {
		m := &s.Maids[i]
		m.Stamina = 100
		m.Mood += (80 - m.Mood) / 2
		if m.Mood > 100 {
			m.Mood = 100
		}
		m.IsResting = false
		m.IsWorking = false
		m.ServingCustomerID = ""
	}

	if e := events.Roll(r.Balance, s.Season(), s.Day, s.TimeMinutes, r.RNG); e != nil {
		r.triggerEvent(s, *e)
	}
}
