package game

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayameworks/cafesim/internal/config"
	"github.com/ayameworks/cafesim/internal/customer"
	"github.com/ayameworks/cafesim/internal/staff"
)

// quietBalance disables random arrivals so ticks only move the actors a test
// placed on the floor.
func quietBalance() config.Balance {
	b := config.Default()
	b.SpawnIntervalMinutes = 1e9
	return b
}

func tick(r *Reducer, s State) State {
	return r.Reduce(s, Tick{Minutes: r.Balance.TickMinutes})
}

func restAll(s *State) {
	for i := range s.Maids {
		s.Maids[i].IsResting = true
		s.Maids[i].Stamina = 20 // Low enough to stay off the floor
	}
}

func TestWalkoutSurvivesOneDwellTick(t *testing.T) {
	r := NewReducer(quietBalance(), 1)
	s := NewState(r.Balance)
	restAll(&s)
	s.Customers = append(s.Customers, customer.Customer{
		ID: "cust-000001", Name: "Aoi", Type: customer.TypeRegular,
		Patience: 1, Status: customer.StatusSeated, SeatID: 0,
	})
	repBefore := s.Reputation
	s.Scratch.ServeStreak = 4

	// First tick: patience hits zero, the customer flips to leaving but is
	// still on the floor.
	s1 := tick(r, s)
	c := s1.CustomerByID("cust-000001")
	require.NotNil(t, c)
	assert.Equal(t, customer.StatusLeaving, c.Status)
	assert.Zero(t, c.Satisfaction)
	assert.Equal(t, repBefore-customer.TimeoutPenalty(customer.TypeRegular), s1.Reputation)
	assert.Equal(t, 1, s1.Stats.CustomersLost)
	assert.Zero(t, s1.Scratch.ServeStreak)

	// Second tick: the leaving dwell elapses and the customer is removed.
	s2 := tick(r, s1)
	assert.Nil(t, s2.CustomerByID("cust-000001"))
	_, tracked := s2.Scratch.DwellTicks["cust-000001"]
	assert.False(t, tracked)
}

func TestDwellProgressionEatingToGone(t *testing.T) {
	b := quietBalance()
	r := NewReducer(b, 1)
	s := NewState(b)
	restAll(&s)
	s.Customers = append(s.Customers, customer.Customer{
		ID: "cust-000002", Name: "Hana", Type: customer.TypeRegular,
		Patience: 60, Satisfaction: 75, Status: customer.StatusEating, SeatID: 0,
	})
	s.Scratch.DwellTicks["cust-000002"] = b.EatingTicks

	for i := 0; i < b.EatingTicks; i++ {
		s = tick(r, s)
	}
	require.Equal(t, customer.StatusPaying, s.CustomerByID("cust-000002").Status)

	for i := 0; i < b.PayingTicks; i++ {
		s = tick(r, s)
	}
	require.Equal(t, customer.StatusLeaving, s.CustomerByID("cust-000002").Status)

	for i := 0; i < b.LeavingTicks; i++ {
		s = tick(r, s)
	}
	assert.Nil(t, s.CustomerByID("cust-000002"))
}

func TestEatingCustomerNeverTimesOut(t *testing.T) {
	b := quietBalance()
	b.EatingTicks = 100
	r := NewReducer(b, 1)
	s := NewState(b)
	restAll(&s)
	s.Customers = append(s.Customers, customer.Customer{
		ID: "cust-000003", Type: customer.TypeCritic,
		Patience: 0.5, Status: customer.StatusEating, SeatID: 0,
	})
	s.Scratch.DwellTicks["cust-000003"] = b.EatingTicks

	for i := 0; i < 10; i++ {
		s = tick(r, s)
	}
	c := s.CustomerByID("cust-000003")
	require.NotNil(t, c)
	assert.Equal(t, customer.StatusEating, c.Status)
	assert.Equal(t, 0.5, c.Patience)
}

func TestServiceCompletionSettlement(t *testing.T) {
	b := quietBalance()
	r := NewReducer(b, 1)
	s := NewState(b)
	s.Maids = s.Maids[:1]
	m := &s.Maids[0]
	m.Role = staff.RoleGreeter
	m.Stats = staff.Stats{Charm: 50, Skill: 50, Stamina: 60, Speed: 100}
	m.IsWorking = true
	m.ServingCustomerID = "cust-000004"

	arrived := float64(b.OpeningHour)*60 + b.TickMinutes
	s.Customers = append(s.Customers, customer.Customer{
		ID: "cust-000004", Name: "Mio", Type: customer.TypeRegular,
		Patience: 80, Status: customer.StatusWaitingOrder, SeatID: 0,
		ServingMaidID: m.ID, ServiceProgress: 90,
		ArrivedAtMinute: arrived,
		Order: customer.Order{
			Lines: []customer.OrderLine{{ItemID: "coffee", Name: "House Blend Coffee", Quantity: 1, Price: 100}},
			Total: 100,
		},
	})
	goldBefore := s.Finance.Gold

	next := tick(r, s)

	c := next.CustomerByID("cust-000004")
	require.NotNil(t, c)
	assert.Equal(t, customer.StatusEating, c.Status)
	assert.Equal(t, b.EatingTicks, next.Scratch.DwellTicks[c.ID])
	assert.Empty(t, c.ServingMaidID)
	assert.True(t, c.Order.Lines[0].Prepared)

	// raw = 50 + 12.5 + 12.5 = 75 satisfaction for a regular with no wait and
	// no decorations; tip = round(25 × 0.5 × 1.25) = 16; gold = total × 1.0.
	// The first completed service also unlocks the first-customer achievement
	// and its 100-gold reward in the same tick.
	assert.InDelta(t, 75, c.Satisfaction, 0.001)
	assert.Equal(t, goldBefore+100+16+100, next.Finance.Gold)
	assert.Equal(t, 216, next.Stats.GoldEarned)
	assert.Equal(t, 16, next.Stats.TipsEarned)
	assert.Equal(t, 1, next.Stats.CustomersServed)
	assert.Equal(t, 1, next.Scratch.ServeStreak)

	// The maid is released and gained experience.
	got := next.MaidByID(m.ID)
	assert.False(t, got.IsWorking)
	assert.Empty(t, got.ServingCustomerID)
	assert.Equal(t, 20.0, got.Experience)
}

func TestAssignmentPairsBestMaidWithMostImpatient(t *testing.T) {
	b := quietBalance()
	r := NewReducer(b, 1)
	s := NewState(b)
	// Yui has the higher base stats, so she should take the customer closest
	// to walking out.
	for _, c := range []struct {
		id       string
		patience float64
	}{{"cust-a", 50}, {"cust-b", 12}, {"cust-c", 30}} {
		s.Customers = append(s.Customers, customer.Customer{
			ID: c.id, Type: customer.TypeRegular,
			Patience: c.patience, Status: customer.StatusSeated, SeatID: len(s.Customers),
		})
	}

	next := tick(r, s)

	yui := next.MaidByID("maid-yui")
	require.NotNil(t, yui)
	assert.Equal(t, "cust-b", yui.ServingCustomerID)
	sakura := next.MaidByID("maid-sakura")
	assert.Equal(t, "cust-c", sakura.ServingCustomerID)

	// Mutual consistency between both sides of every pairing.
	for i := range next.Maids {
		m := &next.Maids[i]
		if m.ServingCustomerID == "" {
			continue
		}
		c := next.CustomerByID(m.ServingCustomerID)
		require.NotNil(t, c)
		assert.Equal(t, m.ID, c.ServingMaidID)
		assert.Equal(t, customer.StatusWaitingOrder, c.Status)
	}
	// The third customer stays seated until a maid frees up.
	assert.Equal(t, customer.StatusSeated, next.CustomerByID("cust-a").Status)
}

func TestRestingMaidIsNeverAssigned(t *testing.T) {
	b := quietBalance()
	r := NewReducer(b, 1)
	s := NewState(b)
	restAll(&s)
	s.Customers = append(s.Customers, customer.Customer{
		ID: "cust-000005", Type: customer.TypeRegular,
		Patience: 90, Status: customer.StatusSeated, SeatID: 0,
	})

	next := tick(r, s)

	assert.Equal(t, customer.StatusSeated, next.CustomerByID("cust-000005").Status)
	for i := range next.Maids {
		assert.Empty(t, next.Maids[i].ServingCustomerID)
	}
}

func TestExhaustedMaidDropsCustomerAndRests(t *testing.T) {
	b := quietBalance()
	r := NewReducer(b, 1)
	s := NewState(b)
	s.Maids = s.Maids[:1]
	m := &s.Maids[0]
	m.Stamina = 1
	m.IsWorking = true
	m.ServingCustomerID = "cust-000006"
	s.Customers = append(s.Customers, customer.Customer{
		ID: "cust-000006", Type: customer.TypeRegular,
		Patience: 80, Status: customer.StatusWaitingOrder, SeatID: 0,
		ServingMaidID: m.ID, ServiceProgress: 50,
	})

	next := tick(r, s)

	got := next.MaidByID(m.ID)
	assert.True(t, got.IsResting)
	assert.False(t, got.IsWorking)
	c := next.CustomerByID("cust-000006")
	require.NotNil(t, c)
	assert.Equal(t, customer.StatusSeated, c.Status)
	assert.Zero(t, c.ServiceProgress)
}

func TestDaySettlesAtClosingTime(t *testing.T) {
	b := quietBalance()
	r := NewReducer(b, 1)
	s := NewState(b)
	s.TimeMinutes = float64(b.ClosingHour)*60 - 1

	next := tick(r, s)

	assert.False(t, next.Open)
	assert.True(t, next.Paused)
	assert.True(t, next.PendingSummary)
	assert.Equal(t, float64(b.ClosingHour)*60, next.TimeMinutes)
	assert.Empty(t, next.Customers)
	require.Len(t, next.Finance.History, 1)
	rec := next.Finance.History[0]
	assert.Equal(t, rec.Revenue-rec.Expenses, rec.Profit)
}

func TestStartNewDayReopensAndRecoversStaff(t *testing.T) {
	b := quietBalance()
	r := NewReducer(b, 1)
	s := NewState(b)
	s.Maids[0].Stamina = 30
	s.Maids[0].Mood = 40

	closed := r.Reduce(s, EndDay{})
	require.False(t, closed.Open)

	reopened := r.Reduce(closed, StartNewDay{})
	assert.Equal(t, 2, reopened.Day)
	assert.True(t, reopened.Open)
	assert.False(t, reopened.Paused)
	assert.Equal(t, float64(b.OpeningHour)*60, reopened.TimeMinutes)
	assert.Equal(t, 100.0, reopened.Maids[0].Stamina)
	assert.Equal(t, 60.0, reopened.Maids[0].Mood) // halfway back to 80
}

func TestFinanceConservationAcrossDays(t *testing.T) {
	b := config.Default()
	r := NewReducer(b, 7)
	s := NewState(b)
	s.Finance.Gold = 100000

	const days = 10
	for len(s.Finance.History) == 0 || s.Finance.History[len(s.Finance.History)-1].Day < days {
		if !s.Open {
			s = r.Reduce(s, StartNewDay{})
			continue
		}
		s = tick(r, s)
	}

	// History keeps only the configured window.
	assert.Len(t, s.Finance.History, b.FinanceHistoryDays)
	for _, rec := range s.Finance.History {
		assert.Equal(t, rec.Revenue-rec.Expenses, rec.Profit)
	}
	assert.Equal(t, days, s.Finance.History[len(s.Finance.History)-1].Day)
}

func TestInvariantsHoldOverLongRun(t *testing.T) {
	b := config.Default()
	r := NewReducer(b, 99)
	s := NewState(b)

	for i := 0; i < 600; i++ {
		if !s.Open {
			s = r.Reduce(s, StartNewDay{})
			continue
		}
		s = tick(r, s)

		assert.GreaterOrEqual(t, s.Finance.Gold, 0)
		assert.GreaterOrEqual(t, s.Reputation, 0.0)
		assert.LessOrEqual(t, s.Reputation, 100.0)

		seats := map[int]string{}
		for j := range s.Customers {
			c := &s.Customers[j]
			assert.GreaterOrEqual(t, c.Patience, 0.0)
			assert.LessOrEqual(t, c.Patience, 100.0)
			assert.LessOrEqual(t, c.Satisfaction, 100.0)
			if c.SeatID != customer.NoSeat {
				prev, dup := seats[c.SeatID]
				require.False(t, dup, "seat %d held by %s and %s", c.SeatID, prev, c.ID)
				seats[c.SeatID] = c.ID
			}
			if c.ServingMaidID != "" {
				m := s.MaidByID(c.ServingMaidID)
				require.NotNil(t, m)
				assert.Equal(t, c.ID, m.ServingCustomerID)
			}
		}
		assert.LessOrEqual(t, len(seats), s.MaxSeats(b))

		for j := range s.Maids {
			m := &s.Maids[j]
			assert.GreaterOrEqual(t, m.Stamina, 0.0)
			assert.LessOrEqual(t, m.Stamina, 100.0)
			assert.GreaterOrEqual(t, m.Mood, 0.0)
			assert.LessOrEqual(t, m.Mood, 100.0)
			if m.ServingCustomerID != "" {
				c := s.CustomerByID(m.ServingCustomerID)
				require.NotNil(t, c)
				assert.Equal(t, m.ID, c.ServingMaidID)
			}
		}
	}
}

func TestEqualSeedsReplayIdentically(t *testing.T) {
	b := config.Default()
	run := func(seed int64) State {
		r := NewReducer(b, seed)
		s := NewState(b)
		for i := 0; i < 120; i++ {
			if !s.Open {
				s = r.Reduce(s, StartNewDay{})
				continue
			}
			s = tick(r, s)
		}
		return s
	}

	a, bState := run(42), run(42)
	a.Notifications, bState.Notifications = nil, nil
	assert.True(t, reflect.DeepEqual(a, bState))

	c := run(43)
	c.Notifications = nil
	assert.False(t, reflect.DeepEqual(a, c))
}

func TestPreviousSnapshotIsImmutable(t *testing.T) {
	b := config.Default()
	r := NewReducer(b, 5)
	s := NewState(b)
	s.Customers = append(s.Customers, customer.Customer{
		ID: "cust-000007", Type: customer.TypeRegular,
		Patience: 60, Status: customer.StatusSeated, SeatID: 0,
		Order: customer.Order{Lines: []customer.OrderLine{{ItemID: "coffee", Quantity: 1, Price: 40}}, Total: 40},
	})

	snapshot := s.Clone()
	for i := 0; i < 20; i++ {
		_ = tick(r, s)
	}

	assert.True(t, reflect.DeepEqual(snapshot, s.Clone()))
}
