// Package finance provides the money model: gold balance, daily accrual,
// operating costs, and the bounded settlement history.
package finance

import "github.com/ayameworks/cafesim/internal/config"

// DayRecord is one settled day in the history ring.
type DayRecord struct {
	Day      int `json:"day" db:"day"`
	Revenue  int `json:"revenue" db:"revenue"`
	Expenses int `json:"expenses" db:"expenses"`
	Profit   int `json:"profit" db:"profit"`
}

// Finance is the cafe's money state. Gold never goes negative; debits clamp
// at zero.
type Finance struct {
	Gold          int         `json:"gold"`
	DailyRevenue  int         `json:"daily_revenue"`
	DailyExpenses int         `json:"daily_expenses"`
	History       []DayRecord `json:"history"`
}

// Credit adds gold and books it as revenue for the day. Negative amounts are
// rejected.
func (f *Finance) Credit(amount int) {
	if amount < 0 {
		return
	}
	f.Gold += amount
	f.DailyRevenue += amount
}

// Debit removes gold, clamping at zero, and books the full amount as an
// expense. Negative amounts are rejected.
func (f *Finance) Debit(amount int) {
	if amount < 0 {
		return
	}
	f.Gold -= amount
	if f.Gold < 0 {
		f.Gold = 0
	}
	f.DailyExpenses += amount
}

// CanAfford reports whether a purchase of the given amount is payable in full.
func (f *Finance) CanAfford(amount int) bool {
	return amount >= 0 && f.Gold >= amount
}

// AddRevenue books revenue without touching gold (accrual only). Negative
// amounts are rejected to avoid corrupting statistics.
func (f *Finance) AddRevenue(amount int) {
	if amount < 0 {
		return
	}
	f.DailyRevenue += amount
}

// AddExpense books an expense without touching gold. Negative amounts are
// rejected.
func (f *Finance) AddExpense(amount int) {
	if amount < 0 {
		return
	}
	f.DailyExpenses += amount
}

// OperatingCost computes the daily fixed cost of keeping the cafe open:
// rent, utilities, wages, and equipment maintenance.
func OperatingCost(b config.Balance, cafeLevel, maxSeats, totalWages, totalEquipLevels int) int {
	rent := b.RentPerLevel * cafeLevel
	utilities := b.UtilitiesPerSeat * maxSeats
	maintenance := b.MaintenancePer * totalEquipLevels
	return rent + utilities + totalWages + maintenance
}

// Settle closes the day: the operating cost is deducted from gold (floored at
// zero), a day record is appended with expenses including that cost, history
// beyond the retention window is evicted, and the daily accrual counters
// reset. Returns the appended record.
func (f *Finance) Settle(day, operatingCost int, b config.Balance) DayRecord {
	f.Gold -= operatingCost
	if f.Gold < 0 {
		f.Gold = 0
	}

	expenses := f.DailyExpenses + operatingCost
	rec := DayRecord{
		Day:      day,
		Revenue:  f.DailyRevenue,
		Expenses: expenses,
		Profit:   f.DailyRevenue - expenses,
	}
	f.History = append(f.History, rec)
	if keep := b.FinanceHistoryDays; len(f.History) > keep {
		f.History = f.History[len(f.History)-keep:]
	}

	f.DailyRevenue = 0
	f.DailyExpenses = 0
	return rec
}
