package game

import (
	"github.com/ayameworks/cafesim/internal/customer"
	"github.com/ayameworks/cafesim/internal/events"
	"github.com/ayameworks/cafesim/internal/staff"
)

// Action is the closed set of state transitions. The interface is sealed
// (unexported marker method) so the reducer's type switch is exhaustive over
// every variant defined in this package.
type Action interface {
	isAction()
}

// Tick advances virtual time by one fixed quantum of minutes.
type Tick struct {
	Minutes float64
}

// TogglePause flips the pause flag.
type TogglePause struct{}

// SetGameSpeed sets the speed multiplier. Non-positive speeds are rejected.
type SetGameSpeed struct {
	Speed float64
}

// EndDay forces the end-of-day settlement regardless of the clock.
type EndDay struct{}

// StartNewDay opens the next business day.
type StartNewDay struct{}

// HireMaid adds a maid, subject to staff capacity and hiring cost.
type HireMaid struct {
	Maid staff.Maid
	Cost int
}

// FireMaid removes a maid by ID.
type FireMaid struct {
	MaidID string
}

// AssignRole changes a maid's specialization.
type AssignRole struct {
	MaidID string
	Role   staff.Role
}

// ToggleMaidRest flips a maid between resting and available. A serving maid
// cannot be sent to rest.
type ToggleMaidRest struct {
	MaidID string
}

// SpawnCustomer admits a prepared customer if a seat is free.
type SpawnCustomer struct {
	Customer customer.Customer
}

// StartService pairs a maid with a waiting customer.
type StartService struct {
	MaidID     string
	CustomerID string
}

// CompleteService finishes an in-flight service immediately, settling rewards.
type CompleteService struct {
	MaidID     string
	CustomerID string
}

// RemoveCustomer drops a customer from the floor.
type RemoveCustomer struct {
	CustomerID string
}

// UnlockMenuItem makes a menu item orderable.
type UnlockMenuItem struct {
	ItemID string
}

// SetItemPrice reprices a menu item within its allowed band.
type SetItemPrice struct {
	ItemID string
	Price  int
}

// UpgradeCafe raises the cafe level, paying the upgrade cost.
type UpgradeCafe struct{}

// BuyDecoration purchases a decoration.
type BuyDecoration struct {
	DecorationID string
}

// UpgradeEquipment raises one equipment piece's level.
type UpgradeEquipment struct {
	EquipmentID string
}

// UnlockArea opens a gated cafe area.
type UnlockArea struct {
	Area string
}

// AddRevenue books revenue (accrual only). Negative amounts are rejected.
type AddRevenue struct {
	Amount int
}

// AddExpense books an expense (accrual only). Negative amounts are rejected.
type AddExpense struct {
	Amount int
}

// DeductGold removes gold, clamping at zero.
type DeductGold struct {
	Amount int
}

// TriggerEvent activates a prepared event.
type TriggerEvent struct {
	Event events.Event
}

// EndEvent expires an active event early.
type EndEvent struct {
	EventID string
}

// UnlockAchievement force-unlocks an achievement (idempotent).
type UnlockAchievement struct {
	AchievementID string
}

// ClaimTaskReward collects a completed task's reward exactly once.
type ClaimTaskReward struct {
	TaskID string
}

// LoadGame replaces the snapshot with a previously validated one.
type LoadGame struct {
	State State
}

// ResetGame returns to the initial snapshot.
type ResetGame struct{}

func (Tick) isAction()              {}
func (TogglePause) isAction()       {}
func (SetGameSpeed) isAction()      {}
func (EndDay) isAction()            {}
func (StartNewDay) isAction()       {}
func (HireMaid) isAction()          {}
func (FireMaid) isAction()          {}
func (AssignRole) isAction()        {}
func (ToggleMaidRest) isAction()    {}
func (SpawnCustomer) isAction()     {}
func (StartService) isAction()      {}
func (CompleteService) isAction()   {}
func (RemoveCustomer) isAction()    {}
func (UnlockMenuItem) isAction()    {}
func (SetItemPrice) isAction()      {}
func (UpgradeCafe) isAction()       {}
func (BuyDecoration) isAction()     {}
func (UpgradeEquipment) isAction()  {}
func (UnlockArea) isAction()        {}
func (AddRevenue) isAction()        {}
func (AddExpense) isAction()        {}
func (DeductGold) isAction()        {}
func (TriggerEvent) isAction()      {}
func (EndEvent) isAction()          {}
func (UnlockAchievement) isAction() {}
func (ClaimTaskReward) isAction()   {}
func (LoadGame) isAction()          {}
func (ResetGame) isAction()         {}
