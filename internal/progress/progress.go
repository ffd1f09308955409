// Package progress provides the task and achievement evaluators: snapshot
// threshold checks for achievements, discrete event-driven advancement for
// tasks, and exactly-once reward claiming.
package progress

// ConditionType names the statistic or runtime value a condition tracks.
type ConditionType string

const (
	CondCustomersServed ConditionType = "customers_served"
	CondGoldEarned      ConditionType = "gold_earned"
	CondMaidsHired      ConditionType = "maids_hired"
	CondMenuUnlocked    ConditionType = "menu_unlocked"
	CondCafeLevel       ConditionType = "cafe_level"
	CondReputation      ConditionType = "reputation"
	CondDaysPlayed      ConditionType = "days_played"
	CondServeStreak     ConditionType = "serve_streak"
)

// Condition pairs a tracked value with a target threshold.
type Condition struct {
	Type   ConditionType `json:"type"`
	Target float64       `json:"target"`
}

// Achievement is a snapshot-threshold unlock. Unlocking is idempotent and the
// gold reward is granted exactly once.
type Achievement struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Condition   Condition `json:"condition"`
	Unlocked    bool      `json:"unlocked"`
	RewardGold  int       `json:"reward_gold"`
}

// Task advances through discrete events and pays out via an explicit claim.
type Task struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Condition        Condition `json:"condition"`
	Progress         float64   `json:"progress"` // Monotonic, clamped at Target
	Completed        bool      `json:"completed"`
	Claimed          bool      `json:"claimed"`
	RewardGold       int       `json:"reward_gold"`
	RewardReputation float64   `json:"reward_reputation"`
}

// StatLookup resolves a condition type to its current value.
type StatLookup func(ConditionType) float64

// EvaluateAchievements unlocks every achievement whose condition is now met,
// mutating the slice in place. Already-unlocked entries are skipped. Returns
// the newly unlocked achievements.
func EvaluateAchievements(achs []Achievement, lookup StatLookup) []*Achievement {
	var unlocked []*Achievement
	for i := range achs {
		a := &achs[i]
		if a.Unlocked {
			continue
		}
		if lookup(a.Condition.Type) >= a.Condition.Target {
			a.Unlocked = true
			unlocked = append(unlocked, a)
		}
	}
	return unlocked
}

// EventKind is a discrete gameplay event that advances tasks.
type EventKind uint8

const (
	EventServeCustomer EventKind = iota // Amount = customers served (usually 1)
	EventEarnGold                       // Amount = gold earned
	EventHireMaid                       // Amount = maids hired (usually 1)
	EventUnlockMenuItem                 // Amount = items unlocked (usually 1)
	EventUpgradeCafe                    // Amount = new cafe level (absolute)
)

// conditionFor maps an event kind to the condition type it advances.
func conditionFor(k EventKind) ConditionType {
	switch k {
	case EventServeCustomer:
		return CondCustomersServed
	case EventEarnGold:
		return CondGoldEarned
	case EventHireMaid:
		return CondMaidsHired
	case EventUnlockMenuItem:
		return CondMenuUnlocked
	case EventUpgradeCafe:
		return CondCafeLevel
	default:
		return ""
	}
}

// AdvanceTasks applies one gameplay event to every matching incomplete task,
// mutating the slice in place. Cafe-level events set progress absolutely;
// all others accumulate. Progress clamps at the target and Completed flips
// exactly once. Returns the tasks completed by this event.
func AdvanceTasks(tasks []Task, kind EventKind, amount float64) []*Task {
	cond := conditionFor(kind)
	if cond == "" || amount <= 0 {
		return nil
	}

	var completed []*Task
	for i := range tasks {
		t := &tasks[i]
		if t.Completed || t.Condition.Type != cond {
			continue
		}
		if kind == EventUpgradeCafe {
			if amount > t.Progress {
				t.Progress = amount
			}
		} else {
			t.Progress += amount
		}
		if t.Progress >= t.Condition.Target {
			t.Progress = t.Condition.Target
			t.Completed = true
			completed = append(completed, t)
		}
	}
	return completed
}

// Claimable reports whether a task's reward can be collected.
func (t *Task) Claimable() bool {
	return t.Completed && !t.Claimed
}

// DefaultAchievements returns the starting achievement catalog.
func DefaultAchievements() []Achievement {
	return []Achievement{
		{ID: "first_customer", Name: "Irasshaimase!", Description: "Serve your first customer.", Condition: Condition{Type: CondCustomersServed, Target: 1}, RewardGold: 100},
		{ID: "fifty_served", Name: "Regular Crowd", Description: "Serve 50 customers.", Condition: Condition{Type: CondCustomersServed, Target: 50}, RewardGold: 500},
		{ID: "gold_5000", Name: "Healthy Till", Description: "Earn 5,000 gold in total.", Condition: Condition{Type: CondGoldEarned, Target: 5000}, RewardGold: 300},
		{ID: "full_roster", Name: "Full Roster", Description: "Employ five maids.", Condition: Condition{Type: CondMaidsHired, Target: 5}, RewardGold: 400},
		{ID: "cafe_level_3", Name: "Expansion", Description: "Upgrade the cafe to level 3.", Condition: Condition{Type: CondCafeLevel, Target: 3}, RewardGold: 800},
		{ID: "reputation_80", Name: "Word of Mouth", Description: "Reach 80 reputation.", Condition: Condition{Type: CondReputation, Target: 80}, RewardGold: 600},
		{ID: "streak_10", Name: "Flawless Shift", Description: "Complete 10 services in a row without a walkout.", Condition: Condition{Type: CondServeStreak, Target: 10}, RewardGold: 500},
		{ID: "week_open", Name: "One Week Open", Description: "Stay in business for 7 days.", Condition: Condition{Type: CondDaysPlayed, Target: 7}, RewardGold: 700},
	}
}

// DefaultTasks returns the starting task list.
func DefaultTasks() []Task {
	return []Task{
		{ID: "serve_10", Name: "Opening Rush", Description: "Serve 10 customers.", Condition: Condition{Type: CondCustomersServed, Target: 10}, RewardGold: 200, RewardReputation: 2},
		{ID: "earn_1000", Name: "First Thousand", Description: "Earn 1,000 gold.", Condition: Condition{Type: CondGoldEarned, Target: 1000}, RewardGold: 150, RewardReputation: 1},
		{ID: "hire_2", Name: "Helping Hands", Description: "Hire two maids.", Condition: Condition{Type: CondMaidsHired, Target: 2}, RewardGold: 250, RewardReputation: 1},
		{ID: "unlock_3_items", Name: "Menu Study", Description: "Unlock three new menu items.", Condition: Condition{Type: CondMenuUnlocked, Target: 3}, RewardGold: 300, RewardReputation: 2},
		{ID: "cafe_level_2", Name: "Bigger Floor", Description: "Upgrade the cafe to level 2.", Condition: Condition{Type: CondCafeLevel, Target: 2}, RewardGold: 400, RewardReputation: 3},
	}
}
