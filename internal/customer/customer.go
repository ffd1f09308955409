// Package customer provides the customer data model, the patience system,
// and spawn/order generation.
package customer

// Type classifies a customer and drives patience, decay, and reward scaling.
type Type uint8

const (
	TypeRegular Type = iota
	TypeVIP
	TypeCritic
	TypeGroup
)

// TypeName returns a human-readable customer type name.
func TypeName(t Type) string {
	switch t {
	case TypeRegular:
		return "regular"
	case TypeVIP:
		return "vip"
	case TypeCritic:
		return "critic"
	case TypeGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Status is the customer lifecycle state machine.
//
//	waiting_seat → seated → ordering → waiting_order → eating → paying → leaving
//
// A patience timeout jumps any pre-eating status straight to leaving.
type Status uint8

const (
	StatusWaitingSeat Status = iota
	StatusSeated
	StatusOrdering
	StatusWaitingOrder
	StatusEating
	StatusPaying
	StatusLeaving
)

// StatusName returns a human-readable status name.
func StatusName(s Status) string {
	switch s {
	case StatusWaitingSeat:
		return "waiting_seat"
	case StatusSeated:
		return "seated"
	case StatusOrdering:
		return "ordering"
	case StatusWaitingOrder:
		return "waiting_order"
	case StatusEating:
		return "eating"
	case StatusPaying:
		return "paying"
	case StatusLeaving:
		return "leaving"
	default:
		return "unknown"
	}
}

// OrderLine is one menu item within an order.
type OrderLine struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int    `json:"price"` // Unit price at order time
	Prepared bool   `json:"prepared"`
}

// Order is the full set of items a customer wants.
type Order struct {
	Lines []OrderLine `json:"lines"`
	Total int         `json:"total"`
}

// NoSeat marks a customer without an assigned seat.
const NoSeat = -1

// Customer is one visitor moving through the cafe.
type Customer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type Type   `json:"type"`

	Patience     float64 `json:"patience"`     // 0–100; 0 forces a negative exit
	Satisfaction float64 `json:"satisfaction"` // 0–100; set on service completion

	Status Status `json:"status"`
	Order  Order  `json:"order"`
	SeatID int    `json:"seat_id"` // NoSeat while unassigned

	ServiceProgress    float64 `json:"service_progress"` // 0–100 while waiting_order
	ServingMaidID      string  `json:"serving_maid_id,omitempty"`
	ArrivedAtMinute    float64 `json:"arrived_at_minute"`
	ServiceStartMinute float64 `json:"service_start_minute,omitempty"`
}

// Decaying reports whether patience decays in the given status. Customers who
// already have their food are committed and never time out.
func Decaying(s Status) bool {
	switch s {
	case StatusEating, StatusPaying, StatusLeaving:
		return false
	default:
		return true
	}
}

// TypeDecayFactor multiplies the status decay rate. Critics are the least
// patient, groups the most.
func TypeDecayFactor(t Type) float64 {
	switch t {
	case TypeCritic:
		return 1.5
	case TypeVIP:
		return 1.2
	case TypeGroup:
		return 0.8
	default:
		return 1.0
	}
}

// TimeoutPenalty is the reputation cost when a customer of the given type
// walks out after their patience runs dry.
func TimeoutPenalty(t Type) float64 {
	switch t {
	case TypeCritic:
		return 5
	case TypeVIP:
		return 3
	default:
		return 2
	}
}

// PatienceRange returns the starting patience interval for a type.
func PatienceRange(t Type) (lo, hi float64) {
	switch t {
	case TypeVIP:
		return 50, 80
	case TypeCritic:
		return 40, 70
	case TypeGroup:
		return 70, 100
	default:
		return 60, 90
	}
}

// RewardGoldMultiplier scales the gold payout on completion. Satisfied VIPs
// pay a premium.
func RewardGoldMultiplier(t Type, satisfaction float64) float64 {
	if t == TypeVIP && satisfaction >= 50 {
		return 1.2
	}
	return 1.0
}

// ReputationDelta maps a completed service's satisfaction to a reputation
// change. Critics swing hardest in both directions; groups are lenient.
func ReputationDelta(t Type, satisfaction float64) float64 {
	var delta float64
	switch {
	case satisfaction >= 80:
		delta = 2
	case satisfaction >= 50:
		delta = 1
	case satisfaction >= 30:
		delta = -1
	default:
		delta = -2
	}

	switch t {
	case TypeCritic:
		delta *= 2.5
	case TypeVIP:
		if delta < 0 {
			delta *= 2
		} else {
			delta *= 1.5
		}
	case TypeGroup:
		if delta < 0 {
			delta *= 0.5
		}
	}
	return delta
}

// AdjustSatisfaction applies the type-specific shaping to a raw satisfaction
// score. VIPs amplify swings around the midpoint, critics dampen them, and
// groups get a flat leniency bonus.
func AdjustSatisfaction(t Type, raw float64) float64 {
	switch t {
	case TypeVIP:
		raw = 50 + (raw-50)*1.3
	case TypeCritic:
		raw = 50 + (raw-50)*0.8
	case TypeGroup:
		raw += 5
	}
	if raw < 0 {
		return 0
	}
	if raw > 100 {
		return 100
	}
	return raw
}
