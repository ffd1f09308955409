// Customer spawning — weighted type selection, patience draw, and order
// generation from the unlocked, in-season menu.
package customer

import (
	"fmt"

	"github.com/ayameworks/cafesim/internal/menu"
	"github.com/ayameworks/cafesim/internal/rng"
)

// Spawner generates arriving customers. IDs come from a counter, not a
// random source, so runs with equal seeds produce identical snapshots.
type Spawner struct {
	p      rng.Provider
	nextID uint64
}

// NewSpawner creates a spawner backed by the given randomness provider.
func NewSpawner(p rng.Provider) *Spawner {
	return &Spawner{p: p, nextID: 1}
}

// SetNextID sets the next customer ID to be issued (used when restoring a
// save so new IDs cannot collide with loaded ones).
func (s *Spawner) SetNextID(id uint64) {
	s.nextID = id
}

// typeWeights returns selection weights for each customer type. VIP, critic,
// and group weights scale with reputation so a well-known cafe draws a more
// demanding crowd.
func typeWeights(reputation float64) [4]float64 {
	return [4]float64{
		TypeRegular: 60,
		TypeVIP:     8 + reputation*0.15,
		TypeCritic:  4 + reputation*0.08,
		TypeGroup:   12 + reputation*0.10,
	}
}

// Spawn creates one arriving customer. The caller is responsible for seat
// admission; the new customer starts in waiting_seat with no seat assigned.
func (s *Spawner) Spawn(reputation float64, season menu.Season, items []menu.Item, nowMinute float64) *Customer {
	w := typeWeights(reputation)
	idx := rng.WeightedIndex(s.p, w[:])
	if idx < 0 {
		idx = int(TypeRegular)
	}
	ctype := Type(idx)

	lo, hi := PatienceRange(ctype)
	patience := s.p.Range(lo, hi)

	id := s.nextID
	s.nextID++

	c := &Customer{
		ID:              fmt.Sprintf("cust-%06d", id),
		Name:            s.generateName(ctype),
		Type:            ctype,
		Patience:        patience,
		Status:          StatusWaitingSeat,
		SeatID:          NoSeat,
		Order:           s.generateOrder(ctype, season, items),
		ArrivedAtMinute: nowMinute,
	}
	return c
}

// generateOrder builds a line-item order via weighted menu selection.
// Groups order more items and larger quantities.
func (s *Spawner) generateOrder(t Type, season menu.Season, items []menu.Item) Order {
	count := 1 + s.p.IntN(2)
	maxQty := 1
	if t == TypeGroup {
		count = 2 + s.p.IntN(3)
		maxQty = 3
	}

	picked := menu.PickItems(items, season, count, s.p)
	order := Order{Lines: make([]OrderLine, 0, len(picked))}
	for _, it := range picked {
		qty := 1
		if maxQty > 1 {
			qty = 1 + s.p.IntN(maxQty)
		}
		order.Lines = append(order.Lines, OrderLine{
			ItemID:   it.ID,
			Name:     it.Name,
			Quantity: qty,
			Price:    it.Price,
		})
		order.Total += it.Price * qty
	}
	return order
}

var givenNames = []string{
	"Aoi", "Haru", "Rin", "Yuki", "Sora", "Mei", "Kaito", "Hana",
	"Ren", "Tsubaki", "Daichi", "Momo", "Itsuki", "Nanami", "Kenji",
}

func (s *Spawner) generateName(t Type) string {
	name := givenNames[s.p.IntN(len(givenNames))]
	switch t {
	case TypeVIP:
		return name + "-sama"
	case TypeCritic:
		return fmt.Sprintf("%s (critic)", name)
	case TypeGroup:
		return name + " & friends"
	default:
		return name
	}
}
