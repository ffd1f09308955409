// Package menu provides the cafe menu: items, seasonal availability, pricing
// bounds, and weighted item selection for order generation.
package menu

import "github.com/ayameworks/cafesim/internal/rng"

// Season indexes the four in-game seasons.
type Season uint8

const (
	SeasonSpring Season = 0
	SeasonSummer Season = 1
	SeasonAutumn Season = 2
	SeasonWinter Season = 3
)

// SeasonName returns a human-readable season name.
func SeasonName(s Season) string {
	switch s {
	case SeasonSpring:
		return "Spring"
	case SeasonSummer:
		return "Summer"
	case SeasonAutumn:
		return "Autumn"
	case SeasonWinter:
		return "Winter"
	default:
		return "Unknown"
	}
}

// Category groups menu items for display and equipment bonuses.
type Category uint8

const (
	CategoryDrink   Category = iota
	CategoryDessert
	CategoryMeal
	CategorySpecial
)

// Pricing bounds relative to an item's base price.
const (
	MinPriceFactor = 0.5
	MaxPriceFactor = 2.0
)

// Item is one orderable menu entry.
type Item struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Category   Category `json:"category"`
	BasePrice  int      `json:"base_price"`
	Price      int      `json:"price"`
	Popularity float64  `json:"popularity"` // Selection weight bonus, 0–100
	Unlocked   bool     `json:"unlocked"`
	Seasons    []Season `json:"seasons,omitempty"` // Empty = available year-round
}

// InSeason reports whether the item can be ordered in the given season.
func (it *Item) InSeason(s Season) bool {
	if len(it.Seasons) == 0 {
		return true
	}
	for _, sea := range it.Seasons {
		if sea == s {
			return true
		}
	}
	return false
}

// ValidPrice reports whether a price is inside the allowed band for the item.
func (it *Item) ValidPrice(price int) bool {
	lo := int(float64(it.BasePrice) * MinPriceFactor)
	hi := int(float64(it.BasePrice) * MaxPriceFactor)
	return price >= lo && price <= hi
}

// DefaultItems returns the starting menu. The first few items begin unlocked;
// the rest are unlocked through play.
func DefaultItems() []Item {
	return []Item{
		{ID: "coffee", Name: "House Blend Coffee", Category: CategoryDrink, BasePrice: 40, Price: 40, Popularity: 60, Unlocked: true},
		{ID: "royal_milk_tea", Name: "Royal Milk Tea", Category: CategoryDrink, BasePrice: 50, Price: 50, Popularity: 55, Unlocked: true},
		{ID: "omurice", Name: "Omurice", Category: CategoryMeal, BasePrice: 120, Price: 120, Popularity: 70, Unlocked: true},
		{ID: "pancakes", Name: "Fluffy Pancakes", Category: CategoryDessert, BasePrice: 90, Price: 90, Popularity: 65, Unlocked: true},
		{ID: "parfait", Name: "Strawberry Parfait", Category: CategoryDessert, BasePrice: 110, Price: 110, Popularity: 50, Unlocked: false, Seasons: []Season{SeasonSpring, SeasonSummer}},
		{ID: "iced_latte", Name: "Iced Caramel Latte", Category: CategoryDrink, BasePrice: 60, Price: 60, Popularity: 45, Unlocked: false, Seasons: []Season{SeasonSummer}},
		{ID: "curry", Name: "Maid's Special Curry", Category: CategoryMeal, BasePrice: 140, Price: 140, Popularity: 60, Unlocked: false},
		{ID: "pumpkin_tart", Name: "Pumpkin Tart", Category: CategoryDessert, BasePrice: 100, Price: 100, Popularity: 40, Unlocked: false, Seasons: []Season{SeasonAutumn}},
		{ID: "hot_chocolate", Name: "Thick Hot Chocolate", Category: CategoryDrink, BasePrice: 70, Price: 70, Popularity: 45, Unlocked: false, Seasons: []Season{SeasonAutumn, SeasonWinter}},
		{ID: "moe_omelet", Name: "Moe-Moe Omelet", Category: CategorySpecial, BasePrice: 200, Price: 200, Popularity: 35, Unlocked: false},
	}
}

// PickItems selects up to count distinct orderable items via weighted random
// selection (weight = 10 + popularity). Only unlocked, in-season items are
// eligible. Returns fewer items when the eligible pool is small.
func PickItems(items []Item, season Season, count int, p rng.Provider) []Item {
	eligible := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Unlocked && it.InSeason(season) {
			eligible = append(eligible, it)
		}
	}
	if len(eligible) == 0 || count <= 0 {
		return nil
	}

	picked := make([]Item, 0, count)
	for len(picked) < count && len(eligible) > 0 {
		weights := make([]float64, len(eligible))
		for i, it := range eligible {
			weights[i] = 10 + it.Popularity
		}
		idx := rng.WeightedIndex(p, weights)
		if idx < 0 {
			break
		}
		picked = append(picked, eligible[idx])
		eligible = append(eligible[:idx], eligible[idx+1:]...)
	}
	return picked
}
