package types

import (
	"encoding/json"
	"fmt"
	"sort"
)

// DayPlan is one entry of the day-by-day plan. Day is 1-based and matches the
// entry's position in the plan.
type DayPlan struct {
	Day        int      `json:"day"`
	Activities []string `json:"activities"`
}

// CostCategory is one category of the cost breakdown. The model returns either
// a flat amount or a nested item->amount object per category, so both shapes
// are preserved.
type CostCategory struct {
	Total float64
	Items map[string]float64
	Flat  bool
}

func (c *CostCategory) UnmarshalJSON(data []byte) error {
	var amount float64
	if err := json.Unmarshal(data, &amount); err == nil {
		c.Total = amount
		c.Items = nil
		c.Flat = true
		return nil
	}
	var items map[string]float64
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("cost category must be a number or an object of amounts: %w", err)
	}
	c.Items = items
	c.Flat = false
	return nil
}

func (c CostCategory) MarshalJSON() ([]byte, error) {
	if c.Flat {
		return json.Marshal(c.Total)
	}
	return json.Marshal(c.Items)
}

// Sum returns the category total regardless of shape.
func (c CostCategory) Sum() float64 {
	if c.Flat {
		return c.Total
	}
	var sum float64
	for _, amount := range c.Items {
		sum += amount
	}
	return sum
}

// SortedItems returns the item names in deterministic order for rendering.
func (c CostCategory) SortedItems() []string {
	names := make([]string, 0, len(c.Items))
	for name := range c.Items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CostBreakdown maps a category name (transport, food, activities,
// accommodation) to its amounts.
type CostBreakdown map[string]CostCategory

// SortedCategories returns category names in deterministic order.
func (b CostBreakdown) SortedCategories() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ItineraryDocument is the structured result of a generation call. It echoes
// the request parameters back and is immutable after creation.
type ItineraryDocument struct {
	Destination   string        `json:"destination"`
	Days          int           `json:"days"`
	Budget        float64       `json:"budget"`
	Interests     []string      `json:"interests"`
	Plan          []DayPlan     `json:"plan"`
	CostBreakdown CostBreakdown `json:"cost_breakdown"`
}
