package coach

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	MaxMealItems = 8

	defaultKcal    = 400
	defaultProtein = 25
	defaultCarbs   = 40
	defaultFat     = 12
)

type Macros struct {
	P int `json:"P"`
	C int `json:"C"`
	F int `json:"F"`
}

type Meal struct {
	ID     int      `json:"id"`
	Title  string   `json:"title"`
	Kcal   int      `json:"kcal"`
	Macros Macros   `json:"macros"`
	Items  []string `json:"items"`
}

// rawMeal is what the model is asked to return for each meal.
type rawMeal struct {
	Title  any `json:"title"`
	Kcal   any `json:"kcal"`
	Macros any `json:"macros"`
	Items  any `json:"items"`
}

// FallbackPlan is served whenever the model's output is unusable.
func FallbackPlan() []Meal {
	return []Meal{
		{ID: 1, Title: "High-Protein Breakfast Bowl", Kcal: 520, Macros: Macros{P: 45, C: 55, F: 15},
			Items: []string{"4 eggs (2 whole, 2 whites)", "Oats 60g", "Blueberries", "Almonds"}},
		{ID: 2, Title: "Simple Steak & Rice", Kcal: 680, Macros: Macros{P: 55, C: 65, F: 20},
			Items: []string{"Sirloin 7oz", "Jasmine rice 200g cooked", "Broccoli", "Olive oil"}},
		{ID: 3, Title: "Greek Yogurt Parfait", Kcal: 380, Macros: Macros{P: 30, C: 40, F: 10},
			Items: []string{"Greek yogurt 250g", "Honey 1 tsp", "Granola 30g", "Strawberries"}},
		{ID: 4, Title: "Evening Snack Wrap", Kcal: 360, Macros: Macros{P: 25, C: 35, F: 10},
			Items: []string{"Whole-wheat wrap", "Turkey 4oz", "Spring mix", "Greek yogurt sauce"}},
	}
}

// ParseMealPlan decodes the model output. Anything other than a non-empty
// JSON array yields FallbackPlan, reported by the second return value.
// Meals are renumbered 1..n and normalised.
func ParseMealPlan(raw string) ([]Meal, bool) {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &elems); err != nil || len(elems) == 0 {
		return FallbackPlan(), true
	}

	out := make([]Meal, 0, len(elems))
	for i, elem := range elems {
		var m rawMeal
		if err := json.Unmarshal(elem, &m); err != nil {
			// non-object element: every field takes its default
			m = rawMeal{}
		}
		out = append(out, normalizeMeal(i+1, m))
	}
	return out, false
}

func normalizeMeal(id int, m rawMeal) Meal {
	title, ok := m.Title.(string)
	if !ok || strings.TrimSpace(title) == "" {
		title = fmt.Sprintf("Meal #%d", id)
	}

	macros, _ := m.Macros.(map[string]any)
	return Meal{
		ID:    id,
		Title: title,
		Kcal:  toInt(m.Kcal, defaultKcal),
		Macros: Macros{
			P: toInt(macros["P"], defaultProtein),
			C: toInt(macros["C"], defaultCarbs),
			F: toInt(macros["F"], defaultFat),
		},
		Items: toItems(m.Items),
	}
}

// toInt accepts JSON numbers and numeric strings; fractions are truncated.
func toInt(v any, def int) int {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return def
		}
		return int(t)
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int(f)
		}
	}
	return def
}

func toItems(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return []string{}
	}
	if len(list) > MaxMealItems {
		list = list[:MaxMealItems]
	}
	items := make([]string, 0, len(list))
	for _, it := range list {
		items = append(items, literal(it))
	}
	return items
}
