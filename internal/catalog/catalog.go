// Package catalog holds the static menu: every dish the kitchen knows how
// to make and the ingredient quantities one serving requires.
package catalog

import (
	"sort"
	"strings"

	"tandoor/internal/models"
)

// Catalog is the static dish registry. The dish slice is ordered; name
// resolution scans it front to back so the order is part of the contract.
type Catalog struct {
	dishes []models.Dish
}

// New creates a catalog populated with the house menu
func New() *Catalog {
	return &Catalog{dishes: defaultMenu()}
}

// NewWithDishes creates a catalog from an explicit dish list, preserving order
func NewWithDishes(dishes []models.Dish) *Catalog {
	return &Catalog{dishes: dishes}
}

// Dishes returns all dish definitions in registration order
func (c *Catalog) Dishes() []models.Dish {
	out := make([]models.Dish, len(c.dishes))
	copy(out, c.dishes)
	return out
}

// Names returns all dish names in registration order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.dishes))
	for i, d := range c.dishes {
		names[i] = d.Name
	}
	return names
}

// Find resolves a dish by name. Exact case-insensitive match wins first;
// otherwise the name is matched token by token against the catalog, first
// hit in registration order wins.
func (c *Catalog) Find(name string) (models.Dish, bool) {
	lowered := strings.ToLower(strings.TrimSpace(name))
	if lowered == "" {
		return models.Dish{}, false
	}

	for _, d := range c.dishes {
		if strings.ToLower(d.Name) == lowered {
			return d, true
		}
	}

	// Token-overlap fallback for naming variants ("paneer" -> "Palak Paneer")
	for _, d := range c.dishes {
		for _, token := range strings.Fields(strings.ToLower(d.Name)) {
			if strings.Contains(lowered, token) {
				return d, true
			}
		}
	}

	return models.Dish{}, false
}

// ByCategory groups all dishes by menu category
func (c *Catalog) ByCategory() []models.MenuSection {
	return GroupByCategory(c.dishes)
}

// GroupByCategory groups an arbitrary dish list into ordered menu sections
func GroupByCategory(dishes []models.Dish) []models.MenuSection {
	byCat := make(map[models.MenuCategory][]models.Dish)
	for _, d := range dishes {
		byCat[d.Category] = append(byCat[d.Category], d)
	}

	sections := make([]models.MenuSection, 0, len(byCat))
	for cat, ds := range byCat {
		sections = append(sections, models.MenuSection{Category: cat, Dishes: ds})
	}
	sort.Slice(sections, func(i, j int) bool {
		return categoryOrder(sections[i].Category) < categoryOrder(sections[j].Category)
	})
	return sections
}

func categoryOrder(c models.MenuCategory) int {
	switch c {
	case models.MenuCategoryAppetizer:
		return 0
	case models.MenuCategoryEntree:
		return 1
	case models.MenuCategoryBread:
		return 2
	case models.MenuCategoryDessert:
		return 3
	case models.MenuCategoryBeverage:
		return 4
	default:
		return 5
	}
}

// defaultMenu is the house menu. Quantities are grams per serving except
// where the unit on the ledger says otherwise.
func defaultMenu() []models.Dish {
	return []models.Dish{
		{
			Name:     "Butter Chicken",
			Category: models.MenuCategoryEntree,
			RequiredIngredients: map[string]float64{
				"Chicken": 250, "Tomatoes": 100, "Butter": 50, "Cream": 50, "Spices": 15,
			},
			PriceHint:            16.99,
			EstimatedPrepMinutes: 25,
			DefaultSpice:         models.SpiceMedium,
		},
		{
			Name:     "Palak Paneer",
			Category: models.MenuCategoryEntree,
			RequiredIngredients: map[string]float64{
				"Paneer": 200, "Spinach": 150, "Cream": 30, "Spices": 10,
			},
			PriceHint:            14.49,
			EstimatedPrepMinutes: 20,
			DefaultSpice:         models.SpiceMild,
		},
		{
			Name:     "Dal Makhani",
			Category: models.MenuCategoryEntree,
			RequiredIngredients: map[string]float64{
				"Black Lentils": 150, "Butter": 30, "Cream": 40, "Spices": 10,
			},
			PriceHint:            12.99,
			EstimatedPrepMinutes: 30,
			DefaultSpice:         models.SpiceMild,
		},
		{
			Name:     "Chicken Biryani",
			Category: models.MenuCategoryEntree,
			RequiredIngredients: map[string]float64{
				"Chicken": 200, "Basmati Rice": 200, "Onions": 50, "Spices": 20,
			},
			PriceHint:            15.99,
			EstimatedPrepMinutes: 35,
			DefaultSpice:         models.SpiceHot,
		},
		{
			Name:     "Tandoori Chicken",
			Category: models.MenuCategoryEntree,
			RequiredIngredients: map[string]float64{
				"Chicken": 300, "Yogurt": 100, "Spices": 20,
			},
			PriceHint:            17.49,
			EstimatedPrepMinutes: 30,
			DefaultSpice:         models.SpiceHot,
		},
		{
			Name:     "Chana Masala",
			Category: models.MenuCategoryEntree,
			RequiredIngredients: map[string]float64{
				"Chickpeas": 200, "Tomatoes": 80, "Onions": 50, "Spices": 15,
			},
			PriceHint:            11.99,
			EstimatedPrepMinutes: 22,
			DefaultSpice:         models.SpiceMedium,
		},
		{
			Name:     "Vegetable Samosa",
			Category: models.MenuCategoryAppetizer,
			RequiredIngredients: map[string]float64{
				"Flour": 80, "Potatoes": 120, "Peas": 40, "Spices": 10,
			},
			PriceHint:            6.49,
			EstimatedPrepMinutes: 15,
			DefaultSpice:         models.SpiceMild,
		},
		{
			Name:     "Garlic Naan",
			Category: models.MenuCategoryBread,
			RequiredIngredients: map[string]float64{
				"Flour": 120, "Garlic": 10, "Butter": 20,
			},
			PriceHint:            3.99,
			EstimatedPrepMinutes: 10,
		},
		{
			Name:     "Gulab Jamun",
			Category: models.MenuCategoryDessert,
			RequiredIngredients: map[string]float64{
				"Milk Powder": 100, "Sugar": 80, "Ghee": 30,
			},
			PriceHint:            5.99,
			EstimatedPrepMinutes: 12,
		},
		{
			Name:     "Mango Lassi",
			Category: models.MenuCategoryBeverage,
			RequiredIngredients: map[string]float64{
				"Yogurt": 150, "Mango Pulp": 100, "Sugar": 20,
			},
			PriceHint:            4.99,
			EstimatedPrepMinutes: 5,
		},
	}
}
