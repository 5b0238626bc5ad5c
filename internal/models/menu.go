package models

import "fmt"

// MenuCategory represents the category of a dish
type MenuCategory string

const (
	// Menu categories
	MenuCategoryAppetizer MenuCategory = "appetizer"
	MenuCategoryEntree    MenuCategory = "entree"
	MenuCategoryBread     MenuCategory = "bread"
	MenuCategoryDessert   MenuCategory = "dessert"
	MenuCategoryBeverage  MenuCategory = "beverage"
)

// Dish represents a dish on the menu together with the ingredient
// quantities the kitchen needs to produce one serving.
type Dish struct {
	Name                 string             `json:"name"`
	Category             MenuCategory       `json:"category"`
	RequiredIngredients  map[string]float64 `json:"requiredIngredients"`
	PriceHint            float64            `json:"priceHint"`
	EstimatedPrepMinutes int                `json:"estimatedPrepMinutes"`
	DefaultSpice         SpiceLevel         `json:"defaultSpice,omitempty"`
}

// ValidateDish validates a dish definition
func ValidateDish(d *Dish) error {
	if d.Name == "" {
		return fmt.Errorf("dish name is required")
	}
	if d.PriceHint <= 0 {
		return fmt.Errorf("dish price must be greater than 0")
	}
	if len(d.RequiredIngredients) == 0 {
		return fmt.Errorf("dish must require at least one ingredient")
	}
	for name, qty := range d.RequiredIngredients {
		if qty <= 0 {
			return fmt.Errorf("required quantity for %s must be greater than 0", name)
		}
	}
	return nil
}

// RequiresIngredient checks if the dish needs a specific ingredient
func (d *Dish) RequiresIngredient(ingredient string) bool {
	_, ok := d.RequiredIngredients[ingredient]
	return ok
}

// IsInCategory checks if the dish belongs to a specific category
func (d *Dish) IsInCategory(category MenuCategory) bool {
	return d.Category == category
}
