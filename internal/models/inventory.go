package models

// Ingredient represents one pantry item in the ingredient ledger.
// Available mirrors Quantity > 0 and is refreshed on every save.
type Ingredient struct {
	ID        uint    `gorm:"primary_key" json:"-"`
	Name      string  `gorm:"unique_index" json:"name"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	Category  string  `json:"category"`
	Available bool    `json:"available"`
}

// TableName sets the table name for Ingredient
func (Ingredient) TableName() string {
	return "ingredients"
}

// BeforeSave keeps the availability flag consistent with the quantity
func (i *Ingredient) BeforeSave() error {
	i.Available = i.Quantity > 0
	return nil
}

// MissingIngredient describes one under-supplied requirement discovered by
// a feasibility check.
type MissingIngredient struct {
	Name      string  `json:"name"`
	Required  float64 `json:"required"`
	Available float64 `json:"available"`
}

// IngredientCategory represents the category of an ingredient
type IngredientCategory string

const (
	// Ingredient categories
	CategoryProtein  IngredientCategory = "protein"
	CategoryProduce  IngredientCategory = "produce"
	CategoryDairy    IngredientCategory = "dairy"
	CategoryDryGoods IngredientCategory = "dry_goods"
	CategorySpices   IngredientCategory = "spices"
)
