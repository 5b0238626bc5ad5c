package database

import (
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"

	"tandoor/internal/models"
)

// SeedIngredients ensures the ledger has a starting pantry. Runs only when
// the ingredients table is empty so restocked quantities survive restarts.
func SeedIngredients(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Ingredient{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	pantry := []models.Ingredient{
		{Name: "Chicken", Quantity: 1000, Unit: "g", Category: string(models.CategoryProtein)},
		{Name: "Paneer", Quantity: 300, Unit: "g", Category: string(models.CategoryDairy)},
		{Name: "Spinach", Quantity: 200, Unit: "g", Category: string(models.CategoryProduce)},
		{Name: "Tomatoes", Quantity: 100, Unit: "g", Category: string(models.CategoryProduce)},
		{Name: "Cream", Quantity: 50, Unit: "ml", Category: string(models.CategoryDairy)},
		{Name: "Spices", Quantity: 50, Unit: "g", Category: string(models.CategorySpices)},
		{Name: "Butter", Quantity: 200, Unit: "g", Category: string(models.CategoryDairy)},
		{Name: "Black Lentils", Quantity: 500, Unit: "g", Category: string(models.CategoryDryGoods)},
		{Name: "Basmati Rice", Quantity: 1000, Unit: "g", Category: string(models.CategoryDryGoods)},
		{Name: "Onions", Quantity: 300, Unit: "g", Category: string(models.CategoryProduce)},
		{Name: "Yogurt", Quantity: 500, Unit: "g", Category: string(models.CategoryDairy)},
		{Name: "Chickpeas", Quantity: 500, Unit: "g", Category: string(models.CategoryDryGoods)},
		{Name: "Flour", Quantity: 1000, Unit: "g", Category: string(models.CategoryDryGoods)},
		{Name: "Garlic", Quantity: 100, Unit: "g", Category: string(models.CategoryProduce)},
		{Name: "Potatoes", Quantity: 500, Unit: "g", Category: string(models.CategoryProduce)},
		{Name: "Peas", Quantity: 200, Unit: "g", Category: string(models.CategoryProduce)},
		{Name: "Mango Pulp", Quantity: 300, Unit: "g", Category: string(models.CategoryProduce)},
		{Name: "Sugar", Quantity: 300, Unit: "g", Category: string(models.CategoryDryGoods)},
		{Name: "Milk Powder", Quantity: 200, Unit: "g", Category: string(models.CategoryDairy)},
		{Name: "Ghee", Quantity: 150, Unit: "g", Category: string(models.CategoryDairy)},
	}

	for i := range pantry {
		if err := db.Create(&pantry[i]).Error; err != nil {
			return err
		}
	}
	logrus.WithField("items", len(pantry)).Info("seeded ingredient ledger")
	return nil
}
