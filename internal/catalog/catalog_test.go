package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tandoor/internal/models"
)

func TestFindExactCaseInsensitive(t *testing.T) {
	c := New()

	dish, ok := c.Find("butter chicken")
	require.True(t, ok)
	assert.Equal(t, "Butter Chicken", dish.Name)
	assert.Equal(t, models.MenuCategoryEntree, dish.Category)
}

func TestFindTokenFallback(t *testing.T) {
	c := New()

	dish, ok := c.Find("paneer")
	require.True(t, ok)
	assert.Equal(t, "Palak Paneer", dish.Name)
}

func TestFindUnknownDish(t *testing.T) {
	c := New()

	_, ok := c.Find("pizza")
	assert.False(t, ok)

	_, ok = c.Find("   ")
	assert.False(t, ok)
}

func TestNamesPreserveRegistrationOrder(t *testing.T) {
	c := NewWithDishes([]models.Dish{
		{Name: "B", Category: models.MenuCategoryEntree},
		{Name: "A", Category: models.MenuCategoryEntree},
	})
	assert.Equal(t, []string{"B", "A"}, c.Names())
}

func TestByCategoryOrdersSections(t *testing.T) {
	c := New()

	sections := c.ByCategory()
	require.NotEmpty(t, sections)
	assert.Equal(t, models.MenuCategoryAppetizer, sections[0].Category)

	last := sections[len(sections)-1]
	assert.Equal(t, models.MenuCategoryBeverage, last.Category)

	total := 0
	for _, s := range sections {
		total += len(s.Dishes)
	}
	assert.Equal(t, len(c.Dishes()), total)
}

func TestDefaultMenuDishesAreValid(t *testing.T) {
	for _, dish := range New().Dishes() {
		assert.NoError(t, models.ValidateDish(&dish), "dish: %s", dish.Name)
	}
}
