package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tandoor/internal/models"
)

func testDishNames() []string {
	return []string{"Butter Chicken", "Palak Paneer", "Garlic Naan", "Mango Lassi"}
}

func TestClassifyMenuInquiry(t *testing.T) {
	c := NewClassifier(testDishNames())

	cls := c.Classify("What's on the menu today?", nil)
	assert.Equal(t, models.IntentAskMenu, cls.Intent)
	assert.Equal(t, 0.9, cls.Confidence)

	cls = c.Classify("what do you serve?", nil)
	assert.Equal(t, models.IntentAskMenu, cls.Intent)
}

func TestClassifyMenuWinsOverDishMention(t *testing.T) {
	c := NewClassifier(testDishNames())

	// A dish name in a menu question must not trigger order placement
	cls := c.Classify("Does the menu have Butter Chicken?", nil)
	assert.Equal(t, models.IntentAskMenu, cls.Intent)
	assert.Empty(t, cls.DishName)
}

func TestClassifyPlaceOrder(t *testing.T) {
	c := NewClassifier(testDishNames())

	cls := c.Classify("I want 2 Garlic Naan", nil)
	assert.Equal(t, models.IntentPlaceOrder, cls.Intent)
	assert.Equal(t, 0.8, cls.Confidence)
	assert.Equal(t, "Garlic Naan", cls.DishName)
	assert.Equal(t, 2, cls.Quantity)
}

func TestClassifyDishMentionAloneIsAnOrder(t *testing.T) {
	c := NewClassifier(testDishNames())

	cls := c.Classify("Palak Paneer please", nil)
	assert.Equal(t, models.IntentPlaceOrder, cls.Intent)
	assert.Equal(t, "Palak Paneer", cls.DishName)
	assert.Equal(t, 1, cls.Quantity)
}

func TestClassifyTokenLevelDishExtraction(t *testing.T) {
	c := NewClassifier(testDishNames())

	cls := c.Classify("can I get a paneer", nil)
	assert.Equal(t, models.IntentPlaceOrder, cls.Intent)
	assert.Equal(t, "Palak Paneer", cls.DishName)
}

func TestClassifyOrderTriggerWithoutDish(t *testing.T) {
	c := NewClassifier(testDishNames())

	cls := c.Classify("I want to order something", nil)
	assert.Equal(t, models.IntentPlaceOrder, cls.Intent)
	assert.Equal(t, UnknownDish, cls.DishName)
}

func TestClassifyWhereIsMyOrderIsAStatusCheck(t *testing.T) {
	c := NewClassifier(testDishNames())

	// "order" is an order trigger, but with no dish named and a status
	// keyword present this must route to the status check.
	cls := c.Classify("Where is my order?", nil)
	assert.Equal(t, models.IntentCheckStatus, cls.Intent)
	assert.Equal(t, 0.75, cls.Confidence)
}

func TestClassifyStatusCheck(t *testing.T) {
	c := NewClassifier(testDishNames())

	for _, text := range []string{"is it ready yet", "status please", "are we done"} {
		cls := c.Classify(text, nil)
		assert.Equal(t, models.IntentCheckStatus, cls.Intent, "text: %s", text)
	}
}

func TestClassifyFallback(t *testing.T) {
	c := NewClassifier(testDishNames())

	cls := c.Classify("hello!", nil)
	assert.Equal(t, models.IntentFallback, cls.Intent)
	assert.Equal(t, 0.1, cls.Confidence)
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := NewClassifier(testDishNames())

	for _, text := range []string{
		"What's on the menu?",
		"I want 2 Garlic Naan",
		"Where is my order?",
		"hello!",
	} {
		first := c.Classify(text, nil)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, c.Classify(text, nil), "text: %s", text)
		}
	}
}

func TestExtractQuantity(t *testing.T) {
	assert.Equal(t, 3, extractQuantity("give me 3 samosas"))
	assert.Equal(t, 1, extractQuantity("a butter chicken"))
	assert.Equal(t, 12, extractQuantity("12 naan, thanks"))
}
