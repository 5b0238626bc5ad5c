package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusLifecycleIsForwardOnly(t *testing.T) {
	assert.True(t, OrderStatusPending.CanAdvanceTo(OrderStatusPrep))
	assert.True(t, OrderStatusPending.CanAdvanceTo(OrderStatusDelivered))
	assert.True(t, OrderStatusCooking.CanAdvanceTo(OrderStatusReady))

	assert.False(t, OrderStatusCooking.CanAdvanceTo(OrderStatusPrep))
	assert.False(t, OrderStatusReady.CanAdvanceTo(OrderStatusReady))
	assert.False(t, OrderStatusDelivered.CanAdvanceTo(OrderStatusPending))

	assert.False(t, OrderStatus("BURNT").CanAdvanceTo(OrderStatusPrep))
	assert.False(t, OrderStatusPending.CanAdvanceTo(OrderStatus("BURNT")))
}

func TestStatusRankAndTerminal(t *testing.T) {
	assert.Equal(t, 0, OrderStatusPending.Rank())
	assert.Equal(t, 5, OrderStatusDelivered.Rank())
	assert.Equal(t, -1, OrderStatus("BURNT").Rank())

	assert.True(t, OrderStatusDelivered.Terminal())
	assert.False(t, OrderStatusReady.Terminal())
}

func TestNewOrderID(t *testing.T) {
	now := time.Now()
	id := NewOrderID(now)

	assert.True(t, strings.HasPrefix(id, "ORD-"))
	assert.NotEqual(t, id, NewOrderID(now))
}

func TestValidateOrder(t *testing.T) {
	valid := &Order{
		OrderID:    "ORD-1",
		CustomerID: "cust-1",
		Dishes:     OrderDishes{{Name: "Garlic Naan", Quantity: 2}},
		Status:     OrderStatusPending,
	}
	assert.NoError(t, ValidateOrder(valid))

	missingCustomer := *valid
	missingCustomer.CustomerID = ""
	assert.Error(t, ValidateOrder(&missingCustomer))

	noDishes := *valid
	noDishes.Dishes = nil
	assert.Error(t, ValidateOrder(&noDishes))

	badQuantity := *valid
	badQuantity.Dishes = OrderDishes{{Name: "Garlic Naan", Quantity: 0}}
	assert.Error(t, ValidateOrder(&badQuantity))

	badStatus := *valid
	badStatus.Status = "BURNT"
	assert.Error(t, ValidateOrder(&badStatus))
}

func TestOrderDishesValueScan(t *testing.T) {
	dishes := OrderDishes{{Name: "Palak Paneer", Quantity: 1, SpiceLevel: SpiceMild}}

	val, err := dishes.Value()
	require.NoError(t, err)

	var decoded OrderDishes
	require.NoError(t, decoded.Scan(val))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Palak Paneer", decoded[0].Name)
	assert.Equal(t, SpiceMild, decoded[0].SpiceLevel)

	var empty OrderDishes
	require.NoError(t, empty.Scan(nil))
	assert.Empty(t, empty)
}
