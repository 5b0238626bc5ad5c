package kitchen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tandoor/internal/catalog"
	"tandoor/internal/ledger"
	"tandoor/internal/models"
	"tandoor/internal/store"
)

// fullPantry stocks every house dish generously
func fullPantry() map[string]float64 {
	return map[string]float64{
		"Chicken": 2000, "Paneer": 1000, "Spinach": 1000, "Tomatoes": 1000,
		"Cream": 1000, "Spices": 1000, "Butter": 1000, "Black Lentils": 1000,
		"Basmati Rice": 1000, "Onions": 1000, "Yogurt": 1000, "Chickpeas": 1000,
		"Flour": 1000, "Garlic": 1000, "Potatoes": 1000, "Peas": 1000,
		"Mango Pulp": 1000, "Sugar": 1000, "Milk Powder": 1000, "Ghee": 1000,
	}
}

type testKitchen struct {
	engine *Engine
	store  *store.MemoryOrderStore
	source *ledger.StaticSource
}

func newTestKitchen(t *testing.T, stock map[string]float64, cfg Config) *testKitchen {
	t.Helper()
	src := ledger.NewStaticSource(stock)
	orders := store.NewMemoryOrderStore()
	engine := NewEngine(orders, ledger.New(src), catalog.New(), InstantSleeper{}, nil, nil, cfg)
	return &testKitchen{engine: engine, store: orders, source: src}
}

func TestPlaceOrderCreatesPendingOrder(t *testing.T) {
	k := newTestKitchen(t, fullPantry(), DefaultConfig())

	order, err := k.engine.PlaceOrder(context.Background(), "cust-1", "Palak Paneer", 1, "", "")
	require.NoError(t, err)

	assert.NotEmpty(t, order.OrderID)
	assert.Equal(t, "cust-1", order.CustomerID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.InDelta(t, 14.49, order.TotalAmount, 0.001)
	// 20 minutes prep estimate plus the 3+8+2 nominal phases
	assert.Equal(t, "33 minutes", order.EstimatedTime)

	require.Len(t, order.Dishes, 1)
	assert.Equal(t, "Palak Paneer", order.Dishes[0].Name)
	assert.Equal(t, models.SpiceMild, order.Dishes[0].SpiceLevel)

	saved, err := k.store.Get(order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, saved.Status)
}

func TestPlaceOrderRejectsInfeasibleDish(t *testing.T) {
	stock := fullPantry()
	stock["Paneer"] = 50
	k := newTestKitchen(t, stock, DefaultConfig())

	_, err := k.engine.PlaceOrder(context.Background(), "cust-1", "Palak Paneer", 1, "", "")
	require.Error(t, err)

	var fe *FeasibilityError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Palak Paneer", fe.Dish)
	require.Len(t, fe.Missing, 1)
	assert.Equal(t, "Paneer", fe.Missing[0].Name)
	assert.Equal(t, 200.0, fe.Missing[0].Required)
	assert.Equal(t, 50.0, fe.Missing[0].Available)

	// The gate rejected before anything was persisted
	assert.Empty(t, k.store.OrdersForCustomer("cust-1", 10))
}

func TestPlaceOrderUnknownDish(t *testing.T) {
	k := newTestKitchen(t, fullPantry(), DefaultConfig())

	_, err := k.engine.PlaceOrder(context.Background(), "cust-1", "Pizza Margherita", 1, "", "")
	var ue *UnknownDishError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "Pizza Margherita", ue.Name)
}

func TestPlaceOrderInvalidQuantity(t *testing.T) {
	k := newTestKitchen(t, fullPantry(), DefaultConfig())

	_, err := k.engine.PlaceOrder(context.Background(), "cust-1", "Garlic Naan", 0, "", "")
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestPlaceOrderStoreOffline(t *testing.T) {
	k := newTestKitchen(t, fullPantry(), DefaultConfig())
	k.store.Offline = true

	_, err := k.engine.PlaceOrder(context.Background(), "cust-1", "Garlic Naan", 1, "", "")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestPlaceOrderLedgerUnreachable(t *testing.T) {
	k := newTestKitchen(t, fullPantry(), DefaultConfig())
	k.source.Fail = true

	_, err := k.engine.PlaceOrder(context.Background(), "cust-1", "Garlic Naan", 1, "", "")
	require.Error(t, err)

	// An unreachable ledger is an operational error, not a feasibility verdict
	var fe *FeasibilityError
	assert.False(t, errors.As(err, &fe))
}

func TestCookRunsFullPhaseSequence(t *testing.T) {
	k := newTestKitchen(t, fullPantry(), DefaultConfig())

	order, err := k.engine.PlaceOrder(context.Background(), "cust-1", "Butter Chicken", 1, "", "")
	require.NoError(t, err)

	cooked, err := k.engine.Cook(context.Background(), order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusReady, cooked.Status)

	saved, err := k.store.Get(order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusReady, saved.Status)
	assert.Nil(t, saved.CompletedAt)
}

func TestCookRequiresPendingOrder(t *testing.T) {
	k := newTestKitchen(t, fullPantry(), DefaultConfig())

	order, err := k.engine.PlaceOrder(context.Background(), "cust-1", "Butter Chicken", 1, "", "")
	require.NoError(t, err)
	_, err = k.engine.Cook(context.Background(), order.OrderID)
	require.NoError(t, err)

	// Second cook sees a READY order and refuses
	_, err = k.engine.Cook(context.Background(), order.OrderID)
	assert.Error(t, err)
}

func TestCookReGatesBeforeFirstPhase(t *testing.T) {
	k := newTestKitchen(t, fullPantry(), DefaultConfig())

	order, err := k.engine.PlaceOrder(context.Background(), "cust-1", "Palak Paneer", 1, "", "")
	require.NoError(t, err)

	// Stock vanished between placement and cooking
	require.NoError(t, k.source.Debit("Paneer", 950))

	cooked, err := k.engine.Cook(context.Background(), order.OrderID)
	require.Error(t, err)
	var fe *FeasibilityError
	require.ErrorAs(t, err, &fe)

	// The order halted without entering any phase
	assert.Equal(t, models.OrderStatusPending, cooked.Status)
	saved, err := k.store.Get(order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, saved.Status)
}

func TestCookAbortsOnCancelledContext(t *testing.T) {
	k := newTestKitchen(t, fullPantry(), DefaultConfig())

	order, err := k.engine.PlaceOrder(context.Background(), "cust-1", "Butter Chicken", 1, "", "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = k.engine.Cook(ctx, order.OrderID)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDeliverRequiresReadyOrder(t *testing.T) {
	k := newTestKitchen(t, fullPantry(), DefaultConfig())

	order, err := k.engine.PlaceOrder(context.Background(), "cust-1", "Butter Chicken", 1, "", "")
	require.NoError(t, err)

	_, err = k.engine.Deliver(context.Background(), order.OrderID)
	var nre *NotReadyError
	require.ErrorAs(t, err, &nre)
	assert.Equal(t, models.OrderStatusPending, nre.Status)
}

func TestDeliverCompletesReadyOrder(t *testing.T) {
	k := newTestKitchen(t, fullPantry(), DefaultConfig())

	order, err := k.engine.PlaceOrder(context.Background(), "cust-1", "Butter Chicken", 1, "", "")
	require.NoError(t, err)
	_, err = k.engine.Cook(context.Background(), order.OrderID)
	require.NoError(t, err)

	delivered, err := k.engine.Deliver(context.Background(), order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, delivered.Status)
	require.NotNil(t, delivered.CompletedAt)

	// Delivery is terminal
	_, err = k.engine.Deliver(context.Background(), order.OrderID)
	assert.Error(t, err)
}

func TestCheckAndCompleteStatusReportsThenCompletes(t *testing.T) {
	k := newTestKitchen(t, fullPantry(), DefaultConfig())
	ctx := context.Background()

	order, err := k.engine.PlaceOrder(ctx, "cust-1", "Butter Chicken", 1, "", "")
	require.NoError(t, err)
	_, err = k.engine.Cook(ctx, order.OrderID)
	require.NoError(t, err)

	orders, err := k.engine.CheckAndCompleteStatus(ctx, "cust-1", 5)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	// The report carries the status the order had when the customer asked
	assert.Equal(t, models.OrderStatusReady, orders[0].Status)

	// ...but the side effect already completed it
	saved, err := k.store.Get(order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, saved.Status)
	assert.NotNil(t, saved.CompletedAt)

	// Asking again reports the delivered order without touching it
	orders, err = k.engine.CheckAndCompleteStatus(ctx, "cust-1", 5)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderStatusDelivered, orders[0].Status)
}

func TestCheckAndCompleteStatusNoOrders(t *testing.T) {
	k := newTestKitchen(t, fullPantry(), DefaultConfig())

	orders, err := k.engine.CheckAndCompleteStatus(context.Background(), "cust-unknown", 5)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestDebitStockOnCreateConsumesIngredients(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DebitStockOnCreate = true
	stock := fullPantry()
	stock["Paneer"] = 250
	k := newTestKitchen(t, stock, cfg)
	ctx := context.Background()

	_, err := k.engine.PlaceOrder(ctx, "cust-1", "Palak Paneer", 1, "", "")
	require.NoError(t, err)

	// The first order spent the paneer; the second must be rejected
	_, err = k.engine.PlaceOrder(ctx, "cust-2", "Palak Paneer", 1, "", "")
	var fe *FeasibilityError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Paneer", fe.Missing[0].Name)
}
