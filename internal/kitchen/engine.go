// Package kitchen drives one order through its lifecycle:
// PENDING -> PREP -> COOKING -> PLATING -> READY -> DELIVERED.
// Every stage entry is gated by an ingredient feasibility check and the
// status never moves backward.
package kitchen

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"tandoor/internal/models"
	"tandoor/internal/monitoring"
	"tandoor/internal/notify"
)

// OrderStore is the persistence the engine mutates orders through
type OrderStore interface {
	CreateOrder(o *models.Order) (bool, error)
	Get(orderID string) (*models.Order, error)
	OrdersForCustomer(customerID string, limit int) []models.Order
	UpdateStatus(orderID string, next models.OrderStatus) error
	MarkDelivered(customerID string, orderIDs []string) error
}

// Ledger answers feasibility questions for the engine's gates
type Ledger interface {
	CheckDish(dish models.Dish, servings int) ([]models.MissingIngredient, error)
	CheckAndDebit(dish models.Dish, servings int) ([]models.MissingIngredient, error)
}

// Catalog resolves dish names to definitions
type Catalog interface {
	Find(name string) (models.Dish, bool)
}

// Config holds the tunable kitchen parameters. Phase durations are nominal
// cooking times; tests inject an instant sleeper instead of shrinking them.
type Config struct {
	PrepTime  time.Duration
	CookTime  time.Duration
	PlateTime time.Duration

	// DebitStockOnCreate switches the entry gate to atomic
	// check-and-decrement. Off by default: the observed system never
	// debited the ledger when an order was created.
	DebitStockOnCreate bool
}

// DefaultConfig returns the nominal phase durations
func DefaultConfig() Config {
	return Config{
		PrepTime:  3 * time.Minute,
		CookTime:  8 * time.Minute,
		PlateTime: 2 * time.Minute,
	}
}

// Engine runs the order lifecycle state machine
type Engine struct {
	store    OrderStore
	ledger   Ledger
	catalog  Catalog
	sleeper  Sleeper
	notifier notify.Notifier
	metrics  *monitoring.Metrics
	cfg      Config
	log      *logrus.Entry
}

// NewEngine creates a lifecycle engine. notifier and metrics may be nil.
func NewEngine(store OrderStore, ledger Ledger, catalog Catalog, sleeper Sleeper, notifier notify.Notifier, metrics *monitoring.Metrics, cfg Config) *Engine {
	if sleeper == nil {
		sleeper = RealSleeper{}
	}
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &Engine{
		store:    store,
		ledger:   ledger,
		catalog:  catalog,
		sleeper:  sleeper,
		notifier: notifier,
		metrics:  metrics,
		cfg:      cfg,
		log:      logrus.WithField("component", "kitchen"),
	}
}

// PlaceOrder runs the entry gate and creates a PENDING order. If any
// required ingredient is under-supplied the order is not created and the
// returned FeasibilityError lists exactly the shortfalls.
func (e *Engine) PlaceOrder(ctx context.Context, customerID string, dishName string, quantity int, spice models.SpiceLevel, instructions string) (*models.Order, error) {
	dish, ok := e.catalog.Find(dishName)
	if !ok {
		return nil, &UnknownDishError{Name: dishName}
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}

	missing, err := e.gate(dish, quantity)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, &FeasibilityError{Dish: dish.Name, Missing: missing}
	}

	if spice == "" {
		spice = dish.DefaultSpice
	}
	now := time.Now()
	order := &models.Order{
		OrderID:    models.NewOrderID(now),
		CustomerID: customerID,
		Dishes: models.OrderDishes{{
			Name:                dish.Name,
			Quantity:            quantity,
			SpiceLevel:          spice,
			SpecialInstructions: instructions,
		}},
		TotalAmount:   dish.PriceHint * float64(quantity),
		Status:        models.OrderStatusPending,
		EstimatedTime: e.estimate(dish),
		CreatedAt:     now,
	}

	ok, err = e.store.CreateOrder(order)
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}
	if !ok {
		return nil, ErrStoreUnavailable
	}

	e.metrics.OrderCreated()
	e.log.WithFields(logrus.Fields{
		"order":    order.OrderID,
		"customer": customerID,
		"dish":     dish.Name,
		"quantity": quantity,
	}).Info("order placed")
	return order, nil
}

// gate runs the feasibility check for the configured mode
func (e *Engine) gate(dish models.Dish, servings int) ([]models.MissingIngredient, error) {
	if e.cfg.DebitStockOnCreate {
		return e.ledger.CheckAndDebit(dish, servings)
	}
	return e.ledger.CheckDish(dish, servings)
}

// Cook runs the phase sequence PREP -> COOKING -> PLATING -> READY for a
// PENDING order. Feasibility is re-validated before the first phase; a
// failure halts the sequence without advancing the status. Once a phase
// starts it always completes unless the context is cancelled.
func (e *Engine) Cook(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := e.store.Get(orderID)
	if err != nil {
		return nil, fmt.Errorf("cook: %w", err)
	}
	if order.Status != models.OrderStatusPending {
		return order, fmt.Errorf("cook: order %s is %s, expected %s", orderID, order.Status, models.OrderStatusPending)
	}

	// Cook gate: same check as order entry, repeated per dish line
	for _, line := range order.Dishes {
		dish, ok := e.catalog.Find(line.Name)
		if !ok {
			return order, &UnknownDishError{Name: line.Name}
		}
		missing, err := e.ledger.CheckDish(dish, line.Quantity)
		if err != nil {
			return order, fmt.Errorf("cook gate: %w", err)
		}
		if len(missing) > 0 {
			return order, &FeasibilityError{Dish: dish.Name, Missing: missing}
		}
	}

	phases := []struct {
		status   models.OrderStatus
		duration time.Duration
		label    string
	}{
		{models.OrderStatusPrep, e.cfg.PrepTime, "preparation"},
		{models.OrderStatusCooking, e.cfg.CookTime, "cooking"},
		{models.OrderStatusPlating, e.cfg.PlateTime, "plating"},
	}

	for _, p := range phases {
		if err := e.store.UpdateStatus(order.OrderID, p.status); err != nil {
			return order, fmt.Errorf("enter %s: %w", p.label, err)
		}
		order.Status = p.status

		started := time.Now()
		if err := e.sleeper.Sleep(ctx, p.duration); err != nil {
			return order, fmt.Errorf("%s aborted: %w", p.label, err)
		}
		e.metrics.PhaseCompleted(p.label, time.Since(started))

		e.notifyProgress(ctx, order, p.label)
	}

	if err := e.store.UpdateStatus(order.OrderID, models.OrderStatusReady); err != nil {
		return order, fmt.Errorf("enter ready: %w", err)
	}
	order.Status = models.OrderStatusReady

	receipt := e.notifier.Notify(ctx, order.CustomerID,
		"Order ready",
		fmt.Sprintf("Your order %s is ready for pickup", order.OrderID),
		map[string]string{"orderId": order.OrderID},
		notify.PriorityHigh)
	if !receipt.Success {
		e.log.WithField("order", order.OrderID).Warn("ready notification failed")
	}

	return order, nil
}

func (e *Engine) notifyProgress(ctx context.Context, order *models.Order, phase string) {
	receipt := e.notifier.Notify(ctx, order.CustomerID,
		"Order update",
		fmt.Sprintf("Your order %s finished %s", order.OrderID, phase),
		map[string]string{"orderId": order.OrderID, "phase": phase},
		notify.PriorityNormal)
	if !receipt.Success {
		e.log.WithFields(logrus.Fields{"order": order.OrderID, "phase": phase}).
			Warn("progress notification failed")
	}
}

// Deliver hands a READY order to the customer. Any other status is rejected
// with the current status surfaced; on success the order becomes DELIVERED
// and the completion time is stamped.
func (e *Engine) Deliver(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := e.store.Get(orderID)
	if err != nil {
		return nil, fmt.Errorf("deliver: %w", err)
	}
	if order.Status != models.OrderStatusReady {
		return order, &NotReadyError{OrderID: orderID, Status: order.Status}
	}
	if err := e.store.UpdateStatus(orderID, models.OrderStatusDelivered); err != nil {
		return order, fmt.Errorf("deliver: %w", err)
	}

	delivered, err := e.store.Get(orderID)
	if err != nil {
		return order, nil
	}

	e.metrics.OrderDelivered()
	receipt := e.notifier.Notify(ctx, delivered.CustomerID,
		"Order delivered",
		fmt.Sprintf("Order %s has been delivered, enjoy your meal", orderID),
		map[string]string{"orderId": orderID},
		notify.PriorityNormal)
	if !receipt.Success {
		e.log.WithField("order", orderID).Warn("delivery notification failed")
	}
	return delivered, nil
}

// CheckAndCompleteStatus fetches the customer's recent orders and, as an
// explicit side effect, marks every fetched non-delivered order DELIVERED.
// The returned orders carry their pre-completion statuses so callers can
// describe where each order was when the customer asked. The name is
// deliberate: this operation completes orders, it is not a pure read.
func (e *Engine) CheckAndCompleteStatus(ctx context.Context, customerID string, limit int) ([]models.Order, error) {
	orders := e.store.OrdersForCustomer(customerID, limit)
	if len(orders) == 0 {
		return nil, nil
	}

	var open []string
	for _, o := range orders {
		if o.Status != models.OrderStatusDelivered {
			open = append(open, o.OrderID)
		}
	}
	if len(open) > 0 {
		if err := e.store.MarkDelivered(customerID, open); err != nil {
			return orders, fmt.Errorf("complete on status check: %w", err)
		}
		e.log.WithFields(logrus.Fields{
			"customer":  customerID,
			"completed": len(open),
		}).Info("status check completed outstanding orders")
	}
	return orders, nil
}

// estimate renders a human-readable total time for one dish: its prep
// estimate plus the nominal phase durations.
func (e *Engine) estimate(dish models.Dish) string {
	total := time.Duration(dish.EstimatedPrepMinutes)*time.Minute +
		e.cfg.PrepTime + e.cfg.CookTime + e.cfg.PlateTime
	return fmt.Sprintf("%d minutes", int(total.Minutes()))
}
