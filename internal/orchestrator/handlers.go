package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tandoor/internal/catalog"
	"tandoor/internal/intent"
	"tandoor/internal/kitchen"
	"tandoor/internal/models"
)

// statusPhrases maps each lifecycle status to a human-readable description
// and the next-step hint shown to the customer.
var statusPhrases = map[models.OrderStatus][2]string{
	models.OrderStatusPending:   {"Your order has been received and is waiting for the kitchen.", "We'll start preparing it shortly."},
	models.OrderStatusPrep:      {"Our chefs are prepping your ingredients.", "Cooking starts next."},
	models.OrderStatusCooking:   {"Your food is on the stove.", "Plating comes next."},
	models.OrderStatusPlating:   {"Your dishes are being plated.", "It will be ready any moment."},
	models.OrderStatusReady:     {"Your order is ready for pickup.", "It will be with you shortly."},
	models.OrderStatusDelivered: {"Your order has been delivered.", "We'd love to hear how it was."},
}

// noOrderSuggestions is the bundle offered to customers with nothing on file
var noOrderSuggestions = []string{
	"Ask what's on the menu",
	"Place an order, for example: I want 1 Butter Chicken",
	"Check status again once you've ordered",
}

// handleMenu computes the currently feasible menu: only dishes whose every
// required ingredient passes the ledger check are listed.
func (o *Orchestrator) handleMenu(ctx context.Context) (models.OrchestrationResult, string) {
	var feasible []models.Dish
	for _, dish := range o.catalog.Dishes() {
		missing, err := o.ledger.CheckDish(dish, 1)
		if err != nil {
			return models.OrchestrationResult{
				Success: false,
				Message: "The menu is unavailable right now, please try again in a moment.",
				Error:   err.Error(),
			}, "menu_unavailable"
		}
		if len(missing) == 0 {
			feasible = append(feasible, dish)
		}
	}

	sections := catalog.GroupByCategory(feasible)
	var lines []string
	for _, sec := range sections {
		names := make([]string, len(sec.Dishes))
		for i, d := range sec.Dishes {
			names[i] = fmt.Sprintf("%s ($%.2f)", d.Name, d.PriceHint)
		}
		lines = append(lines, fmt.Sprintf("%s: %s", sec.Category, strings.Join(names, ", ")))
	}

	msg := "Here's what we can serve today. " + strings.Join(lines, ". ")
	if len(feasible) == 0 {
		msg = "The kitchen is restocking and no dishes are available right now."
	}
	return models.OrchestrationResult{
		Success: true,
		Message: msg,
		Menu:    &models.MenuResult{Sections: sections},
	}, "menu"
}

// handlePlaceOrder resolves the requested dish, runs the entry gate, then
// drives the cook sequence synchronously. Failures surface the most
// specific available error; side effects already committed are not rolled
// back, so an order whose cook step failed stays on file as PENDING.
func (o *Orchestrator) handlePlaceOrder(ctx context.Context, customerID string, cls intent.Classification) (models.OrchestrationResult, string) {
	if cls.DishName == intent.UnknownDish || cls.DishName == "" {
		return models.OrchestrationResult{
			Success: false,
			Message: "I couldn't tell which dish you'd like. Could you name one from our menu?",
			Order:   &models.OrderResult{NeedsClarification: true},
		}, "clarify_dish"
	}

	order, err := o.engine.PlaceOrder(ctx, customerID, cls.DishName, cls.Quantity, "", "")
	if err != nil {
		return o.placementFailure(cls, err)
	}

	result := &models.OrderResult{
		OrderID:       order.OrderID,
		DishName:      cls.DishName,
		Quantity:      cls.Quantity,
		OrderStatus:   order.Status,
		TotalAmount:   order.TotalAmount,
		EstimatedTime: order.EstimatedTime,
	}

	cooked, err := o.engine.Cook(ctx, order.OrderID)
	if err != nil {
		// Mid-pipeline failure: the order exists but the kitchen halted.
		// Report the partial progress; there is no automatic cancellation.
		if cooked != nil {
			result.OrderStatus = cooked.Status
		}
		o.metrics.OrderFailed("cook_failed")
		return models.OrchestrationResult{
			Success: false,
			Message: fmt.Sprintf("Your order %s was placed, but the kitchen hit a problem and it is currently %s.", order.OrderID, result.OrderStatus),
			Order:   result,
			Error:   err.Error(),
		}, "cook_failed"
	}
	result.OrderStatus = cooked.Status

	return models.OrchestrationResult{
		Success: true,
		Message: fmt.Sprintf("Order %s confirmed: %dx %s for $%.2f, estimated %s. It's ready for delivery!",
			order.OrderID, cls.Quantity, cls.DishName, order.TotalAmount, order.EstimatedTime),
		Order: result,
	}, "order_cooked"
}

// placementFailure maps an entry-gate error to its user-facing result
func (o *Orchestrator) placementFailure(cls intent.Classification, err error) (models.OrchestrationResult, string) {
	var unknown *kitchen.UnknownDishError
	if errors.As(err, &unknown) {
		o.metrics.OrderFailed("unknown_dish")
		return models.OrchestrationResult{
			Success: false,
			Message: fmt.Sprintf("We don't have %q on the menu. Could you pick another dish?", unknown.Name),
			Order:   &models.OrderResult{NeedsClarification: true},
			Error:   err.Error(),
		}, "unknown_dish"
	}

	var infeasible *kitchen.FeasibilityError
	if errors.As(err, &infeasible) {
		o.metrics.OrderFailed("infeasible")
		return models.OrchestrationResult{
			Success: false,
			Message: fmt.Sprintf("We can't make %s right now, we're short on %s.", infeasible.Dish, missingNames(infeasible.Missing)),
			Order: &models.OrderResult{
				DishName:           infeasible.Dish,
				Quantity:           cls.Quantity,
				MissingIngredients: infeasible.Missing,
			},
			Error: err.Error(),
		}, "infeasible"
	}

	if errors.Is(err, kitchen.ErrStoreUnavailable) {
		o.metrics.OrderFailed("store_unavailable")
		return models.OrchestrationResult{
			Success: false,
			Message: "We couldn't save your order just now, please try again.",
			Error:   err.Error(),
		}, "store_unavailable"
	}

	o.metrics.OrderFailed("internal")
	return models.OrchestrationResult{
		Success: false,
		Message: "We couldn't place that order, please try again.",
		Error:   err.Error(),
	}, "placement_failed"
}

func missingNames(missing []models.MissingIngredient) string {
	names := make([]string, len(missing))
	for i, m := range missing {
		names[i] = m.Name
	}
	return strings.Join(names, ", ")
}

// handleStatus reports the customer's most recent order. The underlying
// engine operation also completes every fetched open order, which is the
// observed system behavior, so the transcript records the status each order
// had when the customer asked.
func (o *Orchestrator) handleStatus(ctx context.Context, customerID string) (models.OrchestrationResult, string) {
	orders, err := o.engine.CheckAndCompleteStatus(ctx, customerID, 5)
	if err != nil {
		return models.OrchestrationResult{
			Success: false,
			Message: "We couldn't look up your orders just now, please try again.",
			Error:   err.Error(),
		}, "status_failed"
	}
	if len(orders) == 0 {
		return models.OrchestrationResult{
			Success: true,
			Message: "You don't have any orders with us yet. " + strings.Join(noOrderSuggestions, ". ") + ".",
			Status: &models.StatusResult{
				State:       models.StatusStateNoOrders,
				Suggestions: noOrderSuggestions,
			},
		}, "status_no_orders"
	}

	latest := orders[0]
	phrases := statusPhrases[latest.Status]
	return models.OrchestrationResult{
		Success: true,
		Message: fmt.Sprintf("Order %s: %s %s", latest.OrderID, phrases[0], phrases[1]),
		Status: &models.StatusResult{
			State:    string(latest.Status),
			Orders:   orders,
			Phase:    phrases[0],
			NextStep: phrases[1],
		},
	}, "status"
}

// handleFallback returns the canned capability overview
func (o *Orchestrator) handleFallback(ctx context.Context) (models.OrchestrationResult, string) {
	return models.OrchestrationResult{
		Success: true,
		Message: "I can help you three ways: ask what's on the menu, place an order (try \"I want 1 Palak Paneer\"), or check your order status.",
	}, "fallback"
}
