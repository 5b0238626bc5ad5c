package kitchen

import (
	"errors"
	"fmt"
	"strings"

	"tandoor/internal/models"
)

var (
	// ErrStoreUnavailable means the order store degraded to offline mode
	ErrStoreUnavailable = errors.New("order store unavailable")

	// ErrInvalidQuantity rejects non-positive dish quantities
	ErrInvalidQuantity = errors.New("dish quantity must be greater than 0")
)

// UnknownDishError marks a dish name the catalog could not resolve
type UnknownDishError struct {
	Name string
}

func (e *UnknownDishError) Error() string {
	return fmt.Sprintf("unknown dish %q", e.Name)
}

// FeasibilityError reports the exact under-supplied ingredients that
// blocked a lifecycle gate. No state was changed when it is returned.
type FeasibilityError struct {
	Dish    string
	Missing []models.MissingIngredient
}

func (e *FeasibilityError) Error() string {
	parts := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		parts[i] = fmt.Sprintf("%s (need %.0f, have %.0f)", m.Name, m.Required, m.Available)
	}
	return fmt.Sprintf("insufficient ingredients for %s: %s", e.Dish, strings.Join(parts, ", "))
}

// NotReadyError rejects delivery of an order that is not READY
type NotReadyError struct {
	OrderID string
	Status  models.OrderStatus
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("order %s is %s, only READY orders can be delivered", e.OrderID, e.Status)
}
