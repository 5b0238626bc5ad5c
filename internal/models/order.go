package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the possible states of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPrep      OrderStatus = "PREP"
	OrderStatusCooking   OrderStatus = "COOKING"
	OrderStatusPlating   OrderStatus = "PLATING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

// statusRank fixes the forward-only ordering of the lifecycle.
var statusRank = map[OrderStatus]int{
	OrderStatusPending:   0,
	OrderStatusPrep:      1,
	OrderStatusCooking:   2,
	OrderStatusPlating:   3,
	OrderStatusReady:     4,
	OrderStatusDelivered: 5,
}

// Rank returns the position of the status in the lifecycle, or -1 for an
// unknown status.
func (s OrderStatus) Rank() int {
	if r, ok := statusRank[s]; ok {
		return r
	}
	return -1
}

// Valid reports whether the status is one of the defined lifecycle states.
func (s OrderStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// Terminal reports whether the status ends the lifecycle.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered
}

// CanAdvanceTo reports whether moving to next respects the forward-only
// transition graph. Statuses never move backward and never leave DELIVERED.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s.Terminal() {
		return false
	}
	return next.Rank() > s.Rank()
}

// SpiceLevel represents the requested heat of a dish
type SpiceLevel string

const (
	SpiceMild     SpiceLevel = "Mild"
	SpiceMedium   SpiceLevel = "Medium"
	SpiceHot      SpiceLevel = "Hot"
	SpiceExtraHot SpiceLevel = "ExtraHot"
)

// OrderDish is a single dish line within an order
type OrderDish struct {
	Name                string     `json:"name"`
	Quantity            int        `json:"quantity"`
	SpiceLevel          SpiceLevel `json:"spiceLevel,omitempty"`
	SpecialInstructions string     `json:"specialInstructions,omitempty"`
}

// OrderDishes is a slice of dish lines that can be stored in a single
// database column as JSON.
type OrderDishes []OrderDish

// Value converts the slice to a JSON string for storage
func (d OrderDishes) Value() (driver.Value, error) {
	if len(d) == 0 {
		return "[]", nil
	}
	return json.Marshal(d)
}

// Scan converts the database value back to a slice
func (d *OrderDishes) Scan(value interface{}) error {
	if value == nil {
		*d = OrderDishes{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return errors.New("unsupported type for OrderDishes")
	}
}

// Order represents a customer order moving through the kitchen lifecycle.
// Orders are partitioned by CustomerID; the JSON field names form the
// canonical storage layout and must not change.
type Order struct {
	ID            uint        `gorm:"primary_key" json:"-"`
	OrderID       string      `gorm:"unique_index" json:"orderId"`
	CustomerID    string      `gorm:"index" json:"customerId"`
	Dishes        OrderDishes `gorm:"type:text" json:"dishes"`
	TotalAmount   float64     `json:"totalAmount"`
	Status        OrderStatus `json:"status"`
	EstimatedTime string      `json:"estimatedTime"`
	CreatedAt     time.Time   `json:"createdAt"`
	CompletedAt   *time.Time  `json:"completedAt,omitempty"`
}

// TableName sets the table name for Order
func (Order) TableName() string {
	return "orders"
}

// NewOrderID generates an order identifier. The timestamp prefix keeps IDs
// sortable by creation time; the random suffix disambiguates orders created
// within the same millisecond.
func NewOrderID(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), uuid.New().String()[:8])
}

// ValidateOrder checks the creation-time invariants of an order
func ValidateOrder(o *Order) error {
	if o.CustomerID == "" {
		return fmt.Errorf("order customer id is required")
	}
	if len(o.Dishes) == 0 {
		return fmt.Errorf("order must contain at least one dish")
	}
	for _, d := range o.Dishes {
		if d.Name == "" {
			return fmt.Errorf("order dish name is required")
		}
		if d.Quantity <= 0 {
			return fmt.Errorf("order dish quantity must be greater than 0")
		}
	}
	if !o.Status.Valid() {
		return fmt.Errorf("unknown order status %q", o.Status)
	}
	return nil
}
