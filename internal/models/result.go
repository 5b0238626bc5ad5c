package models

// Intent is the classified purpose of an inbound message
type Intent string

const (
	IntentAskMenu     Intent = "ask_menu"
	IntentPlaceOrder  Intent = "place_order"
	IntentCheckStatus Intent = "check_status"
	IntentFallback    Intent = "fallback"
)

// OrchestrationResult is what every handled request returns. Exactly one of
// the intent-specific fields is populated, tagged by Intent, so callers never
// have to dig through untyped maps.
type OrchestrationResult struct {
	Success bool   `json:"success"`
	Intent  Intent `json:"intent"`
	Message string `json:"message"`

	Menu   *MenuResult   `json:"menu,omitempty"`
	Order  *OrderResult  `json:"order,omitempty"`
	Status *StatusResult `json:"status,omitempty"`

	// Error carries the raw diagnostic detail for failed requests. The
	// human-readable explanation stays in Message.
	Error string `json:"error,omitempty"`
}

// MenuSection is one category worth of currently feasible dishes
type MenuSection struct {
	Category MenuCategory `json:"category"`
	Dishes   []Dish       `json:"dishes"`
}

// MenuResult lists the dishes the kitchen can actually produce right now,
// grouped by category.
type MenuResult struct {
	Sections []MenuSection `json:"sections"`
}

// OrderResult reports the outcome of a placement attempt. When the
// feasibility gate rejects the order, MissingIngredients explains why and no
// order fields are set. NeedsClarification marks a request whose dish could
// not be resolved.
type OrderResult struct {
	OrderID            string              `json:"orderId,omitempty"`
	DishName           string              `json:"dishName,omitempty"`
	Quantity           int                 `json:"quantity,omitempty"`
	OrderStatus        OrderStatus         `json:"orderStatus,omitempty"`
	TotalAmount        float64             `json:"totalAmount,omitempty"`
	EstimatedTime      string              `json:"estimatedTime,omitempty"`
	MissingIngredients []MissingIngredient `json:"missingIngredients,omitempty"`
	NeedsClarification bool                `json:"needsClarification,omitempty"`
}

// StatusResult reports the customer's order situation. State is "no_orders"
// when the customer has nothing on file, otherwise the lifecycle status of
// the most recent order.
type StatusResult struct {
	State       string   `json:"status"`
	Orders      []Order  `json:"orders,omitempty"`
	Phase       string   `json:"phase,omitempty"`
	NextStep    string   `json:"nextStep,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// StatusStateNoOrders is the StatusResult state for customers without any
// order on file.
const StatusStateNoOrders = "no_orders"
