package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"tandoor/internal/models"
)

// MemoryOrderStore keeps orders in process memory. It backs tests and demo
// runs where no database is configured, and mirrors the degraded-mode
// contract of OrderStore exactly.
type MemoryOrderStore struct {
	mu     sync.Mutex
	orders map[string]*models.Order // by order id

	// Offline simulates an unreachable backing store
	Offline bool
}

// NewMemoryOrderStore creates an empty in-memory order store
func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{orders: make(map[string]*models.Order)}
}

// CreateOrder saves a new order in memory
func (s *MemoryOrderStore) CreateOrder(o *models.Order) (bool, error) {
	if err := models.ValidateOrder(o); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Offline {
		return false, nil
	}
	if _, exists := s.orders[o.OrderID]; exists {
		return false, fmt.Errorf("duplicate order id %s", o.OrderID)
	}
	cp := *o
	s.orders[o.OrderID] = &cp
	return true, nil
}

// Get fetches one order by id
func (s *MemoryOrderStore) Get(orderID string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Offline {
		return nil, fmt.Errorf("order store offline")
	}
	o, ok := s.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order %s not found", orderID)
	}
	cp := *o
	return &cp, nil
}

// OrdersForCustomer returns the customer's orders newest first
func (s *MemoryOrderStore) OrdersForCustomer(customerID string, limit int) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Offline {
		return nil
	}
	if limit <= 0 {
		limit = 10
	}
	var out []models.Order
	for _, o := range s.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// UpdateStatus advances an order's status, rejecting backward moves
func (s *MemoryOrderStore) UpdateStatus(orderID string, next models.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Offline {
		return fmt.Errorf("order store offline")
	}
	o, ok := s.orders[orderID]
	if !ok {
		return fmt.Errorf("order %s not found", orderID)
	}
	if !o.Status.CanAdvanceTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrBackwardTransition, o.Status, next)
	}
	o.Status = next
	if next == models.OrderStatusDelivered {
		now := time.Now()
		o.CompletedAt = &now
	}
	return nil
}

// MarkDelivered moves the given orders to DELIVERED
func (s *MemoryOrderStore) MarkDelivered(customerID string, orderIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Offline {
		return nil
	}
	now := time.Now()
	for _, id := range orderIDs {
		o, ok := s.orders[id]
		if !ok || o.CustomerID != customerID || o.Status == models.OrderStatusDelivered {
			continue
		}
		o.Status = models.OrderStatusDelivered
		o.CompletedAt = &now
	}
	return nil
}
