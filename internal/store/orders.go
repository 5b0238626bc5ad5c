// Package store owns keyed persistence of orders per customer.
package store

import (
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"

	"tandoor/internal/models"
)

// ErrBackwardTransition is returned when a status update would move an
// order backward in the lifecycle.
var ErrBackwardTransition = fmt.Errorf("order status may only move forward")

// OrderStore persists orders in the database. A nil db handle puts the
// store into degraded mode: writes report failure without raising, reads
// return empty results.
type OrderStore struct {
	db  *gorm.DB
	log *logrus.Entry
}

// NewOrderStore creates a database-backed order store
func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{
		db:  db,
		log: logrus.WithField("component", "order_store"),
	}
}

// CreateOrder saves a new order. The bool result is false when the store is
// offline; the error is non-nil only for a genuine write failure.
func (s *OrderStore) CreateOrder(o *models.Order) (bool, error) {
	if err := models.ValidateOrder(o); err != nil {
		return false, err
	}
	if s.db == nil {
		s.log.Warn("order store offline, create degraded to no-op")
		return false, nil
	}
	if err := s.db.Create(o).Error; err != nil {
		return false, fmt.Errorf("create order %s: %w", o.OrderID, err)
	}
	return true, nil
}

// Get fetches one order by its order id
func (s *OrderStore) Get(orderID string) (*models.Order, error) {
	if s.db == nil {
		return nil, fmt.Errorf("order store offline")
	}
	var o models.Order
	if err := s.db.Where("order_id = ?", orderID).First(&o).Error; err != nil {
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	return &o, nil
}

// OrdersForCustomer returns the customer's orders newest first. Store
// trouble degrades to an empty slice; callers treat that as "no data
// available", never as proof that no orders exist.
func (s *OrderStore) OrdersForCustomer(customerID string, limit int) []models.Order {
	if s.db == nil {
		return nil
	}
	if limit <= 0 {
		limit = 10
	}
	var orders []models.Order
	err := s.db.Where("customer_id = ?", customerID).
		Order("created_at desc").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		s.log.WithError(err).WithField("customer", customerID).Warn("order lookup degraded to empty")
		return nil
	}
	return orders
}

// UpdateStatus advances an order's status. Backward transitions are
// rejected; reaching DELIVERED stamps the completion time.
func (s *OrderStore) UpdateStatus(orderID string, next models.OrderStatus) error {
	o, err := s.Get(orderID)
	if err != nil {
		return err
	}
	if !o.Status.CanAdvanceTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrBackwardTransition, o.Status, next)
	}
	o.Status = next
	if next == models.OrderStatusDelivered {
		now := time.Now()
		o.CompletedAt = &now
	}
	if err := s.db.Save(o).Error; err != nil {
		return fmt.Errorf("update order %s: %w", orderID, err)
	}
	return nil
}

// MarkDelivered moves the given orders for one customer to DELIVERED,
// stamping completion times. Already-delivered orders are left untouched.
func (s *OrderStore) MarkDelivered(customerID string, orderIDs []string) error {
	if s.db == nil || len(orderIDs) == 0 {
		return nil
	}
	now := time.Now()
	err := s.db.Model(&models.Order{}).
		Where("customer_id = ? AND order_id IN (?) AND status <> ?",
			customerID, orderIDs, models.OrderStatusDelivered).
		Updates(map[string]interface{}{
			"status":       models.OrderStatusDelivered,
			"completed_at": now,
		}).Error
	if err != nil {
		return fmt.Errorf("mark delivered for %s: %w", customerID, err)
	}
	return nil
}
