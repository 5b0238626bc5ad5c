// Package notify is the push-notification boundary. Delivery is a
// collaborator concern: implementations are fire-and-forget and failures
// are logged by callers, never allowed to block order progression.
package notify

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Priority of an outbound notification
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// Receipt reports the outcome of a notification attempt
type Receipt struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
}

// Notifier delivers a notification to one customer
type Notifier interface {
	Notify(ctx context.Context, customerID, title, body string, data map[string]string, priority Priority) Receipt
}

// LogNotifier writes notifications to the structured log. Stands in for a
// real push provider in development and tests.
type LogNotifier struct {
	log *logrus.Entry
}

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{log: logrus.WithField("component", "notifier")}
}

// Notify logs the notification and reports success with a fresh message id
func (n *LogNotifier) Notify(ctx context.Context, customerID, title, body string, data map[string]string, priority Priority) Receipt {
	fields := logrus.Fields{
		"customer": customerID,
		"title":    title,
		"priority": priority,
	}
	for k, v := range data {
		fields["data_"+k] = v
	}
	n.log.WithFields(fields).Info(body)
	return Receipt{Success: true, MessageID: uuid.New().String()}
}

// Noop drops every notification while still reporting success
type Noop struct{}

// Notify does nothing
func (Noop) Notify(ctx context.Context, customerID, title, body string, data map[string]string, priority Priority) Receipt {
	return Receipt{Success: true}
}
