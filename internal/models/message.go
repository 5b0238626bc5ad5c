package models

import "time"

// MessageRole identifies the author of a transcript message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// MessageMeta carries the structured annotations attached to a transcript
// message. A closed struct rather than a free-form map so the fields stay
// typed across the orchestration boundary.
type MessageMeta struct {
	Intent  Intent `json:"intent,omitempty"`
	Step    string `json:"step,omitempty"`
	OrderID string `json:"orderId,omitempty"`
	Error   bool   `json:"error,omitempty"`
}

// Message is a single entry in a customer's conversation transcript
type Message struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
	Metadata  MessageMeta `json:"metadata,omitempty"`
}

// Session groups the transcript for one customer. Sessions are created
// lazily on first message and never deleted by the core.
type Session struct {
	CustomerID  string    `json:"customerId"`
	Messages    []Message `json:"messages"`
	LastUpdated time.Time `json:"lastUpdated"`
}
