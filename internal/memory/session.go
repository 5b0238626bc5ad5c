// Package memory keeps the bounded per-customer conversation transcript
// that supplies classification context across turns.
package memory

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"

	"tandoor/internal/models"
)

// MaxMessages caps a session transcript. When an append pushes a session
// past the cap, the oldest entries are dropped first (FIFO trim).
const MaxMessages = 50

// Sessions is the transcript store contract. Both operations degrade when
// the backing store is unavailable: Append reports false instead of
// raising, Recent returns an empty slice. Callers must treat an empty
// history as "no context available", never as an error.
type Sessions interface {
	Append(customerID string, msg models.Message) bool
	Recent(customerID string, n int) []models.Message
}

// transcriptRow is the database row behind one transcript message
type transcriptRow struct {
	ID         uint      `gorm:"primary_key"`
	CustomerID string    `gorm:"index"`
	Role       string
	Content    string    `gorm:"type:text"`
	SentAt     time.Time
	MetaJSON   string    `gorm:"type:text"`
}

// TableName sets the table name for transcript rows
func (transcriptRow) TableName() string {
	return "session_messages"
}

// DBSessions persists transcripts in the database
type DBSessions struct {
	db  *gorm.DB
	log *logrus.Entry
}

// NewDBSessions creates a database-backed session store
func NewDBSessions(db *gorm.DB) *DBSessions {
	return &DBSessions{
		db:  db,
		log: logrus.WithField("component", "session_memory"),
	}
}

// Migrate creates the transcript table
func (s *DBSessions) Migrate() error {
	return s.db.AutoMigrate(&transcriptRow{}).Error
}

// Append stores one message and trims the session back to MaxMessages
func (s *DBSessions) Append(customerID string, msg models.Message) bool {
	if s.db == nil {
		return false
	}

	meta, err := json.Marshal(msg.Metadata)
	if err != nil {
		meta = []byte("{}")
	}
	row := transcriptRow{
		CustomerID: customerID,
		Role:       string(msg.Role),
		Content:    msg.Content,
		SentAt:     msg.Timestamp,
		MetaJSON:   string(meta),
	}
	if err := s.db.Create(&row).Error; err != nil {
		s.log.WithError(err).WithField("customer", customerID).Warn("session append degraded to no-op")
		return false
	}

	s.trim(customerID)
	return true
}

// trim drops the oldest rows until the session is back at the cap
func (s *DBSessions) trim(customerID string) {
	var count int
	if err := s.db.Model(&transcriptRow{}).Where("customer_id = ?", customerID).Count(&count).Error; err != nil {
		return
	}
	if count <= MaxMessages {
		return
	}

	var stale []transcriptRow
	err := s.db.Where("customer_id = ?", customerID).
		Order("id asc").
		Limit(count - MaxMessages).
		Find(&stale).Error
	if err != nil || len(stale) == 0 {
		return
	}
	ids := make([]uint, len(stale))
	for i, r := range stale {
		ids[i] = r.ID
	}
	if err := s.db.Where("id IN (?)", ids).Delete(&transcriptRow{}).Error; err != nil {
		s.log.WithError(err).Warn("session trim failed")
	}
}

// Recent returns the n most recently appended messages in original order
func (s *DBSessions) Recent(customerID string, n int) []models.Message {
	if s.db == nil || n <= 0 {
		return nil
	}

	var rows []transcriptRow
	err := s.db.Where("customer_id = ?", customerID).
		Order("id desc").
		Limit(n).
		Find(&rows).Error
	if err != nil {
		s.log.WithError(err).WithField("customer", customerID).Warn("session read degraded to empty")
		return nil
	}

	// Rows come back newest first; restore append order.
	out := make([]models.Message, len(rows))
	for i, r := range rows {
		var meta models.MessageMeta
		_ = json.Unmarshal([]byte(r.MetaJSON), &meta)
		out[len(rows)-1-i] = models.Message{
			Role:      models.MessageRole(r.Role),
			Content:   r.Content,
			Timestamp: r.SentAt,
			Metadata:  meta,
		}
	}
	return out
}

// MemorySessions keeps transcripts in process memory with the same
// bounding and degradation behavior as the database store.
type MemorySessions struct {
	mu       sync.Mutex
	sessions map[string]*models.Session

	// Offline simulates an unreachable backing store
	Offline bool
}

// NewMemorySessions creates an empty in-memory session store
func NewMemorySessions() *MemorySessions {
	return &MemorySessions{sessions: make(map[string]*models.Session)}
}

// Append stores one message, creating the session lazily on first use
func (s *MemorySessions) Append(customerID string, msg models.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Offline {
		return false
	}

	sess, ok := s.sessions[customerID]
	if !ok {
		sess = &models.Session{CustomerID: customerID}
		s.sessions[customerID] = sess
	}
	sess.Messages = append(sess.Messages, msg)
	if overflow := len(sess.Messages) - MaxMessages; overflow > 0 {
		sess.Messages = sess.Messages[overflow:]
	}
	sess.LastUpdated = msg.Timestamp
	return true
}

// Recent returns the n most recently appended messages in original order
func (s *MemorySessions) Recent(customerID string, n int) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Offline || n <= 0 {
		return nil
	}

	sess, ok := s.sessions[customerID]
	if !ok {
		return nil
	}
	msgs := sess.Messages
	if len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	out := make([]models.Message, len(msgs))
	copy(out, msgs)
	return out
}
