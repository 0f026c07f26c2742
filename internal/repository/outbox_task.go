package repository

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusCreated    TaskStatus = "CREATED"
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusFailed     TaskStatus = "FAILED"
	TaskStatusDone       TaskStatus = "DONE"
)

type OutboxTask struct {
	ID          uuid.UUID       `db:"id"`
	Status      TaskStatus      `db:"status"`
	Payload     json.RawMessage `db:"payload"`
	Topic       string          `db:"topic"`
	Attempts    int             `db:"attempts"`
	LastError   *string         `db:"last_error"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	CompletedAt *time.Time      `db:"completed_at"`
}

// BidEventPayload is published to Kafka whenever a bid verdict is
// committed, so downstream consumers (notifications, analytics) see
// the same outcome the bidder saw.
type BidEventPayload struct {
	Timestamp    time.Time `json:"timestamp"`
	AuctionKoiID string    `json:"auction_koi_id"`
	BidderID     string    `json:"bidder_id"`
	Amount       int64     `json:"amount"`
	Accepted     bool      `json:"accepted"`
	Reason       string    `json:"reason,omitempty"`
	ClosedKoi    bool      `json:"closed_koi"`
}

type AuditLogPayload struct {
	Timestamp  time.Time `json:"timestamp"`
	UserID     string    `json:"user_id,omitempty"`
	EntityID   string    `json:"entity_id,omitempty"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Handler    string    `json:"handler"`
	StatusCode int       `json:"status_code"`
	Request    string    `json:"request,omitempty"`
	Response   string    `json:"response,omitempty"`
}
