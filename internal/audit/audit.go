// Package audit records every create/edit attempt made through the admin
// table, successful or not.
//
// The trail is write-mostly and never read back into the catalog: the
// in-memory product list remains the only source of product identity.
// Two recorders are provided: Postgres (durable, used when DATABASE_URL is
// configured) and Memory (a bounded ring, the default).
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Action is the kind of audited operation.
type Action string

const (
	ActionCreate Action = "product_create"
	ActionUpdate Action = "product_update"
	ActionLoad   Action = "catalog_load"
)

// Outcome is the result of an audited operation.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
	OutcomeNoop    Outcome = "noop" // accepted remotely, no local entry to replace
)

// Entry is a single audit record.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	Action    Action    `json:"action"`
	Outcome   Outcome   `json:"outcome"`
	ProductID int       `json:"productId,omitempty"`
	Title     string    `json:"title,omitempty"`
	Price     string    `json:"price,omitempty"`
	ErrorCode string    `json:"errorCode,omitempty"`
	Error     string    `json:"error,omitempty"`
	Count     int       `json:"count,omitempty"` // products received, for loads
	RequestID string    `json:"requestId,omitempty"`
	IPAddress string    `json:"ipAddress,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	Duration  int64     `json:"durationMs"`
	CreatedAt time.Time `json:"createdAt"`
}

// Recorder persists audit entries.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// Lister returns the most recent entries, newest first.
type Lister interface {
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

// Stamp fills the id, timestamp and request metadata of e from ctx.
func Stamp(ctx context.Context, e Entry) Entry {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	md := MetadataFromContext(ctx)
	if e.RequestID == "" {
		e.RequestID = md.RequestID
	}
	if e.IPAddress == "" {
		e.IPAddress = md.IPAddress
	}
	if e.UserAgent == "" {
		e.UserAgent = md.UserAgent
	}
	return e
}
