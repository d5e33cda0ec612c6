// Package events carries merge lifecycle notifications to subscribers and,
// optionally, to the SQLite history.
package events

import (
	"sync/atomic"
	"time"
)

// Event is the base interface all events implement.
type Event interface {
	EventType() string
	EntityType() string // "merge", "slideshow"
	EntityID() int64
	OccurredAt() time.Time
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	Type      string    `json:"type"`
	Entity    string    `json:"entity_type"`
	ID        int64     `json:"entity_id"`
	Timestamp time.Time `json:"occurred_at"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) EntityType() string    { return e.Entity }
func (e BaseEvent) EntityID() int64       { return e.ID }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// NewBaseEvent creates a BaseEvent stamped with the current time.
func NewBaseEvent(eventType, entityType string, entityID int64) BaseEvent {
	return BaseEvent{
		Type:      eventType,
		Entity:    entityType,
		ID:        entityID,
		Timestamp: time.Now(),
	}
}

var runSeq atomic.Int64

// NewRunID returns an id for a merge or slideshow run, unique within the
// process and increasing over time.
func NewRunID() int64 {
	return time.Now().UnixMilli()*1000 + runSeq.Add(1)%1000
}
