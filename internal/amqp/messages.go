package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Entities carried by sync messages.
const (
	EntityExpense = "expense"
	EntityIncome  = "income"
	EntityCard    = "card"
)

// Actions carried by sync messages.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// EntitySyncMessage tells the backup worker that one entity changed.
// It carries only the identity; the worker fetches a fresh snapshot
// from the store, so stale or duplicated deliveries are harmless.
type EntitySyncMessage struct {
	Entity    string    `json:"entity"`
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEntitySyncMessage(entity, id, action string) *EntitySyncMessage {
	return &EntitySyncMessage{
		Entity:    entity,
		ID:        id,
		Action:    action,
		Timestamp: time.Now(),
	}
}

func (m *EntitySyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func EntitySyncMessageFromJSON(data []byte) (*EntitySyncMessage, error) {
	var msg EntitySyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Entity == "" || msg.ID == "" {
		return nil, fmt.Errorf("sync message missing entity or id")
	}
	return &msg, nil
}
