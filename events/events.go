package events

import (
	"context"
	"time"
)

const (
	OrderPlaced = "order.placed"
	ToolPaid    = "tool.paid"
)

// Event is the JSON envelope published for every domain change.
type Event struct {
	Name       string    `json:"event"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

func New(name string, payload any) Event {
	return Event{Name: name, OccurredAt: time.Now().UTC(), Payload: payload}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Nop drops every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }
