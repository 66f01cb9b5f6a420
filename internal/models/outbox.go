package models

import "time"

// OutboxEvent is a row of outbox_events.
type OutboxEvent struct {
	EventID     string     `db:"event_id"`
	TenantID    string     `db:"tenant_id"`
	AggregateID string     `db:"aggregate_id"`
	EventType   string     `db:"event_type"`
	RoutingKey  string     `db:"routing_key"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	Attempts    int        `db:"attempts"`
	LastError   *string    `db:"last_error"`
	CreatedAt   time.Time  `db:"created_at"`
	PublishedAt *time.Time `db:"published_at"`
}
