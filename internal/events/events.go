// Package events publishes notices about completed writes so other systems
// can follow a user's ledger. Publishing is best effort: a failed publish is
// logged and never turns a successful write into a failure.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Koushikchikkond/vouchers/internal/core"
)

type Kind string

const (
	TransactionSaved   Kind = "transaction.saved"
	TransactionUpdated Kind = "transaction.updated"
	TransactionDeleted Kind = "transaction.deleted"
	NodeRenamed        Kind = "node.renamed"
	NodeDeleted        Kind = "node.deleted"
)

type Event struct {
	ID            string        `json:"id"`
	Kind          Kind          `json:"kind"`
	User          string        `json:"user"`
	Node          string        `json:"node,omitempty"`
	PreviousNode  string        `json:"previousNode,omitempty"`
	TransactionID core.RowID    `json:"transactionId,omitempty"`
	Type          core.TxType   `json:"type,omitempty"`
	Amount        core.Amount   `json:"amount,omitempty"`
	Category      core.Category `json:"category,omitempty"`
	OccurredAt    time.Time     `json:"occurredAt"`
}

// New stamps an event with a fresh id and the current time.
func New(kind Kind, user, node string) Event {
	return Event{
		ID:         uuid.NewString(),
		Kind:       kind,
		User:       user,
		Node:       node,
		OccurredAt: time.Now().UTC(),
	}
}

func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func FromJSON(data []byte) (Event, error) {
	var e Event
	err := json.Unmarshal(data, &e)
	return e, err
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

// Emit publishes e and logs a failure instead of returning it.
func Emit(ctx context.Context, p Publisher, e Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		slog.WarnContext(ctx, "Event publish failed",
			"event_kind", e.Kind,
			"event_id", e.ID,
			"error", err)
	}
}
