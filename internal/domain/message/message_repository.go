package message

import "context"

// InsertOutcome reports what an idempotent insert actually did.
type InsertOutcome int

const (
	// Created means a new row was durably persisted.
	Created InsertOutcome = iota

	// AlreadyExists means a row with the same MessageID was already
	// present; the existing row is left untouched.
	AlreadyExists
)

// ListFilter narrows and paginates a listing. Zero-valued filter fields are
// ignored; the provided ones combine with AND semantics.
type ListFilter struct {
	Limit  int
	Offset int

	// From filters by exact sender match.
	From string

	// Since keeps messages with TS >= Since (lexicographic, which matches
	// chronological order for ISO-8601 UTC strings).
	Since string

	// TextContains keeps messages whose text contains the given substring
	// (case-sensitive).
	TextContains string
}

// SenderCount is one entry of the per-sender aggregation.
type SenderCount struct {
	From  string
	Count int64
}

// Stats is the aggregate view over the whole store. On an empty store the
// counts are zero, PerSender is empty and the timestamp bounds are nil.
type Stats struct {
	TotalMessages int64
	SendersCount  int64
	PerSender     []SenderCount
	FirstTS       *string
	LastTS        *string
}

// Repository defines the persistence operations for Message entities.
//
// It is implemented by infrastructure layers (e.g. GORM over SQLite or
// Postgres) while the service layer depends only on this interface. All
// operations must be safe under concurrent callers.
type Repository interface {
	// Init idempotently ensures the schema (unique key on message_id,
	// secondary indexes on sender and timestamp) exists. Safe to call
	// repeatedly and from multiple processes.
	Init(ctx context.Context) error

	// Exists reports whether a message with the given id has been durably
	// committed.
	Exists(ctx context.Context, messageID string) (bool, error)

	// Insert durably persists m, assigning ReceivedAt. When a row with the
	// same MessageID is already present — including a race with a
	// concurrent insert of the same id — it returns AlreadyExists and
	// leaves the existing row untouched. It never surfaces a uniqueness
	// violation to the caller.
	Insert(ctx context.Context, m *Message) (InsertOutcome, error)

	// List returns at most f.Limit messages matching all provided filters,
	// ordered by (TS, MessageID) ascending, along with the total number of
	// matching rows regardless of limit/offset.
	List(ctx context.Context, f ListFilter) ([]*Message, int64, error)

	// Stats aggregates over the whole store: totals, unique senders, the
	// top ten senders by count, and the timestamp bounds.
	Stats(ctx context.Context) (*Stats, error)

	// Ready reports whether the storage is reachable and the schema is in
	// place.
	Ready(ctx context.Context) bool
}
