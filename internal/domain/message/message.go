// Package message holds the domain model and invariants for ingested
// webhook messages.
package message

const (
	// MaxTextLength is the maximum allowed length, in characters, of the
	// optional message text.
	MaxTextLength = 4096
)

// Message is the core domain entity: a single webhook message identified by
// its client-supplied MessageID. Once persisted it is immutable; there is no
// update or delete path.
type Message struct {
	// MessageID is the opaque, client-supplied unique key.
	MessageID string

	// From and To are phone numbers in E.164 form (+ followed by digits).
	From string
	To   string

	// TS is the client-supplied event time, ISO-8601 UTC ending in "Z".
	// It is kept as a string so ordering and "since" filtering stay
	// lexicographic, which for this format equals chronological order.
	TS string

	// Text is the optional message body. Nil means the field was absent.
	Text *string

	// ReceivedAt is the server-assigned ingestion time, set exactly once
	// when the message is first durably inserted.
	ReceivedAt string
}
