package response

import (
	domain "github.com/rajansharma08/lyftr-webhook-api/internal/domain/message"
)

type WelcomePayload struct {
	Message string `json:"message"`
}

type StatusPayload struct {
	Status string `json:"status"`
}

// MessageDTO is the public-facing representation of a stored message.
// It decouples the wire format from the domain entity and plays nicely
// with Swagger.
type MessageDTO struct {
	MessageID string  `json:"message_id"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	TS        string  `json:"ts"`
	Text      *string `json:"text"`
}

// MessagesPage is the paginated listing returned by GET /messages.
type MessagesPage struct {
	Data   []MessageDTO `json:"data"`
	Total  int64        `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

// SenderCountDTO is one entry of the per-sender aggregation.
type SenderCountDTO struct {
	From  string `json:"from"`
	Count int64  `json:"count"`
}

// StatsPayload is the aggregate view returned by GET /stats. The timestamp
// bounds serialize as null on an empty store.
type StatsPayload struct {
	TotalMessages     int64            `json:"total_messages"`
	SendersCount      int64            `json:"senders_count"`
	MessagesPerSender []SenderCountDTO `json:"messages_per_sender"`
	FirstMessageTS    *string          `json:"first_message_ts"`
	LastMessageTS     *string          `json:"last_message_ts"`
}

// FromDomainMessages converts domain messages into DTOs
// for use in HTTP responses.
func FromDomainMessages(msgs []*domain.Message) []MessageDTO {
	out := make([]MessageDTO, len(msgs))
	for i, m := range msgs {
		out[i] = MessageDTO{
			MessageID: m.MessageID,
			From:      m.From,
			To:        m.To,
			TS:        m.TS,
			Text:      m.Text,
		}
	}
	return out
}

// FromDomainStats converts the domain aggregate into its wire form,
// guaranteeing a non-nil sender list.
func FromDomainStats(s *domain.Stats) StatsPayload {
	senders := make([]SenderCountDTO, len(s.PerSender))
	for i, sc := range s.PerSender {
		senders[i] = SenderCountDTO{From: sc.From, Count: sc.Count}
	}
	return StatsPayload{
		TotalMessages:     s.TotalMessages,
		SendersCount:      s.SendersCount,
		MessagesPerSender: senders,
		FirstMessageTS:    s.FirstTS,
		LastMessageTS:     s.LastTS,
	}
}
