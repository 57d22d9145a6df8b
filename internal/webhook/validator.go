package webhook

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rajansharma08/lyftr-webhook-api/internal/domain/message"
)

// ValidationKind enumerates the ways an inbound payload can fail validation.
type ValidationKind string

const (
	MalformedPayload   ValidationKind = "malformed_payload"
	MissingField       ValidationKind = "missing_field"
	InvalidPhoneFormat ValidationKind = "invalid_phone_format"
	InvalidTimestamp   ValidationKind = "invalid_timestamp"
	InvalidText        ValidationKind = "invalid_text"
)

// ValidationError describes a rejected payload. Reason is safe to surface
// verbatim in a 422 response body.
type ValidationError struct {
	Kind   ValidationKind
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return e.Reason
}

// payload mirrors the inbound JSON object. Pointer fields distinguish a
// missing key from an empty value.
type payload struct {
	MessageID *string `json:"message_id"`
	From      *string `json:"from"`
	To        *string `json:"to"`
	TS        *string `json:"ts"`
	Text      *string `json:"text"`
}

// Validate parses rawBody as a JSON object and checks every field rule.
// On success it returns a well-formed domain message with ReceivedAt unset
// (the store assigns that at first insert). On failure it returns a
// *ValidationError and no partial message.
//
// Validation is purely structural; duplicate detection belongs to the
// ingestion coordinator, not here.
func Validate(rawBody []byte) (*message.Message, error) {
	var p payload
	if err := json.Unmarshal(rawBody, &p); err != nil {
		return nil, &ValidationError{
			Kind:   MalformedPayload,
			Reason: "body must be a JSON object",
		}
	}

	if p.MessageID == nil || *p.MessageID == "" {
		return nil, &ValidationError{
			Kind:   MissingField,
			Field:  "message_id",
			Reason: "message_id is required and must be non-empty",
		}
	}
	if p.From == nil {
		return nil, &ValidationError{
			Kind:   MissingField,
			Field:  "from",
			Reason: "from is required",
		}
	}
	if p.To == nil {
		return nil, &ValidationError{
			Kind:   MissingField,
			Field:  "to",
			Reason: "to is required",
		}
	}
	if p.TS == nil {
		return nil, &ValidationError{
			Kind:   MissingField,
			Field:  "ts",
			Reason: "ts is required",
		}
	}

	if !isE164(*p.From) {
		return nil, &ValidationError{
			Kind:   InvalidPhoneFormat,
			Field:  "from",
			Reason: "must be E.164 format: + followed by digits",
		}
	}
	if !isE164(*p.To) {
		return nil, &ValidationError{
			Kind:   InvalidPhoneFormat,
			Field:  "to",
			Reason: "must be E.164 format: + followed by digits",
		}
	}

	if err := checkTimestamp(*p.TS); err != nil {
		return nil, err
	}

	if p.Text != nil && utf8.RuneCountInString(*p.Text) > message.MaxTextLength {
		return nil, &ValidationError{
			Kind:   InvalidText,
			Field:  "text",
			Reason: fmt.Sprintf("text exceeds maximum length of %d characters", message.MaxTextLength),
		}
	}

	return &message.Message{
		MessageID: *p.MessageID,
		From:      *p.From,
		To:        *p.To,
		TS:        *p.TS,
		Text:      p.Text,
	}, nil
}

// isE164 reports whether v is a "+" followed by one or more ASCII digits.
func isE164(v string) bool {
	if len(v) < 2 || v[0] != '+' {
		return false
	}
	for i := 1; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return false
		}
	}
	return true
}

// checkTimestamp requires an ISO-8601 UTC instant with a literal trailing Z
// that parses as a real calendar time.
func checkTimestamp(v string) error {
	if !strings.HasSuffix(v, "Z") {
		return &ValidationError{
			Kind:   InvalidTimestamp,
			Field:  "ts",
			Reason: "timestamp must end with Z",
		}
	}
	if _, err := time.Parse(time.RFC3339, v); err != nil {
		return &ValidationError{
			Kind:   InvalidTimestamp,
			Field:  "ts",
			Reason: "invalid ISO-8601 timestamp",
		}
	}
	return nil
}
