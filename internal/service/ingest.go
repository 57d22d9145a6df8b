package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rajansharma08/lyftr-webhook-api/internal/cache"
	domain "github.com/rajansharma08/lyftr-webhook-api/internal/domain/message"
	"github.com/rajansharma08/lyftr-webhook-api/internal/metrics"
	"github.com/rajansharma08/lyftr-webhook-api/internal/webhook"
)

// seenTTL bounds how long committed message ids stay in the cache fast path.
const seenTTL = 24 * time.Hour

// IngestStatus classifies the outcome of one ingestion attempt.
type IngestStatus int

const (
	// StatusAccepted means the message was persisted now or had already
	// been persisted earlier; either way the caller sees success.
	StatusAccepted IngestStatus = iota

	// StatusUnauthorized means the signature did not verify (or no secret
	// is configured). Nothing was persisted.
	StatusUnauthorized

	// StatusInvalid means the payload failed validation. Nothing was
	// persisted; Reason carries the human-readable cause.
	StatusInvalid
)

// IngestResult is the uniform outcome of the ingestion pipeline.
type IngestResult struct {
	Status    IngestStatus
	Duplicate bool
	MessageID string
	Reason    string
}

// OutcomeRecorder receives one structured outcome event per webhook request.
// It is implemented by the metrics collector.
type OutcomeRecorder interface {
	RecordIngest(result metrics.IngestResult)
}

// IngestService orchestrates verify, validate and idempotent persist for
// inbound webhook deliveries.
type IngestService interface {
	Ingest(ctx context.Context, rawBody []byte, signature string) (IngestResult, error)
}

type ingestService struct {
	repo     domain.Repository
	cache    cache.Cache
	recorder OutcomeRecorder
	secret   string
	logger   *slog.Logger
}

// NewIngestService creates the ingestion coordinator. The signing secret is
// passed explicitly from config at startup; cache may be nil to disable the
// duplicate fast path.
func NewIngestService(
	repo domain.Repository,
	c cache.Cache,
	recorder OutcomeRecorder,
	secret string,
	logger *slog.Logger,
) IngestService {
	return &ingestService{
		repo:     repo,
		cache:    c,
		recorder: recorder,
		secret:   secret,
		logger:   logger,
	}
}

// Ingest runs the pipeline: verify signature, validate payload, persist
// idempotently. No side effect happens before both verification and
// validation succeed. A duplicate delivery is reported as success with the
// Duplicate flag set, so clients can retry blindly. A non-nil error means a
// storage failure the caller should surface as a server error.
func (s *ingestService) Ingest(ctx context.Context, rawBody []byte, signature string) (IngestResult, error) {
	if !webhook.VerifySignature(rawBody, signature, s.secret) {
		s.recorder.RecordIngest(metrics.ResultInvalidSignature)
		s.logger.Error("webhook signature rejected")
		return IngestResult{Status: StatusUnauthorized, Reason: "invalid signature"}, nil
	}

	msg, err := webhook.Validate(rawBody)
	if err != nil {
		s.recorder.RecordIngest(metrics.ResultValidationError)
		return IngestResult{Status: StatusInvalid, Reason: err.Error()}, nil
	}

	// Fast path: a cache hit means this id was already durably committed
	// (keys are only written after a successful insert), so we can skip the
	// write attempt. The unique constraint below stays the source of truth.
	if s.cache != nil {
		key := cache.SeenMessages.Key(msg.MessageID)
		if _, cErr := s.cache.Get(ctx, key); cErr == nil {
			s.recorder.RecordIngest(metrics.ResultDuplicate)
			return IngestResult{Status: StatusAccepted, Duplicate: true, MessageID: msg.MessageID}, nil
		}
	}

	outcome, err := s.repo.Insert(ctx, msg)
	if err != nil {
		return IngestResult{}, fmt.Errorf("persist message %s: %w", msg.MessageID, err)
	}

	dup := outcome == domain.AlreadyExists
	if dup {
		s.recorder.RecordIngest(metrics.ResultDuplicate)
	} else {
		s.recorder.RecordIngest(metrics.ResultCreated)
	}

	// Best-effort: remember the committed id so repeated deliveries avoid a
	// database round trip.
	if s.cache != nil {
		key := cache.SeenMessages.Key(msg.MessageID)
		if cErr := s.cache.Set(ctx, key, msg.TS, seenTTL); cErr != nil {
			s.logger.Warn("failed to cache seen message id",
				"message_id", msg.MessageID, "error", cErr)
		}
	}

	return IngestResult{Status: StatusAccepted, Duplicate: dup, MessageID: msg.MessageID}, nil
}
