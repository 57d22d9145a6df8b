package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/rajansharma08/lyftr-webhook-api/internal/response"
	"github.com/rajansharma08/lyftr-webhook-api/internal/service"
)

// maxBodyBytes bounds the request body we are willing to buffer. The payload
// itself is capped at 4096 characters of text plus a handful of short fields,
// so 1 MiB leaves generous headroom.
const maxBodyBytes = 1 << 20

// WebhookHandler wires the POST /webhook endpoint to the ingestion service.
type WebhookHandler struct {
	svc    service.IngestService
	logger *slog.Logger
}

// NewWebhookHandler constructs a new WebhookHandler with its dependencies.
func NewWebhookHandler(svc service.IngestService, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		svc:    svc,
		logger: logger,
	}
}

// Receive godoc
// @Summary     Ingest a webhook message
// @Description Verifies the X-Signature header (hex HMAC-SHA256 of the raw body), validates the payload and persists it idempotently. Duplicate deliveries return 200 as well.
// @Tags        webhook
// @Accept      json
// @Produce     json
// @Param       X-Signature header string true "Hex HMAC-SHA256 of the raw request body"
// @Success     200 {object} response.StatusPayload
// @Failure     401 {object} response.ErrorBody
// @Failure     422 {object} response.ErrorBody
// @Failure     500 {object} response.ErrorBody
// @Router      /webhook [post]
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	// The verifier needs the exact raw bytes; read before any parsing.
	rawBody, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	signature := r.Header.Get("X-Signature")

	result, err := h.svc.Ingest(r.Context(), rawBody, signature)
	if err != nil {
		h.logger.Error("ingestion failed", "error", err)
		response.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	switch result.Status {
	case service.StatusUnauthorized:
		response.RespondError(w, http.StatusUnauthorized, "invalid signature")
	case service.StatusInvalid:
		response.RespondError(w, http.StatusUnprocessableEntity, result.Reason)
	default:
		response.RespondJSON(w, http.StatusOK, response.StatusPayload{Status: "ok"})
	}
}
