package handler

import (
	"net/http"

	domain "github.com/rajansharma08/lyftr-webhook-api/internal/domain/message"
	"github.com/rajansharma08/lyftr-webhook-api/internal/response"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	repo             domain.Repository
	secretConfigured bool
}

// NewHealthHandler constructs a HealthHandler. secretConfigured reflects
// whether a webhook signing secret was provided at startup; without it the
// service can never accept ingestion, so readiness fails.
func NewHealthHandler(repo domain.Repository, secretConfigured bool) *HealthHandler {
	return &HealthHandler{
		repo:             repo,
		secretConfigured: secretConfigured,
	}
}

// Live godoc
// @Summary     Liveness probe
// @Description Always returns 200 while the process is running.
// @Tags        health
// @Produce     json
// @Success     200 {object} response.StatusPayload
// @Router      /health/live [get]
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, response.StatusPayload{Status: "ok"})
}

// Ready godoc
// @Summary     Readiness probe
// @Description Returns 200 only when a signing secret is configured and the store is reachable.
// @Tags        health
// @Produce     json
// @Success     200 {object} response.StatusPayload
// @Failure     503 {object} response.ErrorBody
// @Router      /health/ready [get]
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.secretConfigured {
		response.RespondError(w, http.StatusServiceUnavailable, "WEBHOOK_SECRET not set")
		return
	}

	if !h.repo.Ready(r.Context()) {
		response.RespondError(w, http.StatusServiceUnavailable, "database not ready")
		return
	}

	response.RespondJSON(w, http.StatusOK, response.StatusPayload{Status: "ready"})
}
