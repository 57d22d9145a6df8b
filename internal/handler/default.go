package handler

import (
	"net/http"

	"github.com/rajansharma08/lyftr-webhook-api/internal/response"
)

// HomeHandler serves the root welcome endpoint.
type HomeHandler struct{}

// NewHomeHandler returns a new HomeHandler.
func NewHomeHandler() *HomeHandler { return &HomeHandler{} }

// Index godoc
// @Summary     Welcome endpoint
// @Description Simple root endpoint that returns a welcome message.
// @Tags        home
// @Produce     json
// @Success     200 {object} response.WelcomePayload
// @Router      / [get]
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	payload := response.WelcomePayload{
		Message: "Welcome to the Lyftr Webhook API",
	}

	response.RespondJSON(w, http.StatusOK, payload)
}
