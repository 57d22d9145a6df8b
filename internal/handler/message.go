package handler

import (
	"errors"
	"net/http"

	"github.com/rajansharma08/lyftr-webhook-api/internal/request"
	"github.com/rajansharma08/lyftr-webhook-api/internal/response"
	"github.com/rajansharma08/lyftr-webhook-api/internal/service"
)

// MessageHandler wires the query endpoints to the query service.
type MessageHandler struct {
	querySvc service.QueryService
}

// NewMessageHandler constructs a new MessageHandler with its dependencies.
func NewMessageHandler(querySvc service.QueryService) *MessageHandler {
	return &MessageHandler{querySvc: querySvc}
}

// List godoc
// @Summary     List messages
// @Description Returns a filtered, paginated list of stored messages ordered by (ts, message_id).
// @Tags        messages
// @Produce     json
// @Param       limit  query int    false "Page size (1-100)" default(50)
// @Param       offset query int    false "Rows to skip"      default(0)
// @Param       from   query string false "Exact sender match (E.164)"
// @Param       since  query string false "Only messages with ts >= since (ISO-8601 UTC)"
// @Param       q      query string false "Substring match on text"
// @Success     200 {object} response.MessagesPage
// @Failure     422 {object} response.ErrorBody
// @Failure     500 {object} response.ErrorBody
// @Router      /messages [get]
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := request.ParseListQuery(r.URL.Query())
	if err != nil {
		response.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	items, total, applied, err := h.querySvc.Messages(r.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrNegativeOffset) {
			response.RespondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	payload := response.MessagesPage{
		Data:   response.FromDomainMessages(items),
		Total:  total,
		Limit:  applied.Limit,
		Offset: applied.Offset,
	}

	response.RespondJSON(w, http.StatusOK, payload)
}

// Stats godoc
// @Summary     Aggregate statistics
// @Description Returns message totals, unique sender count, top senders and timestamp bounds.
// @Tags        messages
// @Produce     json
// @Success     200 {object} response.StatsPayload
// @Failure     500 {object} response.ErrorBody
// @Router      /stats [get]
func (h *MessageHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.querySvc.Stats(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, response.FromDomainStats(stats))
}
