package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/promptdesk/internal/common"
)

type chatRequest struct {
	Message string `json:"message" validate:"required,max=32768"`
}

type chatResponse struct {
	Response string `json:"response"`
}

const msgNoMessage = "No message found"

func (a *API) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadJSON, "Invalid JSON body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		chatRequests.WithLabelValues("rejected").Inc()
		writeError(w, http.StatusBadRequest, codeValidation, validationMessage(err, msgNoMessage))
		return
	}

	text, err := a.relay.Reply(r.Context(), req.Message)
	switch {
	case err == nil:
		chatRequests.WithLabelValues("ok").Inc()
		writeJSON(w, http.StatusOK, chatResponse{Response: text})
	case errors.Is(err, common.ErrValidation):
		chatRequests.WithLabelValues("rejected").Inc()
		writeError(w, http.StatusBadRequest, codeValidation, msgNoMessage)
	case errors.Is(err, common.ErrUpstream):
		chatRequests.WithLabelValues("upstream_error").Inc()
		writeError(w, http.StatusBadGateway, codeUpstream, msgServerError)
	default:
		chatRequests.WithLabelValues("error").Inc()
		a.internalError(w, r, "chat failed", err)
	}
}
