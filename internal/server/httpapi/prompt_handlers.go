package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/promptdesk/internal/common"
	"github.com/go-chi/chi/v5"
)

type savePromptRequest struct {
	Content string `json:"content" validate:"required,max=32768"`
}

type savePromptResponse struct {
	ID int64 `json:"id"`
}

type toggleResponse struct {
	Success bool `json:"success"`
	IsSaved bool `json:"is_saved"`
}

const msgContentRequired = "Content is required"

func (a *API) handleSavePrompt(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req savePromptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadJSON, "Invalid JSON body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, validationMessage(err, msgContentRequired))
		return
	}

	id, err := a.prompts.Save(r.Context(), userID, req.Content)
	switch {
	case err == nil:
		promptsSaved.Inc()
		writeJSON(w, http.StatusOK, savePromptResponse{ID: id})
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusBadRequest, codeValidation, msgContentRequired)
	default:
		a.internalError(w, r, "save prompt failed", err)
	}
}

func (a *API) handleListSaved(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	list, err := a.prompts.ListSaved(r.Context(), userID)
	if err != nil {
		a.internalError(w, r, "list saved prompts failed", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *API) handleListRecent(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	list, err := a.prompts.ListRecent(r.Context(), userID)
	if err != nil {
		a.internalError(w, r, "list recent prompts failed", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *API) handleToggleSave(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	promptID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || promptID <= 0 {
		writeError(w, http.StatusBadRequest, codeValidation, "Invalid prompt id")
		return
	}

	saved, err := a.prompts.ToggleSaved(r.Context(), userID, promptID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, toggleResponse{Success: true, IsSaved: saved})
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "Prompt not found")
	default:
		a.internalError(w, r, "toggle prompt failed", err)
	}
}
