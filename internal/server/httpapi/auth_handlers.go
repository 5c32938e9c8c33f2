package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/promptdesk/internal/common"
	"github.com/dmitrijs2005/promptdesk/internal/cryptox"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

const (
	msgAllFieldsRequired  = "All fields are required"
	msgLoginFieldsMissing = "Email and password are required"
	msgUserExists         = "Username or email already exists"
	msgInvalidCredentials = "Invalid credentials"
)

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadJSON, "Invalid JSON body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, validationMessage(err, msgAllFieldsRequired))
		return
	}

	token, err := a.users.Register(r.Context(), req.Username, req.Email, req.Password)
	recordAuthAttempt("register", err == nil)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, tokenResponse{Token: token})
	case errors.Is(err, cryptox.ErrPasswordTooLong):
		writeError(w, http.StatusBadRequest, codeValidation, cryptox.ErrPasswordTooLong.Error())
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusBadRequest, codeValidation, msgAllFieldsRequired)
	case errors.Is(err, common.ErrConflict):
		writeError(w, http.StatusBadRequest, codeConflict, msgUserExists)
	default:
		a.internalError(w, r, "register failed", err)
	}
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadJSON, "Invalid JSON body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, validationMessage(err, msgLoginFieldsMissing))
		return
	}

	token, err := a.users.Login(r.Context(), req.Email, req.Password)
	recordAuthAttempt("login", err == nil)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, tokenResponse{Token: token})
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusBadRequest, codeValidation, msgLoginFieldsMissing)
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusUnauthorized, codeUnauthorized, msgInvalidCredentials)
	default:
		a.internalError(w, r, "login failed", err)
	}
}

// internalError logs the cause and answers with a generic 500.
func (a *API) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	a.logger.Error(r.Context(), msg, "error", err, "path", r.URL.Path)
	writeError(w, http.StatusInternalServerError, codeInternal, msgServerError)
}
