package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

// Error codes returned alongside the human-readable message.
const (
	codeValidation   = "validation_error"
	codeBadJSON      = "invalid_json"
	codeConflict     = "conflict"
	codeUnauthorized = "unauthorized"
	codeInvalidToken = "invalid_token"
	codeNotFound     = "not_found"
	codeNotAllowed   = "method_not_allowed"
	codeRateLimited  = "rate_limited"
	codeUpstream     = "upstream_error"
	codeInternal     = "internal_error"
)

const msgServerError = "Server error"

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

var errEmptyBody = errors.New("empty body")

// decodeJSON reads a single JSON object into dst. Unknown fields are
// ignored; trailing data and bodies over maxBodyBytes are rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON object")
	}
	return nil
}

// validationMessage turns validator errors into a client message. Missing
// fields use the endpoint's own wording; length limits name the field.
func validationMessage(err error, requiredMsg string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return requiredMsg
	}
	for _, fe := range verrs {
		if fe.Tag() != "required" {
			return fmt.Sprintf("%s is too long", strings.ToLower(fe.Field()))
		}
	}
	return requiredMsg
}
