package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFromError maps the error taxonomy to HTTP status codes. Auth
// failures collapse to 401 and absent-or-foreign records collapse to 404 so
// responses never reveal which sub-case occurred.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrEmailTaken):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrUnknownSubject),
		errors.Is(err, common.ErrNoToken):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError is the single boundary that turns an error into a JSON
// {message} response. Internal failures are logged by the caller and
// surfaced generically.
func writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)

	msg := err.Error()
	switch status {
	case http.StatusInternalServerError:
		msg = "internal error"
	case http.StatusUnauthorized:
		msg = "unauthorized"
	case http.StatusNotFound:
		msg = "not found"
	}

	writeJSON(w, status, errorResponse{Message: msg})
}
