package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"professores-api/internal/model"
	"professores-api/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"
	details := ""

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		message = apiErr.Message
		details = apiErr.Details
	case errors.Is(err, model.ErrEmailTaken):
		status = http.StatusBadRequest
		message = "email already registered"
	case errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "invalid credentials"
	case errors.Is(err, model.ErrProfessorNotFound):
		status = http.StatusNotFound
		message = "professor not found"
	case errors.Is(err, model.ErrUserNotFound):
		status = http.StatusNotFound
		message = "user not found"
	case errors.Is(err, model.ErrTokenExpired), errors.Is(err, model.ErrTokenInvalid):
		status = http.StatusUnauthorized
		message = "invalid or expired token"
	default:
		// Surface the diagnostic for unexpected store failures and log it.
		details = err.Error()
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	writeJSON(w, status, model.MessageResponse{Message: message, Error: details})
}
