package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries the user-facing reason of a failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode before writing the header so an encoding failure can still be a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + domain.ReasonInternal + `"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call at a level matching its
// cause and writes the mapped status and reason
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	status, message := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(fmt.Sprintf(LogMsgOpFailed, opName), "error", err, "status", status)
	} else {
		log.Info(fmt.Sprintf(LogMsgOpRejected, opName), "reason", message, "status", status)
	}
	respondError(w, status, message)
}

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes. The
// message is always domain.Reason, so internal detail never reaches clients.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrPermissionDenied), errors.Is(err, domain.ErrAccountBanned):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrListingNotFound),
		errors.Is(err, domain.ErrRecipeNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrListingInactive), errors.Is(err, domain.ErrInsufficientStock):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrTxConflict):
		status = http.StatusServiceUnavailable
	case domain.IsBusinessError(err):
		status = http.StatusBadRequest
	}

	// A half-applied flow is an internal failure whatever its step wrapped
	var stepErr *domain.StepError
	if errors.As(err, &stepErr) {
		return http.StatusInternalServerError, domain.ReasonInternal
	}
	return status, domain.Reason(err)
}
