package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pokemcp/pokemcp/domain/pokemon"
	"github.com/pokemcp/pokemcp/infrastructure/provider"
)

// ErrorResponse is the JSON body written for every error status.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// WriteError maps a domain error to an HTTP status and writes the error body.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	status := http.StatusInternalServerError

	var notFound *pokemon.NotFoundError
	var upstream *pokemon.UpstreamError

	switch {
	case errors.Is(err, pokemon.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.Is(err, pokemon.ErrTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, pokemon.ErrUnavailable):
		status = http.StatusServiceUnavailable
	case errors.As(err, &upstream):
		if upstream.Status() >= 400 && upstream.Status() < 600 {
			status = upstream.Status()
		} else {
			status = http.StatusBadGateway
		}
	case errors.Is(err, provider.ErrGeneration):
		status = http.StatusInternalServerError
	}

	if status >= 500 {
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	} else {
		logger.Debug("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}

	WriteJSON(w, status, ErrorResponse{Detail: err.Error()})
}
