package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pokedex/models"
	"pokedex/services"
)

type errorResponse struct {
	Error  string `json:"error"`
	Failed []int  `json:"failed,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto status codes. Unexpected errors are
// logged and hidden from the client.
func writeError(w http.ResponseWriter, log zerolog.Logger, err error) {
	resp := errorResponse{Error: err.Error()}

	var syncErr *services.SyncError
	if errors.As(err, &syncErr) {
		resp.Failed = syncErr.FailedIDs()
	}

	var status int
	switch {
	case errors.Is(err, models.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrDuplicateEmail):
		status = http.StatusConflict
	case errors.Is(err, models.ErrUnauthorized):
		status = http.StatusUnauthorized
		resp.Error = models.ErrUnauthorized.Error()
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrUpstreamUnavailable):
		status = http.StatusBadGateway
		log.Warn().Err(err).Msg("upstream catalog failure")
	default:
		status = http.StatusInternalServerError
		log.Error().Err(err).Msg("request failed")
		resp = errorResponse{Error: "internal server error"}
	}

	writeJSON(w, status, resp)
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", models.ErrValidation, fmt.Sprintf(format, args...))
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return validationError("invalid request body: %v", err)
	}
	return nil
}

func pokemonIDParam(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, validationError("%s must be a positive integer", name)
	}
	return id, nil
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, validationError("%s must be a valid uuid", name)
	}
	return id, nil
}
