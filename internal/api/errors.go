package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"petclinic-rest/internal/clinic"
	"petclinic-rest/internal/platform/logger"
)

// fieldError es una violación puntual de un constraint de campo.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationErrorBody struct {
	Errors []fieldError `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeValidationErrors(w http.ResponseWriter, errs []fieldError) {
	writeJSON(w, http.StatusBadRequest, validationErrorBody{Errors: errs})
}

// respondError mapea la taxonomía del dominio a HTTP:
// NotFound=404, InUse=409, InvalidInput=400, resto=500 (logueado).
// Ningún error se reintenta; la decisión de recovery es del caller.
func respondError(log logger.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, clinic.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, clinic.ErrInUse):
		http.Error(w, "conflict: still referenced", http.StatusConflict)
	case errors.Is(err, clinic.ErrInvalidInput):
		http.Error(w, "invalid input", http.StatusBadRequest)
	default:
		log.Error("internal error", map[string]any{"error": err.Error()})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
