package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"ecommerce-backend/internal/service"
)

// Every JSON response uses the {status, payload|message} envelope.

type successEnvelope struct {
	Status  string `json:"status"`
	Payload any    `json:"payload"`
}

type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, code int, payload any) {
	writeJSON(w, code, successEnvelope{Status: "success", Payload: payload})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorEnvelope{Status: "error", Message: msg})
}

// writeServiceError maps the service error taxonomy onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrCartNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrItemNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
