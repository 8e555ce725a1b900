package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/clinova/shift-scheduler/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps the error taxonomy to HTTP statuses. All three
// application error types are recoverable by the caller; nothing here crashes
// the serving flow.
func respondWithAppError(w http.ResponseWriter, err error) {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeNotFound:
		respondWithError(w, http.StatusNotFound, err.Error())
	case apperrors.ErrorTypeValidation:
		respondWithError(w, http.StatusBadRequest, err.Error())
	case apperrors.ErrorTypeStorage:
		respondWithError(w, http.StatusBadGateway, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, err.Error())
	}
}
