package handlers

import (
	"context"
	"net/http"

	"github.com/clinova/shift-scheduler/internal/domain/entities"
)

// ProfessionalDirectory defines the directory operations used over HTTP
type ProfessionalDirectory interface {
	ListProfessionals(ctx context.Context) ([]entities.Professional, error)
	GetProfessional(ctx context.Context, id string) (*entities.Professional, error)
}

// ProfessionalHandler serves the professional directory
type ProfessionalHandler struct {
	directory ProfessionalDirectory
}

// NewProfessionalHandler creates a new professional handler
func NewProfessionalHandler(directory ProfessionalDirectory) *ProfessionalHandler {
	return &ProfessionalHandler{directory: directory}
}

// ListProfessionals handles GET /api/professionals
func (h *ProfessionalHandler) ListProfessionals(w http.ResponseWriter, r *http.Request) {
	professionals, err := h.directory.ListProfessionals(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"professionals": professionals,
	})
}

// GetProfessional handles GET /api/professionals/{id}
func (h *ProfessionalHandler) GetProfessional(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "professional ID is required")
		return
	}

	professional, err := h.directory.GetProfessional(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, professional)
}
