package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"professores-api/internal/model"
	"professores-api/internal/service"
	"professores-api/pkg/apierror"
)

type ProfessorHandler struct {
	service *service.ProfessorService
}

func NewProfessorHandler(service *service.ProfessorService) *ProfessorHandler {
	return &ProfessorHandler{service: service}
}

func (h *ProfessorHandler) List(w http.ResponseWriter, r *http.Request) {
	professores, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, professores)
}

func (h *ProfessorHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.ProfessorRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	professor, err := h.service.Create(r.Context(), payload.Nome, payload.Materia)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, professor)
}

func (h *ProfessorHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.ProfessorRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	professor, err := h.service.Update(r.Context(), id, payload.Nome, payload.Materia)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, professor)
}

func (h *ProfessorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseID treats a non-numeric id segment as an unknown resource, matching
// lookups for ids that cannot exist.
func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, model.ErrProfessorNotFound
	}
	return id, nil
}
