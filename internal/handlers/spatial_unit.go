package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/samvrant/cadasta-platform/internal/services"
	"github.com/samvrant/cadasta-platform/internal/utils"
)

// SpatialUnitHandler handles HTTP requests for spatial units.
type SpatialUnitHandler struct {
	service *services.SpatialUnitService
	logr    *zap.Logger
}

func NewSpatialUnitHandler(svc *services.SpatialUnitService, logr *zap.Logger) *SpatialUnitHandler {
	return &SpatialUnitHandler{service: svc, logr: logr}
}

// ListSpatialUnits handles GET /projects/{projectID}/spatial-units
func (h *SpatialUnitHandler) ListSpatialUnits(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "projectID")
	if !ok {
		return
	}

	params := services.SpatialUnitQueryParams{
		Types: utils.ParseQueryList(r.URL.Query(), "type"),
	}

	units, err := h.service.List(r.Context(), projectID, params)
	if err != nil {
		h.logr.Error("failed to list spatial units", zap.Error(err), zap.String("project_id", projectID.String()))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to retrieve spatial units",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"spatial_units": units,
		"count":         len(units),
	})
}

// CreateSpatialUnit handles POST /projects/{projectID}/spatial-units
func (h *SpatialUnitHandler) CreateSpatialUnit(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "projectID")
	if !ok {
		return
	}

	var req services.CreateSpatialUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	su, err := h.service.Create(r.Context(), projectID, req)
	if err != nil {
		h.logr.Warn("failed to create spatial unit", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, su)
}

// GetSpatialUnit handles GET /projects/{projectID}/spatial-units/{id}
func (h *SpatialUnitHandler) GetSpatialUnit(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "projectID")
	if !ok {
		return
	}
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	su, err := h.service.Get(r.Context(), projectID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "spatial unit not found"})
			return
		}
		h.logr.Error("failed to get spatial unit", zap.Error(err), zap.String("id", id.String()))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to retrieve spatial unit"})
		return
	}

	writeJSON(w, http.StatusOK, su)
}

// UpdateSpatialUnit handles PUT /projects/{projectID}/spatial-units/{id}
func (h *SpatialUnitHandler) UpdateSpatialUnit(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "projectID")
	if !ok {
		return
	}
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var req services.UpdateSpatialUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	su, err := h.service.Update(r.Context(), projectID, id, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "spatial unit not found"})
			return
		}
		h.logr.Warn("failed to update spatial unit", zap.Error(err), zap.String("id", id.String()))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, su)
}

// DeleteSpatialUnit handles DELETE /projects/{projectID}/spatial-units/{id}
func (h *SpatialUnitHandler) DeleteSpatialUnit(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "projectID")
	if !ok {
		return
	}
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), projectID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "spatial unit not found"})
			return
		}
		h.logr.Error("failed to delete spatial unit", zap.Error(err), zap.String("id", id.String()))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete spatial unit"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseUUIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid " + name + " parameter"})
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
