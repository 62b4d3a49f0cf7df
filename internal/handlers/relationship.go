package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/samvrant/cadasta-platform/internal/services"
	"github.com/samvrant/cadasta-platform/internal/utils"
)

// RelationshipHandler handles HTTP requests for spatial unit relationships.
type RelationshipHandler struct {
	service *services.RelationshipService
	logr    *zap.Logger
}

func NewRelationshipHandler(svc *services.RelationshipService, logr *zap.Logger) *RelationshipHandler {
	return &RelationshipHandler{service: svc, logr: logr}
}

// CreateRelationship handles POST /projects/{projectID}/relationships
func (h *RelationshipHandler) CreateRelationship(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "projectID")
	if !ok {
		return
	}

	var req services.CreateRelationshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	req.ProjectID = projectID

	rel, err := h.service.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotContained):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		case errors.Is(err, sql.ErrNoRows):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "spatial unit not found"})
		default:
			h.logr.Warn("failed to create relationship", zap.Error(err))
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusCreated, rel)
}

// ListRelationships handles GET /projects/{projectID}/relationships.
// Optional filters: ?su1= (outgoing edges), ?su2= (incoming edges),
// ?type=C,S,M.
func (h *RelationshipHandler) ListRelationships(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "projectID")
	if !ok {
		return
	}

	q := r.URL.Query()

	if su1 := q.Get("su1"); su1 != "" {
		suID, err := uuid.Parse(su1)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid su1 parameter"})
			return
		}
		rels, err := h.service.Outgoing(r.Context(), projectID, suID)
		if err != nil {
			h.logr.Error("failed to list outgoing relationships", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to retrieve relationships"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"relationships": rels, "count": len(rels)})
		return
	}

	if su2 := q.Get("su2"); su2 != "" {
		suID, err := uuid.Parse(su2)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid su2 parameter"})
			return
		}
		rels, err := h.service.Incoming(r.Context(), projectID, suID)
		if err != nil {
			h.logr.Error("failed to list incoming relationships", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to retrieve relationships"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"relationships": rels, "count": len(rels)})
		return
	}

	rels, err := h.service.List(r.Context(), projectID, utils.ParseQueryList(q, "type"))
	if err != nil {
		h.logr.Error("failed to list relationships", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to retrieve relationships"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"relationships": rels, "count": len(rels)})
}

// GetRelationship handles GET /projects/{projectID}/relationships/{id}
func (h *RelationshipHandler) GetRelationship(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "projectID")
	if !ok {
		return
	}
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	rel, err := h.service.Get(r.Context(), projectID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "relationship not found"})
			return
		}
		h.logr.Error("failed to get relationship", zap.Error(err), zap.String("id", id.String()))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to retrieve relationship"})
		return
	}

	writeJSON(w, http.StatusOK, rel)
}

// DeleteRelationship handles DELETE /projects/{projectID}/relationships/{id}
func (h *RelationshipHandler) DeleteRelationship(w http.ResponseWriter, r *http.Request) {
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
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "relationship not found"})
			return
		}
		h.logr.Error("failed to delete relationship", zap.Error(err), zap.String("id", id.String()))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete relationship"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
