package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/samvrant/cadasta-platform/internal/attributes"
	"github.com/samvrant/cadasta-platform/internal/models"
)

// ErrNotContained is returned when a contained-in relationship is requested
// but the subject's polygon does not geographically contain the object's
// geometry. The text is intended for direct display.
var ErrNotContained = errors.New(
	"selected location is not geographically contained within the parent location")

// RelationshipService creates and queries directed relationships between
// spatial units. Creation is the only validated entry point: type C
// relationships between units with geometry are gated on a PostGIS
// containment check.
type RelationshipService struct {
	db *bun.DB
}

func NewRelationshipService(db *bun.DB) *RelationshipService {
	return &RelationshipService{db: db}
}

// CreateRelationshipRequest carries the arguments of a relationship create.
type CreateRelationshipRequest struct {
	ProjectID  uuid.UUID              `json:"project_id"`
	SU1ID      uuid.UUID              `json:"su1"`
	SU2ID      uuid.UUID              `json:"su2"`
	Type       string                 `json:"type"`
	Attributes map[string]interface{} `json:"attributes"`
}

// Create persists a new relationship after validating it.
//
// The containment rule applies only when all of the following hold: both
// units have geometry, the requested type is C (is-contained-in), and su1's
// geometry is a Polygon. In that case one read asks the database whether
// su1's polygon contains su2's geometry; no match aborts the create with
// ErrNotContained and nothing is written. Any other combination of type and
// geometry skips the check entirely, including a line or point subject.
func (s *RelationshipService) Create(ctx context.Context, req CreateRelationshipRequest) (*models.SpatialUnitRelationship, error) {
	if _, ok := models.RelTypeChoices[req.Type]; !ok {
		return nil, fmt.Errorf("invalid relationship type %q", req.Type)
	}
	if req.Attributes == nil {
		req.Attributes = map[string]interface{}{}
	}
	if err := attributes.ValidateRelationship(req.Type, req.Attributes); err != nil {
		return nil, err
	}

	su1, err := s.loadUnit(ctx, req.ProjectID, req.SU1ID)
	if err != nil {
		return nil, fmt.Errorf("load su1: %w", err)
	}
	su2, err := s.loadUnit(ctx, req.ProjectID, req.SU2ID)
	if err != nil {
		return nil, fmt.Errorf("load su2: %w", err)
	}

	rel := &models.SpatialUnitRelationship{
		ID:         uuid.New(),
		ProjectID:  req.ProjectID,
		SU1ID:      su1.ID,
		SU2ID:      su2.ID,
		Type:       req.Type,
		Attributes: req.Attributes,
		CreatedAt:  time.Now().UTC(),
	}

	err = s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if su1.Geometry != nil && su2.Geometry != nil &&
			req.Type == models.RelContained && su1.IsPolygon() {
			contained, err := s.checkContainment(ctx, tx, su1.ID, su2.ID)
			if err != nil {
				return err
			}
			if !contained {
				return ErrNotContained
			}
		}
		_, err := tx.NewInsert().Model(rel).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rel, nil
}

// checkContainment asks PostGIS whether su1's stored geometry contains
// su2's. Comparing the stored columns keeps both sides in the same SRID.
func (s *RelationshipService) checkContainment(ctx context.Context, tx bun.Tx, su1ID, su2ID uuid.UUID) (bool, error) {
	n, err := tx.NewSelect().
		Model((*models.SpatialUnit)(nil)).
		Where("su.id = ?", su1ID).
		Where("ST_Contains(su.geometry, (SELECT geometry FROM spatial_units WHERE id = ?))", su2ID).
		Count(ctx)
	if err != nil {
		return false, fmt.Errorf("containment query: %w", err)
	}
	return n > 0, nil
}

func (s *RelationshipService) loadUnit(ctx context.Context, projectID, id uuid.UUID) (*models.SpatialUnit, error) {
	var su models.SpatialUnit
	err := s.db.NewSelect().
		Model(&su).
		Where("su.id = ?", id).
		Where("su.project_id = ?", projectID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &su, nil
}

// Get returns one relationship of a project.
func (s *RelationshipService) Get(ctx context.Context, projectID, id uuid.UUID) (*models.SpatialUnitRelationship, error) {
	var rel models.SpatialUnitRelationship
	err := s.db.NewSelect().
		Model(&rel).
		Where("rel.id = ?", id).
		Where("rel.project_id = ?", projectID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

// List returns a project's relationships, optionally filtered by type codes.
func (s *RelationshipService) List(ctx context.Context, projectID uuid.UUID, types []string) ([]models.SpatialUnitRelationship, error) {
	rels := make([]models.SpatialUnitRelationship, 0)
	q := s.db.NewSelect().
		Model(&rels).
		Where("rel.project_id = ?", projectID)
	if len(types) > 0 {
		q = q.Where("rel.type IN (?)", bun.In(types))
	}
	err := q.OrderExpr("rel.created_at ASC").Scan(ctx)
	return rels, err
}

// Outgoing returns the relationships where the unit is the subject (su1).
func (s *RelationshipService) Outgoing(ctx context.Context, projectID, suID uuid.UUID) ([]models.SpatialUnitRelationship, error) {
	rels := make([]models.SpatialUnitRelationship, 0)
	err := s.db.NewSelect().
		Model(&rels).
		Where("rel.project_id = ?", projectID).
		Where("rel.su1_id = ?", suID).
		OrderExpr("rel.created_at ASC").
		Scan(ctx)
	return rels, err
}

// Incoming returns the relationships where the unit is the object (su2).
func (s *RelationshipService) Incoming(ctx context.Context, projectID, suID uuid.UUID) ([]models.SpatialUnitRelationship, error) {
	rels := make([]models.SpatialUnitRelationship, 0)
	err := s.db.NewSelect().
		Model(&rels).
		Where("rel.project_id = ?", projectID).
		Where("rel.su2_id = ?", suID).
		OrderExpr("rel.created_at ASC").
		Scan(ctx)
	return rels, err
}

// Delete removes one relationship of a project.
func (s *RelationshipService) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	res, err := s.db.NewDelete().
		Model((*models.SpatialUnitRelationship)(nil)).
		Where("id = ?", id).
		Where("project_id = ?", projectID).
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
