package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/samvrant/cadasta-platform/internal/attributes"
	"github.com/samvrant/cadasta-platform/internal/models"
)

// SpatialUnitService handles CRUD for spatial units. Attribute bags are
// validated against the unit type's schema on every write; everything else
// is plain row persistence.
type SpatialUnitService struct {
	db *bun.DB
}

func NewSpatialUnitService(db *bun.DB) *SpatialUnitService {
	return &SpatialUnitService{db: db}
}

// CreateSpatialUnitRequest is the write model for new spatial units.
type CreateSpatialUnitRequest struct {
	Name       string                 `json:"name"`
	Geometry   *string                `json:"geometry,omitempty"` // EWKT, optional
	Type       string                 `json:"type"`
	Attributes map[string]interface{} `json:"attributes"`
}

// UpdateSpatialUnitRequest carries the updatable fields. Nil pointers leave
// the stored value unchanged; Attributes replaces the whole bag when set.
type UpdateSpatialUnitRequest struct {
	Name       *string                `json:"name,omitempty"`
	Geometry   *string                `json:"geometry,omitempty"`
	Type       *string                `json:"type,omitempty"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}

// SpatialUnitQueryParams filter unit listings.
type SpatialUnitQueryParams struct {
	Types []string
}

// Create persists a new spatial unit. An empty type defaults to PA (parcel).
func (s *SpatialUnitService) Create(ctx context.Context, projectID uuid.UUID, req CreateSpatialUnitRequest) (*models.SpatialUnit, error) {
	if req.Type == "" {
		req.Type = models.UnitParcel
	}
	if _, ok := models.UnitTypeChoices[req.Type]; !ok {
		return nil, fmt.Errorf("invalid spatial unit type %q", req.Type)
	}
	if req.Attributes == nil {
		req.Attributes = map[string]interface{}{}
	}
	if err := attributes.ValidateUnit(req.Type, req.Attributes); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	su := &models.SpatialUnit{
		ID:         uuid.New(),
		ProjectID:  projectID,
		Name:       req.Name,
		Geometry:   req.Geometry,
		Type:       req.Type,
		Attributes: req.Attributes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := s.db.NewInsert().Model(su).Exec(ctx); err != nil {
		return nil, err
	}
	return su, nil
}

// Get returns one spatial unit of a project.
func (s *SpatialUnitService) Get(ctx context.Context, projectID, id uuid.UUID) (*models.SpatialUnit, error) {
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

// List returns a project's spatial units ordered by name.
func (s *SpatialUnitService) List(ctx context.Context, projectID uuid.UUID, params SpatialUnitQueryParams) ([]models.SpatialUnit, error) {
	units := make([]models.SpatialUnit, 0)
	q := s.db.NewSelect().
		Model(&units).
		Where("su.project_id = ?", projectID)
	if len(params.Types) > 0 {
		q = q.Where("su.type IN (?)", bun.In(params.Types))
	}
	err := q.OrderExpr("su.name ASC").Scan(ctx)
	return units, err
}

// Update applies a partial update to a spatial unit. The attribute bag is
// re-validated against the effective type code.
func (s *SpatialUnitService) Update(ctx context.Context, projectID, id uuid.UUID, req UpdateSpatialUnitRequest) (*models.SpatialUnit, error) {
	su, err := s.Get(ctx, projectID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		su.Name = *req.Name
	}
	if req.Geometry != nil {
		su.Geometry = req.Geometry
	}
	if req.Type != nil {
		if _, ok := models.UnitTypeChoices[*req.Type]; !ok {
			return nil, fmt.Errorf("invalid spatial unit type %q", *req.Type)
		}
		su.Type = *req.Type
	}
	if req.Attributes != nil {
		su.Attributes = req.Attributes
	}
	if err := attributes.ValidateUnit(su.Type, su.Attributes); err != nil {
		return nil, err
	}
	su.UpdatedAt = time.Now().UTC()

	_, err = s.db.NewUpdate().
		Model(su).
		Column("name", "geometry", "type", "attributes", "updated_at").
		Where("id = ?", su.ID).
		Where("project_id = ?", projectID).
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	return su, nil
}

// Delete removes a spatial unit. The database cascades the delete to every
// relationship where the unit appears as su1 or su2.
func (s *SpatialUnitService) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	res, err := s.db.NewDelete().
		Model((*models.SpatialUnit)(nil)).
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
