package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/samvrant/cadasta-platform/internal/models"
)

// ProjectService handles project CRUD. Deleting a project relies on the
// database cascades to remove its spatial units and relationships.
type ProjectService struct {
	db *bun.DB
}

func NewProjectService(db *bun.DB) *ProjectService {
	return &ProjectService{db: db}
}

// CreateProjectRequest is the write model for new projects.
type CreateProjectRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (s *ProjectService) Create(ctx context.Context, req CreateProjectRequest) (*models.Project, error) {
	now := time.Now().UTC()
	p := &models.Project{
		ID:        uuid.New(),
		Name:      req.Name,
		Slug:      req.Slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.db.NewInsert().Model(p).Exec(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var p models.Project
	err := s.db.NewSelect().Model(&p).Where("p.id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	projects := make([]models.Project, 0)
	err := s.db.NewSelect().Model(&projects).OrderExpr("p.name ASC").Scan(ctx)
	return projects, err
}

func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.NewDelete().
		Model((*models.Project)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
