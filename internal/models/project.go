package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Project owns all spatial records. Deleting a project removes its spatial
// units and relationships through ON DELETE CASCADE at the database level.
type Project struct {
	bun.BaseModel `bun:"table:projects,alias:p"`

	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Slug      string    `bun:"slug,notnull,unique" json:"slug"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}
