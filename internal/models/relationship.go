package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Relationship type codes. The pair order is semantic: su1 is the subject,
// su2 the object of the predicate.
const (
	RelContained = "C" // su1 is-contained-in su2
	RelSplit     = "S" // su1 is-split-of su2
	RelMerge     = "M" // su1 is-merge-of su2
)

// RelTypeChoices maps relationship type codes to their predicates.
var RelTypeChoices = map[string]string{
	RelContained: "is-contained-in",
	RelSplit:     "is-split-of",
	RelMerge:     "is-merge-of",
}

// SpatialUnitRelationship is a directed edge between two spatial units,
// encoding simple logical terms like "su1 is-contained-in su2" or
// "su1 is-split-of su2". Rows are created only through the relationship
// service, which enforces the geometric containment rule for type C.
type SpatialUnitRelationship struct {
	bun.BaseModel `bun:"table:spatial_unit_relationships,alias:rel"`

	ID         uuid.UUID              `bun:"id,pk,type:uuid" json:"id"`
	ProjectID  uuid.UUID              `bun:"project_id,type:uuid,notnull" json:"project_id"`
	SU1ID      uuid.UUID              `bun:"su1_id,type:uuid,notnull" json:"su1_id"`
	SU2ID      uuid.UUID              `bun:"su2_id,type:uuid,notnull" json:"su2_id"`
	Type       string                 `bun:"type,notnull" json:"type"`
	Attributes map[string]interface{} `bun:"attributes,type:jsonb" json:"attributes"`
	CreatedAt  time.Time              `bun:"created_at,notnull" json:"created_at"`

	SU1 *SpatialUnit `bun:"rel:belongs-to,join:su1_id=id" json:"su1,omitempty"`
	SU2 *SpatialUnit `bun:"rel:belongs-to,join:su2_id=id" json:"su2,omitempty"`
}
