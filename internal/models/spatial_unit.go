package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Spatial unit type codes. The code selects which attribute schema applies
// to the unit's attribute bag.
const (
	UnitParcel            = "PA"
	UnitCommunityBoundary = "CB"
	UnitBuilding          = "BU"
	UnitApartment         = "AP"
	UnitProjectExtent     = "PX"
	UnitRightOfWay        = "RW"
	UnitUtilityCorridor   = "UC"
	UnitNationalPark      = "NP"
	UnitMiscellaneous     = "MI"
)

// UnitTypeChoices maps unit type codes to display labels.
var UnitTypeChoices = map[string]string{
	UnitParcel:            "Parcel",
	UnitCommunityBoundary: "Community boundary",
	UnitBuilding:          "Building",
	UnitApartment:         "Apartment",
	UnitProjectExtent:     "Project extent",
	UnitRightOfWay:        "Right-of-way",
	UnitUtilityCorridor:   "Utility corridor",
	UnitNationalPark:      "National park boundary",
	UnitMiscellaneous:     "Miscellaneous",
}

// SpatialUnit is a single parcel, boundary or other land-related location.
// Geometry is optional: some units only carry a textual description of
// their location in the attribute bag.
type SpatialUnit struct {
	bun.BaseModel `bun:"table:spatial_units,alias:su"`

	ID         uuid.UUID              `bun:"id,pk,type:uuid" json:"id"`
	ProjectID  uuid.UUID              `bun:"project_id,type:uuid,notnull" json:"project_id"`
	Name       string                 `bun:"name,notnull" json:"name"`
	Geometry   *string                `bun:"geometry,type:geometry,nullzero" json:"geometry,omitempty"` // EWKT, PostGIS geometry column
	Type       string                 `bun:"type,notnull" json:"type"`
	Attributes map[string]interface{} `bun:"attributes,type:jsonb" json:"attributes"`
	CreatedAt  time.Time              `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt  time.Time              `bun:"updated_at,notnull" json:"updated_at"`

	Project *Project `bun:"rel:belongs-to,join:project_id=id" json:"-"`
}

// GeometryType returns the uppercased WKT type token of the stored geometry
// ("POLYGON", "POINT", "LINESTRING", ...), or "" when the unit has none.
// An optional "SRID=n;" EWKT prefix is skipped.
func (su *SpatialUnit) GeometryType() string {
	if su.Geometry == nil {
		return ""
	}
	g := strings.TrimSpace(*su.Geometry)
	if i := strings.IndexByte(g, ';'); i >= 0 && strings.HasPrefix(strings.ToUpper(g), "SRID=") {
		g = g[i+1:]
	}
	end := strings.IndexAny(g, " (")
	if end < 0 {
		end = len(g)
	}
	return strings.ToUpper(strings.TrimSpace(g[:end]))
}

// IsPolygon reports whether the stored geometry is exactly a Polygon.
// Multipolygons deliberately do not count.
func (su *SpatialUnit) IsPolygon() bool {
	return su.GeometryType() == "POLYGON"
}
