package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeometryType(t *testing.T) {
	tests := []struct {
		name     string
		geometry *string
		want     string
	}{
		{"nil geometry", nil, ""},
		{"polygon", ptr("POLYGON((0 0, 10 0, 10 10, 0 10, 0 0))"), "POLYGON"},
		{"polygon with srid", ptr("SRID=4326;POLYGON((0 0, 1 0, 1 1, 0 1, 0 0))"), "POLYGON"},
		{"lowercase", ptr("srid=4326;polygon((0 0, 1 0, 1 1, 0 1, 0 0))"), "POLYGON"},
		{"point", ptr("POINT(5 5)"), "POINT"},
		{"point with space", ptr("POINT (5 5)"), "POINT"},
		{"linestring", ptr("SRID=4326;LINESTRING(0 0, 10 10)"), "LINESTRING"},
		{"multipolygon", ptr("MULTIPOLYGON(((0 0, 1 0, 1 1, 0 0)))"), "MULTIPOLYGON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			su := &SpatialUnit{Geometry: tt.geometry}
			assert.Equal(t, tt.want, su.GeometryType())
		})
	}
}

func TestIsPolygon(t *testing.T) {
	assert.True(t, (&SpatialUnit{Geometry: ptr("SRID=4326;POLYGON((0 0, 1 0, 1 1, 0 0))")}).IsPolygon())
	// multipolygons deliberately do not count
	assert.False(t, (&SpatialUnit{Geometry: ptr("MULTIPOLYGON(((0 0, 1 0, 1 1, 0 0)))")}).IsPolygon())
	assert.False(t, (&SpatialUnit{Geometry: ptr("POINT(1 1)")}).IsPolygon())
	assert.False(t, (&SpatialUnit{}).IsPolygon())
}

func ptr(s string) *string { return &s }
