package attributes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvrant/cadasta-platform/internal/models"
)

func TestValidateUnit(t *testing.T) {
	tests := []struct {
		name     string
		typeCode string
		attrs    map[string]interface{}
		wantErr  bool
	}{
		{"empty bag ok", models.UnitParcel, map[string]interface{}{}, false},
		{"valid parcel", models.UnitParcel, map[string]interface{}{
			"land_use": "residential", "area_sqm": 120.5, "registered": true,
		}, false},
		{"unknown key", models.UnitParcel, map[string]interface{}{"owner": "x"}, true},
		{"wrong kind", models.UnitParcel, map[string]interface{}{"area_sqm": "big"}, true},
		{"missing required", models.UnitCommunityBoundary, map[string]interface{}{}, true},
		{"required present", models.UnitCommunityBoundary, map[string]interface{}{"community": "village"}, false},
		{"required null", models.UnitCommunityBoundary, map[string]interface{}{"community": nil}, true},
		{"unknown type code", "ZZ", map[string]interface{}{}, true},
		{"array field", models.UnitMiscellaneous, map[string]interface{}{
			"tags": []interface{}{"a", "b"},
		}, false},
		{"object field", models.UnitMiscellaneous, map[string]interface{}{
			"extra": map[string]interface{}{"k": "v"},
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUnit(tt.typeCode, tt.attrs)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRelationship(t *testing.T) {
	require.NoError(t, ValidateRelationship(models.RelContained, map[string]interface{}{"notes": "n"}))
	require.NoError(t, ValidateRelationship(models.RelSplit, map[string]interface{}{"split_date": "2016-05-05"}))
	assert.Error(t, ValidateRelationship(models.RelContained, map[string]interface{}{"split_date": "2016-05-05"}))
	assert.Error(t, ValidateRelationship("X", map[string]interface{}{}))
}
